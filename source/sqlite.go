package source

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"

	"github.com/mattn/go-sqlite3"

	"github.com/flexgp/flexgp/types"
)

// DefaultSQLiteQuery looks up a track's artist and release year, skipping
// tracks with an unknown year (stored as 0).
const DefaultSQLiteQuery = `SELECT artist_id, year FROM songs WHERE year > 0 AND track_id = ?`

// SQLite resolves records from a SQLite database.
//
// The query takes the record id as its only parameter and returns at most one
// row of (group id, sort key). No row, or a NULL column, means the record is
// excluded.
type SQLite struct {
	db     *sql.DB
	stmt   *sql.Stmt
	ownsDB bool
}

var _ types.Resolver = (*SQLite)(nil)

// OpenSQLite opens the database at path read-only and prepares query.
//
// Parameters:
//   - ctx: Context for opening and preparing
//   - path: Database file path
//   - query: Lookup query (DefaultSQLiteQuery when empty)
//
// Returns:
//   - *SQLite: Resolver owning the database handle (release with Close)
//   - error: types.ErrConnectivity wrapped when the file cannot be opened
//
// Example:
//
//	src, err := source.OpenSQLite(ctx, "track_metadata.db", "")
//	if err != nil { /* handle */ }
//	defer src.Close()
func OpenSQLite(ctx context.Context, path, query string) (*SQLite, error) {
	dsn := (&url.URL{Scheme: "file", Opaque: path, RawQuery: "mode=ro"}).String()
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: open sqlite %s: %w", types.ErrConnectivity, path, err)
	}

	s, err := NewSQLite(ctx, db, query)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	s.ownsDB = true

	return s, nil
}

// NewSQLite prepares query on an existing database handle.
//
// The caller keeps ownership of db; Close only releases the prepared statement.
//
// Parameters:
//   - ctx: Context for preparing
//   - db: Open database handle (driver "sqlite3")
//   - query: Lookup query (DefaultSQLiteQuery when empty)
//
// Returns:
//   - *SQLite: Resolver using db
//   - error: Prepare error (e.g. missing table)
func NewSQLite(ctx context.Context, db *sql.DB, query string) (*SQLite, error) {
	if query == "" {
		query = DefaultSQLiteQuery
	}

	stmt, err := db.PrepareContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("prepare lookup query: %w", classifySQLiteError(err))
	}

	return &SQLite{db: db, stmt: stmt}, nil
}

// Resolve runs the lookup query for recordID.
func (s *SQLite) Resolve(ctx context.Context, recordID string) (types.RecordMeta, bool, error) {
	var (
		group sql.NullString
		key   sql.NullFloat64
	)

	err := s.stmt.QueryRowContext(ctx, recordID).Scan(&group, &key)
	if errors.Is(err, sql.ErrNoRows) {
		return types.RecordMeta{}, false, nil
	}
	if err != nil {
		return types.RecordMeta{}, false, classifySQLiteError(err)
	}

	if !group.Valid || group.String == "" || !key.Valid {
		return types.RecordMeta{}, false, nil
	}

	return types.RecordMeta{GroupID: group.String, SortKey: key.Float64}, true, nil
}

// Close releases the prepared statement, and the database when it was opened
// by OpenSQLite.
func (s *SQLite) Close() error {
	err := s.stmt.Close()
	if s.ownsDB {
		err = errors.Join(err, s.db.Close())
	}

	return err
}

// classifySQLiteError marks lock contention as a transient connectivity error
// so a Retrying resolver will try again.
func classifySQLiteError(err error) error {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) &&
		(sqliteErr.Code == sqlite3.ErrBusy || sqliteErr.Code == sqlite3.ErrLocked) {
		return fmt.Errorf("%w: %w", types.ErrConnectivity, err)
	}

	return err
}
