package testing

import (
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3" // registers the sqlite3 driver
)

// Song is one row of the songs table created by CreateSongsDB.
type Song struct {
	TrackID  string
	ArtistID string
	Year     int
}

// CreateSongsDB creates a SQLite database in a temporary directory with a
// songs(track_id, artist_id, year) table holding the given rows.
//
// Parameters:
//   - t: Testing context (the file is removed with t.TempDir)
//   - songs: Rows to insert
//
// Returns:
//   - string: Path to the database file
func CreateSongsDB(t *testing.T, songs []Song) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "track_metadata.db")
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatalf("Failed to open SQLite database: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec(`CREATE TABLE songs (track_id TEXT PRIMARY KEY, artist_id TEXT, year INT)`); err != nil {
		t.Fatalf("Failed to create songs table: %v", err)
	}

	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("Failed to begin transaction: %v", err)
	}
	stmt, err := tx.Prepare(`INSERT INTO songs (track_id, artist_id, year) VALUES (?, ?, ?)`)
	if err != nil {
		t.Fatalf("Failed to prepare insert: %v", err)
	}
	defer stmt.Close()

	for _, s := range songs {
		if _, err := stmt.Exec(s.TrackID, s.ArtistID, s.Year); err != nil {
			_ = tx.Rollback()
			t.Fatalf("Failed to insert song %s: %v", s.TrackID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		t.Fatalf("Failed to commit songs: %v", err)
	}

	return path
}
