package source

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	flexgptest "github.com/flexgp/flexgp/testing"
	"github.com/flexgp/flexgp/types"
)

func songsFixture(t *testing.T) string {
	t.Helper()

	return flexgptest.CreateSongsDB(t, []flexgptest.Song{
		{TrackID: "TR01", ArtistID: "AR1", Year: 1994},
		{TrackID: "TR02", ArtistID: "AR1", Year: 1998},
		{TrackID: "TR03", ArtistID: "AR2", Year: 2005},
		{TrackID: "TR04", ArtistID: "AR3", Year: 0},
	})
}

func TestSQLite_Resolve(t *testing.T) {
	ctx := context.Background()
	src, err := OpenSQLite(ctx, songsFixture(t), "")
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, src.Close()) })

	t.Run("known track", func(t *testing.T) {
		meta, found, err := src.Resolve(ctx, "TR03")
		require.NoError(t, err)
		require.True(t, found)
		require.Equal(t, types.RecordMeta{GroupID: "AR2", SortKey: 2005}, meta)
	})

	t.Run("unknown year is excluded", func(t *testing.T) {
		_, found, err := src.Resolve(ctx, "TR04")
		require.NoError(t, err)
		require.False(t, found)
	})

	t.Run("missing track is excluded", func(t *testing.T) {
		_, found, err := src.Resolve(ctx, "TR99")
		require.NoError(t, err)
		require.False(t, found)
	})
}

func TestSQLite_CustomQuery(t *testing.T) {
	ctx := context.Background()
	src, err := OpenSQLite(ctx, songsFixture(t),
		`SELECT artist_id, year FROM songs WHERE track_id = ?`)
	require.NoError(t, err)
	defer src.Close()

	meta, found, err := src.Resolve(ctx, "TR04")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "AR3", meta.GroupID)
	require.Zero(t, meta.SortKey)
}

func TestOpenSQLite_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("missing file", func(t *testing.T) {
		_, err := OpenSQLite(ctx, filepath.Join(t.TempDir(), "absent.db"), "")
		require.ErrorIs(t, err, types.ErrConnectivity)
	})

	t.Run("missing table", func(t *testing.T) {
		_, err := OpenSQLite(ctx, songsFixture(t), `SELECT a, b FROM albums WHERE id = ?`)
		require.Error(t, err)
	})
}

func TestClassifySQLiteError(t *testing.T) {
	busy := sqlite3.Error{Code: sqlite3.ErrBusy}
	require.ErrorIs(t, classifySQLiteError(busy), types.ErrConnectivity)
	require.ErrorIs(t, classifySQLiteError(fmt.Errorf("query: %w", busy)), types.ErrConnectivity)

	other := errors.New("syntax error")
	require.Equal(t, other, classifySQLiteError(other))
}
