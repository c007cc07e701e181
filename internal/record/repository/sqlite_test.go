package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/gogotex/entertext/internal/record"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func openSQLiteRepo(t *testing.T) (*SQLiteRepo, *sql.DB) {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	// each connection to :memory: is its own database
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	return NewSQLiteRepo(db, record.DefaultLocation), db
}

func tableSQL(t *testing.T, db *sql.DB, name string) string {
	t.Helper()
	var stmt string
	err := db.QueryRow(`SELECT sql FROM sqlite_master WHERE type = 'table' AND name = ?`, name).Scan(&stmt)
	require.NoError(t, err)
	return stmt
}

func TestSQLiteRepoInitIsIdempotent(t *testing.T) {
	r, db := openSQLiteRepo(t)
	ctx := context.Background()

	require.NoError(t, r.Init(ctx))
	first := tableSQL(t, db, "prototype_data")
	require.NoError(t, r.Upsert(ctx, testID, "kept"))

	require.NoError(t, r.Init(ctx))
	require.Equal(t, first, tableSQL(t, db, "prototype_data"))

	got, err := r.Get(ctx, testID)
	require.NoError(t, err)
	require.Equal(t, "kept", got.Content)
}

func TestSQLiteRepoUpsertOverwrites(t *testing.T) {
	r, db := openSQLiteRepo(t)
	ctx := context.Background()
	require.NoError(t, r.Init(ctx))

	_, err := r.Get(ctx, testID)
	require.ErrorIs(t, err, record.ErrNotFound)

	require.NoError(t, r.Upsert(ctx, testID, "hello"))
	require.NoError(t, r.Upsert(ctx, testID, "world"))

	got, err := r.Get(ctx, testID)
	require.NoError(t, err)
	require.Equal(t, "world", got.Content)
	require.WithinDuration(t, time.Now(), got.CreatedAt, time.Minute)

	var rows int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM prototype_data`).Scan(&rows))
	require.Equal(t, 1, rows)
}

func TestSQLiteRepoDelete(t *testing.T) {
	r, _ := openSQLiteRepo(t)
	ctx := context.Background()
	require.NoError(t, r.Init(ctx))

	// missing row
	require.NoError(t, r.Delete(ctx, testID))

	require.NoError(t, r.Upsert(ctx, testID, "bye"))
	require.NoError(t, r.Delete(ctx, testID))
	_, err := r.Get(ctx, testID)
	require.ErrorIs(t, err, record.ErrNotFound)
}

func TestSQLiteRepoWithoutInitFails(t *testing.T) {
	r, _ := openSQLiteRepo(t)
	_, err := r.Get(context.Background(), testID)
	require.Error(t, err)
	require.NotErrorIs(t, err, record.ErrNotFound)
}

func TestSQLiteRepoCustomLocation(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	defer db.Close()

	r := NewSQLiteRepo(db, record.Location{Namespace: "staging", Table: "notes"})
	require.NoError(t, r.Init(context.Background()))
	require.Contains(t, tableSQL(t, db, "staging_notes"), "content TEXT")
}
