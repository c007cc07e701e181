package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/gogotex/entertext/internal/record"
	"github.com/google/uuid"
)

// SQLiteRepo stores the record in SQLite. SQLite has no schemas, so the table is
// named "<namespace>_<table>". created_at holds unix milliseconds from SQLite's clock.
type SQLiteRepo struct {
	db    *sql.DB
	table string
}

const sqliteNowMillis = `CAST(strftime('%s','now') AS INTEGER) * 1000`

// NewSQLiteRepo wraps an open database handle; see database.OpenSQLite.
func NewSQLiteRepo(db *sql.DB, loc record.Location) *SQLiteRepo {
	return &SQLiteRepo{db: db, table: loc.Namespace + "_" + loc.Table}
}

func (r *SQLiteRepo) Init(ctx context.Context) error {
	stmt := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		id TEXT PRIMARY KEY,
		content TEXT,
		created_at INTEGER
	)`, r.table)
	if _, err := r.db.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("create table %s: %w", r.table, err)
	}
	return nil
}

func (r *SQLiteRepo) Get(ctx context.Context, id uuid.UUID) (*record.Record, error) {
	var (
		content   sql.NullString
		createdAt sql.NullInt64
	)
	q := fmt.Sprintf(`SELECT content, created_at FROM %s WHERE id = ? LIMIT 1`, r.table)
	err := r.db.QueryRowContext(ctx, q, id.String()).Scan(&content, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, record.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &record.Record{ID: id, Content: content.String, CreatedAt: fromMillis(createdAt.Int64)}, nil
}

func (r *SQLiteRepo) Upsert(ctx context.Context, id uuid.UUID, content string) error {
	q := fmt.Sprintf(`INSERT INTO %s (id, content, created_at) VALUES (?, ?, %s)
		ON CONFLICT(id) DO UPDATE SET content = excluded.content, created_at = excluded.created_at`,
		r.table, sqliteNowMillis)
	_, err := r.db.ExecContext(ctx, q, id.String(), content)
	return err
}

func (r *SQLiteRepo) Delete(ctx context.Context, id uuid.UUID) error {
	q := fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, r.table)
	_, err := r.db.ExecContext(ctx, q, id.String())
	return err
}

func (r *SQLiteRepo) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *SQLiteRepo) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}
