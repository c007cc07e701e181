package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gocql/gocql"
	"github.com/gogotex/entertext/internal/record"
	"github.com/google/uuid"
)

// CassandraRepo stores the record in keyspace.table on Cassandra/ScyllaDB.
type CassandraRepo struct {
	session           *gocql.Session
	loc               record.Location
	replicationFactor int
}

func NewCassandraRepo(session *gocql.Session, loc record.Location, replicationFactor int) *CassandraRepo {
	if replicationFactor < 1 {
		replicationFactor = 1
	}
	return &CassandraRepo{session: session, loc: loc, replicationFactor: replicationFactor}
}

// Init creates the keyspace (SimpleStrategy) and the table when either is missing.
func (r *CassandraRepo) Init(ctx context.Context) error {
	ks := fmt.Sprintf(`CREATE KEYSPACE IF NOT EXISTS %s WITH replication = {'class': 'SimpleStrategy', 'replication_factor': %d}`,
		r.loc.Namespace, r.replicationFactor)
	if err := r.session.Query(ks).WithContext(ctx).Exec(); err != nil {
		return fmt.Errorf("create keyspace %s: %w", r.loc.Namespace, err)
	}
	tbl := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		id uuid PRIMARY KEY,
		content text,
		created_at timestamp
	)`, r.loc.Qualified())
	if err := r.session.Query(tbl).WithContext(ctx).Exec(); err != nil {
		return fmt.Errorf("create table %s: %w", r.loc.Qualified(), err)
	}
	return nil
}

func (r *CassandraRepo) Get(ctx context.Context, id uuid.UUID) (*record.Record, error) {
	var (
		content   string
		createdAt time.Time
	)
	q := fmt.Sprintf(`SELECT content, created_at FROM %s WHERE id = ? LIMIT 1`, r.loc.Qualified())
	err := r.session.Query(q, gocql.UUID(id)).WithContext(ctx).Scan(&content, &createdAt)
	if errors.Is(err, gocql.ErrNotFound) {
		return nil, record.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &record.Record{ID: id, Content: content, CreatedAt: createdAt.UTC()}, nil
}

// Upsert relies on CQL INSERT semantics: inserting an existing primary key overwrites it.
func (r *CassandraRepo) Upsert(ctx context.Context, id uuid.UUID, content string) error {
	q := fmt.Sprintf(`INSERT INTO %s (id, content, created_at) VALUES (?, ?, toTimestamp(now()))`, r.loc.Qualified())
	return r.session.Query(q, gocql.UUID(id), content).WithContext(ctx).Exec()
}

func (r *CassandraRepo) Delete(ctx context.Context, id uuid.UUID) error {
	q := fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, r.loc.Qualified())
	return r.session.Query(q, gocql.UUID(id)).WithContext(ctx).Exec()
}

func (r *CassandraRepo) Ping(ctx context.Context) error {
	return r.session.Query(`SELECT release_version FROM system.local`).WithContext(ctx).Exec()
}

func (r *CassandraRepo) Close() error {
	r.session.Close()
	return nil
}
