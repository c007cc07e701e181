package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/gogotex/entertext/internal/record"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostgresRepo stores the record in "<namespace>.<table>" through gorm.
type PostgresRepo struct {
	db  *gorm.DB
	loc record.Location
}

func NewPostgresRepo(db *gorm.DB, loc record.Location) *PostgresRepo {
	return &PostgresRepo{db: db, loc: loc}
}

func (r *PostgresRepo) table(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Table(r.loc.Qualified())
}

func (r *PostgresRepo) Init(ctx context.Context) error {
	db := r.db.WithContext(ctx)
	if err := db.Exec(fmt.Sprintf(`CREATE SCHEMA IF NOT EXISTS %s`, r.loc.Namespace)).Error; err != nil {
		return fmt.Errorf("create schema %s: %w", r.loc.Namespace, err)
	}
	stmt := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		id uuid PRIMARY KEY,
		content text,
		created_at timestamptz
	)`, r.loc.Qualified())
	if err := db.Exec(stmt).Error; err != nil {
		return fmt.Errorf("create table %s: %w", r.loc.Qualified(), err)
	}
	return nil
}

func (r *PostgresRepo) Get(ctx context.Context, id uuid.UUID) (*record.Record, error) {
	var rec record.Record
	err := r.table(ctx).Where("id = ?", id).Limit(1).Take(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, record.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *PostgresRepo) Upsert(ctx context.Context, id uuid.UUID, content string) error {
	now := gorm.Expr("now()")
	return r.table(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"content": content, "created_at": now}),
		}).
		Create(map[string]interface{}{"id": id, "content": content, "created_at": now}).Error
}

func (r *PostgresRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.table(ctx).Where("id = ?", id).Delete(&record.Record{}).Error
}

func (r *PostgresRepo) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (r *PostgresRepo) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
