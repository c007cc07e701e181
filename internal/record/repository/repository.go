// Package repository holds the store backends for the single record.
package repository

import (
	"context"

	"github.com/gogotex/entertext/internal/record"
	"github.com/google/uuid"
)

// Repository persists the record. Every method is a single statement against the
// backend; callers get record.ErrNotFound from Get when the row is absent.
type Repository interface {
	// Init creates the namespace/table when missing. Safe to call repeatedly.
	Init(ctx context.Context) error
	Get(ctx context.Context, id uuid.UUID) (*record.Record, error)
	// Upsert writes content under id and stamps created_at with the store's clock.
	Upsert(ctx context.Context, id uuid.UUID, content string) error
	// Delete removes the row; deleting a missing row is not an error.
	Delete(ctx context.Context, id uuid.UUID) error
	Ping(ctx context.Context) error
	Close() error
}
