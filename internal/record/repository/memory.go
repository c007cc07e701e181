package repository

import (
	"context"
	"sync"
	"time"

	"github.com/gogotex/entertext/internal/record"
	"github.com/google/uuid"
)

// MemoryRepo keeps the record in process memory. Used for local development and tests.
type MemoryRepo struct {
	mu    sync.RWMutex
	store map[uuid.UUID]record.Record
	now   func() time.Time
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{store: make(map[uuid.UUID]record.Record), now: time.Now}
}

func (m *MemoryRepo) Init(ctx context.Context) error { return ctx.Err() }

func (m *MemoryRepo) Get(ctx context.Context, id uuid.UUID) (*record.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.store[id]
	if !ok {
		return nil, record.ErrNotFound
	}
	return &r, nil
}

func (m *MemoryRepo) Upsert(ctx context.Context, id uuid.UUID, content string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.store[id] = record.Record{ID: id, Content: content, CreatedAt: m.now().UTC()}
	return nil
}

func (m *MemoryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.store, id)
	return nil
}

func (m *MemoryRepo) Ping(ctx context.Context) error { return ctx.Err() }

func (m *MemoryRepo) Close() error { return nil }
