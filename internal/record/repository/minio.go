package repository

import (
	"context"
	"errors"

	"github.com/gogotex/entertext/internal/record"
	"github.com/gogotex/entertext/internal/storage"
	"github.com/google/uuid"
)

// ObjectStore is the subset of storage.MinIOStorage the object backend needs.
type ObjectStore interface {
	EnsureBucket(ctx context.Context) error
	PutText(ctx context.Context, key, body string) error
	GetText(ctx context.Context, key string) (*storage.Object, error)
	Remove(ctx context.Context, key string) error
	Ping(ctx context.Context) error
}

// ObjectRepo stores the record as the object "<namespace>/<table>/<id>".
// created_at is the object's LastModified as reported by the object server.
type ObjectRepo struct {
	store  ObjectStore
	prefix string
}

func NewObjectRepo(store ObjectStore, loc record.Location) *ObjectRepo {
	return &ObjectRepo{store: store, prefix: loc.Namespace + "/" + loc.Table + "/"}
}

func (r *ObjectRepo) key(id uuid.UUID) string { return r.prefix + id.String() }

func (r *ObjectRepo) Init(ctx context.Context) error {
	return r.store.EnsureBucket(ctx)
}

func (r *ObjectRepo) Get(ctx context.Context, id uuid.UUID) (*record.Record, error) {
	obj, err := r.store.GetText(ctx, r.key(id))
	if errors.Is(err, storage.ErrObjectNotFound) {
		return nil, record.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &record.Record{ID: id, Content: obj.Body, CreatedAt: obj.LastModified}, nil
}

func (r *ObjectRepo) Upsert(ctx context.Context, id uuid.UUID, content string) error {
	return r.store.PutText(ctx, r.key(id), content)
}

func (r *ObjectRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.store.Remove(ctx, r.key(id))
}

func (r *ObjectRepo) Ping(ctx context.Context) error { return r.store.Ping(ctx) }

func (r *ObjectRepo) Close() error { return nil }
