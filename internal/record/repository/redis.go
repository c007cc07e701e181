package repository

import (
	"context"
	"strconv"

	"github.com/gogotex/entertext/internal/record"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisRepo stores the record as a hash under "<namespace>:<table>:<id>" with fields
// content and created_at (unix millis from the Redis server clock).
type RedisRepo struct {
	client *redis.Client
	prefix string
}

func NewRedisRepo(client *redis.Client, loc record.Location) *RedisRepo {
	return &RedisRepo{client: client, prefix: loc.Namespace + ":" + loc.Table + ":"}
}

func (r *RedisRepo) key(id uuid.UUID) string {
	return r.prefix + id.String()
}

// Init only checks connectivity: Redis has no schema to create.
func (r *RedisRepo) Init(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisRepo) Get(ctx context.Context, id uuid.UUID) (*record.Record, error) {
	vals, err := r.client.HMGet(ctx, r.key(id), "content", "created_at").Result()
	if err != nil {
		return nil, err
	}
	content, ok := vals[0].(string)
	if !ok {
		return nil, record.ErrNotFound
	}
	rec := &record.Record{ID: id, Content: content}
	if s, ok := vals[1].(string); ok {
		if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
			rec.CreatedAt = fromMillis(ms)
		}
	}
	return rec, nil
}

func (r *RedisRepo) Upsert(ctx context.Context, id uuid.UUID, content string) error {
	now, err := r.client.Time(ctx).Result()
	if err != nil {
		return err
	}
	return r.client.HSet(ctx, r.key(id), "content", content, "created_at", now.UnixMilli()).Err()
}

func (r *RedisRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.client.Del(ctx, r.key(id)).Err()
}

func (r *RedisRepo) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisRepo) Close() error {
	return r.client.Close()
}
