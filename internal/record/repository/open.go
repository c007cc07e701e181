package repository

import (
	"context"
	"fmt"

	"github.com/gocql/gocql"
	"github.com/gogotex/entertext/internal/config"
	"github.com/gogotex/entertext/internal/database"
	"github.com/gogotex/entertext/internal/record"
	"github.com/gogotex/entertext/internal/storage"
	"github.com/gogotex/entertext/pkg/logger"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// Open connects to the configured backend, retrying with backoff, and returns its repository.
// The schema is not touched; call Init afterwards.
func Open(ctx context.Context, cfg *config.Config) (Repository, error) {
	loc := record.Location{Namespace: cfg.Record.Namespace, Table: cfg.Record.Table}
	backend := cfg.Store.Backend
	retry := func(connect func(context.Context) error) error {
		return database.Retry(ctx, backend, cfg.Store.ConnectAttempts, cfg.Store.ConnectBackoff, connect)
	}

	var repo Repository
	switch backend {
	case config.BackendCassandra:
		var session *gocql.Session
		err := retry(func(context.Context) (err error) {
			session, err = database.ConnectCassandra(cfg.Cassandra.Hosts, cfg.Cassandra.Timeout)
			return err
		})
		if err != nil {
			return nil, err
		}
		repo = NewCassandraRepo(session, loc, cfg.Cassandra.ReplicationFactor)
	case config.BackendPostgres:
		var db *gorm.DB
		err := retry(func(ctx context.Context) (err error) {
			db, err = database.ConnectPostgres(ctx, cfg.Postgres.DSN())
			return err
		})
		if err != nil {
			return nil, err
		}
		repo = NewPostgresRepo(db, loc)
	case config.BackendMongo:
		var client *mongo.Client
		err := retry(func(ctx context.Context) (err error) {
			client, err = database.ConnectMongo(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout)
			return err
		})
		if err != nil {
			return nil, err
		}
		repo = NewMongoRepo(client, loc)
	case config.BackendSQLite:
		db, err := database.OpenSQLite(ctx, cfg.SQLite.Path)
		if err != nil {
			return nil, err
		}
		repo = NewSQLiteRepo(db, loc)
	case config.BackendRedis:
		var client *redis.Client
		err := retry(func(ctx context.Context) (err error) {
			client, err = database.ConnectRedis(ctx, cfg.Redis.Addr(), cfg.Redis.Password, cfg.Redis.DB)
			return err
		})
		if err != nil {
			return nil, err
		}
		repo = NewRedisRepo(client, loc)
	case config.BackendMinIO:
		s, err := storage.NewMinIOStorage(cfg.MinIO)
		if err != nil {
			return nil, err
		}
		if err := retry(s.Ping); err != nil {
			return nil, err
		}
		repo = NewObjectRepo(s, loc)
	case config.BackendMemory:
		repo = NewMemoryRepo()
	default:
		return nil, fmt.Errorf("unknown store backend %q", backend)
	}
	logger.Infof("store: connected to %s (%s)", backend, loc.Qualified())
	return repo, nil
}
