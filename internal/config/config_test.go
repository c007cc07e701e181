package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("STORE_BACKEND", "")
	t.Setenv("RECORD_ID", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	require.Equal(t, BackendCassandra, cfg.Store.Backend)
	require.Equal(t, DefaultRecordID, cfg.Record.ID)
	require.Equal(t, "prototype", cfg.Record.Namespace)
	require.Equal(t, "data", cfg.Record.Table)
	require.Equal(t, []string{"127.0.0.1:9042"}, cfg.Cassandra.Hosts)
	require.Equal(t, 5, cfg.Store.ConnectAttempts)
	require.Equal(t, time.Second, cfg.Store.ConnectBackoff)
	require.Equal(t, "0.0.0.0:3000", cfg.Addr())
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("STORE_BACKEND", "Postgres")
	t.Setenv("POSTGRES_HOST", "db")
	t.Setenv("POSTGRES_PASSWORD", "secret")
	t.Setenv("RECORD_ID", "22222222-2222-2222-2222-222222222222")
	t.Setenv("RECORD_NAMESPACE", "staging")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("RATE_LIMIT_ENABLED", "true")
	t.Setenv("RATE_LIMIT_USE_REDIS", "true")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	require.Equal(t, BackendPostgres, cfg.Store.Backend)
	require.Equal(t, "22222222-2222-2222-2222-222222222222", cfg.Record.ID)
	require.Equal(t, "staging", cfg.Record.Namespace)
	require.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.AllowedOrigins)
	require.Equal(t, "cache:6379", cfg.Redis.Addr())
	require.True(t, cfg.RateLimit.Enabled)
	require.Contains(t, cfg.Postgres.DSN(), "host=db")
	require.Contains(t, cfg.Postgres.DSN(), "password=secret")
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	cases := map[string]map[string]string{
		"unknown backend":   {"STORE_BACKEND": "oracle"},
		"bad record id":     {"RECORD_ID": "not-a-uuid"},
		"bad namespace":     {"RECORD_NAMESPACE": "proto; DROP"},
		"bad table":         {"RECORD_TABLE": "1data"},
		"mongo without uri": {"STORE_BACKEND": "mongo", "MONGODB_URI": ""},
		"redis without host": {"STORE_BACKEND": "redis", "REDIS_HOST": ""},
		"minio without endpoint": {"STORE_BACKEND": "minio", "MINIO_ENDPOINT": ""},
		"redis limiter without redis": {
			"STORE_BACKEND": "memory", "REDIS_HOST": "", "RATE_LIMIT_ENABLED": "true", "RATE_LIMIT_USE_REDIS": "true",
		},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := LoadConfig()
			require.Error(t, err)
		})
	}
}

func TestValidateMemoryBackend(t *testing.T) {
	cfg := &Config{
		Store:  StoreConfig{Backend: BackendMemory, ConnectAttempts: 1},
		Record: RecordConfig{ID: DefaultRecordID, Namespace: "prototype", Table: "data"},
	}
	require.NoError(t, cfg.Validate())
}
