package config

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Supported store backends.
const (
	BackendCassandra = "cassandra"
	BackendPostgres  = "postgres"
	BackendMongo     = "mongo"
	BackendSQLite    = "sqlite"
	BackendRedis     = "redis"
	BackendMinIO     = "minio"
	BackendMemory    = "memory"
)

// DefaultRecordID is the identifier of the single record every deployment manages.
const DefaultRecordID = "11111111-1111-1111-1111-111111111111"

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Config holds application configuration
type Config struct {
	Server    ServerConfig
	Store     StoreConfig
	Record    RecordConfig
	Cassandra CassandraConfig
	Postgres  PostgresConfig
	MongoDB   MongoDBConfig
	SQLite    SQLiteConfig
	Redis     RedisConfig
	MinIO     MinIOConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Port           string
	Host           string
	Environment    string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	SiteRoot       string
	AllowedOrigins []string
}

// StoreConfig selects the backend and how hard startup tries to reach it.
type StoreConfig struct {
	Backend         string
	ConnectAttempts int
	ConnectBackoff  time.Duration
}

// RecordConfig locates the single record: namespace (keyspace/schema/database) and table.
type RecordConfig struct {
	ID        string
	Namespace string
	Table     string
}

type CassandraConfig struct {
	Hosts             []string
	ReplicationFactor int
	Timeout           time.Duration
}

type PostgresConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
	SSLMode  string
}

// DSN renders the keyword/value connection string understood by pgx.
func (p PostgresConfig) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		p.Host, p.User, p.Password, p.Database, p.Port, p.SSLMode)
}

type MongoDBConfig struct {
	URI     string
	Timeout time.Duration
}

type SQLiteConfig struct {
	Path string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// Addr returns host:port, or "" when Redis is not configured.
func (r RedisConfig) Addr() string {
	if r.Host == "" {
		return ""
	}
	return r.Host + ":" + r.Port
}

// MinIOConfig holds MinIO connection configuration
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
}

type RateLimitConfig struct {
	Enabled       bool
	UseRedis      bool
	RPS           float64
	Burst         int
	WindowSeconds int
}

// LoadConfig loads configuration from environment variables and .env file
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("SERVER_PORT", "3000")
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_ENVIRONMENT", "development")
	v.SetDefault("SERVER_READ_TIMEOUT", 30)
	v.SetDefault("SERVER_WRITE_TIMEOUT", 30)
	v.SetDefault("ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("STORE_BACKEND", BackendCassandra)
	v.SetDefault("STORE_CONNECT_ATTEMPTS", 5)
	v.SetDefault("STORE_CONNECT_BACKOFF_MS", 1000)
	v.SetDefault("RECORD_ID", DefaultRecordID)
	v.SetDefault("RECORD_NAMESPACE", "prototype")
	v.SetDefault("RECORD_TABLE", "data")
	v.SetDefault("CASSANDRA_HOSTS", "127.0.0.1:9042")
	v.SetDefault("CASSANDRA_REPLICATION_FACTOR", 1)
	v.SetDefault("CASSANDRA_TIMEOUT", 10)
	v.SetDefault("POSTGRES_HOST", "localhost")
	v.SetDefault("POSTGRES_PORT", "5432")
	v.SetDefault("POSTGRES_USER", "postgres")
	v.SetDefault("POSTGRES_DATABASE", "entertext")
	v.SetDefault("POSTGRES_SSLMODE", "disable")
	v.SetDefault("MONGODB_TIMEOUT", 10)
	v.SetDefault("SQLITE_PATH", "data/entertext.db")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("MINIO_BUCKET", "entertext")
	v.SetDefault("RATE_LIMIT_RPS", 5.0)
	v.SetDefault("RATE_LIMIT_BURST", 10)
	v.SetDefault("RATE_LIMIT_WINDOW_SECONDS", 1)

	cfg := &Config{
		Server: ServerConfig{
			Port:           v.GetString("SERVER_PORT"),
			Host:           v.GetString("SERVER_HOST"),
			Environment:    v.GetString("SERVER_ENVIRONMENT"),
			ReadTimeout:    time.Duration(v.GetInt("SERVER_READ_TIMEOUT")) * time.Second,
			WriteTimeout:   time.Duration(v.GetInt("SERVER_WRITE_TIMEOUT")) * time.Second,
			SiteRoot:       v.GetString("SITE_ROOT"),
			AllowedOrigins: splitList(v.GetString("ALLOWED_ORIGINS")),
		},
		Store: StoreConfig{
			Backend:         strings.ToLower(strings.TrimSpace(v.GetString("STORE_BACKEND"))),
			ConnectAttempts: v.GetInt("STORE_CONNECT_ATTEMPTS"),
			ConnectBackoff:  time.Duration(v.GetInt("STORE_CONNECT_BACKOFF_MS")) * time.Millisecond,
		},
		Record: RecordConfig{
			ID:        v.GetString("RECORD_ID"),
			Namespace: v.GetString("RECORD_NAMESPACE"),
			Table:     v.GetString("RECORD_TABLE"),
		},
		Cassandra: CassandraConfig{
			Hosts:             splitList(v.GetString("CASSANDRA_HOSTS")),
			ReplicationFactor: v.GetInt("CASSANDRA_REPLICATION_FACTOR"),
			Timeout:           time.Duration(v.GetInt("CASSANDRA_TIMEOUT")) * time.Second,
		},
		Postgres: PostgresConfig{
			Host:     v.GetString("POSTGRES_HOST"),
			Port:     v.GetString("POSTGRES_PORT"),
			User:     v.GetString("POSTGRES_USER"),
			Password: v.GetString("POSTGRES_PASSWORD"),
			Database: v.GetString("POSTGRES_DATABASE"),
			SSLMode:  v.GetString("POSTGRES_SSLMODE"),
		},
		MongoDB: MongoDBConfig{
			URI:     v.GetString("MONGODB_URI"),
			Timeout: time.Duration(v.GetInt("MONGODB_TIMEOUT")) * time.Second,
		},
		SQLite: SQLiteConfig{
			Path: v.GetString("SQLITE_PATH"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetString("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		MinIO: MinIOConfig{
			Endpoint:  v.GetString("MINIO_ENDPOINT"),
			AccessKey: v.GetString("MINIO_ACCESS_KEY"),
			SecretKey: v.GetString("MINIO_SECRET_KEY"),
			UseSSL:    v.GetBool("MINIO_USE_SSL"),
			Bucket:    v.GetString("MINIO_BUCKET"),
		},
		RateLimit: RateLimitConfig{
			Enabled:       v.GetBool("RATE_LIMIT_ENABLED"),
			UseRedis:      v.GetBool("RATE_LIMIT_USE_REDIS"),
			RPS:           v.GetFloat64("RATE_LIMIT_RPS"),
			Burst:         v.GetInt("RATE_LIMIT_BURST"),
			WindowSeconds: v.GetInt("RATE_LIMIT_WINDOW_SECONDS"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings the selected backend depends on.
func (c *Config) Validate() error {
	if _, err := uuid.Parse(c.Record.ID); err != nil {
		return fmt.Errorf("RECORD_ID %q is not a valid UUID: %w", c.Record.ID, err)
	}
	if !identifierPattern.MatchString(c.Record.Namespace) {
		return fmt.Errorf("RECORD_NAMESPACE %q is not a valid identifier", c.Record.Namespace)
	}
	if !identifierPattern.MatchString(c.Record.Table) {
		return fmt.Errorf("RECORD_TABLE %q is not a valid identifier", c.Record.Table)
	}
	if c.Store.ConnectAttempts < 1 {
		return fmt.Errorf("STORE_CONNECT_ATTEMPTS must be at least 1")
	}

	switch c.Store.Backend {
	case BackendCassandra:
		if len(c.Cassandra.Hosts) == 0 {
			return fmt.Errorf("CASSANDRA_HOSTS is required for the %s backend", c.Store.Backend)
		}
		if c.Cassandra.ReplicationFactor < 1 {
			return fmt.Errorf("CASSANDRA_REPLICATION_FACTOR must be at least 1")
		}
	case BackendPostgres:
		if c.Postgres.Host == "" || c.Postgres.Database == "" {
			return fmt.Errorf("POSTGRES_HOST and POSTGRES_DATABASE are required for the %s backend", c.Store.Backend)
		}
	case BackendMongo:
		if c.MongoDB.URI == "" {
			return fmt.Errorf("MONGODB_URI is required for the %s backend", c.Store.Backend)
		}
	case BackendSQLite:
		if strings.TrimSpace(c.SQLite.Path) == "" {
			return fmt.Errorf("SQLITE_PATH is required for the %s backend", c.Store.Backend)
		}
	case BackendRedis:
		if c.Redis.Host == "" {
			return fmt.Errorf("REDIS_HOST is required for the %s backend", c.Store.Backend)
		}
	case BackendMinIO:
		if c.MinIO.Endpoint == "" || c.MinIO.Bucket == "" {
			return fmt.Errorf("MINIO_ENDPOINT and MINIO_BUCKET are required for the %s backend", c.Store.Backend)
		}
	case BackendMemory:
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.Store.Backend)
	}

	if c.RateLimit.Enabled && c.RateLimit.UseRedis && c.Redis.Host == "" {
		return fmt.Errorf("RATE_LIMIT_USE_REDIS requires REDIS_HOST")
	}
	return nil
}

// Addr is the listen address of the HTTP server.
func (c *Config) Addr() string {
	return c.Server.Host + ":" + c.Server.Port
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
