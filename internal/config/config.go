// Package config assembles the service configuration.
//
// Values are resolved in three layers: built-in defaults, an optional YAML
// file, then environment variables. The result is validated once at startup.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"game-history/internal/common/pagination"
	"game-history/internal/infra/adapter/search/elasticsearch"
	"game-history/internal/infra/db"
	"game-history/internal/observability/tracing"
	"game-history/internal/resilience/circuitbreaker"
	pkgconfig "game-history/pkg/config"
)

// Supported record store backends.
const (
	BackendMemory        = "memory"
	BackendPostgres      = "postgres"
	BackendSQLite        = "sqlite"
	BackendMongoDB       = "mongodb"
	BackendElasticsearch = "elasticsearch"
)

// Config is the complete service configuration.
type Config struct {
	Server         ServerConfig          `yaml:"server"`
	Store          StoreConfig           `yaml:"store"`
	Pagination     pagination.Config     `yaml:"pagination"`
	Auth           AuthConfig            `yaml:"auth"`
	RateLimit      RateLimitConfig       `yaml:"rate_limit"`
	Log            LogConfig             `yaml:"log"`
	Tracing        tracing.Config        `yaml:"tracing"`
	CircuitBreaker circuitbreaker.Config `yaml:"circuit_breaker"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	MaxBodyBytes    int64         `yaml:"max_body_bytes"`
}

// StoreConfig selects and configures the record store.
type StoreConfig struct {
	Backend string `yaml:"backend"`
	// QueryTimeout bounds every store call. Zero disables the bound.
	QueryTimeout time.Duration `yaml:"query_timeout"`

	Postgres      PostgresConfig       `yaml:"postgres"`
	SQLite        SQLiteConfig         `yaml:"sqlite"`
	MongoDB       MongoDBConfig        `yaml:"mongodb"`
	Elasticsearch elasticsearch.Config `yaml:"elasticsearch"`
}

// PostgresConfig configures the PostgreSQL backend.
type PostgresConfig struct {
	DSN  string              `yaml:"-"`
	Pool db.ConnectionConfig `yaml:"pool"`
}

// SQLiteConfig configures the SQLite backend.
type SQLiteConfig struct {
	Path string              `yaml:"path"`
	Pool db.ConnectionConfig `yaml:"pool"`
}

// MongoDBConfig configures the MongoDB backend.
type MongoDBConfig struct {
	URI        string `yaml:"-"`
	Database   string `yaml:"database"`
	Collection string `yaml:"collection"`
}

// AuthConfig configures bearer-token authorization.
type AuthConfig struct {
	// JWTSecret is read from JWT_SECRET only.
	JWTSecret    string `yaml:"-"`
	ProtectReads bool   `yaml:"protect_reads"`
}

// RateLimitConfig configures the per-client token bucket.
type RateLimitConfig struct {
	Enabled           bool    `yaml:"enabled"`
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`
}

// LogConfig configures the process logger.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			MaxBodyBytes:    1 << 20,
		},
		Store: StoreConfig{
			Backend:      BackendMemory,
			QueryTimeout: 5 * time.Second,
			Postgres:     PostgresConfig{Pool: db.DefaultConnectionConfig()},
			SQLite: SQLiteConfig{
				Path: "game_history.db",
				Pool: db.DefaultConnectionConfig(),
			},
			MongoDB: MongoDBConfig{
				URI:        "mongodb://localhost:27017",
				Database:   "game_history",
				Collection: "game_records",
			},
			Elasticsearch: elasticsearch.Config{
				Addresses: []string{"http://localhost:9200"},
				Index:     "game_history",
			},
		},
		Pagination: pagination.DefaultConfig(),
		RateLimit: RateLimitConfig{
			Enabled:           true,
			RequestsPerSecond: 20,
			Burst:             40,
		},
		Log: LogConfig{Level: "info", Format: "json"},
		Tracing: tracing.Config{
			ServiceName:  "game-history",
			Environment:  "development",
			SamplingRate: 1.0,
		},
		CircuitBreaker: circuitbreaker.StoreConfig(),
	}
}

// Load builds the configuration from defaults, the YAML file at path
// (skipped when path is empty) and the environment, then validates it.
// The path parameter is expected to come from a trusted source (flag or env).
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		// #nosec G304 -- path is provided by the operator, not by request input
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config: %w", err)
		}
	}
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config validation failed: %w", err)
	}
	Metrics.RecordLoadTimestamp()
	return cfg, nil
}

// applyEnv overlays environment variables; unset variables keep the current value.
func (c *Config) applyEnv() {
	c.Server.Addr = pkgconfig.GetEnvString("HTTP_ADDR", c.Server.Addr)
	c.Server.ShutdownTimeout = pkgconfig.GetEnvDuration("HTTP_SHUTDOWN_TIMEOUT", c.Server.ShutdownTimeout)

	c.Store.Backend = strings.ToLower(pkgconfig.GetEnvString("STORE_BACKEND", c.Store.Backend))
	c.Store.QueryTimeout = pkgconfig.GetEnvDuration("STORE_QUERY_TIMEOUT", c.Store.QueryTimeout)
	c.Store.Postgres.DSN = pkgconfig.GetEnvString("DATABASE_URL", c.Store.Postgres.DSN)
	c.Store.SQLite.Path = pkgconfig.GetEnvString("SQLITE_PATH", c.Store.SQLite.Path)
	c.Store.MongoDB.URI = pkgconfig.GetEnvString("MONGODB_URI", c.Store.MongoDB.URI)
	c.Store.MongoDB.Database = pkgconfig.GetEnvString("MONGODB_DATABASE", c.Store.MongoDB.Database)
	c.Store.MongoDB.Collection = pkgconfig.GetEnvString("MONGODB_COLLECTION", c.Store.MongoDB.Collection)
	es := &c.Store.Elasticsearch
	es.Addresses = pkgconfig.GetEnvStringList("ELASTICSEARCH_ADDRESSES", es.Addresses)
	es.Username = pkgconfig.GetEnvString("ELASTICSEARCH_USERNAME", es.Username)
	es.Password = pkgconfig.GetEnvString("ELASTICSEARCH_PASSWORD", es.Password)
	es.Index = pkgconfig.GetEnvString("ELASTICSEARCH_INDEX", es.Index)
	es.Refresh = pkgconfig.GetEnvString("ELASTICSEARCH_REFRESH", es.Refresh)

	c.Pagination = c.Pagination.WithEnv()

	c.Auth.JWTSecret = pkgconfig.GetEnvString("JWT_SECRET", c.Auth.JWTSecret)
	c.Auth.ProtectReads = pkgconfig.GetEnvBool("AUTH_PROTECT_READS", c.Auth.ProtectReads)

	c.RateLimit.Enabled = pkgconfig.GetEnvBool("RATELIMIT_ENABLED", c.RateLimit.Enabled)
	c.RateLimit.RequestsPerSecond = pkgconfig.GetEnvFloat("RATELIMIT_RPS", c.RateLimit.RequestsPerSecond)
	c.RateLimit.Burst = pkgconfig.GetEnvInt("RATELIMIT_BURST", c.RateLimit.Burst)

	c.Log.Level = pkgconfig.GetEnvString("LOG_LEVEL", c.Log.Level)
	c.Log.Format = pkgconfig.GetEnvString("LOG_FORMAT", c.Log.Format)

	c.Tracing.Environment = pkgconfig.GetEnvString("APP_ENV", c.Tracing.Environment)
	c.Tracing.OTLPEndpoint = pkgconfig.GetEnvString("OTEL_EXPORTER_OTLP_ENDPOINT", c.Tracing.OTLPEndpoint)
	c.Tracing.SamplingRate = pkgconfig.GetEnvFloat("TRACING_SAMPLING_RATE", c.Tracing.SamplingRate)
}

// Validate checks every section and reports all problems at once.
func (c Config) Validate() error {
	var errs []error
	check := func(field string, err error) {
		if err != nil {
			Metrics.RecordValidationError(field)
			errs = append(errs, fmt.Errorf("%s: %w", field, err))
		}
	}

	if c.Server.Addr == "" {
		check("server.addr", errors.New("is required"))
	}
	check("server.read_timeout", pkgconfig.ValidatePositiveDuration(c.Server.ReadTimeout))
	check("server.write_timeout", pkgconfig.ValidatePositiveDuration(c.Server.WriteTimeout))
	check("server.shutdown_timeout", pkgconfig.ValidateDurationRange(c.Server.ShutdownTimeout, time.Second, 5*time.Minute))
	if c.Server.MaxBodyBytes <= 0 {
		check("server.max_body_bytes", errors.New("must be positive"))
	}

	check("store.query_timeout", pkgconfig.ValidateNonNegativeDuration(c.Store.QueryTimeout))
	check("store.backend", c.Store.validateBackend())

	check("pagination", c.Pagination.Validate())

	if c.RateLimit.Enabled {
		if c.RateLimit.RequestsPerSecond <= 0 {
			check("rate_limit.requests_per_second", errors.New("must be positive"))
		}
		if c.RateLimit.Burst < 1 {
			check("rate_limit.burst", errors.New("must be at least 1"))
		}
	}

	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		check("log.format", fmt.Errorf("must be json or text, got %q", c.Log.Format))
	}

	check("tracing.sampling_rate", pkgconfig.ValidateRange(c.Tracing.SamplingRate, 0, 1))

	if c.CircuitBreaker.FailureThreshold <= 0 || c.CircuitBreaker.FailureThreshold > 1 {
		check("circuit_breaker.failure_threshold", fmt.Errorf("must be in (0, 1], got %v", c.CircuitBreaker.FailureThreshold))
	}
	check("circuit_breaker.timeout", pkgconfig.ValidatePositiveDuration(c.CircuitBreaker.Timeout))

	return errors.Join(errs...)
}

func (s StoreConfig) validateBackend() error {
	switch s.Backend {
	case BackendMemory:
		return nil
	case BackendPostgres:
		if s.Postgres.DSN == "" {
			return errors.New("DATABASE_URL is required for postgres")
		}
	case BackendSQLite:
		if s.SQLite.Path == "" {
			return errors.New("sqlite path is required")
		}
	case BackendMongoDB:
		if s.MongoDB.URI == "" || s.MongoDB.Database == "" || s.MongoDB.Collection == "" {
			return errors.New("mongodb uri, database and collection are required")
		}
	case BackendElasticsearch:
		if len(s.Elasticsearch.Addresses) == 0 || s.Elasticsearch.Index == "" {
			return errors.New("elasticsearch addresses and index are required")
		}
	default:
		return fmt.Errorf("unsupported backend %q", s.Backend)
	}
	return nil
}
