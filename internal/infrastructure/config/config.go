package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"

	"github.com/trainerdesk/coach-api/internal/infrastructure/db/sqlstore"
)

const (
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"
)

type Config struct {
	Port      string        `env:"PORT,      default=3001"`
	Env       string        `env:"ENV,       default=development"`
	JWTSecret string        `env:"JWT_SECRET, required"`
	LogLevel  string        `env:"LOG_LEVEL, default=info"`
	TokenTTL  time.Duration `env:"TOKEN_TTL, default=24h"`

	Database DatabaseConfig
	Redis    RedisConfig
}

type DatabaseConfig struct {
	// URL selects PostgreSQL when set.
	URL            string `env:"DATABASE_URL"`
	SQLiteFile     string `env:"SQLITE_DB_FILE,      default=./db/dev.sqlite3"`
	SQLiteTestFile string `env:"SQLITE_DB_FILE_TEST, default=./db/test.sqlite3"`
}

type RedisConfig struct {
	// Addr left empty disables assignment idempotency.
	Addr string `env:"REDIS_ADDR"`
	DB   int    `env:"REDIS_DB, default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	switch cfg.Env {
	case EnvDevelopment, EnvTest, EnvProduction:
	default:
		return nil, fmt.Errorf("config: unknown ENV %q", cfg.Env)
	}
	return &cfg, nil
}

// IsDevelopment reports whether human-readable logs should be used.
func (c *Config) IsDevelopment() bool {
	return c.Env == EnvDevelopment
}

// StoreOptions picks the database: DATABASE_URL wins, otherwise SQLite with
// the test file under ENV=test.
func (c *Config) StoreOptions() sqlstore.Options {
	if c.Database.URL != "" {
		return sqlstore.Options{Dialect: sqlstore.DialectPostgres, DSN: c.Database.URL}
	}
	file := c.Database.SQLiteFile
	if c.Env == EnvTest {
		file = c.Database.SQLiteTestFile
	}
	return sqlstore.Options{Dialect: sqlstore.DialectSQLite, DSN: file}
}
