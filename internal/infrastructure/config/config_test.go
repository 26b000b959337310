package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/require"

	"github.com/trainerdesk/coach-api/internal/infrastructure/db/sqlstore"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET": "secret",
	}))
	require.NoError(t, err)

	require.Equal(t, "3001", cfg.Port)
	require.Equal(t, EnvDevelopment, cfg.Env)
	require.Equal(t, 24*time.Hour, cfg.TokenTTL)
	require.True(t, cfg.IsDevelopment())
	require.Empty(t, cfg.Redis.Addr)
	require.Equal(t, sqlstore.Options{Dialect: sqlstore.DialectSQLite, DSN: "./db/dev.sqlite3"}, cfg.StoreOptions())
}

func TestLoad_RequiresSecret(t *testing.T) {
	_, err := load(context.Background(), envconfig.MapLookuper(map[string]string{}))
	require.Error(t, err)
}

func TestLoad_RejectsUnknownEnv(t *testing.T) {
	_, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET": "secret",
		"ENV":        "staging",
	}))
	require.Error(t, err)
}

func TestStoreOptions(t *testing.T) {
	tests := map[string]struct {
		env  map[string]string
		want sqlstore.Options
	}{
		"test env uses test file": {
			env:  map[string]string{"JWT_SECRET": "s", "ENV": "test", "SQLITE_DB_FILE_TEST": "/tmp/t.db"},
			want: sqlstore.Options{Dialect: sqlstore.DialectSQLite, DSN: "/tmp/t.db"},
		},
		"database url selects postgres": {
			env:  map[string]string{"JWT_SECRET": "s", "ENV": "test", "DATABASE_URL": "postgres://u@h/db"},
			want: sqlstore.Options{Dialect: sqlstore.DialectPostgres, DSN: "postgres://u@h/db"},
		},
		"production sqlite file": {
			env:  map[string]string{"JWT_SECRET": "s", "ENV": "production", "SQLITE_DB_FILE": "/var/lib/coach.db"},
			want: sqlstore.Options{Dialect: sqlstore.DialectSQLite, DSN: "/var/lib/coach.db"},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			cfg, err := load(context.Background(), envconfig.MapLookuper(tc.env))
			require.NoError(t, err)
			require.Equal(t, tc.want, cfg.StoreOptions())
		})
	}
}
