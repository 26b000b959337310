// Package sqlstore implements the core repositories on a relational
// database through sqlx. SQLite (modernc.org/sqlite) and PostgreSQL
// (lib/pq) share the same queries; placeholders are rebound per driver.
package sqlstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

const pingTimeout = 5 * time.Second

func init() {
	// modernc registers as "sqlite", which sqlx does not know by default.
	sqlx.BindDriver(string(DialectSQLite), sqlx.QUESTION)
}

// Options selects the backing database.
type Options struct {
	Dialect Dialect
	// DSN is a postgres connection URL, or a file path for SQLite.
	DSN string
}

// Open connects to the configured database and verifies it with a ping.
func Open(ctx context.Context, opts Options) (*sqlx.DB, error) {
	var (
		db  *sqlx.DB
		err error
	)

	switch opts.Dialect {
	case DialectPostgres:
		db, err = sqlx.Open(string(DialectPostgres), opts.DSN)
	case DialectSQLite, "":
		db, err = openSQLite(opts.DSN)
	default:
		return nil, fmt.Errorf("unsupported dialect %q", opts.Dialect)
	}
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", db.DriverName(), err)
	}
	return db, nil
}

func openSQLite(path string) (*sqlx.DB, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}

	cleanPath := filepath.Clean(path)
	if dir := filepath.Dir(cleanPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create sqlite dir: %w", err)
		}
	}

	db, err := sqlx.Open(string(DialectSQLite), SQLiteDSN(cleanPath))
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// a single connection serialises writers and keeps pragmas consistent
	db.SetMaxOpenConns(1)
	return db, nil
}

// SQLiteDSN builds a modernc DSN with foreign keys and a busy timeout enabled.
func SQLiteDSN(path string) string {
	return path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}
