// Package redis holds the optional Redis integration: the client used by the
// readiness probe and the assignment deduper.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Config selects the Redis server. A zero PingTimeout uses pingTimeout.
type Config struct {
	Addr        string
	DB          int
	PingTimeout time.Duration
}

const (
	pingTimeout = 3 * time.Second
	// Dedup calls sit on the request path; keep them short.
	opTimeout = 500 * time.Millisecond
)

// Connect dials Redis and pings it once. A failed ping closes the client.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	if cfg.Addr == "" {
		return nil, fmt.Errorf("redis connect: empty address")
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		DB:           cfg.DB,
		DialTimeout:  pingTimeout,
		ReadTimeout:  opTimeout,
		WriteTimeout: opTimeout,
	})

	wait := cfg.PingTimeout
	if wait <= 0 {
		wait = pingTimeout
	}
	pingCtx, cancel := context.WithTimeout(ctx, wait)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis connect %s: %w", cfg.Addr, err)
	}
	return client, nil
}
