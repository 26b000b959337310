package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/trainerdesk/coach-api/internal/api"
	redisstore "github.com/trainerdesk/coach-api/internal/infrastructure/db/redis"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		cfg, log, db, err := bootstrap(ctx)
		if err != nil {
			return err
		}
		defer db.Close()

		var rdb *redis.Client
		if cfg.Redis.Addr != "" {
			rdb, err = redisstore.Connect(ctx, redisstore.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
			if err != nil {
				log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis unavailable, assignment idempotency disabled")
			} else {
				defer rdb.Close()
			}
		}

		e := api.NewRouter(api.Deps{
			DB:        db,
			Redis:     rdb,
			JWTSecret: cfg.JWTSecret,
			TokenTTL:  cfg.TokenTTL,
			Logger:    log,
		})

		errCh := make(chan error, 1)
		go func() {
			log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server listening")
			if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	},
}
