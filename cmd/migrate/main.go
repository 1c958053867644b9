// migrate creates or updates the database schema and exits.
// Run: go run ./cmd/migrate
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ganeshgampa27/Capstone-Project-Backend-code/config"
	"github.com/ganeshgampa27/Capstone-Project-Backend-code/internal/infrastructure/postgres"
	ctxlog "github.com/ganeshgampa27/Capstone-Project-Backend-code/internal/log"
	"github.com/lmittmann/tint"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := newLogger(cfg.Env, cfg.SlogLevel())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()

	logger.Info("db connected")

	db, err := postgres.NewGorm(pool, logger)
	if err != nil {
		log.Fatalf("gorm: %v", err)
	}

	start := time.Now()
	if err := postgres.Migrate(ctx, db); err != nil {
		log.Fatalf("%v", err)
	}
	logger.Info("migrations applied", "duration", time.Since(start))
}

func newLogger(env string, level slog.Level) *slog.Logger {
	var inner slog.Handler
	if env == "local" {
		inner = tint.NewHandler(os.Stdout, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		})
	} else {
		inner = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: level,
		})
	}
	return slog.New(ctxlog.NewContextHandler(inner))
}
