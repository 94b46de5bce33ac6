package main

import (
	"context"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"fulfillment-routing-service/internal/adapters/repositories"
	"fulfillment-routing-service/internal/config"
	"fulfillment-routing-service/internal/platform/db"
	"fulfillment-routing-service/internal/platform/obs"
)

// dbtool prepares the Postgres schema that records routing simulations.
func main() {
	loaded := config.LoadDotEnv()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	logger, err := obs.NewLogger(cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	if !loaded {
		logger.Info("no .env file found (using environment variables)")
	}
	if cfg.DatabaseURL == "" {
		logger.Fatal("DATABASE_URL is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	conn, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("open database", zap.Error(err))
	}
	defer conn.Close()

	logger.Info("initializing database schema")
	if err := repositories.InitSchema(conn); err != nil {
		logger.Fatal("schema initialization failed", zap.Error(err))
	}
	logger.Info("schema ready")
}
