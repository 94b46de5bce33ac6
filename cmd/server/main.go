package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"fulfillment-routing-service/internal/adapters/cache"
	"fulfillment-routing-service/internal/adapters/catalog"
	"fulfillment-routing-service/internal/adapters/repositories"
	"fulfillment-routing-service/internal/api"
	"fulfillment-routing-service/internal/config"
	"fulfillment-routing-service/internal/platform/db"
	"fulfillment-routing-service/internal/platform/obs"
	"fulfillment-routing-service/internal/pricing"
	"fulfillment-routing-service/internal/services"
)

// main is the application composition root.
// It wires the rate card catalog, the routing engine and the optional
// Postgres run store and Redis result cache, then starts the HTTP server.
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

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cat, err := catalog.LoadFile(cfg.CatalogPath)
	if err != nil {
		return err
	}
	cards, _ := cat.ListRateCards(ctx)
	logger.Info("catalog loaded",
		zap.String("path", cfg.CatalogPath),
		zap.Int("rate_cards", len(cards)),
		zap.Int("zones", len(cat.Zones())),
	)

	engine := services.NewRoutingEngine(services.EngineConfig{
		Zones: pricing.NewZoneResolver(cat.Zones()).WithDefault(cat.DefaultZone()),
		Priority: services.PriorityPolicy{
			Zone:               cfg.PriorityZone,
			OwnedVendorMarkers: cfg.OwnedVendorMarkers,
		},
		Parallelism: cfg.EngineParallelism,
	})
	metrics := obs.NewMetrics("routing")

	svc := &services.RoutingService{
		Catalog: cat,
		Engine:  engine,
		Metrics: metrics,
	}

	if cfg.DatabaseURL != "" {
		conn, err := openStore(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer conn.Close()
		svc.Store = repositories.NewSQLSimulationStore(conn)
		logger.Info("simulation runs recorded in postgres")
	}

	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer client.Close()
		svc.Cache = cache.NewRedisResultCache(client, cfg.CacheTTL, logger)
		logger.Info("result cache enabled", zap.String("addr", cfg.RedisAddr), zap.Duration("ttl", cfg.CacheTTL))
	}

	router := api.NewRouter(api.Deps{
		Catalog: cat,
		Service: svc,
		Logger:  logger,
		Metrics: metrics,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// openStore connects to Postgres and makes sure the runs table exists.
func openStore(ctx context.Context, databaseURL string) (*sql.DB, error) {
	conn, err := db.Open(ctx, databaseURL)
	if err != nil {
		return nil, err
	}
	if err := repositories.InitSchema(conn); err != nil {
		conn.Close()
		return nil, err
	}
	return conn, nil
}
