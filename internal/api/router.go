package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"fulfillment-routing-service/internal/api/handlers"
	"fulfillment-routing-service/internal/platform/obs"
	"fulfillment-routing-service/internal/ports"
	"fulfillment-routing-service/internal/services"
)

type Deps struct {
	Catalog ports.RateCardSource
	Service *services.RoutingService
	Logger  *zap.Logger
	Metrics *obs.Metrics
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(deps Deps) http.Handler {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	rateCards := &handlers.RateCardHandler{Catalog: deps.Catalog}
	zones := &handlers.ZoneHandler{Zones: deps.Service.Engine.Zones()}
	simulations := &handlers.SimulationHandler{
		Service:  deps.Service,
		Validate: handlers.NewValidator(),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger(logger))
	r.Use(loggingMiddleware(deps.Metrics))
	r.Use(middleware.Recoverer)

	r.Get("/health", handlers.Health)
	r.Route("/rate-cards", func(r chi.Router) {
		r.Get("/", rateCards.List)
		r.Get("/{id}", rateCards.Get)
	})
	r.Get("/zones/{destination}", zones.Resolve)
	r.Post("/simulations", simulations.Create)
	r.Get("/simulations/{id}", simulations.Get)

	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())
	}

	return r
}
