package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"fulfillment-routing-service/internal/domain"
	"fulfillment-routing-service/internal/platform/obs"
	"fulfillment-routing-service/internal/ports"
)

type SimulateRequest struct {
	Destination string
	Items       []domain.OrderItem
	// Restrict routing to these rate cards. Empty means every card in the catalog.
	RateCardIDs []string
}

// RoutingService is the host-side entry point around the RoutingEngine:
// it selects rate cards, consults the optional result cache, records the run
// in the optional store and reports metrics.
type RoutingService struct {
	Catalog ports.RateCardSource
	Engine  *RoutingEngine
	Cache   ports.ResultCache
	Store   ports.SimulationStore
	Metrics *obs.Metrics
	Now     func() time.Time
}

// Simulate routes one order. Pricing gaps never fail the call; errors come only
// from unknown rate card ids or infrastructure.
func (s *RoutingService) Simulate(ctx context.Context, req SimulateRequest) (_ *domain.SimulationRun, err error) {
	defer obs.Time(ctx, "routing.Simulate")(&err)

	if s.Catalog == nil || s.Engine == nil {
		return nil, errors.New("simulate: catalog and engine are required")
	}
	if strings.TrimSpace(req.Destination) == "" {
		return nil, errors.New("simulate: destination must be non-empty")
	}

	cards, err := s.selectCards(ctx, req.RateCardIDs)
	if err != nil {
		return nil, fmt.Errorf("simulate: %w", err)
	}

	start := time.Now()
	logger := obs.FromContext(ctx)

	key, err := CacheKey(cards, req.Items, req.Destination, s.Engine.Zones().Resolve(req.Destination), s.Engine.Fingerprint())
	if err != nil {
		return nil, fmt.Errorf("simulate: %w", err)
	}

	var (
		res domain.SimulationResult
		hit bool
	)
	if s.Cache != nil {
		res, hit, err = s.Cache.Get(ctx, key)
		if err != nil {
			// The cache is an optimisation; fall through to evaluation.
			logger.Warn("result cache read failed", zap.Error(err))
			hit = false
		}
	}

	if !hit {
		res, err = s.Engine.Evaluate(ctx, cards, req.Items, req.Destination)
		if err != nil {
			return nil, fmt.Errorf("simulate: %w", err)
		}
		if s.Cache != nil {
			if err := s.Cache.Put(ctx, key, res); err != nil {
				logger.Warn("result cache write failed", zap.Error(err))
			}
		}
	}

	s.Metrics.ObserveSimulation(res, hit, time.Since(start))

	run := &domain.SimulationRun{
		ID:          uuid.New(),
		CreatedAt:   s.now(),
		Destination: req.Destination,
		RateCardIDs: cardIDs(cards),
		Items:       req.Items,
		Result:      res,
		CacheHit:    hit,
	}

	if s.Store != nil {
		if err := s.Store.SaveRun(ctx, *run); err != nil {
			return nil, fmt.Errorf("simulate: record run: %w", err)
		}
	}

	fields := []zap.Field{
		zap.String("run_id", run.ID.String()),
		zap.String("destination", req.Destination),
		zap.Int("zone", res.Zone),
		zap.Int("candidates", len(res.Candidates)),
		zap.Bool("cache_hit", hit),
	}
	if res.Winner != nil {
		fields = append(fields,
			zap.String("winner", res.Winner.VendorName),
			zap.Float64("winner_cost", res.Winner.TotalCost),
			zap.Bool("priority", res.Winner.IsPriority),
		)
	}
	logger.Info("routing decision", fields...)

	return run, nil
}

// GetRun returns a recorded run, or ports.ErrSimulationNotFound when no store
// is configured.
func (s *RoutingService) GetRun(ctx context.Context, id uuid.UUID) (domain.SimulationRun, error) {
	if s.Store == nil {
		return domain.SimulationRun{}, fmt.Errorf("get run %s: no run store configured: %w", id, ports.ErrSimulationNotFound)
	}
	run, err := s.Store.GetRun(ctx, id)
	if err != nil {
		return domain.SimulationRun{}, fmt.Errorf("get run: %w", err)
	}
	return run, nil
}

func (s *RoutingService) selectCards(ctx context.Context, ids []string) ([]domain.RateCard, error) {
	if len(ids) == 0 {
		cards, err := s.Catalog.ListRateCards(ctx)
		if err != nil {
			return nil, fmt.Errorf("list rate cards: %w", err)
		}
		return cards, nil
	}

	seen := make(map[string]struct{}, len(ids))
	cards := make([]domain.RateCard, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		card, err := s.Catalog.GetRateCard(ctx, id)
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	return cards, nil
}

func (s *RoutingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

// CacheKey digests everything a routing result depends on. engine is the
// RoutingEngine fingerprint, so services with different priority policies or
// size tiers never share cached results.
func CacheKey(cards []domain.RateCard, items []domain.OrderItem, destination string, zone int, engine string) (string, error) {
	payload := struct {
		Cards       []cardKey
		Items       []domain.OrderItem
		Destination string
		Zone        int
		Engine      string
	}{
		Cards:       make([]cardKey, 0, len(cards)),
		Items:       items,
		Destination: destination,
		Zone:        zone,
		Engine:      engine,
	}
	for _, c := range cards {
		payload.Cards = append(payload.Cards, newCardKey(c))
	}

	b, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("cache key: encode: %w", err)
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:]), nil
}

// cardKey is a JSON-safe view of a rate card. Rules are interfaces holding
// possibly infinite bounds, so they are rendered with their concrete type.
type cardKey struct {
	ID         string
	Vendor     string
	Currency   string
	Components []string
}

func newCardKey(c domain.RateCard) cardKey {
	k := cardKey{ID: c.ID, Vendor: c.Vendor, Currency: c.Currency, Components: make([]string, 0, len(c.Components))}
	for _, comp := range c.Components {
		k.Components = append(k.Components, fmt.Sprintf("%#v", comp))
	}
	return k
}

func cardIDs(cards []domain.RateCard) []string {
	ids := make([]string, 0, len(cards))
	for _, c := range cards {
		ids = append(ids, c.ID)
	}
	return ids
}
