package services

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"unicode"

	"golang.org/x/sync/errgroup"

	"fulfillment-routing-service/internal/domain"
	"fulfillment-routing-service/internal/pricing"
)

// PriorityOverrideName labels the synthetic cost line added to a candidate
// that won through the priority rule.
const PriorityOverrideName = "Priority Override"

// PriorityPolicy is the hard routing constraint that beats pure cost:
// destinations in Zone go to an owned (in-house) vendor when one is offered.
type PriorityPolicy struct {
	Zone int
	// A vendor is owned when its name contains any marker as whole words
	// (case-insensitive). "in-house" matches "ACME In-House Fleet" but
	// "owned" does not match "Unowned Freight".
	OwnedVendorMarkers []string
}

func DefaultPriorityPolicy() PriorityPolicy {
	return PriorityPolicy{Zone: 1, OwnedVendorMarkers: []string{"owned", "in-house"}}
}

// IsOwned reports whether vendor identifies the in-house provider.
func (p PriorityPolicy) IsOwned(vendor string) bool {
	words := nameWords(vendor)
	for _, m := range p.OwnedVendorMarkers {
		if marker := nameWords(m); len(marker) > 0 && containsRun(words, marker) {
			return true
		}
	}
	return false
}

// nameWords lower-cases s and splits it on anything that is not a letter or digit.
func nameWords(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// containsRun reports whether sub appears in words as a contiguous run.
func containsRun(words, sub []string) bool {
	for i := 0; i+len(sub) <= len(words); i++ {
		if slices.Equal(words[i:i+len(sub)], sub) {
			return true
		}
	}
	return false
}

type EngineConfig struct {
	Zones     pricing.ZoneResolver
	SizeTiers []pricing.SizeTier
	Priority  PriorityPolicy

	// Maximum rate cards evaluated concurrently. Values below 2 evaluate sequentially.
	Parallelism int
}

// RoutingEngine prices an order under every rate card and selects a vendor.
// It holds no mutable state and is safe for concurrent use.
type RoutingEngine struct {
	zones       pricing.ZoneResolver
	tiers       []pricing.SizeTier
	calc        *pricing.Calculator
	priority    PriorityPolicy
	parallelism int
}

func NewRoutingEngine(cfg EngineConfig) *RoutingEngine {
	tiers := cfg.SizeTiers
	if len(tiers) == 0 {
		tiers = pricing.DefaultSizeTiers
	}
	return &RoutingEngine{
		zones:       cfg.Zones,
		tiers:       slices.Clone(tiers),
		calc:        pricing.NewCalculator(pricing.NewSizeTierClassifier(tiers)),
		priority:    cfg.Priority,
		parallelism: cfg.Parallelism,
	}
}

// Zones exposes the resolver the engine routes with.
func (e *RoutingEngine) Zones() pricing.ZoneResolver {
	return e.zones
}

// Fingerprint identifies the engine settings, other than the zone table, that
// change a result: the priority policy and the size tiers.
func (e *RoutingEngine) Fingerprint() string {
	markers := make([]string, 0, len(e.priority.OwnedVendorMarkers))
	for _, m := range e.priority.OwnedVendorMarkers {
		if w := nameWords(m); len(w) > 0 {
			markers = append(markers, strings.Join(w, " "))
		}
	}
	slices.Sort(markers)
	return fmt.Sprintf("priority_zone=%d owned=%q tiers=%v", e.priority.Zone, markers, e.tiers)
}

// EvaluateRouting is the single-call form of RoutingEngine.Evaluate using the
// default size tiers and priority policy and sequential evaluation.
func EvaluateRouting(
	rateCards []domain.RateCard,
	orderItems []domain.OrderItem,
	destination string,
	zoneMap map[string]int,
) domain.SimulationResult {
	engine := NewRoutingEngine(EngineConfig{
		Zones:    pricing.NewZoneResolver(zoneMap),
		Priority: DefaultPriorityPolicy(),
	})

	// Sequential evaluation with a background context cannot fail.
	res, _ := engine.Evaluate(context.Background(), rateCards, orderItems, destination)
	return res
}

// Evaluate prices the order under every rate card, applies the priority rule
// and ranks the candidates.
//
// The result depends only on the arguments. The only error is ctx being done
// before every card was priced.
func (e *RoutingEngine) Evaluate(
	ctx context.Context,
	rateCards []domain.RateCard,
	orderItems []domain.OrderItem,
	destination string,
) (domain.SimulationResult, error) {
	zone := e.zones.Resolve(destination)
	in := pricing.Input{
		Items:      orderItems,
		Aggregates: domain.AggregateOrder(orderItems),
		Zone:       zone,
	}

	candidates, err := e.priceAll(ctx, rateCards, in)
	if err != nil {
		return domain.SimulationResult{}, fmt.Errorf("evaluate routing: %w", err)
	}

	for i := range candidates {
		e.applyPriority(&candidates[i], zone)
	}
	rank(candidates)

	res := domain.SimulationResult{
		Destination: destination,
		Zone:        zone,
		Aggregates:  in.Aggregates,
		Candidates:  candidates,
	}
	if len(candidates) > 0 {
		winner := candidates[0]
		res.Winner = &winner
	}
	return res, nil
}

// priceAll keeps candidates in rate-card order regardless of parallelism.
func (e *RoutingEngine) priceAll(ctx context.Context, cards []domain.RateCard, in pricing.Input) ([]domain.RoutingCandidate, error) {
	candidates := make([]domain.RoutingCandidate, len(cards))

	if e.parallelism < 2 || len(cards) < 2 {
		for i, card := range cards {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			candidates[i] = e.calc.CalculateCard(card, in)
		}
		return candidates, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.parallelism)
	for i := range cards {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			// Each goroutine writes only its own slot.
			candidates[i] = e.calc.CalculateCard(cards[i], in)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return candidates, nil
}

func (e *RoutingEngine) applyPriority(c *domain.RoutingCandidate, zone int) {
	if zone != e.priority.Zone || !e.priority.IsOwned(c.VendorName) {
		return
	}
	c.IsPriority = true
	c.Details = append(c.Details, domain.CostDetail{
		Name: PriorityOverrideName,
		Cost: 0,
		Note: fmt.Sprintf("Zone %d destination is reserved for the owned fleet; selected regardless of cost", zone),
	})
}

// rank orders priority candidates first, then by ascending total cost.
// Equal candidates keep their rate-card order.
func rank(candidates []domain.RoutingCandidate) {
	slices.SortStableFunc(candidates, func(a, b domain.RoutingCandidate) int {
		if a.IsPriority != b.IsPriority {
			if a.IsPriority {
				return -1
			}
			return 1
		}
		switch {
		case a.TotalCost < b.TotalCost:
			return -1
		case a.TotalCost > b.TotalCost:
			return 1
		}
		return 0
	})
}
