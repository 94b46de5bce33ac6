package pricing

import (
	"fmt"

	"fulfillment-routing-service/internal/domain"
)

// Calculator prices whole rate cards by dispatching each component to the
// evaluator registered for its calculation type.
type Calculator struct {
	evaluators map[domain.CalculationType]Evaluator
}

func NewCalculator(classifier SizeTierClassifier) *Calculator {
	return &Calculator{evaluators: Evaluators(classifier)}
}

// CalculateCard evaluates every component of card and folds the results into
// one candidate. Details has one entry per component, in component order.
func (c *Calculator) CalculateCard(card domain.RateCard, in Input) domain.RoutingCandidate {
	cand := domain.RoutingCandidate{
		RateCardID:  card.ID,
		VendorName:  card.Vendor,
		Currency:    card.Currency,
		Details:     make([]domain.CostDetail, 0, len(card.Components)),
		TotalWeight: in.Aggregates.TotalWeight,
		TotalVolume: in.Aggregates.TotalVolume,
	}

	for _, comp := range card.Components {
		cost, note := c.evaluate(comp, in)
		cand.Details = append(cand.Details, domain.CostDetail{
			Name: comp.Name,
			Cost: cost,
			Note: note,
		})
		cand.TotalCost += cost
	}

	return cand
}

func (c *Calculator) evaluate(comp domain.Component, in Input) (float64, string) {
	ev, ok := c.evaluators[comp.Type]
	if !ok {
		return 0, fmt.Sprintf("Unsupported calculation type %q", comp.Type)
	}
	return ev.Evaluate(comp, in)
}
