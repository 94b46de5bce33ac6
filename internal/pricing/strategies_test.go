package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fulfillment-routing-service/internal/domain"
)

func evaluate(t *testing.T, c domain.Component, in Input) (float64, string) {
	t.Helper()
	ev, ok := Evaluators(NewSizeTierClassifier(DefaultSizeTiers))[c.Type]
	require.True(t, ok, "no evaluator for %s", c.Type)
	return ev.Evaluate(c, in)
}

func inputFor(items []domain.OrderItem, zone int) Input {
	return Input{Items: items, Aggregates: domain.AggregateOrder(items), Zone: zone}
}

func TestFixedEqualsConfiguredPrice(t *testing.T) {
	c := domain.Component{Name: "Label Fee", Type: domain.CalcFixed, Price: 0.20}

	for _, items := range [][]domain.OrderItem{
		nil,
		{{Name: "A", Weight: 1, Qty: 1}},
		{{Name: "A", Weight: 100, Qty: 40}, {Name: "B", Weight: 3, Qty: 2}},
	} {
		cost, note := evaluate(t, c, inputFor(items, 5))
		assert.Equal(t, 0.20, cost)
		assert.Equal(t, "Fixed fee: $0.20", note)
	}
}

func TestFixedMissingPriceIsZero(t *testing.T) {
	cost, _ := evaluate(t, domain.Component{Type: domain.CalcFixed}, Input{})
	assert.Zero(t, cost)
}

func TestWeightRangePerItem(t *testing.T) {
	c := domain.Component{
		Name:       "Picking Fee",
		Type:       domain.CalcWeightRange,
		ApplyLevel: domain.PerItem,
		Rules: []domain.Rule{
			domain.WeightRangeRule{Min: 0, Max: 5, Price: 0.8},
			domain.WeightRangeRule{Min: 5, Max: 10, Price: 1.0},
		},
	}

	cost, note := evaluate(t, c, inputFor([]domain.OrderItem{{Name: "Mug", Weight: 3, Qty: 2}}, 5))
	assert.InDelta(t, 1.6, cost, 1e-9)
	assert.Contains(t, note, "Mug (3lb): $0.80 x 2")
}

func TestWeightRangePerItemGapContributesZero(t *testing.T) {
	c := domain.Component{
		Type:       domain.CalcWeightRange,
		ApplyLevel: domain.PerItem,
		Rules: []domain.Rule{
			domain.WeightRangeRule{Min: 0, Max: 5, Price: 0.8},
			domain.WeightRangeRule{Min: 150, Max: domain.Unbounded, Price: 7.5},
		},
	}
	items := []domain.OrderItem{
		{Name: "Light", Weight: 1, Qty: 1},
		{Name: "Anvil", Weight: 60, Qty: 3},
	}

	cost, note := evaluate(t, c, inputFor(items, 5))
	assert.InDelta(t, 0.8, cost, 1e-9)
	assert.Contains(t, note, "Anvil (60lb): no matching range")
}

func TestWeightRangePerOrder(t *testing.T) {
	c := domain.Component{
		Type:       domain.CalcWeightRange,
		ApplyLevel: domain.PerOrder,
		Rules: []domain.Rule{
			domain.WeightRangeRule{Min: 0, Max: 5, Price: 1.0},
			domain.WeightRangeRule{Min: 5, Max: 10, Price: 2.0},
		},
	}
	items := []domain.OrderItem{{Name: "A", Weight: 3, Qty: 2}}

	cost, note := evaluate(t, c, inputFor(items, 5))
	assert.InDelta(t, 2.0, cost, 1e-9)
	assert.Contains(t, note, "in range 5-10lb")

	heavy := []domain.OrderItem{{Name: "A", Weight: 30, Qty: 1}}
	cost, note = evaluate(t, c, inputFor(heavy, 5))
	assert.Zero(t, cost)
	assert.Contains(t, note, "no matching range")
}

func TestVolumeTierPicksSmallestFittingBox(t *testing.T) {
	c := domain.Component{
		Type: domain.CalcVolumeTier,
		// deliberately unsorted
		Rules: []domain.Rule{
			domain.VolumeTierRule{Name: "Large Box", MaxVolume: 5632, Price: 4.8},
			domain.VolumeTierRule{Name: "Small Box", MaxVolume: 360, Price: 1.5},
			domain.VolumeTierRule{Name: "Medium Box", MaxVolume: 2016, Price: 3.0},
		},
	}

	cost, note := evaluate(t, c, Input{Aggregates: domain.OrderAggregates{TotalVolume: 2200}})
	assert.Equal(t, 4.8, cost)
	assert.Equal(t, "Volume 2200 in³ fits Large Box", note)

	cost, _ = evaluate(t, c, Input{Aggregates: domain.OrderAggregates{TotalVolume: 360}})
	assert.Equal(t, 1.5, cost)
}

func TestVolumeTierFallsBackToLargestBox(t *testing.T) {
	c := domain.Component{
		Type: domain.CalcVolumeTier,
		Rules: []domain.Rule{
			domain.VolumeTierRule{Name: "Small Box", MaxVolume: 360, Price: 1.5},
			domain.VolumeTierRule{Name: "Large Box", MaxVolume: 5632, Price: 4.8},
		},
	}

	cost, note := evaluate(t, c, Input{Aggregates: domain.OrderAggregates{TotalVolume: 9000}})
	assert.Equal(t, 4.8, cost)
	assert.Contains(t, note, "using largest box Large Box")
}

func TestVolumeTierWithoutRules(t *testing.T) {
	cost, note := evaluate(t, domain.Component{Type: domain.CalcVolumeTier}, Input{})
	assert.Zero(t, cost)
	assert.NotEmpty(t, note)
}

func TestFormula(t *testing.T) {
	c := domain.Component{Type: domain.CalcFormula, BasePrice: 7, IncrementalPrice: 2}

	cost, note := evaluate(t, c, Input{Aggregates: domain.OrderAggregates{TotalItems: 3}})
	assert.InDelta(t, 11.0, cost, 1e-9)
	assert.Equal(t, "Base $7.00 + (2 extra items x $2.00)", note)

	cost, _ = evaluate(t, c, Input{Aggregates: domain.OrderAggregates{TotalItems: 1}})
	assert.InDelta(t, 7.0, cost, 1e-9)

	cost, note = evaluate(t, c, Input{})
	assert.Zero(t, cost)
	assert.Equal(t, "No items to process", note)
}

func TestSizeTierBundle(t *testing.T) {
	c := domain.Component{
		Type: domain.CalcSizeTier,
		Rules: []domain.Rule{
			domain.SizeTierRule{TierName: "Small Standard", Price: 3.22},
			domain.SizeTierRule{TierName: "Large Standard", Price: 4.75},
			domain.SizeTierRule{TierName: "Oversize", Price: 26.33},
		},
	}
	items := []domain.OrderItem{
		{Name: "Tee", Weight: 0.5, L: 10, W: 8, H: 0.5, Qty: 2},
		{Name: "Boots", Weight: 4, L: 14, W: 10, H: 6, Qty: 1},
		// Large Bulky has no row, so the oversize row applies.
		{Name: "Chair", Weight: 30, L: 40, W: 20, H: 20, Qty: 1},
	}

	cost, note := evaluate(t, c, inputFor(items, 5))
	assert.InDelta(t, 2*3.22+4.75+26.33, cost, 1e-9)
	assert.Contains(t, note, "Tee: Small Standard $3.22 x 2")
	assert.Contains(t, note, "Chair: Large Bulky not priced, using Oversize $26.33 x 1")
}

func TestSizeTierBundleWithoutFallbackRow(t *testing.T) {
	c := domain.Component{
		Type:  domain.CalcSizeTier,
		Rules: []domain.Rule{domain.SizeTierRule{TierName: "Small Standard", Price: 3.22}},
	}
	items := []domain.OrderItem{{Name: "Chair", Weight: 30, L: 40, W: 20, H: 20, Qty: 1}}

	cost, note := evaluate(t, c, inputFor(items, 5))
	assert.Zero(t, cost)
	assert.Contains(t, note, "no bundle price for tier Large Bulky")
}

func TestZoneShippingTable(t *testing.T) {
	c := domain.Component{
		Type: domain.CalcZoneShipping,
		Rules: []domain.Rule{
			domain.ZoneRateRule{Zone: "1", Min: 0, Max: 5, Price: 4.10},
			domain.ZoneRateRule{Zone: "8", Min: 0, Max: 5, Price: 9.85},
			domain.ZoneRateRule{Zone: "8", Min: 5, Max: 10, Price: 14.20},
		},
	}
	items := []domain.OrderItem{{Name: "A", Weight: 3, Qty: 2}}

	cost, _ := evaluate(t, c, inputFor(items, 8))
	assert.InDelta(t, 14.20, cost, 1e-9)

	cost, note := evaluate(t, c, inputFor(items, 1))
	assert.Zero(t, cost)
	assert.Equal(t, "No shipping rate found for zone 1, weight 6.00lb", note)
}

func TestZoneShippingModels(t *testing.T) {
	items := []domain.OrderItem{{Name: "A", Weight: 4, Qty: 3}}

	fixed := domain.Component{Type: domain.CalcZoneShipping, ShippingModel: domain.ShippingFixed, Price: 5.5}
	cost, _ := evaluate(t, fixed, inputFor(items, 3))
	assert.Equal(t, 5.5, cost)

	formula := domain.Component{
		Type:             domain.CalcZoneShipping,
		ShippingModel:    domain.ShippingFormula,
		BasePrice:        6,
		FormulaThreshold: 10,
		IncrementalPrice: 0.5,
	}
	cost, _ = evaluate(t, formula, inputFor(items, 3))
	assert.InDelta(t, 7.0, cost, 1e-9)
}

func TestMalformedRulesNeverMatch(t *testing.T) {
	c := domain.Component{
		Type:       domain.CalcWeightRange,
		ApplyLevel: domain.PerOrder,
		Rules: []domain.Rule{
			domain.MalformedRule{Reason: "rule 1: price is required"},
			// variant of a different component type
			domain.VolumeTierRule{Name: "Box", MaxVolume: 100, Price: 9},
		},
	}

	cost, note := evaluate(t, c, inputFor([]domain.OrderItem{{Name: "A", Weight: 1, Qty: 1}}, 5))
	assert.Zero(t, cost)
	assert.Contains(t, note, "no matching range")
	assert.Contains(t, note, "rule 1: price is required")
}
