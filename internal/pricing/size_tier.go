package pricing

import (
	"slices"

	"fulfillment-routing-service/internal/domain"
)

// OversizeTier is returned when no size tier threshold admits an item.
const OversizeTier = "Oversize"

// SizeTier is one weight/dimension bucket. An item fits when every measure is
// at or below the corresponding ceiling.
type SizeTier struct {
	Name      string
	MaxWeight float64
	MaxLong   float64
	MaxMedian float64
	MaxShort  float64
}

func (t SizeTier) admits(weight, longest, median, shortest float64) bool {
	return weight <= t.MaxWeight &&
		longest <= t.MaxLong &&
		median <= t.MaxMedian &&
		shortest <= t.MaxShort
}

// DefaultSizeTiers lists the standard tiers smallest first.
// Weights in pounds, dimensions in inches.
var DefaultSizeTiers = []SizeTier{
	{Name: "Small Standard", MaxWeight: 1, MaxLong: 15, MaxMedian: 12, MaxShort: 0.75},
	{Name: "Large Standard", MaxWeight: 20, MaxLong: 18, MaxMedian: 14, MaxShort: 8},
	{Name: "Large Bulky", MaxWeight: 50, MaxLong: 59, MaxMedian: 33, MaxShort: 33},
}

// SizeTierClassifier assigns an item to the first tier that admits it.
// Tiers overlap, so their order is part of the policy.
type SizeTierClassifier struct {
	tiers    []SizeTier
	fallback string
}

func NewSizeTierClassifier(tiers []SizeTier) SizeTierClassifier {
	return SizeTierClassifier{tiers: slices.Clone(tiers), fallback: OversizeTier}
}

// Fallback is the tier name used when nothing matches.
func (c SizeTierClassifier) Fallback() string {
	if c.fallback == "" {
		return OversizeTier
	}
	return c.fallback
}

// Classify returns the size tier name for one unit of item.
func (c SizeTierClassifier) Classify(item domain.OrderItem) string {
	longest, median, shortest := sortDims(item.L, item.W, item.H)

	tiers := c.tiers
	if tiers == nil {
		tiers = DefaultSizeTiers
	}
	for _, t := range tiers {
		if t.admits(item.Weight, longest, median, shortest) {
			return t.Name
		}
	}
	return c.Fallback()
}

func sortDims(l, w, h float64) (longest, median, shortest float64) {
	dims := []float64{l, w, h}
	slices.Sort(dims)
	return dims[2], dims[1], dims[0]
}
