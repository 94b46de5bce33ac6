package domain

import "math"

// Rule is one row of a component's lookup table.
//
// The set of variants is closed: WeightRangeRule, VolumeTierRule, SizeTierRule,
// ZoneRateRule and MalformedRule. Evaluators only read the variant that matches
// their component type; any other variant is treated as a non-match.
type Rule interface {
	isRule()
}

// Row of a RANGE_WEIGHT table. Matches when Min < weight <= Max.
type WeightRangeRule struct {
	Min   float64
	Max   float64
	Price float64
}

// Row of a TIER_VOLUME table (a carton size).
type VolumeTierRule struct {
	Name      string
	MaxVolume float64
	Price     float64
}

// Row of an AMAZON_FBA bundle table, keyed by size tier name.
type SizeTierRule struct {
	TierName string
	Max      float64
	Price    float64
}

// Row of a SHIPPING_ZONE rate table. Matches when the zone is equal and
// Min < totalWeight <= Max.
type ZoneRateRule struct {
	Zone  string
	Min   float64
	Max   float64
	Price float64
}

// A row that could not be decoded into its component's variant.
// It never matches and Reason is surfaced in cost notes.
type MalformedRule struct {
	Reason string
}

func (WeightRangeRule) isRule() {}
func (VolumeTierRule) isRule()  {}
func (SizeTierRule) isRule()    {}
func (ZoneRateRule) isRule()    {}
func (MalformedRule) isRule()   {}

// Unbounded is used for a range rule with no upper limit.
var Unbounded = math.Inf(1)

// Report whether v falls in the half-open interval (Min, Max].
func (r WeightRangeRule) Contains(v float64) bool {
	return v > r.Min && v <= r.Max
}

func (r ZoneRateRule) Contains(v float64) bool {
	return v > r.Min && v <= r.Max
}
