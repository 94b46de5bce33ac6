package domain

// CalculationType selects the pricing strategy that interprets a Component.
type CalculationType string

const (
	CalcFixed        CalculationType = "FIXED"
	CalcWeightRange  CalculationType = "RANGE_WEIGHT"
	CalcVolumeTier   CalculationType = "TIER_VOLUME"
	CalcFormula      CalculationType = "FORMULA"
	CalcSizeTier     CalculationType = "AMAZON_FBA"
	CalcZoneShipping CalculationType = "SHIPPING_ZONE"
)

// Whether a strategy iterates per line item or operates on order aggregates.
type ApplyLevel string

const (
	PerItem  ApplyLevel = "PER_ITEM"
	PerOrder ApplyLevel = "PER_ORDER"
)

type ShippingScope string

const (
	ScopeDomestic      ShippingScope = "DOMESTIC"
	ScopeInternational ShippingScope = "INTERNATIONAL"
)

// How a SHIPPING_ZONE component prices the order.
// An empty model behaves as ShippingTable.
type ShippingModel string

const (
	ShippingTable   ShippingModel = "TABLE"
	ShippingFixed   ShippingModel = "FIXED"
	ShippingFormula ShippingModel = "FORMULA"
)

// Represents one vendor's full pricing contract.
// A RateCard is read-only input to the pricing core; evaluation never mutates it.
type RateCard struct {
	ID         string
	Vendor     string
	Name       string
	Currency   string
	Components []Component
}

// Represents one fee line within a rate card.
//
// Type is the sole determinant of which scalar fields and rule variants are
// meaningful. Fields irrelevant to the active type are ignored.
type Component struct {
	ID         string
	Name       string
	Type       CalculationType
	ApplyLevel ApplyLevel
	Unit       string

	Price            float64
	BasePrice        float64
	IncrementalPrice float64

	ShippingScope    ShippingScope
	ShippingModel    ShippingModel
	FormulaThreshold float64

	Rules []Rule
}
