package dto

type RuleResponse struct {
	Min       *float64 `json:"min,omitempty"`
	Max       *float64 `json:"max,omitempty"`
	Price     *float64 `json:"price,omitempty"`
	Name      string   `json:"name,omitempty"`
	MaxVolume *float64 `json:"max_volume,omitempty"`
	Zone      string   `json:"zone,omitempty"`
	TierName  string   `json:"tier_name,omitempty"`
	Malformed string   `json:"malformed,omitempty"`
}

type ComponentResponse struct {
	ID               string         `json:"id"`
	Name             string         `json:"name"`
	Type             string         `json:"type"`
	ApplyLevel       string         `json:"apply_level"`
	Unit             string         `json:"unit,omitempty"`
	Price            float64        `json:"price"`
	BasePrice        float64        `json:"base_price"`
	IncrementalPrice float64        `json:"incremental_price"`
	ShippingScope    string         `json:"shipping_scope,omitempty"`
	ShippingModel    string         `json:"shipping_model,omitempty"`
	FormulaThreshold float64        `json:"formula_threshold"`
	Rules            []RuleResponse `json:"rules"`
}

type RateCardResponse struct {
	ID         string              `json:"id"`
	Vendor     string              `json:"vendor"`
	Name       string              `json:"name"`
	Currency   string              `json:"currency"`
	Components []ComponentResponse `json:"components"`
}

type ListRateCardsResponse struct {
	RateCards []RateCardResponse `json:"rate_cards"`
}
