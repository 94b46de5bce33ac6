package catalog

import (
	"fmt"
	"strings"

	"fulfillment-routing-service/internal/domain"
)

// RuleDoc is a lookup-table row as written in a catalog file or request body.
// Which fields are meaningful depends on the owning component's type.
type RuleDoc struct {
	Min       *float64 `yaml:"min,omitempty" json:"min,omitempty"`
	Max       *float64 `yaml:"max,omitempty" json:"max,omitempty"`
	Price     *float64 `yaml:"price,omitempty" json:"price,omitempty"`
	Name      string   `yaml:"name,omitempty" json:"name,omitempty"`
	MaxVolume *float64 `yaml:"max_volume,omitempty" json:"max_volume,omitempty"`
	Zone      string   `yaml:"zone,omitempty" json:"zone,omitempty"`
	TierName  string   `yaml:"tier_name,omitempty" json:"tier_name,omitempty"`
}

type ComponentDoc struct {
	ID               string    `yaml:"id" json:"id"`
	Name             string    `yaml:"name" json:"name"`
	Type             string    `yaml:"type" json:"type"`
	ApplyLevel       string    `yaml:"apply_level" json:"apply_level"`
	Unit             string    `yaml:"unit,omitempty" json:"unit,omitempty"`
	Price            *float64  `yaml:"price,omitempty" json:"price,omitempty"`
	BasePrice        *float64  `yaml:"base_price,omitempty" json:"base_price,omitempty"`
	IncrementalPrice *float64  `yaml:"incremental_price,omitempty" json:"incremental_price,omitempty"`
	ShippingScope    string    `yaml:"shipping_scope,omitempty" json:"shipping_scope,omitempty"`
	ShippingModel    string    `yaml:"shipping_model,omitempty" json:"shipping_model,omitempty"`
	FormulaThreshold *float64  `yaml:"formula_threshold,omitempty" json:"formula_threshold,omitempty"`
	Rules            []RuleDoc `yaml:"rules" json:"rules"`
}

type RateCardDoc struct {
	ID         string         `yaml:"id" json:"id"`
	Vendor     string         `yaml:"vendor" json:"vendor"`
	Name       string         `yaml:"name" json:"name"`
	Currency   string         `yaml:"currency" json:"currency"`
	Components []ComponentDoc `yaml:"components" json:"components"`
}

// ToComponent converts a document into the domain model. Absent scalars become
// zero and each rule is decoded into the variant for the component's type.
func (d ComponentDoc) ToComponent() domain.Component {
	c := domain.Component{
		ID:               d.ID,
		Name:             d.Name,
		Type:             domain.CalculationType(strings.ToUpper(strings.TrimSpace(d.Type))),
		ApplyLevel:       domain.ApplyLevel(strings.ToUpper(strings.TrimSpace(d.ApplyLevel))),
		Unit:             d.Unit,
		Price:            deref(d.Price),
		BasePrice:        deref(d.BasePrice),
		IncrementalPrice: deref(d.IncrementalPrice),
		ShippingScope:    domain.ShippingScope(strings.ToUpper(strings.TrimSpace(d.ShippingScope))),
		ShippingModel:    domain.ShippingModel(strings.ToUpper(strings.TrimSpace(d.ShippingModel))),
		FormulaThreshold: deref(d.FormulaThreshold),
	}
	if c.ApplyLevel == "" {
		c.ApplyLevel = domain.PerOrder
	}

	c.Rules = make([]domain.Rule, 0, len(d.Rules))
	for i, r := range d.Rules {
		c.Rules = append(c.Rules, DecodeRule(c.Type, i, r))
	}
	return c
}

func (d RateCardDoc) ToRateCard() domain.RateCard {
	card := domain.RateCard{
		ID:         strings.TrimSpace(d.ID),
		Vendor:     strings.TrimSpace(d.Vendor),
		Name:       d.Name,
		Currency:   strings.ToUpper(strings.TrimSpace(d.Currency)),
		Components: make([]domain.Component, 0, len(d.Components)),
	}
	for _, c := range d.Components {
		card.Components = append(card.Components, c.ToComponent())
	}
	return card
}

// DecodeRule selects the rule variant for calcType. A row missing a field its
// variant needs becomes a MalformedRule rather than an error.
func DecodeRule(calcType domain.CalculationType, idx int, r RuleDoc) domain.Rule {
	malformed := func(format string, args ...any) domain.Rule {
		return domain.MalformedRule{Reason: fmt.Sprintf("rule %d: ", idx+1) + fmt.Sprintf(format, args...)}
	}

	switch calcType {
	case domain.CalcWeightRange:
		if r.Price == nil {
			return malformed("price is required")
		}
		rule := domain.WeightRangeRule{Min: deref(r.Min), Max: domain.Unbounded, Price: *r.Price}
		if r.Max != nil {
			rule.Max = *r.Max
		}
		if rule.Min > rule.Max {
			return malformed("min %g exceeds max %g", rule.Min, rule.Max)
		}
		return rule

	case domain.CalcVolumeTier:
		if r.Price == nil || r.MaxVolume == nil {
			return malformed("max_volume and price are required")
		}
		return domain.VolumeTierRule{Name: r.Name, MaxVolume: *r.MaxVolume, Price: *r.Price}

	case domain.CalcSizeTier:
		if r.Price == nil || strings.TrimSpace(r.TierName) == "" {
			return malformed("tier_name and price are required")
		}
		return domain.SizeTierRule{TierName: strings.TrimSpace(r.TierName), Max: deref(r.Max), Price: *r.Price}

	case domain.CalcZoneShipping:
		if r.Price == nil || strings.TrimSpace(r.Zone) == "" {
			return malformed("zone and price are required")
		}
		rule := domain.ZoneRateRule{Zone: strings.TrimSpace(r.Zone), Min: deref(r.Min), Max: domain.Unbounded, Price: *r.Price}
		if r.Max != nil {
			rule.Max = *r.Max
		}
		if rule.Min > rule.Max {
			return malformed("min %g exceeds max %g", rule.Min, rule.Max)
		}
		return rule
	}

	return malformed("%s components do not use rules", calcType)
}

func deref(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}
