package pricing

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"fulfillment-routing-service/internal/domain"
)

// Input is the read-only order snapshot shared by every evaluator.
type Input struct {
	Items      []domain.OrderItem
	Aggregates domain.OrderAggregates
	Zone       int
}

// Evaluator prices one component against an order.
//
// The returned note is the audit trail for the cost and is always non-empty,
// including when no rule matched.
type Evaluator interface {
	Evaluate(c domain.Component, in Input) (cost float64, note string)
}

type EvaluatorFunc func(c domain.Component, in Input) (float64, string)

func (f EvaluatorFunc) Evaluate(c domain.Component, in Input) (float64, string) {
	return f(c, in)
}

// Evaluators returns the dispatch table for every supported calculation type.
func Evaluators(classifier SizeTierClassifier) map[domain.CalculationType]Evaluator {
	return map[domain.CalculationType]Evaluator{
		domain.CalcFixed:        EvaluatorFunc(evalFixed),
		domain.CalcWeightRange:  EvaluatorFunc(evalWeightRange),
		domain.CalcVolumeTier:   EvaluatorFunc(evalVolumeTier),
		domain.CalcFormula:      EvaluatorFunc(evalFormula),
		domain.CalcSizeTier:     sizeTierBundle{classifier: classifier},
		domain.CalcZoneShipping: EvaluatorFunc(evalZoneShipping),
	}
}

func evalFixed(c domain.Component, _ Input) (float64, string) {
	return c.Price, fmt.Sprintf("Fixed fee: %s", money(c.Price))
}

func evalWeightRange(c domain.Component, in Input) (float64, string) {
	if c.ApplyLevel == domain.PerItem {
		return evalWeightRangePerItem(c, in.Items)
	}

	w := in.Aggregates.TotalWeight
	rule, ok := findWeightRange(c.Rules, w)
	if !ok {
		return 0, fmt.Sprintf("Total weight %.2flb: no matching range%s", w, malformedSuffix(c.Rules))
	}
	return rule.Price, fmt.Sprintf("Total weight %.2flb in range %s-%slb: %s",
		w, bound(rule.Min), bound(rule.Max), money(rule.Price))
}

func evalWeightRangePerItem(c domain.Component, items []domain.OrderItem) (float64, string) {
	if len(items) == 0 {
		return 0, "No items"
	}

	var cost float64
	parts := make([]string, 0, len(items))
	for _, item := range items {
		rule, ok := findWeightRange(c.Rules, item.Weight)
		if !ok {
			// Gaps in a vendor table are a configuration concern; the item adds nothing.
			parts = append(parts, fmt.Sprintf("%s (%glb): no matching range", item.Name, item.Weight))
			continue
		}
		cost += rule.Price * float64(item.Qty)
		parts = append(parts, fmt.Sprintf("%s (%glb): %s x %d", item.Name, item.Weight, money(rule.Price), item.Qty))
	}
	return cost, strings.Join(parts, "; ") + malformedSuffix(c.Rules)
}

func findWeightRange(rules []domain.Rule, weight float64) (domain.WeightRangeRule, bool) {
	for _, r := range rules {
		wr, ok := r.(domain.WeightRangeRule)
		if ok && wr.Contains(weight) {
			return wr, true
		}
	}
	return domain.WeightRangeRule{}, false
}

func evalVolumeTier(c domain.Component, in Input) (float64, string) {
	boxes := make([]domain.VolumeTierRule, 0, len(c.Rules))
	for _, r := range c.Rules {
		if vr, ok := r.(domain.VolumeTierRule); ok {
			boxes = append(boxes, vr)
		}
	}
	if len(boxes) == 0 {
		return 0, "No volume tiers configured" + malformedSuffix(c.Rules)
	}

	slices.SortStableFunc(boxes, func(a, b domain.VolumeTierRule) int {
		switch {
		case a.MaxVolume < b.MaxVolume:
			return -1
		case a.MaxVolume > b.MaxVolume:
			return 1
		}
		return 0
	})

	vol := in.Aggregates.TotalVolume
	for _, box := range boxes {
		if box.MaxVolume >= vol {
			return box.Price, fmt.Sprintf("Volume %.0f in³ fits %s", vol, box.Name)
		}
	}

	largest := boxes[len(boxes)-1]
	return largest.Price, fmt.Sprintf("Volume %.0f in³ oversized, using largest box %s", vol, largest.Name)
}

func evalFormula(c domain.Component, in Input) (float64, string) {
	n := in.Aggregates.TotalItems
	if n <= 0 {
		return 0, "No items to process"
	}

	extra := n - 1
	cost := c.BasePrice + float64(extra)*c.IncrementalPrice
	return cost, fmt.Sprintf("Base %s + (%d extra items x %s)", money(c.BasePrice), extra, money(c.IncrementalPrice))
}

type sizeTierBundle struct {
	classifier SizeTierClassifier
}

func (s sizeTierBundle) Evaluate(c domain.Component, in Input) (float64, string) {
	if len(in.Items) == 0 {
		return 0, "No items"
	}

	fallback := s.classifier.Fallback()

	var cost float64
	parts := make([]string, 0, len(in.Items))
	for _, item := range in.Items {
		tier := s.classifier.Classify(item)

		rule, ok := findSizeTier(c.Rules, tier)
		if !ok {
			rule, ok = findSizeTier(c.Rules, fallback)
			if !ok {
				parts = append(parts, fmt.Sprintf("%s: no bundle price for tier %s", item.Name, tier))
				continue
			}
			parts = append(parts, fmt.Sprintf("%s: %s not priced, using %s %s x %d",
				item.Name, tier, rule.TierName, money(rule.Price), item.Qty))
		} else {
			parts = append(parts, fmt.Sprintf("%s: %s %s x %d", item.Name, tier, money(rule.Price), item.Qty))
		}
		cost += rule.Price * float64(item.Qty)
	}
	return cost, strings.Join(parts, "; ") + malformedSuffix(c.Rules)
}

func findSizeTier(rules []domain.Rule, tier string) (domain.SizeTierRule, bool) {
	for _, r := range rules {
		sr, ok := r.(domain.SizeTierRule)
		if ok && strings.EqualFold(strings.TrimSpace(sr.TierName), tier) {
			return sr, true
		}
	}
	return domain.SizeTierRule{}, false
}

func evalZoneShipping(c domain.Component, in Input) (float64, string) {
	w := in.Aggregates.TotalWeight

	switch c.ShippingModel {
	case domain.ShippingFixed:
		return c.Price, fmt.Sprintf("Zone %d flat shipping: %s", in.Zone, money(c.Price))
	case domain.ShippingFormula:
		over := math.Max(0, w-c.FormulaThreshold)
		cost := c.BasePrice + over*c.IncrementalPrice
		return cost, fmt.Sprintf("Base %s + (%.2flb over %glb x %s)",
			money(c.BasePrice), over, c.FormulaThreshold, money(c.IncrementalPrice))
	}

	zone := strconv.Itoa(in.Zone)
	for _, r := range c.Rules {
		zr, ok := r.(domain.ZoneRateRule)
		if ok && strings.TrimSpace(zr.Zone) == zone && zr.Contains(w) {
			return zr.Price, fmt.Sprintf("Zone %s, %.2flb in range %s-%slb: %s",
				zone, w, bound(zr.Min), bound(zr.Max), money(zr.Price))
		}
	}
	return 0, fmt.Sprintf("No shipping rate found for zone %s, weight %.2flb%s", zone, w, malformedSuffix(c.Rules))
}

func money(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

func bound(v float64) string {
	if math.IsInf(v, 1) {
		return "∞"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func malformedSuffix(rules []domain.Rule) string {
	var reasons []string
	for _, r := range rules {
		if m, ok := r.(domain.MalformedRule); ok {
			reasons = append(reasons, m.Reason)
		}
	}
	if len(reasons) == 0 {
		return ""
	}
	return fmt.Sprintf(" [skipped %d malformed rule(s): %s]", len(reasons), strings.Join(reasons, ", "))
}
