package dto

import (
	"math"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"fulfillment-routing-service/internal/domain"
)

var printer = message.NewPrinter(language.English)

func (r SimulationRequest) OrderItems() []domain.OrderItem {
	items := make([]domain.OrderItem, 0, len(r.Items))
	for i, it := range r.Items {
		id := it.ID
		if id == 0 {
			id = i + 1
		}
		items = append(items, domain.OrderItem{
			ID:     id,
			Name:   it.Name,
			Weight: it.Weight,
			L:      it.L,
			W:      it.W,
			H:      it.H,
			Qty:    it.Qty,
		})
	}
	return items
}

func NewSimulationResponse(run domain.SimulationRun) SimulationResponse {
	res := run.Result
	out := SimulationResponse{
		RunID:       run.ID.String(),
		CreatedAt:   run.CreatedAt,
		Destination: res.Destination,
		Zone:        res.Zone,
		TotalItems:  res.Aggregates.TotalItems,
		TotalWeight: res.Aggregates.TotalWeight,
		TotalVolume: res.Aggregates.TotalVolume,
		CacheHit:    run.CacheHit,
		Candidates:  make([]CandidateResponse, 0, len(res.Candidates)),
	}
	for _, c := range res.Candidates {
		out.Candidates = append(out.Candidates, newCandidateResponse(c))
	}
	if res.Winner != nil {
		w := newCandidateResponse(*res.Winner)
		out.Winner = &w
		out.SelectedBy = "least_cost"
		if res.Winner.IsPriority {
			out.SelectedBy = "priority"
		}
	}
	return out
}

func newCandidateResponse(c domain.RoutingCandidate) CandidateResponse {
	out := CandidateResponse{
		RateCardID:       c.RateCardID,
		VendorName:       c.VendorName,
		Currency:         c.Currency,
		TotalCost:        c.TotalCost,
		TotalCostDisplay: FormatAmount(c.Currency, c.TotalCost),
		TotalWeight:      c.TotalWeight,
		TotalVolume:      c.TotalVolume,
		IsPriority:       c.IsPriority,
		Details:          make([]CostDetailResponse, 0, len(c.Details)),
	}
	for _, d := range c.Details {
		out.Details = append(out.Details, CostDetailResponse{Name: d.Name, Cost: d.Cost, Note: d.Note})
	}
	return out
}

// FormatAmount renders v in the currency's symbol and minor-unit precision.
// Unknown codes fall back to "<amount> <code>".
func FormatAmount(code string, v float64) string {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return printer.Sprintf("%.2f %s", v, code)
	}
	return printer.Sprint(currency.Symbol(unit.Amount(v)))
}

func NewRateCardResponse(card domain.RateCard) RateCardResponse {
	out := RateCardResponse{
		ID:         card.ID,
		Vendor:     card.Vendor,
		Name:       card.Name,
		Currency:   card.Currency,
		Components: make([]ComponentResponse, 0, len(card.Components)),
	}
	for _, c := range card.Components {
		comp := ComponentResponse{
			ID:               c.ID,
			Name:             c.Name,
			Type:             string(c.Type),
			ApplyLevel:       string(c.ApplyLevel),
			Unit:             c.Unit,
			Price:            c.Price,
			BasePrice:        c.BasePrice,
			IncrementalPrice: c.IncrementalPrice,
			ShippingScope:    string(c.ShippingScope),
			ShippingModel:    string(c.ShippingModel),
			FormulaThreshold: c.FormulaThreshold,
			Rules:            make([]RuleResponse, 0, len(c.Rules)),
		}
		for _, r := range c.Rules {
			comp.Rules = append(comp.Rules, newRuleResponse(r))
		}
		out.Components = append(out.Components, comp)
	}
	return out
}

func newRuleResponse(r domain.Rule) RuleResponse {
	switch r := r.(type) {
	case domain.WeightRangeRule:
		return RuleResponse{Min: ptr(r.Min), Max: finite(r.Max), Price: ptr(r.Price)}
	case domain.VolumeTierRule:
		return RuleResponse{Name: r.Name, MaxVolume: ptr(r.MaxVolume), Price: ptr(r.Price)}
	case domain.SizeTierRule:
		return RuleResponse{TierName: r.TierName, Max: finite(r.Max), Price: ptr(r.Price)}
	case domain.ZoneRateRule:
		return RuleResponse{Zone: r.Zone, Min: ptr(r.Min), Max: finite(r.Max), Price: ptr(r.Price)}
	case domain.MalformedRule:
		return RuleResponse{Malformed: r.Reason}
	}
	return RuleResponse{Malformed: "unknown rule variant"}
}

func ptr(v float64) *float64 { return &v }

// finite omits open-ended bounds, which JSON cannot represent.
func finite(v float64) *float64 {
	if math.IsInf(v, 0) {
		return nil
	}
	return &v
}
