package domain

// Cost contributed by one component, with the audit note explaining it.
type CostDetail struct {
	Name string
	Cost float64
	Note string
}

// Represents one vendor's evaluated cost for an order.
// A candidate is built fresh per evaluation and owns its Details slice.
type RoutingCandidate struct {
	RateCardID  string
	VendorName  string
	Currency    string
	TotalCost   float64
	Details     []CostDetail
	TotalWeight float64
	TotalVolume float64
	IsPriority  bool
}

// Ranked candidates plus the selected winner.
// Winner is nil when no rate cards were evaluated.
type SimulationResult struct {
	Destination string
	Zone        int
	Aggregates  OrderAggregates
	Candidates  []RoutingCandidate
	Winner      *RoutingCandidate
}
