package dto

import "time"

// Weight is in lb and dimensions in inches. The upper bounds keep order
// aggregates finite.
type OrderItemRequest struct {
	ID     int     `json:"id"`
	Name   string  `json:"name" validate:"required,max=200"`
	Weight float64 `json:"weight" validate:"gte=0,lte=100000"`
	L      float64 `json:"l" validate:"gte=0,lte=100000"`
	W      float64 `json:"w" validate:"gte=0,lte=100000"`
	H      float64 `json:"h" validate:"gte=0,lte=100000"`
	Qty    int     `json:"qty" validate:"gte=0,lte=100000"`
}

type SimulationRequest struct {
	Destination string             `json:"destination" validate:"required,max=16"`
	Items       []OrderItemRequest `json:"items" validate:"max=500,dive"`
	RateCardIDs []string           `json:"rate_card_ids" validate:"omitempty,dive,required"`
}

type CostDetailResponse struct {
	Name string  `json:"name"`
	Cost float64 `json:"cost"`
	Note string  `json:"note"`
}

type CandidateResponse struct {
	RateCardID       string               `json:"rate_card_id"`
	VendorName       string               `json:"vendor_name"`
	Currency         string               `json:"currency"`
	TotalCost        float64              `json:"total_cost"`
	TotalCostDisplay string               `json:"total_cost_display"`
	TotalWeight      float64              `json:"total_weight"`
	TotalVolume      float64              `json:"total_volume"`
	IsPriority       bool                 `json:"is_priority"`
	Details          []CostDetailResponse `json:"details"`
}

type SimulationResponse struct {
	RunID       string              `json:"run_id"`
	CreatedAt   time.Time           `json:"created_at"`
	Destination string              `json:"destination"`
	Zone        int                 `json:"zone"`
	TotalItems  int                 `json:"total_items"`
	TotalWeight float64             `json:"total_weight"`
	TotalVolume float64             `json:"total_volume"`
	CacheHit    bool                `json:"cache_hit"`
	SelectedBy  string              `json:"selected_by,omitempty"`
	Winner      *CandidateResponse  `json:"winner"`
	Candidates  []CandidateResponse `json:"candidates"`
}

type ZoneResponse struct {
	Destination string `json:"destination"`
	Prefix      string `json:"prefix"`
	Zone        int    `json:"zone"`
	Matched     bool   `json:"matched"`
}
