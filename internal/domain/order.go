package domain

// VoidFillFactor approximates packaging overhead on raw item volume.
const VoidFillFactor = 1.2

// Represents one distinct SKU line of an order.
// Weight is in pounds and dimensions are in inches.
type OrderItem struct {
	ID     int
	Name   string
	Weight float64
	L      float64
	W      float64
	H      float64
	Qty    int
}

// Volume of a single unit in cubic inches.
func (i OrderItem) UnitVolume() float64 {
	return i.L * i.W * i.H
}

// Order-level metrics derived from the item list.
type OrderAggregates struct {
	TotalItems  int
	TotalWeight float64
	TotalVolume float64
}

// AggregateOrder sums quantities, weight and volume across items.
// TotalVolume includes the void-fill factor.
func AggregateOrder(items []OrderItem) OrderAggregates {
	var agg OrderAggregates
	var rawVolume float64
	for _, item := range items {
		qty := float64(item.Qty)
		agg.TotalItems += item.Qty
		agg.TotalWeight += item.Weight * qty
		rawVolume += item.UnitVolume() * qty
	}
	agg.TotalVolume = rawVolume * VoidFillFactor
	return agg
}
