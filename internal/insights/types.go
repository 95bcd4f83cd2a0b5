package insights

import "github.com/shopspring/decimal"

// MonthlyPoint is one month of the sales trend chart.
type MonthlyPoint struct {
	Month   string          `json:"month"`
	Orders  int             `json:"orders"`
	Revenue decimal.Decimal `json:"revenue"`
}

// LabelValue is a generic top-N entry (category, payment type, term).
type LabelValue struct {
	Label string `json:"label"`
	Value int64  `json:"value"`
}

// PaymentSlice is one payment method's share of orders and revenue.
type PaymentSlice struct {
	PaymentType string          `json:"payment_type"`
	Orders      int             `json:"orders"`
	Revenue     decimal.Decimal `json:"revenue"`
}

// HeatmapGrid is order counts by day of week and hour of day. Rows run
// Monday through Sunday, columns hour 0 through 23.
type HeatmapGrid struct {
	Days   []string  `json:"days"`
	Hours  []int     `json:"hours"`
	Counts [][]int64 `json:"counts"`
}

// CategoryRating is the mean review score for one product category.
type CategoryRating struct {
	Category string  `json:"category"`
	Average  float64 `json:"average"`
	Reviews  int     `json:"reviews"`
}

// GeoPoint is one customer location for the map scatter.
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Overview carries the headline order metrics for the filtered rows.
type Overview struct {
	TotalOrders    int             `json:"total_orders"`
	TotalCustomers int             `json:"total_customers"`
	TotalRevenue   decimal.Decimal `json:"total_revenue"`
	AvgOrderValue  decimal.Decimal `json:"avg_order_value"`
}

// Highlights are the narrative facts surfaced on the insights tab.
type Highlights struct {
	TopSegment  string `json:"top_segment"`
	TopCategory string `json:"top_category"`
	PeakMonth   string `json:"peak_month"`
	PeakWeekday string `json:"peak_weekday"`
}
