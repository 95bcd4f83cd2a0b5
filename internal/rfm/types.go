package rfm

import "github.com/shopspring/decimal"

// Segment is a named customer category.
type Segment string

const (
	SegmentChampions          Segment = "Champions"
	SegmentLoyalCustomers     Segment = "Loyal Customers"
	SegmentPotentialLoyalists Segment = "Potential Loyalists"
	SegmentNewCustomers       Segment = "New Customers"
	SegmentNeedAttention      Segment = "Need Attention"
	SegmentAtRisk             Segment = "At Risk"
	SegmentLost               Segment = "Lost"
	SegmentOthers             Segment = "Others"
)

// ChurnRisk is a coarse retention label derived from recency alone.
type ChurnRisk string

const (
	ChurnLow    ChurnRisk = "Low"
	ChurnMedium ChurnRisk = "Medium"
	ChurnHigh   ChurnRisk = "High"
)

// Customer carries the derived metrics for one distinct customer_id.
type Customer struct {
	CustomerID string `json:"customer_id"`
	// Recency is whole days between the reference instant and the customer's
	// latest parseable purchase. Meaningless when RecencyKnown is false.
	Recency      int             `json:"recency"`
	RecencyKnown bool            `json:"recency_known"`
	Frequency    int             `json:"frequency"`
	Monetary     decimal.Decimal `json:"monetary"`
	Segment      Segment         `json:"segment"`
	ChurnRisk    ChurnRisk       `json:"churn_risk"`
}

// Table is the full derived customer set, ordered by customer_id.
type Table []Customer

// CustomerIDSet returns the ids present in the table.
func (t Table) CustomerIDSet() map[string]struct{} {
	ids := make(map[string]struct{}, len(t))
	for _, c := range t {
		ids[c.CustomerID] = struct{}{}
	}
	return ids
}
