package rfm

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/muhfery/ecommerce-insights-backend/internal/dataset"
	pkgerrors "github.com/muhfery/ecommerce-insights-backend/pkg/errors"
)

func ts(value string) *time.Time {
	parsed, err := time.Parse("2006-01-02 15:04:05", value)
	if err != nil {
		panic(err)
	}
	return &parsed
}

func order(customer, orderID string, purchased *time.Time, payment float64) dataset.Order {
	return dataset.Order{
		CustomerID:   customer,
		OrderID:      orderID,
		PurchasedAt:  purchased,
		PaymentValue: decimal.NewFromFloat(payment),
	}
}

func TestComputeLatestBuyerHasRecencyOne(t *testing.T) {
	orders := []dataset.Order{
		order("early", "o1", ts("2018-01-01 10:00:00"), 100),
		order("late", "o2", ts("2018-06-01 10:00:00"), 100),
	}

	table, err := Compute(orders)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, c := range table {
		if c.CustomerID == "late" {
			if !c.RecencyKnown || c.Recency != 1 {
				t.Fatalf("latest buyer should have recency 1, got %+v", c)
			}
		}
	}
}

func TestComputeFailsWithoutParseableTimestamps(t *testing.T) {
	orders := []dataset.Order{
		order("a", "o1", nil, 100),
		order("b", "o2", nil, 50),
	}

	_, err := Compute(orders)
	if err == nil {
		t.Fatal("expected error for dataset without timestamps")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeDataset {
		t.Fatalf("expected dataset error code, got %v", err)
	}
}

func TestComputeCountsRowsNotDistinctOrders(t *testing.T) {
	// Two line items of the same order still count twice toward frequency.
	orders := []dataset.Order{
		order("a", "o1", ts("2018-01-01 10:00:00"), 40),
		order("a", "o1", ts("2018-01-01 10:00:00"), 60),
	}

	table, err := Compute(orders)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(table) != 1 {
		t.Fatalf("expected one customer, got %d", len(table))
	}
	if table[0].Frequency != 2 {
		t.Fatalf("expected frequency 2, got %d", table[0].Frequency)
	}
	if !table[0].Monetary.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("expected monetary 100, got %s", table[0].Monetary)
	}
}

func TestComputeUnparseableRowsCountedButNotInRecency(t *testing.T) {
	orders := []dataset.Order{
		order("a", "o1", ts("2018-01-01 10:00:00"), 100),
		order("a", "o2", nil, 50),
		order("b", "o3", ts("2018-03-01 10:00:00"), 10),
	}

	table, err := Compute(orders)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var got Customer
	for _, c := range table {
		if c.CustomerID == "a" {
			got = c
		}
	}

	if got.Frequency != 2 {
		t.Fatalf("untimestamped row should count toward frequency, got %d", got.Frequency)
	}
	if !got.Monetary.Equal(decimal.NewFromInt(150)) {
		t.Fatalf("untimestamped row should count toward monetary, got %s", got.Monetary)
	}
	// Reference is 2018-03-02; customer a's recency anchors on its only
	// parseable purchase.
	if !got.RecencyKnown || got.Recency != 60 {
		t.Fatalf("expected recency 60, got %+v", got)
	}
}

func TestComputeCustomerWithoutTimestampsFallsToOthersAndLow(t *testing.T) {
	orders := []dataset.Order{
		order("anchor", "o1", ts("2018-01-01 10:00:00"), 10),
		order("ghost", "o2", nil, 5000),
	}

	table, err := Compute(orders)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, c := range table {
		if c.CustomerID != "ghost" {
			continue
		}
		if c.RecencyKnown {
			t.Fatal("ghost customer should have unknown recency")
		}
		if c.Segment != SegmentOthers {
			t.Fatalf("expected Others, got %s", c.Segment)
		}
		if c.ChurnRisk != ChurnLow {
			t.Fatalf("expected Low churn risk, got %s", c.ChurnRisk)
		}
	}
}

func TestChurnRiskThresholds(t *testing.T) {
	tests := []struct {
		recency int
		want    ChurnRisk
	}{
		{recency: 1, want: ChurnLow},
		{recency: 90, want: ChurnLow},
		{recency: 91, want: ChurnMedium},
		{recency: 180, want: ChurnMedium},
		{recency: 181, want: ChurnHigh},
		{recency: 400, want: ChurnHigh},
	}

	for _, tt := range tests {
		got := churnRisk(Customer{Recency: tt.recency, RecencyKnown: true})
		if got != tt.want {
			t.Fatalf("recency %d: expected %s, got %s", tt.recency, tt.want, got)
		}
	}
}
