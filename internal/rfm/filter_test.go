package rfm

import (
	"testing"

	"github.com/shopspring/decimal"
)

func intPtr(v int) *int { return &v }

func decPtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func sampleTable() Table {
	rows := []struct {
		id        string
		recency   int
		frequency int
		monetary  int64
	}{
		{"a", 10, 3, 1500},
		{"b", 60, 2, 600},
		{"c", 200, 2, 400},
		{"d", 400, 1, 100},
	}

	table := make(Table, 0, len(rows))
	for _, r := range rows {
		c := customer(r.recency, r.frequency, r.monetary)
		c.CustomerID = r.id
		c.Segment = classify(c)
		c.ChurnRisk = churnRisk(c)
		table = append(table, c)
	}
	return table
}

func TestFilterFullRangeIsIdentity(t *testing.T) {
	table := sampleTable()

	got := Filter(table, FilterParams{
		RecencyMin:   intPtr(10),
		RecencyMax:   intPtr(400),
		FrequencyMin: intPtr(1),
		FrequencyMax: intPtr(3),
		MonetaryMin:  decPtr(100),
		MonetaryMax:  decPtr(1500),
	})

	if len(got) != len(table) {
		t.Fatalf("full observed range should return everything, got %d of %d", len(got), len(table))
	}
	for i := range got {
		if got[i].CustomerID != table[i].CustomerID {
			t.Fatalf("row %d changed: %+v", i, got[i])
		}
	}
}

func TestFilterInclusiveBounds(t *testing.T) {
	table := sampleTable()

	got := Filter(table, FilterParams{RecencyMin: intPtr(60), RecencyMax: intPtr(200)})
	if len(got) != 2 {
		t.Fatalf("expected 2 customers in [60,200], got %d", len(got))
	}
}

func TestFilterBySegment(t *testing.T) {
	table := sampleTable()

	got := Filter(table, FilterParams{Segment: SegmentChampions})
	if len(got) != 1 || got[0].CustomerID != "a" {
		t.Fatalf("expected only customer a, got %+v", got)
	}
}

func TestFilterDropsUnknownRecencyWhenBounded(t *testing.T) {
	table := sampleTable()
	table = append(table, Customer{CustomerID: "ghost", Frequency: 1, Monetary: decimal.NewFromInt(50), Segment: SegmentOthers, ChurnRisk: ChurnLow})

	unbounded := Filter(table, FilterParams{})
	if len(unbounded) != len(table) {
		t.Fatalf("no bounds should keep everyone, got %d", len(unbounded))
	}

	bounded := Filter(table, FilterParams{RecencyMin: intPtr(0), RecencyMax: intPtr(10000)})
	for _, c := range bounded {
		if c.CustomerID == "ghost" {
			t.Fatal("unknown recency must not satisfy a recency bound")
		}
	}
}

func TestSummarize(t *testing.T) {
	table := sampleTable()
	s := Summarize(table)

	if s.TotalCustomers != 4 {
		t.Fatalf("expected 4 customers, got %d", s.TotalCustomers)
	}
	if s.AvgRecency != float64(10+60+200+400)/4 {
		t.Fatalf("unexpected avg recency %v", s.AvgRecency)
	}
	if !s.AvgMonetary.Equal(decimal.NewFromInt(650)) {
		t.Fatalf("unexpected avg monetary %s", s.AvgMonetary)
	}
}

func TestSegmentCountsStableOrder(t *testing.T) {
	table := sampleTable()
	counts := SegmentCounts(table)

	if len(counts) == 0 {
		t.Fatal("expected segment counts")
	}
	// Champions sorts before later rules regardless of count.
	if counts[0].Segment != SegmentChampions {
		t.Fatalf("expected Champions first, got %s", counts[0].Segment)
	}
}

func TestChurnCountsCoverTable(t *testing.T) {
	table := sampleTable()
	total := 0
	for _, c := range ChurnCounts(table) {
		total += c.Count
	}
	if total != len(table) {
		t.Fatalf("churn counts should cover all customers, got %d", total)
	}
}
