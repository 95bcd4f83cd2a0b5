package rfm

import "github.com/shopspring/decimal"

// Summary holds the headline metrics for a (possibly filtered) table.
type Summary struct {
	TotalCustomers int             `json:"total_customers"`
	AvgRecency     float64         `json:"avg_recency"`
	AvgFrequency   float64         `json:"avg_frequency"`
	AvgMonetary    decimal.Decimal `json:"avg_monetary"`
}

// SegmentCount is one slice of the segment distribution.
type SegmentCount struct {
	Segment Segment `json:"segment"`
	Count   int     `json:"count"`
}

// SegmentProfile is the mean R/F/M per segment.
type SegmentProfile struct {
	Segment      Segment         `json:"segment"`
	Count        int             `json:"count"`
	AvgRecency   float64         `json:"avg_recency"`
	AvgFrequency float64         `json:"avg_frequency"`
	AvgMonetary  decimal.Decimal `json:"avg_monetary"`
}

// ChurnCount is one slice of the churn risk distribution.
type ChurnCount struct {
	Risk  ChurnRisk `json:"risk"`
	Count int       `json:"count"`
}

// Summarize computes the headline metrics. Recency averages only cover
// customers whose recency is known.
func Summarize(table Table) Summary {
	s := Summary{TotalCustomers: len(table), AvgMonetary: decimal.Zero}
	if len(table) == 0 {
		return s
	}

	recencySum, recencyCount := 0, 0
	frequencySum := 0
	monetarySum := decimal.Zero
	for _, c := range table {
		if c.RecencyKnown {
			recencySum += c.Recency
			recencyCount++
		}
		frequencySum += c.Frequency
		monetarySum = monetarySum.Add(c.Monetary)
	}

	if recencyCount > 0 {
		s.AvgRecency = float64(recencySum) / float64(recencyCount)
	}
	s.AvgFrequency = float64(frequencySum) / float64(len(table))
	s.AvgMonetary = monetarySum.Div(decimal.NewFromInt(int64(len(table)))).Round(2)
	return s
}

// SegmentCounts returns the distribution over all known segments, in rule
// order so charts render stably.
func SegmentCounts(table Table) []SegmentCount {
	counts := map[Segment]int{}
	for _, c := range table {
		counts[c.Segment]++
	}

	out := make([]SegmentCount, 0, len(counts))
	for _, segment := range Segments() {
		if n, ok := counts[segment]; ok {
			out = append(out, SegmentCount{Segment: segment, Count: n})
		}
	}
	return out
}

// SegmentProfiles returns per-segment mean metrics, in rule order.
func SegmentProfiles(table Table) []SegmentProfile {
	grouped := map[Segment]Table{}
	for _, c := range table {
		grouped[c.Segment] = append(grouped[c.Segment], c)
	}

	out := make([]SegmentProfile, 0, len(grouped))
	for _, segment := range Segments() {
		members, ok := grouped[segment]
		if !ok {
			continue
		}
		summary := Summarize(members)
		out = append(out, SegmentProfile{
			Segment:      segment,
			Count:        summary.TotalCustomers,
			AvgRecency:   summary.AvgRecency,
			AvgFrequency: summary.AvgFrequency,
			AvgMonetary:  summary.AvgMonetary,
		})
	}
	return out
}

// ChurnCounts returns the churn risk distribution in Low/Medium/High order.
func ChurnCounts(table Table) []ChurnCount {
	counts := map[ChurnRisk]int{}
	for _, c := range table {
		counts[c.ChurnRisk]++
	}

	out := make([]ChurnCount, 0, 3)
	for _, risk := range []ChurnRisk{ChurnLow, ChurnMedium, ChurnHigh} {
		if n, ok := counts[risk]; ok {
			out = append(out, ChurnCount{Risk: risk, Count: n})
		}
	}
	return out
}
