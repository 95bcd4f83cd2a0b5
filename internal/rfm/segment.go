package rfm

import "github.com/shopspring/decimal"

var (
	monetary250  = decimal.NewFromInt(250)
	monetary500  = decimal.NewFromInt(500)
	monetary750  = decimal.NewFromInt(750)
	monetary1000 = decimal.NewFromInt(1000)
)

type segmentRule struct {
	matches func(Customer) bool
	segment Segment
}

// segmentRules is evaluated top to bottom with first-match-wins. The rules
// overlap (a Champions customer also satisfies Need Attention), so the order
// is part of the contract and must not be rearranged.
var segmentRules = []segmentRule{
	{
		segment: SegmentChampions,
		matches: func(c Customer) bool {
			return recencyAtMost(c, 30) && c.Frequency >= 3 && c.Monetary.GreaterThanOrEqual(monetary1000)
		},
	},
	{
		segment: SegmentLoyalCustomers,
		matches: func(c Customer) bool {
			return recencyAtMost(c, 30) && c.Frequency >= 2 && c.Monetary.GreaterThanOrEqual(monetary750)
		},
	},
	{
		segment: SegmentPotentialLoyalists,
		matches: func(c Customer) bool {
			return recencyAtMost(c, 90) && c.Frequency >= 2 && c.Monetary.GreaterThanOrEqual(monetary500)
		},
	},
	{
		segment: SegmentNewCustomers,
		matches: func(c Customer) bool {
			return recencyAtMost(c, 30) && c.Frequency <= 2 && c.Monetary.LessThanOrEqual(monetary250)
		},
	},
	{
		segment: SegmentNeedAttention,
		matches: func(c Customer) bool {
			return recencyAtMost(c, 180) && c.Frequency >= 3 && c.Monetary.GreaterThanOrEqual(monetary500)
		},
	},
	{
		segment: SegmentAtRisk,
		matches: func(c Customer) bool {
			return recencyOver(c, 180) && c.Frequency >= 2 && c.Monetary.GreaterThanOrEqual(monetary250)
		},
	},
	{
		segment: SegmentLost,
		matches: func(c Customer) bool {
			return recencyOver(c, 365) && c.Frequency <= 2 && c.Monetary.LessThanOrEqual(monetary250)
		},
	},
}

func classify(c Customer) Segment {
	for _, rule := range segmentRules {
		if rule.matches(c) {
			return rule.segment
		}
	}
	return SegmentOthers
}

// Recency comparisons are false when recency is unknown, so customers
// without a single parseable timestamp always classify as Others.
func recencyAtMost(c Customer, days int) bool {
	return c.RecencyKnown && c.Recency <= days
}

func recencyOver(c Customer, days int) bool {
	return c.RecencyKnown && c.Recency > days
}

// Segments lists every label the rule table can produce, in rule order.
func Segments() []Segment {
	out := make([]Segment, 0, len(segmentRules)+1)
	for _, rule := range segmentRules {
		out = append(out, rule.segment)
	}
	return append(out, SegmentOthers)
}
