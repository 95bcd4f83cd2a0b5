package rfm

import "github.com/shopspring/decimal"

// FilterParams are the dashboard's slider and selection values, passed
// explicitly on every call. Nil bounds are unbounded; all bounds are
// inclusive.
type FilterParams struct {
	RecencyMin   *int
	RecencyMax   *int
	FrequencyMin *int
	FrequencyMax *int
	MonetaryMin  *decimal.Decimal
	MonetaryMax  *decimal.Decimal
	Segment      Segment
}

func (p FilterParams) boundsRecency() bool {
	return p.RecencyMin != nil || p.RecencyMax != nil
}

// Filter returns the subset of the table matching the params. Pure; input
// rows are carried over unchanged. Customers with unknown recency are
// dropped as soon as a recency bound applies, since no bound can be said to
// contain them.
func Filter(table Table, params FilterParams) Table {
	out := make(Table, 0, len(table))
	for _, c := range table {
		if params.boundsRecency() && !c.RecencyKnown {
			continue
		}
		if params.RecencyMin != nil && c.Recency < *params.RecencyMin {
			continue
		}
		if params.RecencyMax != nil && c.Recency > *params.RecencyMax {
			continue
		}
		if params.FrequencyMin != nil && c.Frequency < *params.FrequencyMin {
			continue
		}
		if params.FrequencyMax != nil && c.Frequency > *params.FrequencyMax {
			continue
		}
		if params.MonetaryMin != nil && c.Monetary.LessThan(*params.MonetaryMin) {
			continue
		}
		if params.MonetaryMax != nil && c.Monetary.GreaterThan(*params.MonetaryMax) {
			continue
		}
		if params.Segment != "" && c.Segment != params.Segment {
			continue
		}
		out = append(out, c)
	}
	return out
}
