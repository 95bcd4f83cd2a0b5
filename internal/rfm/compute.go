package rfm

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/muhfery/ecommerce-insights-backend/internal/dataset"
	pkgerrors "github.com/muhfery/ecommerce-insights-backend/pkg/errors"
)

// Compute derives the full RFM table from raw order rows.
//
// The reference instant is one day past the latest parseable purchase
// timestamp in the whole input, so the most recent buyer always lands on
// recency 1. Rows whose timestamp failed to parse still count toward
// frequency and monetary, but never move a customer's recency; a customer
// with no parseable timestamp at all keeps RecencyKnown=false and falls
// through every recency comparison.
func Compute(orders []dataset.Order) (Table, error) {
	reference, ok := referenceInstant(orders)
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeDataset, "no parseable purchase timestamps in dataset")
	}

	type group struct {
		latest    *time.Time
		frequency int
		monetary  decimal.Decimal
	}

	groups := map[string]*group{}
	order := []string{}
	for _, row := range orders {
		g, seen := groups[row.CustomerID]
		if !seen {
			g = &group{monetary: decimal.Zero}
			groups[row.CustomerID] = g
			order = append(order, row.CustomerID)
		}
		g.frequency++
		g.monetary = g.monetary.Add(row.PaymentValue)
		if row.PurchasedAt != nil && (g.latest == nil || row.PurchasedAt.After(*g.latest)) {
			ts := *row.PurchasedAt
			g.latest = &ts
		}
	}

	sort.Strings(order)

	table := make(Table, 0, len(groups))
	for _, id := range order {
		g := groups[id]
		customer := Customer{
			CustomerID: id,
			Frequency:  g.frequency,
			Monetary:   g.monetary,
		}
		if g.latest != nil {
			customer.Recency = daysBetween(*g.latest, reference)
			customer.RecencyKnown = true
		}
		customer.Segment = classify(customer)
		customer.ChurnRisk = churnRisk(customer)
		table = append(table, customer)
	}

	return table, nil
}

func referenceInstant(orders []dataset.Order) (time.Time, bool) {
	var latest *time.Time
	for _, row := range orders {
		if row.PurchasedAt == nil {
			continue
		}
		if latest == nil || row.PurchasedAt.After(*latest) {
			ts := *row.PurchasedAt
			latest = &ts
		}
	}
	if latest == nil {
		return time.Time{}, false
	}
	return latest.Add(24 * time.Hour), true
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}

func churnRisk(c Customer) ChurnRisk {
	switch {
	case c.RecencyKnown && c.Recency > 180:
		return ChurnHigh
	case c.RecencyKnown && c.Recency > 90:
		return ChurnMedium
	default:
		return ChurnLow
	}
}
