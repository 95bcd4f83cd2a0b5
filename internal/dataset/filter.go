package dataset

import "time"

// FilterByDateRange keeps orders whose purchase date falls inside [from, to].
// Bounds compare on calendar date, matching how the dashboard date picker
// behaves. Orders without a timestamp are dropped once a range is applied.
func FilterByDateRange(orders []Order, from, to time.Time) []Order {
	fromDay := truncateToDay(from)
	toDay := truncateToDay(to)

	out := make([]Order, 0, len(orders))
	for _, order := range orders {
		if order.PurchasedAt == nil {
			continue
		}
		day := truncateToDay(*order.PurchasedAt)
		if day.Before(fromDay) || day.After(toDay) {
			continue
		}
		out = append(out, order)
	}
	return out
}

// FilterByCategory keeps orders in the named product category.
func FilterByCategory(orders []Order, category string) []Order {
	if category == "" {
		return orders
	}
	out := make([]Order, 0, len(orders))
	for _, order := range orders {
		if order.ProductCategory == category {
			out = append(out, order)
		}
	}
	return out
}

// FilterByCustomerIDs keeps orders belonging to the given customers.
func FilterByCustomerIDs(orders []Order, ids map[string]struct{}) []Order {
	out := make([]Order, 0, len(orders))
	for _, order := range orders {
		if _, ok := ids[order.CustomerID]; ok {
			out = append(out, order)
		}
	}
	return out
}

func truncateToDay(ts time.Time) time.Time {
	return time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, ts.Location())
}
