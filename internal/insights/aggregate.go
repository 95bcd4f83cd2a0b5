package insights

import (
	"sort"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/muhfery/ecommerce-insights-backend/internal/dataset"
)

// weekdays in dashboard order, Monday first.
var weekdays = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
	time.Friday, time.Saturday, time.Sunday,
}

// MonthlySales buckets orders and revenue per calendar month, ascending.
func MonthlySales(orders []dataset.Order) []MonthlyPoint {
	type bucket struct {
		orders  int
		revenue decimal.Decimal
	}
	buckets := map[string]*bucket{}
	for _, o := range orders {
		if o.PurchasedAt == nil {
			continue
		}
		month := o.PurchasedAt.Format("2006-01")
		b, ok := buckets[month]
		if !ok {
			b = &bucket{revenue: decimal.Zero}
			buckets[month] = b
		}
		b.orders++
		b.revenue = b.revenue.Add(o.PaymentValue)
	}

	months := make([]string, 0, len(buckets))
	for m := range buckets {
		months = append(months, m)
	}
	sort.Strings(months)

	out := make([]MonthlyPoint, 0, len(months))
	for _, m := range months {
		out = append(out, MonthlyPoint{Month: m, Orders: buckets[m].orders, Revenue: buckets[m].revenue.Round(2)})
	}
	return out
}

// OrderHeatmap counts orders per weekday and hour.
func OrderHeatmap(orders []dataset.Order) HeatmapGrid {
	grid := HeatmapGrid{
		Days:   make([]string, len(weekdays)),
		Hours:  make([]int, 24),
		Counts: make([][]int64, len(weekdays)),
	}
	rowByWeekday := map[time.Weekday]int{}
	for i, day := range weekdays {
		grid.Days[i] = day.String()
		grid.Counts[i] = make([]int64, 24)
		rowByWeekday[day] = i
	}
	for h := range grid.Hours {
		grid.Hours[h] = h
	}

	for _, o := range orders {
		if o.PurchasedAt == nil {
			continue
		}
		row := rowByWeekday[o.PurchasedAt.Weekday()]
		grid.Counts[row][o.PurchasedAt.Hour()]++
	}
	return grid
}

// PaymentBreakdown returns per-payment-type order counts and revenue,
// largest order count first.
func PaymentBreakdown(orders []dataset.Order) []PaymentSlice {
	type bucket struct {
		orders  int
		revenue decimal.Decimal
	}
	buckets := map[string]*bucket{}
	for _, o := range orders {
		if o.PaymentType == "" {
			continue
		}
		b, ok := buckets[o.PaymentType]
		if !ok {
			b = &bucket{revenue: decimal.Zero}
			buckets[o.PaymentType] = b
		}
		b.orders++
		b.revenue = b.revenue.Add(o.PaymentValue)
	}

	out := make([]PaymentSlice, 0, len(buckets))
	for name, b := range buckets {
		out = append(out, PaymentSlice{PaymentType: name, Orders: b.orders, Revenue: b.revenue.Round(2)})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Orders != out[j].Orders {
			return out[i].Orders > out[j].Orders
		}
		return out[i].PaymentType < out[j].PaymentType
	})
	return out
}

// TopCategories returns the n most sold product categories by row count.
func TopCategories(orders []dataset.Order, n int) []LabelValue {
	return topCounts(categoryCounts(orders), n)
}

// CategoryTerms returns every category with its row count, largest first.
// The dashboard renders these as word cloud weights.
func CategoryTerms(orders []dataset.Order) []LabelValue {
	counts := categoryCounts(orders)
	return topCounts(counts, len(counts))
}

// CategoryRatings returns the n categories with the highest mean review
// score.
func CategoryRatings(orders []dataset.Order, n int) []CategoryRating {
	type bucket struct {
		sum   float64
		count int
	}
	buckets := map[string]*bucket{}
	for _, o := range orders {
		if o.ProductCategory == "" || o.ReviewScore == nil {
			continue
		}
		b, ok := buckets[o.ProductCategory]
		if !ok {
			b = &bucket{}
			buckets[o.ProductCategory] = b
		}
		b.sum += *o.ReviewScore
		b.count++
	}

	out := make([]CategoryRating, 0, len(buckets))
	for name, b := range buckets {
		out = append(out, CategoryRating{
			Category: name,
			Average:  b.sum / float64(b.count),
			Reviews:  b.count,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Average != out[j].Average {
			return out[i].Average > out[j].Average
		}
		return out[i].Category < out[j].Category
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// RatingDistribution counts reviews per whole score 1..5.
func RatingDistribution(orders []dataset.Order) []LabelValue {
	counts := map[int]int64{}
	for _, o := range orders {
		if o.ReviewScore == nil {
			continue
		}
		score := int(*o.ReviewScore)
		if score < 1 || score > 5 {
			continue
		}
		counts[score]++
	}

	out := make([]LabelValue, 0, 5)
	for score := 1; score <= 5; score++ {
		if n, ok := counts[score]; ok {
			out = append(out, LabelValue{Label: strconv.Itoa(score), Value: n})
		}
	}
	return out
}

// GeoPoints returns every row that carries both coordinates.
func GeoPoints(orders []dataset.Order) []GeoPoint {
	out := make([]GeoPoint, 0, len(orders))
	for _, o := range orders {
		if o.CustomerLat == nil || o.CustomerLng == nil {
			continue
		}
		out = append(out, GeoPoint{Lat: *o.CustomerLat, Lng: *o.CustomerLng})
	}
	return out
}

// Summarize computes the headline order metrics over the given rows.
func Summarize(orders []dataset.Order) Overview {
	distinctOrders := map[string]struct{}{}
	distinctCustomers := map[string]struct{}{}
	revenue := decimal.Zero
	for _, o := range orders {
		distinctOrders[o.OrderID] = struct{}{}
		distinctCustomers[o.CustomerID] = struct{}{}
		revenue = revenue.Add(o.PaymentValue)
	}

	overview := Overview{
		TotalOrders:    len(distinctOrders),
		TotalCustomers: len(distinctCustomers),
		TotalRevenue:   revenue.Round(2),
		AvgOrderValue:  decimal.Zero,
	}
	if overview.TotalOrders > 0 {
		overview.AvgOrderValue = revenue.Div(decimal.NewFromInt(int64(overview.TotalOrders))).Round(2)
	}
	return overview
}

// Highlight derives the narrative facts from the rows and the segment
// distribution.
func Highlight(orders []dataset.Order, segments []LabelValue) Highlights {
	h := Highlights{TopSegment: "N/A", TopCategory: "N/A", PeakMonth: "N/A", PeakWeekday: "N/A"}

	if len(segments) > 0 {
		top := segments[0]
		for _, s := range segments[1:] {
			if s.Value > top.Value {
				top = s
			}
		}
		h.TopSegment = top.Label
	}

	if top := topCounts(categoryCounts(orders), 1); len(top) > 0 {
		h.TopCategory = top[0].Label
	}

	monthCounts := map[time.Month]int64{}
	dayCounts := map[time.Weekday]int64{}
	for _, o := range orders {
		if o.PurchasedAt == nil {
			continue
		}
		monthCounts[o.PurchasedAt.Month()]++
		dayCounts[o.PurchasedAt.Weekday()]++
	}

	var bestMonth time.Month
	var bestMonthCount int64 = -1
	for m := time.January; m <= time.December; m++ {
		if monthCounts[m] > bestMonthCount {
			bestMonth, bestMonthCount = m, monthCounts[m]
		}
	}
	if bestMonthCount > 0 {
		h.PeakMonth = bestMonth.String()
	}

	var bestDay time.Weekday
	var bestDayCount int64 = -1
	for _, d := range weekdays {
		if dayCounts[d] > bestDayCount {
			bestDay, bestDayCount = d, dayCounts[d]
		}
	}
	if bestDayCount > 0 {
		h.PeakWeekday = bestDay.String()
	}

	return h
}

func categoryCounts(orders []dataset.Order) map[string]int64 {
	counts := map[string]int64{}
	for _, o := range orders {
		if o.ProductCategory == "" {
			continue
		}
		counts[o.ProductCategory]++
	}
	return counts
}

func topCounts(counts map[string]int64, n int) []LabelValue {
	out := make([]LabelValue, 0, len(counts))
	for label, value := range counts {
		out = append(out, LabelValue{Label: label, Value: value})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Value != out[j].Value {
			return out[i].Value > out[j].Value
		}
		return out[i].Label < out[j].Label
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
