package insights

import (
	"context"
	"time"

	"github.com/muhfery/ecommerce-insights-backend/internal/dataset"
	"github.com/muhfery/ecommerce-insights-backend/internal/rfm"
	pkgerrors "github.com/muhfery/ecommerce-insights-backend/pkg/errors"
)

// Query scopes an insights request the way the dashboard sidebar does:
// an optional purchase-date window, an optional product category, and an
// optional customer segment (which narrows orders to customers in that
// segment).
type Query struct {
	From     *time.Time
	To       *time.Time
	Category string
	Segment  rfm.Segment
}

// Service computes chart-ready aggregations over the scoped dataset.
type Service interface {
	Sales(ctx context.Context, q Query) ([]MonthlyPoint, error)
	Heatmap(ctx context.Context, q Query) (*HeatmapGrid, error)
	Payments(ctx context.Context, q Query) ([]PaymentSlice, error)
	Categories(ctx context.Context, q Query, limit int) ([]LabelValue, error)
	Terms(ctx context.Context, q Query) ([]LabelValue, error)
	Reviews(ctx context.Context, q Query, limit int) ([]CategoryRating, []LabelValue, error)
	Geo(ctx context.Context, q Query) ([]GeoPoint, error)
	Overview(ctx context.Context, q Query) (*Overview, error)
	Highlights(ctx context.Context, q Query) (*Highlights, error)
	// Rows returns the scoped raw order rows, for CSV export.
	Rows(ctx context.Context, q Query) ([]dataset.Order, error)
}

type service struct {
	data *dataset.Provider
}

// NewService wires the insights aggregations to the loaded dataset.
func NewService(data *dataset.Provider) (Service, error) {
	if data == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "dataset provider required")
	}
	return &service{data: data}, nil
}

func (s *service) scope(q Query) ([]dataset.Order, error) {
	orders := s.data.Orders()
	if q.From != nil && q.To != nil {
		orders = dataset.FilterByDateRange(orders, *q.From, *q.To)
	}
	orders = dataset.FilterByCategory(orders, q.Category)

	if q.Segment != "" {
		table, err := rfm.Compute(s.data.Orders())
		if err != nil {
			return nil, err
		}
		table = rfm.Filter(table, rfm.FilterParams{Segment: q.Segment})
		orders = dataset.FilterByCustomerIDs(orders, table.CustomerIDSet())
	}

	return orders, nil
}

func (s *service) Sales(ctx context.Context, q Query) ([]MonthlyPoint, error) {
	orders, err := s.scope(q)
	if err != nil {
		return nil, err
	}
	return MonthlySales(orders), nil
}

func (s *service) Heatmap(ctx context.Context, q Query) (*HeatmapGrid, error) {
	orders, err := s.scope(q)
	if err != nil {
		return nil, err
	}
	grid := OrderHeatmap(orders)
	return &grid, nil
}

func (s *service) Payments(ctx context.Context, q Query) ([]PaymentSlice, error) {
	orders, err := s.scope(q)
	if err != nil {
		return nil, err
	}
	return PaymentBreakdown(orders), nil
}

func (s *service) Categories(ctx context.Context, q Query, limit int) ([]LabelValue, error) {
	orders, err := s.scope(q)
	if err != nil {
		return nil, err
	}
	return TopCategories(orders, limit), nil
}

func (s *service) Terms(ctx context.Context, q Query) ([]LabelValue, error) {
	orders, err := s.scope(q)
	if err != nil {
		return nil, err
	}
	return CategoryTerms(orders), nil
}

func (s *service) Reviews(ctx context.Context, q Query, limit int) ([]CategoryRating, []LabelValue, error) {
	orders, err := s.scope(q)
	if err != nil {
		return nil, nil, err
	}
	return CategoryRatings(orders, limit), RatingDistribution(orders), nil
}

func (s *service) Geo(ctx context.Context, q Query) ([]GeoPoint, error) {
	orders, err := s.scope(q)
	if err != nil {
		return nil, err
	}
	return GeoPoints(orders), nil
}

func (s *service) Overview(ctx context.Context, q Query) (*Overview, error) {
	orders, err := s.scope(q)
	if err != nil {
		return nil, err
	}
	overview := Summarize(orders)
	return &overview, nil
}

func (s *service) Highlights(ctx context.Context, q Query) (*Highlights, error) {
	orders, err := s.scope(q)
	if err != nil {
		return nil, err
	}

	table, err := rfm.Compute(s.data.Orders())
	if err != nil {
		return nil, err
	}
	segments := make([]LabelValue, 0)
	for _, sc := range rfm.SegmentCounts(table) {
		segments = append(segments, LabelValue{Label: string(sc.Segment), Value: int64(sc.Count)})
	}

	highlights := Highlight(orders, segments)
	return &highlights, nil
}

func (s *service) Rows(ctx context.Context, q Query) ([]dataset.Order, error) {
	return s.scope(q)
}
