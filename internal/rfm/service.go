package rfm

import (
	"context"

	"github.com/muhfery/ecommerce-insights-backend/internal/dataset"
	pkgerrors "github.com/muhfery/ecommerce-insights-backend/pkg/errors"
)

// Service exposes the RFM table and its aggregations to the API layer.
// Every call recomputes from the raw rows; there is no cached derived state.
type Service interface {
	// Table returns the filtered customer table.
	Table(ctx context.Context, params FilterParams) (Table, error)
	// Summary returns headline metrics over the filtered table.
	Summary(ctx context.Context, params FilterParams) (*Summary, error)
	// Segments returns the segment distribution and per-segment profiles.
	Segments(ctx context.Context, params FilterParams) ([]SegmentCount, []SegmentProfile, error)
	// Churn returns the churn risk distribution.
	Churn(ctx context.Context, params FilterParams) ([]ChurnCount, error)
}

type service struct {
	data *dataset.Provider
}

// NewService wires the RFM engine to the loaded dataset.
func NewService(data *dataset.Provider) (Service, error) {
	if data == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "dataset provider required")
	}
	return &service{data: data}, nil
}

func (s *service) Table(ctx context.Context, params FilterParams) (Table, error) {
	table, err := Compute(s.data.Orders())
	if err != nil {
		return nil, err
	}
	return Filter(table, params), nil
}

func (s *service) Summary(ctx context.Context, params FilterParams) (*Summary, error) {
	table, err := s.Table(ctx, params)
	if err != nil {
		return nil, err
	}
	summary := Summarize(table)
	return &summary, nil
}

func (s *service) Segments(ctx context.Context, params FilterParams) ([]SegmentCount, []SegmentProfile, error) {
	table, err := s.Table(ctx, params)
	if err != nil {
		return nil, nil, err
	}
	return SegmentCounts(table), SegmentProfiles(table), nil
}

func (s *service) Churn(ctx context.Context, params FilterParams) ([]ChurnCount, error) {
	table, err := s.Table(ctx, params)
	if err != nil {
		return nil, err
	}
	return ChurnCounts(table), nil
}
