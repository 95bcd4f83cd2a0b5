package dataset

import (
	"context"

	pkgerrors "github.com/muhfery/ecommerce-insights-backend/pkg/errors"
)

// Provider holds the dataset loaded at startup. The slice is never mutated
// after load; callers treat it as read-only, so concurrent reads need no
// coordination.
type Provider struct {
	orders []Order
	stats  LoadStats
}

// NewProvider loads the dataset once and keeps it in memory.
func NewProvider(loader *Loader) (*Provider, error) {
	orders, stats, err := loader.Load()
	if err != nil {
		return nil, err
	}
	return &Provider{orders: orders, stats: *stats}, nil
}

// NewStaticProvider wraps an already materialized order set. Used by tests.
func NewStaticProvider(orders []Order) *Provider {
	stats := LoadStats{Rows: len(orders)}
	for _, order := range orders {
		if order.PurchasedAt == nil {
			stats.MissingTimestamps++
			continue
		}
		if stats.FirstPurchase == nil || order.PurchasedAt.Before(*stats.FirstPurchase) {
			ts := *order.PurchasedAt
			stats.FirstPurchase = &ts
		}
		if stats.LastPurchase == nil || order.PurchasedAt.After(*stats.LastPurchase) {
			ts := *order.PurchasedAt
			stats.LastPurchase = &ts
		}
	}
	return &Provider{orders: orders, stats: stats}
}

func (p *Provider) Orders() []Order {
	return p.orders
}

func (p *Provider) Stats() LoadStats {
	return p.stats
}

// Check reports whether the dataset is usable, for readiness probes.
func (p *Provider) Check(ctx context.Context) error {
	if p == nil || len(p.orders) == 0 {
		return pkgerrors.New(pkgerrors.CodeDataset, "dataset not loaded")
	}
	return nil
}

func (p *Provider) Name() string {
	return "dataset"
}
