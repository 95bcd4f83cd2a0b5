package dataset

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is one line item of the raw transaction dataset.
type Order struct {
	CustomerID       string
	CustomerUniqueID string
	OrderID          string
	// PurchasedAt is nil when the source timestamp was missing or unparseable.
	PurchasedAt     *time.Time
	PaymentValue    decimal.Decimal
	ProductCategory string
	PaymentType     string
	ReviewScore     *float64
	CustomerLat     *float64
	CustomerLng     *float64
}

// LoadStats summarizes one dataset load.
type LoadStats struct {
	Rows              int
	SkippedRows       int
	MissingTimestamps int
	FirstPurchase     *time.Time
	LastPurchase      *time.Time
}
