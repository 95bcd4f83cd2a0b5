package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/multierr"

	pkgerrors "github.com/muhfery/ecommerce-insights-backend/pkg/errors"
)

const (
	colCustomerID       = "customer_id"
	colOrderID          = "order_id"
	colPurchaseTS       = "order_purchase_timestamp"
	colPaymentValue     = "payment_value"
	colProductCategory  = "product_category_name"
	colPaymentType      = "payment_type"
	colReviewScore      = "review_score"
	colCustomerLat      = "customer_lat"
	colCustomerLng      = "customer_lng"
	colCustomerUniqueID = "customer_unique_id"
)

var requiredColumns = []string{colCustomerID, colOrderID, colPurchaseTS, colPaymentValue}

// Loader reads the static order dataset from a CSV file.
type Loader struct {
	path    string
	layouts []string
}

// NewLoader builds a loader for the given file. Layouts are tried in order
// when parsing purchase timestamps; a value no layout accepts becomes a
// missing timestamp, not an error.
func NewLoader(path string, layouts []string) *Loader {
	if len(layouts) == 0 {
		layouts = []string{"2006-01-02 15:04:05"}
	}
	return &Loader{path: path, layouts: layouts}
}

// Load reads the whole file into memory.
func (l *Loader) Load() ([]Order, *LoadStats, error) {
	f, err := os.Open(l.path)
	if err != nil {
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeDataset, err, "open dataset file")
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeDataset, err, "read dataset header")
	}

	index := map[string]int{}
	for i, name := range header {
		index[strings.TrimSpace(strings.ToLower(name))] = i
	}

	var headerErr error
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			headerErr = multierr.Append(headerErr, fmt.Errorf("missing column %q", col))
		}
	}
	if headerErr != nil {
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeDataset, headerErr, "invalid dataset header")
	}

	var orders []Order
	stats := &LoadStats{}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			stats.SkippedRows++
			continue
		}

		order, ok := l.parseRow(record, index)
		if !ok {
			stats.SkippedRows++
			continue
		}

		stats.Rows++
		if order.PurchasedAt == nil {
			stats.MissingTimestamps++
		} else {
			if stats.FirstPurchase == nil || order.PurchasedAt.Before(*stats.FirstPurchase) {
				ts := *order.PurchasedAt
				stats.FirstPurchase = &ts
			}
			if stats.LastPurchase == nil || order.PurchasedAt.After(*stats.LastPurchase) {
				ts := *order.PurchasedAt
				stats.LastPurchase = &ts
			}
		}
		orders = append(orders, order)
	}

	return orders, stats, nil
}

func (l *Loader) parseRow(record []string, index map[string]int) (Order, bool) {
	field := func(col string) string {
		i, ok := index[col]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	customerID := field(colCustomerID)
	orderID := field(colOrderID)
	if customerID == "" || orderID == "" {
		return Order{}, false
	}

	order := Order{
		CustomerID:       customerID,
		CustomerUniqueID: field(colCustomerUniqueID),
		OrderID:          orderID,
		ProductCategory:  field(colProductCategory),
		PaymentType:      field(colPaymentType),
		PaymentValue:     decimal.Zero,
	}

	if raw := field(colPurchaseTS); raw != "" {
		for _, layout := range l.layouts {
			if ts, err := time.Parse(layout, raw); err == nil {
				order.PurchasedAt = &ts
				break
			}
		}
	}

	if raw := field(colPaymentValue); raw != "" {
		if value, err := decimal.NewFromString(raw); err == nil && !value.IsNegative() {
			order.PaymentValue = value
		}
	}

	if raw := field(colReviewScore); raw != "" {
		if score, err := strconv.ParseFloat(raw, 64); err == nil {
			order.ReviewScore = &score
		}
	}

	lat, latErr := strconv.ParseFloat(field(colCustomerLat), 64)
	lng, lngErr := strconv.ParseFloat(field(colCustomerLng), 64)
	if latErr == nil && lngErr == nil {
		order.CustomerLat = &lat
		order.CustomerLng = &lng
	}

	return order, true
}
