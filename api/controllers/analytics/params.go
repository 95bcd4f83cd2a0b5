package analytics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/muhfery/ecommerce-insights-backend/internal/insights"
	"github.com/muhfery/ecommerce-insights-backend/internal/rfm"
	pkgerrors "github.com/muhfery/ecommerce-insights-backend/pkg/errors"
)

const queryTimeLayout = time.RFC3339

// rangePresets map the sidebar quick-pick windows to day counts. Windows
// are anchored to the dataset's last purchase, not the wall clock, so a
// historical dataset still produces non-empty charts.
var rangePresets = map[string]int{
	"7d":  7,
	"30d": 30,
	"90d": 90,
}

func parseRFMParams(r *http.Request) (rfm.FilterParams, error) {
	var params rfm.FilterParams
	var err error

	if params.RecencyMin, err = queryIntPtr(r, "recency_min"); err != nil {
		return params, err
	}
	if params.RecencyMax, err = queryIntPtr(r, "recency_max"); err != nil {
		return params, err
	}
	if params.FrequencyMin, err = queryIntPtr(r, "frequency_min"); err != nil {
		return params, err
	}
	if params.FrequencyMax, err = queryIntPtr(r, "frequency_max"); err != nil {
		return params, err
	}
	if params.MonetaryMin, err = queryDecimalPtr(r, "monetary_min"); err != nil {
		return params, err
	}
	if params.MonetaryMax, err = queryDecimalPtr(r, "monetary_max"); err != nil {
		return params, err
	}

	params.Segment, err = querySegment(r)
	return params, err
}

func parseInsightsQuery(r *http.Request, lastPurchase *time.Time) (insights.Query, error) {
	var q insights.Query

	from, to, err := resolveRange(r, lastPurchase)
	if err != nil {
		return q, err
	}
	q.From = from
	q.To = to

	q.Category = strings.TrimSpace(r.URL.Query().Get("category"))
	q.Segment, err = querySegment(r)
	return q, err
}

// resolveRange accepts either an explicit from/to pair or a preset window.
// Supplying both is rejected rather than silently preferring one.
func resolveRange(r *http.Request, lastPurchase *time.Time) (*time.Time, *time.Time, error) {
	rawFrom := strings.TrimSpace(r.URL.Query().Get("from"))
	rawTo := strings.TrimSpace(r.URL.Query().Get("to"))
	preset := strings.TrimSpace(r.URL.Query().Get("range"))

	if preset != "" && (rawFrom != "" || rawTo != "") {
		return nil, nil, pkgerrors.New(pkgerrors.CodeValidation, "range cannot be combined with from/to")
	}

	if preset != "" {
		if preset == "all" {
			return nil, nil, nil
		}
		days, ok := rangePresets[preset]
		if !ok {
			return nil, nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown range preset").
				WithDetails(map[string]any{"field": "range", "allowed": []string{"7d", "30d", "90d", "all"}})
		}
		if lastPurchase == nil {
			return nil, nil, nil
		}
		to := *lastPurchase
		from := to.AddDate(0, 0, -days)
		return &from, &to, nil
	}

	if rawFrom == "" && rawTo == "" {
		return nil, nil, nil
	}
	if rawFrom == "" || rawTo == "" {
		return nil, nil, pkgerrors.New(pkgerrors.CodeValidation, "from and to must be supplied together")
	}

	from, err := time.Parse(queryTimeLayout, rawFrom)
	if err != nil {
		return nil, nil, pkgerrors.New(pkgerrors.CodeValidation, "from must be RFC 3339").
			WithDetails(map[string]any{"field": "from"})
	}
	to, err := time.Parse(queryTimeLayout, rawTo)
	if err != nil {
		return nil, nil, pkgerrors.New(pkgerrors.CodeValidation, "to must be RFC 3339").
			WithDetails(map[string]any{"field": "to"})
	}
	if to.Before(from) {
		return nil, nil, pkgerrors.New(pkgerrors.CodeValidation, "to must not precede from")
	}
	return &from, &to, nil
}

func querySegment(r *http.Request) (rfm.Segment, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("segment"))
	if raw == "" {
		return "", nil
	}
	for _, segment := range rfm.Segments() {
		if raw == string(segment) {
			return segment, nil
		}
	}
	return "", pkgerrors.New(pkgerrors.CodeValidation, "unknown segment").
		WithDetails(map[string]any{"field": "segment", "value": raw})
}

func queryIntPtr(r *http.Request, key string) (*int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be numeric").
			WithDetails(map[string]any{"field": key})
	}
	if value < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must not be negative").
			WithDetails(map[string]any{"field": key})
	}
	return &value, nil
}

func queryDecimalPtr(r *http.Request, key string) (*decimal.Decimal, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return nil, nil
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be a decimal number").
			WithDetails(map[string]any{"field": key})
	}
	return &value, nil
}
