package analytics

import (
	"encoding/csv"
	"net/http"
	"strconv"
	"time"

	"github.com/muhfery/ecommerce-insights-backend/api/responses"
	"github.com/muhfery/ecommerce-insights-backend/api/validators"
	"github.com/muhfery/ecommerce-insights-backend/internal/dataset"
	"github.com/muhfery/ecommerce-insights-backend/internal/insights"
	"github.com/muhfery/ecommerce-insights-backend/pkg/logger"
	"github.com/muhfery/ecommerce-insights-backend/pkg/types"
)

const (
	defaultChartLimit = 10
	maxChartLimit     = 50
)

// insightsHandler wraps the shared parse-query-then-respond shape of the
// chart endpoints.
func insightsHandler(data *dataset.Provider, logg *logger.Logger,
	respond func(w http.ResponseWriter, r *http.Request, q insights.Query) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		q, err := parseInsightsQuery(r, data.Stats().LastPurchase)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := respond(w, r, q); err != nil {
			responses.WriteError(ctx, logg, w, err)
		}
	}
}

func MonthlySales(service insights.Service, data *dataset.Provider, logg *logger.Logger) http.HandlerFunc {
	return insightsHandler(data, logg, func(w http.ResponseWriter, r *http.Request, q insights.Query) error {
		points, err := service.Sales(r.Context(), q)
		if err != nil {
			return err
		}
		responses.WriteSuccess(w, points)
		return nil
	})
}

func OrderHeatmap(service insights.Service, data *dataset.Provider, logg *logger.Logger) http.HandlerFunc {
	return insightsHandler(data, logg, func(w http.ResponseWriter, r *http.Request, q insights.Query) error {
		grid, err := service.Heatmap(r.Context(), q)
		if err != nil {
			return err
		}
		responses.WriteSuccess(w, grid)
		return nil
	})
}

func PaymentBreakdown(service insights.Service, data *dataset.Provider, logg *logger.Logger) http.HandlerFunc {
	return insightsHandler(data, logg, func(w http.ResponseWriter, r *http.Request, q insights.Query) error {
		slices, err := service.Payments(r.Context(), q)
		if err != nil {
			return err
		}
		responses.WriteSuccess(w, slices)
		return nil
	})
}

// TopCategories returns the biggest categories by order count plus the
// word-frequency terms driving category names.
func TopCategories(service insights.Service, data *dataset.Provider, logg *logger.Logger) http.HandlerFunc {
	return insightsHandler(data, logg, func(w http.ResponseWriter, r *http.Request, q insights.Query) error {
		limit, err := validators.ParseQueryInt(r, "limit", defaultChartLimit, 1, maxChartLimit)
		if err != nil {
			return err
		}

		categories, err := service.Categories(r.Context(), q, limit)
		if err != nil {
			return err
		}
		terms, err := service.Terms(r.Context(), q)
		if err != nil {
			return err
		}

		responses.WriteSuccess(w, map[string]any{
			"categories": categories,
			"terms":      terms,
		})
		return nil
	})
}

func ReviewBreakdown(service insights.Service, data *dataset.Provider, logg *logger.Logger) http.HandlerFunc {
	return insightsHandler(data, logg, func(w http.ResponseWriter, r *http.Request, q insights.Query) error {
		limit, err := validators.ParseQueryInt(r, "limit", defaultChartLimit, 1, maxChartLimit)
		if err != nil {
			return err
		}

		ratings, distribution, err := service.Reviews(r.Context(), q, limit)
		if err != nil {
			return err
		}

		responses.WriteSuccess(w, map[string]any{
			"category_ratings": ratings,
			"distribution":     distribution,
		})
		return nil
	})
}

func GeoPoints(service insights.Service, data *dataset.Provider, logg *logger.Logger) http.HandlerFunc {
	return insightsHandler(data, logg, func(w http.ResponseWriter, r *http.Request, q insights.Query) error {
		points, err := service.Geo(r.Context(), q)
		if err != nil {
			return err
		}
		responses.WriteSuccessMeta(w, points, types.Meta{Count: len(points), Total: len(points)})
		return nil
	})
}

func Overview(service insights.Service, data *dataset.Provider, logg *logger.Logger) http.HandlerFunc {
	return insightsHandler(data, logg, func(w http.ResponseWriter, r *http.Request, q insights.Query) error {
		overview, err := service.Overview(r.Context(), q)
		if err != nil {
			return err
		}
		responses.WriteSuccess(w, overview)
		return nil
	})
}

func Highlights(service insights.Service, data *dataset.Provider, logg *logger.Logger) http.HandlerFunc {
	return insightsHandler(data, logg, func(w http.ResponseWriter, r *http.Request, q insights.Query) error {
		highlights, err := service.Highlights(r.Context(), q)
		if err != nil {
			return err
		}
		responses.WriteSuccess(w, highlights)
		return nil
	})
}

// InsightsExport streams the scoped order rows as a CSV download.
func InsightsExport(service insights.Service, data *dataset.Provider, logg *logger.Logger) http.HandlerFunc {
	return insightsHandler(data, logg, func(w http.ResponseWriter, r *http.Request, q insights.Query) error {
		rows, err := service.Rows(r.Context(), q)
		if err != nil {
			return err
		}

		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="orders.csv"`)

		writer := csv.NewWriter(w)
		record := []string{
			"customer_id", "customer_unique_id", "order_id", "order_purchase_timestamp",
			"payment_value", "product_category_name", "payment_type", "review_score",
			"customer_lat", "customer_lng",
		}
		if err := writer.Write(record); err != nil {
			logg.Error(r.Context(), "insights.export.write", err)
			return nil
		}
		for _, row := range rows {
			record[0] = row.CustomerID
			record[1] = row.CustomerUniqueID
			record[2] = row.OrderID
			record[3] = formatTimestamp(row.PurchasedAt)
			record[4] = row.PaymentValue.StringFixed(2)
			record[5] = row.ProductCategory
			record[6] = row.PaymentType
			record[7] = formatFloat(row.ReviewScore)
			record[8] = formatFloat(row.CustomerLat)
			record[9] = formatFloat(row.CustomerLng)
			if err := writer.Write(record); err != nil {
				logg.Error(r.Context(), "insights.export.write", err)
				return nil
			}
		}
		writer.Flush()
		if err := writer.Error(); err != nil {
			logg.Error(r.Context(), "insights.export.flush", err)
		}
		return nil
	})
}

func formatTimestamp(ts *time.Time) string {
	if ts == nil {
		return ""
	}
	return ts.Format("2006-01-02 15:04:05")
}

func formatFloat(value *float64) string {
	if value == nil {
		return ""
	}
	return strconv.FormatFloat(*value, 'f', -1, 64)
}
