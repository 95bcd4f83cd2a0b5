package analytics

import (
	"encoding/csv"
	"net/http"
	"strconv"

	"github.com/muhfery/ecommerce-insights-backend/api/responses"
	"github.com/muhfery/ecommerce-insights-backend/internal/rfm"
	"github.com/muhfery/ecommerce-insights-backend/pkg/logger"
	"github.com/muhfery/ecommerce-insights-backend/pkg/types"
)

// RFMTable returns the derived per-customer metrics, filtered by the
// query parameters.
func RFMTable(service rfm.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		params, err := parseRFMParams(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		table, err := service.Table(ctx, params)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccessMeta(w, table, types.Meta{Count: len(table), Total: len(table)})
	}
}

func RFMSummary(service rfm.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		params, err := parseRFMParams(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		summary, err := service.Summary(ctx, params)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, summary)
	}
}

func RFMSegments(service rfm.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		params, err := parseRFMParams(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		counts, profiles, err := service.Segments(ctx, params)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{
			"counts":   counts,
			"profiles": profiles,
		})
	}
}

func RFMChurn(service rfm.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		params, err := parseRFMParams(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		counts, err := service.Churn(ctx, params)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, counts)
	}
}

// RFMExport streams the filtered table as a CSV download.
func RFMExport(service rfm.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		params, err := parseRFMParams(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		table, err := service.Table(ctx, params)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="rfm_table.csv"`)

		writer := csv.NewWriter(w)
		record := []string{"customer_id", "recency", "frequency", "monetary", "segment", "churn_risk"}
		if err := writer.Write(record); err != nil {
			logg.Error(ctx, "rfm.export.write", err)
			return
		}
		for _, customer := range table {
			record[0] = customer.CustomerID
			if customer.RecencyKnown {
				record[1] = strconv.Itoa(customer.Recency)
			} else {
				record[1] = ""
			}
			record[2] = strconv.Itoa(customer.Frequency)
			record[3] = customer.Monetary.StringFixed(2)
			record[4] = string(customer.Segment)
			record[5] = string(customer.ChurnRisk)
			if err := writer.Write(record); err != nil {
				logg.Error(ctx, "rfm.export.write", err)
				return
			}
		}
		writer.Flush()
		if err := writer.Error(); err != nil {
			logg.Error(ctx, "rfm.export.flush", err)
		}
	}
}
