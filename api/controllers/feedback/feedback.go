package feedback

import (
	"net/http"
	"strings"

	"github.com/muhfery/ecommerce-insights-backend/api/responses"
	"github.com/muhfery/ecommerce-insights-backend/api/validators"
	"github.com/muhfery/ecommerce-insights-backend/internal/feedback"
	pkgerrors "github.com/muhfery/ecommerce-insights-backend/pkg/errors"
	"github.com/muhfery/ecommerce-insights-backend/pkg/logger"
	"github.com/muhfery/ecommerce-insights-backend/pkg/types"
)

const maxFeedbackRating = 5

type submitRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	Message string `json:"message" validate:"required,max=2000"`
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
}

// Submit accepts a visitor feedback entry and appends it to the store.
func Submit(service feedback.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req submitRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		entry, err := service.Submit(ctx, feedback.SubmitParams{
			Name:    req.Name,
			Message: req.Message,
			Rating:  req.Rating,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, entry)
	}
}

// List returns stored feedback, filtered and ordered by query parameters.
func List(service feedback.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		minRating, err := validators.ParseQueryInt(r, "min_rating", 0, 0, maxFeedbackRating)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		sortOrder, err := parseSortOrder(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		result, err := service.List(ctx, feedback.ListParams{
			MinRating: minRating,
			Sort:      sortOrder,
			Search:    strings.TrimSpace(r.URL.Query().Get("q")),
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccessMeta(w, result.Items, types.Meta{Count: len(result.Items), Total: result.Total})
	}
}

// Summary returns the entry count and average rating over the whole store.
func Summary(service feedback.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		summary, err := service.Summarize(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, summary)
	}
}

func parseSortOrder(r *http.Request) (feedback.SortOrder, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("sort"))
	if raw == "" {
		return feedback.SortNewest, nil
	}
	switch order := feedback.SortOrder(raw); order {
	case feedback.SortNewest, feedback.SortOldest, feedback.SortRatingHighest, feedback.SortRatingLowest:
		return order, nil
	}
	return "", pkgerrors.New(pkgerrors.CodeValidation, "unknown sort order").
		WithDetails(map[string]any{"field": "sort", "value": raw})
}
