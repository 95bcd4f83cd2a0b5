package controllers

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/multierr"

	"github.com/muhfery/ecommerce-insights-backend/api/responses"
	"github.com/muhfery/ecommerce-insights-backend/pkg/config"
	pkgerrors "github.com/muhfery/ecommerce-insights-backend/pkg/errors"
	"github.com/muhfery/ecommerce-insights-backend/pkg/logger"
)

const readyProbeTimeout = 2 * time.Second

// Checker is a named readiness probe.
type Checker interface {
	Name() string
	Check(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Insights-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

func HealthReady(cfg *config.Config, logg *logger.Logger, checkers ...Checker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Insights-Env", cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), readyProbeTimeout)
		defer cancel()

		var failures error
		statuses := map[string]string{}
		for _, checker := range checkers {
			if err := checker.Check(ctx); err != nil {
				statuses[checker.Name()] = err.Error()
				failures = multierr.Append(failures, err)
				continue
			}
			statuses[checker.Name()] = "ok"
		}

		if failures != nil {
			responses.WriteError(ctx, logg, w,
				pkgerrors.Wrap(pkgerrors.CodeDependency, failures, "not ready").WithDetails(statuses))
			return
		}

		responses.WriteSuccess(w, map[string]any{"status": "ready", "checks": statuses})
	}
}
