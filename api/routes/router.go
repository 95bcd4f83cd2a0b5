package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/muhfery/ecommerce-insights-backend/api/controllers"
	analyticscontrollers "github.com/muhfery/ecommerce-insights-backend/api/controllers/analytics"
	feedbackcontrollers "github.com/muhfery/ecommerce-insights-backend/api/controllers/feedback"
	"github.com/muhfery/ecommerce-insights-backend/api/middleware"
	"github.com/muhfery/ecommerce-insights-backend/internal/dataset"
	feedbacksvc "github.com/muhfery/ecommerce-insights-backend/internal/feedback"
	"github.com/muhfery/ecommerce-insights-backend/internal/insights"
	"github.com/muhfery/ecommerce-insights-backend/internal/rfm"
	"github.com/muhfery/ecommerce-insights-backend/pkg/config"
	"github.com/muhfery/ecommerce-insights-backend/pkg/logger"
	"github.com/muhfery/ecommerce-insights-backend/pkg/metrics"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	data *dataset.Provider,
	rfmService rfm.Service,
	insightsService insights.Service,
	feedbackStore *feedbacksvc.Store,
	feedbackService feedbacksvc.Service,
	httpMetrics *metrics.HTTPMetrics,
	registry *prometheus.Registry,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(cfg.CORS.AllowedOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, data, feedbackStore))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/rfm", func(r chi.Router) {
		r.Get("/", analyticscontrollers.RFMTable(rfmService, logg))
		r.Get("/summary", analyticscontrollers.RFMSummary(rfmService, logg))
		r.Get("/segments", analyticscontrollers.RFMSegments(rfmService, logg))
		r.Get("/churn", analyticscontrollers.RFMChurn(rfmService, logg))
		r.Get("/export", analyticscontrollers.RFMExport(rfmService, logg))
	})

	r.Route("/api/v1/insights", func(r chi.Router) {
		r.Get("/sales", analyticscontrollers.MonthlySales(insightsService, data, logg))
		r.Get("/heatmap", analyticscontrollers.OrderHeatmap(insightsService, data, logg))
		r.Get("/payments", analyticscontrollers.PaymentBreakdown(insightsService, data, logg))
		r.Get("/categories", analyticscontrollers.TopCategories(insightsService, data, logg))
		r.Get("/reviews", analyticscontrollers.ReviewBreakdown(insightsService, data, logg))
		r.Get("/geo", analyticscontrollers.GeoPoints(insightsService, data, logg))
		r.Get("/overview", analyticscontrollers.Overview(insightsService, data, logg))
		r.Get("/highlights", analyticscontrollers.Highlights(insightsService, data, logg))
		r.Get("/export", analyticscontrollers.InsightsExport(insightsService, data, logg))
	})

	r.Route("/api/v1/feedback", func(r chi.Router) {
		r.Post("/", feedbackcontrollers.Submit(feedbackService, logg))
		r.Get("/", feedbackcontrollers.List(feedbackService, logg))
		r.Get("/summary", feedbackcontrollers.Summary(feedbackService, logg))
	})

	return r
}
