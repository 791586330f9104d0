package http

import (
	"net/http"

	"menu-analytics/internal/ingestors"
	"menu-analytics/internal/reports"
	"menu-analytics/internal/shared/loggers"
	"menu-analytics/internal/shared/metrics"

	"github.com/go-chi/chi/v5"
)

// NewRouter creates and configures the HTTP router.
func NewRouter(ingestionService ingestors.IngestionService, reportService reports.ReportService, jwtSecret string, httpLogger loggers.Logger) http.Handler {
	router := chi.NewRouter()
	setupMiddleware(router, httpLogger)

	// Initialize handlers
	startSessionHandler := NewStartSessionHandler(ingestionService)
	endSessionHandler := NewEndSessionHandler(ingestionService)
	trackEventsHandler := NewTrackEventsHandler(ingestionService)
	analyticsReportHandler := NewAnalyticsReportHandler(reportService)

	// Ingestion routes (unauthenticated, called by the in-browser collector)
	router.Post("/v1/sessions", errorHandlingAdapter(startSessionHandler))
	router.Post("/v1/sessions/end", errorHandlingAdapter(endSessionHandler))
	router.Post("/v1/events", errorHandlingAdapter(trackEventsHandler))

	// Reporting routes (bearer-token protected)
	router.Group(func(protected chi.Router) {
		protected.Use(mwBearerAuth(jwtSecret))
		protected.Get("/v1/restaurants/{restaurantID}/analytics", errorHandlingAdapter(analyticsReportHandler))
	})

	router.Get("/metrics", metrics.PromHTTP.Handler().ServeHTTP)

	return router
}
