package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"menu-analytics/internal/reports"
)

type analyticsReportHandler struct {
	reportService reports.ReportService
}

func NewAnalyticsReportHandler(reportService reports.ReportService) AppHttpHandler {
	return &analyticsReportHandler{
		reportService: reportService,
	}
}

// Handle processes GET /v1/restaurants/{restaurantID}/analytics requests.
func (h *analyticsReportHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	query := reports.ReportQuery{
		RestaurantID: chi.URLParam(r, "restaurantID"),
		From:         r.URL.Query().Get("from"),
		To:           r.URL.Query().Get("to"),
		TimeRange:    r.URL.Query().Get("time_range"),
		Language:     r.URL.Query().Get("lang"),
	}
	if rawTop := r.URL.Query().Get("top"); rawTop != "" {
		top, err := strconv.Atoi(rawTop)
		if err != nil {
			return errInvalidQueryParam("top", rawTop, err)
		}
		query.Top = top
	}

	report, err := h.reportService.Build(r.Context(), query)
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	return json.NewEncoder(w).Encode(report)
}
