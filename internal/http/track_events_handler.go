package http

import (
	"net/http"

	"menu-analytics/internal/ingestors"
)

type trackEventsHandler struct {
	ingestionService ingestors.IngestionService
}

func NewTrackEventsHandler(ingestionService ingestors.IngestionService) AppHttpHandler {
	return &trackEventsHandler{
		ingestionService: ingestionService,
	}
}

// Handle processes POST /v1/events requests.
func (h *trackEventsHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	if err := h.ingestionService.IngestEvents(r.Context(), r.Body); err != nil {
		return err
	}

	w.WriteHeader(http.StatusAccepted)
	return nil
}
