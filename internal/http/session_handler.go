package http

import (
	"encoding/json"
	"net/http"

	"menu-analytics/internal/ingestors"
)

type AppHttpHandler interface {
	Handle(w http.ResponseWriter, r *http.Request) error
}

type startSessionHandler struct {
	ingestionService ingestors.IngestionService
}

func NewStartSessionHandler(ingestionService ingestors.IngestionService) AppHttpHandler {
	return &startSessionHandler{
		ingestionService: ingestionService,
	}
}

// Handle processes POST /v1/sessions requests and returns the
// server-assigned session id.
func (h *startSessionHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	result, err := h.ingestionService.StartSession(r.Context(), r.Body, ingestors.ClientInfo{
		IP:        clientIP(r),
		UserAgent: r.UserAgent(),
	})
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	return json.NewEncoder(w).Encode(map[string]any{
		"success":    true,
		"session_id": result.SessionID,
	})
}

type endSessionHandler struct {
	ingestionService ingestors.IngestionService
}

func NewEndSessionHandler(ingestionService ingestors.IngestionService) AppHttpHandler {
	return &endSessionHandler{
		ingestionService: ingestionService,
	}
}

// Handle processes POST /v1/sessions/end requests. Closing an already
// closed session succeeds without effect, so browser-teardown retries and
// duplicate beacons stay harmless.
func (h *endSessionHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	if err := h.ingestionService.EndSession(r.Context(), r.Body); err != nil {
		return err
	}

	w.WriteHeader(http.StatusNoContent)
	return nil
}
