package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"menu-analytics/internal/ingestors"
	"menu-analytics/internal/ingestors/mocks"
	"menu-analytics/internal/shared/svcerrors"
)

func TestStartSessionHandler(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	service := mocks.NewMockIngestionService(ctrl)
	service.EXPECT().
		StartSession(gomock.Any(), gomock.Any(), ingestors.ClientInfo{IP: "190.17.1.1", UserAgent: "test-agent"}).
		Return(&ingestors.StartResult{SessionID: "session-1"}, nil)

	req := httptest.NewRequest(http.MethodPost, "/v1/sessions", strings.NewReader(`{"restaurant_id": "rest-1"}`))
	req.Header.Set("x-forwarded-for", "190.17.1.1, 10.0.0.2")
	req.Header.Set("user-agent", "test-agent")
	rr := httptest.NewRecorder()

	handler := errorHandlingAdapter(NewStartSessionHandler(service))
	handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "session-1", body["session_id"])
}

func TestStartSessionHandler_ValidationError(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	service := mocks.NewMockIngestionService(ctrl)
	service.EXPECT().
		StartSession(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, svcerrors.NewInvalidArgumentError("SES_1000", "restaurant_id is required", nil))

	req := httptest.NewRequest(http.MethodPost, "/v1/sessions", strings.NewReader(`{}`))
	rr := httptest.NewRecorder()

	errorHandlingAdapter(NewStartSessionHandler(service)).ServeHTTP(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "SES_1000", body.ErrorCode)
}

func TestEndSessionHandler(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	service := mocks.NewMockIngestionService(ctrl)
	service.EXPECT().EndSession(gomock.Any(), gomock.Any()).Return(nil)

	req := httptest.NewRequest(http.MethodPost, "/v1/sessions/end", strings.NewReader(`{"session_id": "session-1"}`))
	rr := httptest.NewRecorder()

	errorHandlingAdapter(NewEndSessionHandler(service)).ServeHTTP(rr, req)
	assert.Equal(t, http.StatusNoContent, rr.Code)
}

func TestTrackEventsHandler(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	service := mocks.NewMockIngestionService(ctrl)
	service.EXPECT().IngestEvents(gomock.Any(), gomock.Any()).Return(nil)

	req := httptest.NewRequest(http.MethodPost, "/v1/events", strings.NewReader(`{"session_id": "s1"}`))
	rr := httptest.NewRecorder()

	errorHandlingAdapter(NewTrackEventsHandler(service)).ServeHTTP(rr, req)
	assert.Equal(t, http.StatusAccepted, rr.Code)
}

func TestTrackEventsHandler_InternalError(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	service := mocks.NewMockIngestionService(ctrl)
	service.EXPECT().
		IngestEvents(gomock.Any(), gomock.Any()).
		Return(svcerrors.NewInternalError("EVT_9000", errors.New("db down")))

	req := httptest.NewRequest(http.MethodPost, "/v1/events", strings.NewReader(`{}`))
	rr := httptest.NewRecorder()

	errorHandlingAdapter(NewTrackEventsHandler(service)).ServeHTTP(rr, req)

	require.Equal(t, http.StatusInternalServerError, rr.Code)
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "EVT_9000", body.ErrorCode)
	// Internal detail must not leak to the client.
	assert.NotContains(t, body.ErrorDescription, "db down")
}

func TestClientIP(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "203.0.113.9:4455"
	assert.Equal(t, "203.0.113.9", clientIP(req))

	req.Header.Set("x-forwarded-for", "190.17.1.1, 10.0.0.2")
	assert.Equal(t, "190.17.1.1", clientIP(req))
}
