package collector

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"menu-analytics/internal/models"
)

// BatchKind distinguishes the three collector payloads on the wire.
type BatchKind string

const (
	KindSessionStart BatchKind = "session_start"
	KindSessionEnd   BatchKind = "session_end"
	KindEvents       BatchKind = "events"
)

// Batch is one delivery unit handed to a Transport.
type Batch struct {
	Kind         BatchKind       `json:"kind"`
	SessionID    string          `json:"session_id,omitempty"`
	RestaurantID string          `json:"restaurant_id"`
	Events       []*models.Event `json:"events,omitempty"`
	Payload      any             `json:"payload,omitempty"`
}

// Transport delivers a batch to the ingestion endpoint. Implementations are
// strategies selected by caller context: buffered for normal flushes,
// best-effort for teardown-triggered sends.
type Transport interface {
	Send(ctx context.Context, batch *Batch) error
}

const beaconTimeout = 2 * time.Second

// endpointFor maps a batch kind to its ingestion route.
func endpointFor(baseURL string, kind BatchKind) string {
	switch kind {
	case KindSessionStart:
		return baseURL + "/v1/sessions"
	case KindSessionEnd:
		return baseURL + "/v1/sessions/end"
	default:
		return baseURL + "/v1/events"
	}
}

// HTTPTransport is the buffered delivery mode: an ordinary request/response
// call whose failure (network error or non-2xx) is reported to the caller so
// the batch can be requeued.
type HTTPTransport struct {
	baseURL string
	client  *http.Client
}

func NewHTTPTransport(baseURL string, client *http.Client) *HTTPTransport {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPTransport{baseURL: baseURL, client: client}
}

// StartSession issues the session-start call and returns the
// server-assigned session id, satisfying SessionStarter.
func (t *HTTPTransport) StartSession(ctx context.Context, startReq *StartRequest) (string, error) {
	body, err := json.Marshal(startReq)
	if err != nil {
		return "", fmt.Errorf("marshaling session start: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+"/v1/sessions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("starting session: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("starting session: unexpected status %d", resp.StatusCode)
	}

	var result struct {
		Success   bool   `json:"success"`
		SessionID string `json:"session_id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decoding session start response: %w", err)
	}
	if !result.Success || result.SessionID == "" {
		return "", fmt.Errorf("starting session: server rejected the session")
	}
	return result.SessionID, nil
}

func (t *HTTPTransport) Send(ctx context.Context, batch *Batch) error {
	body, err := json.Marshal(batch)
	if err != nil {
		return fmt.Errorf("marshaling batch: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpointFor(t.baseURL, batch.Kind), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("sending batch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("sending batch: unexpected status %d", resp.StatusCode)
	}
	return nil
}

// BeaconTransport is the best-effort delivery mode used for teardown sends.
// It detaches from the caller's context so cancellation during process exit
// does not abort the attempt, caps the wait with its own short timeout, and
// never reports delivery errors: once the attempt is made the caller must
// not block on the outcome.
type BeaconTransport struct {
	baseURL string
	client  *http.Client
}

func NewBeaconTransport(baseURL string) *BeaconTransport {
	return &BeaconTransport{
		baseURL: baseURL,
		client:  &http.Client{Timeout: beaconTimeout},
	}
}

func (t *BeaconTransport) Send(ctx context.Context, batch *Batch) error {
	body, err := json.Marshal(batch)
	if err != nil {
		return fmt.Errorf("marshaling batch: %w", err)
	}

	req, err := http.NewRequestWithContext(context.WithoutCancel(ctx), http.MethodPost, endpointFor(t.baseURL, batch.Kind), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		// Fire-and-forget: the attempt was made, there is nothing to retry.
		return nil
	}
	_ = resp.Body.Close()
	return nil
}
