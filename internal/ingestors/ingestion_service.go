package ingestors

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mileusna/useragent"

	"menu-analytics/internal/geoip"
	"menu-analytics/internal/models"
	"menu-analytics/internal/shared/loggers"
	"menu-analytics/internal/shared/metrics"
	"menu-analytics/internal/shared/svcerrors"
	"menu-analytics/internal/stores"
)

const (
	maxBodyBytes      = 1 * 1024 * 1024
	maxEventsPerBatch = 500
	maxEntityIDLen    = 128
	maxReferrerLen    = 2048
)

// ClientInfo carries request attributes the server captures itself rather
// than trusting the payload.
type ClientInfo struct {
	IP        string
	UserAgent string
}

// StartResult is the outcome of a successful session-start call.
type StartResult struct {
	SessionID string
}

// IngestionService is the server-side write path: it owns session creation,
// the idempotent session close and the append-only event log.
//
//go:generate mockgen -source=ingestion_service.go -destination=./mocks/ingestion_service_mock.go -package=mocks
type IngestionService interface {
	// StartSession validates the session-start payload, enriches missing
	// environment attributes from the request user agent and geoip, stores
	// the session and returns its server-assigned id.
	StartSession(ctx context.Context, r io.Reader, client ClientInfo) (*StartResult, error)
	// EndSession closes a session. Repeat calls for an already-closed
	// session are no-ops.
	EndSession(ctx context.Context, r io.Reader) error
	// IngestEvents appends a batch of events.
	IngestEvents(ctx context.Context, r io.Reader) error
}

type ingestionService struct {
	eventStore stores.EventStore
	geo        geoip.Resolver
	newID      func() string
	now        func() time.Time
}

func NewIngestionService(eventStore stores.EventStore, geo geoip.Resolver) IngestionService {
	return &ingestionService{
		eventStore: eventStore,
		geo:        geo,
		newID:      func() string { return uuid.NewString() },
		now:        time.Now,
	}
}

type utmParams struct {
	Source   string `json:"source"`
	Medium   string `json:"medium"`
	Campaign string `json:"campaign"`
}

type startSessionRequest struct {
	RestaurantID string     `json:"restaurant_id"`
	Referrer     string     `json:"referrer"`
	DeviceType   string     `json:"device_type"`
	OSName       string     `json:"os_name"`
	Browser      string     `json:"browser"`
	NetworkType  string     `json:"network_type"`
	IsPWA        bool       `json:"is_pwa"`
	Languages    []string   `json:"languages"`
	Timezone     string     `json:"timezone"`
	UserID       string     `json:"user_id"`
	UTM          *utmParams `json:"utm"`
}

func (s *ingestionService) StartSession(ctx context.Context, r io.Reader, client ClientInfo) (*StartResult, error) {
	logger := loggers.Ctx(ctx)

	var req startSessionRequest
	if err := s.decodeBody(r, &req, errSessionValidationFailed); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.RestaurantID) == "" {
		return nil, errSessionValidationFailed("restaurant_id is required", nil)
	}
	if len(req.Referrer) > maxReferrerLen {
		return nil, errSessionValidationFailed(fmt.Sprintf("referrer too long: max %d characters", maxReferrerLen), nil)
	}

	session := &models.Session{
		ID:           s.newID(),
		RestaurantID: req.RestaurantID,
		StartedAt:    s.now().UTC(),
		DeviceType:   req.DeviceType,
		OSName:       req.OSName,
		Browser:      req.Browser,
		NetworkType:  req.NetworkType,
		LanguageCode: primaryLanguage(req.Languages),
		Referrer:     req.Referrer,
		PWAInstalled: req.IsPWA,
		UserID:       req.UserID,
	}
	if req.UTM != nil {
		session.UTMSource = req.UTM.Source
		session.UTMMedium = req.UTM.Medium
		session.UTMCampaign = req.UTM.Campaign
	}

	s.enrichFromUserAgent(session, client.UserAgent)
	s.enrichFromGeoIP(ctx, session, client.IP)

	if err := s.eventStore.InsertSession(ctx, session); err != nil {
		metricSessionsStartedTotal.WithLabelValues(codeInternalSessionStoreFailed).Inc()
		return nil, errInternalSessionStoreFailed(err)
	}

	metricSessionsStartedTotal.WithLabelValues(metrics.ValueNoError).Inc()
	logger.Debug().
		Str(loggers.FieldRestaurantID, session.RestaurantID).
		Str(loggers.FieldSessionID, session.ID).
		Msg("session started")
	return &StartResult{SessionID: session.ID}, nil
}

// enrichFromUserAgent fills device/os/browser columns the client left blank.
func (s *ingestionService) enrichFromUserAgent(session *models.Session, rawUA string) {
	if rawUA == "" {
		return
	}
	if session.DeviceType != "" && session.OSName != "" && session.Browser != "" {
		return
	}

	parsed := useragent.Parse(rawUA)
	if session.DeviceType == "" {
		switch {
		case parsed.Mobile:
			session.DeviceType = "mobile"
		case parsed.Tablet:
			session.DeviceType = "tablet"
		case parsed.Desktop:
			session.DeviceType = "desktop"
		case parsed.Bot:
			session.DeviceType = "bot"
		}
	}
	if session.OSName == "" {
		session.OSName = parsed.OS
	}
	if session.Browser == "" {
		session.Browser = parsed.Name
	}
}

// enrichFromGeoIP resolves country/city from the client IP. Lookups are
// best-effort: on failure the columns stay empty and the report breakdowns
// later bucket them as "unknown".
func (s *ingestionService) enrichFromGeoIP(ctx context.Context, session *models.Session, ip string) {
	if s.geo == nil || ip == "" {
		return
	}
	loc, err := s.geo.Locate(ip)
	if err != nil {
		loggers.Ctx(ctx).Debug().Err(err).Msg("geoip lookup failed")
		return
	}
	session.Country = loc.CountryCode
	session.City = loc.City
}

type endSessionRequest struct {
	SessionID string `json:"session_id"`
	StartedAt string `json:"started_at"`
	EndedAt   string `json:"ended_at"`
}

func (s *ingestionService) EndSession(ctx context.Context, r io.Reader) error {
	var req endSessionRequest
	if err := s.decodeBody(r, &req, errSessionValidationFailed); err != nil {
		return err
	}
	if strings.TrimSpace(req.SessionID) == "" {
		return errSessionValidationFailed("session_id is required", nil)
	}

	endedAt := s.now().UTC()
	if req.EndedAt != "" {
		parsed, err := parseTimestamp(req.EndedAt)
		if err != nil {
			return errSessionValidationFailed(fmt.Sprintf("invalid ended_at: %s", req.EndedAt), err)
		}
		endedAt = parsed
	}

	closed, err := s.eventStore.CloseSession(ctx, req.SessionID, endedAt)
	if err != nil {
		metricSessionsEndedTotal.WithLabelValues(codeInternalSessionStoreFailed).Inc()
		return errInternalSessionStoreFailed(err)
	}
	if !closed {
		// Already closed (or unknown): the end call is idempotent.
		loggers.Ctx(ctx).Debug().
			Str(loggers.FieldSessionID, req.SessionID).
			Msg("session end ignored, session not open")
	}

	metricSessionsEndedTotal.WithLabelValues(metrics.ValueNoError).Inc()
	return nil
}

type eventInput struct {
	Type       string         `json:"type"`
	EntityID   string         `json:"entity_id"`
	EntityType string         `json:"entity_type"`
	Value      map[string]any `json:"value"`
	TS         string         `json:"ts"`
}

type eventBatchRequest struct {
	SessionID    string        `json:"session_id"`
	RestaurantID string        `json:"restaurant_id"`
	Events       []*eventInput `json:"events"`
}

func (s *ingestionService) IngestEvents(ctx context.Context, r io.Reader) error {
	var req eventBatchRequest
	if err := s.decodeBody(r, &req, errEventValidationFailed); err != nil {
		return err
	}

	batch, err := s.validateEventBatch(&req)
	if err != nil {
		return err
	}

	if err := s.eventStore.InsertEvents(ctx, batch); err != nil {
		metricEventsIngestedTotal.WithLabelValues(codeInternalEventStoreFailed).Add(float64(len(batch.Events)))
		return errInternalEventStoreFailed(err)
	}

	metricEventsIngestedTotal.WithLabelValues(metrics.ValueNoError).Add(float64(len(batch.Events)))
	loggers.Ctx(ctx).Debug().
		Str(loggers.FieldSessionID, batch.SessionID).
		Int("events", len(batch.Events)).
		Msg("event batch ingested")
	return nil
}

func (s *ingestionService) validateEventBatch(req *eventBatchRequest) (*models.EventBatch, error) {
	if strings.TrimSpace(req.SessionID) == "" {
		return nil, errEventValidationFailed("session_id is required", nil)
	}
	if strings.TrimSpace(req.RestaurantID) == "" {
		return nil, errEventValidationFailed("restaurant_id is required", nil)
	}
	if len(req.Events) == 0 {
		return nil, errEventValidationFailed("events cannot be empty", nil)
	}
	if len(req.Events) > maxEventsPerBatch {
		return nil, errEventValidationFailed(fmt.Sprintf("too many events: max %d per batch", maxEventsPerBatch), nil)
	}

	batch := &models.EventBatch{
		SessionID:    req.SessionID,
		RestaurantID: req.RestaurantID,
		Events:       make([]*models.Event, 0, len(req.Events)),
	}
	for i, input := range req.Events {
		if strings.TrimSpace(input.Type) == "" {
			return nil, errEventValidationFailed(fmt.Sprintf("event at index %d: missing type", i), nil)
		}
		if len(input.EntityID) > maxEntityIDLen {
			return nil, errEventValidationFailed(fmt.Sprintf("event at index %d: entity_id too long: max %d characters", i, maxEntityIDLen), nil)
		}
		ts, err := parseTimestamp(input.TS)
		if err != nil {
			return nil, errEventValidationFailed(fmt.Sprintf("event at index %d: invalid time format: %s", i, input.TS), err)
		}
		batch.Events = append(batch.Events, &models.Event{
			Type:       models.EventType(strings.ToLower(strings.TrimSpace(input.Type))),
			EntityID:   strings.TrimSpace(input.EntityID),
			EntityType: strings.TrimSpace(input.EntityType),
			Value:      input.Value,
			Timestamp:  ts,
		})
	}
	return batch, nil
}

func (s *ingestionService) decodeBody(r io.Reader, dst any, errFn func(string, error) *svcerrors.ServiceError) error {
	if r == nil {
		return errFn("empty request body", nil)
	}
	buf, err := io.ReadAll(io.LimitReader(r, maxBodyBytes+1))
	if err != nil {
		return errFn("unreadable request body", err)
	}
	if len(buf) > maxBodyBytes {
		return errFn("request body too large: must be <= 1MB", nil)
	}
	if err := json.Unmarshal(buf, dst); err != nil {
		return errFn("invalid json", err)
	}
	return nil
}

// parseTimestamp accepts ISO-8601 with or without fractional seconds.
func parseTimestamp(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	t, err := time.Parse(time.RFC3339, value)
	if err == nil {
		return t.UTC(), nil
	}
	t, err = time.Parse("2006-01-02T15:04:05.000Z", value)
	if err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, err
}

func primaryLanguage(languages []string) string {
	if len(languages) == 0 {
		return ""
	}
	lang := strings.TrimSpace(languages[0])
	if i := strings.IndexByte(lang, '-'); i > 0 {
		lang = lang[:i]
	}
	return strings.ToLower(lang)
}
