// Package collector is the client-side session and event tracker for a
// restaurant's digital menu. One Collector owns at most one active session;
// it deduplicates dish views, buffers events in an in-memory queue and
// guarantees an end-of-session signal is attempted even on abrupt teardown.
package collector

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"menu-analytics/internal/models"
)

const (
	// defaultFlushInterval is the recurring flush cadence while a session
	// is active.
	defaultFlushInterval = 10 * time.Second
	// flushThreshold triggers an immediate flush independent of the timer.
	flushThreshold = 20
)

var (
	ErrSessionActive = errors.New("collector: session already active")
	ErrNoTransport   = errors.New("collector: transport is required")
	ErrNoStarter     = errors.New("collector: session starter is required")
	ErrNoRestaurant  = errors.New("collector: restaurant id is required")
)

// UTM carries campaign attribution captured from the menu URL.
type UTM struct {
	Source   string `json:"source,omitempty"`
	Medium   string `json:"medium,omitempty"`
	Campaign string `json:"campaign,omitempty"`
}

// StartRequest is the session-start wire payload.
type StartRequest struct {
	RestaurantID string   `json:"restaurant_id"`
	Referrer     string   `json:"referrer,omitempty"`
	DeviceType   string   `json:"device_type,omitempty"`
	OSName       string   `json:"os_name,omitempty"`
	Browser      string   `json:"browser,omitempty"`
	NetworkType  string   `json:"network_type,omitempty"`
	IsPWA        bool     `json:"is_pwa"`
	Languages    []string `json:"languages,omitempty"`
	Timezone     string   `json:"timezone,omitempty"`
	UserID       string   `json:"user_id,omitempty"`
	UTM          *UTM     `json:"utm,omitempty"`
}

// EndRequest is the session-end wire payload.
type EndRequest struct {
	SessionID string `json:"session_id"`
	StartedAt string `json:"started_at"`
	EndedAt   string `json:"ended_at"`
}

// SessionStarter issues the session-start call and returns the
// server-assigned session id.
type SessionStarter interface {
	StartSession(ctx context.Context, req *StartRequest) (string, error)
}

// StartOptions are caller-supplied overrides merged over the probed
// environment, plus an optional teardown signal. When the signal fires the
// collector ends the session through the best-effort transport.
type StartOptions struct {
	Referrer    string
	DeviceType  string
	OSName      string
	Browser     string
	NetworkType string
	Languages   []string
	Timezone    string
	UserID      string
	UTM         *UTM

	Teardown <-chan struct{}
}

// Config wires a Collector. Transport is the buffered delivery mode; Beacon
// is the optional best-effort mode preferred for teardown sends.
type Config struct {
	RestaurantID  string
	Starter       SessionStarter
	Transport     Transport
	Beacon        Transport
	Probe         EnvironmentProbe
	FlushInterval time.Duration
	Logger        zerolog.Logger
	Now           func() time.Time
}

// Collector tracks one visit at a time. It is safe for concurrent use:
// Track may be called at arbitrary times relative to the flush timer.
type Collector struct {
	restaurantID  string
	starter       SessionStarter
	transport     Transport
	beacon        Transport
	probe         EnvironmentProbe
	flushInterval time.Duration
	logger        zerolog.Logger
	now           func() time.Time

	mu         sync.Mutex
	active     bool
	sessionID  string
	startedAt  time.Time
	seenDishes map[string]struct{}
	queue      *eventQueue

	kick   chan struct{}
	stopCh chan struct{}
	wg     sync.WaitGroup
}

func New(cfg Config) (*Collector, error) {
	if cfg.RestaurantID == "" {
		return nil, ErrNoRestaurant
	}
	if cfg.Starter == nil {
		return nil, ErrNoStarter
	}
	if cfg.Transport == nil {
		return nil, ErrNoTransport
	}
	if cfg.Probe == nil {
		cfg.Probe = StaticProbe{}
	}
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = defaultFlushInterval
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	return &Collector{
		restaurantID:  cfg.RestaurantID,
		starter:       cfg.Starter,
		transport:     cfg.Transport,
		beacon:        cfg.Beacon,
		probe:         cfg.Probe,
		flushInterval: cfg.FlushInterval,
		logger:        cfg.Logger,
		now:           cfg.Now,
		queue:         newEventQueue(),
	}, nil
}

// StartSession captures the environment, issues the session-start call and,
// on success, arms the recurring flush loop and the teardown listener. On
// failure the collector stays idle and nothing is buffered.
func (c *Collector) StartSession(ctx context.Context, opts StartOptions) error {
	c.mu.Lock()
	if c.active {
		c.mu.Unlock()
		return ErrSessionActive
	}
	c.mu.Unlock()

	env := c.probe.Probe()
	req := c.buildStartRequest(env, opts)

	sessionID, err := c.starter.StartSession(ctx, req)
	if err != nil {
		return fmt.Errorf("starting session: %w", err)
	}

	c.mu.Lock()
	if c.active {
		c.mu.Unlock()
		return ErrSessionActive
	}
	c.active = true
	c.sessionID = sessionID
	c.startedAt = c.now()
	c.seenDishes = make(map[string]struct{})
	c.queue = newEventQueue()
	c.kick = make(chan struct{}, 1)
	c.stopCh = make(chan struct{})
	c.mu.Unlock()

	c.wg.Add(1)
	go c.flushLoop(c.stopCh, c.kick)

	if opts.Teardown != nil {
		go c.watchTeardown(c.stopCh, opts.Teardown)
	}

	c.logger.Debug().Str("session_id", sessionID).Msg("session started")
	return nil
}

func (c *Collector) buildStartRequest(env Environment, opts StartOptions) *StartRequest {
	req := &StartRequest{
		RestaurantID: c.restaurantID,
		Referrer:     opts.Referrer,
		DeviceType:   env.DeviceType,
		OSName:       env.OSName,
		Browser:      env.Browser,
		NetworkType:  env.NetworkType,
		IsPWA:        env.PWAInstalled,
		Timezone:     env.Timezone,
		UserID:       opts.UserID,
		UTM:          opts.UTM,
	}
	if env.LanguageCode != "" {
		req.Languages = []string{env.LanguageCode}
	}

	// Caller overrides win over probed values.
	if opts.DeviceType != "" {
		req.DeviceType = opts.DeviceType
	}
	if opts.OSName != "" {
		req.OSName = opts.OSName
	}
	if opts.Browser != "" {
		req.Browser = opts.Browser
	}
	if opts.NetworkType != "" {
		req.NetworkType = opts.NetworkType
	}
	if len(opts.Languages) > 0 {
		req.Languages = opts.Languages
	}
	if opts.Timezone != "" {
		req.Timezone = opts.Timezone
	}
	return req
}

// Track buffers one event. It is fire-and-forget: delivery failures are
// retried on later flushes and never surfaced here. Duplicate viewdish
// events for an already-seen dish are dropped (first view wins). Tracking
// with no active session is a no-op.
func (c *Collector) Track(event *models.Event) {
	c.mu.Lock()
	if !c.active {
		c.mu.Unlock()
		return
	}
	if event.Type == models.EventViewDish {
		if _, seen := c.seenDishes[event.EntityID]; seen {
			c.mu.Unlock()
			return
		}
		c.seenDishes[event.EntityID] = struct{}{}
	}
	queue, kick := c.queue, c.kick
	c.mu.Unlock()

	if event.Timestamp.IsZero() {
		event.Timestamp = c.now()
	}

	if queue.Push(event) >= flushThreshold {
		select {
		case kick <- struct{}{}:
		default:
		}
	}
}

// TrackDishView records a dish view (deduplicated per session).
func (c *Collector) TrackDishView(dishID string) {
	c.Track(&models.Event{Type: models.EventViewDish, EntityID: dishID, EntityType: "dish"})
}

// TrackFavorite records a dish being favorited.
func (c *Collector) TrackFavorite(dishID string) {
	c.Track(&models.Event{Type: models.EventFavorite, EntityID: dishID, EntityType: "dish"})
}

// TrackRating records a dish rating. Repeat ratings in one session are kept
// as history, not collapsed.
func (c *Collector) TrackRating(dishID string, rating float64, comment string) {
	c.Track(&models.Event{
		Type:       models.EventRating,
		EntityID:   dishID,
		EntityType: "dish",
		Value:      map[string]any{"rating": rating, "comment": comment},
	})
}

// TrackShare records a share to an external platform.
func (c *Collector) TrackShare(dishID, platform string) {
	c.Track(&models.Event{
		Type:       models.EventShare,
		EntityID:   dishID,
		EntityType: "dish",
		Value:      map[string]any{"platform": platform},
	})
}

// Flush forces delivery of all buffered events over the buffered transport.
func (c *Collector) Flush(ctx context.Context) error {
	return c.flushOnce(ctx, c.transport)
}

// flushOnce swaps the queue out and attempts delivery. On failure the batch
// is prepended back onto the live queue for the next attempt; events are
// never dropped on a transient failure.
func (c *Collector) flushOnce(ctx context.Context, transport Transport) error {
	c.mu.Lock()
	sessionID, queue := c.sessionID, c.queue
	c.mu.Unlock()

	events := queue.Swap()
	if len(events) == 0 {
		return nil
	}

	batch := &Batch{
		Kind:         KindEvents,
		SessionID:    sessionID,
		RestaurantID: c.restaurantID,
		Events:       events,
	}
	if err := transport.Send(ctx, batch); err != nil {
		queue.Requeue(events)
		c.logger.Debug().Err(err).Int("events", len(events)).Msg("flush failed, batch requeued")
		return err
	}
	return nil
}

func (c *Collector) flushLoop(stopCh <-chan struct{}, kick <-chan struct{}) {
	defer c.wg.Done()

	ticker := time.NewTicker(c.flushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			_ = c.flushOnce(context.Background(), c.transport)
		case <-kick:
			_ = c.flushOnce(context.Background(), c.transport)
		}
	}
}

func (c *Collector) watchTeardown(stopCh <-chan struct{}, teardown <-chan struct{}) {
	select {
	case <-stopCh:
	case <-teardown:
		_ = c.EndSession(context.Background())
	}
}

// EndSession flushes all queued events, sends the session-end signal over
// the best-effort transport (falling back to the buffered one) and resets
// the collector so a new session may be started. Calling it with no active
// session is a no-op.
func (c *Collector) EndSession(ctx context.Context) error {
	c.mu.Lock()
	if !c.active {
		c.mu.Unlock()
		return nil
	}
	c.active = false
	sessionID, startedAt := c.sessionID, c.startedAt
	stopCh := c.stopCh
	c.mu.Unlock()

	close(stopCh)
	c.wg.Wait()

	endTransport := c.beacon
	if endTransport == nil {
		endTransport = c.transport
	}

	// Forced final flush, then the end signal, both over the
	// teardown-preferred transport.
	_ = c.flushOnce(ctx, endTransport)

	endedAt := c.now()
	batch := &Batch{
		Kind:         KindSessionEnd,
		SessionID:    sessionID,
		RestaurantID: c.restaurantID,
		Payload: &EndRequest{
			SessionID: sessionID,
			StartedAt: startedAt.UTC().Format(time.RFC3339),
			EndedAt:   endedAt.UTC().Format(time.RFC3339),
		},
	}
	err := endTransport.Send(ctx, batch)

	c.mu.Lock()
	c.sessionID = ""
	c.startedAt = time.Time{}
	c.seenDishes = nil
	c.queue = newEventQueue()
	c.mu.Unlock()

	if err != nil {
		return fmt.Errorf("ending session: %w", err)
	}
	c.logger.Debug().Str("session_id", sessionID).Msg("session ended")
	return nil
}

// QueuedEvents reports the number of buffered events, for observability.
func (c *Collector) QueuedEvents() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.queue.Len()
}
