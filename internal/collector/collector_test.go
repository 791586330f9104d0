package collector

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"menu-analytics/internal/models"
)

type fakeStarter struct {
	sessionID string
	err       error
	calls     int
}

func (s *fakeStarter) StartSession(_ context.Context, _ *StartRequest) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return s.sessionID, nil
}

type fakeTransport struct {
	mu      sync.Mutex
	batches []*Batch
	failing bool
}

func (t *fakeTransport) Send(_ context.Context, batch *Batch) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.failing {
		return errors.New("network down")
	}
	t.batches = append(t.batches, batch)
	return nil
}

func (t *fakeTransport) setFailing(failing bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.failing = failing
}

func (t *fakeTransport) sent() []*Batch {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]*Batch(nil), t.batches...)
}

func (t *fakeTransport) sentOfKind(kind BatchKind) []*Batch {
	var out []*Batch
	for _, b := range t.sent() {
		if b.Kind == kind {
			out = append(out, b)
		}
	}
	return out
}

func newTestCollector(t *testing.T, starter *fakeStarter, transport, beacon Transport) *Collector {
	t.Helper()

	c, err := New(Config{
		RestaurantID:  "rest-1",
		Starter:       starter,
		Transport:     transport,
		Beacon:        beacon,
		FlushInterval: time.Hour, // timer effectively disabled in tests
		Logger:        zerolog.Nop(),
	})
	require.NoError(t, err)
	return c
}

func TestNew_Validation(t *testing.T) {
	t.Parallel()

	starter := &fakeStarter{sessionID: "s1"}
	transport := &fakeTransport{}

	_, err := New(Config{Starter: starter, Transport: transport})
	assert.ErrorIs(t, err, ErrNoRestaurant)

	_, err = New(Config{RestaurantID: "rest-1", Transport: transport})
	assert.ErrorIs(t, err, ErrNoStarter)

	_, err = New(Config{RestaurantID: "rest-1", Starter: starter})
	assert.ErrorIs(t, err, ErrNoTransport)
}

func TestStartSession_SecondStartRejected(t *testing.T) {
	t.Parallel()

	starter := &fakeStarter{sessionID: "s1"}
	c := newTestCollector(t, starter, &fakeTransport{}, nil)

	require.NoError(t, c.StartSession(context.Background(), StartOptions{}))
	assert.ErrorIs(t, c.StartSession(context.Background(), StartOptions{}), ErrSessionActive)
	assert.Equal(t, 1, starter.calls)

	require.NoError(t, c.EndSession(context.Background()))
}

func TestStartSession_StarterFailureLeavesCollectorIdle(t *testing.T) {
	t.Parallel()

	starter := &fakeStarter{err: errors.New("boom")}
	c := newTestCollector(t, starter, &fakeTransport{}, nil)

	require.Error(t, c.StartSession(context.Background(), StartOptions{}))

	// Still idle: tracking is a no-op and a retry is allowed.
	c.TrackDishView("dish-1")
	assert.Equal(t, 0, c.QueuedEvents())

	starter.err = nil
	starter.sessionID = "s2"
	require.NoError(t, c.StartSession(context.Background(), StartOptions{}))
}

func TestTrack_NoActiveSessionIsNoop(t *testing.T) {
	t.Parallel()

	c := newTestCollector(t, &fakeStarter{sessionID: "s1"}, &fakeTransport{}, nil)

	c.TrackDishView("dish-1")
	c.TrackFavorite("dish-1")
	assert.Equal(t, 0, c.QueuedEvents())
}

func TestTrack_DeduplicatesDishViewsPerSession(t *testing.T) {
	t.Parallel()

	transport := &fakeTransport{}
	c := newTestCollector(t, &fakeStarter{sessionID: "s1"}, transport, nil)
	require.NoError(t, c.StartSession(context.Background(), StartOptions{}))

	c.TrackDishView("dish-1")
	c.TrackDishView("dish-1")
	c.TrackDishView("dish-2")
	assert.Equal(t, 2, c.QueuedEvents())

	// Other event types for the same dish are not deduplicated.
	c.TrackFavorite("dish-1")
	c.TrackFavorite("dish-1")
	assert.Equal(t, 4, c.QueuedEvents())

	// A new session starts with a fresh seen-set.
	require.NoError(t, c.EndSession(context.Background()))
	require.NoError(t, c.StartSession(context.Background(), StartOptions{}))
	c.TrackDishView("dish-1")
	assert.Equal(t, 1, c.QueuedEvents())
}

func TestTrack_ThresholdTriggersImmediateFlush(t *testing.T) {
	t.Parallel()

	transport := &fakeTransport{}
	c := newTestCollector(t, &fakeStarter{sessionID: "s1"}, transport, nil)
	require.NoError(t, c.StartSession(context.Background(), StartOptions{}))

	for i := 0; i < flushThreshold; i++ {
		c.TrackRating("dish-1", 5, "")
	}

	require.Eventually(t, func() bool {
		return len(transport.sentOfKind(KindEvents)) == 1 && c.QueuedEvents() == 0
	}, time.Second, 5*time.Millisecond)

	batches := transport.sentOfKind(KindEvents)
	assert.Len(t, batches[0].Events, flushThreshold)
	assert.Equal(t, "s1", batches[0].SessionID)
}

func TestFlush_FailureRequeuesPreservingOrder(t *testing.T) {
	t.Parallel()

	transport := &fakeTransport{failing: true}
	c := newTestCollector(t, &fakeStarter{sessionID: "s1"}, transport, nil)
	require.NoError(t, c.StartSession(context.Background(), StartOptions{}))

	c.TrackDishView("dish-1")
	c.TrackDishView("dish-2")

	require.Error(t, c.Flush(context.Background()))
	assert.Equal(t, 2, c.QueuedEvents())

	// An event tracked between failure and retry sorts after the requeued batch.
	c.TrackDishView("dish-3")

	transport.setFailing(false)
	require.NoError(t, c.Flush(context.Background()))
	assert.Equal(t, 0, c.QueuedEvents())

	batches := transport.sentOfKind(KindEvents)
	require.Len(t, batches, 1)
	require.Len(t, batches[0].Events, 3)
	assert.Equal(t, "dish-1", batches[0].Events[0].EntityID)
	assert.Equal(t, "dish-2", batches[0].Events[1].EntityID)
	assert.Equal(t, "dish-3", batches[0].Events[2].EntityID)
}

func TestEndSession_FlushesAndSendsEndSignal(t *testing.T) {
	t.Parallel()

	transport := &fakeTransport{}
	c := newTestCollector(t, &fakeStarter{sessionID: "s1"}, transport, nil)
	require.NoError(t, c.StartSession(context.Background(), StartOptions{}))

	c.TrackDishView("dish-1")
	require.NoError(t, c.EndSession(context.Background()))

	events := transport.sentOfKind(KindEvents)
	require.Len(t, events, 1)
	assert.Len(t, events[0].Events, 1)

	ends := transport.sentOfKind(KindSessionEnd)
	require.Len(t, ends, 1)
	endReq, ok := ends[0].Payload.(*EndRequest)
	require.True(t, ok)
	assert.Equal(t, "s1", endReq.SessionID)
}

func TestEndSession_Idempotent(t *testing.T) {
	t.Parallel()

	transport := &fakeTransport{}
	c := newTestCollector(t, &fakeStarter{sessionID: "s1"}, transport, nil)
	require.NoError(t, c.StartSession(context.Background(), StartOptions{}))

	require.NoError(t, c.EndSession(context.Background()))
	require.NoError(t, c.EndSession(context.Background()))
	require.NoError(t, c.EndSession(context.Background()))

	assert.Len(t, transport.sentOfKind(KindSessionEnd), 1)
}

func TestEndSession_PrefersBeaconTransport(t *testing.T) {
	t.Parallel()

	transport := &fakeTransport{}
	beacon := &fakeTransport{}
	c := newTestCollector(t, &fakeStarter{sessionID: "s1"}, transport, beacon)
	require.NoError(t, c.StartSession(context.Background(), StartOptions{}))

	c.TrackDishView("dish-1")
	require.NoError(t, c.EndSession(context.Background()))

	// Both the final flush and the end signal go over the beacon.
	assert.Len(t, beacon.sentOfKind(KindEvents), 1)
	assert.Len(t, beacon.sentOfKind(KindSessionEnd), 1)
	assert.Empty(t, transport.sent())
}

func TestEndSession_TeardownSignalEndsSession(t *testing.T) {
	t.Parallel()

	transport := &fakeTransport{}
	c := newTestCollector(t, &fakeStarter{sessionID: "s1"}, transport, nil)

	teardown := make(chan struct{})
	require.NoError(t, c.StartSession(context.Background(), StartOptions{Teardown: teardown}))

	c.TrackDishView("dish-1")
	close(teardown)

	require.Eventually(t, func() bool {
		return len(transport.sentOfKind(KindSessionEnd)) == 1
	}, time.Second, 5*time.Millisecond)
	assert.Len(t, transport.sentOfKind(KindEvents), 1)
}

func TestBuildStartRequest_OverridesWinOverProbe(t *testing.T) {
	t.Parallel()

	c := newTestCollector(t, &fakeStarter{sessionID: "s1"}, &fakeTransport{}, nil)
	c.probe = StaticProbe{Env: Environment{
		DeviceType:   "desktop",
		OSName:       "Linux",
		Browser:      "Firefox",
		NetworkType:  "wifi",
		LanguageCode: "en",
		Timezone:     "UTC",
	}}

	req := c.buildStartRequest(c.probe.Probe(), StartOptions{
		DeviceType: "mobile",
		Languages:  []string{"es-AR", "es"},
		UserID:     "user-7",
		UTM:        &UTM{Source: "qr-table-4", Medium: "qr"},
	})

	assert.Equal(t, "rest-1", req.RestaurantID)
	assert.Equal(t, "mobile", req.DeviceType)
	assert.Equal(t, "Linux", req.OSName)
	assert.Equal(t, "Firefox", req.Browser)
	assert.Equal(t, []string{"es-AR", "es"}, req.Languages)
	assert.Equal(t, "user-7", req.UserID)
	assert.Equal(t, "qr", req.UTM.Medium)
}

func TestTrack_SetsTimestampWhenMissing(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	transport := &fakeTransport{}
	c := newTestCollector(t, &fakeStarter{sessionID: "s1"}, transport, nil)
	c.now = func() time.Time { return now }

	require.NoError(t, c.StartSession(context.Background(), StartOptions{}))

	c.Track(&models.Event{Type: models.EventScrollDepth, Value: map[string]any{"depth": 80}})
	require.NoError(t, c.Flush(context.Background()))

	batches := transport.sentOfKind(KindEvents)
	require.Len(t, batches, 1)
	assert.Equal(t, now, batches[0].Events[0].Timestamp)
}
