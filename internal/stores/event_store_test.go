package stores

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"menu-analytics/internal/models"
)

var (
	testFrom = time.Date(2024, 3, 8, 0, 0, 0, 0, time.UTC)
	testTo   = time.Date(2024, 3, 15, 23, 59, 59, 0, time.UTC)
)

func newEventStoreForTest(t *testing.T) (EventStore, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return NewEventStore(db), mock
}

func TestInsertSession_MapsEmptyAttributesToNull(t *testing.T) {
	t.Parallel()

	store, mock := newEventStoreForTest(t)

	startedAt := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	mock.ExpectExec("INSERT INTO sessions").
		WithArgs(
			"session-1", "rest-1", startedAt,
			"mobile", "iOS", "Safari", nil, "es", "AR", nil,
			nil, true, nil, "qr-table-4", "qr", nil,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := store.InsertSession(context.Background(), &models.Session{
		ID:           "session-1",
		RestaurantID: "rest-1",
		StartedAt:    startedAt,
		DeviceType:   "mobile",
		OSName:       "iOS",
		Browser:      "Safari",
		LanguageCode: "es",
		Country:      "AR",
		PWAInstalled: true,
		UTMSource:    "qr-table-4",
		UTMMedium:    "qr",
	})
	require.NoError(t, err)
}

func TestCloseSession_ReportsWhetherRowWasClosed(t *testing.T) {
	t.Parallel()

	store, mock := newEventStoreForTest(t)
	endedAt := time.Date(2024, 3, 15, 12, 30, 0, 0, time.UTC)

	mock.ExpectExec("UPDATE sessions SET").
		WithArgs(endedAt, endedAt, "session-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	closed, err := store.CloseSession(context.Background(), "session-1", endedAt)
	require.NoError(t, err)
	assert.True(t, closed)

	// Second close matches no open row.
	mock.ExpectExec("UPDATE sessions SET").
		WithArgs(endedAt, endedAt, "session-1").
		WillReturnResult(sqlmock.NewResult(0, 0))
	closed, err = store.CloseSession(context.Background(), "session-1", endedAt)
	require.NoError(t, err)
	assert.False(t, closed)
}

func TestInsertEvents_LiftsNumericValues(t *testing.T) {
	t.Parallel()

	store, mock := newEventStoreForTest(t)
	ts := time.Date(2024, 3, 15, 12, 5, 0, 0, time.UTC)

	mock.ExpectExec("INSERT INTO events").
		WithArgs(
			"session-1", "rest-1", "dish-1", "dish", "rating", 4.5, []byte(`{"rating":4.5}`), ts,
			"session-1", "rest-1", nil, nil, "scrolldepth", float64(80), []byte(`{"depth":80}`), ts,
			"session-1", "rest-1", "dish-2", "dish", "viewdish", nil, []byte("null"), ts,
		).
		WillReturnResult(sqlmock.NewResult(0, 3))

	err := store.InsertEvents(context.Background(), &models.EventBatch{
		SessionID:    "session-1",
		RestaurantID: "rest-1",
		Events: []*models.Event{
			{Type: models.EventRating, EntityID: "dish-1", EntityType: "dish", Value: map[string]any{"rating": 4.5}, Timestamp: ts},
			{Type: models.EventScrollDepth, Value: map[string]any{"depth": float64(80)}, Timestamp: ts},
			{Type: models.EventViewDish, EntityID: "dish-2", EntityType: "dish", Timestamp: ts},
		},
	})
	require.NoError(t, err)
}

func TestInsertEvents_EmptyBatchIsNoop(t *testing.T) {
	t.Parallel()

	store, _ := newEventStoreForTest(t)
	err := store.InsertEvents(context.Background(), &models.EventBatch{SessionID: "s1", RestaurantID: "r1"})
	require.NoError(t, err)
}

func TestRawSummary_CombinesSessionAndEventCounters(t *testing.T) {
	t.Parallel()

	store, mock := newEventStoreForTest(t)

	mock.ExpectQuery("SELECT (.+) FROM sessions").
		WithArgs("rest-1", testFrom, testTo).
		WillReturnRows(sqlmock.NewRows([]string{"sessions", "unique_visitors", "avg_duration"}).
			AddRow(20, 12, 95.5))
	mock.ExpectQuery("SELECT (.+) FROM events").
		WithArgs("rest-1", testFrom, testTo).
		WillReturnRows(sqlmock.NewRows([]string{"dish_views", "favorites", "media_errors", "avg_scroll_depth"}).
			AddRow(15, 4, 1, 62.5))

	summary, err := store.RawSummary(context.Background(), "rest-1", testFrom, testTo)
	require.NoError(t, err)
	assert.Equal(t, int64(20), summary.Sessions)
	assert.Equal(t, int64(12), summary.UniqueVisitors)
	assert.InDelta(t, 95.5, summary.AvgDurationSeconds, 0.001)
	assert.Equal(t, int64(15), summary.DishViews)
	assert.Equal(t, int64(4), summary.Favorites)
	assert.Equal(t, int64(1), summary.MediaErrors)
	assert.InDelta(t, 62.5, summary.AvgScrollDepth, 0.001)
}

func TestRawTimeseries_MergesViewCountsIntoSessionDays(t *testing.T) {
	t.Parallel()

	store, mock := newEventStoreForTest(t)

	day1 := time.Date(2024, 3, 8, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT (.+) FROM sessions").
		WithArgs("rest-1", testFrom, testTo).
		WillReturnRows(sqlmock.NewRows([]string{"day", "sessions", "visitors"}).
			AddRow(day1, 10, 7).
			AddRow(day2, 5, 4))
	mock.ExpectQuery("SELECT (.+) FROM events").
		WithArgs("viewdish", "rest-1", testFrom, testTo).
		WillReturnRows(sqlmock.NewRows([]string{"day", "views"}).
			AddRow(day1, 31))

	points, err := store.RawTimeseries(context.Background(), "rest-1", testFrom, testTo)
	require.NoError(t, err)
	require.Len(t, points, 2)
	assert.Equal(t, models.DailyPoint{Date: "2024-03-08", Views: 31, Sessions: 10, Visitors: 7}, points[0])
	assert.Equal(t, models.DailyPoint{Date: "2024-03-09", Sessions: 5, Visitors: 4}, points[1])
}

func TestRawTopDishes(t *testing.T) {
	t.Parallel()

	store, mock := newEventStoreForTest(t)

	mock.ExpectQuery("SELECT (.+) FROM events").
		WithArgs("dish", "rest-1", "viewdish", "favorite", testFrom, testTo).
		WillReturnRows(sqlmock.NewRows([]string{"entity_id", "views", "favorites"}).
			AddRow("dish-1", 30, 6).
			AddRow("dish-2", 12, 1))

	stats, err := store.RawTopDishes(context.Background(), "rest-1", testFrom, testTo, 5)
	require.NoError(t, err)
	require.Len(t, stats, 2)
	assert.Equal(t, "dish-1", stats[0].ID)
	assert.Equal(t, int64(30), stats[0].Views)
	assert.Equal(t, int64(6), stats[0].Favorites)
}

func TestSessionBreakdown_CoercesMissingToUnknown(t *testing.T) {
	t.Parallel()

	store, mock := newEventStoreForTest(t)

	mock.ExpectQuery("SELECT COALESCE").
		WithArgs("rest-1", testFrom, testTo).
		WillReturnRows(sqlmock.NewRows([]string{"key", "count"}).
			AddRow("mobile", 14).
			AddRow("unknown", 3))

	entries, err := store.SessionBreakdown(context.Background(), "rest-1", ByDeviceType, testFrom, testTo)
	require.NoError(t, err)
	assert.Equal(t, []models.BreakdownEntry{
		{Key: "mobile", Count: 14},
		{Key: "unknown", Count: 3},
	}, entries)
}

func TestSessionBreakdown_RejectsUnknownColumn(t *testing.T) {
	t.Parallel()

	store, _ := newEventStoreForTest(t)

	_, err := store.SessionBreakdown(context.Background(), "rest-1", BreakdownColumn("id; DROP TABLE sessions"), testFrom, testTo)
	require.Error(t, err)
}

func TestPWACounts(t *testing.T) {
	t.Parallel()

	store, mock := newEventStoreForTest(t)

	mock.ExpectQuery("SELECT (.+) FROM sessions").
		WithArgs("rest-1", testFrom, testTo).
		WillReturnRows(sqlmock.NewRows([]string{"installed", "total"}).AddRow(3, 20))

	installed, total, err := store.PWACounts(context.Background(), "rest-1", testFrom, testTo)
	require.NoError(t, err)
	assert.Equal(t, int64(3), installed)
	assert.Equal(t, int64(20), total)
}

func TestHourlyTraffic(t *testing.T) {
	t.Parallel()

	store, mock := newEventStoreForTest(t)

	mock.ExpectQuery("SELECT EXTRACT").
		WithArgs("rest-1", testFrom, testTo).
		WillReturnRows(sqlmock.NewRows([]string{"hour", "sessions"}).
			AddRow(12, 9).
			AddRow(20, 15))

	points, err := store.HourlyTraffic(context.Background(), "rest-1", testFrom, testTo)
	require.NoError(t, err)
	assert.Equal(t, []models.HourlyPoint{{Hour: 12, Sessions: 9}, {Hour: 20, Sessions: 15}}, points)
}

func TestQRAttribution_GroupsQRSessionsBySource(t *testing.T) {
	t.Parallel()

	store, mock := newEventStoreForTest(t)

	mock.ExpectQuery("SELECT (.+) FROM sessions").
		WithArgs("rest-1", "qr", testFrom, testTo).
		WillReturnRows(sqlmock.NewRows([]string{"key", "count"}).
			AddRow("qr-table-4", 11).
			AddRow("qr-entrance", 6))

	entries, err := store.QRAttribution(context.Background(), "rest-1", testFrom, testTo)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "qr-table-4", entries[0].Key)
	assert.Equal(t, int64(11), entries[0].Count)
}
