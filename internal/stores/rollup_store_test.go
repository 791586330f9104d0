package stores

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"menu-analytics/internal/models"
)

func newRollupStoreForTest(t *testing.T) (RollupStore, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return NewRollupStore(db), mock
}

func TestRollupSummary_SumsCountersAveragesAverages(t *testing.T) {
	t.Parallel()

	store, mock := newRollupStoreForTest(t)

	mock.ExpectQuery("SELECT (.+) FROM daily_analytics").
		WithArgs("rest-1", "2024-03-08", "2024-03-15").
		WillReturnRows(sqlmock.NewRows([]string{
			"dish_views", "unique_visitors", "sessions", "avg_duration",
			"favorites", "avg_scroll_depth", "media_errors", "days",
		}).AddRow(150, 48, 60, 92.5, 12, 55.0, 2, 8))

	summary, err := store.Summary(context.Background(), "rest-1", testFrom, testTo)
	require.NoError(t, err)
	require.NotNil(t, summary)
	assert.Equal(t, int64(150), summary.DishViews)
	assert.Equal(t, int64(60), summary.Sessions)
	assert.InDelta(t, 92.5, summary.AvgDurationSeconds, 0.001)
}

func TestRollupSummary_NoDaysSignalsFallback(t *testing.T) {
	t.Parallel()

	store, mock := newRollupStoreForTest(t)

	mock.ExpectQuery("SELECT (.+) FROM daily_analytics").
		WithArgs("rest-1", "2024-03-08", "2024-03-15").
		WillReturnRows(sqlmock.NewRows([]string{
			"dish_views", "unique_visitors", "sessions", "avg_duration",
			"favorites", "avg_scroll_depth", "media_errors", "days",
		}).AddRow(0, 0, 0, 0.0, 0, 0.0, 0, 0))

	summary, err := store.Summary(context.Background(), "rest-1", testFrom, testTo)
	require.NoError(t, err)
	assert.Nil(t, summary)
}

func TestRollupTimeseries(t *testing.T) {
	t.Parallel()

	store, mock := newRollupStoreForTest(t)

	mock.ExpectQuery("SELECT (.+) FROM daily_analytics").
		WithArgs("rest-1", "2024-03-08", "2024-03-15").
		WillReturnRows(sqlmock.NewRows([]string{"date", "views", "sessions", "visitors"}).
			AddRow(testFrom, 31, 10, 7).
			AddRow(testFrom.AddDate(0, 0, 1), 12, 5, 4))

	points, err := store.Timeseries(context.Background(), "rest-1", testFrom, testTo)
	require.NoError(t, err)
	require.Len(t, points, 2)
	assert.Equal(t, models.DailyPoint{Date: "2024-03-08", Views: 31, Sessions: 10, Visitors: 7}, points[0])
	assert.Equal(t, "2024-03-09", points[1].Date)
}

func TestRollupTopDishes(t *testing.T) {
	t.Parallel()

	store, mock := newRollupStoreForTest(t)

	mock.ExpectQuery("SELECT (.+) FROM dish_daily_metrics").
		WithArgs("rest-1", "2024-03-08", "2024-03-15").
		WillReturnRows(sqlmock.NewRows([]string{"dish_id", "views", "favorites"}).
			AddRow("dish-1", 30, 6))

	stats, err := store.TopDishes(context.Background(), "rest-1", testFrom, testTo, 10)
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, models.EntityStat{ID: "dish-1", Views: 30, Favorites: 6}, stats[0])
}

func TestRollupTopSections(t *testing.T) {
	t.Parallel()

	store, mock := newRollupStoreForTest(t)

	mock.ExpectQuery("SELECT (.+) FROM section_daily_metrics").
		WithArgs("rest-1", "2024-03-08", "2024-03-15").
		WillReturnRows(sqlmock.NewRows([]string{"section_id", "views", "favorites"}).
			AddRow("section-starters", 44, 3))

	stats, err := store.TopSections(context.Background(), "rest-1", testFrom, testTo, 10)
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, "section-starters", stats[0].ID)
}

func TestRollupFlows(t *testing.T) {
	t.Parallel()

	store, mock := newRollupStoreForTest(t)

	mock.ExpectQuery("SELECT (.+) FROM entry_exit_flows").
		WithArgs("rest-1", "2024-03-08", "2024-03-15").
		WillReturnRows(sqlmock.NewRows([]string{"entry_page", "exit_page", "count"}).
			AddRow("/menu", "/dish/milanesa", 18))

	flows, err := store.Flows(context.Background(), "rest-1", testFrom, testTo, 10)
	require.NoError(t, err)
	require.Len(t, flows, 1)
	assert.Equal(t, models.FlowTransition{EntryPage: "/menu", ExitPage: "/dish/milanesa", Count: 18}, flows[0])
}

func TestRollupCartMetrics_NoDaysReturnsNil(t *testing.T) {
	t.Parallel()

	store, mock := newRollupStoreForTest(t)

	mock.ExpectQuery("SELECT (.+) FROM cart_daily_metrics").
		WithArgs("rest-1", "2024-03-08", "2024-03-15").
		WillReturnRows(sqlmock.NewRows([]string{
			"carts_created", "items_added", "carts_abandoned", "carts_completed", "avg_cart_value", "days",
		}).AddRow(0, 0, 0, 0, 0.0, 0))

	cart, err := store.CartMetrics(context.Background(), "rest-1", testFrom, testTo)
	require.NoError(t, err)
	assert.Nil(t, cart)
}

func TestRollupCartMetrics(t *testing.T) {
	t.Parallel()

	store, mock := newRollupStoreForTest(t)

	mock.ExpectQuery("SELECT (.+) FROM cart_daily_metrics").
		WithArgs("rest-1", "2024-03-08", "2024-03-15").
		WillReturnRows(sqlmock.NewRows([]string{
			"carts_created", "items_added", "carts_abandoned", "carts_completed", "avg_cart_value", "days",
		}).AddRow(8, 21, 5, 2, 3450.0, 7))

	cart, err := store.CartMetrics(context.Background(), "rest-1", testFrom, testTo)
	require.NoError(t, err)
	require.NotNil(t, cart)
	assert.Equal(t, int64(8), cart.CartsCreated)
	assert.Equal(t, int64(2), cart.CartsCompleted)
	assert.InDelta(t, 3450.0, cart.AvgCartValue, 0.001)
}
