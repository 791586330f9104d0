package stores

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"menu-analytics/internal/models"
)

// RollupStore reads the pre-computed daily aggregate tables. Rows are
// materialized by an external job and are read-only here. Counter columns are
// summed across days; duration/rate/depth columns are stored as per-day
// averages and must be averaged, never summed, when combined.
//
// Methods that cover a whole family return nil (not a zero value) when the
// table has no rows in range, so the engine can fall back to raw events.
//
//go:generate mockgen -source=rollup_store.go -destination=./mocks/rollup_store_mock.go -package=mocks
type RollupStore interface {
	Summary(ctx context.Context, restaurantID string, from, to time.Time) (*models.Summary, error)
	Timeseries(ctx context.Context, restaurantID string, from, to time.Time) ([]models.DailyPoint, error)
	TopDishes(ctx context.Context, restaurantID string, from, to time.Time, limit int) ([]models.EntityStat, error)
	TopSections(ctx context.Context, restaurantID string, from, to time.Time, limit int) ([]models.EntityStat, error)
	Flows(ctx context.Context, restaurantID string, from, to time.Time, limit int) ([]models.FlowTransition, error)
	CartMetrics(ctx context.Context, restaurantID string, from, to time.Time) (*models.CartMetrics, error)
}

type rollupStore struct {
	db *sql.DB
}

func NewRollupStore(db *sql.DB) RollupStore {
	return &rollupStore{db: db}
}

func (s *rollupStore) Summary(ctx context.Context, restaurantID string, from, to time.Time) (*models.Summary, error) {
	query, args, err := psq.Select(
		"COALESCE(SUM(dish_views), 0) AS dish_views",
		"COALESCE(SUM(unique_visitors), 0) AS unique_visitors",
		"COALESCE(SUM(total_sessions), 0) AS sessions",
		"COALESCE(AVG(avg_session_duration), 0) AS avg_duration",
		"COALESCE(SUM(favorites), 0) AS favorites",
		"COALESCE(AVG(avg_scroll_depth), 0) AS avg_scroll_depth",
		"COALESCE(SUM(media_errors), 0) AS media_errors",
		"COUNT(*) AS days",
	).From("daily_analytics").
		Where(sq.Eq{"restaurant_id": restaurantID}).
		Where(sq.GtOrEq{"date": from.Format(isoDate)}).
		Where(sq.LtOrEq{"date": to.Format(isoDate)}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building rollup summary: %w", err)
	}

	var summary models.Summary
	var days int64
	err = s.db.QueryRowContext(ctx, query, args...).Scan(
		&summary.DishViews,
		&summary.UniqueVisitors,
		&summary.Sessions,
		&summary.AvgDurationSeconds,
		&summary.Favorites,
		&summary.AvgScrollDepth,
		&summary.MediaErrors,
		&days,
	)
	if err != nil {
		return nil, fmt.Errorf("querying rollup summary: %w", err)
	}
	if days == 0 {
		return nil, nil
	}
	return &summary, nil
}

func (s *rollupStore) Timeseries(ctx context.Context, restaurantID string, from, to time.Time) ([]models.DailyPoint, error) {
	query, args, err := psq.Select(
		"date",
		"COALESCE(dish_views, 0) AS views",
		"COALESCE(total_sessions, 0) AS sessions",
		"COALESCE(unique_visitors, 0) AS visitors",
	).From("daily_analytics").
		Where(sq.Eq{"restaurant_id": restaurantID}).
		Where(sq.GtOrEq{"date": from.Format(isoDate)}).
		Where(sq.LtOrEq{"date": to.Format(isoDate)}).
		OrderBy("date ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building rollup timeseries: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying rollup timeseries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var points []models.DailyPoint
	for rows.Next() {
		var day time.Time
		var point models.DailyPoint
		if err := rows.Scan(&day, &point.Views, &point.Sessions, &point.Visitors); err != nil {
			return nil, fmt.Errorf("scanning rollup timeseries row: %w", err)
		}
		point.Date = day.UTC().Format(isoDate)
		points = append(points, point)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rollup timeseries rows: %w", err)
	}
	return points, nil
}

func (s *rollupStore) TopDishes(ctx context.Context, restaurantID string, from, to time.Time, limit int) ([]models.EntityStat, error) {
	return s.topEntities(ctx, "dish_daily_metrics", "dish_id", restaurantID, from, to, limit)
}

func (s *rollupStore) TopSections(ctx context.Context, restaurantID string, from, to time.Time, limit int) ([]models.EntityStat, error) {
	return s.topEntities(ctx, "section_daily_metrics", "section_id", restaurantID, from, to, limit)
}

func (s *rollupStore) topEntities(ctx context.Context, table, idColumn, restaurantID string, from, to time.Time, limit int) ([]models.EntityStat, error) {
	query, args, err := psq.Select(
		idColumn,
		"COALESCE(SUM(views), 0) AS views",
		"COALESCE(SUM(favorites), 0) AS favorites",
	).From(table).
		Where(sq.Eq{"restaurant_id": restaurantID}).
		Where(sq.GtOrEq{"date": from.Format(isoDate)}).
		Where(sq.LtOrEq{"date": to.Format(isoDate)}).
		GroupBy(idColumn).
		OrderBy("views DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building %s top query: %w", table, err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", table, err)
	}
	defer func() { _ = rows.Close() }()

	var stats []models.EntityStat
	for rows.Next() {
		var stat models.EntityStat
		if err := rows.Scan(&stat.ID, &stat.Views, &stat.Favorites); err != nil {
			return nil, fmt.Errorf("scanning %s row: %w", table, err)
		}
		stats = append(stats, stat)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating %s rows: %w", table, err)
	}
	return stats, nil
}

func (s *rollupStore) Flows(ctx context.Context, restaurantID string, from, to time.Time, limit int) ([]models.FlowTransition, error) {
	query, args, err := psq.Select(
		"entry_page",
		"exit_page",
		"COALESCE(SUM(transitions), 0) AS count",
	).From("entry_exit_flows").
		Where(sq.Eq{"restaurant_id": restaurantID}).
		Where(sq.GtOrEq{"date": from.Format(isoDate)}).
		Where(sq.LtOrEq{"date": to.Format(isoDate)}).
		GroupBy("entry_page", "exit_page").
		OrderBy("count DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building flows query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying flows: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var flows []models.FlowTransition
	for rows.Next() {
		var flow models.FlowTransition
		if err := rows.Scan(&flow.EntryPage, &flow.ExitPage, &flow.Count); err != nil {
			return nil, fmt.Errorf("scanning flow row: %w", err)
		}
		flows = append(flows, flow)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating flow rows: %w", err)
	}
	if flows == nil {
		flows = []models.FlowTransition{}
	}
	return flows, nil
}

func (s *rollupStore) CartMetrics(ctx context.Context, restaurantID string, from, to time.Time) (*models.CartMetrics, error) {
	query, args, err := psq.Select(
		"COALESCE(SUM(carts_created), 0) AS carts_created",
		"COALESCE(SUM(items_added), 0) AS items_added",
		"COALESCE(SUM(carts_abandoned), 0) AS carts_abandoned",
		"COALESCE(SUM(carts_completed), 0) AS carts_completed",
		"COALESCE(AVG(avg_cart_value), 0) AS avg_cart_value",
		"COUNT(*) AS days",
	).From("cart_daily_metrics").
		Where(sq.Eq{"restaurant_id": restaurantID}).
		Where(sq.GtOrEq{"date": from.Format(isoDate)}).
		Where(sq.LtOrEq{"date": to.Format(isoDate)}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building cart metrics: %w", err)
	}

	var cart models.CartMetrics
	var days int64
	err = s.db.QueryRowContext(ctx, query, args...).Scan(
		&cart.CartsCreated,
		&cart.ItemsAdded,
		&cart.CartsAbandoned,
		&cart.CartsCompleted,
		&cart.AvgCartValue,
		&days,
	)
	if err != nil {
		return nil, fmt.Errorf("querying cart metrics: %w", err)
	}
	if days == 0 {
		return nil, nil
	}
	return &cart, nil
}
