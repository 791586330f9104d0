package stores

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"menu-analytics/internal/models"
)

// EventStore owns the append-only sessions and events tables. This subsystem
// only ever appends to them (ingestion) or reads them back (raw-side report
// queries); rows are never updated except for the one idempotent session
// close.
//
//go:generate mockgen -source=event_store.go -destination=./mocks/event_store_mock.go -package=mocks
type EventStore interface {
	InsertSession(ctx context.Context, session *models.Session) error
	// CloseSession sets ended_at and duration_seconds for a still-open
	// session. It reports whether a row was actually closed so callers can
	// distinguish the first close from the idempotent no-op repeat.
	CloseSession(ctx context.Context, sessionID string, endedAt time.Time) (bool, error)
	InsertEvents(ctx context.Context, batch *models.EventBatch) error

	// Raw-side aggregation reads, used directly for session-backed report
	// families and as fallbacks when a rollup table has no rows in range.
	RawSummary(ctx context.Context, restaurantID string, from, to time.Time) (*models.Summary, error)
	RawTimeseries(ctx context.Context, restaurantID string, from, to time.Time) ([]models.DailyPoint, error)
	RawTopDishes(ctx context.Context, restaurantID string, from, to time.Time, limit int) ([]models.EntityStat, error)
	RawTopSections(ctx context.Context, restaurantID string, from, to time.Time, limit int) ([]models.EntityStat, error)
	SessionBreakdown(ctx context.Context, restaurantID string, column BreakdownColumn, from, to time.Time) ([]models.BreakdownEntry, error)
	PWACounts(ctx context.Context, restaurantID string, from, to time.Time) (installed, total int64, err error)
	HourlyTraffic(ctx context.Context, restaurantID string, from, to time.Time) ([]models.HourlyPoint, error)
	QRAttribution(ctx context.Context, restaurantID string, from, to time.Time) ([]models.BreakdownEntry, error)
}

type eventStore struct {
	db *sql.DB
}

func NewEventStore(db *sql.DB) EventStore {
	return &eventStore{db: db}
}

func (s *eventStore) InsertSession(ctx context.Context, session *models.Session) error {
	query, args, err := psq.Insert("sessions").
		Columns(
			"id", "restaurant_id", "started_at", "device_type", "os_name",
			"browser", "network_type", "language_code", "country", "city",
			"referrer", "pwa_installed", "user_id", "utm_source",
			"utm_medium", "utm_campaign",
		).
		Values(
			session.ID, session.RestaurantID, session.StartedAt,
			nullIfEmpty(session.DeviceType), nullIfEmpty(session.OSName),
			nullIfEmpty(session.Browser), nullIfEmpty(session.NetworkType),
			nullIfEmpty(session.LanguageCode), nullIfEmpty(session.Country),
			nullIfEmpty(session.City), nullIfEmpty(session.Referrer),
			session.PWAInstalled, nullIfEmpty(session.UserID),
			nullIfEmpty(session.UTMSource), nullIfEmpty(session.UTMMedium),
			nullIfEmpty(session.UTMCampaign),
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("building session insert: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("inserting session: %w", err)
	}
	return nil
}

func (s *eventStore) CloseSession(ctx context.Context, sessionID string, endedAt time.Time) (bool, error) {
	query, args, err := psq.Update("sessions").
		Set("ended_at", endedAt).
		Set("duration_seconds", sq.Expr("EXTRACT(EPOCH FROM (? - started_at))::bigint", endedAt)).
		Where(sq.Eq{"id": sessionID}).
		Where("ended_at IS NULL").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("building session close: %w", err)
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("closing session: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("closing session: %w", err)
	}
	return affected > 0, nil
}

func (s *eventStore) InsertEvents(ctx context.Context, batch *models.EventBatch) error {
	if len(batch.Events) == 0 {
		return nil
	}

	builder := psq.Insert("events").
		Columns("session_id", "restaurant_id", "entity_id", "entity_type", "event_type", "numeric_value", "value", "created_at")

	for _, event := range batch.Events {
		payload, err := json.Marshal(event.Value)
		if err != nil {
			return fmt.Errorf("marshaling event value: %w", err)
		}
		builder = builder.Values(
			batch.SessionID,
			batch.RestaurantID,
			nullIfEmpty(event.EntityID),
			nullIfEmpty(event.EntityType),
			string(event.Type),
			numericValue(event),
			payload,
			event.Timestamp,
		)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("building events insert: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("inserting events: %w", err)
	}
	return nil
}

// numericValue lifts rating stars and scroll depth percentages out of the
// free-form payload so SQL aggregations can average them.
func numericValue(event *models.Event) any {
	if event.Value == nil {
		return nil
	}
	var key string
	switch event.Type {
	case models.EventRating:
		key = "rating"
	case models.EventScrollDepth:
		key = "depth"
	default:
		return nil
	}
	switch v := event.Value[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	default:
		return nil
	}
}

func (s *eventStore) RawSummary(ctx context.Context, restaurantID string, from, to time.Time) (*models.Summary, error) {
	summary := &models.Summary{}

	query, args, err := psq.Select(
		"COUNT(*) AS sessions",
		"COUNT(DISTINCT COALESCE(user_id, id::text)) AS unique_visitors",
		"COALESCE(AVG(duration_seconds), 0) AS avg_duration",
	).From("sessions").
		Where(sq.Eq{"restaurant_id": restaurantID}).
		Where(sq.GtOrEq{"started_at": from}).
		Where(sq.LtOrEq{"started_at": to}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building raw session summary: %w", err)
	}
	err = s.db.QueryRowContext(ctx, query, args...).
		Scan(&summary.Sessions, &summary.UniqueVisitors, &summary.AvgDurationSeconds)
	if err != nil {
		return nil, fmt.Errorf("querying raw session summary: %w", err)
	}

	query, args, err = psq.Select(
		"COUNT(*) FILTER (WHERE event_type = 'viewdish') AS dish_views",
		"COUNT(*) FILTER (WHERE event_type = 'favorite') AS favorites",
		"COUNT(*) FILTER (WHERE event_type = 'mediaerror') AS media_errors",
		"COALESCE(AVG(numeric_value) FILTER (WHERE event_type = 'scrolldepth'), 0) AS avg_scroll_depth",
	).From("events").
		Where(sq.Eq{"restaurant_id": restaurantID}).
		Where(sq.GtOrEq{"created_at": from}).
		Where(sq.LtOrEq{"created_at": to}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building raw event summary: %w", err)
	}
	err = s.db.QueryRowContext(ctx, query, args...).
		Scan(&summary.DishViews, &summary.Favorites, &summary.MediaErrors, &summary.AvgScrollDepth)
	if err != nil {
		return nil, fmt.Errorf("querying raw event summary: %w", err)
	}

	return summary, nil
}

func (s *eventStore) RawTimeseries(ctx context.Context, restaurantID string, from, to time.Time) ([]models.DailyPoint, error) {
	query, args, err := psq.Select(
		"DATE(started_at) AS day",
		"COUNT(*) AS sessions",
		"COUNT(DISTINCT COALESCE(user_id, id::text)) AS visitors",
	).From("sessions").
		Where(sq.Eq{"restaurant_id": restaurantID}).
		Where(sq.GtOrEq{"started_at": from}).
		Where(sq.LtOrEq{"started_at": to}).
		GroupBy("day").
		OrderBy("day ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building raw timeseries: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying raw timeseries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var points []models.DailyPoint
	index := make(map[string]int)
	for rows.Next() {
		var day time.Time
		var point models.DailyPoint
		if err := rows.Scan(&day, &point.Sessions, &point.Visitors); err != nil {
			return nil, fmt.Errorf("scanning raw timeseries row: %w", err)
		}
		point.Date = day.UTC().Format(isoDate)
		index[point.Date] = len(points)
		points = append(points, point)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating raw timeseries rows: %w", err)
	}

	// Merge per-day view counts from the events table into the session days.
	query, args, err = psq.Select(
		"DATE(created_at) AS day",
		"COUNT(*) AS views",
	).From("events").
		Where(sq.Eq{"restaurant_id": restaurantID, "event_type": string(models.EventViewDish)}).
		Where(sq.GtOrEq{"created_at": from}).
		Where(sq.LtOrEq{"created_at": to}).
		GroupBy("day").
		OrderBy("day ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building raw view timeseries: %w", err)
	}

	viewRows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying raw view timeseries: %w", err)
	}
	defer func() { _ = viewRows.Close() }()

	for viewRows.Next() {
		var day time.Time
		var views int64
		if err := viewRows.Scan(&day, &views); err != nil {
			return nil, fmt.Errorf("scanning raw view timeseries row: %w", err)
		}
		date := day.UTC().Format(isoDate)
		if i, ok := index[date]; ok {
			points[i].Views = views
		} else {
			points = append(points, models.DailyPoint{Date: date, Views: views})
		}
	}
	if err := viewRows.Err(); err != nil {
		return nil, fmt.Errorf("iterating raw view timeseries rows: %w", err)
	}

	if points == nil {
		points = []models.DailyPoint{}
	}
	return points, nil
}

func (s *eventStore) RawTopDishes(ctx context.Context, restaurantID string, from, to time.Time, limit int) ([]models.EntityStat, error) {
	return s.rawTopEntities(ctx, restaurantID, "dish", from, to, limit)
}

func (s *eventStore) RawTopSections(ctx context.Context, restaurantID string, from, to time.Time, limit int) ([]models.EntityStat, error) {
	return s.rawTopEntities(ctx, restaurantID, "section", from, to, limit)
}

// rawTopEntities re-derives a top-N from raw event rows. Ties on the view
// count keep the store's natural order, which may differ across retries.
func (s *eventStore) rawTopEntities(ctx context.Context, restaurantID, entityType string, from, to time.Time, limit int) ([]models.EntityStat, error) {
	query, args, err := psq.Select(
		"entity_id",
		"COUNT(*) FILTER (WHERE event_type = 'viewdish') AS views",
		"COUNT(*) FILTER (WHERE event_type = 'favorite') AS favorites",
	).From("events").
		Where(sq.Eq{"restaurant_id": restaurantID, "entity_type": entityType}).
		Where(sq.Eq{"event_type": []string{string(models.EventViewDish), string(models.EventFavorite)}}).
		Where(sq.GtOrEq{"created_at": from}).
		Where(sq.LtOrEq{"created_at": to}).
		Where("entity_id IS NOT NULL").
		GroupBy("entity_id").
		OrderBy("views DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building raw top %s: %w", entityType, err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying raw top %s: %w", entityType, err)
	}
	defer func() { _ = rows.Close() }()

	var stats []models.EntityStat
	for rows.Next() {
		var stat models.EntityStat
		if err := rows.Scan(&stat.ID, &stat.Views, &stat.Favorites); err != nil {
			return nil, fmt.Errorf("scanning raw top %s row: %w", entityType, err)
		}
		stats = append(stats, stat)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating raw top %s rows: %w", entityType, err)
	}
	return stats, nil
}

func (s *eventStore) SessionBreakdown(ctx context.Context, restaurantID string, column BreakdownColumn, from, to time.Time) ([]models.BreakdownEntry, error) {
	if !ValidBreakdownColumns[column] {
		return nil, fmt.Errorf("invalid breakdown column: %q", column)
	}

	// column passed validation above, so interpolating it is safe.
	keyExpr := fmt.Sprintf("COALESCE(NULLIF(%s, ''), 'unknown') AS key", string(column))

	query, args, err := psq.Select(keyExpr, "COUNT(*) AS count").
		From("sessions").
		Where(sq.Eq{"restaurant_id": restaurantID}).
		Where(sq.GtOrEq{"started_at": from}).
		Where(sq.LtOrEq{"started_at": to}).
		GroupBy("key").
		OrderBy("count DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building %s breakdown: %w", column, err)
	}

	return s.queryBreakdown(ctx, string(column), query, args)
}

func (s *eventStore) PWACounts(ctx context.Context, restaurantID string, from, to time.Time) (int64, int64, error) {
	query, args, err := psq.Select(
		"COUNT(*) FILTER (WHERE pwa_installed) AS installed",
		"COUNT(*) AS total",
	).From("sessions").
		Where(sq.Eq{"restaurant_id": restaurantID}).
		Where(sq.GtOrEq{"started_at": from}).
		Where(sq.LtOrEq{"started_at": to}).
		ToSql()
	if err != nil {
		return 0, 0, fmt.Errorf("building pwa counts: %w", err)
	}

	var installed, total int64
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&installed, &total); err != nil {
		return 0, 0, fmt.Errorf("querying pwa counts: %w", err)
	}
	return installed, total, nil
}

func (s *eventStore) HourlyTraffic(ctx context.Context, restaurantID string, from, to time.Time) ([]models.HourlyPoint, error) {
	query, args, err := psq.Select(
		"EXTRACT(HOUR FROM started_at)::int AS hour",
		"COUNT(*) AS sessions",
	).From("sessions").
		Where(sq.Eq{"restaurant_id": restaurantID}).
		Where(sq.GtOrEq{"started_at": from}).
		Where(sq.LtOrEq{"started_at": to}).
		GroupBy("hour").
		OrderBy("hour ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building hourly traffic: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying hourly traffic: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var points []models.HourlyPoint
	for rows.Next() {
		var point models.HourlyPoint
		if err := rows.Scan(&point.Hour, &point.Sessions); err != nil {
			return nil, fmt.Errorf("scanning hourly traffic row: %w", err)
		}
		points = append(points, point)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating hourly traffic rows: %w", err)
	}
	if points == nil {
		points = []models.HourlyPoint{}
	}
	return points, nil
}

func (s *eventStore) QRAttribution(ctx context.Context, restaurantID string, from, to time.Time) ([]models.BreakdownEntry, error) {
	query, args, err := psq.Select(
		"COALESCE(NULLIF(utm_source, ''), 'unknown') AS key",
		"COUNT(*) AS count",
	).From("sessions").
		Where(sq.Eq{"restaurant_id": restaurantID, "utm_medium": "qr"}).
		Where(sq.GtOrEq{"started_at": from}).
		Where(sq.LtOrEq{"started_at": to}).
		GroupBy("key").
		OrderBy("count DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building qr attribution: %w", err)
	}

	return s.queryBreakdown(ctx, "qr", query, args)
}

func (s *eventStore) queryBreakdown(ctx context.Context, name, query string, args []any) ([]models.BreakdownEntry, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying %s breakdown: %w", name, err)
	}
	defer func() { _ = rows.Close() }()

	var entries []models.BreakdownEntry
	for rows.Next() {
		var entry models.BreakdownEntry
		if err := rows.Scan(&entry.Key, &entry.Count); err != nil {
			return nil, fmt.Errorf("scanning %s breakdown row: %w", name, err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating %s breakdown rows: %w", name, err)
	}
	if entries == nil {
		entries = []models.BreakdownEntry{}
	}
	return entries, nil
}

// nullIfEmpty maps empty strings to SQL NULL so breakdowns can coerce them
// to "unknown" uniformly.
func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
