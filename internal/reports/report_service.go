package reports

import (
	"context"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"menu-analytics/internal/models"
	"menu-analytics/internal/shared/loggers"
	"menu-analytics/internal/shared/metrics"
	"menu-analytics/internal/shared/svcerrors"
	"menu-analytics/internal/stores"
)

// ReportQuery identifies one analytics request. From/To are ISO dates;
// TimeRange is a named token used when they are absent. Zero Language and
// Top fall back to the service defaults.
type ReportQuery struct {
	RestaurantID string
	From         string
	To           string
	TimeRange    string
	Language     string
	Top          int
}

// ReportService is the aggregation engine: given a restaurant and a date
// range it assembles the composite AnalyticsReport, preferring the rollup
// tables and falling back to raw event rows per metric family.
//
//go:generate mockgen -source=report_service.go -destination=./mocks/report_service_mock.go -package=mocks
type ReportService interface {
	Build(ctx context.Context, query ReportQuery) (*models.AnalyticsReport, error)
}

type reportService struct {
	rollups      stores.RollupStore
	events       stores.EventStore
	translations stores.TranslationStore

	defaultLanguage string
	defaultTop      int
	now             func() time.Time
}

func NewReportService(rollups stores.RollupStore, events stores.EventStore, translations stores.TranslationStore, defaultLanguage string, defaultTop int) ReportService {
	return &reportService{
		rollups:         rollups,
		events:          events,
		translations:    translations,
		defaultLanguage: defaultLanguage,
		defaultTop:      defaultTop,
		now:             time.Now,
	}
}

func (s *reportService) Build(ctx context.Context, query ReportQuery) (*models.AnalyticsReport, error) {
	start := time.Now()
	report, err := s.build(ctx, query)
	code := metrics.ValueNoError
	if err != nil {
		if svcErr, ok := svcerrors.AsServiceError(err); ok {
			code = svcErr.Code
		} else {
			code = codeInternalQueryFailed
		}
	}
	metricReportsBuiltTotal.WithLabelValues(code).Inc()
	metricReportDuration.WithLabelValues(code).Observe(time.Since(start).Seconds())
	return report, err
}

func (s *reportService) build(ctx context.Context, query ReportQuery) (*models.AnalyticsReport, error) {
	if strings.TrimSpace(query.RestaurantID) == "" {
		return nil, errMissingRestaurantID()
	}

	window, err := resolveWindow(s.now(), query.From, query.To, query.TimeRange)
	if err != nil {
		return nil, err
	}

	lang := query.Language
	if lang == "" {
		lang = s.defaultLanguage
	}
	top := query.Top
	if top <= 0 {
		top = s.defaultTop
	}

	logger := loggers.Ctx(ctx)
	logger.Debug().
		Str(loggers.FieldRestaurantID, query.RestaurantID).
		Str("from", window.From.Format(isoDate)).
		Str("to", window.To.Format(isoDate)).
		Msg("building analytics report")

	report := &models.AnalyticsReport{Range: window.ReportRange()}
	restaurantID := query.RestaurantID
	eventFrom, eventTo := window.EventSpan()

	// Families are independent reads with no ordering dependency; the only
	// sequential step is name resolution, which runs after its own family's
	// top-N inside the same goroutine.
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		summary, err := s.fetchSummary(gctx, restaurantID, window, eventFrom, eventTo)
		if err != nil {
			return err
		}
		report.Summary = *summary
		return nil
	})

	g.Go(func() error {
		points, err := s.fetchTimeseries(gctx, restaurantID, window, eventFrom, eventTo)
		if err != nil {
			return err
		}
		report.Timeseries = points
		return nil
	})

	g.Go(func() error {
		dishes, err := s.fetchTopDishes(gctx, restaurantID, window, eventFrom, eventTo, top, lang)
		if err != nil {
			return err
		}
		report.TopDishes = dishes
		return nil
	})

	g.Go(func() error {
		sections, err := s.fetchTopSections(gctx, restaurantID, window, eventFrom, eventTo, top, lang)
		if err != nil {
			return err
		}
		report.TopSections = sections
		return nil
	})

	breakdowns := []struct {
		column stores.BreakdownColumn
		target *[]models.BreakdownEntry
	}{
		{stores.ByDeviceType, &report.Devices},
		{stores.ByOSName, &report.OperatingSystems},
		{stores.ByBrowser, &report.Browsers},
		{stores.ByLanguageCode, &report.Languages},
		{stores.ByCountry, &report.Countries},
		{stores.ByCity, &report.Cities},
		{stores.ByNetworkType, &report.Networks},
	}
	for _, b := range breakdowns {
		b := b
		g.Go(func() error {
			entries, err := s.events.SessionBreakdown(gctx, restaurantID, b.column, eventFrom, eventTo)
			if err != nil {
				return err
			}
			*b.target = entries
			return nil
		})
	}

	g.Go(func() error {
		installed, total, err := s.events.PWACounts(gctx, restaurantID, eventFrom, eventTo)
		if err != nil {
			return err
		}
		report.PWA = models.PWAStats{
			Installed: installed,
			Total:     total,
			Rate:      ratio(installed, total),
		}
		return nil
	})

	g.Go(func() error {
		points, err := s.events.HourlyTraffic(gctx, restaurantID, eventFrom, eventTo)
		if err != nil {
			return err
		}
		report.HourlyTraffic = points
		return nil
	})

	g.Go(func() error {
		flows, err := s.rollups.Flows(gctx, restaurantID, window.From, window.To, top)
		if err != nil {
			return err
		}
		report.Flows = flows
		return nil
	})

	g.Go(func() error {
		entries, err := s.events.QRAttribution(gctx, restaurantID, eventFrom, eventTo)
		if err != nil {
			return err
		}
		report.QRAttribution = entries
		return nil
	})

	g.Go(func() error {
		cart, err := s.rollups.CartMetrics(gctx, restaurantID, window.From, window.To)
		if err != nil {
			return err
		}
		if cart == nil {
			cart = &models.CartMetrics{}
		}
		cart.ConversionRate = ratio(cart.CartsCompleted, cart.CartsCreated)
		report.Cart = *cart
		return nil
	})

	if err := g.Wait(); err != nil {
		if _, ok := svcerrors.AsServiceError(err); ok {
			return nil, err
		}
		return nil, errInternalQueryFailed(err)
	}

	report.Funnel = buildFunnel(report.Summary)
	return report, nil
}

// fetchSummary prefers the daily_analytics rollup and re-derives the
// counters from sessions/events rows when no rollup days exist in range.
func (s *reportService) fetchSummary(ctx context.Context, restaurantID string, window dateWindow, eventFrom, eventTo time.Time) (*models.Summary, error) {
	chain := queryChain[*models.Summary]{
		func(ctx context.Context) (*models.Summary, bool, error) {
			summary, err := s.rollups.Summary(ctx, restaurantID, window.From, window.To)
			return summary, summary != nil, err
		},
		func(ctx context.Context) (*models.Summary, bool, error) {
			metricRawFallbackTotal.WithLabelValues("summary").Inc()
			summary, err := s.events.RawSummary(ctx, restaurantID, eventFrom, eventTo)
			return summary, summary != nil, err
		},
	}
	summary, err := chain.fetch(ctx)
	if err != nil {
		return nil, err
	}
	if summary == nil {
		summary = &models.Summary{}
	}
	return summary, nil
}

func (s *reportService) fetchTimeseries(ctx context.Context, restaurantID string, window dateWindow, eventFrom, eventTo time.Time) ([]models.DailyPoint, error) {
	chain := queryChain[[]models.DailyPoint]{
		func(ctx context.Context) ([]models.DailyPoint, bool, error) {
			points, err := s.rollups.Timeseries(ctx, restaurantID, window.From, window.To)
			return points, len(points) > 0, err
		},
		func(ctx context.Context) ([]models.DailyPoint, bool, error) {
			metricRawFallbackTotal.WithLabelValues("timeseries").Inc()
			points, err := s.events.RawTimeseries(ctx, restaurantID, eventFrom, eventTo)
			return points, len(points) > 0, err
		},
	}
	points, err := chain.fetch(ctx)
	if err != nil {
		return nil, err
	}
	if points == nil {
		points = []models.DailyPoint{}
	}
	return points, nil
}

func (s *reportService) fetchTopDishes(ctx context.Context, restaurantID string, window dateWindow, eventFrom, eventTo time.Time, top int, lang string) ([]models.EntityStat, error) {
	chain := queryChain[[]models.EntityStat]{
		func(ctx context.Context) ([]models.EntityStat, bool, error) {
			stats, err := s.rollups.TopDishes(ctx, restaurantID, window.From, window.To, top)
			return stats, len(stats) > 0, err
		},
		func(ctx context.Context) ([]models.EntityStat, bool, error) {
			metricRawFallbackTotal.WithLabelValues("top_dishes").Inc()
			stats, err := s.events.RawTopDishes(ctx, restaurantID, eventFrom, eventTo, top)
			return stats, len(stats) > 0, err
		},
	}
	stats, err := chain.fetch(ctx)
	if err != nil {
		return nil, err
	}
	return s.resolveNames(ctx, stats, lang, s.translations.DishNames)
}

func (s *reportService) fetchTopSections(ctx context.Context, restaurantID string, window dateWindow, eventFrom, eventTo time.Time, top int, lang string) ([]models.EntityStat, error) {
	chain := queryChain[[]models.EntityStat]{
		func(ctx context.Context) ([]models.EntityStat, bool, error) {
			stats, err := s.rollups.TopSections(ctx, restaurantID, window.From, window.To, top)
			return stats, len(stats) > 0, err
		},
		func(ctx context.Context) ([]models.EntityStat, bool, error) {
			metricRawFallbackTotal.WithLabelValues("top_sections").Inc()
			stats, err := s.events.RawTopSections(ctx, restaurantID, eventFrom, eventTo, top)
			return stats, len(stats) > 0, err
		},
	}
	stats, err := chain.fetch(ctx)
	if err != nil {
		return nil, err
	}
	return s.resolveNames(ctx, stats, lang, s.translations.SectionNames)
}

// resolveNames attaches display names to a top-N result, defaulting to the
// raw id when no translation exists for the requested language.
func (s *reportService) resolveNames(ctx context.Context, stats []models.EntityStat, lang string, lookup func(context.Context, []string, string) (map[string]string, error)) ([]models.EntityStat, error) {
	if len(stats) == 0 {
		return []models.EntityStat{}, nil
	}

	ids := make([]string, 0, len(stats))
	for _, stat := range stats {
		ids = append(ids, stat.ID)
	}
	names, err := lookup(ctx, ids, lang)
	if err != nil {
		return nil, err
	}
	for i := range stats {
		if name, ok := names[stats[i].ID]; ok && name != "" {
			stats[i].Name = name
		} else {
			stats[i].Name = stats[i].ID
		}
	}
	return stats, nil
}

// buildFunnel derives the ordered engagement stages from the summary
// counters. Dropoff is the percentage decrease from the previous stage.
func buildFunnel(summary models.Summary) []models.FunnelStage {
	stages := []models.FunnelStage{
		{Stage: "sessions", Count: summary.Sessions},
		{Stage: "dish_views", Count: summary.DishViews},
		{Stage: "favorites", Count: summary.Favorites},
	}
	for i := 1; i < len(stages); i++ {
		prev := stages[i-1].Count
		if prev > 0 {
			stages[i].DropoffPct = float64(prev-stages[i].Count) / float64(prev) * 100
		}
	}
	return stages
}

// ratio returns part/total, with the convention that a zero denominator
// yields 0 rather than an error or NaN.
func ratio(part, total int64) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total)
}
