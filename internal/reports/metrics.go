package reports

import (
	"menu-analytics/internal/shared/metrics"
)

var (
	// metricReportsBuiltTotal counts report builds by outcome.
	metricReportsBuiltTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubReports,
			Name:      "reports_built_total",
		},
		[]string{metrics.FieldErrorCode},
	)

	// metricRawFallbackTotal counts how often a metric family fell back
	// from the rollup tables to raw event rows. A steadily high rate for a
	// family means its rollup job is behind or not populating.
	metricRawFallbackTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubReports,
			Name:      "raw_fallback_total",
		},
		[]string{"metric_family"},
	)

	// metricReportDuration observes end-to-end report build latency.
	metricReportDuration = metrics.NewHistogramVec(
		metrics.HistogramOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubReports,
			Name:      "report_build_duration_seconds",
			Buckets:   metrics.DefBuckets,
		},
		[]string{metrics.FieldErrorCode},
	)
)
