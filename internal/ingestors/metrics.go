package ingestors

import (
	"menu-analytics/internal/shared/metrics"
)

var (
	// metricSessionsStartedTotal counts session-start calls by outcome.
	metricSessionsStartedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubIngestion,
			Name:      "sessions_started_total",
		},
		[]string{metrics.FieldErrorCode},
	)

	// metricSessionsEndedTotal counts session-end calls by outcome.
	// Idempotent repeats count as success.
	metricSessionsEndedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubIngestion,
			Name:      "sessions_ended_total",
		},
		[]string{metrics.FieldErrorCode},
	)

	// metricEventsIngestedTotal counts individual events appended to the
	// event log by outcome.
	metricEventsIngestedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubIngestion,
			Name:      "events_ingested_total",
		},
		[]string{metrics.FieldErrorCode},
	)
)
