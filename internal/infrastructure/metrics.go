package infrastructure

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Pipeline metrics exposed at /metrics by the results server. The batch
// binary increments them too so a scrape of a long-lived web process and
// the per-run log lines stay consistent in naming.
var (
	PipelineRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "geopulse",
		Name:      "pipeline_runs_total",
		Help:      "Completed pipeline runs by outcome.",
	}, []string{"outcome"})

	RowsParsedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "geopulse",
		Name:      "source_rows_parsed_total",
		Help:      "Source rows successfully parsed, by source.",
	}, []string{"source"})

	RowsDroppedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "geopulse",
		Name:      "source_rows_dropped_total",
		Help:      "Source rows dropped as unparseable, by source.",
	}, []string{"source"})

	UndefinedCorrelationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "geopulse",
		Name:      "undefined_correlations_total",
		Help:      "Correlation results reported undefined for lack of samples.",
	})

	PipelineDurationSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "geopulse",
		Name:      "pipeline_duration_seconds",
		Help:      "Wall-clock duration of full pipeline runs.",
		Buckets:   prometheus.ExponentialBuckets(0.1, 2, 12),
	})
)
