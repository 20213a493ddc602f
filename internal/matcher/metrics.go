package matcher

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	recordsProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "reelmatch_records_processed_total",
		Help: "External records examined by the match engine.",
	})
	recordsMatched = promauto.NewCounter(prometheus.CounterOpts{
		Name: "reelmatch_records_matched_total",
		Help: "External records resolved to a reference movie.",
	})
	recordsSkipped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "reelmatch_records_skipped_total",
		Help: "External records dropped without a mapping.",
	})
	runDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "reelmatch_match_run_duration_seconds",
		Help:    "Wall-clock duration of complete match runs.",
		Buckets: prometheus.ExponentialBuckets(0.01, 4, 10),
	})
)
