package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "lqdash",
		Subsystem: "pipeline",
		Name:      "runs_total",
		Help:      "Total aggregation passes",
	}, []string{"domain", "status"})

	RunDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "lqdash",
		Subsystem: "pipeline",
		Name:      "run_duration_seconds",
		Help:      "Aggregation pass duration",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
	}, []string{"domain"})

	RecordsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "lqdash",
		Subsystem: "pipeline",
		Name:      "records_total",
		Help:      "Records read from upstream",
	}, []string{"domain"})

	MalformedRecords = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "lqdash",
		Subsystem: "pipeline",
		Name:      "malformed_records_total",
		Help:      "Records excluded from bucketed output",
	}, []string{"domain"})

	MetadataFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "lqdash",
		Subsystem: "metadata",
		Name:      "fallbacks_total",
		Help:      "Token metadata lookups that fell back to defaults",
	})

	PriceFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "lqdash",
		Subsystem: "price",
		Name:      "failures_total",
		Help:      "Price fetches that failed; valuations degrade to zero",
	})
)
