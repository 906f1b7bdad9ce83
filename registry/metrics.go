package registry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks construction-time Prometheus metrics for Load.
// There is deliberately no evaluation-time metric: Matcher.Evaluate is not
// instrumented, to keep the hot path free of any observability overhead.
//
// All metrics are prefixed with the "xuma_registry" namespace/subsystem.
type Metrics struct {
	// LoadsTotal counts Load calls by outcome ("ok" or "error").
	LoadsTotal *prometheus.CounterVec

	// LoadDuration tracks Load latency.
	LoadDuration prometheus.Histogram

	// TreeDepth tracks the depth of successfully built matcher trees.
	TreeDepth prometheus.Histogram

	// LimitRejections counts Load calls rejected by a width/length limit,
	// by limit name (field_matchers, predicates, pattern_length,
	// regex_pattern_length). Depth rejections from xuma.NewMatcher are not
	// counted here.
	LimitRejections *prometheus.CounterVec
}

// NewMetrics constructs and auto-registers Load metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	return &Metrics{
		LoadsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "xuma",
				Subsystem: "registry",
				Name:      "loads_total",
				Help:      "Total number of Registry.Load calls by outcome",
			},
			[]string{"outcome"},
		),
		LoadDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "xuma",
				Subsystem: "registry",
				Name:      "load_duration_seconds",
				Help:      "Time to load a MatcherConfig into a Matcher",
				Buckets:   prometheus.ExponentialBuckets(0.00001, 2, 12),
			},
		),
		TreeDepth: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "xuma",
				Subsystem: "registry",
				Name:      "tree_depth",
				Help:      "Depth of successfully built matcher trees",
				Buckets:   prometheus.LinearBuckets(1, 2, 16),
			},
		),
		LimitRejections: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "xuma",
				Subsystem: "registry",
				Name:      "limit_rejections_total",
				Help:      "Total number of Load calls rejected by a construction-time limit",
			},
			[]string{"limit"},
		),
	}
}

// RecordLoad records the outcome and duration of a single Load call.
func (m *Metrics) RecordLoad(ok bool, duration time.Duration) {
	outcome := "ok"
	if !ok {
		outcome = "error"
	}
	m.LoadsTotal.WithLabelValues(outcome).Inc()
	m.LoadDuration.Observe(duration.Seconds())
}

// RecordDepth records the depth of a successfully built matcher tree.
func (m *Metrics) RecordDepth(depth int) {
	m.TreeDepth.Observe(float64(depth))
}

// RecordLimitRejection records that Load rejected a config due to limit.
func (m *Metrics) RecordLimitRejection(limit string) {
	m.LimitRejections.WithLabelValues(limit).Inc()
}
