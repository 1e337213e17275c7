package workflow

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exposes Prometheus collectors that report workflow activity.
type Metrics struct {
	nodeDuration *prometheus.HistogramVec
	nodeRuns     *prometheus.CounterVec
	runs         *prometheus.CounterVec
	ratings      prometheus.Histogram
}

// MustNewMetrics registers the workflow collectors with reg. Collectors that
// are already registered are reused, so building several orchestrators in one
// process does not panic.
func MustNewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		nodeDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "gitgrant",
				Subsystem: "workflow",
				Name:      "node_duration_seconds",
				Help:      "Time spent executing a workflow node.",
				Buckets:   []float64{0.01, 0.1, 0.5, 1, 5, 15, 30, 60, 120, 300},
			},
			[]string{"node", "status"},
		),
		nodeRuns: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "gitgrant",
				Subsystem: "workflow",
				Name:      "node_executions_total",
				Help:      "Number of workflow node executions.",
			},
			[]string{"node", "status"},
		),
		runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "gitgrant",
				Subsystem: "workflow",
				Name:      "runs_total",
				Help:      "Number of workflow runs by starting action and outcome.",
			},
			[]string{"action", "outcome"},
		),
		ratings: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "gitgrant",
				Subsystem: "workflow",
				Name:      "issue_rating",
				Help:      "Difficulty ratings assigned to issues.",
				Buckets:   prometheus.LinearBuckets(10, 10, 10),
			},
		),
	}

	m.nodeDuration = register(reg, m.nodeDuration)
	m.nodeRuns = register(reg, m.nodeRuns)
	m.runs = register(reg, m.runs)
	m.ratings = register(reg, m.ratings)
	return m
}

func register[T prometheus.Collector](reg prometheus.Registerer, c T) T {
	if err := reg.Register(c); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			if existing, ok := already.ExistingCollector.(T); ok {
				return existing
			}
		}
		panic(err)
	}
	return c
}

func (m *Metrics) observeNode(node string, err error, duration time.Duration) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.nodeDuration.WithLabelValues(node, status).Observe(duration.Seconds())
	m.nodeRuns.WithLabelValues(node, status).Inc()
}

func (m *Metrics) observeRun(action, outcome string) {
	if m == nil {
		return
	}
	m.runs.WithLabelValues(action, outcome).Inc()
}

func (m *Metrics) observeRating(rating int) {
	if m == nil {
		return
	}
	m.ratings.Observe(float64(rating))
}
