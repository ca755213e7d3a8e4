// Package metrics records Prometheus metrics for score fetching and reporting.
//
// A command-line run is short lived, so nothing is served over HTTP. The
// registry can instead be dumped to a file in the text exposition format for
// the node_exporter textfile collector.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Fetch outcomes used as the "outcome" label value.
const (
	OutcomeSuccess   = "success"
	OutcomeNotFound  = "not_found"
	OutcomeTransport = "transport_error"
	OutcomeDecode    = "decode_error"
)

// DefaultNamespace prefixes metric names unless WithNamespace overrides it.
const DefaultNamespace = "territoriali"

const subsystem = "scores"

// fetchBuckets spans remote API round trips, in seconds.
var fetchBuckets = []float64{.025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30}

// Manager owns the metrics of one run. A nil *Manager is valid and records nothing.
type Manager struct {
	namespace string
	registry  *prometheus.Registry

	fetchRequests *prometheus.CounterVec
	fetchDuration prometheus.Histogram
	tasksFetched  prometheus.Counter
	usersReported prometheus.Gauge
}

// NewManager creates a metrics manager on its own private registry.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace: DefaultNamespace,
		registry:  prometheus.NewRegistry(),
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.fetchRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: subsystem,
			Name:      "fetch_requests_total",
			Help:      "Score requests issued, by outcome",
		},
		[]string{"outcome"},
	)

	m.fetchDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: subsystem,
		Name:      "fetch_duration_seconds",
		Help:      "Round trip time of score requests in seconds",
		Buckets:   fetchBuckets,
	})

	m.tasksFetched = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: subsystem,
		Name:      "tasks_fetched_total",
		Help:      "Task records decoded from score responses",
	})

	m.usersReported = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: subsystem,
		Name:      "users_reported",
		Help:      "Users included in the last rendered report",
	})
}

// RecordFetch records one score request with its outcome and duration.
func (m *Manager) RecordFetch(outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.fetchRequests.WithLabelValues(outcome).Inc()
	m.fetchDuration.Observe(seconds)
}

// RecordTasks adds n decoded task records.
func (m *Manager) RecordTasks(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.tasksFetched.Add(float64(n))
}

// SetUsersReported sets the number of users in the rendered report.
func (m *Manager) SetUsersReported(n int) {
	if m == nil {
		return
	}
	m.usersReported.Set(float64(n))
}

// Registry returns the registry the metrics live on.
func (m *Manager) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// WriteTextfile writes all metrics to path in the Prometheus text format.
func (m *Manager) WriteTextfile(path string) error {
	if m == nil || path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}
	return nil
}
