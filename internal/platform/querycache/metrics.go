package querycache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts cache activity per entity group. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	hits          *prometheus.CounterVec
	misses        *prometheus.CounterVec
	fetchErrors   *prometheus.CounterVec
	staleServed   *prometheus.CounterVec
	invalidations *prometheus.CounterVec
	rollbacks     *prometheus.CounterVec
	mutations     *prometheus.CounterVec
}

// NewMetrics registers the cache counters on reg under namespace. A nil reg
// uses the default registerer.
func NewMetrics(reg prometheus.Registerer, namespace string) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = "mesaya"
	}
	factory := promauto.With(reg)
	counter := func(name, help string, labels ...string) *prometheus.CounterVec {
		return factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "querycache",
			Name:      name,
			Help:      help,
		}, labels)
	}
	return &Metrics{
		hits:          counter("hits_total", "Reads served from a fresh cache entry.", "group"),
		misses:        counter("misses_total", "Reads that triggered a backend fetch.", "group"),
		fetchErrors:   counter("fetch_errors_total", "Backend fetches that failed.", "group"),
		staleServed:   counter("stale_served_total", "Failed fetches answered with the last cached value.", "group"),
		invalidations: counter("invalidations_total", "Group invalidations.", "group"),
		rollbacks:     counter("rollbacks_total", "Optimistic updates reverted after a failed mutation.", "group"),
		mutations:     counter("mutations_total", "Mutations sent to the backend by outcome.", "group", "outcome"),
	}
}

func (m *Metrics) hit(group string) {
	if m != nil {
		m.hits.WithLabelValues(group).Inc()
	}
}

func (m *Metrics) miss(group string) {
	if m != nil {
		m.misses.WithLabelValues(group).Inc()
	}
}

func (m *Metrics) fetchFailed(group string) {
	if m != nil {
		m.fetchErrors.WithLabelValues(group).Inc()
	}
}

func (m *Metrics) servedStale(group string) {
	if m != nil {
		m.staleServed.WithLabelValues(group).Inc()
	}
}

func (m *Metrics) invalidated(group string) {
	if m != nil {
		m.invalidations.WithLabelValues(group).Inc()
	}
}

func (m *Metrics) rollback(group string) {
	if m != nil {
		m.rollbacks.WithLabelValues(group).Inc()
	}
}

func (m *Metrics) mutation(group, outcome string) {
	if m != nil {
		m.mutations.WithLabelValues(group, outcome).Inc()
	}
}
