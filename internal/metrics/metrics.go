// Package metrics provides Prometheus metrics for the organizer.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dendrascience/dendra-file-organizer/index"
)

// Metrics holds the organizer collectors. It satisfies organizer.Recorder.
type Metrics struct {
	gatherer prometheus.Gatherer

	operationsTotal   *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec

	indexCapacity   prometheus.Gauge
	indexLive       prometheus.Gauge
	indexTombstones prometheus.Gauge
	indexCollisions prometheus.Gauge
	indexRehashes   prometheus.Gauge
	indexLoadFactor prometheus.Gauge
}

// New registers the organizer collectors with reg. A nil reg uses a fresh
// registry, which keeps tests and multiple organizers independent.
func New(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	factory := promauto.With(reg)

	return &Metrics{
		gatherer: reg,

		operationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "organizer_operations_total",
				Help: "Total organizer operations by result",
			},
			[]string{"operation", "status"},
		),
		operationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "organizer_operation_duration_seconds",
				Help:    "Organizer operation duration in seconds",
				Buckets: prometheus.ExponentialBuckets(1e-6, 4, 10),
			},
			[]string{"operation"},
		),

		indexCapacity: factory.NewGauge(prometheus.GaugeOpts{
			Name: "organizer_index_capacity",
			Help: "Number of slots in the filename index",
		}),
		indexLive: factory.NewGauge(prometheus.GaugeOpts{
			Name: "organizer_index_live_entries",
			Help: "Number of live entries in the filename index",
		}),
		indexTombstones: factory.NewGauge(prometheus.GaugeOpts{
			Name: "organizer_index_tombstones",
			Help: "Number of tombstoned slots awaiting a rehash",
		}),
		indexCollisions: factory.NewGauge(prometheus.GaugeOpts{
			Name: "organizer_index_collisions",
			Help: "Placements that needed more than one probe since the last rehash",
		}),
		indexRehashes: factory.NewGauge(prometheus.GaugeOpts{
			Name: "organizer_index_rehashes",
			Help: "Number of times the filename index has grown",
		}),
		indexLoadFactor: factory.NewGauge(prometheus.GaugeOpts{
			Name: "organizer_index_load_factor",
			Help: "Live entries divided by capacity",
		}),
	}
}

// ObserveOperation records an organizer operation.
func (m *Metrics) ObserveOperation(op string, elapsed time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	m.operationsTotal.WithLabelValues(op, status).Inc()
	m.operationDuration.WithLabelValues(op).Observe(elapsed.Seconds())
}

// ObserveIndex publishes the current index counters.
func (m *Metrics) ObserveIndex(stats index.Stats) {
	m.indexCapacity.Set(float64(stats.Capacity))
	m.indexLive.Set(float64(stats.Live))
	m.indexTombstones.Set(float64(stats.Tombstones))
	m.indexCollisions.Set(float64(stats.Collisions))
	m.indexRehashes.Set(float64(stats.Rehashes))
	m.indexLoadFactor.Set(stats.LoadFactor)
}

// Handler returns the Prometheus metrics HTTP handler for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
