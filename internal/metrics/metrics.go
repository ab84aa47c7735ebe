package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	StatusSuccess = "success"
	StatusFailure = "failure"
	StatusInvalid = "invalid"
	StatusLimited = "limited"
)

// Metrics holds the application collectors. Each instance owns its registry so
// tests can build as many as they need.
type Metrics struct {
	registry *prometheus.Registry

	Registrations *prometheus.CounterVec
	Logins        *prometheus.CounterVec
	RecordAppends *prometheus.CounterVec

	StorageOperations *prometheus.CounterVec
	StorageLatency    *prometheus.HistogramVec
}

func New(namespace string) *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,

		Registrations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "account_registrations_total",
			Help:      "Total number of account registration attempts",
		}, []string{"status"}),
		Logins: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "logins_total",
			Help:      "Total number of login attempts",
		}, []string{"status"}),
		RecordAppends: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "record_appends_total",
			Help:      "Total number of record append attempts",
		}, []string{"kind", "status"}),

		StorageOperations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "storage",
			Name:      "operations_total",
			Help:      "Total number of key-value storage operations",
		}, []string{"operation", "status"}),
		StorageLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "storage",
			Name:      "operation_duration_seconds",
			Help:      "Duration of key-value storage operations",
			Buckets:   []float64{.0005, .001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),
	}
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func StatusFor(err error) string {
	if err != nil {
		return StatusFailure
	}
	return StatusSuccess
}
