// Package metrics holds the prometheus collectors exported on /metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics is the set of collectors registered on one registry.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	PathSearchesTotal   *prometheus.CounterVec
	PathSteps           prometheus.Histogram
	Explanations        *prometheus.CounterVec
	GraphTeams          prometheus.Gauge
	GraphReloadsTotal   *prometheus.CounterVec
	EventsDroppedTotal  prometheus.Counter
}

// New registers the collectors on a fresh registry along with the Go and
// process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,

		HTTPRequestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "beatpath_http_requests_total",
				Help: "Total number of HTTP requests processed",
			},
			[]string{"method", "path", "status"},
		),

		// Buckets span graph lookups (sub-millisecond) up to LLM fallbacks.
		HTTPRequestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "beatpath_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30},
			},
			[]string{"method", "path"},
		),

		PathSearchesTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "beatpath_path_searches_total",
				Help: "Path lookups by outcome",
			},
			[]string{"outcome"},
		),

		PathSteps: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "beatpath_path_steps",
			Help:    "Number of games in found chains",
			Buckets: prometheus.LinearBuckets(1, 1, 10),
		}),

		Explanations: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "beatpath_explanations_total",
				Help: "Fallback explanations by result",
			},
			[]string{"result"},
		),

		GraphTeams: f.NewGauge(prometheus.GaugeOpts{
			Name: "beatpath_graph_teams",
			Help: "Number of teams in the loaded graph",
		}),

		GraphReloadsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "beatpath_graph_reloads_total",
				Help: "Graph reloads by result",
			},
			[]string{"result"},
		),

		EventsDroppedTotal: f.NewCounter(prometheus.CounterOpts{
			Name: "beatpath_events_dropped_total",
			Help: "Search events dropped because the publish queue was full",
		}),
	}
}

// ObserveRequest records one HTTP request.
func (m *Metrics) ObserveRequest(method, path string, status int, elapsed time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(elapsed.Seconds())
}

// ObserveSearch records one path lookup. steps is ignored unless the outcome
// is a found path.
func (m *Metrics) ObserveSearch(outcome string, steps int) {
	m.PathSearchesTotal.WithLabelValues(outcome).Inc()
	switch outcome {
	case "path":
		m.PathSteps.Observe(float64(steps))
	case "fallback":
		m.Explanations.WithLabelValues("ok").Inc()
	case "explain_error":
		m.Explanations.WithLabelValues("error").Inc()
	}
}

// ObserveReload records a graph reload and the resulting team count.
func (m *Metrics) ObserveReload(teams int, err error) {
	if err != nil {
		m.GraphReloadsTotal.WithLabelValues("error").Inc()
		return
	}
	m.GraphReloadsTotal.WithLabelValues("ok").Inc()
	m.GraphTeams.Set(float64(teams))
}

// Handler serves the registry in the prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
