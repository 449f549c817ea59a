// Package metric exposes the service's Prometheus instrumentation:
// harvest request counters and latency, export activity, and dataset
// refresh outcomes.
package metric

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all service-level collectors.
type Metrics struct {
	HarvestRequests *prometheus.CounterVec
	HarvestDuration *prometheus.HistogramVec
	ExportRequests  *prometheus.CounterVec
	ExportDuration  prometheus.Histogram
	RefreshRuns     *prometheus.CounterVec
	RefreshDuration prometheus.Histogram
	DatasetTriples  prometheus.Gauge
	DatasetAge      prometheus.Gauge
	EntityCount     prometheus.Gauge
}

// NewMetrics builds all collectors, unregistered.
func NewMetrics() *Metrics {
	return &Metrics{
		HarvestRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "lodserver",
				Subsystem: "harvest",
				Name:      "requests_total",
				Help:      "OAI-PMH requests by verb and outcome",
			},
			[]string{"verb", "outcome"},
		),
		HarvestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "lodserver",
				Subsystem: "harvest",
				Name:      "duration_seconds",
				Help:      "OAI-PMH request handling duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"verb"},
		),
		ExportRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "lodserver",
				Subsystem: "export",
				Name:      "requests_total",
				Help:      "RDF export invocations by format and outcome",
			},
			[]string{"format", "outcome"},
		),
		ExportDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "lodserver",
				Subsystem: "export",
				Name:      "duration_seconds",
				Help:      "RDF export duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
		),
		RefreshRuns: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "lodserver",
				Subsystem: "refresh",
				Name:      "runs_total",
				Help:      "Dataset refresh runs by outcome",
			},
			[]string{"outcome"},
		),
		RefreshDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "lodserver",
				Subsystem: "refresh",
				Name:      "duration_seconds",
				Help:      "Dataset rebuild and upload duration in seconds",
				Buckets:   []float64{0.1, 0.5, 1, 5, 15, 60, 300},
			},
		),
		DatasetTriples: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "lodserver",
				Subsystem: "dataset",
				Name:      "triples",
				Help:      "Triple count of the active dataset snapshot",
			},
		),
		DatasetAge: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "lodserver",
				Subsystem: "dataset",
				Name:      "last_refresh_timestamp_seconds",
				Help:      "Unix time of the last successful dataset refresh",
			},
		),
		EntityCount: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "lodserver",
				Subsystem: "entities",
				Name:      "loaded",
				Help:      "Entities currently loaded from the repositories",
			},
		),
	}
}

// Registry couples the collectors with a dedicated Prometheus registry
// so tests never collide on the global default.
type Registry struct {
	Metrics *Metrics
	reg     *prometheus.Registry
}

// NewRegistry builds a registry with all service collectors plus the
// Go runtime and process collectors.
func NewRegistry() *Registry {
	m := NewMetrics()
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		m.HarvestRequests,
		m.HarvestDuration,
		m.ExportRequests,
		m.ExportDuration,
		m.RefreshRuns,
		m.RefreshDuration,
		m.DatasetTriples,
		m.DatasetAge,
		m.EntityCount,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return &Registry{Metrics: m, reg: reg}
}

// Handler serves the registry in the Prometheus text format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}

// Gatherer exposes the underlying registry for tests.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.reg
}
