// Package metrics provides Prometheus metrics for catalog sync, image
// resolution and background work.
package metrics

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Image resolution outcomes.
const (
	ResolutionCacheHit           = "cache_hit"
	ResolutionDownloaded         = "downloaded"
	ResolutionFallbackDownloaded = "fallback_downloaded"
	ResolutionNotFound           = "not_found"
)

// Metrics holds every collector exposed at /metrics. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	ImageResolutionsTotal *prometheus.CounterVec // by outcome
	WikiLookupsTotal      *prometheus.CounterVec // by outcome: found, not_found, error
	SyncDuration          prometheus.Histogram
	BreedsSynced          prometheus.Gauge
	BreedsRemoved         prometheus.Gauge
	SightingsRecorded     prometheus.Counter
	TasksProcessedTotal   *prometheus.CounterVec // by queue, status

	registry *prometheus.Registry
}

// New creates the metrics and registers them, along with the Go and process
// collectors, on a fresh registry.
func New() (*Metrics, error) {
	registry := prometheus.NewRegistry()
	m := &Metrics{registry: registry}
	m.initMetrics()

	if err := registry.Register(m); err != nil {
		return nil, fmt.Errorf("failed to register metrics: %w", err)
	}
	if err := registry.Register(collectors.NewGoCollector()); err != nil {
		return nil, fmt.Errorf("failed to register go collector: %w", err)
	}
	if err := registry.Register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{})); err != nil {
		return nil, fmt.Errorf("failed to register process collector: %w", err)
	}
	return m, nil
}

func (m *Metrics) initMetrics() {
	m.ImageResolutionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dogspotter_image_resolutions_total",
			Help: "Breed image resolutions by outcome",
		},
		[]string{"outcome"}, // cache_hit, downloaded, fallback_downloaded, not_found
	)

	m.WikiLookupsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dogspotter_wikipedia_lookups_total",
			Help: "Wikipedia page image lookups by outcome",
		},
		[]string{"outcome"},
	)

	m.SyncDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "dogspotter_catalog_sync_duration_seconds",
			Help:    "Time taken to synchronize the breed catalog",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1.0, 5.0},
		},
	)

	m.BreedsSynced = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "dogspotter_catalog_breeds_synced",
		Help: "Breeds written by the last catalog sync",
	})

	m.BreedsRemoved = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "dogspotter_catalog_breeds_removed",
		Help: "Stale breeds removed by the last catalog sync",
	})

	m.SightingsRecorded = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "dogspotter_sightings_recorded_total",
		Help: "Sightings recorded since start",
	})

	m.TasksProcessedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dogspotter_tasks_processed_total",
			Help: "Background tasks processed by queue and status",
		},
		[]string{"queue", "status"}, // status: success, error
	)
}

// Describe implements prometheus.Collector.
func (m *Metrics) Describe(ch chan<- *prometheus.Desc) {
	m.ImageResolutionsTotal.Describe(ch)
	m.WikiLookupsTotal.Describe(ch)
	m.SyncDuration.Describe(ch)
	m.BreedsSynced.Describe(ch)
	m.BreedsRemoved.Describe(ch)
	m.SightingsRecorded.Describe(ch)
	m.TasksProcessedTotal.Describe(ch)
}

// Collect implements prometheus.Collector.
func (m *Metrics) Collect(ch chan<- prometheus.Metric) {
	m.ImageResolutionsTotal.Collect(ch)
	m.WikiLookupsTotal.Collect(ch)
	m.SyncDuration.Collect(ch)
	m.BreedsSynced.Collect(ch)
	m.BreedsRemoved.Collect(ch)
	m.SightingsRecorded.Collect(ch)
	m.TasksProcessedTotal.Collect(ch)
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.HandlerFor(prometheus.NewRegistry(), promhttp.HandlerOpts{})
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) RecordResolution(outcome string) {
	if m == nil {
		return
	}
	m.ImageResolutionsTotal.WithLabelValues(outcome).Inc()
}

func (m *Metrics) RecordWikiLookup(outcome string) {
	if m == nil {
		return
	}
	m.WikiLookupsTotal.WithLabelValues(outcome).Inc()
}

// RecordSync stores the outcome of a catalog sync.
func (m *Metrics) RecordSync(upserted, removed int, duration time.Duration) {
	if m == nil {
		return
	}
	m.SyncDuration.Observe(duration.Seconds())
	m.BreedsSynced.Set(float64(upserted))
	m.BreedsRemoved.Set(float64(removed))
}

func (m *Metrics) RecordSighting() {
	if m == nil {
		return
	}
	m.SightingsRecorded.Inc()
}

func (m *Metrics) RecordTask(queue string, err error) {
	if m == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	m.TasksProcessedTotal.WithLabelValues(queue, status).Inc()
}
