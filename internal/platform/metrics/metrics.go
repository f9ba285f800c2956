package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Lookup outcomes.
const (
	OutcomeFound = "found"
	OutcomeEmpty = "empty"
)

// Pipeline stages.
const (
	StageInfo   = "info"
	StageSearch = "search"
	StageDetail = "detail"
)

// Metrics holds Prometheus counters and gauges for the add-on.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry      *prometheus.Registry
	requestsTotal prometheus.Counter
	errorsTotal   prometheus.Counter
	lookupsTotal  *prometheus.CounterVec
	cacheHits     *prometheus.CounterVec
	cacheMisses   *prometheus.CounterVec
	stageFailures *prometheus.CounterVec
	cacheEntries  prometheus.Gauge
}

// New creates and registers Prometheus metrics on a private registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	requestsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "subtitles_http_requests_total",
		Help: "Total number of HTTP requests received",
	})
	errorsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "subtitles_http_errors_total",
		Help: "Total number of HTTP responses with error status (4xx or 5xx)",
	})
	lookupsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "subtitles_lookups_total",
		Help: "Subtitle lookups by outcome",
	}, []string{"outcome"})
	cacheHits := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "subtitles_cache_hits_total",
		Help: "Cache hits by pipeline stage",
	}, []string{"stage"})
	cacheMisses := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "subtitles_cache_misses_total",
		Help: "Cache misses by pipeline stage",
	}, []string{"stage"})
	stageFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "subtitles_stage_failures_total",
		Help: "Soft failures by pipeline stage",
	}, []string{"stage"})
	cacheEntries := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "subtitles_cache_entries",
		Help: "Number of entries held by the lookup cache, stale ones included",
	})

	registry.MustRegister(
		requestsTotal,
		errorsTotal,
		lookupsTotal,
		cacheHits,
		cacheMisses,
		stageFailures,
		cacheEntries,
	)

	return &Metrics{
		registry:      registry,
		requestsTotal: requestsTotal,
		errorsTotal:   errorsTotal,
		lookupsTotal:  lookupsTotal,
		cacheHits:     cacheHits,
		cacheMisses:   cacheMisses,
		stageFailures: stageFailures,
		cacheEntries:  cacheEntries,
	}
}

// IncRequests increments the total request counter.
func (m *Metrics) IncRequests() {
	if m == nil {
		return
	}
	m.requestsTotal.Inc()
}

// IncErrors increments the errors counter.
func (m *Metrics) IncErrors() {
	if m == nil {
		return
	}
	m.errorsTotal.Inc()
}

// IncLookup counts a finished lookup with the given outcome.
func (m *Metrics) IncLookup(outcome string) {
	if m == nil {
		return
	}
	m.lookupsTotal.WithLabelValues(outcome).Inc()
}

// IncCacheHit counts a cache hit for stage.
func (m *Metrics) IncCacheHit(stage string) {
	if m == nil {
		return
	}
	m.cacheHits.WithLabelValues(stage).Inc()
}

// IncCacheMiss counts a cache miss for stage.
func (m *Metrics) IncCacheMiss(stage string) {
	if m == nil {
		return
	}
	m.cacheMisses.WithLabelValues(stage).Inc()
}

// IncStageFailure counts a soft failure for stage.
func (m *Metrics) IncStageFailure(stage string) {
	if m == nil {
		return
	}
	m.stageFailures.WithLabelValues(stage).Inc()
}

// SetCacheEntries sets the cache entries gauge.
func (m *Metrics) SetCacheEntries(n int) {
	if m == nil {
		return
	}
	m.cacheEntries.Set(float64(n))
}

// Handler returns an http.Handler that serves Prometheus metrics.
// updateGauges is called before each scrape to refresh gauge values (e.g. cache size).
func (m *Metrics) Handler(updateGauges func()) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if updateGauges != nil {
			updateGauges()
		}
		promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}).ServeHTTP(w, r)
	})
}
