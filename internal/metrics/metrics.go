// Package metrics provides Prometheus metrics for the degrees service.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vanshika/degrees/internal/dataset"
)

// Search outcomes.
const (
	OutcomeConnected    = "connected"
	OutcomeNotConnected = "not_connected"
	OutcomeError        = "error"
)

// Name lookup results.
const (
	LookupNone      = "none"
	LookupSingle    = "single"
	LookupAmbiguous = "ambiguous"
)

// Metrics holds the collectors exported by the service.
type Metrics struct {
	SearchesTotal     *prometheus.CounterVec
	SearchDuration    prometheus.Histogram
	SearchExpanded    prometheus.Histogram
	SearchDegrees     prometheus.Histogram
	NameLookupsTotal  *prometheus.CounterVec
	DatasetPeople     prometheus.Gauge
	DatasetMovies     prometheus.Gauge
	DatasetStars      prometheus.Gauge
	HTTPRequestsTotal *prometheus.CounterVec
	HTTPDuration      *prometheus.HistogramVec
}

// New creates the collectors and registers them with reg. A nil reg uses a
// private registry, which keeps tests independent of the default one.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	factory := promauto.With(reg)

	return &Metrics{
		SearchesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "degrees_searches_total",
			Help: "Shortest-path searches by outcome",
		}, []string{"outcome"}),
		SearchDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "degrees_search_duration_seconds",
			Help:    "Duration of shortest-path searches in seconds",
			Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1, 5},
		}),
		SearchExpanded: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "degrees_search_expanded_nodes",
			Help:    "Frontier nodes expanded per search",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10),
		}),
		SearchDegrees: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "degrees_search_degrees",
			Help:    "Degrees of separation of connected searches",
			Buckets: prometheus.LinearBuckets(0, 1, 10),
		}),
		NameLookupsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "degrees_name_lookups_total",
			Help: "Name lookups by number of candidates found",
		}, []string{"result"}),
		DatasetPeople: factory.NewGauge(prometheus.GaugeOpts{
			Name: "degrees_dataset_people",
			Help: "People in the loaded dataset",
		}),
		DatasetMovies: factory.NewGauge(prometheus.GaugeOpts{
			Name: "degrees_dataset_movies",
			Help: "Movies in the loaded dataset",
		}),
		DatasetStars: factory.NewGauge(prometheus.GaugeOpts{
			Name: "degrees_dataset_stars",
			Help: "Person-movie memberships in the loaded dataset",
		}),
		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "degrees_http_requests_total",
			Help: "HTTP requests by route and status code",
		}, []string{"route", "status"}),
		HTTPDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "degrees_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
	}
}

// RecordSearch records one search. degrees is ignored unless outcome is
// OutcomeConnected.
func (m *Metrics) RecordSearch(outcome string, duration time.Duration, expanded, degrees int) {
	if m == nil {
		return
	}
	m.SearchesTotal.WithLabelValues(outcome).Inc()
	m.SearchDuration.Observe(duration.Seconds())
	if outcome == OutcomeError {
		return
	}
	m.SearchExpanded.Observe(float64(expanded))
	if outcome == OutcomeConnected {
		m.SearchDegrees.Observe(float64(degrees))
	}
}

// RecordLookup records a name lookup by candidate count.
func (m *Metrics) RecordLookup(candidates int) {
	if m == nil {
		return
	}
	result := LookupAmbiguous
	switch candidates {
	case 0:
		result = LookupNone
	case 1:
		result = LookupSingle
	}
	m.NameLookupsTotal.WithLabelValues(result).Inc()
}

// SetDataset publishes dataset sizes.
func (m *Metrics) SetDataset(stats dataset.Stats) {
	if m == nil {
		return
	}
	m.DatasetPeople.Set(float64(stats.People))
	m.DatasetMovies.Set(float64(stats.Movies))
	m.DatasetStars.Set(float64(stats.Stars))
}

// RecordHTTPRequest records a completed HTTP request.
func (m *Metrics) RecordHTTPRequest(route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(route, strconv.Itoa(status)).Inc()
	m.HTTPDuration.WithLabelValues(route).Observe(duration.Seconds())
}
