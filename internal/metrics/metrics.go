// file: internal/metrics/metrics.go
// version: 1.1.0
// guid: 2c4e6a8b-0d1f-43a5-97b9-5d7f9a1c3e60

package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	searchesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "booktime",
		Name:      "searches_total",
		Help:      "Total number of search requests composed",
	})
	remoteSearchErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "booktime",
		Name:      "remote_search_errors_total",
		Help:      "Total number of failed Open Library search calls",
	})
	seriesCards = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "booktime",
		Name:      "series_cards_total",
		Help:      "Total number of series cards emitted by source type",
	}, []string{"source"})
	booksMasked = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "booktime",
		Name:      "books_masked_total",
		Help:      "Total number of books hidden behind a series card",
	})
	detections = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "booktime",
		Name:      "detections_total",
		Help:      "Total number of series detections by method",
	}, []string{"method"})
	composeDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "booktime",
		Name:      "compose_duration_seconds",
		Help:      "Histogram of search composition durations in seconds",
		Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12),
	})

	booksGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "booktime",
		Name:      "books_total",
		Help:      "Current total number of books in the library",
	})
)

// Register initializes metrics with the global Prometheus registry (idempotent)
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(searchesTotal, remoteSearchErrors, seriesCards,
			booksMasked, detections, composeDuration, booksGauge)
	})
}

// Counters
func IncSearch()                   { searchesTotal.Inc() }
func IncRemoteSearchError()        { remoteSearchErrors.Inc() }
func IncSeriesCard(source string)  { seriesCards.WithLabelValues(source).Inc() }
func AddBooksMasked(n int)         { booksMasked.Add(float64(n)) }
func IncDetection(method string)   { detections.WithLabelValues(method).Inc() }

// ObserveComposeDuration records one composition duration.
func ObserveComposeDuration(d time.Duration) {
	composeDuration.Observe(d.Seconds())
}

// SetBooks updates the library size gauge.
func SetBooks(n int) { booksGauge.Set(float64(n)) }
