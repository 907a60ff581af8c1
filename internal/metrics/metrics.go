package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Traffic
var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "galeria_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "route", "status_code"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "galeria_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
	}, []string{"method", "route"})
)

// Listing
var (
	ListingDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "galeria_listing_duration_seconds",
		Help:    "Time spent computing a gallery page",
		Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
	})

	ListingErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "galeria_listing_errors_total",
		Help: "Listing failures by error kind",
	}, []string{"kind"})

	GalleryImages = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "galeria_images",
		Help: "Number of images seen by the last successful listing",
	})
)

// Cache
var (
	CacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "galeria_listing_cache_hits_total",
		Help: "Listing cache hits",
	})

	CacheMissesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "galeria_listing_cache_misses_total",
		Help: "Listing cache misses",
	})

	CacheInvalidationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "galeria_listing_cache_invalidations_total",
		Help: "Listing cache invalidations triggered by directory changes",
	})
)
