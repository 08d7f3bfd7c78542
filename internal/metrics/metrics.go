package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "event_media_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "event_media_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
)

// Listing metrics
var (
	ListingOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "event_media_listing_operations_total",
			Help: "Total number of object-store listing passes",
		},
		[]string{"status"},
	)

	ListingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "event_media_listing_duration_seconds",
			Help:    "Object-store listing duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	ListingObjectsReturned = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "event_media_listing_objects_returned",
			Help:    "Number of assets returned per listing pass after dedup",
			Buckets: []float64{0, 10, 50, 100, 500, 1000, 5000},
		},
	)

	DedupDroppedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "event_media_dedup_dropped_total",
			Help: "Entries dropped or flagged by the dedup passes",
		},
		[]string{"stage"}, // "key", "filename", "filtered"
	)
)

// Frame extraction metrics
var (
	FramesExtractedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "event_media_frames_extracted_total",
			Help: "Total number of video frames captured",
		},
	)

	FramesSkippedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "event_media_frames_skipped_total",
			Help: "Total number of frame captures skipped after per-frame errors",
		},
	)

	FrameExtractionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "event_media_frame_extraction_duration_seconds",
			Help:    "Duration of whole-video frame extraction in seconds",
			Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"status"},
	)

	ThumbnailsGeneratedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "event_media_thumbnails_generated_total",
			Help: "Total number of video thumbnails generated",
		},
		[]string{"status"},
	)
)

// Pagination metrics
var (
	PaginationLoadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "event_media_pagination_loads_total",
			Help: "Pagination load attempts by outcome",
		},
		[]string{"outcome"}, // "advanced", "busy", "exhausted", "reset", "error"
	)
)

// Face store metrics
var (
	FaceStoreQueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "event_media_facestore_queries_total",
			Help: "Total number of face-record store queries",
		},
		[]string{"operation", "status"},
	)
)
