// Package metrics defines the Prometheus metrics exposed by the event-media
// service.
//
// All metrics are registered with the default registry via promauto at
// package load time and exposed by the /metrics handler in main. Metric names
// are prefixed with event_media_ and grouped by subsystem: HTTP, listing,
// frame extraction, pagination, and the face-record store.
package metrics
