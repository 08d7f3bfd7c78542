// Package middleware provides HTTP middleware for the event-media service:
// request logging with a status-capturing response writer, wired to the
// Prometheus HTTP metrics.
package middleware
