// Package handlers contains the HTTP handlers for the event-media API:
// gallery listing and pagination, video ingest, and face crop serving.
package handlers
