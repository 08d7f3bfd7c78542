// Package objectstore wraps a MinIO client for the event-media bucket.
//
// It is the only component that talks to the object store directly. The
// listing, deletion, and upload surfaces are intentionally thin: retry
// policy, deduplication, and pagination all live with the callers.
package objectstore
