// Package gallery implements the media listing, deduplication, and
// pagination pipeline for event galleries.
//
// The Lister queries the object store for every key under an event prefix
// and collapses the duplicate-prone listing into a single canonical ordered
// collection. The Paginator slices that collection into display windows,
// advancing one page at a time with a re-entrancy guard around the listing
// pass. Ordering is whatever the store yields; sorting is the display
// layer's job.
package gallery
