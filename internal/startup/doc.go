// Package startup handles configuration loading and build information for
// the event-media service. Configuration comes entirely from environment
// variables; LoadConfig validates the object-store settings and prepares the
// local database directory before anything else initializes.
package startup
