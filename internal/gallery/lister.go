package gallery

import (
	"context"
	"fmt"
	"time"

	"event-media/internal/logging"
	"event-media/internal/mediatypes"
	"event-media/internal/metrics"
	"event-media/internal/objectstore"
)

// ObjectStore is the subset of the object-store client the lister needs.
type ObjectStore interface {
	List(ctx context.Context, prefix string) ([]objectstore.ObjectInfo, error)
	PublicURL(key string) string
}

// Lister turns raw object-store listings into a deduplicated, ordered
// collection of media assets.
//
// The backing store can return duplicate or near-duplicate entries across
// internal pages (eventual consistency, retried uploads). Dedup runs in two
// stages: an authoritative key-level pass where the first occurrence wins,
// and a diagnostic filename-level pass that only logs collisions — distinct
// assets legitimately share a base name under different timestamped keys, so
// dropping them would lose real photos.
type Lister struct {
	store ObjectStore
}

// NewLister creates a Lister backed by the given store.
func NewLister(store ObjectStore) *Lister {
	return &Lister{store: store}
}

// List returns the deduplicated assets of the requested kind under prefix,
// in store listing order. Listing errors are returned unmodified apart from
// wrapping; retry policy belongs to the caller.
func (l *Lister) List(ctx context.Context, prefix string, kind mediatypes.AssetKind) ([]MediaAsset, error) {
	start := time.Now()

	objects, err := l.store.List(ctx, prefix)
	if err != nil {
		metrics.ListingOperationsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("listing %q: %w", prefix, err)
	}

	assets := l.dedupe(objects, prefix, kind)

	metrics.ListingOperationsTotal.WithLabelValues("success").Inc()
	metrics.ListingDuration.Observe(time.Since(start).Seconds())
	metrics.ListingObjectsReturned.Observe(float64(len(assets)))

	logging.Debug("Listing pass for %q: %d objects, %d %s assets after dedup",
		prefix, len(objects), len(assets), kind)

	return assets, nil
}

// dedupe filters a raw listing down to the requested kind and removes
// duplicate keys, preserving first-occurrence order.
func (l *Lister) dedupe(objects []objectstore.ObjectInfo, prefix string, kind mediatypes.AssetKind) []MediaAsset {
	assets := make([]MediaAsset, 0, len(objects))
	seenKeys := make(map[string]bool, len(objects))
	seenNames := make(map[string]string, len(objects))

	for _, obj := range objects {
		if mediatypes.KindForKey(obj.Key) != kind {
			metrics.DedupDroppedTotal.WithLabelValues("filtered").Inc()
			continue
		}

		// Key-level dedup: the exact key is the identity, first wins.
		if seenKeys[obj.Key] {
			metrics.DedupDroppedTotal.WithLabelValues("key").Inc()
			logging.Debug("Duplicate key dropped: %s", obj.Key)
			continue
		}
		seenKeys[obj.Key] = true

		// Filename-level pass is diagnostic only: collisions are flagged
		// so near-duplicate uploads show up in logs, never removed.
		name := mediatypes.BaseName(obj.Key, prefix)
		if first, ok := seenNames[name]; ok {
			metrics.DedupDroppedTotal.WithLabelValues("filename").Inc()
			logging.Warn("Filename collision under %q: %s vs %s (both kept)", prefix, first, obj.Key)
		} else {
			seenNames[name] = obj.Key
		}

		assets = append(assets, MediaAsset{
			RemoteKey: obj.Key,
			URL:       l.store.PublicURL(obj.Key),
			Kind:      kind,
		})
	}

	return assets
}
