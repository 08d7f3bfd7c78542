package gallery

import (
	"context"
	"errors"
	"sync"

	"event-media/internal/logging"
	"event-media/internal/metrics"
)

// ErrBusy is returned when a listing pass is already in flight. The trigger
// is dropped, not queued; the caller may simply re-fire.
var ErrBusy = errors.New("listing already in progress")

// ListFunc produces the full asset collection for a prefix.
type ListFunc func(ctx context.Context, prefix string) ([]MediaAsset, error)

// Paginator slices a deduplicated asset collection into display windows and
// drives incremental loading.
//
// Invariants: 0 <= Loaded() <= Len() at all times; the loaded count only
// grows between resets; the collection is rebuilt wholesale by Reset and is
// otherwise append-only within a session. A boolean busy latch keeps at most
// one listing pass in flight — a second trigger while busy is a no-op.
type Paginator struct {
	mu          sync.Mutex
	list        ListFunc
	windowSize  int
	all         []MediaAsset
	loadedCount int
	busy        bool
}

// NewPaginator creates a Paginator with the given page size. A windowSize
// below 1 is coerced to 1.
func NewPaginator(list ListFunc, windowSize int) *Paginator {
	if windowSize < 1 {
		windowSize = 1
	}
	return &Paginator{list: list, windowSize: windowSize}
}

// Reset performs a fresh listing pass and materializes the first window.
// On failure the prior collection and loaded count are kept untouched and
// the error surfaces to the caller. Returns ErrBusy if a pass is already
// in flight.
func (p *Paginator) Reset(ctx context.Context, prefix string) error {
	p.mu.Lock()
	if p.busy {
		p.mu.Unlock()
		metrics.PaginationLoadsTotal.WithLabelValues("busy").Inc()
		return ErrBusy
	}
	p.busy = true
	p.mu.Unlock()

	assets, err := p.list(ctx, prefix)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.busy = false

	if err != nil {
		// Revert: prior state stays valid so the gallery keeps rendering.
		metrics.PaginationLoadsTotal.WithLabelValues("error").Inc()
		return err
	}

	p.all = assets
	p.loadedCount = min(p.windowSize, len(p.all))
	metrics.PaginationLoadsTotal.WithLabelValues("reset").Inc()

	logging.Debug("Paginator reset: %d assets, %d loaded", len(p.all), p.loadedCount)
	return nil
}

// LoadNextPage extends the loaded window by one page, clamped to the
// collection size. It reports whether the window advanced; triggers that
// arrive while a listing pass is in flight, or once the collection is
// exhausted, are dropped.
func (p *Paginator) LoadNextPage() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.busy {
		metrics.PaginationLoadsTotal.WithLabelValues("busy").Inc()
		return false
	}
	if p.loadedCount >= len(p.all) {
		metrics.PaginationLoadsTotal.WithLabelValues("exhausted").Inc()
		return false
	}

	p.loadedCount = min(p.loadedCount+p.windowSize, len(p.all))
	metrics.PaginationLoadsTotal.WithLabelValues("advanced").Inc()
	return true
}

// Window returns a copy of the currently loaded slice of the collection.
func (p *Paginator) Window() []MediaAsset {
	p.mu.Lock()
	defer p.mu.Unlock()

	window := make([]MediaAsset, p.loadedCount)
	copy(window, p.all[:p.loadedCount])
	return window
}

// Len returns the size of the full collection.
func (p *Paginator) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.all)
}

// Loaded returns the number of assets currently materialized.
func (p *Paginator) Loaded() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loadedCount
}

// Exhausted reports whether every asset has been materialized.
func (p *Paginator) Exhausted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loadedCount >= len(p.all)
}

// Remove drops the asset with the given key from the collection. Call only
// after the object store has confirmed the deletion. It reports whether the
// key was present.
func (p *Paginator) Remove(key string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i, asset := range p.all {
		if asset.RemoteKey != key {
			continue
		}
		p.all = append(p.all[:i], p.all[i+1:]...)
		if i < p.loadedCount {
			p.loadedCount--
		}
		return true
	}
	return false
}
