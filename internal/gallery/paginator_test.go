package gallery

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func assetsN(n int) []MediaAsset {
	assets := make([]MediaAsset, n)
	for i := range assets {
		assets[i] = MediaAsset{RemoteKey: fmt.Sprintf("e/p%03d.jpg", i)}
	}
	return assets
}

func staticList(assets []MediaAsset) ListFunc {
	return func(ctx context.Context, prefix string) ([]MediaAsset, error) {
		return assets, nil
	}
}

func TestPaginatorLoadSequence(t *testing.T) {
	p := NewPaginator(staticList(assetsN(45)), 20)

	if err := p.Reset(context.Background(), "e"); err != nil {
		t.Fatalf("Reset returned error: %v", err)
	}
	if p.Loaded() != 20 {
		t.Fatalf("after Reset, Loaded() = %d, want 20", p.Loaded())
	}

	wantCounts := []int{40, 45}
	for _, want := range wantCounts {
		if !p.LoadNextPage() {
			t.Fatalf("LoadNextPage returned false before reaching %d", want)
		}
		if p.Loaded() != want {
			t.Fatalf("Loaded() = %d, want %d", p.Loaded(), want)
		}
	}

	if !p.Exhausted() {
		t.Error("Exhausted() = false with full collection loaded")
	}
	for i := 0; i < 3; i++ {
		if p.LoadNextPage() {
			t.Fatal("LoadNextPage advanced past the end of the collection")
		}
		if p.Loaded() != 45 {
			t.Fatalf("Loaded() = %d after exhaustion, want 45", p.Loaded())
		}
	}
}

func TestPaginatorSmallCollection(t *testing.T) {
	p := NewPaginator(staticList(assetsN(5)), 20)

	if err := p.Reset(context.Background(), "e"); err != nil {
		t.Fatalf("Reset returned error: %v", err)
	}
	if p.Loaded() != 5 {
		t.Errorf("Loaded() = %d, want 5 (clamped to collection size)", p.Loaded())
	}
	if !p.Exhausted() {
		t.Error("Exhausted() = false with everything loaded")
	}
	if p.LoadNextPage() {
		t.Error("LoadNextPage advanced an exhausted paginator")
	}
}

func TestPaginatorEmptyCollection(t *testing.T) {
	p := NewPaginator(staticList(nil), 20)

	if err := p.Reset(context.Background(), "e"); err != nil {
		t.Fatalf("Reset returned error: %v", err)
	}
	if p.Loaded() != 0 || p.Len() != 0 {
		t.Errorf("empty collection: Loaded()=%d Len()=%d, want 0/0", p.Loaded(), p.Len())
	}
	if len(p.Window()) != 0 {
		t.Errorf("Window() = %d assets, want 0", len(p.Window()))
	}
}

func TestPaginatorResetErrorRevertsState(t *testing.T) {
	good := assetsN(30)
	fail := false
	listErr := errors.New("listing failed")
	list := func(ctx context.Context, prefix string) ([]MediaAsset, error) {
		if fail {
			return nil, listErr
		}
		return good, nil
	}

	p := NewPaginator(list, 10)
	if err := p.Reset(context.Background(), "e"); err != nil {
		t.Fatalf("Reset returned error: %v", err)
	}
	p.LoadNextPage()
	loadedBefore := p.Loaded()

	fail = true
	err := p.Reset(context.Background(), "e")
	if !errors.Is(err, listErr) {
		t.Fatalf("Reset error = %v, want wrapped listing failure", err)
	}

	if p.Loaded() != loadedBefore {
		t.Errorf("failed Reset corrupted loaded count: %d, want %d", p.Loaded(), loadedBefore)
	}
	if p.Len() != 30 {
		t.Errorf("failed Reset dropped collection: Len()=%d, want 30", p.Len())
	}
	if !p.LoadNextPage() {
		t.Error("paginator unusable after failed Reset")
	}
}

func TestPaginatorBusyLatchDropsTriggers(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	list := func(ctx context.Context, prefix string) ([]MediaAsset, error) {
		close(started)
		<-release
		return assetsN(10), nil
	}

	p := NewPaginator(list, 5)

	done := make(chan error, 1)
	go func() { done <- p.Reset(context.Background(), "e") }()
	<-started

	// A second trigger while the listing pass is in flight is dropped.
	if err := p.Reset(context.Background(), "e"); !errors.Is(err, ErrBusy) {
		t.Errorf("concurrent Reset error = %v, want ErrBusy", err)
	}
	if p.LoadNextPage() {
		t.Error("LoadNextPage advanced while a listing pass was in flight")
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("initial Reset returned error: %v", err)
	}
	if p.Loaded() != 5 {
		t.Errorf("Loaded() = %d after Reset completed, want 5", p.Loaded())
	}
}

func TestPaginatorRemove(t *testing.T) {
	p := NewPaginator(staticList(assetsN(4)), 2)
	if err := p.Reset(context.Background(), "e"); err != nil {
		t.Fatalf("Reset returned error: %v", err)
	}

	if !p.Remove("e/p001.jpg") {
		t.Fatal("Remove did not find a loaded asset")
	}
	if p.Loaded() != 1 || p.Len() != 3 {
		t.Errorf("after Remove: Loaded()=%d Len()=%d, want 1/3", p.Loaded(), p.Len())
	}

	// Removing an unloaded asset shrinks the collection but not the window.
	if !p.Remove("e/p003.jpg") {
		t.Fatal("Remove did not find an unloaded asset")
	}
	if p.Loaded() != 1 || p.Len() != 2 {
		t.Errorf("after second Remove: Loaded()=%d Len()=%d, want 1/2", p.Loaded(), p.Len())
	}

	if p.Remove("e/p099.jpg") {
		t.Error("Remove reported success for an unknown key")
	}
}

func TestPaginatorWindowIsACopy(t *testing.T) {
	p := NewPaginator(staticList(assetsN(3)), 3)
	if err := p.Reset(context.Background(), "e"); err != nil {
		t.Fatalf("Reset returned error: %v", err)
	}

	window := p.Window()
	window[0].RemoteKey = "mutated"

	if p.Window()[0].RemoteKey == "mutated" {
		t.Error("Window() exposes internal state")
	}
}
