package gallery

import (
	"context"
	"errors"
	"testing"

	"event-media/internal/mediatypes"
	"event-media/internal/objectstore"
)

type fakeStore struct {
	objects []objectstore.ObjectInfo
	err     error
	calls   int
}

func (f *fakeStore) List(ctx context.Context, prefix string) ([]objectstore.ObjectInfo, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.objects, nil
}

func (f *fakeStore) PublicURL(key string) string {
	return "https://cdn.example.com/" + key
}

func keysOf(assets []MediaAsset) []string {
	keys := make([]string, len(assets))
	for i, a := range assets {
		keys[i] = a.RemoteKey
	}
	return keys
}

func objectsFor(keys ...string) []objectstore.ObjectInfo {
	objs := make([]objectstore.ObjectInfo, len(keys))
	for i, k := range keys {
		objs[i] = objectstore.ObjectInfo{Key: k, Size: 1024}
	}
	return objs
}

func TestListFiltersAndDeduplicates(t *testing.T) {
	store := &fakeStore{objects: objectsFor(
		"events/e1/images/p1.jpg",
		"events/e1/images/p1.jpg",
		"events/e1/images/p2.png",
		"events/e1/images/note.txt",
	)}
	lister := NewLister(store)

	assets, err := lister.List(context.Background(), "events/e1/images", mediatypes.KindPhoto)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}

	want := []string{"events/e1/images/p1.jpg", "events/e1/images/p2.png"}
	got := keysOf(assets)
	if len(got) != len(want) {
		t.Fatalf("List returned %d assets, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("asset[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	for _, a := range assets {
		if a.Kind != mediatypes.KindPhoto {
			t.Errorf("asset %q kind = %v, want photo", a.RemoteKey, a.Kind)
		}
		if a.URL != "https://cdn.example.com/"+a.RemoteKey {
			t.Errorf("asset %q URL = %q", a.RemoteKey, a.URL)
		}
	}
}

func TestListPreservesFirstOccurrenceOrder(t *testing.T) {
	store := &fakeStore{objects: objectsFor(
		"e/a.jpg",
		"e/b.jpg",
		"e/a.jpg",
		"e/c.jpg",
	)}
	lister := NewLister(store)

	assets, err := lister.List(context.Background(), "e", mediatypes.KindPhoto)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}

	want := []string{"e/a.jpg", "e/b.jpg", "e/c.jpg"}
	got := keysOf(assets)
	if len(got) != 3 {
		t.Fatalf("List returned %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("asset[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestDedupeIsIdempotent(t *testing.T) {
	store := &fakeStore{}
	lister := NewLister(store)

	first := lister.dedupe(objectsFor(
		"e/a.jpg", "e/a.jpg", "e/b.jpg", "e/c.jpg", "e/b.jpg",
	), "e", mediatypes.KindPhoto)

	// Feed the dedup output back through: no further removals.
	again := make([]objectstore.ObjectInfo, len(first))
	for i, a := range first {
		again[i] = objectstore.ObjectInfo{Key: a.RemoteKey}
	}
	second := lister.dedupe(again, "e", mediatypes.KindPhoto)

	if len(second) != len(first) {
		t.Fatalf("second dedup pass removed entries: %d -> %d", len(first), len(second))
	}
	for i := range first {
		if second[i].RemoteKey != first[i].RemoteKey {
			t.Errorf("pass 2 asset[%d] = %q, want %q", i, second[i].RemoteKey, first[i].RemoteKey)
		}
	}
}

func TestFilenameCollisionsAreKept(t *testing.T) {
	// Same base name under different timestamped keys: both must survive.
	store := &fakeStore{objects: objectsFor(
		"e/2024/p1.jpg",
		"e/2025/p1.jpg",
	)}
	lister := NewLister(store)

	assets, err := lister.List(context.Background(), "e", mediatypes.KindPhoto)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(assets) != 2 {
		t.Fatalf("List returned %d assets, want 2 (filename collisions are diagnostic only)", len(assets))
	}
}

func TestListVideos(t *testing.T) {
	store := &fakeStore{objects: objectsFor(
		"e/videos/v1.mp4",
		"e/videos/v1.jpg", // poster frame, wrong kind for this pass
		"e/videos/v2.mov",
	)}
	lister := NewLister(store)

	assets, err := lister.List(context.Background(), "e/videos", mediatypes.KindVideo)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	want := []string{"e/videos/v1.mp4", "e/videos/v2.mov"}
	got := keysOf(assets)
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("List = %v, want %v", got, want)
	}
}

func TestListPropagatesStoreError(t *testing.T) {
	storeErr := errors.New("connection refused")
	store := &fakeStore{err: storeErr}
	lister := NewLister(store)

	_, err := lister.List(context.Background(), "e", mediatypes.KindPhoto)
	if err == nil {
		t.Fatal("List returned nil error")
	}
	if !errors.Is(err, storeErr) {
		t.Errorf("List error %v does not wrap store error", err)
	}
	if store.calls != 1 {
		t.Errorf("store called %d times, want 1 (no internal retry)", store.calls)
	}
}
