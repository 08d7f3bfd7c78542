package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"event-media/internal/facestore"
	"event-media/internal/frames"
	"event-media/internal/gallery"
	"event-media/internal/logging"
	"event-media/internal/mediatypes"
	"event-media/internal/objectstore"
	"event-media/internal/startup"
)

// ObjectStore is the object-store surface the handlers need.
type ObjectStore interface {
	List(ctx context.Context, prefix string) ([]objectstore.ObjectInfo, error)
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte, contentType string) error
	Remove(ctx context.Context, key string) error
	PublicURL(key string) string
}

// FaceStore is the face-record surface the handlers need.
type FaceStore interface {
	Upsert(ctx context.Context, rec facestore.FaceRecord) error
	Get(ctx context.Context, faceID string) (facestore.FaceRecord, error)
	ListByPrefix(ctx context.Context, prefix string) ([]facestore.FaceRecord, error)
	DeleteByImageKey(ctx context.Context, imageKey string) (int64, error)
}

// Handlers holds the HTTP handler dependencies.
type Handlers struct {
	store     ObjectStore
	faces     FaceStore
	paginator *gallery.Paginator
	config    *startup.Config

	// openDecoder is swappable so tests can run the ingest path without
	// an ffmpeg binary.
	openDecoder frames.OpenDecoder
}

// New creates the handler set. The paginator is wired to list photos under
// the configured media prefix.
func New(store ObjectStore, faces FaceStore, config *startup.Config) *Handlers {
	lister := gallery.NewLister(store)
	paginator := gallery.NewPaginator(func(ctx context.Context, prefix string) ([]gallery.MediaAsset, error) {
		return lister.List(ctx, prefix, mediatypes.KindPhoto)
	}, config.PageSize)

	return &Handlers{
		store:     store,
		faces:     faces,
		paginator: paginator,
		config:    config,
		openDecoder: func(source string) (frames.Decoder, error) {
			return frames.NewFFmpegDecoder(source)
		},
	}
}

// WarmUp runs the initial listing pass so the gallery has content before
// the first request arrives.
func (h *Handlers) WarmUp(ctx context.Context) error {
	return h.paginator.Reset(ctx, h.config.MediaPrefix)
}

// respondJSON writes a JSON response with the given status.
func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Error("Failed to encode response: %v", err)
	}
}
