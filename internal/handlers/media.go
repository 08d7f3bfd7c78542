package handlers

import (
	"errors"
	"net/http"

	"event-media/internal/gallery"
	"event-media/internal/logging"

	"github.com/gorilla/mux"
)

// mediaPage is the JSON shape of the current pagination window.
type mediaPage struct {
	Items     []gallery.MediaAsset `json:"items"`
	Loaded    int                  `json:"loaded"`
	Total     int                  `json:"total"`
	Exhausted bool                 `json:"exhausted"`
}

func (h *Handlers) currentPage() mediaPage {
	return mediaPage{
		Items:     h.paginator.Window(),
		Loaded:    h.paginator.Loaded(),
		Total:     h.paginator.Len(),
		Exhausted: h.paginator.Exhausted(),
	}
}

// GetMedia returns the currently loaded pagination window.
func (h *Handlers) GetMedia(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.currentPage())
}

// RefreshMedia performs a fresh listing pass and resets pagination. A
// refresh that arrives while another listing is in flight is dropped.
func (h *Handlers) RefreshMedia(w http.ResponseWriter, r *http.Request) {
	prefix := r.URL.Query().Get("prefix")
	if prefix == "" {
		prefix = h.config.MediaPrefix
	}

	if err := h.paginator.Reset(r.Context(), prefix); err != nil {
		if errors.Is(err, gallery.ErrBusy) {
			respondJSON(w, http.StatusConflict, map[string]string{"error": "refresh already in progress"})
			return
		}
		logging.Error("Listing pass failed for %q: %v", prefix, err)
		http.Error(w, "Failed to list media", http.StatusBadGateway)
		return
	}

	respondJSON(w, http.StatusOK, h.currentPage())
}

// LoadMoreMedia advances the pagination window by one page. The response
// reports whether the window actually advanced so the client can tell a
// dropped trigger from an exhausted collection.
func (h *Handlers) LoadMoreMedia(w http.ResponseWriter, r *http.Request) {
	advanced := h.paginator.LoadNextPage()

	page := h.currentPage()
	respondJSON(w, http.StatusOK, struct {
		mediaPage
		Advanced bool `json:"advanced"`
	}{page, advanced})
}

// DeleteMedia removes an object from the store and, only after the store
// confirms, from the in-memory collection and the face records.
func (h *Handlers) DeleteMedia(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]
	if key == "" {
		http.Error(w, "Key is required", http.StatusBadRequest)
		return
	}

	if err := h.store.Remove(r.Context(), key); err != nil {
		logging.Error("Failed to delete %q: %v", key, err)
		http.Error(w, "Failed to delete object", http.StatusBadGateway)
		return
	}

	h.paginator.Remove(key)
	if _, err := h.faces.DeleteByImageKey(r.Context(), key); err != nil {
		// The object is gone; stale face records only cost a broken crop.
		logging.Warn("Failed to clean face records for %q: %v", key, err)
	}

	w.WriteHeader(http.StatusNoContent)
}
