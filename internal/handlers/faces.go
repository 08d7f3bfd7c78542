package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"event-media/internal/facecrop"
	"event-media/internal/facestore"
	"event-media/internal/logging"

	"github.com/gorilla/mux"
)

// faceView joins a stored face record with the transform the display layer
// needs to frame it inside its circular viewport.
type faceView struct {
	FaceID    string                `json:"faceId"`
	ImageKey  string                `json:"imageKey"`
	URL       string                `json:"url"`
	Box       *facecrop.BoundingBox `json:"boundingBox,omitempty"`
	Transform facecrop.Transform    `json:"transform"`
	CSS       string                `json:"css"`
}

// GetFaces lists the face records under a key prefix with crop transforms
// computed for the requested container size.
func (h *Handlers) GetFaces(w http.ResponseWriter, r *http.Request) {
	prefix := r.URL.Query().Get("prefix")
	if prefix == "" {
		prefix = h.config.MediaPrefix
	}
	size := h.config.FaceThumbSize
	if v, err := strconv.Atoi(r.URL.Query().Get("size")); err == nil && v > 0 {
		size = v
	}

	records, err := h.faces.ListByPrefix(r.Context(), prefix)
	if err != nil {
		logging.Error("Failed to list faces under %q: %v", prefix, err)
		http.Error(w, "Failed to list faces", http.StatusInternalServerError)
		return
	}

	views := make([]faceView, 0, len(records))
	for _, rec := range records {
		tr := facecrop.Project(rec.Box, float64(size))
		views = append(views, faceView{
			FaceID:    rec.FaceID,
			ImageKey:  rec.ImageKey,
			URL:       h.store.PublicURL(rec.ImageKey),
			Box:       rec.Box,
			Transform: tr,
			CSS:       tr.CSS(),
		})
	}

	respondJSON(w, http.StatusOK, views)
}

// PutFace records a detected face. This is the ingest point for the
// face-detection collaborator's results.
func (h *Handlers) PutFace(w http.ResponseWriter, r *http.Request) {
	var rec facestore.FaceRecord
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		http.Error(w, "Invalid face record", http.StatusBadRequest)
		return
	}
	if rec.FaceID == "" || rec.ImageKey == "" {
		http.Error(w, "faceId and imageKey are required", http.StatusBadRequest)
		return
	}
	if rec.Box != nil && !validBox(rec.Box) {
		http.Error(w, "boundingBox fractions must lie in [0,1]", http.StatusBadRequest)
		return
	}

	if err := h.faces.Upsert(r.Context(), rec); err != nil {
		logging.Error("Failed to store face %q: %v", rec.FaceID, err)
		http.Error(w, "Failed to store face", http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, rec)
}

// GetFaceThumbnail cuts an actual face crop from the source photo.
func (h *Handlers) GetFaceThumbnail(w http.ResponseWriter, r *http.Request) {
	faceID := mux.Vars(r)["id"]

	size := h.config.FaceThumbSize
	if v, err := strconv.Atoi(r.URL.Query().Get("size")); err == nil && v > 0 {
		size = v
	}

	rec, err := h.faces.Get(r.Context(), faceID)
	if err != nil {
		if errors.Is(err, facestore.ErrNotFound) {
			http.Error(w, "Face not found", http.StatusNotFound)
			return
		}
		logging.Error("Failed to read face %q: %v", faceID, err)
		http.Error(w, "Failed to read face", http.StatusInternalServerError)
		return
	}

	data, err := h.store.Get(r.Context(), rec.ImageKey)
	if err != nil {
		logging.Error("Failed to fetch %q for face %q: %v", rec.ImageKey, faceID, err)
		http.Error(w, "Failed to fetch source image", http.StatusBadGateway)
		return
	}

	thumb, err := facecrop.RenderBytes(data, rec.Box, size)
	if err != nil {
		logging.Error("Failed to render crop for face %q: %v", faceID, err)
		http.Error(w, "Failed to render face crop", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	if _, err := w.Write(thumb); err != nil {
		logging.Debug("Failed to write face thumbnail: %v", err)
	}
}

func validBox(box *facecrop.BoundingBox) bool {
	for _, v := range []float64{box.Left, box.Top, box.Width, box.Height} {
		if v < 0 || v > 1 {
			return false
		}
	}
	return true
}
