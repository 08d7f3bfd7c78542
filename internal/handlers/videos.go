package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"event-media/internal/frames"
	"event-media/internal/logging"
	"event-media/internal/mediatypes"
	"event-media/internal/workers"
)

const (
	// maxUploadBytes caps a single video upload at 512 MiB.
	maxUploadBytes = 512 << 20

	// maxUploadWorkers caps the frame-upload pool.
	maxUploadWorkers = 8
)

func frameKey(prefix, base string, number int) string {
	return path.Join(prefix, "frames", base, fmt.Sprintf("frame-%03d.jpg", number))
}

// ingestResult is the JSON shape returned after a video upload: where the
// original, the thumbnail, and each extracted frame landed in the store.
type ingestResult struct {
	Key          string        `json:"key"`
	URL          string        `json:"url"`
	ThumbnailKey string        `json:"thumbnailKey"`
	Frames       []ingestFrame `json:"frames"`
	Skipped      int           `json:"skippedFrames"`
}

type ingestFrame struct {
	Number    int     `json:"frameNumber"`
	Timestamp float64 `json:"timestampSeconds"`
	Key       string  `json:"key"`
}

// UploadVideo ingests a video: the file is staged to disk, probed, a
// representative thumbnail and a set of sampled frames are extracted, and
// everything is uploaded under the configured media prefix.
func (h *Handlers) UploadVideo(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "Missing video file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	name := filepath.Base(header.Filename)
	if mediatypes.KindForKey(name) != mediatypes.KindVideo {
		http.Error(w, "Unsupported video format", http.StatusBadRequest)
		return
	}

	tmp, err := os.CreateTemp("", "ingest-*"+strings.ToLower(filepath.Ext(name)))
	if err != nil {
		logging.Error("Failed to stage upload: %v", err)
		http.Error(w, "Failed to stage upload", http.StatusInternalServerError)
		return
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()

	size, err := io.Copy(tmp, file)
	if err != nil {
		logging.Error("Failed to stage upload %q: %v", name, err)
		http.Error(w, "Failed to stage upload", http.StatusInternalServerError)
		return
	}
	logging.Info("Ingesting video %q (%d bytes)", name, size)

	dec, err := h.openDecoder(tmp.Name())
	if err != nil {
		h.writeFrameError(w, name, err)
		return
	}
	defer dec.Close()

	thumb, err := frames.Thumbnail(r.Context(), dec)
	if err != nil {
		h.writeFrameError(w, name, err)
		return
	}

	sampler := frames.NewSampler(h.config.TargetFrameCount)
	sampled, err := sampler.Sample(r.Context(), dec)
	if err != nil {
		h.writeFrameError(w, name, err)
		return
	}

	base := strings.TrimSuffix(name, filepath.Ext(name))
	videoKey := path.Join(h.config.MediaPrefix, "videos", name)
	thumbKey := path.Join(h.config.MediaPrefix, "thumbnails", base+".jpg")

	original, err := os.ReadFile(tmp.Name())
	if err != nil {
		logging.Error("Failed to re-read staged upload %q: %v", name, err)
		http.Error(w, "Failed to stage upload", http.StatusInternalServerError)
		return
	}
	if err := h.store.Put(r.Context(), videoKey, original, mediatypes.MimeType(name)); err != nil {
		logging.Error("Failed to upload video %q: %v", videoKey, err)
		http.Error(w, "Failed to upload video", http.StatusBadGateway)
		return
	}
	if err := h.store.Put(r.Context(), thumbKey, thumb, "image/jpeg"); err != nil {
		logging.Error("Failed to upload thumbnail %q: %v", thumbKey, err)
		http.Error(w, "Failed to upload thumbnail", http.StatusBadGateway)
		return
	}

	// Frame uploads are independent and I/O-bound; run them through a
	// small worker pool instead of one round trip per still.
	uploadErrs := make([]error, len(sampled))
	jobs := make(chan int)
	var wg sync.WaitGroup
	for n := 0; n < workers.ForIO(maxUploadWorkers); n++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				f := sampled[i]
				uploadErrs[i] = h.store.Put(r.Context(), frameKey(h.config.MediaPrefix, base, f.Number),
					f.JPEG, "image/jpeg")
			}
		}()
	}
	for i := range sampled {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	result := ingestResult{
		Key:          videoKey,
		URL:          h.store.PublicURL(videoKey),
		ThumbnailKey: thumbKey,
		Frames:       make([]ingestFrame, 0, len(sampled)),
	}
	for i, f := range sampled {
		key := frameKey(h.config.MediaPrefix, base, f.Number)
		if uploadErrs[i] != nil {
			// A missing still is cosmetic; keep the rest of the ingest.
			logging.Warn("Failed to upload frame %q: %v", key, uploadErrs[i])
			result.Skipped++
			continue
		}
		result.Frames = append(result.Frames, ingestFrame{
			Number:    f.Number,
			Timestamp: f.Timestamp,
			Key:       key,
		})
	}

	logging.Info("Ingested %q: %d frames stored, %d skipped", name, len(result.Frames), result.Skipped)
	respondJSON(w, http.StatusCreated, result)
}

// writeFrameError maps extraction errors onto HTTP statuses.
func (h *Handlers) writeFrameError(w http.ResponseWriter, name string, err error) {
	logging.Error("Frame extraction failed for %q: %v", name, err)
	switch {
	case errors.Is(err, frames.ErrEncoderUnavailable):
		http.Error(w, "Video processing unavailable", http.StatusServiceUnavailable)
	case errors.Is(err, frames.ErrTimeout):
		http.Error(w, "Frame extraction timed out", http.StatusGatewayTimeout)
	case errors.Is(err, frames.ErrDecode), errors.Is(err, frames.ErrInvalidDuration):
		http.Error(w, "File could not be processed as video", http.StatusBadRequest)
	default:
		http.Error(w, "Frame extraction failed", http.StatusInternalServerError)
	}
}
