package frames

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"time"

	"event-media/internal/logging"
	"event-media/internal/metrics"
)

const (
	// MinInterval and MaxInterval bound the sampling interval in seconds.
	// Product-tuned: below 1s the frames are near-duplicates, above 5s long
	// clips lose too much coverage.
	MinInterval = 1
	MaxInterval = 5

	// DefaultTargetFrameCount is the number of frames aimed for per video.
	DefaultTargetFrameCount = 10

	// SampleBudget is the overall time budget for one extraction.
	SampleBudget = 30 * time.Second

	jpegQuality = 80
)

var (
	// ErrDecode indicates the file could not be loaded as video.
	ErrDecode = errors.New("video could not be decoded")
	// ErrInvalidDuration indicates the container reported a non-positive duration.
	ErrInvalidDuration = errors.New("video duration is not positive")
	// ErrTimeout indicates the extraction budget elapsed with no usable output.
	ErrTimeout = errors.New("frame extraction timed out")
	// ErrEncoderUnavailable indicates no frame-rendering surface could be
	// obtained (the ffmpeg binary is missing from PATH).
	ErrEncoderUnavailable = errors.New("ffmpeg not available")
)

// Metadata describes a decodable video.
type Metadata struct {
	Duration float64 // seconds
	Width    int
	Height   int
}

// Decoder is the capability the sampler needs from a video runtime:
// probe the container, then seek-and-snapshot one timestamp at a time.
// Implementations need not be safe for concurrent use; the sampler never
// issues overlapping FrameAt calls on a single decoder.
type Decoder interface {
	Probe(ctx context.Context) (Metadata, error)
	FrameAt(ctx context.Context, timestamp float64) (image.Image, error)
	Close() error
}

// Frame is a single captured still. Frames are immutable once produced and
// owned by the caller; persistence is the caller's job.
type Frame struct {
	Number    int     `json:"frameNumber"` // 1-based, monotonically increasing
	Timestamp float64 `json:"timestampSeconds"`
	JPEG      []byte  `json:"-"`
}

// CalculateInterval returns the sampling interval in whole seconds for a
// clip of the given duration: floor(duration/targetFrameCount) clamped to
// [MinInterval, MaxInterval].
func CalculateInterval(duration float64, targetFrameCount int) int {
	if targetFrameCount < 1 {
		targetFrameCount = 1
	}
	interval := int(duration / float64(targetFrameCount))
	if interval < MinInterval {
		interval = MinInterval
	}
	if interval > MaxInterval {
		interval = MaxInterval
	}
	return interval
}

// Timestamps returns the capture grid for a clip: interval, 2*interval, ...
// strictly below duration, with duration itself appended so the final frame
// is captured even when it falls off the regular grid.
func Timestamps(duration float64, interval int) []float64 {
	var ts []float64
	for t := float64(interval); t < duration; t += float64(interval) {
		ts = append(ts, t)
	}
	ts = append(ts, duration)
	if len(ts) == 0 {
		// Unreachable for positive durations; kept as the short-clip fallback.
		ts = []float64{1}
	}
	return ts
}

// Sampler extracts a bounded set of still frames from a video.
type Sampler struct {
	targetFrameCount int
}

// NewSampler creates a Sampler. A target below 1 falls back to the default.
func NewSampler(targetFrameCount int) *Sampler {
	if targetFrameCount < 1 {
		targetFrameCount = DefaultTargetFrameCount
	}
	return &Sampler{targetFrameCount: targetFrameCount}
}

// captureState is the explicit loop state for one extraction: which
// timestamp is next, what has been captured, and what was skipped. Keeping
// it in one struct (instead of closures over shared counters) means each
// step call has everything it touches in front of it.
type captureState struct {
	timestamps []float64
	next       int
	frames     []Frame
	skipped    int
}

// Sample extracts frames at computed timestamps, strictly sequentially:
// one timestamp's seek and snapshot completes before the next begins,
// because overlapping seeks on a single decode pipeline are unreliable.
//
// Per-timestamp capture failures are logged and skipped; the sequence
// continues. Zero captured frames is a valid (empty) result unless the
// 30-second budget elapsed first, in which case ErrTimeout surfaces.
func (s *Sampler) Sample(ctx context.Context, dec Decoder) ([]Frame, error) {
	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, SampleBudget)
	defer cancel()

	meta, err := dec.Probe(ctx)
	if err != nil {
		metrics.FrameExtractionDuration.WithLabelValues("error").Observe(time.Since(start).Seconds())
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if meta.Duration <= 0 {
		metrics.FrameExtractionDuration.WithLabelValues("error").Observe(time.Since(start).Seconds())
		return nil, fmt.Errorf("%w: reported %vs", ErrInvalidDuration, meta.Duration)
	}
	if meta.Width <= 0 || meta.Height <= 0 {
		logging.Warn("Video reports degenerate dimensions %dx%d, stills may be unusable", meta.Width, meta.Height)
	}

	interval := CalculateInterval(meta.Duration, s.targetFrameCount)
	state := &captureState{timestamps: Timestamps(meta.Duration, interval)}

	logging.Debug("Sampling %d timestamps at %ds interval (duration %.2fs)",
		len(state.timestamps), interval, meta.Duration)

	for state.next < len(state.timestamps) {
		if ctx.Err() != nil {
			if len(state.frames) == 0 {
				metrics.FrameExtractionDuration.WithLabelValues("timeout").Observe(time.Since(start).Seconds())
				return nil, fmt.Errorf("%w after %v", ErrTimeout, SampleBudget)
			}
			logging.Warn("Extraction budget elapsed after %d of %d frames, returning partial result",
				len(state.frames), len(state.timestamps))
			break
		}
		s.step(ctx, dec, state)
	}

	metrics.FramesExtractedTotal.Add(float64(len(state.frames)))
	metrics.FramesSkippedTotal.Add(float64(state.skipped))
	metrics.FrameExtractionDuration.WithLabelValues("success").Observe(time.Since(start).Seconds())

	return state.frames, nil
}

// step captures the next timestamp and advances the state. A capture error
// skips the timestamp rather than aborting the extraction.
func (s *Sampler) step(ctx context.Context, dec Decoder, state *captureState) {
	ts := state.timestamps[state.next]
	state.next++

	img, err := dec.FrameAt(ctx, ts)
	if err != nil {
		state.skipped++
		logging.Warn("Skipping frame at %.2fs: %v", ts, err)
		return
	}

	data, err := encodeJPEG(img)
	if err != nil {
		state.skipped++
		logging.Warn("Skipping frame at %.2fs: encode failed: %v", ts, err)
		return
	}

	state.frames = append(state.frames, Frame{
		Number:    len(state.frames) + 1,
		Timestamp: ts,
		JPEG:      data,
	})
}

func encodeJPEG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
