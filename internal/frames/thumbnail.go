package frames

import (
	"context"
	"fmt"
	"time"

	"event-media/internal/logging"
	"event-media/internal/metrics"
)

// thumbnailMark is the fixed seek position for representative stills. The
// first second skips black lead-in frames on most clips.
const thumbnailMark = 1.0

// Thumbnail renders a single representative still for a video: the frame at
// the 1-second mark (clamped to the clip's end for shorter videos), encoded
// at the same quality as sampled frames, native resolution.
//
// Unlike Sample there is no skip-and-continue: any failure here is terminal
// for the call.
func Thumbnail(ctx context.Context, dec Decoder) ([]byte, error) {
	start := time.Now()

	meta, err := dec.Probe(ctx)
	if err != nil {
		metrics.ThumbnailsGeneratedTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if meta.Duration <= 0 {
		metrics.ThumbnailsGeneratedTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("%w: reported %vs", ErrInvalidDuration, meta.Duration)
	}

	mark := thumbnailMark
	if meta.Duration < mark {
		mark = meta.Duration
	}

	img, err := dec.FrameAt(ctx, mark)
	if err != nil {
		metrics.ThumbnailsGeneratedTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("%w: frame at %.2fs: %v", ErrDecode, mark, err)
	}

	data, err := encodeJPEG(img)
	if err != nil {
		metrics.ThumbnailsGeneratedTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("encoding thumbnail: %w", err)
	}

	metrics.ThumbnailsGeneratedTotal.WithLabelValues("success").Inc()
	logging.Debug("Thumbnail generated at %.2fs in %v (%d bytes)", mark, time.Since(start), len(data))
	return data, nil
}
