package frames

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"os/exec"
	"strconv"

	"event-media/internal/logging"

	_ "image/png" // ffmpeg emits png on the image2pipe path
)

// FFmpegDecoder implements Decoder for a local video file using the ffmpeg
// and ffprobe binaries. Each decoder owns its file; concurrent extractions
// use one decoder per video.
type FFmpegDecoder struct {
	path string
}

// NewFFmpegDecoder creates a decoder for the given video file. It fails with
// ErrEncoderUnavailable when the ffmpeg toolchain is not on PATH, so callers
// can distinguish a missing rendering surface from a bad file.
func NewFFmpegDecoder(path string) (*FFmpegDecoder, error) {
	for _, bin := range []string{"ffmpeg", "ffprobe"} {
		if _, err := exec.LookPath(bin); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrEncoderUnavailable, err)
		}
	}
	return &FFmpegDecoder{path: path}, nil
}

// ffprobe JSON output, limited to the fields the sampler needs.
type probeOutput struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
	Streams []struct {
		CodecType string `json:"codec_type"`
		Width     int    `json:"width"`
		Height    int    `json:"height"`
	} `json:"streams"`
}

// Probe reads the container metadata via ffprobe.
func (d *FFmpegDecoder) Probe(ctx context.Context) (Metadata, error) {
	cmd := exec.CommandContext(ctx, "ffprobe",
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		d.path,
	)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return Metadata{}, fmt.Errorf("ffprobe error: %w - %s", err, stderr.String())
	}

	var probe probeOutput
	if err := json.Unmarshal(stdout.Bytes(), &probe); err != nil {
		return Metadata{}, fmt.Errorf("failed to parse ffprobe output: %w", err)
	}

	meta := Metadata{}
	meta.Duration, _ = strconv.ParseFloat(probe.Format.Duration, 64)
	for _, stream := range probe.Streams {
		if stream.CodecType == "video" {
			meta.Width = stream.Width
			meta.Height = stream.Height
			break
		}
	}

	logging.Debug("Probed %s: duration=%.2fs dimensions=%dx%d",
		d.path, meta.Duration, meta.Width, meta.Height)
	return meta, nil
}

// FrameAt seeks to the given timestamp and decodes a single frame at the
// video's native resolution. The -ss before -i makes ffmpeg seek on the
// demuxer, which is fast and accurate enough for whole-second grids.
func (d *FFmpegDecoder) FrameAt(ctx context.Context, timestamp float64) (image.Image, error) {
	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-ss", strconv.FormatFloat(timestamp, 'f', 3, 64),
		"-i", d.path,
		"-vframes", "1",
		"-f", "image2pipe",
		"-vcodec", "png",
		"-",
	)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ffmpeg failed at %.2fs: %w - %s", timestamp, err, stderr.String())
	}
	if stdout.Len() == 0 {
		return nil, fmt.Errorf("ffmpeg produced no output at %.2fs", timestamp)
	}

	img, _, err := image.Decode(&stdout)
	if err != nil {
		return nil, fmt.Errorf("failed to decode ffmpeg output: %w", err)
	}
	return img, nil
}

// Close releases decoder resources. The ffmpeg decoder holds none between
// calls; it exists to satisfy Decoder for runtimes that do.
func (d *FFmpegDecoder) Close() error {
	return nil
}
