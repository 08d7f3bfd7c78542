package frames

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/jpeg"
	"testing"
)

func TestThumbnail(t *testing.T) {
	dec := &fakeDecoder{meta: Metadata{Duration: 30, Width: 640, Height: 480}}

	data, err := Thumbnail(context.Background(), dec)
	if err != nil {
		t.Fatalf("Thumbnail returned error: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("Thumbnail returned empty image data")
	}
	if _, err := jpeg.Decode(bytes.NewReader(data)); err != nil {
		t.Errorf("Thumbnail output is not valid JPEG: %v", err)
	}

	if len(dec.seeks) != 1 || dec.seeks[0] != 1.0 {
		t.Errorf("Thumbnail seeks = %v, want a single seek to 1s", dec.seeks)
	}
}

func TestThumbnailClampsShortClip(t *testing.T) {
	dec := &fakeDecoder{meta: Metadata{Duration: 0.4, Width: 320, Height: 240}}

	if _, err := Thumbnail(context.Background(), dec); err != nil {
		t.Fatalf("Thumbnail returned error: %v", err)
	}
	if len(dec.seeks) != 1 || dec.seeks[0] != 0.4 {
		t.Errorf("Thumbnail seeks = %v, want a single seek to the clip end", dec.seeks)
	}
}

func TestThumbnailFailuresAreTerminal(t *testing.T) {
	tests := []struct {
		name     string
		dec      *fakeDecoder
		expected error
	}{
		{
			name:     "Probe failure",
			dec:      &fakeDecoder{probeErr: fmt.Errorf("not a video")},
			expected: ErrDecode,
		},
		{
			name:     "Zero duration",
			dec:      &fakeDecoder{meta: Metadata{Duration: 0}},
			expected: ErrInvalidDuration,
		},
		{
			name: "Frame capture failure",
			dec: &fakeDecoder{
				meta:     Metadata{Duration: 10, Width: 640, Height: 480},
				frameErr: map[float64]error{1: fmt.Errorf("seek failed")},
			},
			expected: ErrDecode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Thumbnail(context.Background(), tt.dec)
			if !errors.Is(err, tt.expected) {
				t.Errorf("Thumbnail error = %v, want %v", err, tt.expected)
			}
		})
	}
}
