package facecrop

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"

	"github.com/disintegration/imaging"

	_ "image/gif"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

const thumbnailQuality = 80

// Render produces an actual square face crop from a source image, applying
// the same geometry Project hands to the display layer: the visible region
// is 1/scale of the image on each axis, centered on the face (clamped to the
// image bounds), resampled to sizePx.
func Render(img image.Image, box *BoundingBox, sizePx int) *image.NRGBA {
	tr := Project(box, float64(sizePx))
	cx, cy := center(box)

	visible := 1 / tr.Scale
	x0 := clamp(cx-visible/2, 0, 1-visible)
	y0 := clamp(cy-visible/2, 0, 1-visible)

	bounds := img.Bounds()
	w := float64(bounds.Dx())
	h := float64(bounds.Dy())

	rect := image.Rect(
		bounds.Min.X+int(x0*w),
		bounds.Min.Y+int(y0*h),
		bounds.Min.X+int((x0+visible)*w),
		bounds.Min.Y+int((y0+visible)*h),
	)

	cropped := imaging.Crop(img, rect)
	return imaging.Resize(cropped, sizePx, sizePx, imaging.Lanczos)
}

// RenderBytes decodes an encoded source image, renders the face crop, and
// re-encodes it as JPEG. Decode support covers the accepted photo formats
// plus gif and webp for legacy uploads.
func RenderBytes(data []byte, box *BoundingBox, sizePx int) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode face image: %w", err)
	}

	thumb := Render(img, box, sizePx)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, thumb, &jpeg.Options{Quality: thumbnailQuality}); err != nil {
		return nil, fmt.Errorf("failed to encode face crop: %w", err)
	}
	return buf.Bytes(), nil
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		// Visible region wider than the image (scale < 1); pin to center.
		return (lo + hi) / 2
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
