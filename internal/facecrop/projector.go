package facecrop

import "fmt"

// Scale clamp for face crops. Below MinScale the crop under-zooms and fails
// to isolate the face; above MaxScale it crops so tight it risks cutting the
// face off. Product-tuned values, not derived from the geometry.
const (
	MinScale = 1.2
	MaxScale = 2.0
)

// BoundingBox is a face region expressed as left/top/width/height fractions
// of the full image's dimensions, each in [0,1].
type BoundingBox struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Transform holds the affine parameters that center and scale a face inside
// a square viewport: translate first, then scale, with the image's transform
// origin at its top-left corner.
type Transform struct {
	Scale      float64 `json:"scale"`
	TranslateX float64 `json:"translateX"`
	TranslateY float64 `json:"translateY"`
}

// CSS renders the transform in authoring order for a style attribute.
func (t Transform) CSS() string {
	return fmt.Sprintf("translate(%.2fpx, %.2fpx) scale(%.3f)", t.TranslateX, t.TranslateY, t.Scale)
}

// Project computes the transform that lands the face center on the midpoint
// of a containerSize-pixel viewport. A nil box means the face region is
// unknown: the image stays unscaled and centered.
//
// Pure function, no failure modes.
func Project(box *BoundingBox, containerSize float64) Transform {
	cx, cy := center(box)
	scale := 1.0

	if box != nil {
		side := box.Width
		if box.Height < side {
			side = box.Height
		}
		if side > 0 {
			scale = 1 / side
		} else {
			// Degenerate detector output behaves like an infinitely small
			// face: take the tight bound.
			scale = MaxScale
		}
		if scale < MinScale {
			scale = MinScale
		}
		if scale > MaxScale {
			scale = MaxScale
		}
	}

	// Translation is expressed in post-scale pixel space: the face center,
	// scaled, must land on the container midpoint.
	return Transform{
		Scale:      scale,
		TranslateX: 0.5*containerSize - cx*containerSize*scale,
		TranslateY: 0.5*containerSize - cy*containerSize*scale,
	}
}

// center returns the face midpoint in image fractions, defaulting to the
// image center when the box is unknown.
func center(box *BoundingBox) (float64, float64) {
	if box == nil {
		return 0.5, 0.5
	}
	return box.Left + box.Width/2, box.Top + box.Height/2
}
