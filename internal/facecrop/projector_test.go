package facecrop

import (
	"math"
	"testing"
)

func TestProjectNoBoundingBox(t *testing.T) {
	tr := Project(nil, 96)

	if tr.Scale != 1 {
		t.Errorf("Scale = %v, want 1 for unknown face region", tr.Scale)
	}
	if tr.TranslateX != 0 || tr.TranslateY != 0 {
		t.Errorf("translation = (%v, %v), want centered (0, 0)", tr.TranslateX, tr.TranslateY)
	}
}

func TestProjectCenteredFace(t *testing.T) {
	box := &BoundingBox{Left: 0.4, Top: 0.4, Width: 0.2, Height: 0.2}
	container := 96.0

	tr := Project(box, container)

	if tr.Scale < MinScale || tr.Scale > MaxScale {
		t.Errorf("Scale = %v, outside [%v, %v]", tr.Scale, MinScale, MaxScale)
	}
	// rawScale 1/0.2 = 5 clamps to the tight bound
	if tr.Scale != MaxScale {
		t.Errorf("Scale = %v, want clamped %v", tr.Scale, MaxScale)
	}

	// The face center must land on the container midpoint.
	cx := (box.Left + box.Width/2) * container
	cy := (box.Top + box.Height/2) * container
	gotX := cx*tr.Scale + tr.TranslateX
	gotY := cy*tr.Scale + tr.TranslateY
	if math.Abs(gotX-48) > 0.5 || math.Abs(gotY-48) > 0.5 {
		t.Errorf("face center maps to (%v, %v), want (48, 48)", gotX, gotY)
	}
}

func TestProjectScaleClamping(t *testing.T) {
	tests := []struct {
		name     string
		box      BoundingBox
		expected float64
	}{
		{
			name:     "Tiny face clamps to max",
			box:      BoundingBox{Left: 0.45, Top: 0.45, Width: 0.1, Height: 0.1},
			expected: MaxScale,
		},
		{
			name:     "Large face clamps to min",
			box:      BoundingBox{Left: 0.0, Top: 0.0, Width: 0.95, Height: 0.9},
			expected: MinScale,
		},
		{
			name:     "Mid-size face keeps raw scale",
			box:      BoundingBox{Left: 0.2, Top: 0.2, Width: 0.6, Height: 0.7},
			expected: 1 / 0.6,
		},
		{
			name:     "Smaller axis drives the scale",
			box:      BoundingBox{Left: 0.1, Top: 0.3, Width: 0.8, Height: 0.6},
			expected: 1 / 0.6,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := Project(&tt.box, 96)
			if math.Abs(tr.Scale-tt.expected) > 1e-9 {
				t.Errorf("Scale = %v, want %v", tr.Scale, tt.expected)
			}
		})
	}
}

func TestProjectOffCenterFace(t *testing.T) {
	// A face in the top-left quadrant pulls the image down and right,
	// meaning positive-leaning translation relative to a centered face.
	box := &BoundingBox{Left: 0.1, Top: 0.1, Width: 0.2, Height: 0.2}
	container := 96.0

	tr := Project(box, container)

	cx := (box.Left + box.Width/2) * container
	cy := (box.Top + box.Height/2) * container
	if got := cx*tr.Scale + tr.TranslateX; math.Abs(got-48) > 0.5 {
		t.Errorf("face center x maps to %v, want 48", got)
	}
	if got := cy*tr.Scale + tr.TranslateY; math.Abs(got-48) > 0.5 {
		t.Errorf("face center y maps to %v, want 48", got)
	}

	centered := Project(&BoundingBox{Left: 0.4, Top: 0.4, Width: 0.2, Height: 0.2}, container)
	if tr.TranslateX <= centered.TranslateX {
		t.Error("top-left face should translate further right than a centered face")
	}
}

func TestProjectZeroSizeBox(t *testing.T) {
	// Degenerate detector output: zero-area box still yields a clamped,
	// well-defined transform.
	tr := Project(&BoundingBox{Left: 0.5, Top: 0.5}, 96)
	if tr.Scale != MaxScale {
		t.Errorf("Scale = %v, want %v for zero-size box", tr.Scale, MaxScale)
	}
}

func TestTransformCSS(t *testing.T) {
	tr := Transform{Scale: 2, TranslateX: -48, TranslateY: 12.5}
	want := "translate(-48.00px, 12.50px) scale(2.000)"
	if got := tr.CSS(); got != want {
		t.Errorf("CSS() = %q, want %q", got, want)
	}
}
