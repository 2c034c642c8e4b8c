package scene

import "github.com/Faultbox/stilllife/pkg/math"

// ProjectionMode selects perspective or orthographic viewing.
type ProjectionMode int

const (
	Perspective ProjectionMode = iota
	Orthographic
)

func (m ProjectionMode) String() string {
	if m == Orthographic {
		return "orthographic"
	}
	return "perspective"
}

// Toggle returns the other mode.
func (m ProjectionMode) Toggle() ProjectionMode {
	if m == Orthographic {
		return Perspective
	}
	return Orthographic
}

// OrthoPixelsPerUnit converts the viewport size to orthographic half-extents.
const OrthoPixelsPerUnit = 100

// Viewport is the projection input that changes at runtime.
type Viewport struct {
	Width, Height int
	Near, Far     float32
}

// Aspect returns width/height, or 1 for a degenerate viewport.
func (v Viewport) Aspect() float32 {
	if v.Width <= 0 || v.Height <= 0 {
		return 1
	}
	return float32(v.Width) / float32(v.Height)
}

// Projection returns the projection matrix for mode. zoom is the vertical
// field of view in degrees and only affects Perspective.
func Projection(mode ProjectionMode, zoom float32, vp Viewport) math.Mat4 {
	if mode == Orthographic {
		hw := float32(vp.Width) / OrthoPixelsPerUnit
		hh := float32(vp.Height) / OrthoPixelsPerUnit
		if hw <= 0 || hh <= 0 {
			hw, hh = 1, 1
		}
		return math.Ortho(-hw, hw, -hh, hh, vp.Near, vp.Far)
	}
	return math.Perspective(math.Radians(zoom), vp.Aspect(), vp.Near, vp.Far)
}
