package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/stilllife/pkg/math"
)

func TestProjectionModeToggle(t *testing.T) {
	if got := Perspective.Toggle(); got != Orthographic {
		t.Errorf("Perspective.Toggle() = %v, want orthographic", got)
	}
	if got := Orthographic.Toggle(); got != Perspective {
		t.Errorf("Orthographic.Toggle() = %v, want perspective", got)
	}
}

func TestViewportAspect(t *testing.T) {
	tests := []struct {
		name string
		vp   Viewport
		want float32
	}{
		{"landscape", Viewport{Width: 800, Height: 600}, 800.0 / 600.0},
		{"zero height", Viewport{Width: 800, Height: 0}, 1},
		{"negative width", Viewport{Width: -1, Height: 600}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.vp.Aspect(); got != tt.want {
				t.Errorf("Aspect() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPerspectiveProjection(t *testing.T) {
	vp := Viewport{Width: 800, Height: 600, Near: 0.1, Far: 100}
	got := Projection(Perspective, 45, vp)
	want := mgl32.Perspective(mgl32.DegToRad(45), 800.0/600.0, 0.1, 100)

	matApprox(t, "Projection(perspective)", got, want)
}

func TestOrthographicProjection(t *testing.T) {
	vp := Viewport{Width: 800, Height: 600, Near: 0.1, Far: 100}
	m := Projection(Orthographic, 45, vp)

	// The viewport corner at the near plane lands on the NDC corner.
	corner := m.TransformPoint(math.Vec3{X: 8, Y: 6, Z: -0.1})
	if !corner.ApproxEqual(math.Vec3{X: 1, Y: 1, Z: -1}, 1e-4) {
		t.Errorf("corner maps to %v, want (1,1,-1)", corner)
	}

	// Zoom has no effect in orthographic mode.
	if other := Projection(Orthographic, 10, vp); other != m {
		t.Error("orthographic projection depends on zoom")
	}
}

func TestOrthographicDegenerateViewport(t *testing.T) {
	m := Projection(Orthographic, 45, Viewport{Near: 0.1, Far: 100})
	for i, v := range m {
		if v != v {
			t.Fatalf("element %d is NaN", i)
		}
	}
}
