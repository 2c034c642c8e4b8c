package controls

import (
	"testing"

	"github.com/Faultbox/stilllife/internal/engine/camera"
	"github.com/Faultbox/stilllife/internal/engine/input"
	"github.com/Faultbox/stilllife/internal/engine/lighting"
	"github.com/Faultbox/stilllife/internal/engine/scene"
	"github.com/Faultbox/stilllife/pkg/math"
)

const eps = 1e-4

func newTestState() *State {
	cam := camera.New(math.Vec3{X: 0, Y: 0, Z: 3})
	rig := lighting.NewRig(math.Vec3{X: 0, Y: 5, Z: 0}, math.Vec3{X: 6, Y: 0.05, Z: 0})
	vp := scene.Viewport{Width: 800, Height: 600, Near: 0.1, Far: 100}
	return New(cam, rig, vp, 1)
}

func press(k input.Key) input.KeyEvent   { return input.KeyEvent{Key: k, Pressed: true} }
func release(k input.Key) input.KeyEvent { return input.KeyEvent{Key: k, Pressed: false} }

func TestQuit(t *testing.T) {
	tests := []struct {
		name string
		ev   input.Event
	}{
		{"quit event", input.QuitEvent{}},
		{"escape", press(input.KeyEscape)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestState()
			if s.ShouldQuit() {
				t.Fatal("ShouldQuit() = true before any event")
			}
			s.Handle(tt.ev)
			if !s.ShouldQuit() {
				t.Error("ShouldQuit() = false, want true")
			}
		})
	}
}

func TestProjectionToggleIsEdgeTriggered(t *testing.T) {
	s := newTestState()

	s.Handle(press(input.KeyP))
	if s.Mode != scene.Orthographic {
		t.Fatalf("Mode = %v after press, want orthographic", s.Mode)
	}

	// Holding P across frames must not flip the mode back and forth.
	s.Handle(press(input.KeyP))
	s.Update(0.016)
	s.Update(0.016)
	if s.Mode != scene.Orthographic {
		t.Errorf("Mode = %v while held, want orthographic", s.Mode)
	}

	s.Handle(release(input.KeyP))
	s.Handle(press(input.KeyP))
	if s.Mode != scene.Perspective {
		t.Errorf("Mode = %v after second press, want perspective", s.Mode)
	}
}

func TestLightToggle(t *testing.T) {
	s := newTestState()

	s.Handle(press(input.KeyL))
	if s.Lights.Active() != 1 {
		t.Errorf("Active() = %d, want 1", s.Lights.Active())
	}
	s.Handle(release(input.KeyL))
	s.Handle(press(input.KeyL))
	if s.Lights.Active() != 0 {
		t.Errorf("Active() = %d, want 0", s.Lights.Active())
	}
}

func TestCameraKeys(t *testing.T) {
	tests := []struct {
		key  input.Key
		want math.Vec3
	}{
		{input.KeyW, math.Vec3{X: 0, Y: 0, Z: 0.5}},
		{input.KeyS, math.Vec3{X: 0, Y: 0, Z: 5.5}},
		{input.KeyA, math.Vec3{X: -2.5, Y: 0, Z: 3}},
		{input.KeyD, math.Vec3{X: 2.5, Y: 0, Z: 3}},
		{input.KeyQ, math.Vec3{X: 0, Y: 2.5, Z: 3}},
		{input.KeyE, math.Vec3{X: 0, Y: -2.5, Z: 3}},
	}

	for _, tt := range tests {
		t.Run(tt.key.String(), func(t *testing.T) {
			s := newTestState()
			s.Handle(press(tt.key))
			s.Update(1)

			if got := s.Camera.Position; !got.ApproxEqual(tt.want, eps) {
				t.Errorf("Position = %v, want %v", got, tt.want)
			}

			s.Handle(release(tt.key))
			s.Update(1)
			if got := s.Camera.Position; !got.ApproxEqual(tt.want, eps) {
				t.Errorf("Position moved after release: %v", got)
			}
		})
	}
}

func TestLightKeys(t *testing.T) {
	tests := []struct {
		key  input.Key
		want math.Vec3
	}{
		{input.KeyY, math.Vec3{X: 0, Y: 5.5, Z: 0}},
		{input.KeyH, math.Vec3{X: 0, Y: 4.5, Z: 0}},
		{input.KeyJ, math.Vec3{X: 0.5, Y: 5, Z: 0}},
		{input.KeyG, math.Vec3{X: -0.5, Y: 5, Z: 0}},
		{input.KeyM, math.Vec3{X: 0, Y: 5, Z: 0.5}},
		{input.KeyN, math.Vec3{X: 0, Y: 5, Z: -0.5}},
	}

	for _, tt := range tests {
		t.Run(tt.key.String(), func(t *testing.T) {
			s := newTestState()
			s.Handle(press(tt.key))
			s.Update(0.5)

			if got := s.Lights.Lights[0].Position; !got.ApproxEqual(tt.want, eps) {
				t.Errorf("primary = %v, want %v", got, tt.want)
			}
			if got := s.Lights.Lights[1].Position; got != (math.Vec3{X: 6, Y: 0.05, Z: 0}) {
				t.Errorf("secondary moved to %v", got)
			}
		})
	}
}

func TestLightKeysMoveActiveLight(t *testing.T) {
	s := newTestState()
	s.Handle(press(input.KeyL))
	s.Handle(press(input.KeyY))
	s.Update(1)

	if got := s.Lights.Lights[1].Position; !got.ApproxEqual(math.Vec3{X: 6, Y: 1.05, Z: 0}, eps) {
		t.Errorf("secondary = %v, want (6, 1.05, 0)", got)
	}
	if got := s.Lights.Lights[0].Position; got != (math.Vec3{X: 0, Y: 5, Z: 0}) {
		t.Errorf("primary moved to %v", got)
	}
}

func TestMouseLook(t *testing.T) {
	s := newTestState()

	// First sample is the baseline.
	s.Handle(input.CursorMoveEvent{X: 400, Y: 300})
	if s.Camera.Yaw != camera.DefaultYaw || s.Camera.Pitch != 0 {
		t.Fatalf("first sample turned the camera: yaw=%v pitch=%v", s.Camera.Yaw, s.Camera.Pitch)
	}

	// Right and up.
	s.Handle(input.CursorMoveEvent{X: 500, Y: 250})
	if got, want := s.Camera.Yaw, float32(camera.DefaultYaw+10); math.Abs(got-want) > eps {
		t.Errorf("Yaw = %v, want %v", got, want)
	}
	if got := s.Camera.Pitch; math.Abs(got-5) > eps {
		t.Errorf("Pitch = %v, want 5", got)
	}
}

func TestScroll(t *testing.T) {
	s := newTestState()
	s.Handle(input.ScrollEvent{Y: 5})
	if s.Camera.Zoom != 40 {
		t.Errorf("Zoom = %v, want 40", s.Camera.Zoom)
	}
}

func TestResize(t *testing.T) {
	s := newTestState()

	if _, ok := s.TakeResize(); ok {
		t.Fatal("TakeResize() reported a change before any resize")
	}

	s.Handle(input.ResizeEvent{Width: 1024, Height: 768})
	vp, ok := s.TakeResize()
	if !ok {
		t.Fatal("TakeResize() = false after resize")
	}
	if vp.Width != 1024 || vp.Height != 768 || vp.Near != 0.1 || vp.Far != 100 {
		t.Errorf("viewport = %+v", vp)
	}
	if _, ok := s.TakeResize(); ok {
		t.Error("TakeResize() reported the same resize twice")
	}
}

func TestProjectionFollowsMode(t *testing.T) {
	s := newTestState()

	persp := s.Projection()
	if want := scene.Projection(scene.Perspective, s.Camera.Zoom, s.Viewport); persp != want {
		t.Error("Projection() does not match perspective")
	}

	s.Handle(press(input.KeyP))
	if want := scene.Projection(scene.Orthographic, s.Camera.Zoom, s.Viewport); s.Projection() != want {
		t.Error("Projection() does not match orthographic")
	}
}

func TestScreenshotRequest(t *testing.T) {
	s := newTestState()
	if s.TakeScreenshot() {
		t.Fatal("TakeScreenshot() = true before any event")
	}

	s.Handle(press(input.KeyF12))
	if !s.TakeScreenshot() {
		t.Error("TakeScreenshot() = false after F12, want true")
	}
	if s.TakeScreenshot() {
		t.Error("TakeScreenshot() = true on second call, want false")
	}

	// Held key does not repeat.
	s.Handle(press(input.KeyF12))
	if s.TakeScreenshot() {
		t.Error("TakeScreenshot() = true while held, want false")
	}
}
