// Package controls holds the interactive state of the viewer and maps input
// events onto the camera, the lights and the projection mode.
package controls

import (
	"go.uber.org/zap"

	"github.com/Faultbox/stilllife/internal/engine/camera"
	"github.com/Faultbox/stilllife/internal/engine/input"
	"github.com/Faultbox/stilllife/internal/engine/lighting"
	"github.com/Faultbox/stilllife/internal/engine/scene"
	"github.com/Faultbox/stilllife/internal/logger"
	"github.com/Faultbox/stilllife/pkg/math"
)

type cameraBinding struct {
	key input.Key
	dir camera.Direction
}

// Held keys that move the camera.
var cameraBindings = []cameraBinding{
	{input.KeyW, camera.Forward},
	{input.KeyS, camera.Backward},
	{input.KeyA, camera.Left},
	{input.KeyD, camera.Right},
	{input.KeyQ, camera.Up},
	{input.KeyE, camera.Down},
}

type lightBinding struct {
	key  input.Key
	axis lighting.Axis
	sign float32
}

// Held keys that move the active light.
var lightBindings = []lightBinding{
	{input.KeyY, lighting.AxisY, 1},
	{input.KeyH, lighting.AxisY, -1},
	{input.KeyJ, lighting.AxisX, 1},
	{input.KeyG, lighting.AxisX, -1},
	{input.KeyM, lighting.AxisZ, 1},
	{input.KeyN, lighting.AxisZ, -1},
}

// State is everything input can change between frames.
type State struct {
	Camera   *camera.FlyCamera
	Lights   *lighting.Rig
	Mode     scene.ProjectionMode
	Viewport scene.Viewport

	// LightSpeed is how far a held light key moves the light per second.
	LightSpeed float32

	keys  *input.KeyState
	mouse input.MouseTracker

	quit       bool
	resized    bool
	screenshot bool
	log        *zap.Logger
}

// New creates the state with a perspective projection.
func New(cam *camera.FlyCamera, lights *lighting.Rig, vp scene.Viewport, lightSpeed float32) *State {
	return &State{
		Camera:     cam,
		Lights:     lights,
		Mode:       scene.Perspective,
		Viewport:   vp,
		LightSpeed: lightSpeed,
		keys:       input.NewKeyState(),
		log:        logger.Named("controls"),
	}
}

// Handle applies one event. Discrete actions (quit, projection and light
// toggles) fire on key press; held keys take effect in Update.
func (s *State) Handle(ev input.Event) {
	switch e := ev.(type) {
	case input.QuitEvent:
		s.quit = true

	case input.KeyEvent:
		if !s.keys.Apply(e) {
			return
		}
		switch e.Key {
		case input.KeyEscape:
			s.quit = true
		case input.KeyP:
			s.Mode = s.Mode.Toggle()
			s.log.Info("projection changed", zap.Stringer("mode", s.Mode))
		case input.KeyL:
			active := s.Lights.Toggle()
			s.log.Info("active light changed", zap.Int("light", active))
		case input.KeyF12:
			s.screenshot = true
		}

	case input.CursorMoveEvent:
		dx, dy := s.mouse.Offset(e.X, e.Y)
		s.Camera.ProcessMouseMovement(dx, dy)

	case input.ScrollEvent:
		s.Camera.ProcessMouseScroll(e.Y)

	case input.ResizeEvent:
		s.Viewport.Width = e.Width
		s.Viewport.Height = e.Height
		s.resized = true
		s.log.Debug("viewport resized", zap.Int("width", e.Width), zap.Int("height", e.Height))
	}
}

// Update advances held-key motion by dt seconds.
func (s *State) Update(dt float32) {
	for _, b := range cameraBindings {
		if s.keys.Down(b.key) {
			s.Camera.ProcessKeyboard(b.dir, dt)
		}
	}
	for _, b := range lightBindings {
		if s.keys.Down(b.key) {
			s.Lights.Move(b.axis, b.sign*s.LightSpeed*dt)
		}
	}
}

// ShouldQuit reports whether a quit was requested.
func (s *State) ShouldQuit() bool {
	return s.quit
}

// TakeResize reports whether the viewport changed since the last call.
func (s *State) TakeResize() (scene.Viewport, bool) {
	r := s.resized
	s.resized = false
	return s.Viewport, r
}

// TakeScreenshot reports whether a screenshot was requested since the last call.
func (s *State) TakeScreenshot() bool {
	r := s.screenshot
	s.screenshot = false
	return r
}

// View returns the camera's view matrix.
func (s *State) View() math.Mat4 {
	return s.Camera.ViewMatrix()
}

// Projection returns the projection for the current mode and viewport.
func (s *State) Projection() math.Mat4 {
	return scene.Projection(s.Mode, s.Camera.Zoom, s.Viewport)
}
