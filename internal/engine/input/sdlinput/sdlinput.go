// Package sdlinput translates SDL2 events into input events.
package sdlinput

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/stilllife/internal/engine/input"
)

var scancodes = map[sdl.Scancode]input.Key{
	sdl.SCANCODE_W:      input.KeyW,
	sdl.SCANCODE_A:      input.KeyA,
	sdl.SCANCODE_S:      input.KeyS,
	sdl.SCANCODE_D:      input.KeyD,
	sdl.SCANCODE_Q:      input.KeyQ,
	sdl.SCANCODE_E:      input.KeyE,
	sdl.SCANCODE_Y:      input.KeyY,
	sdl.SCANCODE_H:      input.KeyH,
	sdl.SCANCODE_J:      input.KeyJ,
	sdl.SCANCODE_G:      input.KeyG,
	sdl.SCANCODE_M:      input.KeyM,
	sdl.SCANCODE_N:      input.KeyN,
	sdl.SCANCODE_L:      input.KeyL,
	sdl.SCANCODE_P:      input.KeyP,
	sdl.SCANCODE_ESCAPE: input.KeyEscape,
	sdl.SCANCODE_F12:    input.KeyF12,
}

// SizeFunc returns the drawable size in pixels.
type SizeFunc func() (width, height int)

// Input polls SDL and buffers translated events.
//
// With relative mouse mode on, SDL reports motion deltas rather than a
// position; they are summed into a virtual cursor so consumers always see
// absolute positions.
type Input struct {
	events   []input.Event
	drawable SizeFunc

	cursorX, cursorY float32
}

// New creates an input handler. drawable, when non-nil, supplies the size
// reported in resize events so HiDPI windows get pixel dimensions.
func New(drawable SizeFunc) *Input {
	return &Input{
		events:   make([]input.Event, 0, 16),
		drawable: drawable,
	}
}

// Update polls SDL events and returns them translated. The returned slice is
// reused by the next call.
func (i *Input) Update() []input.Event {
	i.events = i.events[:0]

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		if ev, ok := i.translate(event); ok {
			i.events = append(i.events, ev)
		}
	}

	return i.events
}

func (i *Input) translate(event sdl.Event) (input.Event, bool) {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		return input.QuitEvent{}, true

	case *sdl.WindowEvent:
		if e.Event != sdl.WINDOWEVENT_SIZE_CHANGED {
			return nil, false
		}
		w, h := int(e.Data1), int(e.Data2)
		if i.drawable != nil {
			w, h = i.drawable()
		}
		return input.ResizeEvent{Width: w, Height: h}, true

	case *sdl.KeyboardEvent:
		// Held keys are tracked by state, repeats carry nothing new.
		if e.Repeat != 0 {
			return nil, false
		}
		key, ok := scancodes[e.Keysym.Scancode]
		if !ok {
			return nil, false
		}
		return input.KeyEvent{Key: key, Pressed: e.Type == sdl.KEYDOWN}, true

	case *sdl.MouseMotionEvent:
		if sdl.GetRelativeMouseMode() {
			i.cursorX += float32(e.XRel)
			i.cursorY += float32(e.YRel)
		} else {
			i.cursorX, i.cursorY = float32(e.X), float32(e.Y)
		}
		return input.CursorMoveEvent{X: i.cursorX, Y: i.cursorY}, true

	case *sdl.MouseWheelEvent:
		y := float32(e.Y)
		if e.Direction == sdl.MOUSEWHEEL_FLIPPED {
			y = -y
		}
		return input.ScrollEvent{Y: y}, true
	}

	return nil, false
}
