// Package input defines platform-neutral input events and state helpers.
// Platform code (see sdlinput) translates native events into these types.
package input

// Key identifies a keyboard key the application reacts to.
type Key int

const (
	KeyUnknown Key = iota
	KeyW
	KeyA
	KeyS
	KeyD
	KeyQ
	KeyE
	KeyY
	KeyH
	KeyJ
	KeyG
	KeyM
	KeyN
	KeyL
	KeyP
	KeyEscape
	KeyF12
)

var keyNames = map[Key]string{
	KeyW:      "W",
	KeyA:      "A",
	KeyS:      "S",
	KeyD:      "D",
	KeyQ:      "Q",
	KeyE:      "E",
	KeyY:      "Y",
	KeyH:      "H",
	KeyJ:      "J",
	KeyG:      "G",
	KeyM:      "M",
	KeyN:      "N",
	KeyL:      "L",
	KeyP:      "P",
	KeyEscape: "Escape",
	KeyF12:    "F12",
}

func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Event is one input event. The concrete types are KeyEvent,
// CursorMoveEvent, ScrollEvent, ResizeEvent and QuitEvent.
type Event interface {
	event()
}

// KeyEvent reports a key going down (Pressed) or up.
type KeyEvent struct {
	Key     Key
	Pressed bool
}

// CursorMoveEvent reports the cursor position in window pixels, Y down.
type CursorMoveEvent struct {
	X, Y float32
}

// ScrollEvent reports vertical wheel motion; positive is away from the user.
type ScrollEvent struct {
	Y float32
}

// ResizeEvent reports a new drawable size in pixels.
type ResizeEvent struct {
	Width, Height int
}

// QuitEvent requests application shutdown.
type QuitEvent struct{}

func (KeyEvent) event()        {}
func (CursorMoveEvent) event() {}
func (ScrollEvent) event()     {}
func (ResizeEvent) event()     {}
func (QuitEvent) event()       {}

// KeyState tracks which keys are held.
type KeyState struct {
	down map[Key]bool
}

// NewKeyState returns a state with every key released.
func NewKeyState() *KeyState {
	return &KeyState{down: make(map[Key]bool)}
}

// Apply records e and reports whether it was a fresh press, that is the key
// went from released to pressed. Repeated presses of a held key return false.
func (s *KeyState) Apply(e KeyEvent) bool {
	was := s.down[e.Key]
	if e.Pressed {
		s.down[e.Key] = true
	} else {
		delete(s.down, e.Key)
	}
	return e.Pressed && !was
}

// Down reports whether k is held.
func (s *KeyState) Down(k Key) bool {
	return s.down[k]
}

// Reset releases every key.
func (s *KeyState) Reset() {
	clear(s.down)
}

// MouseTracker turns absolute cursor positions into per-event offsets.
//
// The first sample only records a baseline and yields a zero offset, so the
// camera does not jump when the cursor first enters the window.
type MouseTracker struct {
	lastX, lastY float32
	primed       bool
}

// Offset returns the motion since the previous sample. The Y offset is
// inverted so moving the cursor up gives a positive value.
func (m *MouseTracker) Offset(x, y float32) (dx, dy float32) {
	if !m.primed {
		m.lastX, m.lastY = x, y
		m.primed = true
		return 0, 0
	}
	dx = x - m.lastX
	dy = m.lastY - y
	m.lastX, m.lastY = x, y
	return dx, dy
}

// Reset makes the next sample a new baseline.
func (m *MouseTracker) Reset() {
	m.primed = false
}
