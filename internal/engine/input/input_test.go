package input

import "testing"

func TestKeyString(t *testing.T) {
	if got := KeyEscape.String(); got != "Escape" {
		t.Errorf("KeyEscape.String() = %q, want Escape", got)
	}
	if got := Key(999).String(); got != "Unknown" {
		t.Errorf("Key(999).String() = %q, want Unknown", got)
	}
}

func TestKeyStateApply(t *testing.T) {
	s := NewKeyState()

	steps := []struct {
		ev        KeyEvent
		wantFresh bool
		wantDown  bool
	}{
		{KeyEvent{Key: KeyP, Pressed: true}, true, true},
		{KeyEvent{Key: KeyP, Pressed: true}, false, true},
		{KeyEvent{Key: KeyP, Pressed: false}, false, false},
		{KeyEvent{Key: KeyP, Pressed: false}, false, false},
		{KeyEvent{Key: KeyP, Pressed: true}, true, true},
	}

	for i, st := range steps {
		if got := s.Apply(st.ev); got != st.wantFresh {
			t.Errorf("step %d: Apply(%+v) = %v, want %v", i, st.ev, got, st.wantFresh)
		}
		if got := s.Down(KeyP); got != st.wantDown {
			t.Errorf("step %d: Down(P) = %v, want %v", i, got, st.wantDown)
		}
	}
}

func TestKeyStateReset(t *testing.T) {
	s := NewKeyState()
	s.Apply(KeyEvent{Key: KeyW, Pressed: true})
	s.Apply(KeyEvent{Key: KeyA, Pressed: true})

	s.Reset()

	if s.Down(KeyW) || s.Down(KeyA) {
		t.Error("keys still down after Reset")
	}
}

func TestMouseTrackerFirstSampleIsBaseline(t *testing.T) {
	var m MouseTracker

	if dx, dy := m.Offset(400, 300); dx != 0 || dy != 0 {
		t.Errorf("first Offset() = (%v, %v), want (0, 0)", dx, dy)
	}

	tests := []struct {
		x, y   float32
		dx, dy float32
	}{
		{410, 300, 10, 0},
		{410, 280, 0, 20},
		{400, 290, -10, -10},
	}
	for _, tt := range tests {
		dx, dy := m.Offset(tt.x, tt.y)
		if dx != tt.dx || dy != tt.dy {
			t.Errorf("Offset(%v, %v) = (%v, %v), want (%v, %v)", tt.x, tt.y, dx, dy, tt.dx, tt.dy)
		}
	}
}

func TestMouseTrackerReset(t *testing.T) {
	var m MouseTracker
	m.Offset(0, 0)
	m.Offset(5, 5)

	m.Reset()

	if dx, dy := m.Offset(100, 100); dx != 0 || dy != 0 {
		t.Errorf("Offset() after Reset = (%v, %v), want (0, 0)", dx, dy)
	}
}
