package lighting

import (
	"testing"

	"github.com/Faultbox/stilllife/pkg/math"
)

func newTestRig() *Rig {
	return NewRig(math.Vec3{X: 0, Y: 5, Z: 0}, math.Vec3{X: 6, Y: 0.05, Z: 0})
}

func TestNewRig(t *testing.T) {
	r := newTestRig()

	if r.Active() != 0 {
		t.Errorf("Active() = %d, want 0", r.Active())
	}
	if got := r.Lights[1].Position; got != (math.Vec3{X: 6, Y: 0.05, Z: 0}) {
		t.Errorf("secondary position = %v", got)
	}
	if got := r.Lights[0].Color; got != [3]float32{1, 1, 1} {
		t.Errorf("primary color = %v, want white", got)
	}
}

func TestToggle(t *testing.T) {
	r := newTestRig()

	if got := r.Toggle(); got != 1 {
		t.Errorf("Toggle() = %d, want 1", got)
	}
	if got := r.Toggle(); got != 0 {
		t.Errorf("Toggle() = %d, want 0", got)
	}
}

func TestMoveOnlyActiveLight(t *testing.T) {
	tests := []struct {
		axis Axis
		want math.Vec3
	}{
		{AxisX, math.Vec3{X: 6.5, Y: 0.05, Z: 0}},
		{AxisY, math.Vec3{X: 6, Y: 0.55, Z: 0}},
		{AxisZ, math.Vec3{X: 6, Y: 0.05, Z: 0.5}},
	}

	for _, tt := range tests {
		t.Run(tt.axis.String(), func(t *testing.T) {
			r := newTestRig()
			r.Toggle()
			r.Move(tt.axis, 0.5)

			if got := r.ActiveLight().Position; !got.ApproxEqual(tt.want, 1e-6) {
				t.Errorf("active position = %v, want %v", got, tt.want)
			}
			if got := r.Lights[0].Position; got != (math.Vec3{X: 0, Y: 5, Z: 0}) {
				t.Errorf("inactive light moved to %v", got)
			}
		})
	}
}

func TestSetColor(t *testing.T) {
	r := newTestRig()

	if err := r.SetColor(1, [3]float32{2, -1, 0.5}); err != nil {
		t.Fatalf("SetColor() error = %v", err)
	}
	if got := r.Lights[1].Color; got != [3]float32{1, 0, 0.5} {
		t.Errorf("color = %v, want clamped {1 0 0.5}", got)
	}
	if err := r.SetColor(2, [3]float32{}); err == nil {
		t.Error("expected error for out of range index")
	}
}

func TestFlatSlices(t *testing.T) {
	r := newTestRig()
	r.Lights[1].Color = [3]float32{0.2, 0.4, 0.6}

	wantPos := []float32{0, 5, 0, 6, 0.05, 0}
	gotPos := r.Positions()
	if len(gotPos) != len(wantPos) {
		t.Fatalf("len(Positions()) = %d, want %d", len(gotPos), len(wantPos))
	}
	for i := range wantPos {
		if gotPos[i] != wantPos[i] {
			t.Errorf("Positions()[%d] = %v, want %v", i, gotPos[i], wantPos[i])
		}
	}

	wantCol := []float32{1, 1, 1, 0.2, 0.4, 0.6}
	gotCol := r.Colors()
	for i := range wantCol {
		if gotCol[i] != wantCol[i] {
			t.Errorf("Colors()[%d] = %v, want %v", i, gotCol[i], wantCol[i])
		}
	}
}
