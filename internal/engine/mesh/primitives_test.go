package mesh

import (
	"testing"

	"github.com/Faultbox/stilllife/internal/engine/gpu"
	"github.com/Faultbox/stilllife/internal/engine/gpu/gputest"
)

func TestBuildPrimitivesRanges(t *testing.T) {
	g, err := BuildPrimitives()
	if err != nil {
		t.Fatalf("BuildPrimitives() error = %v", err)
	}

	// Same offsets as the packed position/UV array the scene was authored against.
	want := []Range{
		{Name: RangeCube, Mode: gpu.Triangles, First: 0, Count: 36},
		{Name: RangePlane, Mode: gpu.Triangles, First: 36, Count: 6},
		{Name: RangePyramid, Mode: gpu.Triangles, First: 42, Count: 18},
	}
	for _, w := range want {
		got, ok := g.Range(w.Name)
		if !ok {
			t.Errorf("missing range %s", w.Name)
			continue
		}
		if got != w {
			t.Errorf("range %s = %+v, want %+v", w.Name, got, w)
		}
	}
	if len(g.Vertices) != 60 {
		t.Errorf("vertices = %d, want 60", len(g.Vertices))
	}
}

func TestPrimitiveNormalsFaceOutward(t *testing.T) {
	g, err := BuildPrimitives()
	if err != nil {
		t.Fatalf("BuildPrimitives() error = %v", err)
	}

	for i, v := range g.Vertices {
		n := toVec(v.Normal)
		if l := n.Length(); l < 0.999 || l > 1.001 {
			t.Errorf("vertex %d normal length = %v", i, l)
		}
		if n.Dot(toVec(v.Position)) <= 0 {
			t.Errorf("vertex %d normal %v points inward at %v", i, v.Normal, v.Position)
		}
	}

	cube, _ := g.Range(RangeCube)
	for i := cube.First; i < cube.First+cube.Count; i++ {
		n := g.Vertices[i].Normal
		axes := 0
		for _, c := range n {
			if c != 0 {
				axes++
			}
		}
		if axes != 1 {
			t.Errorf("cube vertex %d normal %v is not axis aligned", i, n)
		}
	}

	plane, _ := g.Range(RangePlane)
	if n := g.Vertices[plane.First].Normal; n != [3]float32{0, 1, 0} {
		t.Errorf("plane normal = %v, want up", n)
	}
}

func TestTrianglesWithNormalsRejectsBadData(t *testing.T) {
	if _, err := trianglesWithNormals(make([]float32, 14)); err == nil {
		t.Error("expected error for partial triangle")
	}
	if _, err := trianglesWithNormals(make([]float32, 15)); err == nil {
		t.Error("expected error for degenerate triangle")
	}
}

func TestPrimitivesDraw(t *testing.T) {
	dev := gputest.NewRecorder()
	p, err := NewPrimitives(dev)
	if err != nil {
		t.Fatalf("NewPrimitives() error = %v", err)
	}

	if err := p.Draw(RangePyramid); err != nil {
		t.Fatalf("Draw() error = %v", err)
	}
	if len(dev.Draws) != 1 {
		t.Fatalf("draws = %d, want 1", len(dev.Draws))
	}
	if d := dev.Draws[0]; d.Mode != gpu.Triangles || d.First != 42 || d.Count != 18 {
		t.Errorf("draw = %+v, want pyramid triangles 42+18", d)
	}

	if err := p.Draw("sphere"); err == nil {
		t.Error("expected error for unknown primitive")
	}

	p.Destroy()
	if arrays, buffers, _ := dev.Live(); arrays != 0 || buffers != 0 {
		t.Errorf("live = %d arrays, %d buffers after Destroy", arrays, buffers)
	}
}
