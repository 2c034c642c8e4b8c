package mesh

import (
	"fmt"

	"github.com/Faultbox/stilllife/internal/engine/gpu"
)

// buffer owns one vertex array and one vertex buffer holding a Geometry.
type buffer struct {
	dev    gpu.Device
	vao    uint32
	vbo    uint32
	ranges []Range
}

// upload allocates GPU objects for geom. On failure nothing stays allocated.
// An empty geometry allocates nothing.
func upload(dev gpu.Device, geom *Geometry) (*buffer, error) {
	b := &buffer{dev: dev, ranges: geom.Ranges}
	if len(geom.Vertices) == 0 {
		return b, nil
	}

	done := false
	defer func() {
		if !done {
			b.release()
		}
	}()

	var err error
	if b.vao, err = dev.CreateVertexArray(); err != nil {
		return nil, fmt.Errorf("creating vertex array: %w", err)
	}
	if b.vbo, err = dev.CreateBuffer(); err != nil {
		return nil, fmt.Errorf("creating vertex buffer: %w", err)
	}

	dev.UploadVertices(b.vao, b.vbo, geom.Floats(), Layout)
	done = true
	return b, nil
}

// drawAll binds the vertex array and issues one draw per range.
func (b *buffer) drawAll() {
	if b.vao == 0 {
		return
	}
	b.dev.BindVertexArray(b.vao)
	for _, r := range b.ranges {
		b.dev.DrawArrays(r.Mode, r.First, r.Count)
	}
}

// draw issues the draw for one range.
func (b *buffer) draw(r Range) {
	if b.vao == 0 {
		return
	}
	b.dev.BindVertexArray(b.vao)
	b.dev.DrawArrays(r.Mode, r.First, r.Count)
}

// release deletes whatever handles are live. Safe to call repeatedly.
func (b *buffer) release() {
	if b.vbo != 0 {
		b.dev.DeleteBuffer(b.vbo)
		b.vbo = 0
	}
	if b.vao != 0 {
		b.dev.DeleteVertexArray(b.vao)
		b.vao = 0
	}
}
