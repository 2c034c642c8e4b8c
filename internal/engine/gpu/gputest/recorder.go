// Package gputest provides an in-memory gpu.Device for tests.
package gputest

import (
	"fmt"
	"image"

	"github.com/Faultbox/stilllife/internal/engine/gpu"
)

// Draw is one recorded DrawArrays call.
type Draw struct {
	VAO   uint32
	Mode  gpu.Primitive
	First int32
	Count int32
}

// Upload is one recorded UploadVertices call.
type Upload struct {
	VAO, VBO uint32
	Data     []float32
	Layout   gpu.VertexLayout
}

// Recorder implements gpu.Device by tracking handles in maps.
// Set the Fail* fields to make the next allocations of that kind fail.
type Recorder struct {
	FailVertexArrays bool
	FailBuffers      bool
	FailTextures     bool

	Draws   []Draw
	Uploads []Upload

	next     uint32
	bound    uint32
	arrays   map[uint32]bool
	buffers  map[uint32]bool
	textures map[uint32]bool
	units    map[uint32]uint32

	// DoubleFrees counts deletes of handles that were not live.
	DoubleFrees int

	// Clears counts Clear calls; ClearColor is the last color used.
	Clears     int
	ClearColor [3]float32
	// ViewportSize is the last size passed to Viewport.
	ViewportSize [2]int
	// Fill is the RGBA value ReadPixels reports for every pixel.
	Fill [4]byte
}

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{
		arrays:   make(map[uint32]bool),
		buffers:  make(map[uint32]bool),
		textures: make(map[uint32]bool),
		units:    make(map[uint32]uint32),
	}
}

func (r *Recorder) alloc(live map[uint32]bool) uint32 {
	r.next++
	live[r.next] = true
	return r.next
}

// CreateVertexArray implements gpu.Device.
func (r *Recorder) CreateVertexArray() (uint32, error) {
	if r.FailVertexArrays {
		return 0, fmt.Errorf("vertex array: %w", gpu.ErrAllocation)
	}
	return r.alloc(r.arrays), nil
}

// CreateBuffer implements gpu.Device.
func (r *Recorder) CreateBuffer() (uint32, error) {
	if r.FailBuffers {
		return 0, fmt.Errorf("buffer: %w", gpu.ErrAllocation)
	}
	return r.alloc(r.buffers), nil
}

// UploadVertices implements gpu.Device.
func (r *Recorder) UploadVertices(vao, vbo uint32, data []float32, layout gpu.VertexLayout) {
	cp := make([]float32, len(data))
	copy(cp, data)
	r.Uploads = append(r.Uploads, Upload{VAO: vao, VBO: vbo, Data: cp, Layout: layout})
}

// BindVertexArray implements gpu.Device.
func (r *Recorder) BindVertexArray(vao uint32) {
	r.bound = vao
}

// DrawArrays implements gpu.Device.
func (r *Recorder) DrawArrays(mode gpu.Primitive, first, count int32) {
	r.Draws = append(r.Draws, Draw{VAO: r.bound, Mode: mode, First: first, Count: count})
}

// DeleteVertexArray implements gpu.Device.
func (r *Recorder) DeleteVertexArray(vao uint32) {
	r.release(r.arrays, vao)
}

// DeleteBuffer implements gpu.Device.
func (r *Recorder) DeleteBuffer(vbo uint32) {
	r.release(r.buffers, vbo)
}

// CreateTexture implements gpu.Device.
func (r *Recorder) CreateTexture(img *image.RGBA) (uint32, error) {
	if r.FailTextures || img == nil {
		return 0, fmt.Errorf("texture: %w", gpu.ErrAllocation)
	}
	return r.alloc(r.textures), nil
}

// BindTexture implements gpu.Device.
func (r *Recorder) BindTexture(unit uint32, tex uint32) {
	r.units[unit] = tex
}

// DeleteTexture implements gpu.Device.
func (r *Recorder) DeleteTexture(tex uint32) {
	r.release(r.textures, tex)
}

// Viewport implements gpu.Device.
func (r *Recorder) Viewport(width, height int) {
	r.ViewportSize = [2]int{width, height}
}

// Clear implements gpu.Device.
func (r *Recorder) Clear(red, green, blue float32) {
	r.Clears++
	r.ClearColor = [3]float32{red, green, blue}
}

// ReadPixels implements gpu.Device.
func (r *Recorder) ReadPixels(width, height int) []byte {
	pixels := make([]byte, width*height*4)
	for i := 0; i < len(pixels); i += 4 {
		copy(pixels[i:i+4], r.Fill[:])
	}
	return pixels
}

func (r *Recorder) release(live map[uint32]bool, h uint32) {
	if !live[h] {
		r.DoubleFrees++
		return
	}
	delete(live, h)
}

// Live returns the number of vertex arrays, buffers and textures not yet deleted.
func (r *Recorder) Live() (arrays, buffers, textures int) {
	return len(r.arrays), len(r.buffers), len(r.textures)
}

// BoundTexture returns the texture last bound to unit.
func (r *Recorder) BoundTexture(unit uint32) uint32 {
	return r.units[unit]
}

var _ gpu.Device = (*Recorder)(nil)
