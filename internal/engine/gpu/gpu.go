// Package gpu defines the narrow graphics-device surface the engine draws through.
//
// Meshes and textures only talk to a Device, never to OpenGL directly, so
// geometry code can be exercised against an in-memory recorder.
package gpu

import (
	"errors"
	"image"
)

// ErrAllocation is returned when the device could not create a resource.
var ErrAllocation = errors.New("gpu resource allocation failed")

// Primitive is a vertex topology for DrawArrays.
type Primitive int

const (
	Triangles Primitive = iota
	TriangleStrip
	TriangleFan
)

func (p Primitive) String() string {
	switch p {
	case Triangles:
		return "triangles"
	case TriangleStrip:
		return "triangle-strip"
	case TriangleFan:
		return "triangle-fan"
	default:
		return "unknown"
	}
}

// Attribute describes one float vertex attribute inside an interleaved buffer.
type Attribute struct {
	Location   uint32
	Components int32 // floats per vertex
	Offset     int   // in floats from the start of the vertex
}

// VertexLayout describes an interleaved float vertex buffer.
type VertexLayout struct {
	Stride     int // in floats
	Attributes []Attribute
}

// Device is the subset of the graphics API the engine needs.
// Implementations are not safe for concurrent use; all calls happen on the
// thread that owns the graphics context.
type Device interface {
	CreateVertexArray() (uint32, error)
	CreateBuffer() (uint32, error)
	// UploadVertices fills vbo with data and records the layout in vao.
	UploadVertices(vao, vbo uint32, data []float32, layout VertexLayout)
	BindVertexArray(vao uint32)
	DrawArrays(mode Primitive, first, count int32)
	DeleteVertexArray(vao uint32)
	DeleteBuffer(vbo uint32)

	// CreateTexture uploads img as a mipmapped, repeat-wrapped 2D texture.
	CreateTexture(img *image.RGBA) (uint32, error)
	BindTexture(unit uint32, tex uint32)
	DeleteTexture(tex uint32)

	Viewport(width, height int)
	Clear(r, g, b float32)
	// ReadPixels returns the bottom-left origin RGBA contents of the color buffer.
	ReadPixels(width, height int) []byte
}
