// Package mesh builds renderable geometry and owns its GPU buffers.
package mesh

import "github.com/Faultbox/stilllife/internal/engine/gpu"

// Vertex is one interleaved vertex: position, normal, texture coordinate.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	TexCoord [2]float32
}

// floatsPerVertex is the interleaved stride of Vertex.
const floatsPerVertex = 8

// Layout is the attribute layout shared by every mesh in this package.
// Shaders bind position to location 0, normal to 1 and texcoord to 2.
var Layout = gpu.VertexLayout{
	Stride: floatsPerVertex,
	Attributes: []gpu.Attribute{
		{Location: 0, Components: 3, Offset: 0},
		{Location: 1, Components: 3, Offset: 3},
		{Location: 2, Components: 2, Offset: 6},
	},
}

// Range is a drawable slice of a vertex buffer with its own topology.
type Range struct {
	Name  string
	Mode  gpu.Primitive
	First int32
	Count int32
}

// Geometry is CPU-side mesh data: one contiguous vertex sequence split into ranges.
type Geometry struct {
	Vertices []Vertex
	Ranges   []Range
}

// Range returns the named range.
func (g *Geometry) Range(name string) (Range, bool) {
	for _, r := range g.Ranges {
		if r.Name == name {
			return r, true
		}
	}
	return Range{}, false
}

// Floats flattens the vertices into the interleaved layout.
func (g *Geometry) Floats() []float32 {
	out := make([]float32, 0, len(g.Vertices)*floatsPerVertex)
	for _, v := range g.Vertices {
		out = append(out,
			v.Position[0], v.Position[1], v.Position[2],
			v.Normal[0], v.Normal[1], v.Normal[2],
			v.TexCoord[0], v.TexCoord[1],
		)
	}
	return out
}

// appendRange appends vertices as a new range and records its offsets.
func (g *Geometry) appendRange(name string, mode gpu.Primitive, verts []Vertex) {
	g.Ranges = append(g.Ranges, Range{
		Name:  name,
		Mode:  mode,
		First: int32(len(g.Vertices)),
		Count: int32(len(verts)),
	})
	g.Vertices = append(g.Vertices, verts...)
}
