package mesh

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/stilllife/internal/engine/gpu"
	"github.com/Faultbox/stilllife/internal/logger"
	"github.com/Faultbox/stilllife/pkg/math"
)

// Names of the static primitive ranges.
const (
	RangeCube    = "cube"
	RangePlane   = "plane"
	RangePyramid = "pyramid"
)

// Unit primitives centered on the origin, as position (x, y, z) + texcoord (u, v).
var (
	cubeData = []float32{
		-0.5, -0.5, -0.5, 0.0, 0.0,
		0.5, -0.5, -0.5, 1.0, 0.0,
		0.5, 0.5, -0.5, 1.0, 1.0,
		0.5, 0.5, -0.5, 1.0, 1.0,
		-0.5, 0.5, -0.5, 0.0, 1.0,
		-0.5, -0.5, -0.5, 0.0, 0.0,

		-0.5, -0.5, 0.5, 0.0, 0.0,
		0.5, -0.5, 0.5, 1.0, 0.0,
		0.5, 0.5, 0.5, 1.0, 1.0,
		0.5, 0.5, 0.5, 1.0, 1.0,
		-0.5, 0.5, 0.5, 0.0, 1.0,
		-0.5, -0.5, 0.5, 0.0, 0.0,

		-0.5, 0.5, 0.5, 1.0, 0.0,
		-0.5, 0.5, -0.5, 1.0, 1.0,
		-0.5, -0.5, -0.5, 0.0, 1.0,
		-0.5, -0.5, -0.5, 0.0, 1.0,
		-0.5, -0.5, 0.5, 0.0, 0.0,
		-0.5, 0.5, 0.5, 1.0, 0.0,

		0.5, 0.5, 0.5, 1.0, 0.0,
		0.5, 0.5, -0.5, 1.0, 1.0,
		0.5, -0.5, -0.5, 0.0, 1.0,
		0.5, -0.5, -0.5, 0.0, 1.0,
		0.5, -0.5, 0.5, 0.0, 0.0,
		0.5, 0.5, 0.5, 1.0, 0.0,

		-0.5, -0.5, -0.5, 0.0, 1.0,
		0.5, -0.5, -0.5, 1.0, 1.0,
		0.5, -0.5, 0.5, 1.0, 0.0,
		0.5, -0.5, 0.5, 1.0, 0.0,
		-0.5, -0.5, 0.5, 0.0, 0.0,
		-0.5, -0.5, -0.5, 0.0, 1.0,

		-0.5, 0.5, -0.5, 0.0, 1.0,
		0.5, 0.5, -0.5, 1.0, 1.0,
		0.5, 0.5, 0.5, 1.0, 0.0,
		0.5, 0.5, 0.5, 1.0, 0.0,
		-0.5, 0.5, 0.5, 0.0, 0.0,
		-0.5, 0.5, -0.5, 0.0, 1.0,
	}

	// The plane is the cube's top face.
	planeData = []float32{
		-0.5, 0.5, -0.5, 0.0, 1.0,
		0.5, 0.5, -0.5, 1.0, 1.0,
		0.5, 0.5, 0.5, 1.0, 0.0,
		0.5, 0.5, 0.5, 1.0, 0.0,
		-0.5, 0.5, 0.5, 0.0, 0.0,
		-0.5, 0.5, -0.5, 0.0, 1.0,
	}

	// Four-sided pyramid without a base; apex at (0, 0.5, 0).
	pyramidData = []float32{
		-0.5, -0.5, -0.5, 0.0, 0.0,
		0.5, -0.5, -0.5, 1.0, 0.0,
		0.0, 0.5, 0.0, 0.5, 1.0,

		-0.5, -0.5, 0.5, 0.0, 0.0,
		0.5, -0.5, 0.5, 1.0, 0.0,
		0.0, 0.5, 0.0, 0.5, 1.0,

		-0.5, -0.5, -0.5, 0.0, 1.0,
		-0.5, -0.5, 0.5, 0.0, 0.0,
		0.0, 0.5, 0.0, 0.5, 1.0,

		0.5, -0.5, -0.5, 0.0, 1.0,
		0.5, -0.5, 0.5, 0.0, 0.0,
		0.0, 0.5, 0.0, 0.5, 1.0,

		0.5, -0.5, -0.5, 1.0, 1.0,
		0.5, -0.5, 0.5, 1.0, 0.0,
		0.0, 0.5, 0.0, 0.5, 1.0,

		-0.5, -0.5, 0.5, 0.0, 0.0,
		-0.5, -0.5, -0.5, 0.0, 1.0,
		0.0, 0.5, 0.0, 0.5, 1.0,
	}
)

// BuildPrimitives packs the cube, plane and pyramid into one geometry with a
// named Triangles range each.
func BuildPrimitives() (*Geometry, error) {
	g := &Geometry{}
	for _, p := range []struct {
		name string
		data []float32
	}{
		{RangeCube, cubeData},
		{RangePlane, planeData},
		{RangePyramid, pyramidData},
	} {
		verts, err := trianglesWithNormals(p.data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p.name, err)
		}
		g.appendRange(p.name, gpu.Triangles, verts)
	}
	return g, nil
}

// trianglesWithNormals expands packed position/UV triangles into vertices with
// flat face normals. Normals are oriented away from the origin, which lies
// inside every primitive above.
func trianglesWithNormals(data []float32) ([]Vertex, error) {
	const stride = 5
	if len(data)%(3*stride) != 0 {
		return nil, fmt.Errorf("vertex data length %d is not a whole number of triangles", len(data))
	}

	verts := make([]Vertex, 0, len(data)/stride)
	for t := 0; t < len(data); t += 3 * stride {
		var pos [3]math.Vec3
		for j := 0; j < 3; j++ {
			o := t + j*stride
			pos[j] = math.Vec3{X: data[o], Y: data[o+1], Z: data[o+2]}
		}

		n := pos[1].Sub(pos[0]).Cross(pos[2].Sub(pos[0]))
		if n.Length() < 1e-6 {
			return nil, fmt.Errorf("degenerate triangle at vertex %d", t/stride)
		}
		n = n.Normalize()
		centroid := pos[0].Add(pos[1]).Add(pos[2]).Scale(1.0 / 3)
		if n.Dot(centroid) < 0 {
			n = n.Scale(-1)
		}

		for j := 0; j < 3; j++ {
			o := t + j*stride
			verts = append(verts, Vertex{
				Position: pos[j].Array(),
				Normal:   n.Array(),
				TexCoord: [2]float32{data[o+3], data[o+4]},
			})
		}
	}
	return verts, nil
}

// Primitives is the uploaded cube/plane/pyramid buffer.
type Primitives struct {
	geom *Geometry
	buf  *buffer
}

// NewPrimitives builds and uploads the static primitives.
func NewPrimitives(dev gpu.Device) (*Primitives, error) {
	geom, err := BuildPrimitives()
	if err != nil {
		return nil, fmt.Errorf("building primitives: %w", err)
	}

	buf, err := upload(dev, geom)
	if err != nil {
		return nil, fmt.Errorf("uploading primitives: %w", err)
	}

	logger.Debug("primitives created", zap.Int("vertices", len(geom.Vertices)))
	return &Primitives{geom: geom, buf: buf}, nil
}

// Draw draws the named primitive.
func (p *Primitives) Draw(name string) error {
	r, ok := p.geom.Range(name)
	if !ok {
		return fmt.Errorf("unknown primitive %q", name)
	}
	p.buf.draw(r)
	return nil
}

// Geometry returns the CPU-side geometry.
func (p *Primitives) Geometry() *Geometry {
	return p.geom
}

// Destroy releases the GPU buffers. Later calls are no-ops.
func (p *Primitives) Destroy() {
	p.buf.release()
}
