package mesh

import (
	"errors"
	"fmt"
	gomath "math"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Faultbox/stilllife/internal/engine/gpu"
	"github.com/Faultbox/stilllife/internal/logger"
)

// MinSegments is the smallest radial segment count that still encloses an area.
const MinSegments = 3

// Names of the cylinder's ranges, in buffer order.
const (
	RangeBottomCap = "bottom-cap"
	RangeSides     = "sides"
	RangeTopCap    = "top-cap"
)

// Validation errors for CylinderParams.
var (
	ErrInvalidRadius   = errors.New("cylinder radius must be > 0")
	ErrInvalidSegments = fmt.Errorf("cylinder needs at least %d segments", MinSegments)
	ErrInvalidHeight   = errors.New("cylinder height must be > 0")
)

// CylinderParams describes a right circular cylinder.
//
// The axis is local +Y: the base ring sits at y = 0 and the top ring at
// y = Height. A ring point at angle a is (Radius*cos a, y, Radius*sin a).
type CylinderParams struct {
	Radius    float32
	Segments  int
	Height    float32
	BottomCap bool
	TopCap    bool
	Sides     bool
}

// Validate reports every invalid parameter.
func (p CylinderParams) Validate() error {
	var err error
	if !(p.Radius > 0) {
		err = multierr.Append(err, fmt.Errorf("%w (got %v)", ErrInvalidRadius, p.Radius))
	}
	if p.Segments < MinSegments {
		err = multierr.Append(err, fmt.Errorf("%w (got %d)", ErrInvalidSegments, p.Segments))
	}
	if !(p.Height > 0) {
		err = multierr.Append(err, fmt.Errorf("%w (got %v)", ErrInvalidHeight, p.Height))
	}
	return err
}

// Empty reports whether no surface is enabled.
func (p CylinderParams) Empty() bool {
	return !p.BottomCap && !p.TopCap && !p.Sides
}

// SideVertexCount is the length of the side triangle strip.
func SideVertexCount(segments int) int {
	return 2 * (segments + 1)
}

// CapVertexCount is the length of one cap triangle fan.
func CapVertexCount(segments int) int {
	return segments + 2
}

// BuildCylinder synthesizes the cylinder's vertices. Ranges are laid out as
// bottom cap (fan), sides (strip), top cap (fan), skipping disabled parts.
func BuildCylinder(p CylinderParams) (*Geometry, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	// Ring steps 0..Segments; the last step repeats angle 0 so the side
	// texture wraps without a seam.
	cos := make([]float32, p.Segments+1)
	sin := make([]float32, p.Segments+1)
	for i := 0; i <= p.Segments; i++ {
		if i == p.Segments {
			cos[i], sin[i] = cos[0], sin[0]
			continue
		}
		angle := 2 * gomath.Pi * float64(i) / float64(p.Segments)
		cos[i] = float32(gomath.Cos(angle))
		sin[i] = float32(gomath.Sin(angle))
	}

	g := &Geometry{}

	if p.BottomCap {
		g.appendRange(RangeBottomCap, gpu.TriangleFan, capFan(p, cos, sin, 0, -1))
	}

	if p.Sides {
		verts := make([]Vertex, 0, SideVertexCount(p.Segments))
		for i := 0; i <= p.Segments; i++ {
			x, z := p.Radius*cos[i], p.Radius*sin[i]
			normal := [3]float32{cos[i], 0, sin[i]}
			u := float32(i) / float32(p.Segments)
			verts = append(verts,
				Vertex{Position: [3]float32{x, 0, z}, Normal: normal, TexCoord: [2]float32{u, 0}},
				Vertex{Position: [3]float32{x, p.Height, z}, Normal: normal, TexCoord: [2]float32{u, 1}},
			)
		}
		g.appendRange(RangeSides, gpu.TriangleStrip, verts)
	}

	if p.TopCap {
		g.appendRange(RangeTopCap, gpu.TriangleFan, capFan(p, cos, sin, p.Height, 1))
	}

	return g, nil
}

// capFan builds a fan at height y facing ny (+1 up, -1 down). The ring runs
// with increasing angle for the bottom and decreasing for the top, so both
// caps wind counter-clockwise when seen from outside.
func capFan(p CylinderParams, cos, sin []float32, y, ny float32) []Vertex {
	normal := [3]float32{0, ny, 0}
	verts := make([]Vertex, 0, CapVertexCount(p.Segments))
	verts = append(verts, Vertex{
		Position: [3]float32{0, y, 0},
		Normal:   normal,
		TexCoord: [2]float32{0.5, 0.5},
	})
	for step := 0; step <= p.Segments; step++ {
		i := step
		if ny > 0 {
			i = p.Segments - step
		}
		verts = append(verts, Vertex{
			Position: [3]float32{p.Radius * cos[i], y, p.Radius * sin[i]},
			Normal:   normal,
			TexCoord: [2]float32{0.5 + 0.5*cos[i], 0.5 + 0.5*sin[i]},
		})
	}
	return verts
}

// Cylinder is an uploaded cylinder mesh. Build it once and call Render every frame.
type Cylinder struct {
	buf *buffer
}

// NewCylinder builds the geometry and uploads it to dev.
// If every surface is disabled the mesh is empty and a warning is logged.
func NewCylinder(dev gpu.Device, p CylinderParams) (*Cylinder, error) {
	geom, err := BuildCylinder(p)
	if err != nil {
		return nil, fmt.Errorf("building cylinder: %w", err)
	}

	if p.Empty() {
		logger.Warn("cylinder has no caps and no sides, mesh is empty",
			zap.Float32("radius", p.Radius),
			zap.Int("segments", p.Segments),
		)
	}

	buf, err := upload(dev, geom)
	if err != nil {
		return nil, fmt.Errorf("uploading cylinder: %w", err)
	}

	logger.Debug("cylinder created",
		zap.Float32("radius", p.Radius),
		zap.Int("segments", p.Segments),
		zap.Float32("height", p.Height),
		zap.Int("vertices", len(geom.Vertices)),
	)

	return &Cylinder{buf: buf}, nil
}

// Render draws every enabled part with the caller's bound shader and texture.
func (c *Cylinder) Render() {
	c.buf.drawAll()
}

// Destroy releases the GPU buffers. Later calls are no-ops.
func (c *Cylinder) Destroy() {
	c.buf.release()
}
