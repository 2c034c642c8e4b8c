// Package lighting provides the movable point lights of the scene.
package lighting

import (
	"fmt"

	"github.com/Faultbox/stilllife/pkg/math"
)

// MaxPointLights is the maximum number of point lights supported in shaders.
const MaxPointLights = 2

// PointLight represents a point light source for GPU upload.
type PointLight struct {
	Position math.Vec3
	Color    [3]float32 // RGB color (0-1 range)
}

// Axis selects the world axis a light moves along.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	default:
		return "unknown"
	}
}

// Rig holds the scene's lights and which one the keyboard moves.
type Rig struct {
	Lights [MaxPointLights]PointLight
	active int
}

// NewRig creates a rig with white primary and secondary lights.
// The primary light starts active.
func NewRig(primary, secondary math.Vec3) *Rig {
	white := [3]float32{1, 1, 1}
	return &Rig{
		Lights: [MaxPointLights]PointLight{
			{Position: primary, Color: white},
			{Position: secondary, Color: white},
		},
	}
}

// Active returns the index of the light being moved.
func (r *Rig) Active() int {
	return r.active
}

// ActiveLight returns the light being moved.
func (r *Rig) ActiveLight() *PointLight {
	return &r.Lights[r.active]
}

// Toggle switches control to the other light and returns its index.
func (r *Rig) Toggle() int {
	r.active = (r.active + 1) % MaxPointLights
	return r.active
}

// Move shifts the active light by delta along axis.
func (r *Rig) Move(axis Axis, delta float32) {
	p := &r.Lights[r.active].Position
	switch axis {
	case AxisX:
		p.X += delta
	case AxisY:
		p.Y += delta
	case AxisZ:
		p.Z += delta
	}
}

// SetColor sets the color of light i, clamping each channel to [0, 1].
func (r *Rig) SetColor(i int, c [3]float32) error {
	if i < 0 || i >= MaxPointLights {
		return fmt.Errorf("light index %d out of range", i)
	}
	for ch := range c {
		c[ch] = math.Clamp(c[ch], 0, 1)
	}
	r.Lights[i].Color = c
	return nil
}

// Positions returns positions as a flat float32 slice for GPU upload.
// Format: [x0, y0, z0, x1, y1, z1]
func (r *Rig) Positions() []float32 {
	result := make([]float32, 0, MaxPointLights*3)
	for _, light := range r.Lights {
		result = append(result, light.Position.X, light.Position.Y, light.Position.Z)
	}
	return result
}

// Colors returns colors as a flat float32 slice for GPU upload.
// Format: [r0, g0, b0, r1, g1, b1]
func (r *Rig) Colors() []float32 {
	result := make([]float32, 0, MaxPointLights*3)
	for _, light := range r.Lights {
		result = append(result, light.Color[:]...)
	}
	return result
}
