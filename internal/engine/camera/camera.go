// Package camera provides camera implementations for 3D rendering.
package camera

import (
	gomath "math"

	"github.com/Faultbox/stilllife/pkg/math"
)

// Direction is a keyboard movement direction relative to the camera.
type Direction int

const (
	Forward Direction = iota
	Backward
	Left
	Right
	Up
	Down
)

func (d Direction) String() string {
	switch d {
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	case Left:
		return "left"
	case Right:
		return "right"
	case Up:
		return "up"
	case Down:
		return "down"
	default:
		return "unknown"
	}
}

// Defaults for a new FlyCamera.
const (
	DefaultYaw         = -90.0
	DefaultPitch       = 0.0
	DefaultSpeed       = 2.5
	DefaultSensitivity = 0.1
	DefaultZoom        = 45.0

	MaxPitch = 89.0
	MinZoom  = 1.0
	MaxZoom  = 45.0
)

// FlyCamera is a first-person camera driven by yaw/pitch angles in degrees.
//
// Front, Up and Right are derived from Yaw and Pitch and are recomputed on
// every angle change; set the angles through the Process methods or
// SetOrientation, never the vectors directly.
type FlyCamera struct {
	Position math.Vec3
	Front    math.Vec3
	Up       math.Vec3
	Right    math.Vec3
	WorldUp  math.Vec3

	Yaw   float32
	Pitch float32 // kept within [-MaxPitch, MaxPitch]

	MovementSpeed    float32 // world units per second
	MouseSensitivity float32 // degrees per pixel
	Zoom             float32 // vertical field of view in degrees, within [MinZoom, MaxZoom]
}

// Option configures a FlyCamera at construction.
type Option func(*FlyCamera)

// WithMovementSpeed sets the keyboard speed in units per second.
func WithMovementSpeed(speed float32) Option {
	return func(c *FlyCamera) { c.MovementSpeed = speed }
}

// WithMouseSensitivity sets degrees of rotation per pixel of cursor motion.
func WithMouseSensitivity(sens float32) Option {
	return func(c *FlyCamera) { c.MouseSensitivity = sens }
}

// WithZoom sets the initial field of view in degrees.
func WithZoom(zoom float32) Option {
	return func(c *FlyCamera) { c.Zoom = zoom }
}

// WithYawPitch sets the initial orientation in degrees.
func WithYawPitch(yaw, pitch float32) Option {
	return func(c *FlyCamera) {
		c.Yaw = yaw
		c.Pitch = pitch
	}
}

// New creates a camera at position looking down -Z with world up +Y.
func New(position math.Vec3, opts ...Option) *FlyCamera {
	c := &FlyCamera{
		Position:         position,
		WorldUp:          math.Vec3{X: 0, Y: 1, Z: 0},
		Yaw:              DefaultYaw,
		Pitch:            DefaultPitch,
		MovementSpeed:    DefaultSpeed,
		MouseSensitivity: DefaultSensitivity,
		Zoom:             DefaultZoom,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.Pitch = math.Clamp(c.Pitch, -MaxPitch, MaxPitch)
	c.Zoom = math.Clamp(c.Zoom, MinZoom, MaxZoom)
	c.updateVectors()
	return c
}

// ViewMatrix returns the world-to-eye transform.
func (c *FlyCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position, c.Position.Add(c.Front), c.Up)
}

// ProcessKeyboard moves the camera for dt seconds in the given direction.
// Up and Down follow WorldUp rather than the camera's tilted Up.
func (c *FlyCamera) ProcessKeyboard(dir Direction, dt float32) {
	velocity := c.MovementSpeed * dt

	switch dir {
	case Forward:
		c.Position = c.Position.Add(c.Front.Scale(velocity))
	case Backward:
		c.Position = c.Position.Sub(c.Front.Scale(velocity))
	case Left:
		c.Position = c.Position.Sub(c.Right.Scale(velocity))
	case Right:
		c.Position = c.Position.Add(c.Right.Scale(velocity))
	case Up:
		c.Position = c.Position.Add(c.WorldUp.Scale(velocity))
	case Down:
		c.Position = c.Position.Sub(c.WorldUp.Scale(velocity))
	}
}

// ProcessMouseMovement turns the camera by a cursor delta in pixels.
// yOffset is positive when the cursor moves up.
func (c *FlyCamera) ProcessMouseMovement(xOffset, yOffset float32) {
	c.Yaw += xOffset * c.MouseSensitivity
	c.Pitch += yOffset * c.MouseSensitivity

	// Past +-90 the basis flips.
	c.Pitch = math.Clamp(c.Pitch, -MaxPitch, MaxPitch)

	c.updateVectors()
}

// ProcessMouseScroll narrows (positive yOffset) or widens the field of view.
func (c *FlyCamera) ProcessMouseScroll(yOffset float32) {
	c.Zoom = math.Clamp(c.Zoom-yOffset, MinZoom, MaxZoom)
}

// SetOrientation sets yaw and pitch in degrees and rebuilds the basis.
func (c *FlyCamera) SetOrientation(yaw, pitch float32) {
	c.Yaw = yaw
	c.Pitch = math.Clamp(pitch, -MaxPitch, MaxPitch)
	c.updateVectors()
}

// updateVectors rebuilds Front, Right and Up from Yaw and Pitch.
func (c *FlyCamera) updateVectors() {
	yaw := float64(math.Radians(c.Yaw))
	pitch := float64(math.Radians(c.Pitch))

	front := math.Vec3{
		X: float32(gomath.Cos(yaw) * gomath.Cos(pitch)),
		Y: float32(gomath.Sin(pitch)),
		Z: float32(gomath.Sin(yaw) * gomath.Cos(pitch)),
	}
	c.Front = front.Normalize()
	c.Right = c.Front.Cross(c.WorldUp).Normalize()
	c.Up = c.Right.Cross(c.Front).Normalize()
}
