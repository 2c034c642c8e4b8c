// Package scene describes the still-life: which meshes are drawn where, with
// which texture, and how the view is projected.
package scene

import (
	"fmt"

	"github.com/Faultbox/stilllife/internal/engine/mesh"
	"github.com/Faultbox/stilllife/pkg/math"
)

// Texture files used by the scene, relative to the texture directory.
const (
	TextureBackground = "Background.jpg"
	TextureBottle     = "polish-bottle.jpg"
	TextureBottleCap  = "bottle-cap.jpg"
	TextureSpeaker    = "speaker.jpg"
	TextureLeather    = "brown-leather.jpg"
	TextureChecker    = "red-checker.jpg"
)

// OpKind is the kind of a transform step.
type OpKind int

const (
	OpScale OpKind = iota
	OpTranslate
	OpRotate
)

// Op is one transform step of an object's model matrix.
type Op struct {
	Kind  OpKind
	Vec   math.Vec3 // scale factors, offset, or rotation axis
	Angle float32   // degrees, OpRotate only
}

// Scale returns a scale step.
func Scale(x, y, z float32) Op {
	return Op{Kind: OpScale, Vec: math.Vec3{X: x, Y: y, Z: z}}
}

// Translate returns a translation step.
func Translate(x, y, z float32) Op {
	return Op{Kind: OpTranslate, Vec: math.Vec3{X: x, Y: y, Z: z}}
}

// Rotate returns a rotation of deg degrees about axis.
func Rotate(deg float32, axis math.Vec3) Op {
	return Op{Kind: OpRotate, Vec: axis, Angle: deg}
}

// Matrix returns the step as a matrix.
func (o Op) Matrix() math.Mat4 {
	switch o.Kind {
	case OpScale:
		return math.Scale(o.Vec)
	case OpTranslate:
		return math.Translate(o.Vec)
	case OpRotate:
		if o.Angle == 0 {
			return math.Identity()
		}
		return math.RotateAxis(o.Vec, math.Radians(o.Angle))
	default:
		return math.Identity()
	}
}

// ModelMatrix composes ops by post-multiplication, starting from identity.
// The last op is the first one applied to vertices.
func ModelMatrix(ops ...Op) math.Mat4 {
	m := math.Identity()
	for _, op := range ops {
		m = m.Mul(op.Matrix())
	}
	return m
}

// Shape is the mesh an object is drawn with.
type Shape int

const (
	ShapeCube Shape = iota
	ShapePlane
	ShapePyramid
	ShapeCylinder
)

func (s Shape) String() string {
	switch s {
	case ShapeCube:
		return "cube"
	case ShapePlane:
		return "plane"
	case ShapePyramid:
		return "pyramid"
	case ShapeCylinder:
		return "cylinder"
	default:
		return fmt.Sprintf("Shape(%d)", int(s))
	}
}

// Object is one textured item of the still-life.
type Object struct {
	Name     string
	Shape    Shape
	Cylinder mesh.CylinderParams // ShapeCylinder only
	Texture  string
	Ops      []Op
}

// Model returns the object's model matrix.
func (o Object) Model() math.Mat4 {
	return ModelMatrix(o.Ops...)
}

var (
	axisX   = math.Vec3{X: 1}
	axisY   = math.Vec3{Y: 1}
	axisXYZ = math.Vec3{X: 1, Y: 1, Z: 1}
)

func closedCylinder(radius float32, segments int, height float32) mesh.CylinderParams {
	return mesh.CylinderParams{
		Radius:    radius,
		Segments:  segments,
		Height:    height,
		BottomCap: true,
		TopCap:    true,
		Sides:     true,
	}
}

// Objects returns the still-life in draw order.
func Objects() []Object {
	return []Object{
		{
			Name:    "bottle",
			Shape:   ShapeCube,
			Texture: TextureBottle,
			Ops:     []Op{Scale(0.4, 0.5, 0.3), Translate(3, -4.5, 0), Rotate(-15, axisY)},
		},
		{
			Name:    "book",
			Shape:   ShapeCube,
			Texture: TextureLeather,
			Ops:     []Op{Rotate(-15, axisY), Scale(1.5, 0.5, 2), Translate(-0.05, -4.5, 1)},
		},
		{
			Name:    "table",
			Shape:   ShapePlane,
			Texture: TextureBackground,
			Ops:     []Op{Scale(7, 5, 7), Translate(0, -1, 0), Rotate(-90, axisY)},
		},
		{
			Name:     "bottle cap",
			Shape:    ShapeCylinder,
			Cylinder: closedCylinder(0.25, 20, 1),
			Texture:  TextureBottleCap,
			Ops:      []Op{Scale(0.25, 0.5, 0.25), Translate(4.75, -4, 0), Rotate(-15, axisY)},
		},
		{
			Name:     "speaker",
			Shape:    ShapeCylinder,
			Cylinder: closedCylinder(2, 20, 1),
			Texture:  TextureSpeaker,
			Ops:      []Op{Scale(0.4, 1.25, 0.4), Translate(0, -1.5, -1.5), Rotate(0, axisX)},
		},
		{
			Name:    "pyramid",
			Shape:   ShapePyramid,
			Texture: TextureChecker,
			Ops:     []Op{Scale(2.5, 2.5, 1), Translate(-0.5, -0.5, -2), Rotate(0, axisXYZ)},
		},
	}
}

// Textures returns the distinct texture files of objs in first-use order.
func Textures(objs []Object) []string {
	seen := make(map[string]bool, len(objs))
	var files []string
	for _, o := range objs {
		if o.Texture == "" || seen[o.Texture] {
			continue
		}
		seen[o.Texture] = true
		files = append(files, o.Texture)
	}
	return files
}

// LightMarker is the mesh drawn at each light position.
var LightMarker = closedCylinder(1, 30, 1.5)

// LightMarkerScale shrinks the marker mesh.
const LightMarkerScale = 0.2

// LightMarkerModel places a marker at a light position.
func LightMarkerModel(pos math.Vec3) math.Mat4 {
	return ModelMatrix(
		Translate(pos.X, pos.Y, pos.Z),
		Scale(LightMarkerScale, LightMarkerScale, LightMarkerScale),
	)
}
