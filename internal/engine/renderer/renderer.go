// Package renderer draws the still-life scene.
package renderer

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/Faultbox/stilllife/internal/engine/gpu"
	"github.com/Faultbox/stilllife/internal/engine/lighting"
	"github.com/Faultbox/stilllife/internal/engine/mesh"
	"github.com/Faultbox/stilllife/internal/engine/scene"
	"github.com/Faultbox/stilllife/internal/engine/texture"
	"github.com/Faultbox/stilllife/internal/logger"
	"github.com/Faultbox/stilllife/pkg/math"
)

// Uniform names shared with the embedded shaders.
const (
	uniformModel      = "uModel"
	uniformView       = "uView"
	uniformProjection = "uProjection"
	uniformTexture    = "uTexture"
	uniformLightPos   = "uLightPos"
	uniformLightColor = "uLightColor"
	uniformAmbient    = "uAmbient"
	uniformColor      = "uColor"
)

// ClearColor is the background color.
var ClearColor = [3]float32{0.1, 0.2, 0.2}

// Program is a linked shader program.
type Program interface {
	Use()
	SetMat4(name string, m math.Mat4)
	SetVec3(name string, v math.Vec3)
	SetVec3Array(name string, values []float32)
	SetFloat(name string, v float32)
	SetInt(name string, v int32)
	Delete()
}

// Config holds renderer configuration.
type Config struct {
	Objects    []scene.Object
	TextureDir string
	Ambient    float32
	Width      int
	Height     int

	// Progress receives a texture loading progress bar when non-nil.
	Progress io.Writer
}

// Frame is the per-frame input to Render.
type Frame struct {
	View       math.Mat4
	Projection math.Mat4
	Lights     *lighting.Rig
}

type drawItem struct {
	object   scene.Object
	model    math.Mat4
	texture  *texture.Texture
	cylinder *mesh.Cylinder
}

// Renderer owns every GPU resource of the scene. Meshes and textures are
// created once in New and reused by every Render.
type Renderer struct {
	config Config
	dev    gpu.Device
	log    *zap.Logger

	objectProgram Program
	lightProgram  Program

	primitives *mesh.Primitives
	cylinders  map[mesh.CylinderParams]*mesh.Cylinder
	marker     *mesh.Cylinder
	textures   *texture.Set
	items      []drawItem
}

// New uploads the scene. It takes ownership of both programs and deletes
// them on Close, or immediately if New fails.
func New(dev gpu.Device, objectProgram, lightProgram Program, cfg Config) (*Renderer, error) {
	r := &Renderer{
		config:        cfg,
		dev:           dev,
		log:           logger.Named("renderer"),
		objectProgram: objectProgram,
		lightProgram:  lightProgram,
		cylinders:     make(map[mesh.CylinderParams]*mesh.Cylinder),
	}

	if err := r.build(); err != nil {
		r.Close()
		return nil, err
	}

	r.Resize(cfg.Width, cfg.Height)

	r.log.Info("scene uploaded",
		zap.Int("objects", len(r.items)),
		zap.Int("cylinders", len(r.cylinders)),
		zap.Int("textures", r.textures.Len()),
	)
	return r, nil
}

func (r *Renderer) build() error {
	var err error
	r.primitives, err = mesh.NewPrimitives(r.dev)
	if err != nil {
		return fmt.Errorf("failed to create primitives: %w", err)
	}

	r.textures, err = texture.LoadSet(r.dev, r.config.TextureDir, scene.Textures(r.config.Objects), r.config.Progress)
	if err != nil {
		return fmt.Errorf("failed to load textures: %w", err)
	}

	r.marker, err = r.cylinder(scene.LightMarker)
	if err != nil {
		return fmt.Errorf("failed to create light marker: %w", err)
	}

	for _, obj := range r.config.Objects {
		item := drawItem{object: obj, model: obj.Model()}
		item.texture, _ = r.textures.Get(obj.Texture)

		if obj.Shape == scene.ShapeCylinder {
			item.cylinder, err = r.cylinder(obj.Cylinder)
			if err != nil {
				return fmt.Errorf("object %s: %w", obj.Name, err)
			}
		}
		r.items = append(r.items, item)
	}

	r.objectProgram.Use()
	r.objectProgram.SetInt(uniformTexture, 0)
	return nil
}

// cylinder returns the shared mesh for p, creating it on first use.
func (r *Renderer) cylinder(p mesh.CylinderParams) (*mesh.Cylinder, error) {
	if c, ok := r.cylinders[p]; ok {
		return c, nil
	}
	c, err := mesh.NewCylinder(r.dev, p)
	if err != nil {
		return nil, err
	}
	r.cylinders[p] = c
	return c, nil
}

// Resize updates the viewport.
func (r *Renderer) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	r.config.Width = width
	r.config.Height = height
	r.dev.Viewport(width, height)
	r.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Render draws one frame.
func (r *Renderer) Render(f Frame) {
	r.dev.Clear(ClearColor[0], ClearColor[1], ClearColor[2])

	p := r.objectProgram
	p.Use()
	p.SetMat4(uniformView, f.View)
	p.SetMat4(uniformProjection, f.Projection)
	p.SetFloat(uniformAmbient, r.config.Ambient)
	if f.Lights != nil {
		p.SetVec3Array(uniformLightPos, f.Lights.Positions())
		p.SetVec3Array(uniformLightColor, f.Lights.Colors())
	}

	for _, item := range r.items {
		if item.texture != nil {
			item.texture.Bind(0)
		}
		p.SetMat4(uniformModel, item.model)
		r.drawObject(item)
	}

	if f.Lights == nil {
		return
	}

	lp := r.lightProgram
	lp.Use()
	lp.SetMat4(uniformView, f.View)
	lp.SetMat4(uniformProjection, f.Projection)
	for _, light := range f.Lights.Lights {
		lp.SetMat4(uniformModel, scene.LightMarkerModel(light.Position))
		lp.SetVec3(uniformColor, math.Vec3{X: light.Color[0], Y: light.Color[1], Z: light.Color[2]})
		r.marker.Render()
	}
}

func (r *Renderer) drawObject(item drawItem) {
	var name string
	switch item.object.Shape {
	case scene.ShapeCylinder:
		item.cylinder.Render()
		return
	case scene.ShapeCube:
		name = mesh.RangeCube
	case scene.ShapePlane:
		name = mesh.RangePlane
	case scene.ShapePyramid:
		name = mesh.RangePyramid
	}
	if err := r.primitives.Draw(name); err != nil {
		r.log.Warn("skipping object", zap.String("object", item.object.Name), zap.Error(err))
	}
}

// Capture reads back the current frame as bottom-up RGBA rows.
func (r *Renderer) Capture() (pixels []byte, width, height int) {
	width, height = r.config.Width, r.config.Height
	return r.dev.ReadPixels(width, height), width, height
}

// Close releases every GPU resource. It is safe to call more than once.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")

	for p, c := range r.cylinders {
		c.Destroy()
		delete(r.cylinders, p)
	}
	if r.primitives != nil {
		r.primitives.Destroy()
		r.primitives = nil
	}
	if r.textures != nil {
		r.textures.Destroy()
		r.textures = nil
	}
	if r.objectProgram != nil {
		r.objectProgram.Delete()
		r.objectProgram = nil
	}
	if r.lightProgram != nil {
		r.lightProgram.Delete()
		r.lightProgram = nil
	}
	r.items = nil
	r.marker = nil
}
