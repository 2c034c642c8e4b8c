// Package gldevice implements gpu.Device on top of OpenGL 4.1 core.
package gldevice

import (
	"fmt"
	"image"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/stilllife/internal/engine/gpu"
	"github.com/Faultbox/stilllife/internal/logger"
)

// Device issues gpu.Device calls against the current OpenGL context.
// IMPORTANT: gl.Init must have run on the context's thread before use.
type Device struct {
	log *zap.Logger
}

// New returns a device bound to the current context.
func New() *Device {
	return &Device{log: logger.Named("gl")}
}

// Init loads OpenGL function pointers and sets the default state for the scene.
func Init() error {
	if err := gl.Init(); err != nil {
		return fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	return nil
}

// CreateVertexArray implements gpu.Device.
func (d *Device) CreateVertexArray() (uint32, error) {
	var vao uint32
	gl.GenVertexArrays(1, &vao)
	if vao == 0 {
		return 0, fmt.Errorf("glGenVertexArrays (0x%x): %w", gl.GetError(), gpu.ErrAllocation)
	}
	return vao, nil
}

// CreateBuffer implements gpu.Device.
func (d *Device) CreateBuffer() (uint32, error) {
	var vbo uint32
	gl.GenBuffers(1, &vbo)
	if vbo == 0 {
		return 0, fmt.Errorf("glGenBuffers (0x%x): %w", gl.GetError(), gpu.ErrAllocation)
	}
	return vbo, nil
}

// UploadVertices implements gpu.Device.
func (d *Device) UploadVertices(vao, vbo uint32, data []float32, layout gpu.VertexLayout) {
	if len(data) == 0 {
		return
	}

	gl.BindVertexArray(vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, unsafe.Pointer(&data[0]), gl.STATIC_DRAW)

	stride := int32(layout.Stride * 4)
	for _, a := range layout.Attributes {
		gl.VertexAttribPointerWithOffset(a.Location, a.Components, gl.FLOAT, false, stride, uintptr(a.Offset*4))
		gl.EnableVertexAttribArray(a.Location)
	}

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	d.log.Debug("vertices uploaded",
		zap.Uint32("vao", vao),
		zap.Uint32("vbo", vbo),
		zap.Int("floats", len(data)),
	)
}

// BindVertexArray implements gpu.Device.
func (d *Device) BindVertexArray(vao uint32) {
	gl.BindVertexArray(vao)
}

// DrawArrays implements gpu.Device.
func (d *Device) DrawArrays(mode gpu.Primitive, first, count int32) {
	gl.DrawArrays(glMode(mode), first, count)
}

// DeleteVertexArray implements gpu.Device.
func (d *Device) DeleteVertexArray(vao uint32) {
	gl.DeleteVertexArrays(1, &vao)
}

// DeleteBuffer implements gpu.Device.
func (d *Device) DeleteBuffer(vbo uint32) {
	gl.DeleteBuffers(1, &vbo)
}

// CreateTexture implements gpu.Device.
func (d *Device) CreateTexture(img *image.RGBA) (uint32, error) {
	if img == nil || len(img.Pix) == 0 {
		return 0, fmt.Errorf("empty image: %w", gpu.ErrAllocation)
	}

	var texID uint32
	gl.GenTextures(1, &texID)
	if texID == 0 {
		return 0, fmt.Errorf("glGenTextures (0x%x): %w", gl.GetError(), gpu.ErrAllocation)
	}

	gl.BindTexture(gl.TEXTURE_2D, texID)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(img.Bounds().Dx()), int32(img.Bounds().Dy()), 0, gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&img.Pix[0]))
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	return texID, nil
}

// BindTexture implements gpu.Device.
func (d *Device) BindTexture(unit uint32, tex uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, tex)
}

// DeleteTexture implements gpu.Device.
func (d *Device) DeleteTexture(tex uint32) {
	gl.DeleteTextures(1, &tex)
}

// Viewport implements gpu.Device.
func (d *Device) Viewport(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}

// Clear implements gpu.Device. It clears color and depth.
func (d *Device) Clear(r, g, b float32) {
	gl.ClearColor(r, g, b, 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// ReadPixels implements gpu.Device.
func (d *Device) ReadPixels(width, height int) []byte {
	pixels := make([]byte, width*height*4)
	if len(pixels) == 0 {
		return pixels
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels
}

func glMode(p gpu.Primitive) uint32 {
	switch p {
	case gpu.TriangleStrip:
		return gl.TRIANGLE_STRIP
	case gpu.TriangleFan:
		return gl.TRIANGLE_FAN
	default:
		return gl.TRIANGLES
	}
}

var _ gpu.Device = (*Device)(nil)
