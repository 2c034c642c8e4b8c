package texture

import (
	"fmt"
	"image"
	"io"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"github.com/Faultbox/stilllife/internal/engine/gpu"
	"github.com/Faultbox/stilllife/internal/logger"
)

// Fallback checker dimensions.
const (
	fallbackSize = 64
	fallbackCell = 8
)

// Texture is an uploaded 2D texture.
type Texture struct {
	dev    gpu.Device
	id     uint32
	name   string
	width  int
	height int
}

// New uploads img to dev.
func New(dev gpu.Device, name string, img *image.RGBA) (*Texture, error) {
	if img == nil {
		return nil, fmt.Errorf("texture %s: nil image", name)
	}
	id, err := dev.CreateTexture(img)
	if err != nil {
		return nil, fmt.Errorf("texture %s: %w", name, err)
	}
	b := img.Bounds()
	return &Texture{dev: dev, id: id, name: name, width: b.Dx(), height: b.Dy()}, nil
}

// Load decodes path and uploads it. When the file is missing or cannot be
// decoded a checker texture is uploaded instead, a warning is logged and
// fallback is true. Only GPU failures are returned as errors.
func Load(dev gpu.Device, path string) (tex *Texture, fallback bool, err error) {
	name := filepath.Base(path)

	img, loadErr := LoadFile(path)
	if loadErr != nil {
		logger.Warn("texture failed to load, using fallback",
			zap.String("path", path),
			zap.Error(loadErr),
		)
		img = Checker(fallbackSize, fallbackCell)
		fallback = true
	}

	tex, err = New(dev, name, img)
	if err != nil {
		return nil, fallback, err
	}

	logger.Debug("texture loaded",
		zap.String("name", name),
		zap.Int("width", tex.width),
		zap.Int("height", tex.height),
		zap.Bool("fallback", fallback),
	)
	return tex, fallback, nil
}

// ID returns the device handle.
func (t *Texture) ID() uint32 { return t.id }

// Name returns the file name the texture was loaded from.
func (t *Texture) Name() string { return t.name }

// Size returns the texture dimensions in pixels.
func (t *Texture) Size() (width, height int) { return t.width, t.height }

// Bind binds the texture to a texture unit.
func (t *Texture) Bind(unit uint32) {
	if t.id == 0 {
		return
	}
	t.dev.BindTexture(unit, t.id)
}

// Destroy releases the texture. Later calls are no-ops.
func (t *Texture) Destroy() {
	if t.id == 0 {
		return
	}
	t.dev.DeleteTexture(t.id)
	t.id = 0
}

// Set is a collection of textures keyed by file name.
type Set struct {
	textures  map[string]*Texture
	fallbacks int
}

// LoadSet loads every file from dir, reporting progress to w when it is
// non-nil. On a GPU failure everything uploaded so far is released.
func LoadSet(dev gpu.Device, dir string, files []string, w io.Writer) (*Set, error) {
	s := &Set{textures: make(map[string]*Texture, len(files))}

	var bar *progressbar.ProgressBar
	if w != nil {
		bar = progressbar.NewOptions(len(files),
			progressbar.OptionSetWriter(w),
			progressbar.OptionSetDescription("loading textures"),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}

	for _, file := range files {
		if _, ok := s.textures[file]; ok {
			continue
		}
		tex, fallback, err := Load(dev, filepath.Join(dir, file))
		if err != nil {
			s.Destroy()
			return nil, err
		}
		s.textures[file] = tex
		if fallback {
			s.fallbacks++
		}
		if bar != nil {
			_ = bar.Add(1)
		}
	}
	if bar != nil {
		_ = bar.Finish()
	}

	logger.Info("textures loaded",
		zap.Int("count", len(s.textures)),
		zap.Int("fallbacks", s.fallbacks),
		zap.String("dir", dir),
	)
	return s, nil
}

// Get returns the texture loaded from file.
func (s *Set) Get(file string) (*Texture, bool) {
	t, ok := s.textures[file]
	return t, ok
}

// Len returns the number of textures.
func (s *Set) Len() int { return len(s.textures) }

// Fallbacks returns how many textures were replaced by the checker.
func (s *Set) Fallbacks() int { return s.fallbacks }

// Destroy releases every texture in the set.
func (s *Set) Destroy() {
	for _, t := range s.textures {
		t.Destroy()
	}
}
