package texture

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"

	"github.com/Faultbox/stilllife/internal/engine/gpu"
	"github.com/Faultbox/stilllife/internal/engine/gpu/gputest"
)

var (
	red  = color.RGBA{R: 255, A: 255}
	blue = color.RGBA{B: 255, A: 255}
)

// twoRows returns a 2x2 image with a red top row and a blue bottom row.
func twoRows() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for x := 0; x < 2; x++ {
		img.SetRGBA(x, 0, red)
		img.SetRGBA(x, 1, blue)
	}
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode() error = %v", err)
	}
	return buf.Bytes()
}

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestDecodeFlipsRows(t *testing.T) {
	img, err := Decode(encodePNG(t, twoRows()))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if got := img.RGBAAt(0, 0); got != blue {
		t.Errorf("row 0 = %v, want blue (bottom of picture)", got)
	}
	if got := img.RGBAAt(1, 1); got != red {
		t.Errorf("row 1 = %v, want red", got)
	}
}

func TestDecodeBMP(t *testing.T) {
	var buf bytes.Buffer
	if err := bmp.Encode(&buf, twoRows()); err != nil {
		t.Fatalf("bmp.Encode() error = %v", err)
	}

	img, err := Decode(buf.Bytes())
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if got := img.RGBAAt(0, 0); got != blue {
		t.Errorf("row 0 = %v, want blue", got)
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	if _, err := Decode([]byte("not an image")); err == nil {
		t.Error("expected error for garbage data")
	}
}

func TestToRGBAResetsOrigin(t *testing.T) {
	src := image.NewRGBA(image.Rect(10, 20, 13, 24))
	src.SetRGBA(10, 20, red)

	got := ToRGBA(src)
	if got.Bounds() != image.Rect(0, 0, 3, 4) {
		t.Errorf("bounds = %v, want (0,0)-(3,4)", got.Bounds())
	}
	if c := got.RGBAAt(0, 0); c != red {
		t.Errorf("pixel (0,0) = %v, want red", c)
	}
}

func TestFlipVerticalOddHeight(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 1, 3))
	img.SetRGBA(0, 0, red)
	img.SetRGBA(0, 1, color.RGBA{G: 255, A: 255})
	img.SetRGBA(0, 2, blue)

	FlipVertical(img)

	if img.RGBAAt(0, 0) != blue || img.RGBAAt(0, 2) != red {
		t.Errorf("rows = %v %v, want blue .. red", img.RGBAAt(0, 0), img.RGBAAt(0, 2))
	}
	if c := img.RGBAAt(0, 1); c.G != 255 {
		t.Errorf("middle row = %v, want unchanged green", c)
	}
}

func TestChecker(t *testing.T) {
	img := Checker(16, 4)

	if img.Bounds().Dx() != 16 || img.Bounds().Dy() != 16 {
		t.Fatalf("size = %v, want 16x16", img.Bounds())
	}
	if img.RGBAAt(0, 0) == img.RGBAAt(4, 0) {
		t.Error("adjacent cells have the same color")
	}
	if img.RGBAAt(0, 0) != img.RGBAAt(4, 4) {
		t.Error("diagonal cells differ")
	}
	if img.RGBAAt(0, 0) != img.RGBAAt(3, 3) {
		t.Error("pixels within one cell differ")
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "ok.png", encodePNG(t, twoRows()))

	dev := gputest.NewRecorder()
	tex, fallback, err := Load(dev, path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if fallback {
		t.Error("fallback = true for a valid file")
	}
	if tex.Name() != "ok.png" {
		t.Errorf("Name() = %q, want ok.png", tex.Name())
	}
	if w, h := tex.Size(); w != 2 || h != 2 {
		t.Errorf("Size() = %dx%d, want 2x2", w, h)
	}

	tex.Bind(3)
	if got := dev.BoundTexture(3); got != tex.ID() {
		t.Errorf("BoundTexture(3) = %d, want %d", got, tex.ID())
	}

	tex.Destroy()
	tex.Destroy()
	if _, _, live := dev.Live(); live != 0 {
		t.Errorf("live textures = %d after Destroy", live)
	}
	if dev.DoubleFrees != 0 {
		t.Errorf("DoubleFrees = %d, want 0", dev.DoubleFrees)
	}
}

func TestLoadFallback(t *testing.T) {
	dir := t.TempDir()
	bad := writeFile(t, dir, "bad.jpg", []byte("garbage"))

	tests := []struct {
		name string
		path string
	}{
		{"missing file", filepath.Join(dir, "missing.jpg")},
		{"undecodable file", bad},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dev := gputest.NewRecorder()
			tex, fallback, err := Load(dev, tt.path)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if !fallback {
				t.Error("fallback = false, want true")
			}
			if w, h := tex.Size(); w != fallbackSize || h != fallbackSize {
				t.Errorf("Size() = %dx%d, want checker %dx%d", w, h, fallbackSize, fallbackSize)
			}
		})
	}
}

func TestLoadDeviceFailure(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "ok.png", encodePNG(t, twoRows()))

	dev := gputest.NewRecorder()
	dev.FailTextures = true
	if _, _, err := Load(dev, path); !errors.Is(err, gpu.ErrAllocation) {
		t.Errorf("Load() error = %v, want ErrAllocation", err)
	}
}

func TestLoadSet(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.png", encodePNG(t, twoRows()))
	writeFile(t, dir, "b.png", encodePNG(t, twoRows()))

	dev := gputest.NewRecorder()
	var progress bytes.Buffer
	set, err := LoadSet(dev, dir, []string{"a.png", "b.png", "missing.png", "a.png"}, &progress)
	if err != nil {
		t.Fatalf("LoadSet() error = %v", err)
	}

	if set.Len() != 3 {
		t.Errorf("Len() = %d, want 3", set.Len())
	}
	if set.Fallbacks() != 1 {
		t.Errorf("Fallbacks() = %d, want 1", set.Fallbacks())
	}
	if _, ok := set.Get("b.png"); !ok {
		t.Error("Get(b.png) missing")
	}
	if _, ok := set.Get("c.png"); ok {
		t.Error("Get(c.png) found a texture that was never loaded")
	}

	set.Destroy()
	if _, _, live := dev.Live(); live != 0 {
		t.Errorf("live textures = %d after Destroy", live)
	}
}

func TestLoadSetReleasesOnFailure(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.png", encodePNG(t, twoRows()))

	dev := gputest.NewRecorder()
	dev.FailTextures = true
	if _, err := LoadSet(dev, dir, []string{"a.png"}, nil); err == nil {
		t.Fatal("LoadSet() error = nil, want failure")
	}
	if _, _, live := dev.Live(); live != 0 {
		t.Errorf("live textures = %d after failed LoadSet", live)
	}
}
