// Package config handles viewer configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/multierr"
)

// Config holds all viewer settings.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Camera  CameraConfig  `yaml:"camera"`
	Lights  LightsConfig  `yaml:"lights"`
	Assets  AssetsConfig  `yaml:"assets"`
	Logging LoggingConfig `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title         string `yaml:"title"`
	Width         int    `yaml:"width"`
	Height        int    `yaml:"height"`
	Fullscreen    bool   `yaml:"fullscreen"`
	VSync         bool   `yaml:"vsync"`
	CaptureCursor bool   `yaml:"capture_cursor"`
	ShowFPS       bool   `yaml:"show_fps"`
}

// CameraConfig holds the initial camera and projection settings.
type CameraConfig struct {
	Position    [3]float32 `yaml:"position"`
	Yaw         float32    `yaml:"yaw"`
	Pitch       float32    `yaml:"pitch"`
	Speed       float32    `yaml:"speed"`       // units per second
	Sensitivity float32    `yaml:"sensitivity"` // degrees per pixel
	Zoom        float32    `yaml:"zoom"`        // vertical FOV in degrees
	Near        float32    `yaml:"near"`
	Far         float32    `yaml:"far"`
}

// LightsConfig holds the initial light positions.
type LightsConfig struct {
	Primary   [3]float32 `yaml:"primary"`
	Secondary [3]float32 `yaml:"secondary"`
	MoveSpeed float32    `yaml:"move_speed"` // units per second
	Ambient   float32    `yaml:"ambient"`
}

// AssetsConfig holds asset locations.
type AssetsConfig struct {
	TextureDir    string `yaml:"texture_dir"`
	ScreenshotDir string `yaml:"screenshot_dir"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:         "Still Life",
			Width:         800,
			Height:        600,
			Fullscreen:    false,
			VSync:         true,
			CaptureCursor: true,
		},
		Camera: CameraConfig{
			Position:    [3]float32{0, 0, 3},
			Yaw:         -90,
			Pitch:       0,
			Speed:       2.5,
			Sensitivity: 0.1,
			Zoom:        45,
			Near:        0.1,
			Far:         100,
		},
		Lights: LightsConfig{
			Primary:   [3]float32{0, 5, 0},
			Secondary: [3]float32{6, 0.05, 0},
			MoveSpeed: 1.0,
			Ambient:   0.2,
		},
		Assets: AssetsConfig{
			TextureDir:    "textures",
			ScreenshotDir: "screenshots",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validation errors.
var (
	ErrWindowSize  = errors.New("window size must be positive")
	ErrClipPlanes  = errors.New("clip planes must satisfy 0 < near < far")
	ErrCameraSpeed = errors.New("camera speed must not be negative")
	ErrSensitivity = errors.New("mouse sensitivity must be positive")
	ErrZoom        = errors.New("zoom must be within [1, 45]")
	ErrLightSpeed  = errors.New("light move speed must not be negative")
	ErrAmbient     = errors.New("ambient must be within [0, 1]")
	ErrTextureDir  = errors.New("texture directory must be set")
	ErrLogLevel    = errors.New("unknown log level")
)

var logLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "warning": true, "error": true,
}

// Validate reports every invalid setting.
func (c *Config) Validate() error {
	var err error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		err = multierr.Append(err, fmt.Errorf("%w (got %dx%d)", ErrWindowSize, c.Window.Width, c.Window.Height))
	}
	if !(c.Camera.Near > 0) || !(c.Camera.Far > c.Camera.Near) {
		err = multierr.Append(err, fmt.Errorf("%w (got near=%v far=%v)", ErrClipPlanes, c.Camera.Near, c.Camera.Far))
	}
	if c.Camera.Speed < 0 {
		err = multierr.Append(err, fmt.Errorf("%w (got %v)", ErrCameraSpeed, c.Camera.Speed))
	}
	if !(c.Camera.Sensitivity > 0) {
		err = multierr.Append(err, fmt.Errorf("%w (got %v)", ErrSensitivity, c.Camera.Sensitivity))
	}
	if c.Camera.Zoom < 1 || c.Camera.Zoom > 45 {
		err = multierr.Append(err, fmt.Errorf("%w (got %v)", ErrZoom, c.Camera.Zoom))
	}
	if c.Lights.MoveSpeed < 0 {
		err = multierr.Append(err, fmt.Errorf("%w (got %v)", ErrLightSpeed, c.Lights.MoveSpeed))
	}
	if c.Lights.Ambient < 0 || c.Lights.Ambient > 1 {
		err = multierr.Append(err, fmt.Errorf("%w (got %v)", ErrAmbient, c.Lights.Ambient))
	}
	if c.Assets.TextureDir == "" {
		err = multierr.Append(err, ErrTextureDir)
	}
	if !logLevels[strings.ToLower(c.Logging.Level)] {
		err = multierr.Append(err, fmt.Errorf("%w %q", ErrLogLevel, c.Logging.Level))
	}
	return err
}
