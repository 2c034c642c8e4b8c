// Package game implements the main loop of the viewer.
package game

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/stilllife/internal/config"
	"github.com/Faultbox/stilllife/internal/engine/camera"
	"github.com/Faultbox/stilllife/internal/engine/debug"
	"github.com/Faultbox/stilllife/internal/engine/gpu/gldevice"
	"github.com/Faultbox/stilllife/internal/engine/input/sdlinput"
	"github.com/Faultbox/stilllife/internal/engine/lighting"
	"github.com/Faultbox/stilllife/internal/engine/renderer"
	"github.com/Faultbox/stilllife/internal/engine/scene"
	"github.com/Faultbox/stilllife/internal/engine/shader"
	"github.com/Faultbox/stilllife/internal/engine/shader/shaders"
	"github.com/Faultbox/stilllife/internal/engine/window"
	"github.com/Faultbox/stilllife/internal/game/controls"
	"github.com/Faultbox/stilllife/internal/logger"
	"github.com/Faultbox/stilllife/pkg/math"
)

// Longest frame step fed to movement, so a stall does not teleport the camera.
const maxFrameTime = 0.25

// Game is the main viewer instance.
type Game struct {
	config   *config.Config
	running  bool
	window   *window.Window
	renderer *renderer.Renderer
	input    *sdlinput.Input
	state    *controls.State
	shots    *debug.ScreenshotCapture
}

// New creates the window, uploads the scene and sets up the controls.
func New(cfg *config.Config) (*Game, error) {
	logger.Info("initializing viewer",
		zap.String("title", cfg.Window.Title),
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
	)

	g := &Game{
		config:  cfg,
		running: false,
	}

	// Create window (this also creates OpenGL context)
	var err error
	g.window, err = window.New(window.Config{
		Title:         cfg.Window.Title,
		Width:         cfg.Window.Width,
		Height:        cfg.Window.Height,
		Fullscreen:    cfg.Window.Fullscreen,
		VSync:         cfg.Window.VSync,
		CaptureCursor: cfg.Window.CaptureCursor,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Create renderer (AFTER window, since OpenGL context must exist)
	width, height := g.window.DrawableSize()
	g.renderer, err = newRenderer(cfg, width, height)
	if err != nil {
		g.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	cam := camera.New(vec3(cfg.Camera.Position),
		camera.WithYawPitch(cfg.Camera.Yaw, cfg.Camera.Pitch),
		camera.WithMovementSpeed(cfg.Camera.Speed),
		camera.WithMouseSensitivity(cfg.Camera.Sensitivity),
		camera.WithZoom(cfg.Camera.Zoom),
	)
	lights := lighting.NewRig(vec3(cfg.Lights.Primary), vec3(cfg.Lights.Secondary))
	vp := scene.Viewport{Width: width, Height: height, Near: cfg.Camera.Near, Far: cfg.Camera.Far}
	g.state = controls.New(cam, lights, vp, cfg.Lights.MoveSpeed)

	g.input = sdlinput.New(g.window.DrawableSize)
	g.shots = debug.NewScreenshotCapture(cfg.Assets.ScreenshotDir, "stilllife")

	logger.Info("viewer initialized successfully")
	return g, nil
}

func newRenderer(cfg *config.Config, width, height int) (*renderer.Renderer, error) {
	if err := gldevice.Init(); err != nil {
		return nil, err
	}

	objectProgram, err := shader.New("object", shaders.ObjectVertexShader, shaders.ObjectFragmentShader)
	if err != nil {
		return nil, err
	}
	lightProgram, err := shader.New("light", shaders.LightVertexShader, shaders.LightFragmentShader)
	if err != nil {
		objectProgram.Delete()
		return nil, err
	}

	return renderer.New(gldevice.New(), objectProgram, lightProgram, renderer.Config{
		Objects:    scene.Objects(),
		TextureDir: cfg.Assets.TextureDir,
		Ambient:    cfg.Lights.Ambient,
		Width:      width,
		Height:     height,
		Progress:   os.Stderr,
	})
}

func vec3(v [3]float32) math.Vec3 {
	return math.Vec3{X: v[0], Y: v[1], Z: v[2]}
}

// Run starts the main loop and returns when the user quits.
func (g *Game) Run() error {
	g.running = true

	// Timing
	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	logger.Info("starting main loop")

	for g.running {
		now := time.Now()
		dt := now.Sub(lastTime).Seconds()
		lastTime = now
		if dt > maxFrameTime {
			dt = maxFrameTime
		}

		// 1. Process input
		for _, ev := range g.input.Update() {
			g.state.Handle(ev)
		}
		if g.state.ShouldQuit() {
			g.running = false
			break
		}
		if vp, ok := g.state.TakeResize(); ok {
			g.renderer.Resize(vp.Width, vp.Height)
		}

		// 2. Update state
		g.state.Update(float32(dt))

		// 3. Render
		g.renderer.Render(renderer.Frame{
			View:       g.state.View(),
			Projection: g.state.Projection(),
			Lights:     g.state.Lights,
		})

		if g.state.TakeScreenshot() {
			g.saveScreenshot()
		}

		// 4. Present (swap buffers)
		g.window.SwapBuffers()

		// FPS counter
		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			if g.config.Window.ShowFPS {
				logger.Info("fps", zap.Int("count", frameCount), zap.Duration("frame", time.Duration(dt*float64(time.Second))))
			}
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

func (g *Game) saveScreenshot() {
	pixels, width, height := g.renderer.Capture()
	path, err := g.shots.CaptureFromPixels(pixels, width, height)
	if err != nil {
		logger.Warn("screenshot failed", zap.Error(err))
		return
	}
	logger.Info("screenshot saved", zap.String("path", path))
}

// Close cleans up viewer resources.
func (g *Game) Close() {
	logger.Info("closing viewer")

	if g.renderer != nil {
		g.renderer.Close()
	}
	if g.window != nil {
		g.window.Close()
	}
}
