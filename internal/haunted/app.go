// Package haunted assembles the haunted house scene and runs it in a window.
package haunted

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/Carmen-Shannon/hauntedhouse/common"
	"github.com/Carmen-Shannon/hauntedhouse/engine/camera"
	"github.com/Carmen-Shannon/hauntedhouse/engine/logger"
	"github.com/Carmen-Shannon/hauntedhouse/engine/loop"
	"github.com/Carmen-Shannon/hauntedhouse/engine/profiler"
	"github.com/Carmen-Shannon/hauntedhouse/engine/renderer"
	"github.com/Carmen-Shannon/hauntedhouse/engine/scene"
	"github.com/Carmen-Shannon/hauntedhouse/engine/texture"
	"github.com/Carmen-Shannon/hauntedhouse/engine/tunable"
	"github.com/Carmen-Shannon/hauntedhouse/engine/viewport"
	"github.com/Carmen-Shannon/hauntedhouse/engine/window"
	"github.com/chewxy/math32"
	"go.uber.org/zap"
)

// App owns the scene and everything that mutates it. It holds no GPU or window state, so it
// can be built and driven in tests.
type App struct {
	cfg Config

	Scene      scene.Scene
	Graph      Graph
	Lights     LightRig
	Wisps      *WispAnimator
	Tunables   tunable.Registry
	Textures   texture.TextureCache
	Controller camera.CameraController

	rng    Rand
	onQuit func()
}

// NewApp builds the scene described by cfg.
//
// Parameters:
//   - cfg: a validated configuration
//   - options: optional random source and texture cache overrides
//
// Returns:
//   - *App: the assembled application
//   - error: an error if a color in cfg cannot be parsed or a tunable cannot be registered
func NewApp(cfg Config, options ...AppBuilderOption) (*App, error) {
	a := &App{cfg: cfg}
	for _, opt := range options {
		opt(a)
	}
	if a.rng == nil {
		seed := cfg.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		logger.Log.Info("graveyard seed", zap.Int64("seed", seed))
		a.rng = rand.New(rand.NewSource(seed))
	}
	if a.Textures == nil {
		a.Textures = texture.NewTextureCache(
			texture.WithRootDir(cfg.Assets.Root),
			texture.WithMaxSize(cfg.Assets.MaxTextureSize),
		)
	}

	fogColor, err := common.ParseHexColor(cfg.Fog.Color)
	if err != nil {
		return nil, fmt.Errorf("fog: %w", err)
	}

	mats := NewMaterials(a.Textures)
	a.Graph = BuildGraph(mats, a.rng, cfg.Graves)
	a.Lights, err = NewLightRig(cfg.Wisps, a.Graph.House)
	if err != nil {
		return nil, err
	}
	ConfigureShadows(a.Graph, a.Lights, cfg.Shadow)

	p := cfg.Camera.Position
	a.Controller = camera.NewCameraController(
		camera.WithPosition(p[0], p[1], p[2]),
		camera.WithDamping(cfg.Camera.Damping),
	)
	cam := camera.NewCamera(
		camera.WithFovDegrees(cfg.Camera.FovDegrees),
		camera.WithNear(cfg.Camera.Near),
		camera.WithFar(cfg.Camera.Far),
		camera.WithAspect(float32(cfg.Window.Width)/float32(cfg.Window.Height)),
		camera.WithController(a.Controller),
	)

	a.Scene = scene.NewScene("haunted house", cam,
		scene.WithNodes(a.Graph.Roots()...),
		scene.WithLights(a.Lights.All()...),
		scene.WithFog(fogColor, cfg.Fog.Near, cfg.Fog.Far),
		scene.WithBackground(fogColor),
	)

	a.Wisps = NewWispAnimator(cfg.Wisps.Orbits, a.Lights.Wisps, cfg.Wisps.Speed)
	a.Wisps.Update(0)

	a.Tunables = tunable.NewRegistry()
	if err := RegisterTunables(a.Tunables, a.Lights, a.Wisps); err != nil {
		return nil, err
	}
	ApplyTunables(a.Tunables, cfg.Tunables)

	stats := a.Textures.Stats()
	logger.Log.Info("scene assembled",
		zap.Int("graves", len(a.Graph.Graves)),
		zap.Int("lights", len(a.Scene.Lights())),
		zap.Int("textures", len(a.Textures.Paths())),
		zap.Int("placeholders", stats.Placeholders),
	)
	return a, nil
}

// HandleKey reacts to a key press: P logs the tunable values, R resets the camera and Esc quits.
func (a *App) HandleKey(keyCode uint32) {
	switch keyCode {
	case common.KeyP:
		snapshot := a.Tunables.Snapshot()
		fields := make([]zap.Field, 0, len(snapshot))
		for _, name := range a.Tunables.Names() {
			fields = append(fields, zap.Float32(name, snapshot[name]))
		}
		logger.Log.Info("tunables", fields...)
	case common.KeyR:
		a.Controller.Reset()
	case common.KeyEsc:
		if a.onQuit != nil {
			a.onQuit()
		}
	}
}

// HandleDrag turns a left-button drag into orbit velocity. A drag across the full viewport
// height is one full turn.
func (a *App) HandleDrag(button uint32, dx, dy float32, viewportHeight int) {
	if button != common.MouseButtonLeft || viewportHeight <= 0 {
		return
	}
	h := float32(viewportHeight)
	a.Controller.Rotate(-2*math32.Pi*dx/h, 2*math32.Pi*dy/h)
}

// HandleScroll turns wheel movement into zoom velocity.
func (a *App) HandleScroll(delta float32) {
	a.Controller.Zoom(delta)
}

// ApplyConfig applies the hot-reloadable part of a config, the tunables. Must run on the frame thread.
func (a *App) ApplyConfig(cfg Config) {
	n := ApplyTunables(a.Tunables, cfg.Tunables)
	logger.Log.Info("tunables reloaded", zap.Int("applied", n))
}

// Run opens the window, creates the renderer and drives the render loop until the window closes.
// When configPath is set the file is watched and its tunables are reapplied on change.
//
// Parameters:
//   - cfg: a validated configuration
//   - configPath: the file cfg was loaded from, or empty
//   - options: forwarded to NewApp
//
// Returns:
//   - error: an error if the scene or the renderer cannot be created
func Run(cfg Config, configPath string, options ...AppBuilderOption) error {
	win := window.NewWindow(
		window.WithTitle(cfg.Window.Title),
		window.WithWidth(cfg.Window.Width),
		window.WithHeight(cfg.Window.Height),
	)
	defer win.Close()

	app, err := NewApp(cfg, options...)
	if err != nil {
		return err
	}
	app.onQuit = win.RequestClose

	presentMode := renderer.PresentModeUncapped
	if cfg.Window.VSync {
		presentMode = renderer.PresentModeVSync
	}
	r, err := renderer.NewRenderer(win.SurfaceDescriptor(), win.Width(), win.Height(),
		renderer.WithPresentMode(presentMode),
		renderer.WithMSAA(renderer.MSAASampleCount(cfg.Window.MSAA)),
	)
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}
	defer r.Release()

	resize := viewport.NewResizeHandler(app.Scene, r)
	resize.Handle(win.Width(), win.Height(), win.ContentScale())
	win.SetResizeCallback(resize.Handle)
	win.SetDragCallback(func(button uint32, dx, dy float32) {
		app.HandleDrag(button, dx, dy, win.Height())
	})
	win.SetScrollCallback(app.HandleScroll)
	win.SetKeyDownCallback(app.HandleKey)

	if configPath != "" {
		watcher, err := WatchConfig(configPath, func(c Config) {
			win.Post(func() { app.ApplyConfig(c) })
		})
		if err != nil {
			logger.Log.Warn("config hot reload disabled", zap.Error(err))
		} else {
			defer watcher.Close()
		}
	}

	l := loop.NewRenderLoop(app.Scene, r, win,
		loop.WithUpdaters(app.Wisps),
		loop.WithProfiler(profiler.NewProfiler()),
	)
	if err := l.Start(); err != nil {
		return err
	}
	win.Run()
	l.Stop()

	stats := r.Stats()
	logger.Log.Info("shutdown",
		zap.Uint64("frames", l.Frames()),
		zap.Int("meshes", stats.Meshes),
		zap.Int("textures", stats.Textures),
	)
	return nil
}
