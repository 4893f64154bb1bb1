package haunted

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Carmen-Shannon/hauntedhouse/common"
	"github.com/Carmen-Shannon/hauntedhouse/engine/logger"
	"github.com/fsnotify/fsnotify"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

var (
	// ErrUnsupportedConfigFormat is returned for config files that are neither TOML nor YAML.
	ErrUnsupportedConfigFormat = errors.New("haunted: unsupported config format")

	// ErrInvalidConfig is returned when a loaded config fails validation.
	ErrInvalidConfig = errors.New("haunted: invalid config")
)

// WindowConfig sizes the window and selects the present mode.
type WindowConfig struct {
	Width  int    `toml:"width" yaml:"width"`
	Height int    `toml:"height" yaml:"height"`
	Title  string `toml:"title" yaml:"title"`
	VSync  bool   `toml:"vsync" yaml:"vsync"`
	// MSAA is the sample count, 1 or 4.
	MSAA int `toml:"msaa" yaml:"msaa"`
}

// AssetsConfig locates the texture files.
type AssetsConfig struct {
	Root string `toml:"root" yaml:"root"`
	// MaxTextureSize downscales larger images; 0 keeps the original size.
	MaxTextureSize int `toml:"max_texture_size" yaml:"max_texture_size"`
}

// FogConfig is the linear distance fog. The clear color matches the fog color.
type FogConfig struct {
	Color string  `toml:"color" yaml:"color"`
	Near  float32 `toml:"near" yaml:"near"`
	Far   float32 `toml:"far" yaml:"far"`
}

// CameraConfig places the orbit camera.
type CameraConfig struct {
	FovDegrees float32    `toml:"fov" yaml:"fov"`
	Near       float32    `toml:"near" yaml:"near"`
	Far        float32    `toml:"far" yaml:"far"`
	Position   [3]float32 `toml:"position" yaml:"position"`
	Damping    float32    `toml:"damping" yaml:"damping"`
}

// ShadowConfig is applied to every shadow-casting light.
type ShadowConfig struct {
	MapSize int     `toml:"map_size" yaml:"map_size"`
	Far     float32 `toml:"far" yaml:"far"`
}

// WispsConfig describes the three orbiting point lights.
type WispsConfig struct {
	Colors    []string    `toml:"colors" yaml:"colors"`
	Intensity float32     `toml:"intensity" yaml:"intensity"`
	Range     float32     `toml:"range" yaml:"range"`
	Decay     float32     `toml:"decay" yaml:"decay"`
	Speed     float32     `toml:"speed" yaml:"speed"`
	Orbits    []WispOrbit `toml:"orbits" yaml:"orbits"`
}

// Config is the application configuration. Zero-valued sections in a file keep their defaults.
type Config struct {
	Window WindowConfig `toml:"window" yaml:"window"`
	Assets AssetsConfig `toml:"assets" yaml:"assets"`
	// Seed drives grave placement. 0 picks a seed from the clock.
	Seed   int64        `toml:"seed" yaml:"seed"`
	Graves int          `toml:"graves" yaml:"graves"`
	Fog    FogConfig    `toml:"fog" yaml:"fog"`
	Camera CameraConfig `toml:"camera" yaml:"camera"`
	Shadow ShadowConfig `toml:"shadow" yaml:"shadow"`
	Wisps  WispsConfig  `toml:"wisps" yaml:"wisps"`
	// Tunables are applied through the tunable registry at startup and on every reload.
	Tunables map[string]float32 `toml:"tunables" yaml:"tunables"`
	LogLevel string             `toml:"log_level" yaml:"log_level"`
}

// DefaultConfig returns the stock scene settings.
func DefaultConfig() Config {
	return Config{
		Window: WindowConfig{
			Width:  1280,
			Height: 720,
			Title:  "Haunted House",
			VSync:  true,
			MSAA:   4,
		},
		Assets: AssetsConfig{
			Root: "assets/textures",
		},
		Graves: 30,
		Fog: FogConfig{
			Color: "#262837",
			Near:  2,
			Far:   15,
		},
		Camera: CameraConfig{
			FovDegrees: 75,
			Near:       0.1,
			Far:        100,
			Position:   [3]float32{2, 2, 10},
			Damping:    0.05,
		},
		Shadow: ShadowConfig{
			MapSize: 256,
			Far:     7,
		},
		Wisps: WispsConfig{
			Colors:    []string{"#ffffff", "#ffffff", "#ffffff"},
			Intensity: 1,
			Range:     7,
			Decay:     2,
			Speed:     1,
			Orbits:    DefaultWispOrbits(),
		},
		Tunables: map[string]float32{},
		LogLevel: "info",
	}
}

// LoadConfig reads a TOML (.toml) or YAML (.yaml, .yml) file over DefaultConfig.
//
// Parameters:
//   - path: the config file
//
// Returns:
//   - Config: the merged and validated configuration
//   - error: a read, decode or validation error
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = toml.Unmarshal(data, &cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		return cfg, fmt.Errorf("%w: %q", ErrUnsupportedConfigFormat, ext)
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to decode config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports the first out-of-range setting.
func (c Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalidConfig, c.Window.Width, c.Window.Height)
	case c.Window.MSAA != 1 && c.Window.MSAA != 4:
		return fmt.Errorf("%w: msaa must be 1 or 4, got %d", ErrInvalidConfig, c.Window.MSAA)
	case c.Graves < 0:
		return fmt.Errorf("%w: negative grave count %d", ErrInvalidConfig, c.Graves)
	case c.Fog.Near < 0 || c.Fog.Far <= c.Fog.Near:
		return fmt.Errorf("%w: fog range [%g, %g]", ErrInvalidConfig, c.Fog.Near, c.Fog.Far)
	case c.Camera.FovDegrees <= 0 || c.Camera.FovDegrees >= 180:
		return fmt.Errorf("%w: camera fov %g", ErrInvalidConfig, c.Camera.FovDegrees)
	case c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near:
		return fmt.Errorf("%w: camera clip range [%g, %g]", ErrInvalidConfig, c.Camera.Near, c.Camera.Far)
	case c.Camera.Damping <= 0 || c.Camera.Damping >= 1:
		return fmt.Errorf("%w: camera damping %g", ErrInvalidConfig, c.Camera.Damping)
	case c.Shadow.MapSize <= 0 || c.Shadow.Far <= 0:
		return fmt.Errorf("%w: shadow map %d far %g", ErrInvalidConfig, c.Shadow.MapSize, c.Shadow.Far)
	case len(c.Wisps.Colors) != wispCount:
		return fmt.Errorf("%w: need %d wisp colors, got %d", ErrInvalidConfig, wispCount, len(c.Wisps.Colors))
	case len(c.Wisps.Orbits) != wispCount:
		return fmt.Errorf("%w: need %d wisp orbits, got %d", ErrInvalidConfig, wispCount, len(c.Wisps.Orbits))
	}
	colors := append([]string{c.Fog.Color}, c.Wisps.Colors...)
	for _, hex := range colors {
		if _, err := common.ParseHexColor(hex); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}
	return nil
}

// ConfigWatcher reloads a config file when it changes on disk.
type ConfigWatcher struct {
	watcher *fsnotify.Watcher
	path    string
	done    chan struct{}
	once    sync.Once
}

// WatchConfig watches path and calls onChange with every successfully reloaded config.
// The containing directory is watched so that editors which replace the file are still seen.
// onChange runs on the watcher goroutine; callers post the result to the frame thread.
//
// Parameters:
//   - path: the config file
//   - onChange: receives each valid reload
//
// Returns:
//   - *ConfigWatcher: the running watcher; call Close to stop it
//   - error: an error if the watch could not be established
func WatchConfig(path string, onChange func(Config)) (*ConfigWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config path: %w", err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create config watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	cw := &ConfigWatcher{watcher: w, path: abs, done: make(chan struct{})}
	go cw.run(onChange)
	return cw, nil
}

func (cw *ConfigWatcher) run(onChange func(Config)) {
	for {
		select {
		case <-cw.done:
			return
		case event, ok := <-cw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != cw.path || !event.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			cfg, err := LoadConfig(cw.path)
			if err != nil {
				logger.Log.Warn("config reload failed", zap.String("path", cw.path), zap.Error(err))
				continue
			}
			logger.Log.Info("config reloaded", zap.String("path", cw.path))
			onChange(cfg)
		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			logger.Log.Warn("config watcher error", zap.Error(err))
		}
	}
}

// Close stops the watcher. Safe to call more than once.
func (cw *ConfigWatcher) Close() error {
	var err error
	cw.once.Do(func() {
		close(cw.done)
		err = cw.watcher.Close()
	})
	return err
}
