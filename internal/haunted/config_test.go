package haunted

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 30, cfg.Graves)
	assert.Equal(t, 256, cfg.Shadow.MapSize)
	assert.Equal(t, float32(7), cfg.Shadow.Far)
	assert.Len(t, cfg.Wisps.Orbits, wispCount)
	assert.Equal(t, []string{"#ffffff", "#ffffff", "#ffffff"}, cfg.Wisps.Colors)
	assert.Equal(t, float32(1), cfg.Wisps.Intensity)
	assert.Equal(t, float32(7), cfg.Wisps.Range)
}

func TestLoadConfigTOML(t *testing.T) {
	p := writeConfig(t, t.TempDir(), "scene.toml", `
seed = 42
graves = 12

[window]
width = 800
height = 600
msaa = 1

[fog]
color = "#101010"
far = 20

[tunables]
"moon.intensity" = 0.5
`)
	cfg, err := LoadConfig(p)
	require.NoError(t, err)

	assert.Equal(t, int64(42), cfg.Seed)
	assert.Equal(t, 12, cfg.Graves)
	assert.Equal(t, 800, cfg.Window.Width)
	assert.Equal(t, 1, cfg.Window.MSAA)
	assert.Equal(t, "#101010", cfg.Fog.Color)
	assert.Equal(t, float32(20), cfg.Fog.Far)
	assert.Equal(t, float32(0.5), cfg.Tunables["moon.intensity"])

	// Untouched sections keep their defaults.
	assert.Equal(t, "Haunted House", cfg.Window.Title)
	assert.Equal(t, float32(2), cfg.Fog.Near)
	assert.Equal(t, DefaultConfig().Camera, cfg.Camera)
}

func TestLoadConfigYAML(t *testing.T) {
	p := writeConfig(t, t.TempDir(), "scene.yml", `
graves: 5
camera:
  fov: 60
  near: 0.1
  far: 50
  position: [1, 2, 3]
  damping: 0.1
wisps:
  colors: ["#ff0000", "#00ff00", "#0000ff"]
  speed: 0.5
`)
	cfg, err := LoadConfig(p)
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Graves)
	assert.Equal(t, float32(60), cfg.Camera.FovDegrees)
	assert.Equal(t, [3]float32{1, 2, 3}, cfg.Camera.Position)
	assert.Equal(t, []string{"#ff0000", "#00ff00", "#0000ff"}, cfg.Wisps.Colors)
	assert.Equal(t, float32(0.5), cfg.Wisps.Speed)
	assert.Equal(t, float32(1), cfg.Wisps.Intensity)
}

func TestLoadConfigUnsupportedExtension(t *testing.T) {
	p := writeConfig(t, t.TempDir(), "scene.json", `{}`)
	_, err := LoadConfig(p)
	assert.ErrorIs(t, err, ErrUnsupportedConfigFormat)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadConfigDecodeError(t *testing.T) {
	p := writeConfig(t, t.TempDir(), "scene.toml", "graves = [")
	_, err := LoadConfig(p)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidConfig)
}

func TestValidateRejects(t *testing.T) {
	cases := map[string]func(*Config){
		"window":      func(c *Config) { c.Window.Width = 0 },
		"msaa":        func(c *Config) { c.Window.MSAA = 2 },
		"graves":      func(c *Config) { c.Graves = -1 },
		"fog range":   func(c *Config) { c.Fog.Far = c.Fog.Near },
		"fov":         func(c *Config) { c.Camera.FovDegrees = 180 },
		"clip":        func(c *Config) { c.Camera.Near = 0 },
		"damping":     func(c *Config) { c.Camera.Damping = 0 },
		"damping one": func(c *Config) { c.Camera.Damping = 1 },
		"shadow":      func(c *Config) { c.Shadow.MapSize = 0 },
		"wisp colors": func(c *Config) { c.Wisps.Colors = c.Wisps.Colors[:2] },
		"wisp orbits": func(c *Config) { c.Wisps.Orbits = nil },
		"fog color":   func(c *Config) { c.Fog.Color = "fog" },
		"wisp color":  func(c *Config) { c.Wisps.Colors = []string{"#ff00ff", "#00ffff", "#zzzzzz"} },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultConfig()
			mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestLoadConfigInvalidValues(t *testing.T) {
	p := writeConfig(t, t.TempDir(), "scene.toml", "graves = -3\n")
	_, err := LoadConfig(p)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestWatchConfigReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	p := writeConfig(t, dir, "scene.toml", "graves = 1\n")

	reloaded := make(chan Config, 8)
	w, err := WatchConfig(p, func(c Config) { reloaded <- c })
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	// Unrelated files in the same directory are ignored.
	writeConfig(t, dir, "other.toml", "graves = 9\n")
	writeConfig(t, dir, "scene.toml", "[tunables]\n\"wisps.speed\" = 2\n")

	var got Config
	require.Eventually(t, func() bool {
		select {
		case got = <-reloaded:
			return got.Tunables["wisps.speed"] == 2
		default:
			return false
		}
	}, 5*time.Second, 10*time.Millisecond)
	assert.Equal(t, 30, got.Graves)
}

func TestConfigWatcherCloseTwice(t *testing.T) {
	p := writeConfig(t, t.TempDir(), "scene.yaml", "graves: 1\n")
	w, err := WatchConfig(p, func(Config) {})
	require.NoError(t, err)
	assert.NoError(t, w.Close())
	assert.NoError(t, w.Close())
}
