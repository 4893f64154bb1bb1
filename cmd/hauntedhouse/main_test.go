package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/hauntedhouse/internal/haunted"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, args ...string) (haunted.Config, error) {
	t.Helper()
	cmd := newRootCommand()
	require.NoError(t, cmd.ParseFlags(args))
	f := &flags{}
	f.config, _ = cmd.Flags().GetString("config")
	f.assets, _ = cmd.Flags().GetString("assets")
	f.seed, _ = cmd.Flags().GetInt64("seed")
	f.width, _ = cmd.Flags().GetInt("width")
	f.height, _ = cmd.Flags().GetInt("height")
	f.vsync, _ = cmd.Flags().GetBool("vsync")
	f.logLevel, _ = cmd.Flags().GetString("log-level")
	return loadConfig(cmd, f)
}

func TestLoadConfigDefaultsWithoutFlags(t *testing.T) {
	cfg, err := parse(t)
	require.NoError(t, err)
	assert.Equal(t, haunted.DefaultConfig().Window, cfg.Window)
	assert.Equal(t, "assets/textures", cfg.Assets.Root)
}

func TestFlagsOverrideConfigFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "scene.toml")
	require.NoError(t, os.WriteFile(p, []byte("seed = 4\n[window]\nwidth = 640\nheight = 480\n"), 0o644))

	cfg, err := parse(t, "--config", p, "--width", "1024", "--vsync=false", "--assets", "/tmp/tex")
	require.NoError(t, err)
	assert.Equal(t, int64(4), cfg.Seed)
	assert.Equal(t, 1024, cfg.Window.Width)
	assert.Equal(t, 480, cfg.Window.Height)
	assert.False(t, cfg.Window.VSync)
	assert.Equal(t, "/tmp/tex", cfg.Assets.Root)
}

func TestInvalidFlagValueIsRejected(t *testing.T) {
	_, err := parse(t, "--height", "-1")
	assert.ErrorIs(t, err, haunted.ErrInvalidConfig)
}
