// Command hauntedhouse renders a fog-shrouded haunted house with a randomly laid out graveyard.
package main

import (
	"os"

	"github.com/Carmen-Shannon/hauntedhouse/engine/logger"
	"github.com/Carmen-Shannon/hauntedhouse/internal/haunted"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type flags struct {
	config   string
	assets   string
	seed     int64
	width    int
	height   int
	vsync    bool
	logLevel string
	dev      bool
}

func newRootCommand() *cobra.Command {
	f := &flags{}
	cmd := &cobra.Command{
		Use:          "hauntedhouse",
		Short:        "Render the haunted house scene",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, f)
			if err != nil {
				return err
			}
			if err := logger.Init(cfg.LogLevel, f.dev); err != nil {
				return err
			}
			defer logger.Sync()

			logger.Log.Info("starting",
				zap.String("config", f.config),
				zap.String("assets", cfg.Assets.Root),
				zap.Int("width", cfg.Window.Width),
				zap.Int("height", cfg.Window.Height),
			)
			return haunted.Run(cfg, f.config)
		},
	}

	fs := cmd.Flags()
	fs.StringVarP(&f.config, "config", "c", "", "TOML or YAML config file, watched for tunable changes")
	fs.StringVar(&f.assets, "assets", "", "texture root directory")
	fs.Int64Var(&f.seed, "seed", 0, "graveyard seed, 0 picks one from the clock")
	fs.IntVar(&f.width, "width", 0, "window width")
	fs.IntVar(&f.height, "height", 0, "window height")
	fs.BoolVar(&f.vsync, "vsync", true, "wait for vertical blank when presenting")
	fs.StringVar(&f.logLevel, "log-level", "", "debug, info, warn or error")
	fs.BoolVar(&f.dev, "dev", false, "human readable development logging")
	return cmd
}

// loadConfig reads the config file, if any, and lays explicitly set flags over it.
func loadConfig(cmd *cobra.Command, f *flags) (haunted.Config, error) {
	cfg := haunted.DefaultConfig()
	if f.config != "" {
		var err error
		if cfg, err = haunted.LoadConfig(f.config); err != nil {
			return cfg, err
		}
	}

	changed := cmd.Flags().Changed
	if changed("assets") {
		cfg.Assets.Root = f.assets
	}
	if changed("seed") {
		cfg.Seed = f.seed
	}
	if changed("width") {
		cfg.Window.Width = f.width
	}
	if changed("height") {
		cfg.Window.Height = f.height
	}
	if changed("vsync") {
		cfg.Window.VSync = f.vsync
	}
	if changed("log-level") {
		cfg.LogLevel = f.logLevel
	}
	return cfg, cfg.Validate()
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
