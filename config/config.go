// Package config loads runtime settings from the environment. There are no
// CLI flags; every knob has a baked-in default so both binaries run with no
// setup at all.
package config

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	OutputDir string // base directory holding the png/svg/pdf subdirectories
	TikzDir   string // directory scanned for *.tex sources
	DPI       int    // raster resolution
	PDFLaTeX  string // compiler binary name
	LogLevel  string
}

// Load reads ODMR_* environment variables over the defaults.
func Load() (*Config, error) {
	v := viper.New()
	v.SetDefault("output_dir", "diagrams")
	v.SetDefault("tikz_dir", "diagrams/source/tikz")
	v.SetDefault("dpi", 300)
	v.SetDefault("pdflatex", "pdflatex")
	v.SetDefault("log_level", "info")

	v.SetEnvPrefix("odmr")
	v.AutomaticEnv()

	cfg := &Config{
		OutputDir: v.GetString("output_dir"),
		TikzDir:   v.GetString("tikz_dir"),
		DPI:       v.GetInt("dpi"),
		PDFLaTeX:  v.GetString("pdflatex"),
		LogLevel:  v.GetString("log_level"),
	}
	if cfg.DPI <= 0 {
		return nil, fmt.Errorf("invalid ODMR_DPI: %d", cfg.DPI)
	}
	return cfg, nil
}

// SetupLogging applies the configured level to the global logger.
func (c *Config) SetupLogging() error {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid ODMR_LOG_LEVEL %q: %w", c.LogLevel, err)
	}
	log.SetLevel(level)
	return nil
}
