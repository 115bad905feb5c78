package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// Config represents the sacmask configuration file
// (~/.config/sacmask/config.yaml). Pointer fields distinguish "not set"
// from zero values.
type Config struct {
	// Rendering defaults
	ColorMode string   `yaml:"color_mode"`
	Opacity   *float64 `yaml:"opacity"`

	// Fetching
	FetchTimeout      time.Duration `yaml:"fetch_timeout"`
	MaxBodyBytes      int64         `yaml:"max_body_bytes"`
	RequestsPerSecond float64       `yaml:"requests_per_second"`

	// Output
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	// Server
	ServerAddress string `yaml:"server_address"`
}

func configPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "sacmask", "config.yaml")
}

// LoadConfig reads the config file at path, or the default location when
// path is empty. A missing file yields a zero Config.
func LoadConfig(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = configPath()
	}
	if path == "" {
		return Config{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return c, nil
}

// applyLoggingConfig applies config defaults to the global logging flags
// when they were not set on the command line.
func applyLoggingConfig(c *cli.Command, cfg Config) {
	if cfg.LogLevel != "" && !c.IsSet("log-level") {
		logLevel = cfg.LogLevel
	}
	if cfg.LogFormat != "" && !c.IsSet("log-format") {
		logFormat = cfg.LogFormat
	}
}

// applyRenderConfig applies config defaults to render flags.
func applyRenderConfig(c *cli.Command, cfg Config, f *renderFlags) {
	if cfg.ColorMode != "" && !c.IsSet("mode") {
		f.mode = cfg.ColorMode
	}
	if cfg.Opacity != nil && !c.IsSet("opacity") {
		f.opacity = *cfg.Opacity
	}
}

// applyServeConfig applies config defaults to serve command variables.
func applyServeConfig(c *cli.Command, cfg Config, addr *string) {
	if cfg.ServerAddress != "" && !c.IsSet("addr") {
		*addr = cfg.ServerAddress
	}
}
