package main

import "github.com/urfave/cli/v3"

var (
	configFile string
	logLevel   string
	logFormat  string
	debug      bool

	// cfg is the loaded config file; zero when none exists.
	cfg Config
)

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Usage:       "path to config.yaml (default: user config dir)",
			Sources:     cli.EnvVars("SACMASK_CONFIG"),
			Destination: &configFile,
		},
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "log level (debug, info, warn, error)",
			Value:       "info",
			Destination: &logLevel,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "log format (pretty, json, text)",
			Value:       "pretty",
			Destination: &logFormat,
		},
		&cli.BoolFlag{
			Name:        "debug",
			Usage:       "enable debug logging (shorthand for --log-level=debug)",
			Destination: &debug,
		},
	}
}

// renderFlags are shared by commands that render a mask.
type renderFlags struct {
	mode    string
	opacity float64
	width   uint64
	height  uint64
}

func (f *renderFlags) flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "mode",
			Usage:       "color mode (white, red, green, blue, rainbow)",
			Value:       "white",
			Destination: &f.mode,
		},
		&cli.FloatFlag{
			Name:        "opacity",
			Usage:       "overlay opacity in [0, 1]",
			Value:       0.5,
			Destination: &f.opacity,
		},
		&cli.Uint64Flag{
			Name:        "width",
			Usage:       "override the mask width",
			Destination: &f.width,
		},
		&cli.Uint64Flag{
			Name:        "height",
			Usage:       "override the mask height",
			Destination: &f.height,
		},
	}
}
