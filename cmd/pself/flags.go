package main

import (
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/Azccriminal/floatboat/internal/logger"
)

var (
	logLevel  string
	logFormat string
)

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "log level (debug, info, warn, error)",
			Value:       "info",
			Destination: &logLevel,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "log format (pretty, text, json)",
			Value:       "pretty",
			Destination: &logFormat,
		},
	}
}

// newLogger builds the process logger from the global flags, with config
// file values filling in anything the user did not set on the command line.
func newLogger(cfg Config, cmd *cli.Command) logger.Logger {
	level := logLevel
	if cfg.LogLevel != "" && !cmd.IsSet("log-level") {
		level = cfg.LogLevel
	}
	format := logFormat
	if cfg.LogFormat != "" && !cmd.IsSet("log-format") {
		format = cfg.LogFormat
	}

	parsed := logger.ParseLevel(level)
	switch format {
	case "json":
		return logger.JSON(os.Stderr, parsed)
	case "text":
		return logger.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: parsed}))
	default:
		return logger.Pretty(os.Stderr, parsed)
	}
}
