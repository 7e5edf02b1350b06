package config

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// AppName is attached to every log line.
const AppName = "budgie-shop"

// NewLogger creates a logger writing to stdout.
func NewLogger(cfg LoggerConfig) zerolog.Logger {
	return NewLoggerWithOutput(cfg, os.Stdout)
}

// NewLoggerWithOutput creates a logger for the configured level and format
// writing to out.
func NewLoggerWithOutput(cfg LoggerConfig, out io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	if cfg.Format == "console" {
		out = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
			NoColor:    out != os.Stdout,
		}
	}

	return zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Str("app", AppName).
		Logger()
}
