// Package cli implements the rubyfactor command-line interface.
//
// The CLI exposes the refactoring operations as subcommands: "extract
// let", "extract method", and "add-parameter". All commands support
// --verbose (-v) for debug-level logging and --config for an explicit
// configuration file. Loggers and the loaded configuration are passed
// through context.Context.
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"

	"rubyfactor/pkg/config"
)

// newLogger creates a logger writing to w, filtered at level.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// ctxKey is the type for context keys used in this package.
type ctxKey int

const (
	loggerKey ctxKey = iota
	configKey
)

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx, falling back to the
// default logger so commands always have a valid one.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// withConfig returns a new context with the loaded configuration.
func withConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, configKey, cfg)
}

// configFromContext retrieves the configuration from ctx.
func configFromContext(ctx context.Context) *config.Config {
	if cfg, ok := ctx.Value(configKey).(*config.Config); ok {
		return cfg
	}
	return config.Default()
}
