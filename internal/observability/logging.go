// Package observability builds the zap loggers used by the armory commands.
package observability

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/cory-johannsen/armory/internal/config"
)

// presets maps a configured format to its base zap configuration.
var presets = map[string]func() zap.Config{
	"json":    zap.NewProductionConfig,
	"console": zap.NewDevelopmentConfig,
}

// NewLogger creates a structured logger from the given logging configuration.
// Durations are encoded as strings ("250ms") so reload and cadence timings
// read naturally.
//
// Precondition: cfg.Level must be one of "debug", "info", "warn", "error".
// Precondition: cfg.Format must be "json" or "console".
// Postcondition: Returns a configured zap.Logger or a non-nil error.
func NewLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	preset, ok := presets[cfg.Format]
	if !ok {
		return nil, fmt.Errorf("observability: NewLogger: unknown log format %q", cfg.Format)
	}
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("observability: NewLogger: level %q: %w", cfg.Level, err)
	}

	zc := preset()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zc.EncoderConfig.EncodeDuration = zapcore.StringDurationEncoder
	if cfg.Output != "" {
		zc.OutputPaths = []string{cfg.Output}
	}

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("observability: NewLogger: %w", err)
	}
	return logger, nil
}

// OrNop returns l, or a no-op logger when l is nil.
func OrNop(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}

// WithSession returns a child of l that tags every entry with a fresh
// session ID, and the ID itself.
func WithSession(l *zap.Logger) (*zap.Logger, string) {
	id := uuid.NewString()
	return OrNop(l).With(zap.String("session", id)), id
}
