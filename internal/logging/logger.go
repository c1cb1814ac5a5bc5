// Package logging builds the zap logger used for diagnostics. The terminal
// belongs to the prompts, so nothing is logged there unless verbose output is
// requested.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options selects where and how much to log.
type Options struct {
	Level   string
	File    string
	Verbose bool
}

// New returns a no-op logger unless a file or verbose output is requested.
// Verbose output goes to stderr in console format at debug level; a file
// receives JSON at the configured level. Both may be active at once.
func New(opts Options) (*zap.Logger, error) {
	file := strings.TrimSpace(opts.File)
	if !opts.Verbose && file == "" {
		return zap.NewNop(), nil
	}

	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}

	var cores []zapcore.Core
	if opts.Verbose {
		cfg := zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		cfg.OutputPaths = []string{"stderr"}
		cfg.ErrorOutputPaths = []string{"stderr"}
		logger, err := cfg.Build()
		if err != nil {
			return nil, fmt.Errorf("logging: build console logger: %w", err)
		}
		cores = append(cores, logger.Core())
	}
	if file != "" {
		path := filepath.Clean(file)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("logging: ensure log dir: %w", err)
		}
		cfg := zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(level)
		cfg.OutputPaths = []string{path}
		cfg.ErrorOutputPaths = []string{"stderr"}
		cfg.Sampling = nil
		logger, err := cfg.Build()
		if err != nil {
			return nil, fmt.Errorf("logging: build file logger: %w", err)
		}
		cores = append(cores, logger.Core())
	}

	return zap.New(zapcore.NewTee(cores...), zap.AddCaller()), nil
}

// ParseLevel maps a level name to a zap level; empty means info.
func ParseLevel(raw string) (zapcore.Level, error) {
	if strings.TrimSpace(raw) == "" {
		return zapcore.InfoLevel, nil
	}
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(raw)))); err != nil {
		return level, fmt.Errorf("logging: unknown level %q", raw)
	}
	return level, nil
}

// WithRunID tags logger with a fresh run identifier and returns it alongside.
func WithRunID(logger *zap.Logger) (*zap.Logger, string) {
	id := uuid.NewString()
	return logger.With(zap.String("run_id", id)), id
}
