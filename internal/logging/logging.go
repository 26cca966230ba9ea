// Package logging builds the zap logger shared by the CLI and the generator.
package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	// FormatJSON emits structured production logs.
	FormatJSON = "json"
	// FormatHuman emits colored development logs.
	FormatHuman = "human"
)

// Options controls logger construction.
type Options struct {
	Debug  bool
	Format string
	// OutputPaths defaults to stderr so generated output on stdout stays clean.
	OutputPaths []string
}

// New builds a logger for opts.
func New(opts Options) (*zap.Logger, error) {
	var cfg zap.Config
	switch strings.ToLower(opts.Format) {
	case FormatJSON:
		cfg = zap.NewProductionConfig()
	case "", FormatHuman:
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	default:
		return nil, fmt.Errorf("unsupported log format %q", opts.Format)
	}

	cfg.OutputPaths = []string{"stderr"}
	if len(opts.OutputPaths) > 0 {
		cfg.OutputPaths = append([]string(nil), opts.OutputPaths...)
	}
	if opts.Debug {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}
