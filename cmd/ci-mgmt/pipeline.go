package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/UnstoppableMango/pulumi-ci-mgmt/internal/config"
	"github.com/UnstoppableMango/pulumi-ci-mgmt/internal/generate"
	"github.com/UnstoppableMango/pulumi-ci-mgmt/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func loadConfig(cmd *cobra.Command) (config.Config, string, error) {
	root, err := os.Getwd()
	if err != nil {
		return config.Config{}, "", fmt.Errorf("determine working directory: %w", err)
	}

	cfg, err := config.Load(root)
	if err != nil {
		return config.Config{}, "", err
	}

	flags, err := gatherFlags(cmd)
	if err != nil {
		return config.Config{}, "", err
	}
	config.ApplyFlags(&cfg, flags)

	if err := cfg.Validate(); err != nil {
		return config.Config{}, "", err
	}
	return cfg, root, nil
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	return logging.New(logging.Options{Debug: cfg.Debug, Format: cfg.LogFormat})
}

func generateOptions(cfg config.Config, root string, logger *zap.Logger) generate.Options {
	return generate.Options{
		ProvidersDir: resolvePath(root, cfg.ProvidersDir),
		OutDir:       resolvePath(root, cfg.OutDir),
		Providers:    cfg.Providers,
		Parallelism:  cfg.Parallelism,
		Check:        cfg.Check,
		Logger:       logger,
	}
}

func resolvePath(root, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}
