package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the optional CLI configuration file read from the working directory.
const FileName = ".ci-mgmt.yml"

// Config captures CLI options sourced from config files or flags.
type Config struct {
	ProvidersDir string   `yaml:"providers_dir"`
	OutDir       string   `yaml:"out_dir"`
	Providers    []string `yaml:"providers"`
	Jobs         []string `yaml:"jobs"`

	OnlySteps []string `yaml:"only_step"`
	SkipSteps []string `yaml:"skip_step"`

	Format      string `yaml:"format"`
	Parallelism int    `yaml:"parallelism"`
	Check       bool   `yaml:"check"`

	Debug     bool   `yaml:"debug"`
	LogFormat string `yaml:"log_format"`
}

const (
	// FormatPretty renders human readable output.
	FormatPretty = "pretty"
	// FormatJSON renders machine readable output.
	FormatJSON = "json"

	// DefaultProvidersDir holds one directory per provider.
	DefaultProvidersDir = "providers"
	// DefaultParallelism bounds concurrent provider generation.
	DefaultParallelism = 4
)

// Default returns the baseline configuration used when no flags or config file specify values.
func Default() Config {
	return Config{
		ProvidersDir: DefaultProvidersDir,
		OutDir:       ".",
		Format:       FormatPretty,
		Parallelism:  DefaultParallelism,
		LogFormat:    "human",
	}
}

// Load reads .ci-mgmt.yml from root when present. Missing files are ignored.
func Load(root string) (Config, error) {
	cfg := Default()
	path := filepath.Join(root, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %q: %w", path, err)
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return cfg, fmt.Errorf("parse config %q: %w", path, err)
	}

	cfg = merge(cfg, fileCfg)
	return cfg, nil
}

// Validate rejects option combinations the commands cannot honour.
func (c Config) Validate() error {
	switch c.Format {
	case FormatPretty, FormatJSON:
	default:
		return fmt.Errorf("unsupported format %q", c.Format)
	}
	if c.Parallelism <= 0 {
		return fmt.Errorf("parallelism must be > 0, got %d", c.Parallelism)
	}
	if c.ProvidersDir == "" {
		return errors.New("providers directory must not be empty")
	}
	return nil
}

func merge(base, override Config) Config {
	out := base

	if override.ProvidersDir != "" {
		out.ProvidersDir = override.ProvidersDir
	}
	if override.OutDir != "" {
		out.OutDir = override.OutDir
	}
	if len(override.Providers) > 0 {
		out.Providers = append([]string{}, override.Providers...)
	}
	if len(override.Jobs) > 0 {
		out.Jobs = append([]string{}, override.Jobs...)
	}
	if len(override.OnlySteps) > 0 {
		out.OnlySteps = append([]string{}, override.OnlySteps...)
	}
	if len(override.SkipSteps) > 0 {
		out.SkipSteps = append([]string{}, override.SkipSteps...)
	}
	if override.Format != "" {
		out.Format = override.Format
	}
	if override.Parallelism > 0 {
		out.Parallelism = override.Parallelism
	}
	if override.LogFormat != "" {
		out.LogFormat = override.LogFormat
	}
	if override.Check {
		out.Check = true
	}
	if override.Debug {
		out.Debug = true
	}

	return out
}

// ApplyFlags mutates cfg by applying values from CLI flags when they are present.
func ApplyFlags(cfg *Config, flags FlagValues) {
	if flags.ProvidersDir.Set {
		cfg.ProvidersDir = flags.ProvidersDir.Value
	}
	if flags.OutDir.Set {
		cfg.OutDir = flags.OutDir.Value
	}
	if len(flags.Providers.Values) > 0 {
		cfg.Providers = append([]string{}, flags.Providers.Values...)
	}
	if len(flags.Jobs.Values) > 0 {
		cfg.Jobs = append([]string{}, flags.Jobs.Values...)
	}
	if len(flags.OnlySteps.Values) > 0 {
		cfg.OnlySteps = append([]string{}, flags.OnlySteps.Values...)
	}
	if len(flags.SkipSteps.Values) > 0 {
		cfg.SkipSteps = append([]string{}, flags.SkipSteps.Values...)
	}
	if flags.Format.Set {
		cfg.Format = flags.Format.Value
	}
	if flags.Parallelism.Set {
		cfg.Parallelism = flags.Parallelism.Value
	}
	if flags.Check.Set {
		cfg.Check = flags.Check.Value
	}
	if flags.Debug.Set {
		cfg.Debug = flags.Debug.Value
	}
	if flags.LogFormat.Set {
		cfg.LogFormat = flags.LogFormat.Value
	}
}

// FlagValues captures CLI flag state with knowledge of whether each flag was set explicitly.
type FlagValues struct {
	ProvidersDir StringFlag
	OutDir       StringFlag
	Providers    SliceFlag
	Jobs         SliceFlag
	OnlySteps    SliceFlag
	SkipSteps    SliceFlag
	Format       StringFlag
	Parallelism  IntFlag
	Check        BoolFlag
	Debug        BoolFlag
	LogFormat    StringFlag
}

// StringFlag represents a string flag and whether it was set.
type StringFlag struct {
	Value string
	Set   bool
}

// SliceFlag represents a slice flag and whether it captured values via CLI.
type SliceFlag struct {
	Values []string
}

// BoolFlag represents a bool flag and whether it was set.
type BoolFlag struct {
	Value bool
	Set   bool
}

// IntFlag represents an int flag and whether it was set.
type IntFlag struct {
	Value int
	Set   bool
}
