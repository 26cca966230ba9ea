package provider

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/UnstoppableMango/pulumi-ci-mgmt/internal/actions"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// ConfigFile is the per-provider configuration file name.
const ConfigFile = "config.yaml"

var (
	// ErrMissingProvider indicates the required provider key is absent.
	ErrMissingProvider = errors.New("config.provider is required")
	// ErrInvalidConfig wraps every other configuration failure.
	ErrInvalidConfig = errors.New("invalid provider config")
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("github-org", "UnstoppableMango")
	v.SetDefault("defaultBranch", "main")
	v.SetDefault("golangci-timeout", "20m")
	v.SetDefault("major-version", 0)
	v.SetDefault("enableChangelog", false)
	v.SetDefault("customLdFlag", "")
	v.SetDefault("skipWindowsArmBuild", false)
	v.SetDefault("docker", false)
	v.SetDefault("aws", false)
	v.SetDefault("gcp", false)
	v.SetDefault("submodules", false)
	v.SetDefault("lint", true)
	v.SetDefault("setup-script", "")
	v.SetDefault("parallel", 3)
	v.SetDefault("timeout", 60)
	v.SetDefault("providerVersion", "")
	v.SetDefault("skipCodegen", false)
	v.SetDefault("pulumiCLIVersion", "")
}

// Load reads and resolves the configuration file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read provider config %q: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// LoadFromDir resolves providersDir/name/config.yaml.
func LoadFromDir(providersDir, name string) (Config, error) {
	return Load(filepath.Join(providersDir, name, ConfigFile))
}

// Parse validates a YAML configuration document and fills in defaults.
func Parse(data []byte) (Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v)
	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	if !v.IsSet("provider") {
		return Config{}, ErrMissingProvider
	}
	id, ok := v.Get("provider").(string)
	if !ok {
		return Config{}, fmt.Errorf("%w: config.provider must be a string", ErrInvalidConfig)
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return Config{}, ErrMissingProvider
	}

	caps := CapabilitiesFor(id)
	v.SetDefault("submoduleDir", caps.SubmoduleDir)
	v.SetDefault("acceptanceBranches", caps.AcceptanceBranches)
	v.SetDefault("hasGenBinary", caps.HasGenBinary)

	var cfg Config
	strict := func(dc *mapstructure.DecoderConfig) {
		dc.WeaklyTypedInput = false
	}
	if err := v.Unmarshal(&cfg, strict); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	cfg.Provider = id

	var doc struct {
		Env actions.Map `yaml:"env"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Config{}, fmt.Errorf("%w: env: %v", ErrInvalidConfig, err)
	}
	cfg.Env = doc.Env

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	caps.SubmoduleDir = cfg.SubmoduleDir
	caps.HasGenBinary = cfg.HasGenBinary
	caps.AcceptanceBranches = append([]string(nil), cfg.AcceptanceBranches...)
	cfg.Capabilities = caps
	return cfg, nil
}

// Validate checks value ranges that the schema types cannot express.
func (c Config) Validate() error {
	if c.Provider == "" {
		return ErrMissingProvider
	}
	if c.GithubOrg == "" {
		return fmt.Errorf("%w: config.github-org must not be empty", ErrInvalidConfig)
	}
	if c.DefaultBranch == "" {
		return fmt.Errorf("%w: config.defaultBranch must not be empty", ErrInvalidConfig)
	}
	if c.MajorVersion < 0 {
		return fmt.Errorf("%w: config.major-version must be >= 0, got %d", ErrInvalidConfig, c.MajorVersion)
	}
	if c.Parallel <= 0 {
		return fmt.Errorf("%w: config.parallel must be > 0, got %d", ErrInvalidConfig, c.Parallel)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("%w: config.timeout must be > 0, got %d", ErrInvalidConfig, c.Timeout)
	}
	if len(c.AcceptanceBranches) == 0 {
		return fmt.Errorf("%w: config.acceptanceBranches must not be empty", ErrInvalidConfig)
	}
	for _, e := range c.Env {
		if e.Key == "" {
			return fmt.Errorf("%w: config.env has an empty variable name", ErrInvalidConfig)
		}
	}
	return nil
}
