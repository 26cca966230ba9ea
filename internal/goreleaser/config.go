// Package goreleaser derives the goreleaser configuration files published
// alongside the generated workflows.
package goreleaser

import (
	"fmt"

	"github.com/UnstoppableMango/pulumi-ci-mgmt/internal/provider"
)

// Config is a goreleaser configuration document.
type Config struct {
	ProjectName string    `yaml:"project_name"`
	Before      *Before   `yaml:"before,omitempty"`
	Builds      []Build   `yaml:"builds"`
	Archives    []Archive `yaml:"archives"`
	Snapshot    Snapshot  `yaml:"snapshot"`
	Changelog   Changelog `yaml:"changelog"`
	Release     Release   `yaml:"release"`
	Blobs       []Blob    `yaml:"blobs"`
}

// Before holds hooks run ahead of the builds.
type Before struct {
	Hooks []string `yaml:"hooks,omitempty"`
}

// Build is one goreleaser build target.
type Build struct {
	ID      string   `yaml:"id,omitempty"`
	Dir     string   `yaml:"dir,omitempty"`
	Env     []string `yaml:"env,omitempty"`
	Goos    []string `yaml:"goos,omitempty"`
	Goarch  []string `yaml:"goarch,omitempty"`
	Ignore  []Ignore `yaml:"ignore,omitempty"`
	Main    string   `yaml:"main,omitempty"`
	Ldflags []string `yaml:"ldflags,omitempty"`
	Binary  string   `yaml:"binary,omitempty"`
}

// Ignore excludes one platform/architecture pair from a build.
type Ignore struct {
	Goos   string `yaml:"goos,omitempty"`
	Goarch string `yaml:"goarch,omitempty"`
}

// Archive names the release archives.
type Archive struct {
	NameTemplate string `yaml:"name_template,omitempty"`
	ID           string `yaml:"id,omitempty"`
}

// Snapshot names snapshot builds.
type Snapshot struct {
	NameTemplate string `yaml:"name_template,omitempty"`
}

// Changelog is either skipped or generated from filtered git history.
type Changelog struct {
	Skip    bool     `yaml:"skip,omitempty"`
	Filters *Filters `yaml:"filters,omitempty"`
	Sort    string   `yaml:"sort,omitempty"`
	Use     string   `yaml:"use,omitempty"`
}

// Filters selects the commits excluded from the changelog.
type Filters struct {
	Exclude []string `yaml:"exclude,omitempty"`
}

// Release controls publication of the GitHub release.
type Release struct {
	Disable    bool `yaml:"disable"`
	Prerelease bool `yaml:"prerelease,omitempty"`
}

// Blob uploads archives to a bucket.
type Blob struct {
	Provider string   `yaml:"provider,omitempty"`
	Region   string   `yaml:"region,omitempty"`
	Bucket   string   `yaml:"bucket,omitempty"`
	Folder   string   `yaml:"folder,omitempty"`
	IDs      []string `yaml:"ids,omitempty"`
}

// ChangelogExcludes are the commit subject patterns left out of generated
// changelogs.
func ChangelogExcludes() []string {
	return []string{
		"Merge branch",
		"Merge pull request",
		`\Winternal\W`,
		`\Wci\W`,
		`\Wchore\W`,
	}
}

// Ldflags returns the linker flags injecting the release tag. The version
// package path carries the module major version when it is above 1. The
// providerVersion symbol and then the custom flag follow when configured.
func Ldflags(cfg provider.Config) []string {
	module := fmt.Sprintf("github.com/%s/pulumi-%s/provider", cfg.GithubOrg, cfg.Provider)
	if cfg.MajorVersion > 1 {
		module = fmt.Sprintf("%s/v%d", module, cfg.MajorVersion)
	}
	flags := []string{fmt.Sprintf("-X %s/pkg/version.Version={{.Tag}}", module)}
	if cfg.ProviderVersion != "" {
		flags = append(flags, fmt.Sprintf("-X %s={{.Tag}}", cfg.ProviderVersion))
	}
	if cfg.CustomLdFlag != "" {
		flags = append(flags, cfg.CustomLdFlag)
	}
	return flags
}

// Base builds the shared configuration: one provider build target, changelog
// skipped and release publication disabled.
func Base(cfg provider.Config) Config {
	var ignore []Ignore
	if cfg.SkipWindowsArmBuild {
		ignore = append(ignore, Ignore{Goos: "windows", Goarch: "arm64"})
	}
	binary := "pulumi-resource-" + cfg.Provider
	return Config{
		ProjectName: "pulumi-" + cfg.Provider,
		Builds: []Build{{
			Dir:     "provider",
			Env:     []string{"CGO_ENABLED=0", "GO111MODULE=on"},
			Goos:    []string{"darwin", "windows", "linux"},
			Goarch:  []string{"amd64", "arm64"},
			Ignore:  ignore,
			Main:    "./cmd/" + binary + "/",
			Ldflags: Ldflags(cfg),
			Binary:  binary,
		}},
		Archives: []Archive{{
			NameTemplate: "{{ .Binary }}-{{ .Tag }}-{{ .Os }}-{{ .Arch }}",
			ID:           "archive",
		}},
		Snapshot:  Snapshot{NameTemplate: "{{ .Tag }}-SNAPSHOT"},
		Changelog: Changelog{Skip: true},
		Release:   Release{Disable: true},
		Blobs:     []Blob{},
	}
}

// WithChangelog overlays a filtered, ascending git changelog and enables
// release publication. c is not modified.
func WithChangelog(c Config) Config {
	out := c
	out.Changelog = Changelog{
		Filters: &Filters{Exclude: ChangelogExcludes()},
		Sort:    "asc",
		Use:     "git",
	}
	out.Release = Release{Disable: false}
	return out
}

// Prerelease is the configuration used by prerelease.yml. It never carries a
// changelog or publishes a release.
func Prerelease(cfg provider.Config) Config {
	return Base(cfg)
}

// Full is the configuration used by release.yml.
func Full(cfg provider.Config) Config {
	out := Base(cfg)
	out.Release = Release{Disable: false}
	if cfg.EnableChangelog {
		out = WithChangelog(out)
	}
	return out
}
