package provider

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse([]byte("provider: baremetal\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.GithubOrg != "UnstoppableMango" || cfg.DefaultBranch != "main" {
		t.Fatalf("unexpected repo defaults: %+v", cfg)
	}
	if cfg.Parallel != 3 || cfg.Timeout != 60 || cfg.GolangciTimeout != "20m" {
		t.Fatalf("unexpected numeric defaults: %+v", cfg)
	}
	if !cfg.Lint || !cfg.HasGenBinary || cfg.EnableChangelog {
		t.Fatalf("unexpected flag defaults: %+v", cfg)
	}
	if !reflect.DeepEqual(cfg.AcceptanceBranches, []string{"main"}) {
		t.Fatalf("unexpected acceptance branches %v", cfg.AcceptanceBranches)
	}
	if !cfg.Capabilities.HasSchema || cfg.Capabilities.TestCluster {
		t.Fatalf("unexpected capabilities %+v", cfg.Capabilities)
	}
}

func TestParseOverrides(t *testing.T) {
	doc := `provider: kubernetes
github-org: Acme
major-version: 4
parallel: 6
lint: false
customLdFlag: -X main.foo=bar
acceptanceBranches: [main, v3]
`
	cfg, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.GithubOrg != "Acme" || cfg.MajorVersion != 4 || cfg.Parallel != 6 || cfg.Lint {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.CustomLdFlag != "-X main.foo=bar" {
		t.Fatalf("unexpected ldflag %q", cfg.CustomLdFlag)
	}
	if want := []string{"main", "v3"}; !reflect.DeepEqual(cfg.Capabilities.AcceptanceBranches, want) {
		t.Fatalf("acceptance branches %v, want %v", cfg.Capabilities.AcceptanceBranches, want)
	}
	if !cfg.Capabilities.TestCluster {
		t.Fatalf("kubernetes should use a test cluster")
	}
}

func TestParseProviderDefaults(t *testing.T) {
	tests := []struct {
		doc      string
		dir      string
		branches []string
		gen      bool
	}{
		{doc: "provider: azure-native\n", dir: "azure-rest-api-specs", branches: []string{"main"}, gen: true},
		{doc: "provider: aws-native\n", dir: "aws-cloudformation-user-guide", branches: []string{"main"}, gen: true},
		{doc: "provider: kubernetes\n", branches: []string{"main", "v4"}},
		{doc: "provider: command\n", branches: []string{"main"}},
		{doc: "provider: command\nhasGenBinary: true\n", branches: []string{"main"}, gen: true},
		{doc: "provider: azure-native\nsubmoduleDir: specs\n", dir: "specs", branches: []string{"main"}, gen: true},
	}
	for _, tt := range tests {
		cfg, err := Parse([]byte(tt.doc))
		if err != nil {
			t.Fatalf("%q: %v", tt.doc, err)
		}
		if cfg.SubmoduleDir != tt.dir || cfg.Capabilities.SubmoduleDir != tt.dir {
			t.Fatalf("%q: submodule dir %q, want %q", tt.doc, cfg.SubmoduleDir, tt.dir)
		}
		if !reflect.DeepEqual(cfg.AcceptanceBranches, tt.branches) {
			t.Fatalf("%q: branches %v, want %v", tt.doc, cfg.AcceptanceBranches, tt.branches)
		}
		if cfg.HasGenBinary != tt.gen || cfg.Capabilities.HasGenBinary != tt.gen {
			t.Fatalf("%q: hasGenBinary %v, want %v", tt.doc, cfg.HasGenBinary, tt.gen)
		}
	}
}

func TestParseEnvKeepsOrderAndCase(t *testing.T) {
	doc := "provider: baremetal\nenv:\n  Zeta_Var: one\n  ALPHA: two\n  mixedCase: three\n"
	cfg, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got, want := cfg.Env.Keys(), []string{"Zeta_Var", "ALPHA", "mixedCase"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("env keys %v, want %v", got, want)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{name: "missing provider", doc: "lint: true\n", want: ErrMissingProvider},
		{name: "blank provider", doc: "provider: \"  \"\n", want: ErrMissingProvider},
		{name: "non-string provider", doc: "provider: [a]\n", want: ErrInvalidConfig},
		{name: "wrong type", doc: "provider: baremetal\nparallel: x\n", want: ErrInvalidConfig},
		{name: "zero parallel", doc: "provider: baremetal\nparallel: 0\n", want: ErrInvalidConfig},
		{name: "negative major", doc: "provider: baremetal\nmajor-version: -1\n", want: ErrInvalidConfig},
		{name: "empty branches", doc: "provider: baremetal\nacceptanceBranches: []\n", want: ErrInvalidConfig},
		{name: "malformed yaml", doc: "provider: [\n", want: ErrInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestLoadFromDir(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "command")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, ConfigFile), []byte("provider: command\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := LoadFromDir(root, "command")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Capabilities.HasSchema {
		t.Fatalf("command provider has no schema")
	}
	if _, err := LoadFromDir(root, "missing"); err == nil {
		t.Fatalf("expected error for a missing config")
	}
}

func TestCapabilitiesForUnknownProvider(t *testing.T) {
	c := CapabilitiesFor("something-new")
	if !c.BuildsSDKs || !c.BuildsProvider || c.ConverterTool != "" || c.NightlySDKGeneration {
		t.Fatalf("unexpected default capabilities %+v", c)
	}
}
