package generate

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/UnstoppableMango/pulumi-ci-mgmt/internal/output"
	"github.com/UnstoppableMango/pulumi-ci-mgmt/internal/provider"
	"github.com/UnstoppableMango/pulumi-ci-mgmt/internal/report"
	"go.uber.org/zap/zaptest"
)

func writeProviders(t *testing.T, configs map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, doc := range configs {
		dir := filepath.Join(root, name)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(filepath.Join(dir, provider.ConfigFile), []byte(doc), 0o644); err != nil {
			t.Fatalf("write config: %v", err)
		}
	}
	return root
}

func readTree(t *testing.T, root string) map[string][]byte {
	t.Helper()
	files := make(map[string][]byte)
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		rel, _ := filepath.Rel(root, path)
		files[rel] = data
		return nil
	})
	if err != nil {
		t.Fatalf("walk: %v", err)
	}
	return files
}

func TestRenderFiles(t *testing.T) {
	cfg, err := provider.Parse([]byte("provider: aws-native\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	plan, err := Render(cfg)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := []string{
		WorkflowPath("pull-request"),
		WorkflowPath("run-acceptance-tests"),
		WorkflowPath("command-dispatch"),
		WorkflowPath("build"),
		WorkflowPath("prerelease"),
		WorkflowPath("release"),
		WorkflowPath("weekly-pulumi-update"),
		WorkflowPath("nightly-sdk-generation"),
		WorkflowPath("cf2pulumi-release"),
		PrereleaseConfigFile,
		ReleaseConfigFile,
	}
	if len(plan.Files) != len(want) {
		t.Fatalf("expected %d files, got %d", len(want), len(plan.Files))
	}
	for i, f := range plan.Files {
		if f.Path != want[i] {
			t.Fatalf("file %d: %q, want %q", i, f.Path, want[i])
		}
		if !bytes.HasPrefix(f.Data, []byte(output.Header)) {
			t.Fatalf("%s: missing header", f.Path)
		}
	}
	if !strings.Contains(string(plan.Files[len(plan.Files)-1].Data), "project_name: pulumi-aws-native") {
		t.Fatalf("unexpected release config:\n%s", plan.Files[len(plan.Files)-1].Data)
	}
}

func TestRunIsIdempotent(t *testing.T) {
	providers := writeProviders(t, map[string]string{
		"command":    "provider: command\n",
		"kubernetes": "provider: kubernetes\nmajor-version: 4\n",
		"xyz":        "provider: xyz\nenv:\n  EXTRA: value\n",
	})
	out := t.TempDir()
	opts := Options{ProvidersDir: providers, OutDir: out, Parallelism: 2, Logger: zaptest.NewLogger(t)}

	first, err := Run(context.Background(), opts)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	if first.Summary.Providers != 3 || first.Summary.Written != first.Summary.Files {
		t.Fatalf("unexpected first summary %+v", first.Summary)
	}
	before := readTree(t, out)
	if _, ok := before[filepath.Join("kubernetes", WorkflowPath("pull-request"))]; !ok {
		t.Fatalf("missing kubernetes pull-request workflow in %d files", len(before))
	}

	second, err := Run(context.Background(), opts)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if second.Summary.Unchanged != second.Summary.Files || second.Summary.Written != 0 {
		t.Fatalf("second run rewrote files: %+v", second.Summary)
	}
	after := readTree(t, out)
	if len(before) != len(after) {
		t.Fatalf("file count changed: %d vs %d", len(before), len(after))
	}
	for path, data := range before {
		if !bytes.Equal(data, after[path]) {
			t.Fatalf("%s changed between runs", path)
		}
	}
}

func TestRunCheck(t *testing.T) {
	providers := writeProviders(t, map[string]string{"xyz": "provider: xyz\n"})
	out := t.TempDir()
	opts := Options{ProvidersDir: providers, OutDir: out, Check: true}

	res, err := Run(context.Background(), opts)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if res.Summary.Drifted != res.Summary.Files || res.Summary.ExitCode != 1 {
		t.Fatalf("expected every file missing, got %+v", res.Summary)
	}
	if len(readTree(t, out)) != 0 {
		t.Fatalf("check mode wrote files")
	}

	opts.Check = false
	if _, err := Run(context.Background(), opts); err != nil {
		t.Fatalf("generate: %v", err)
	}
	opts.Check = true
	res, err = Run(context.Background(), opts)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if res.Summary.Drifted != 0 || res.Summary.ExitCode != 0 {
		t.Fatalf("expected no drift, got %+v", res.Summary)
	}

	path := filepath.Join(out, "xyz", ReleaseConfigFile)
	if err := os.WriteFile(path, []byte("edited\n"), 0o644); err != nil {
		t.Fatalf("edit: %v", err)
	}
	res, err = Run(context.Background(), opts)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if res.Summary.Drifted != 1 {
		t.Fatalf("expected one drifted file, got %+v", res.Summary)
	}
	for _, f := range res.Files {
		if f.Status == report.StatusDrift && f.Path != ReleaseConfigFile {
			t.Fatalf("unexpected drift in %s", f.Path)
		}
	}
}

func TestRunInvalidConfigWritesNothing(t *testing.T) {
	providers := writeProviders(t, map[string]string{
		"good": "provider: good\n",
		"bad":  "provider: bad\nparallel: 0\n",
	})
	out := t.TempDir()
	_, err := Run(context.Background(), Options{ProvidersDir: providers, OutDir: out, Parallelism: 4})
	if !errors.Is(err, provider.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
	if files := readTree(t, out); len(files) != 0 {
		t.Fatalf("expected no output, got %d files", len(files))
	}
}

func TestPlansSelectedProviders(t *testing.T) {
	providers := writeProviders(t, map[string]string{
		"command":    "provider: command\n",
		"kubernetes": "provider: kubernetes\n",
	})
	plans, err := Plans(context.Background(), Options{ProvidersDir: providers, Providers: []string{"kubernetes"}})
	if err != nil {
		t.Fatalf("plans: %v", err)
	}
	if len(plans) != 1 || plans[0].Provider != "kubernetes" || !plans[0].Config.Capabilities.TestCluster {
		t.Fatalf("unexpected plans %+v", plans)
	}
}

func TestPlansCanceled(t *testing.T) {
	providers := writeProviders(t, map[string]string{"command": "provider: command\n"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Plans(ctx, Options{ProvidersDir: providers}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
