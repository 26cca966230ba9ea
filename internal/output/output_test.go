package output

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/UnstoppableMango/pulumi-ci-mgmt/internal/actions"
	"github.com/UnstoppableMango/pulumi-ci-mgmt/internal/report"
)

func sampleWorkflow() actions.Workflow {
	return actions.NewWorkflow("build", actions.Triggers{WorkflowDispatch: &actions.WorkflowTrigger{}}, actions.M("PROVIDER", "xyz")).
		WithJob(actions.NewJob("prerequisites", &actions.Step{Name: "Checkout Repo", Uses: actions.Checkout})).
		WithJob(actions.NewJob("test", &actions.Step{Run: "make test"}, &actions.Step{Run: "make lint"}).WithNeeds("prerequisites"))
}

func TestEncodeYAML(t *testing.T) {
	out, err := EncodeYAML(sampleWorkflow())
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	doc := string(out)
	if !strings.HasPrefix(doc, Header) {
		t.Fatalf("missing header:\n%s", doc)
	}
	for _, want := range []string{"name: build\n", "\n  workflow_dispatch: {}\n", "env:\n  PROVIDER: xyz\n", "jobs:\n  prerequisites:\n", "    needs:\n      - prerequisites\n"} {
		if !strings.Contains(doc, want) {
			t.Fatalf("missing %q in:\n%s", want, doc)
		}
	}

	again, err := EncodeYAML(sampleWorkflow())
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !bytes.Equal(out, again) {
		t.Fatalf("encoding is not deterministic")
	}
}

func TestWriteAndCheck(t *testing.T) {
	root := t.TempDir()
	files := []File{
		{Path: filepath.Join(".github", "workflows", "build.yml"), Data: []byte("a: 1\n")},
		{Path: ".goreleaser.yml", Data: []byte("b: 2\n")},
	}

	results, err := Check(root, "xyz", files)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	for _, r := range results {
		if r.Status != report.StatusMissing {
			t.Fatalf("expected missing, got %+v", r)
		}
	}

	results, err = Write(root, "xyz", files)
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	for _, r := range results {
		if r.Status != report.StatusWritten || r.Provider != "xyz" {
			t.Fatalf("expected written, got %+v", r)
		}
	}
	data, err := os.ReadFile(filepath.Join(root, ".github", "workflows", "build.yml"))
	if err != nil || string(data) != "a: 1\n" {
		t.Fatalf("unexpected file content %q (%v)", data, err)
	}

	results, err = Write(root, "xyz", files)
	if err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	for _, r := range results {
		if r.Status != report.StatusUnchanged {
			t.Fatalf("expected unchanged, got %+v", r)
		}
	}

	files[1].Data = []byte("b: 3\n")
	results, err = Check(root, "xyz", files)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if results[0].Status != report.StatusUnchanged || results[1].Status != report.StatusDrift {
		t.Fatalf("unexpected drift results %+v", results)
	}
	data, _ = os.ReadFile(filepath.Join(root, ".goreleaser.yml"))
	if string(data) != "b: 2\n" {
		t.Fatalf("check must not write, got %q", data)
	}
}

func TestDescribeAndSummarize(t *testing.T) {
	wf := Describe(".github/workflows/build.yml", sampleWorkflow())
	if len(wf.Jobs) != 2 || wf.Jobs[1].ID != "test" {
		t.Fatalf("unexpected jobs %+v", wf.Jobs)
	}
	if got := strings.Join(wf.Jobs[0].Steps, ","); got != "Checkout Repo" {
		t.Fatalf("unexpected labels %q", got)
	}
	if got := strings.Join(wf.Jobs[1].Steps, ","); got != "make test,make lint" {
		t.Fatalf("unexpected labels %q", got)
	}
	s := Summarize([]Provider{{Name: "xyz", Workflows: []Workflow{wf}}})
	if s.Providers != 1 || s.Workflows != 1 || s.Jobs != 2 || s.Steps != 3 {
		t.Fatalf("unexpected summary %+v", s)
	}
}

func TestPrettyRenderList(t *testing.T) {
	providers := []Provider{{Name: "xyz", Workflows: []Workflow{Describe("build.yml", sampleWorkflow())}}}
	buf := &bytes.Buffer{}
	if err := NewPretty(buf).RenderList(providers); err != nil {
		t.Fatalf("render list: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"PROVIDER", "xyz", "prerequisites", "ubuntu-latest"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}

	buf.Reset()
	if err := NewPretty(buf).RenderSteps(providers); err != nil {
		t.Fatalf("render steps: %v", err)
	}
	if !strings.Contains(buf.String(), "Workflow xyz/build (build.yml)") || !strings.Contains(buf.String(), "• make lint") {
		t.Fatalf("unexpected step listing:\n%s", buf.String())
	}
}

func TestPrettyRenderResults(t *testing.T) {
	results := []report.FileResult{
		{Provider: "xyz", Path: ".goreleaser.yml", Status: report.StatusWritten},
		{Provider: "xyz", Path: "build.yml", Status: report.StatusDrift},
	}
	buf := &bytes.Buffer{}
	if err := NewPretty(buf).RenderResults(results, report.Summarize(results, 0)); err != nil {
		t.Fatalf("render results: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "✓ written") || !strings.Contains(out, "✗ drift") {
		t.Fatalf("expected status glyphs, got %q", out)
	}
	if !strings.Contains(out, "SUMMARY: 1 written, 0 unchanged, 1 drifted (0s)") {
		t.Fatalf("expected summary line, got %q", out)
	}
}

func TestJSONRenderer(t *testing.T) {
	providers := []Provider{{Name: "xyz", Workflows: []Workflow{Describe("build.yml", sampleWorkflow())}}}
	buf := &bytes.Buffer{}
	if err := NewJSON(buf).Render(ListReport{Providers: providers, Summary: Summarize(providers)}); err != nil {
		t.Fatalf("render json: %v", err)
	}

	var decoded ListReport
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if len(decoded.Providers) != 1 || decoded.Providers[0].Name != "xyz" {
		t.Fatalf("provider mismatch: %+v", decoded.Providers)
	}
	if decoded.Summary.Jobs != 2 {
		t.Fatalf("summary mismatch: %+v", decoded.Summary)
	}
	if !strings.Contains(buf.String(), `"runs_on": "ubuntu-latest"`) {
		t.Fatalf("expected snake_case keys:\n%s", buf.String())
	}
}
