package jobs

import (
	"strings"
	"testing"

	"github.com/UnstoppableMango/pulumi-ci-mgmt/internal/actions"
	"github.com/UnstoppableMango/pulumi-ci-mgmt/internal/provider"
)

func mustConfig(t *testing.T, doc string) provider.Config {
	t.Helper()
	cfg, err := provider.Parse([]byte(doc))
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	return cfg
}

func stepNames(j actions.Job) []string {
	names := make([]string, 0, len(j.Steps))
	for _, s := range j.Steps {
		names = append(names, s.Label())
	}
	return names
}

func hasStep(j actions.Job, name string) bool {
	for _, s := range j.Steps {
		if s.Name == name {
			return true
		}
	}
	return false
}

func TestJobsContainOnlyRunnableSteps(t *testing.T) {
	for _, id := range []string{"baremetal", provider.Command, provider.Kubernetes, provider.AzureNative, provider.AWSNative, provider.GoogleNative} {
		cfg := mustConfig(t, "provider: "+id+"\n")
		all := []actions.Job{
			PrerequisitesJob(cfg),
			BuildSDKsJob(cfg, true),
			TestJob(cfg, false),
			TestJob(cfg, true),
			LintJob(cfg),
			BuildTestClusterJob(cfg),
			TeardownTestClusterJob(cfg),
			PublishJob(cfg),
			PublishPrereleaseJob(cfg),
			PublishSDKJob(cfg),
			PublishGoSDKJob(),
			DocsBuildDispatchJob(),
			WeeklyPulumiUpdateJob(cfg),
			NightlySDKGenerationJob(cfg),
			CommandDispatchJob(cfg),
			CommentNotificationJob(),
			SentinelJob(TestID),
		}
		for _, j := range all {
			if len(j.Steps) == 0 {
				t.Fatalf("%s/%s: no steps", id, j.ID)
			}
			for i, s := range j.Steps {
				if !s.Runnable() {
					t.Fatalf("%s/%s: step %d is empty", id, j.ID, i)
				}
			}
		}
	}
}

func TestPrerequisitesCommandProvider(t *testing.T) {
	j := PrerequisitesJob(mustConfig(t, "provider: command\n"))
	for _, name := range []string{"Install Schema Tools", "Build Schema", "Check Schema is Valid", "Build K8sgen"} {
		if hasStep(j, name) {
			t.Fatalf("unexpected step %q in %v", name, stepNames(j))
		}
	}
	for _, s := range j.Steps {
		if s.Name == "Tar provider binaries" && strings.Contains(s.Run, "pulumi-gen") {
			t.Fatalf("tar step references the generator binary: %q", s.Run)
		}
	}
}

func TestTarStepGeneratorBinary(t *testing.T) {
	tests := []struct {
		doc     string
		wantGen bool
	}{
		{doc: "provider: baremetal\n", wantGen: true},
		{doc: "provider: azure-native\n", wantGen: true},
		{doc: "provider: command\n"},
		{doc: "provider: kubernetes\n"},
		{doc: "provider: baremetal\nhasGenBinary: false\n"},
		{doc: "provider: command\nhasGenBinary: true\n", wantGen: true},
	}
	for _, tt := range tests {
		j := PrerequisitesJob(mustConfig(t, tt.doc))
		found := false
		for _, s := range j.Steps {
			if s.Name != "Tar provider binaries" {
				continue
			}
			found = true
			if got := strings.Contains(s.Run, "pulumi-gen"); got != tt.wantGen {
				t.Fatalf("%q: generator binary in tar step=%v, want %v: %q", tt.doc, got, tt.wantGen, s.Run)
			}
		}
		if !found {
			t.Fatalf("%q: missing tar step in %v", tt.doc, stepNames(j))
		}
	}
}

func TestPrerequisitesKubernetes(t *testing.T) {
	j := PrerequisitesJob(mustConfig(t, "provider: kubernetes\n"))
	for _, name := range []string{"Build K8sgen", "Prepare OpenAPI file", "Prepare Schema", "Make Kubernetes provider"} {
		if !hasStep(j, name) {
			t.Fatalf("missing %q in %v", name, stepNames(j))
		}
	}
	if hasStep(j, "Build Provider") || hasStep(j, "Build codegen binaries") {
		t.Fatalf("kubernetes must not build codegen or provider: %v", stepNames(j))
	}
}

func TestSkipCodegen(t *testing.T) {
	j := PrerequisitesJob(mustConfig(t, "provider: baremetal\nskipCodegen: true\n"))
	if hasStep(j, "Build codegen binaries") {
		t.Fatalf("codegen should be skipped: %v", stepNames(j))
	}
}

func TestBuildSDKsSplitRunner(t *testing.T) {
	j := BuildSDKsJob(mustConfig(t, "provider: azure-native\n"), false)
	if j.RunsOn != dotnetRunner {
		t.Fatalf("unexpected runner %q", j.RunsOn)
	}
	if !hasStep(j, "Build Codegen") {
		t.Fatalf("missing dotnet codegen step: %v", stepNames(j))
	}

	plain := BuildSDKsJob(mustConfig(t, "provider: baremetal\n"), false)
	if plain.RunsOn != actions.UbuntuLatest {
		t.Fatalf("unexpected runner %q", plain.RunsOn)
	}
	if plain.Strategy == nil || !plain.Strategy.FailFast {
		t.Fatalf("expected fail-fast matrix, got %+v", plain.Strategy)
	}
}

func TestTestJobAcceptanceKubernetes(t *testing.T) {
	cfg := mustConfig(t, "provider: kubernetes\n")

	shared := TestJob(cfg, false)
	if !hasStep(shared, "Download Kubeconfig") || hasStep(shared, "Setup KinD cluster") {
		t.Fatalf("shared cluster test job has wrong steps: %v", stepNames(shared))
	}
	if !shared.Strategy.FailFast {
		t.Fatalf("shared cluster test job should fail fast")
	}

	acc := TestJob(cfg, true)
	if hasStep(acc, "Download Kubeconfig") || !hasStep(acc, "Setup KinD cluster") {
		t.Fatalf("acceptance test job has wrong steps: %v", stepNames(acc))
	}
	if acc.Strategy.FailFast {
		t.Fatalf("acceptance test job should not fail fast")
	}
	last := acc.Steps[len(acc.Steps)-1]
	if !strings.Contains(last.Run, "-short") {
		t.Fatalf("expected short mode tests, got %q", last.Run)
	}
}

func TestTestJobFlags(t *testing.T) {
	j := TestJob(mustConfig(t, "provider: baremetal\ndocker: true\ngcp: true\naws: true\nsetup-script: ./setup.sh\n"), false)
	for _, name := range []string{"Run docker compose", "Run setup script", "Authenticate to Google Cloud", "Setup gcloud auth", "Configure AWS Credentials"} {
		if !hasStep(j, name) {
			t.Fatalf("missing %q in %v", name, stepNames(j))
		}
	}
}

func TestTeardownRunsAfterPushBuilds(t *testing.T) {
	j := TeardownTestClusterJob(mustConfig(t, "provider: kubernetes\n"))
	if j.If != TeardownGuard {
		t.Fatalf("unexpected guard %q", j.If)
	}
	if !strings.HasPrefix(j.If, "${{ always() && (") || !strings.Contains(j.If, "github.event_name != 'pull_request'") {
		t.Fatalf("teardown must run for non pull request events: %q", j.If)
	}
}

func TestForDispatch(t *testing.T) {
	j := ForDispatch(PrerequisitesJob(mustConfig(t, "provider: baremetal\n")))
	if j.If != DispatchGuard {
		t.Fatalf("unexpected guard %q", j.If)
	}
	if j.StepIndex(actions.KeyCheckout) != 0 {
		t.Fatalf("checkout should be first")
	}
	checkouts := 0
	for _, s := range j.Steps {
		if s.Key == actions.KeyCheckout {
			checkouts++
			if ref, _ := s.With.Get("ref"); ref != "${{ env.PR_COMMIT_SHA }}" {
				t.Fatalf("unexpected ref %v", ref)
			}
		}
	}
	if checkouts != 1 {
		t.Fatalf("expected one checkout, got %d", checkouts)
	}
}

func TestAtPRHeadWithoutCheckout(t *testing.T) {
	j := AtPRHead(SentinelJob(TestID))
	if j.StepIndex(actions.KeyCheckout) != -1 || len(j.Steps) != 1 {
		t.Fatalf("checkout added to a job without one: %v", stepNames(j))
	}
}

func TestSchemaCheckGatedOnDiff(t *testing.T) {
	j := PrerequisitesJob(mustConfig(t, "provider: baremetal\n"))
	diff := -1
	for i, s := range j.Steps {
		switch s.Name {
		case "Check for diff in schema":
			diff = i
		case "Check Schema is Valid", "Comment on PR with Details of Schema Check":
			if diff < 0 || i < diff {
				t.Fatalf("%q runs before the schema diff: %v", s.Name, stepNames(j))
			}
			if !strings.Contains(s.If, "steps.schema_changed.outputs.changed == 'true'") {
				t.Fatalf("%q not gated on the schema diff: %q", s.Name, s.If)
			}
		}
	}
	if diff < 0 {
		t.Fatalf("missing schema diff step: %v", stepNames(j))
	}
	if hasStep(PrerequisitesJob(mustConfig(t, "provider: command\n")), "Check for diff in schema") {
		t.Fatalf("command provider has no schema to diff")
	}
}

func TestForDispatchLeavesTemplateUntouched(t *testing.T) {
	base := LintJob(mustConfig(t, "provider: baremetal\n"))
	_ = ForDispatch(base)
	if base.If != "" {
		t.Fatalf("template guard modified: %q", base.If)
	}
	if ref, ok := base.Steps[0].With.Get("ref"); ok {
		t.Fatalf("template checkout modified: %v", ref)
	}
}

func TestPublishRunner(t *testing.T) {
	tests := []struct {
		provider string
		runner   string
		freeDisk bool
	}{
		{provider: "baremetal", runner: actions.UbuntuLatest, freeDisk: true},
		{provider: provider.AzureNative, runner: actions.MacOS11},
		{provider: provider.AWSNative, runner: actions.MacOS11},
	}
	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			j := PublishJob(mustConfig(t, "provider: "+tt.provider+"\n"))
			if j.RunsOn != tt.runner {
				t.Fatalf("unexpected runner %q", j.RunsOn)
			}
			if got := hasStep(j, "Clear GitHub Actions Ubuntu runner disk space"); got != tt.freeDisk {
				t.Fatalf("free disk space step present=%v, want %v", got, tt.freeDisk)
			}
		})
	}
}

func TestPublishArgs(t *testing.T) {
	cfg := mustConfig(t, "provider: baremetal\nparallel: 5\ntimeout: 30\n")
	args := func(j actions.Job) interface{} {
		v, _ := j.Steps[len(j.Steps)-1].With.Get("args")
		return v
	}
	if got := args(PublishPrereleaseJob(cfg)); got != "-p 5 -f .goreleaser.prerelease.yml --clean --skip=validate --timeout 30m0s" {
		t.Fatalf("unexpected prerelease args %v", got)
	}
	if got := args(PublishJob(cfg)); got != "-p 5 release --clean --timeout 30m0s" {
		t.Fatalf("unexpected release args %v", got)
	}
}

func TestNightlyGeneration(t *testing.T) {
	azure := NightlySDKGenerationJob(mustConfig(t, "provider: azure-native\n"))
	for _, name := range []string{"Update Submodules", "Git submodule commit hash"} {
		if !hasStep(azure, name) {
			t.Fatalf("missing %q in %v", name, stepNames(azure))
		}
	}
	if azure.Steps[5].Uses != actions.AzureLogin {
		t.Fatalf("expected azure login after CLI install, got %v", stepNames(azure))
	}

	google := NightlySDKGenerationJob(mustConfig(t, "provider: google-native\n"))
	if hasStep(google, "Git submodule commit hash") {
		t.Fatalf("google-native has no submodule hash: %v", stepNames(google))
	}
	for _, s := range google.Steps {
		if s.Name == "Discovery" && s.ID != "discovery" {
			t.Fatalf("tracked discovery needs an id")
		}
	}
}

func TestSentinelJob(t *testing.T) {
	j := SentinelJob(TestID, LintID, TestID)
	if strings.Join(j.Needs, ",") != "test,lint" {
		t.Fatalf("unexpected needs %v", j.Needs)
	}
	if j.If != DispatchGuard {
		t.Fatalf("unexpected guard %q", j.If)
	}
}

func TestConverterRelease(t *testing.T) {
	aws := ConverterReleaseJob(mustConfig(t, "provider: aws-native\n"))
	if !hasStep(aws, "Chocolatey Package Deployment") {
		t.Fatalf("missing chocolatey step: %v", stepNames(aws))
	}
	azure := ConverterReleaseJob(mustConfig(t, "provider: azure-native\n"))
	if hasStep(azure, "Chocolatey Package Deployment") {
		t.Fatalf("unexpected chocolatey step: %v", stepNames(azure))
	}
	args, _ := azure.Steps[len(azure.Steps)-1].With.Get("args")
	if args != "-p 1 -f .goreleaser.arm2pulumi.yml release --clean --timeout 60m0s" {
		t.Fatalf("unexpected args %v", args)
	}
}
