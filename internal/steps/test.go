package steps

import (
	"fmt"
	"strings"

	"github.com/UnstoppableMango/pulumi-ci-mgmt/internal/actions"
)

const onPullRequest = "github.event_name == 'pull_request'"

// onSchemaChange follows SchemaFileChanged in the same job.
const onSchemaChange = onPullRequest + " && steps.schema_changed.outputs.changed == 'true'"

// RunTests runs the example suite through gotestfmt. Providers with a test
// cluster run the per-language SDK tests instead, in short mode when short is
// set.
func RunTests(testCluster, short bool) *actions.Step {
	if testCluster {
		shortMode := ""
		if short {
			shortMode = " -short"
		}
		return step(actions.Step{
			Name: "Run tests",
			Run:  "cd tests/sdk/${{ matrix.language }} && go test -v -count=1 -cover -timeout 2h -parallel 4" + shortMode + " ./...",
		})
	}
	return step(actions.Step{
		Name: "Run tests",
		Run: lines(
			"set -euo pipefail",
			"cd examples && go test -v -json -count=1 -cover -timeout 2h -tags=${{ matrix.language }} -parallel 4 . 2>&1 | tee /tmp/gotest.log | gotestfmt",
		),
	})
}

// RunDockerCompose starts the test services when the provider needs docker.
func RunDockerCompose(required bool) *actions.Step {
	if !required {
		return nil
	}
	return step(actions.Step{
		Name: "Run docker compose",
		Run:  "docker compose -f testing/docker-compose.yml up --build -d",
	})
}

// RunSetupScript runs a repository-provided script before the tests.
func RunSetupScript(script string) *actions.Step {
	if script == "" {
		return nil
	}
	return step(actions.Step{
		Name: "Run setup script",
		Run:  script,
	})
}

// CheckSchemaChanges compares the local schema with the default branch and
// stores the report in SCHEMA_CHANGES. org selects the repository namespace
// schema-tools compares against.
func CheckSchemaChanges(hasSchema bool, org string) *actions.Step {
	if !hasSchema {
		return nil
	}
	return step(actions.Step{
		If:   onSchemaChange,
		Name: "Check Schema is Valid",
		Run: lines(
			"echo 'SCHEMA_CHANGES<<EOF' >> $GITHUB_ENV",
			fmt.Sprintf("schema-tools compare -p ${{ env.PROVIDER }} -o ${{ github.event.repository.default_branch }} -n --local-path=provider/cmd/pulumi-resource-${{ env.PROVIDER }}/schema.json --repository=github://api.github.com/%s >> $GITHUB_ENV", strings.ToLower(org)),
			"echo 'EOF' >> $GITHUB_ENV",
		),
	})
}

// CommentSchemaChangesOnPR posts the schema report on the pull request.
func CommentSchemaChangesOnPR(hasSchema bool) *actions.Step {
	if !hasSchema {
		return nil
	}
	return step(actions.Step{
		If:   onSchemaChange,
		Name: "Comment on PR with Details of Schema Check",
		Uses: actions.PRComment,
		With: actions.M(
			"message", "${{ env.SCHEMA_CHANGES }}\n",
			"comment_tag", "schemaCheck",
			"GITHUB_TOKEN", "${{ secrets.GITHUB_TOKEN }}",
		),
	})
}

// SchemaFileChanged exposes whether any schema.json changed as the
// schema_changed step output. The schema check and its comment only run when
// it reports a change.
func SchemaFileChanged(hasSchema bool) *actions.Step {
	if !hasSchema {
		return nil
	}
	return step(actions.Step{
		If:   onPullRequest,
		Name: "Check for diff in schema",
		ID:   "schema_changed",
		Uses: actions.PathsFilter,
		With: actions.M("filters", "changed: 'provider/cmd/**/schema.json'"),
	})
}

// GoogleAuth authenticates to Google Cloud through workload identity.
func GoogleAuth(requiresGCP bool) *actions.Step {
	if !requiresGCP {
		return nil
	}
	return step(actions.Step{
		Name: "Authenticate to Google Cloud",
		Uses: actions.GoogleAuth,
		With: actions.M(
			"workload_identity_provider", "projects/${{ env.GOOGLE_PROJECT_NUMBER }}/locations/global/workloadIdentityPools/${{ env.GOOGLE_CI_WORKLOAD_IDENTITY_POOL }}/providers/${{ env.GOOGLE_CI_WORKLOAD_IDENTITY_PROVIDER }}",
			"service_account", "${{ env.GOOGLE_CI_SERVICE_ACCOUNT_EMAIL }}",
		),
	})
}

// SetupGCloud installs the gcloud CLI.
func SetupGCloud(requiresGCP bool) *actions.Step {
	if !requiresGCP {
		return nil
	}
	return step(actions.Step{
		Name: "Setup gcloud auth",
		Uses: actions.SetupGcloud,
		With: actions.M("install_components", "gke-gcloud-auth-plugin"),
	})
}

// ConfigureAWSCredentials assumes the CI role through OIDC.
func ConfigureAWSCredentials(requiresAWS bool) *actions.Step {
	if !requiresAWS {
		return nil
	}
	return step(actions.Step{
		Name: "Configure AWS Credentials",
		Uses: actions.AWSCredentials,
		With: actions.M(
			"aws-region", "${{ env.AWS_REGION }}",
			"role-to-assume", "${{ secrets.AWS_CI_ROLE_ARN }}",
			"role-session-name", "${{ env.PROVIDER }}@githubActions",
			"role-duration-seconds", 7200,
		),
	})
}

// AzureLogin signs in to Azure for providers that generate from Azure specs.
func AzureLogin(enabled bool) *actions.Step {
	if !enabled {
		return nil
	}
	return step(actions.Step{
		Uses: actions.AzureLogin,
		With: actions.M("creds", "${{ secrets.AZURE_RBAC_SERVICE_PRINCIPAL }}"),
	})
}
