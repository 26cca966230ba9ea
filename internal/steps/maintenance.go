package steps

import (
	"fmt"

	"github.com/UnstoppableMango/pulumi-ci-mgmt/internal/actions"
)

const generateBranch = "generate-sdk/${{ github.run_id }}-${{ github.run_number }}"

// CommandDispatch turns /run-acceptance-tests comments into repository
// dispatch events for org/pulumi-<provider>.
func CommandDispatch(org, provider string) *actions.Step {
	return step(actions.Step{
		Uses: actions.SlashCommand,
		With: actions.M(
			"reaction-token", "${{ secrets.GITHUB_TOKEN }}",
			"commands", "run-acceptance-tests",
			"permission", "write",
			"issue-type", "pull-request",
			"repository", fmt.Sprintf("%s/pulumi-%s", org, provider),
		),
	})
}

// CreateCommentsURL exposes the run URL as the run-url step output.
func CreateCommentsURL() *actions.Step {
	return step(actions.Step{
		Name: "Create URL to the run output",
		ID:   "vars",
		Run:  `echo run-url=https://github.com/$GITHUB_REPOSITORY/actions/runs/$GITHUB_RUN_ID >> "$GITHUB_OUTPUT"`,
	})
}

// UpdatePRWithResults replies to the dispatching comment with the run URL.
func UpdatePRWithResults() *actions.Step {
	return step(actions.Step{
		Name: "Update with Result",
		Uses: actions.CreateOrUpdateComment,
		With: actions.M(
			"repository", "${{ github.event.client_payload.github.payload.repository.full_name }}",
			"issue-number", "${{ github.event.client_payload.github.payload.issue.number }}",
			"body", "Please view the PR build: ${{ steps.vars.outputs.run-url }}",
		),
	})
}

// Sentinel reports a single success status once every required job passed.
func Sentinel() *actions.Step {
	return step(actions.Step{
		Name: "Mark workflow as successful",
		Uses: actions.GithubStatus,
		With: actions.M(
			"authToken", "${{ secrets.GITHUB_TOKEN }}",
			"context", "Sentinel",
			"state", "success",
			"description", "Sentinel checks passed",
			"sha", "${{ github.event.pull_request.head.sha || github.sha }}",
		),
	})
}

// UpdatePulumi bumps the pulumi dependencies of every module on a fresh
// branch and sets the gomod.changes output when anything changed.
func UpdatePulumi() *actions.Step {
	return step(actions.Step{
		Name: "Update Pulumi/Pulumi",
		ID:   "gomod",
		Run: lines(
			"git checkout -b update-pulumi/${{ github.run_id }}-${{ github.run_number }}",
			"for MODFILE in $(find . -name go.mod); do pushd $(dirname $MODFILE); go get github.com/pulumi/pulumi/pkg/v3 github.com/pulumi/pulumi/sdk/v3; go mod tidy; popd; done",
			"gh repo view pulumi/pulumi --json latestRelease --jq .latestRelease.tagName | sed 's/^v//' > .pulumi.version",
			"git update-index -q --refresh",
			`if ! git diff-files --quiet; then echo changes=1 >> "$GITHUB_OUTPUT"; fi`,
		),
	})
}

const ignoreEmpty = `|| echo "ignore commit failure, may be empty"`

// ProviderWithPulumiUpgrade rebuilds with upgradeCommand and commits each SDK
// separately.
func ProviderWithPulumiUpgrade(upgradeCommand string) *actions.Step {
	return step(actions.Step{
		Name: "Provider with Pulumi Upgrade",
		If:   "steps.gomod.outputs.changes != 0",
		Run: lines(
			upgradeCommand,
			"git add sdk/nodejs",
			`git commit -m "Regenerating Node.js SDK based on updated modules" `+ignoreEmpty,
			"git add sdk/python",
			`git commit -m "Regenerating Python SDK based on updated modules" `+ignoreEmpty,
			"git add sdk/dotnet",
			`git commit -m "Regenerating .NET SDK based on updated modules" `+ignoreEmpty,
			"git add sdk/go*",
			`git commit -m "Regenerating Go SDK based on updated modules" `+ignoreEmpty,
			"git add sdk/java*",
			`git commit -m "Regenerating Java SDK based on updated modules" `+ignoreEmpty,
			"git add .",
			`git commit -m "Updated modules" `+ignoreEmpty,
			"git push origin update-pulumi/${{ github.run_id }}-${{ github.run_number }}",
		),
	})
}

// CreateUpdatePulumiPR opens the upgrade pull request against branch when
// go.mod changed.
func CreateUpdatePulumiPR(branch string) *actions.Step {
	return step(actions.Step{
		Name: "Create PR",
		ID:   "create-pr",
		If:   "steps.gomod.outputs.changes != 0",
		Uses: actions.PullRequest,
		With: actions.M(
			"github_token", "${{ secrets.GITHUB_TOKEN }}",
			"source_branch", "update-pulumi/${{ github.run_id }}-${{ github.run_number }}",
			"destination_branch", branch,
			"pr_title", "Automated Pulumi/Pulumi upgrade",
		),
	})
}

// MakeClean removes the generated SDKs.
func MakeClean() *actions.Step {
	return step(actions.Step{
		Name: "Cleanup SDK Folder",
		Run:  "make clean",
	})
}

// MakeLocalGenerate regenerates the schema and SDKs.
func MakeLocalGenerate() *actions.Step {
	return step(actions.Step{
		Name: "Build Schema + SDKs",
		Run:  "make local_generate",
	})
}

// PrepareGitBranchForSdkGeneration creates the SDK generation branch.
func PrepareGitBranchForSdkGeneration() *actions.Step {
	return step(actions.Step{
		Name: "Preparing Git Branch",
		Run:  "git checkout -b " + generateBranch + "\n",
	})
}

// CommitEmptySDK commits the cleaned SDK folder.
func CommitEmptySDK() *actions.Step {
	return step(actions.Step{
		Name: "Commit Empty SDK",
		Run: lines(
			"git add . ",
			`git commit -m "Preparing the SDK folder for regeneration"`,
		),
	})
}

// UpdateSubmodules moves the spec submodules to their latest commits.
func UpdateSubmodules(enabled bool) *actions.Step {
	if !enabled {
		return nil
	}
	return step(actions.Step{
		Name: "Update Submodules",
		Run:  "make update_submodules",
	})
}

// MakeDiscovery refreshes upstream API metadata. Tracked discovery also
// refreshes the index so later steps see the new documents.
func MakeDiscovery(tracked, enabled bool) *actions.Step {
	if !enabled {
		return nil
	}
	if tracked {
		return step(actions.Step{
			Name: "Discovery",
			ID:   "discovery",
			Run:  lines("make discovery", "git update-index -q --refresh"),
		})
	}
	return step(actions.Step{
		Name: "Discovery",
		Run:  "make discovery",
	})
}

// SetGitSubmoduleCommitHash records the upstream submodule HEAD as
// vars.commit-hash.
func SetGitSubmoduleCommitHash(dir string, skip bool) *actions.Step {
	if skip {
		return nil
	}
	return step(actions.Step{
		Name:             "Git submodule commit hash",
		ID:               "vars",
		Run:              `echo commit-hash=$(git rev-parse HEAD) >> "$GITHUB_OUTPUT"`,
		WorkingDirectory: dir,
	})
}

// CommitAutomatedSDKUpdates commits regenerated SDKs to the generation
// branch. Tracked discovery commits the discovery documents separately.
func CommitAutomatedSDKUpdates(dir string, tracked bool) *actions.Step {
	if tracked {
		return step(actions.Step{
			Name: "Commit changes",
			Run: lines(
				"git add discovery",
				`git commit -m "Discovery documents"`,
				"git add .",
				`git commit -m "Regenerating based on discovery"`,
				"git push origin "+generateBranch,
			),
		})
	}
	return step(actions.Step{
		Name: "Commit changes",
		Run: lines(
			"git add sdk",
			fmt.Sprintf(`git commit -m "Regenerating SDKs based on %s @ ${{ steps.vars.outputs.commit-hash }}" %s`, dir, ignoreEmpty),
			"git add .",
			fmt.Sprintf(`git commit -m "Regenerating based on %s @ ${{ steps.vars.outputs.commit-hash }}" %s`, dir, ignoreEmpty),
			"git push origin "+generateBranch,
		),
	})
}

// PullRequestSdkGeneration opens the generation PR against branch. The title
// names the upstream submodule revision unless untracked.
func PullRequestSdkGeneration(branch, dir string, untracked bool) *actions.Step {
	title := "Automated SDK generation"
	if !untracked && dir != "" {
		title = fmt.Sprintf("Automated SDK generation @ %s ${{ steps.vars.outputs.commit-hash }}", dir)
	}
	return step(actions.Step{
		Name: "Create PR",
		ID:   "create-pr",
		Uses: actions.PullRequest,
		With: actions.M(
			"destination_branch", branch,
			"github_token", "${{ secrets.GITHUB_TOKEN }}",
			"pr_body", "*Automated PR*",
			"pr_title", title,
			"author_name", "pulumi-bot",
			"source_branch", generateBranch,
		),
	})
}
