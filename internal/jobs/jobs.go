// Package jobs builds the job roles shared by the generated workflows. Each
// constructor returns a complete job for one role; the workflows package
// decides which roles are present and threads their dependencies.
package jobs

import (
	"github.com/UnstoppableMango/pulumi-ci-mgmt/internal/actions"
	"github.com/UnstoppableMango/pulumi-ci-mgmt/internal/steps"
)

// Job identifiers. Dependency edges refer to roles by these keys.
const (
	PrerequisitesID       = "prerequisites"
	BuildSDKsID           = "build_sdks"
	TestID                = "test"
	LintID                = "lint"
	BuildTestClusterID    = "build-test-cluster"
	DestroyTestClusterID  = "destroy-test-cluster"
	PublishID             = "publish"
	PublishSDKID          = "publish_sdk"
	PublishGoSDKID        = "publish_go_sdk"
	DispatchDocsBuildID   = "dispatch_docs_build"
	SentinelID            = "sentinel"
	CommentNotificationID = "comment-notification"
	CommandDispatchID     = "command-dispatch-for-testing"
	WeeklyPulumiUpdateID  = "weekly-pulumi-update"
	GenerateSDKID         = "generate-sdk"
	ConverterReleaseID    = "release"
)

// DispatchGuard restricts a job to slash-command dispatches and pull
// requests opened from branches of the same repository.
const DispatchGuard = "github.event_name == 'repository_dispatch' || github.event.pull_request.head.repo.full_name == github.repository"

// TeardownGuard runs cluster teardown after every push or tag build, and after
// pull requests opened from branches of the same repository.
const TeardownGuard = "${{ always() && (github.event_name != 'pull_request' || github.event.pull_request.head.repo.full_name == github.repository) }}"

// Languages is the SDK matrix axis.
func Languages() []string {
	return []string{"nodejs", "python", "dotnet", "go", "java"}
}

func languageMatrix(failFast bool) actions.Strategy {
	return actions.Strategy{
		FailFast: failFast,
		Matrix:   actions.M("language", Languages()),
	}
}

func testPermissions() actions.Map {
	return actions.M(
		"contents", "read",
		"id-token", "write",
	)
}

// AtPRHead swaps the job's checkout for one of the dispatched pull request
// head. Jobs without a checkout are returned unchanged.
func AtPRHead(j actions.Job) actions.Job {
	if j.StepIndex(actions.KeyCheckout) < 0 {
		return j
	}
	return j.ReplaceStep(actions.KeyCheckout, steps.CheckoutRepoAtPR())
}

// ForDispatch guards j with DispatchGuard and checks out the pull request
// head.
func ForDispatch(j actions.Job) actions.Job {
	return AtPRHead(j.WithIf(DispatchGuard))
}
