// Package workflows composes the GitHub Actions workflows generated for a
// provider from the job roles in the jobs package.
package workflows

import (
	"github.com/UnstoppableMango/pulumi-ci-mgmt/internal/actions"
	"github.com/UnstoppableMango/pulumi-ci-mgmt/internal/jobs"
	"github.com/UnstoppableMango/pulumi-ci-mgmt/internal/provider"
)

// Workflow names. Each workflow is written to .github/workflows/<name>.yml.
const (
	PullRequest          = "pull-request"
	RunAcceptanceTests   = "run-acceptance-tests"
	CommandDispatch      = "command-dispatch"
	Build                = "build"
	Prerelease           = "prerelease"
	Release              = "release"
	WeeklyPulumiUpdate   = "weekly-pulumi-update"
	NightlySDKGeneration = "nightly-sdk-generation"
)

const (
	weeklyCron  = "35 12 * * 4"
	nightlyCron = "35 4 * * 1-5"
)

func releaseTags() []string    { return []string{"v*.*.*", "!v*.*.*-**"} }
func prereleaseTags() []string { return []string{"v*.*.*-**"} }

// All returns every workflow generated for cfg in a fixed order.
func All(cfg provider.Config) []actions.Workflow {
	out := []actions.Workflow{
		PullRequestWorkflow(cfg),
		RunAcceptanceTestsWorkflow(cfg),
		CommandDispatchWorkflow(cfg),
		BuildWorkflow(cfg),
		PrereleaseWorkflow(cfg),
		ReleaseWorkflow(cfg),
		WeeklyPulumiUpdateWorkflow(cfg),
	}
	if cfg.Capabilities.NightlySDKGeneration {
		out = append(out, NightlySDKGenerationWorkflow(cfg))
	}
	if cfg.Capabilities.ConverterTool != "" {
		out = append(out, ConverterReleaseWorkflow(cfg))
	}
	return out
}

func compose(name string, on actions.Triggers, env actions.Map, js ...actions.Job) actions.Workflow {
	w := actions.NewWorkflow(name, on, env)
	for _, j := range js {
		w = w.WithJob(j)
	}
	return Thread(w)
}

func clusterJobs(cfg provider.Config) []actions.Job {
	if !cfg.Capabilities.TestCluster {
		return nil
	}
	return []actions.Job{
		jobs.BuildTestClusterJob(cfg),
		jobs.TeardownTestClusterJob(cfg),
	}
}

// PullRequestWorkflow validates pull requests.
func PullRequestWorkflow(cfg provider.Config) actions.Workflow {
	js := []actions.Job{
		jobs.PrerequisitesJob(cfg),
		jobs.BuildSDKsJob(cfg, false),
		jobs.TestJob(cfg, false),
	}
	if cfg.Lint {
		js = append(js, jobs.LintJob(cfg))
	}
	js = append(js, clusterJobs(cfg)...)
	js = append(js, jobs.SentinelJob())
	return compose(PullRequest,
		actions.Triggers{PullRequest: &actions.BranchFilter{}},
		Env(cfg),
		js...,
	)
}

// RunAcceptanceTestsWorkflow runs the full test suite against the pull
// request head, either on /run-acceptance-tests or on same-repository pull
// requests.
func RunAcceptanceTestsWorkflow(cfg provider.Config) actions.Workflow {
	js := []actions.Job{
		jobs.CommentNotificationJob(),
		jobs.ForDispatch(jobs.PrerequisitesJob(cfg)),
		jobs.ForDispatch(jobs.BuildSDKsJob(cfg, false)),
		jobs.ForDispatch(jobs.TestJob(cfg, true)),
	}
	if cfg.Lint {
		js = append(js, jobs.ForDispatch(jobs.LintJob(cfg)))
	}
	js = append(js, jobs.SentinelJob())

	env := Env(cfg).Set("PR_COMMIT_SHA", "${{ github.event.client_payload.pull_request.head.sha }}")
	return compose(RunAcceptanceTests,
		actions.Triggers{
			RepositoryDispatch: &actions.TypesFilter{Types: []string{"run-acceptance-tests-command"}},
			PullRequest: &actions.BranchFilter{
				Branches:    append([]string(nil), cfg.AcceptanceBranches...),
				PathsIgnore: []string{"CHANGELOG.md"},
			},
			WorkflowDispatch: &actions.WorkflowTrigger{},
		},
		env,
		js...,
	)
}

// CommandDispatchWorkflow turns pull request comments into dispatch events.
func CommandDispatchWorkflow(cfg provider.Config) actions.Workflow {
	return compose(CommandDispatch,
		actions.Triggers{IssueComment: &actions.TypesFilter{Types: []string{"created", "edited"}}},
		Env(cfg),
		jobs.CommandDispatchJob(cfg),
	)
}

// BuildWorkflow builds, tests and publishes a snapshot on every push to the
// default branch.
func BuildWorkflow(cfg provider.Config) actions.Workflow {
	js := []actions.Job{
		jobs.PrerequisitesJob(cfg),
		jobs.BuildSDKsJob(cfg, false),
		jobs.TestJob(cfg, false),
		jobs.PublishPrereleaseJob(cfg),
		jobs.PublishSDKJob(cfg),
	}
	if cfg.Lint {
		js = append(js, jobs.LintJob(cfg))
	}
	js = append(js, clusterJobs(cfg)...)
	return compose(Build,
		actions.Triggers{
			Push: &actions.PushFilter{
				Branches:    []string{cfg.DefaultBranch},
				PathsIgnore: []string{"CHANGELOG.md"},
				TagsIgnore:  []string{"v*", "sdk/*", "**"},
			},
			WorkflowDispatch: &actions.WorkflowTrigger{},
		},
		Env(cfg),
		js...,
	)
}

// PrereleaseWorkflow publishes prerelease tags.
func PrereleaseWorkflow(cfg provider.Config) actions.Workflow {
	js := []actions.Job{
		jobs.PrerequisitesJob(cfg),
		jobs.BuildSDKsJob(cfg, true),
		jobs.TestJob(cfg, false),
		jobs.PublishPrereleaseJob(cfg),
		jobs.PublishSDKJob(cfg),
		jobs.PublishGoSDKJob(),
	}
	js = append(js, clusterJobs(cfg)...)
	return compose(Prerelease,
		actions.Triggers{Push: &actions.PushFilter{Tags: prereleaseTags()}},
		Env(cfg).Set("IS_PRERELEASE", true),
		js...,
	)
}

// ReleaseWorkflow publishes release tags and triggers a docs build.
func ReleaseWorkflow(cfg provider.Config) actions.Workflow {
	js := []actions.Job{
		jobs.PrerequisitesJob(cfg),
		jobs.BuildSDKsJob(cfg, true),
		jobs.TestJob(cfg, false),
		jobs.PublishJob(cfg),
		jobs.PublishSDKJob(cfg),
		jobs.PublishGoSDKJob(),
		jobs.DocsBuildDispatchJob(),
	}
	js = append(js, clusterJobs(cfg)...)
	return compose(Release,
		actions.Triggers{Push: &actions.PushFilter{Tags: releaseTags()}},
		Env(cfg),
		js...,
	)
}

// WeeklyPulumiUpdateWorkflow opens a pull request upgrading pulumi every week.
func WeeklyPulumiUpdateWorkflow(cfg provider.Config) actions.Workflow {
	return compose(WeeklyPulumiUpdate,
		actions.Triggers{
			Schedule:         []actions.Schedule{{Cron: weeklyCron}},
			WorkflowDispatch: &actions.WorkflowTrigger{},
		},
		Env(cfg),
		jobs.WeeklyPulumiUpdateJob(cfg),
	)
}

// NightlySDKGenerationWorkflow regenerates the SDKs from upstream specs every night.
func NightlySDKGenerationWorkflow(cfg provider.Config) actions.Workflow {
	return compose(NightlySDKGeneration,
		actions.Triggers{
			Schedule:         []actions.Schedule{{Cron: nightlyCron}},
			WorkflowDispatch: &actions.WorkflowTrigger{},
		},
		Env(cfg),
		jobs.NightlySDKGenerationJob(cfg),
	)
}

// ConverterReleaseWorkflow releases the provider's converter tool on release
// tags. It is named <tool>-release.
func ConverterReleaseWorkflow(cfg provider.Config) actions.Workflow {
	return compose(cfg.Capabilities.ConverterTool+"-release",
		actions.Triggers{Push: &actions.PushFilter{Tags: releaseTags()}},
		Env(cfg),
		jobs.ConverterReleaseJob(cfg),
	)
}
