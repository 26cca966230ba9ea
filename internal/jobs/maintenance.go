package jobs

import (
	"github.com/UnstoppableMango/pulumi-ci-mgmt/internal/actions"
	"github.com/UnstoppableMango/pulumi-ci-mgmt/internal/provider"
	"github.com/UnstoppableMango/pulumi-ci-mgmt/internal/steps"
)

// WeeklyPulumiUpdateJob upgrades the pulumi dependencies, regenerates the
// SDKs and opens a pull request against the default branch.
func WeeklyPulumiUpdateJob(cfg provider.Config) actions.Job {
	return actions.NewJob(WeeklyPulumiUpdateID,
		steps.CheckoutRepo(),
		steps.SetProviderVersion(),
		steps.InstallGo(""),
		steps.InstallPulumiCtl(),
		steps.InstallPulumiCli(cfg.PulumiCLIVersion),
		steps.InstallDotNet(""),
		steps.InstallNodeJS(""),
		steps.InstallPython(""),
		steps.UpdatePulumi(),
		steps.InitializeSubModules(cfg.Submodules),
		steps.ProviderWithPulumiUpgrade(cfg.Capabilities.UpgradeCommand),
		steps.CreateUpdatePulumiPR(cfg.DefaultBranch),
	)
}

// NightlySDKGenerationJob regenerates the SDKs from the latest upstream API
// metadata and opens a pull request with the result.
func NightlySDKGenerationJob(cfg provider.Config) actions.Job {
	caps := cfg.Capabilities
	tracked := caps.Discovery == provider.DiscoveryTracked
	return actions.NewJob(GenerateSDKID,
		steps.CheckoutRepo(),
		steps.SetProviderVersion(),
		steps.InstallGo(""),
		steps.InstallPulumiCtl(),
		steps.InstallPulumiCli(cfg.PulumiCLIVersion),
		steps.AzureLogin(caps.AzureLogin),
		steps.MakeClean(),
		steps.PrepareGitBranchForSdkGeneration(),
		steps.CommitEmptySDK(),
		steps.UpdateSubmodules(caps.UpdateSubmodules),
		steps.MakeDiscovery(tracked, caps.Discovery != provider.DiscoveryNone),
		steps.BuildCodegenBinaries(caps.BuildsCodegen),
		steps.MakeLocalGenerate(),
		steps.SetGitSubmoduleCommitHash(caps.SubmoduleDir, caps.SkipSubmoduleHash),
		steps.CommitAutomatedSDKUpdates(caps.SubmoduleDir, tracked),
		steps.PullRequestSdkGeneration(cfg.DefaultBranch, caps.SubmoduleDir, caps.SkipSubmoduleHash),
	)
}

// CommandDispatchJob forwards slash commands on pull requests.
func CommandDispatchJob(cfg provider.Config) actions.Job {
	return actions.NewJob(CommandDispatchID,
		steps.CheckoutRepo(),
		steps.CommandDispatch(cfg.GithubOrg, cfg.Provider),
	).WithIf("${{ github.event.issue.pull_request }}")
}

// CommentNotificationJob links the dispatched run from the pull request.
func CommentNotificationJob() actions.Job {
	return actions.NewJob(CommentNotificationID,
		steps.CreateCommentsURL(),
		steps.UpdatePRWithResults(),
	).WithIf("github.event_name == 'repository_dispatch'")
}

// SentinelJob reports success once every job in needs has passed.
func SentinelJob(needs ...string) actions.Job {
	return actions.NewJob(SentinelID, steps.Sentinel()).
		WithIf(DispatchGuard).
		WithNeeds(needs...)
}
