package jobs

import (
	"github.com/UnstoppableMango/pulumi-ci-mgmt/internal/actions"
	"github.com/UnstoppableMango/pulumi-ci-mgmt/internal/provider"
	"github.com/UnstoppableMango/pulumi-ci-mgmt/internal/steps"
)

func publishRunner(caps provider.Capabilities) string {
	if caps.MacOSPublisher {
		return actions.MacOS11
	}
	return actions.UbuntuLatest
}

func goreleaserJob(cfg provider.Config, args string) actions.Job {
	runner := publishRunner(cfg.Capabilities)
	return actions.NewJob(PublishID,
		steps.CheckoutRepo(),
		steps.SetProviderVersion(),
		steps.InstallGo(""),
		steps.FreeDiskSpace(runner),
		steps.InstallPulumiCtl(),
		steps.InstallPulumiCli(cfg.PulumiCLIVersion),
		steps.RunGoReleaser(args),
	).WithRunsOn(runner)
}

// PublishPrereleaseJob publishes a snapshot build from the prerelease
// goreleaser configuration.
func PublishPrereleaseJob(cfg provider.Config) actions.Job {
	return goreleaserJob(cfg, steps.PrereleaseArgs(cfg.Parallel, cfg.Timeout))
}

// PublishJob publishes a full release.
func PublishJob(cfg provider.Config) actions.Job {
	return goreleaserJob(cfg, steps.ReleaseArgs(cfg.Parallel, cfg.Timeout))
}

// PublishSDKJob publishes the nodejs, python and dotnet SDKs built by
// build_sdks.
func PublishSDKJob(cfg provider.Config) actions.Job {
	s := []*actions.Step{
		steps.CheckoutRepo(),
		steps.SetProviderVersion(),
	}
	s = append(s, steps.CheckoutScriptsRepo()...)
	s = append(s,
		steps.InstallGo(""),
		steps.InstallPulumiCtl(),
		steps.InstallPulumiCli(cfg.PulumiCLIVersion),
		steps.InstallNodeJS(""),
		steps.InstallDotNet(""),
		steps.InstallPython(""),
	)
	for _, lang := range []string{"python", "dotnet", "nodejs"} {
		s = append(s, steps.DownloadSpecificSDK(lang), steps.UnzipSpecificSDK(lang))
	}
	s = append(s, steps.InstallTwine(), steps.RunPublishSDK())
	return actions.NewJob(PublishSDKID, s...)
}

// PublishGoSDKJob pushes the generated Go SDK to its module path.
func PublishGoSDKJob() actions.Job {
	return actions.NewJob(PublishGoSDKID,
		steps.CheckoutRepo(),
		steps.SetProviderVersion(),
		steps.DownloadSpecificSDK("go"),
		steps.UnzipSpecificSDK("go"),
		steps.PublishGoSDK(),
	).WithName("publish-go-sdk")
}

// DocsBuildDispatchJob asks the docs repository to rebuild for the release.
func DocsBuildDispatchJob() actions.Job {
	return actions.NewJob(DispatchDocsBuildID,
		steps.InstallPulumiCtl(),
		steps.DispatchDocsBuildEvent(),
	)
}

// ConverterReleaseJob releases the provider's standalone converter tool.
func ConverterReleaseJob(cfg provider.Config) actions.Job {
	caps := cfg.Capabilities
	return actions.NewJob(ConverterReleaseID,
		steps.CheckoutRepo(),
		steps.SetProviderVersion(),
		steps.InstallPulumiCtl(),
		steps.InstallGo(""),
		steps.RunGoReleaser(steps.ConverterReleaseArgs(caps.ConverterTool)),
		steps.ChocolateyPackageDeployment(caps.ConverterTool, caps.ChocolateyPackage),
	).WithRunsOn(actions.MacOS11)
}
