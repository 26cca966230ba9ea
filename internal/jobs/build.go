package jobs

import (
	"github.com/UnstoppableMango/pulumi-ci-mgmt/internal/actions"
	"github.com/UnstoppableMango/pulumi-ci-mgmt/internal/provider"
	"github.com/UnstoppableMango/pulumi-ci-mgmt/internal/steps"
)

// dotnetRunner sends the dotnet leg of a split-runner matrix to macOS.
const dotnetRunner = "${{ matrix.language == 'dotnet' && '" + actions.MacOS11 + "' || '" + actions.UbuntuLatest + "' }}"

// gradleVersion is the Gradle release used by SDK build and test jobs.
const gradleVersion = "7.6"

// PrerequisitesJob builds the schema and provider binary and uploads the
// binaries for the SDK jobs.
func PrerequisitesJob(cfg provider.Config) actions.Job {
	caps := cfg.Capabilities
	return actions.NewJob(PrerequisitesID,
		steps.CheckoutRepo(),
		steps.SetProviderVersion(),
		steps.InstallGo(""),
		steps.InstallPulumiCtl(),
		steps.InstallPulumiCli(cfg.PulumiCLIVersion),
		steps.InstallSchemaChecker(caps.HasSchema),
		steps.BuildK8sgen(caps.KubernetesToolchain),
		steps.PrepareOpenAPIFile(caps.KubernetesToolchain),
		steps.InitializeSubModules(cfg.Submodules),
		steps.BuildCodegenBinaries(caps.BuildsCodegen && !cfg.SkipCodegen),
		steps.BuildSchema(caps.SchemaTarget),
		steps.MakeKubernetesProvider(caps.KubernetesToolchain),
		steps.SchemaFileChanged(caps.HasSchema),
		steps.CheckSchemaChanges(caps.HasSchema, cfg.GithubOrg),
		steps.CommentSchemaChangesOnPR(caps.HasSchema),
		steps.BuildProvider(caps.BuildsProvider),
		steps.CheckCleanWorkTree(),
		steps.Porcelain(),
		steps.TarProviderBinaries(cfg.HasGenBinary),
		steps.UploadProviderBinaries(),
	)
}

// BuildSDKsJob generates and archives every SDK. tagged keeps the archives
// beyond the default retention.
func BuildSDKsJob(cfg provider.Config, tagged bool) actions.Job {
	caps := cfg.Capabilities
	split := caps.SplitDotnetRunner
	j := actions.NewJob(BuildSDKsID,
		steps.CheckoutRepo(),
		steps.SetProviderVersion(),
		steps.InstallGo(""),
		steps.InstallPulumiCtl(),
		steps.InstallPulumiCli(cfg.PulumiCLIVersion),
		steps.InstallNodeJS(""),
		steps.InstallDotNet(""),
		steps.InstallPython(""),
		steps.InstallJava(""),
		steps.InstallGradle(gradleVersion),
		steps.DownloadProviderBinaries(split),
		steps.UnTarProviderBinaries(split),
		steps.RestoreBinaryPerms(split),
		steps.CodegenDuringSDKBuild(split),
		steps.InitializeSubModules(cfg.Submodules),
		steps.GenerateSDKs(caps.SDKGenTarget),
		steps.BuildSDKs(caps.BuildsSDKs),
		steps.CheckCleanWorkTree(),
		steps.Porcelain(),
		steps.ZipSDKs(),
		steps.UploadSDKs(tagged),
	).WithStrategy(languageMatrix(true))
	if split {
		j = j.WithRunsOn(dotnetRunner)
	}
	return j
}

// TestJob runs the per-language test suite. acceptance selects the
// self-contained variant used by run-acceptance-tests, which brings up a KinD
// cluster instead of sharing the build-test-cluster stack.
func TestJob(cfg provider.Config, acceptance bool) actions.Job {
	caps := cfg.Capabilities
	sharedCluster := caps.TestCluster && !acceptance
	return actions.NewJob(TestID,
		steps.CheckoutRepo(),
		steps.SetProviderVersion(),
		steps.InstallGo(""),
		steps.InstallPulumiCtl(),
		steps.InstallPulumiCli(cfg.PulumiCLIVersion),
		steps.InstallNodeJS(""),
		steps.InstallDotNet(""),
		steps.InstallPython(""),
		steps.InstallJava(""),
		steps.InstallGradle(gradleVersion),
		steps.DownloadProviderBinaries(false),
		steps.UnTarProviderBinaries(false),
		steps.RestoreBinaryPerms(false),
		steps.DownloadSDKs(),
		steps.UnzipSDKs(),
		steps.UpdatePath(),
		steps.InstallNodeDeps(),
		steps.SetNugetSource(),
		steps.InstallPythonDeps(),
		steps.InstallSDKDeps(),
		steps.MakeKubeDir(sharedCluster),
		steps.DownloadKubeconfig(sharedCluster),
		steps.GoogleAuth(cfg.GCP),
		steps.SetupGCloud(cfg.GCP),
		steps.ConfigureAWSCredentials(cfg.AWS),
		steps.InstallKubectl(caps.KubernetesToolchain),
		steps.InstallAndConfigureHelm(caps.KubernetesToolchain),
		steps.RunDockerCompose(cfg.Docker),
		steps.RunSetupScript(cfg.SetupScript),
		steps.SetupGotestfmt(),
		steps.CreateKindCluster(caps.TestCluster && acceptance),
		steps.RunTests(caps.TestCluster, acceptance),
	).
		WithStrategy(languageMatrix(!(caps.TestCluster && acceptance))).
		WithPermissions(testPermissions())
}

// LintJob runs golangci-lint over the provider module.
func LintJob(cfg provider.Config) actions.Job {
	return actions.NewJob(LintID,
		steps.CheckoutRepo(),
		steps.InstallGo(""),
		steps.GolangciLint(cfg.GolangciTimeout),
	)
}

// BuildTestClusterJob creates the shared test cluster and exposes its stack
// name to the teardown job.
func BuildTestClusterJob(cfg provider.Config) actions.Job {
	caps := cfg.Capabilities
	return actions.NewJob(BuildTestClusterID,
		steps.CheckoutRepo(),
		steps.InstallGo(""),
		steps.InstallPulumiCli(cfg.PulumiCLIVersion),
		steps.InstallNodeJS(""),
		steps.GoogleAuth(cfg.GCP),
		steps.SetupGCloud(cfg.GCP),
		steps.InstallKubectl(caps.KubernetesToolchain),
		steps.LoginGoogleCloudRegistry(caps.TestCluster),
		steps.SetStackName(caps.TestCluster),
		steps.CreateTestCluster(caps.TestCluster),
		steps.UploadKubernetesArtifacts(caps.TestCluster),
	).
		WithOutputs(actions.M("stack-name", "${{ steps.stackname.outputs.stack-name }}")).
		WithPermissions(testPermissions())
}

// TeardownTestClusterJob destroys the shared test cluster whatever the
// outcome of the tests.
func TeardownTestClusterJob(cfg provider.Config) actions.Job {
	caps := cfg.Capabilities
	return actions.NewJob(DestroyTestClusterID,
		steps.CheckoutRepo(),
		steps.InstallGo(""),
		steps.InstallPulumiCli(cfg.PulumiCLIVersion),
		steps.InstallNodeJS(""),
		steps.GoogleAuth(cfg.GCP),
		steps.SetupGCloud(cfg.GCP),
		steps.InstallKubectl(caps.KubernetesToolchain),
		steps.LoginGoogleCloudRegistry(caps.TestCluster),
		steps.DestroyTestCluster(caps.TestCluster),
		steps.DeleteArtifact(caps.TestCluster),
	).
		WithIf(TeardownGuard).
		WithPermissions(testPermissions())
}
