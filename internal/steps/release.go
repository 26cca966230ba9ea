package steps

import (
	"fmt"

	"github.com/UnstoppableMango/pulumi-ci-mgmt/internal/actions"
)

// RunGoReleaser runs goreleaser with args against the tag computed by
// SetProviderVersion.
func RunGoReleaser(args string) *actions.Step {
	return step(actions.Step{
		Name: "Run GoReleaser",
		Uses: actions.GoReleaser,
		Env:  actions.M("GORELEASER_CURRENT_TAG", "v${{ steps.version.outputs.version }}"),
		With: actions.M(
			"args", args,
			"version", "latest",
		),
	})
}

// PrereleaseArgs and ReleaseArgs build the goreleaser command lines for the
// publish jobs. timeout is in minutes.
func PrereleaseArgs(parallel, timeout int) string {
	return fmt.Sprintf("-p %d -f .goreleaser.prerelease.yml --clean --skip=validate --timeout %dm0s", parallel, timeout)
}

// ReleaseArgs are the goreleaser arguments of a full release.
func ReleaseArgs(parallel, timeout int) string {
	return fmt.Sprintf("-p %d release --clean --timeout %dm0s", parallel, timeout)
}

// ConverterReleaseArgs releases a standalone converter tool from its own
// goreleaser file.
func ConverterReleaseArgs(tool string) string {
	return fmt.Sprintf("-p 1 -f .goreleaser.%s.yml release --clean --timeout 60m0s", tool)
}

// PublishGoSDK pushes the Go SDK to its module path.
func PublishGoSDK() *actions.Step {
	return step(actions.Step{
		Name: "Publish Go SDK",
		Uses: actions.PublishGoSDK,
		With: actions.M(
			"repository", "${{ github.repository }}",
			"base-ref", "${{ github.sha }}",
			"source", "sdk",
			"path", "sdk",
			"version", "${{ steps.version.outputs.version }}",
			"additive", false,
			"files", lines("go.*", "go/**", "!*.tar.gz"),
		),
	})
}

// RunPublishSDK publishes the nodejs, python and dotnet SDKs.
func RunPublishSDK() *actions.Step {
	return step(actions.Step{
		Name: "Publish SDKs",
		Run:  "./scripts/publish_sdks.sh ${{ github.workspace }}",
		Env: actions.M(
			"NODE_AUTH_TOKEN", "${{ secrets.NPM_TOKEN }}",
			"PYPI_PUBLISH_ARTIFACTS", "all",
		),
	})
}

// DispatchDocsBuildEvent triggers the documentation build for the tag.
func DispatchDocsBuildEvent() *actions.Step {
	return step(actions.Step{
		Name: "Dispatch Event",
		Run:  "pulumictl create docs-build pulumi-${{ env.PROVIDER }} ${GITHUB_REF#refs/tags/}",
	})
}

// ChocolateyPackageDeployment publishes tool to Chocolatey. Only tools with a
// Chocolatey package pass enabled.
func ChocolateyPackageDeployment(tool string, enabled bool) *actions.Step {
	if !enabled || tool == "" {
		return nil
	}
	return step(actions.Step{
		Name: "Chocolatey Package Deployment",
		Env:  actions.M("CURRENT_TAG", "${{ env.PROVIDER_VERSION }}"),
		Run:  fmt.Sprintf("pulumictl create choco-deploy -a %s ${CURRENT_TAG}", tool),
	})
}
