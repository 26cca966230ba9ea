package workflows

import (
	"github.com/UnstoppableMango/pulumi-ci-mgmt/internal/actions"
	"github.com/UnstoppableMango/pulumi-ci-mgmt/internal/provider"
)

// Toolchain versions exported to every job through the workflow env.
const (
	GoVersion     = "1.22.x"
	NodeVersion   = "20.x"
	PythonVersion = "3.11"
	DotnetVersion = "6.0.x\n3.1.301\n"
	JavaVersion   = "11"
)

// Env is the environment shared by every workflow of a provider. Variables
// from the provider config override the defaults in place and new ones are
// appended in config order.
func Env(cfg provider.Config) actions.Map {
	return actions.M(
		"PROVIDER", cfg.Provider,
		"PULUMI_ACCESS_TOKEN", "${{ secrets.PULUMI_ACCESS_TOKEN }}",
		"PULUMI_LOCAL_NUGET", "${{ github.workspace }}/nuget",
		"NPM_TOKEN", "${{ secrets.NPM_TOKEN }}",
		"NODE_AUTH_TOKEN", "${{ secrets.NPM_TOKEN }}",
		"NUGET_PUBLISH_KEY", "${{ secrets.NUGET_PUBLISH_KEY }}",
		"PYPI_USERNAME", "__token__",
		"PYPI_PASSWORD", "${{ secrets.PYPI_API_TOKEN }}",
		"PULUMI_GO_DEP_ROOT", "${{ github.workspace }}/..",
		"GOVERSION", GoVersion,
		"NODEVERSION", NodeVersion,
		"PYTHONVERSION", PythonVersion,
		"DOTNETVERSION", DotnetVersion,
		"JAVAVERSION", JavaVersion,
	).Merge(cfg.Env)
}
