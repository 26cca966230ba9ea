// Package steps is the catalog of workflow steps shared by every generated
// job. Each constructor is a pure function of the narrow context it needs and
// returns nil when the step does not apply.
package steps

import (
	"strings"

	"github.com/UnstoppableMango/pulumi-ci-mgmt/internal/actions"
)

func step(s actions.Step) *actions.Step {
	return &s
}

func lines(l ...string) string {
	return strings.Join(l, "\n")
}

func orDefault(v, fallback string) string {
	if v != "" {
		return v
	}
	return fallback
}

// CheckoutRepo checks out the triggering commit.
func CheckoutRepo() *actions.Step {
	return step(actions.Step{
		Key:  actions.KeyCheckout,
		Name: "Checkout Repo",
		Uses: actions.Checkout,
		With: actions.M("lfs", true),
	})
}

// CheckoutRepoAtPR checks out the pull request head recorded in PR_COMMIT_SHA.
func CheckoutRepoAtPR() *actions.Step {
	return step(actions.Step{
		Key:  actions.KeyCheckout,
		Name: "Checkout Repo",
		Uses: actions.Checkout,
		With: actions.M(
			"lfs", true,
			"ref", "${{ env.PR_COMMIT_SHA }}",
		),
	})
}

// CheckoutScriptsRepo checks out pulumi/scripts next to the repository and
// hides it from git.
func CheckoutScriptsRepo() []*actions.Step {
	return []*actions.Step{
		step(actions.Step{
			Name: "Checkout Scripts Repo",
			Uses: actions.Checkout,
			With: actions.M(
				"path", "ci-scripts",
				"repository", "pulumi/scripts",
			),
		}),
		step(actions.Step{
			Run: `echo "ci-scripts" >> .git/info/exclude`,
		}),
	}
}

// SetProviderVersion exports PROVIDER_VERSION and the "version" output.
func SetProviderVersion() *actions.Step {
	return step(actions.Step{
		ID:   "version",
		Name: "Set Provider Version",
		Uses: actions.ProviderVersion,
		With: actions.M("set-env", "PROVIDER_VERSION"),
	})
}

// InstallGo sets up Go, defaulting to the workflow GOVERSION.
func InstallGo(version string) *actions.Step {
	return step(actions.Step{
		Name: "Install Go",
		Uses: actions.SetupGo,
		With: actions.M(
			"go-version", orDefault(version, "${{ env.GOVERSION }}"),
			"cache-dependency-path", "**/*.sum",
		),
	})
}

// InstallNodeJS sets up Node.js, defaulting to the workflow NODEVERSION.
func InstallNodeJS(version string) *actions.Step {
	return step(actions.Step{
		Name: "Setup Node",
		Uses: actions.SetupNode,
		With: actions.M(
			"node-version", orDefault(version, "${{ env.NODEVERSION }}"),
			"registry-url", "https://registry.npmjs.org",
		),
	})
}

// InstallDotNet sets up .NET, defaulting to the workflow DOTNETVERSION.
func InstallDotNet(version string) *actions.Step {
	return step(actions.Step{
		Name: "Setup DotNet",
		Uses: actions.SetupDotNet,
		With: actions.M("dotnet-version", orDefault(version, "${{ env.DOTNETVERSION }}")),
	})
}

// InstallJava sets up a JDK, defaulting to the workflow JAVAVERSION.
func InstallJava(version string) *actions.Step {
	return step(actions.Step{
		Name: "Setup Java",
		Uses: actions.SetupJava,
		With: actions.M(
			"java-version", orDefault(version, "${{ env.JAVAVERSION }}"),
			"distribution", "temurin",
			"cache", "gradle",
		),
	})
}

// InstallGradle sets up the given Gradle release.
func InstallGradle(version string) *actions.Step {
	return step(actions.Step{
		Name: "Setup Gradle",
		Uses: actions.SetupGradle,
		With: actions.M("gradle-version", version),
	})
}

// InstallPython sets up Python, defaulting to the workflow PYTHONVERSION.
func InstallPython(version string) *actions.Step {
	return step(actions.Step{
		Name: "Setup Python",
		Uses: actions.SetupPython,
		With: actions.M("python-version", orDefault(version, "${{ env.PYTHONVERSION }}")),
	})
}

// InstallPulumiCtl installs pulumictl from its GitHub releases.
func InstallPulumiCtl() *actions.Step {
	return step(actions.Step{
		Name: "Install pulumictl",
		Uses: actions.InstallGhRelease,
		With: actions.M("repo", "pulumi/pulumictl"),
	})
}

// InstallPulumiCli installs the Pulumi CLI, pinned when version is set.
func InstallPulumiCli(version string) *actions.Step {
	s := actions.Step{
		Name: "Install Pulumi CLI",
		Uses: actions.InstallPulumiCli,
	}
	if version != "" {
		s.With = actions.M("pulumi-version", version)
	}
	return step(s)
}

// InstallSchemaChecker installs schema-tools on pull requests for providers
// that publish a schema.
func InstallSchemaChecker(hasSchema bool) *actions.Step {
	if !hasSchema {
		return nil
	}
	return step(actions.Step{
		If:   "github.event_name == 'pull_request'",
		Name: "Install Schema Tools",
		Uses: actions.InstallGhRelease,
		With: actions.M("repo", "pulumi/schema-tools"),
	})
}

// InstallPythonDeps installs the Python packaging tools.
func InstallPythonDeps() *actions.Step {
	return step(actions.Step{
		Name: "Install Python deps",
		Run: lines(
			"pip3 install virtualenv==20.0.23",
			"pip3 install pipenv",
		),
	})
}

// InstallSDKDeps installs the dependencies of the matrix language SDK.
func InstallSDKDeps() *actions.Step {
	return step(actions.Step{
		Name: "Install dependencies",
		Run:  "make install_${{ matrix.language}}_sdk",
	})
}

// InstallNodeDeps installs TypeScript globally.
func InstallNodeDeps() *actions.Step {
	return step(actions.Step{
		Name: "Install Node dependencies",
		Run:  "yarn global add typescript",
	})
}

// InstallTwine installs the PyPI upload tool.
func InstallTwine() *actions.Step {
	return step(actions.Step{
		Name: "Install Twine",
		Run:  "python -m pip install pip twine",
	})
}

// SetNugetSource registers the workspace nuget folder as a package source.
func SetNugetSource() *actions.Step {
	return step(actions.Step{
		Run: "dotnet nuget add source ${{ github.workspace }}/nuget",
	})
}

// UpdatePath puts the workspace bin folder on PATH.
func UpdatePath() *actions.Step {
	return step(actions.Step{
		Name: "Update path",
		Run:  `echo "${{ github.workspace }}/bin" >> $GITHUB_PATH`,
	})
}

// SetupGotestfmt installs gotestfmt for test output formatting.
func SetupGotestfmt() *actions.Step {
	return step(actions.Step{
		Name: "Install gotestfmt",
		Uses: actions.Gotestfmt,
		With: actions.M(
			"version", "v2.5.0",
			"token", "${{ secrets.GITHUB_TOKEN }}",
		),
	})
}

// InitializeSubModules runs when the repository vendors git submodules.
func InitializeSubModules(submodules bool) *actions.Step {
	if !submodules {
		return nil
	}
	return step(actions.Step{
		Name: "Initialize submodules",
		Run:  "make init_submodules",
	})
}

// FreeDiskSpace reclaims space on Ubuntu runners only.
func FreeDiskSpace(runner string) *actions.Step {
	if !strings.Contains(runner, "ubuntu") {
		return nil
	}
	return step(actions.Step{
		Name: "Clear GitHub Actions Ubuntu runner disk space",
		Uses: actions.FreeDiskSpace,
		With: actions.M(
			"tool-cache", false,
			"dotnet", false,
			"android", true,
			"haskell", true,
			"swap-storage", true,
			"large-packages", false,
		),
	})
}
