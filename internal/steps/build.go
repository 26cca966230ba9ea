package steps

import (
	"fmt"
	"strings"

	"github.com/UnstoppableMango/pulumi-ci-mgmt/internal/actions"
)

// notDotnet skips a step on the macOS dotnet leg of a split-runner SDK build.
const notDotnet = "${{ matrix.language != 'dotnet' }}"

// BuildCodegenBinaries builds the schema and SDK generators.
func BuildCodegenBinaries(buildsCodegen bool) *actions.Step {
	if !buildsCodegen {
		return nil
	}
	return step(actions.Step{
		Name: "Build codegen binaries",
		Run:  "make codegen",
	})
}

// BuildSchema runs the provider's schema target; an empty target means the
// provider has no schema.
func BuildSchema(target string) *actions.Step {
	if target == "" {
		return nil
	}
	name := "Build Schema"
	if target == "make schema" {
		name = "Prepare Schema"
	}
	return step(actions.Step{
		Name: name,
		Run:  target,
	})
}

// BuildProvider builds the provider binary.
func BuildProvider(buildsProvider bool) *actions.Step {
	if !buildsProvider {
		return nil
	}
	return step(actions.Step{
		Name: "Build Provider",
		Run:  "make provider",
	})
}

// GenerateSDKs runs the per-language SDK generation target.
func GenerateSDKs(target string) *actions.Step {
	return step(actions.Step{
		Name: "Generate SDK",
		Run:  target,
	})
}

// BuildSDKs compiles the generated SDK for the matrix language.
func BuildSDKs(buildsSDKs bool) *actions.Step {
	if !buildsSDKs {
		return nil
	}
	return step(actions.Step{
		Name: "Build SDK",
		Run:  "make build_${{ matrix.language }}",
	})
}

// CodegenDuringSDKBuild rebuilds codegen on the dotnet leg of a split-runner
// build, where provider binaries are not downloaded.
func CodegenDuringSDKBuild(splitDotnetRunner bool) *actions.Step {
	if !splitDotnetRunner {
		return nil
	}
	return step(actions.Step{
		Name: "Build Codegen",
		If:   "${{ matrix.language == 'dotnet' }}",
		Run:  "make codegen",
	})
}

// CheckCleanWorkTree fails the job when generation left uncommitted changes.
func CheckCleanWorkTree() *actions.Step {
	return step(actions.Step{
		Name: "Check worktree clean",
		Uses: actions.GitStatusCheck,
		With: actions.M("allowed-changes", lines(
			"sdk/**/pulumi-plugin.json",
			"sdk/dotnet/*.csproj",
			"sdk/go/**/pulumiUtilities.go",
			"sdk/nodejs/package.json",
			"sdk/python/pyproject.toml",
			"sdk/java/build.gradle",
		)),
	})
}

// Porcelain prints any remaining worktree changes.
func Porcelain() *actions.Step {
	return step(actions.Step{
		Run: "git status --porcelain",
	})
}

// TarProviderBinaries archives the provider binary, plus the generator binary
// when the provider ships one.
func TarProviderBinaries(hasGenBinary bool) *actions.Step {
	run := "tar -zcf ${{ github.workspace }}/bin/provider.tar.gz -C ${{ github.workspace}}/bin/ pulumi-resource-${{ env.PROVIDER }}"
	if hasGenBinary {
		run += " pulumi-gen-${{ env.PROVIDER}}"
	}
	return step(actions.Step{
		Name: "Tar provider binaries",
		Run:  run,
	})
}

// UploadProviderBinaries uploads the provider archive for later jobs.
func UploadProviderBinaries() *actions.Step {
	return step(actions.Step{
		Name: "Upload artifacts",
		Uses: actions.UploadArtifact,
		With: actions.M(
			"name", "pulumi-${{ env.PROVIDER }}-provider.tar.gz",
			"path", "${{ github.workspace }}/bin/provider.tar.gz",
		),
	})
}

// DownloadProviderBinaries fetches the provider archive. With dotnetGuard the
// step is skipped on the dotnet matrix leg.
func DownloadProviderBinaries(dotnetGuard bool) *actions.Step {
	s := actions.Step{
		Name: "Download provider + tfgen binaries",
		Uses: actions.DownloadArtifact,
		With: actions.M(
			"name", "pulumi-${{ env.PROVIDER }}-provider.tar.gz",
			"path", "${{ github.workspace }}/bin",
		),
	}
	if dotnetGuard {
		s.If = notDotnet
	}
	return step(s)
}

// UnTarProviderBinaries extracts the downloaded provider archive into bin.
func UnTarProviderBinaries(dotnetGuard bool) *actions.Step {
	s := actions.Step{
		Name: "UnTar provider binaries",
		Run:  "tar -zxf ${{ github.workspace }}/bin/provider.tar.gz -C ${{ github.workspace}}/bin",
	}
	if dotnetGuard {
		s.If = notDotnet
	}
	return step(s)
}

// RestoreBinaryPerms marks the extracted binaries executable.
func RestoreBinaryPerms(dotnetGuard bool) *actions.Step {
	s := actions.Step{
		Name: "Restore Binary Permissions",
		Run:  `find ${{ github.workspace }} -name "pulumi-*-${{ env.PROVIDER }}" -print -exec chmod +x {} \;`,
	}
	if dotnetGuard {
		s.If = notDotnet
	}
	return step(s)
}

// ZipSDKs archives the SDK folder of the matrix language.
func ZipSDKs() *actions.Step {
	return step(actions.Step{
		Name: "Tar SDK folder",
		Run:  "tar -zcf sdk/${{ matrix.language }}.tar.gz -C sdk/${{ matrix.language }} .",
	})
}

// UploadSDKs uploads the per-language SDK archive. Untagged builds expire
// after 30 days.
func UploadSDKs(tagged bool) *actions.Step {
	with := actions.M(
		"name", "${{ matrix.language  }}-sdk.tar.gz",
		"path", "${{ github.workspace}}/sdk/${{ matrix.language }}.tar.gz",
	)
	if !tagged {
		with = with.Set("retention-days", 30)
	}
	return step(actions.Step{
		Name: "Upload artifacts",
		Uses: actions.UploadArtifact,
		With: with,
	})
}

// DownloadSDKs fetches the archived SDK of the matrix language.
func DownloadSDKs() *actions.Step {
	return step(actions.Step{
		Name: "Download SDK",
		Uses: actions.DownloadArtifact,
		With: actions.M(
			"name", "${{ matrix.language }}-sdk.tar.gz",
			"path", "${{ github.workspace}}/sdk/",
		),
	})
}

// UnzipSDKs extracts the SDK archive of the matrix language.
func UnzipSDKs() *actions.Step {
	return step(actions.Step{
		Name: "UnTar SDK folder",
		Run:  "tar -zxf ${{ github.workspace}}/sdk/${{ matrix.language}}.tar.gz -C ${{ github.workspace}}/sdk/${{ matrix.language}}",
	})
}

// DownloadSpecificSDK downloads the archive of one named SDK.
func DownloadSpecificSDK(language string) *actions.Step {
	return step(actions.Step{
		Name: fmt.Sprintf("Download %s SDK", language),
		Uses: actions.DownloadArtifact,
		With: actions.M(
			"name", language+"-sdk.tar.gz",
			"path", "${{ github.workspace}}/sdk/",
		),
	})
}

// UnzipSpecificSDK extracts the SDK archive of one language.
func UnzipSpecificSDK(language string) *actions.Step {
	return step(actions.Step{
		Name: fmt.Sprintf("Uncompress %s SDK", language),
		Run:  fmt.Sprintf("tar -zxf ${{github.workspace}}/sdk/%[1]s.tar.gz -C ${{github.workspace}}/sdk/%[1]s", language),
	})
}

// GolangciLint lints the provider module. timeout is passed through to
// golangci-lint when set.
func GolangciLint(timeout string) *actions.Step {
	args := []string{"-c ../.golangci.yml"}
	if timeout != "" {
		args = append(args, "--timeout "+timeout)
	}
	return step(actions.Step{
		Name: "golangci-lint provider pkg",
		Uses: actions.GolangciLint,
		With: actions.M(
			"version", "${{ env.GOLANGCI_LINT_VERSION }}",
			"args", strings.Join(args, " "),
			"working-directory", "provider",
		),
	})
}
