package provider

import "github.com/UnstoppableMango/pulumi-ci-mgmt/internal/actions"

// Well-known provider identifiers with special-cased CI behaviour.
const (
	Command      = "command"
	Kubernetes   = "kubernetes"
	AzureNative  = "azure-native"
	AWSNative    = "aws-native"
	GoogleNative = "google-native"
)

// Config is the resolved, defaulted configuration for one provider. It is
// created once per generation run and treated as read-only afterwards.
type Config struct {
	Provider        string `mapstructure:"provider"`
	GithubOrg       string `mapstructure:"github-org"`
	DefaultBranch   string `mapstructure:"defaultBranch"`
	GolangciTimeout string `mapstructure:"golangci-timeout"`
	MajorVersion    int    `mapstructure:"major-version"`

	EnableChangelog     bool   `mapstructure:"enableChangelog"`
	CustomLdFlag        string `mapstructure:"customLdFlag"`
	SkipWindowsArmBuild bool   `mapstructure:"skipWindowsArmBuild"`

	Docker           bool   `mapstructure:"docker"`
	AWS              bool   `mapstructure:"aws"`
	GCP              bool   `mapstructure:"gcp"`
	Submodules       bool   `mapstructure:"submodules"`
	Lint             bool   `mapstructure:"lint"`
	SetupScript      string `mapstructure:"setup-script"`
	Parallel         int    `mapstructure:"parallel"`
	Timeout          int    `mapstructure:"timeout"`
	ProviderVersion  string `mapstructure:"providerVersion"`
	SkipCodegen      bool   `mapstructure:"skipCodegen"`
	PulumiCLIVersion string `mapstructure:"pulumiCLIVersion"`
	HasGenBinary     bool   `mapstructure:"hasGenBinary"`

	SubmoduleDir       string   `mapstructure:"submoduleDir"`
	AcceptanceBranches []string `mapstructure:"acceptanceBranches"`

	// Env is decoded separately so variable names keep their case and order.
	Env actions.Map `mapstructure:"-"`

	Capabilities Capabilities `mapstructure:"-"`
}

// DiscoveryMode selects how a provider refreshes upstream API metadata.
type DiscoveryMode int

const (
	DiscoveryNone DiscoveryMode = iota
	DiscoveryPlain
	DiscoveryTracked
)

// Capabilities records the provider-specific CI behaviour derived from the
// provider identifier. Step and job constructors branch on these fields
// instead of comparing identifiers.
type Capabilities struct {
	TestCluster          bool
	KubernetesToolchain  bool
	HasSchema            bool
	BuildsSDKs           bool
	BuildsCodegen        bool
	BuildsProvider       bool
	HasGenBinary         bool
	SchemaTarget         string
	SDKGenTarget         string
	UpgradeCommand       string
	SplitDotnetRunner    bool
	MacOSPublisher       bool
	AzureLogin           bool
	UpdateSubmodules     bool
	Discovery            DiscoveryMode
	NightlySDKGeneration bool
	SkipSubmoduleHash    bool
	ConverterTool        string
	ChocolateyPackage    bool
	SubmoduleDir         string
	AcceptanceBranches   []string
}

// CapabilitiesFor derives the capability record for a provider identifier.
// Unrecognised identifiers get the default record.
func CapabilitiesFor(id string) Capabilities {
	c := Capabilities{
		HasSchema:          true,
		BuildsSDKs:         true,
		BuildsCodegen:      true,
		BuildsProvider:     true,
		HasGenBinary:       true,
		SchemaTarget:       "make generate_schema",
		SDKGenTarget:       "make generate_${{ matrix.language }}",
		UpgradeCommand:     "make codegen && make local_generate",
		AcceptanceBranches: []string{"main"},
	}

	switch id {
	case Command:
		c.HasSchema = false
		c.BuildsSDKs = false
		c.HasGenBinary = false
		c.SchemaTarget = ""
		c.SDKGenTarget = "make ${{ matrix.language }}_sdk"
		c.UpgradeCommand = "make build"
	case Kubernetes:
		c.TestCluster = true
		c.KubernetesToolchain = true
		c.BuildsSDKs = false
		c.BuildsCodegen = false
		c.BuildsProvider = false
		c.HasGenBinary = false
		c.SchemaTarget = "make schema"
		c.SDKGenTarget = "make ${{ matrix.language }}_sdk"
		c.UpgradeCommand = "make build"
		c.AcceptanceBranches = []string{"main", "v4"}
	case AzureNative:
		c.SplitDotnetRunner = true
		c.MacOSPublisher = true
		c.AzureLogin = true
		c.UpdateSubmodules = true
		c.NightlySDKGeneration = true
		c.ConverterTool = "arm2pulumi"
		c.SubmoduleDir = "azure-rest-api-specs"
	case AWSNative:
		c.MacOSPublisher = true
		c.Discovery = DiscoveryPlain
		c.NightlySDKGeneration = true
		c.ConverterTool = "cf2pulumi"
		c.ChocolateyPackage = true
		c.SubmoduleDir = "aws-cloudformation-user-guide"
	case GoogleNative:
		c.Discovery = DiscoveryTracked
		c.NightlySDKGeneration = true
		c.SkipSubmoduleHash = true
	}
	return c
}
