package actions

// Pinned references to third-party actions used by generated steps.
const (
	Checkout              = "actions/checkout@v4"
	ProviderVersion       = "pulumi/provider-version-action@v1"
	SlashCommand          = "peter-evans/slash-command-dispatch@v4"
	GithubStatus          = "guibranco/github-status-action-v2@v1.1.13"
	CreateOrUpdateComment = "peter-evans/create-or-update-comment@v4"
	GoogleAuth            = "google-github-actions/auth@v2"
	SetupGcloud           = "google-github-actions/setup-gcloud@v2"
	SetupGo               = "actions/setup-go@v5"
	SetupNode             = "actions/setup-node@v4"
	SetupDotNet           = "actions/setup-dotnet@v4"
	SetupJava             = "actions/setup-java@v4"
	SetupGradle           = "gradle/gradle-build-action@v3"
	SetupPython           = "actions/setup-python@v5"
	InstallGhRelease      = "jaxxstorm/action-install-gh-release@v1.12.0"
	InstallPulumiCli      = "pulumi/actions@v5"
	UploadArtifact        = "actions/upload-artifact@v4"
	DownloadArtifact      = "actions/download-artifact@v4"
	DeleteArtifact        = "geekyeggo/delete-artifact@v5"
	GitStatusCheck        = "pulumi/git-status-check-action@v1"
	PullRequest           = "repo-sync/pull-request@v2"
	PRComment             = "thollander/actions-comment-pull-request@v2"
	PathsFilter           = "dorny/paths-filter@v3"
	GolangciLint          = "golangci/golangci-lint-action@v6"
	GoReleaser            = "goreleaser/goreleaser-action@v6"
	AzureLogin            = "azure/login@v2"
	AWSCredentials        = "aws-actions/configure-aws-credentials@v4"
	FreeDiskSpace         = "jlumbroso/free-disk-space@v1.3.1"
	KindCluster           = "helm/kind-action@v1"
	Gotestfmt             = "GoTestTools/gotestfmt-action@v2"
	PublishGoSDK          = "pulumi/publish-go-sdk-action@v1"
)
