package main

import (
	"github.com/UnstoppableMango/pulumi-ci-mgmt/internal/config"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "ci-mgmt",
		Short:         "ci-mgmt generates GitHub Actions workflows and GoReleaser configs for provider repositories",
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	persistent := cmd.PersistentFlags()
	persistent.String("providers-dir", config.DefaultProvidersDir, "directory holding one <provider>/config.yaml per provider")
	persistent.String("out", ".", "directory receiving <provider>/ output trees")
	persistent.StringArray("provider", nil, "provider to include (repeatable; default all)")
	persistent.StringArray("job", nil, "job filter (repeatable)")
	persistent.StringArray("only-step", nil, "include only matching steps")
	persistent.StringArray("skip-step", nil, "exclude matching steps")
	persistent.String("format", config.FormatPretty, "output format (pretty|json)")
	persistent.IntP("parallelism", "j", config.DefaultParallelism, "providers processed concurrently")
	persistent.Bool("debug", false, "enable debug logging")
	persistent.String("log-format", "human", "log format (human|json)")

	cmd.AddCommand(newGenerateCmd())
	cmd.AddCommand(newListCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}
