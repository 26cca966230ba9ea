package main

import (
	"fmt"

	"github.com/UnstoppableMango/pulumi-ci-mgmt/internal/config"
	"github.com/UnstoppableMango/pulumi-ci-mgmt/internal/output"
	"github.com/UnstoppableMango/pulumi-ci-mgmt/internal/version"
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := cmd.Flags().GetString("format")
			if err != nil {
				return fmt.Errorf("parse --format: %w", err)
			}
			info := version.Get()
			if format == config.FormatJSON {
				return output.NewJSON(cmd.OutOrStdout()).Render(info)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), info.String())
			return err
		},
	}
}
