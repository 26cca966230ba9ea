package main

import (
	"fmt"

	"github.com/UnstoppableMango/pulumi-ci-mgmt/internal/config"
	"github.com/UnstoppableMango/pulumi-ci-mgmt/internal/generate"
	"github.com/UnstoppableMango/pulumi-ci-mgmt/internal/output"
	"github.com/spf13/cobra"
)

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write workflow and release config files for each provider",
		RunE:  runGenerate,
	}
	cmd.Flags().Bool("check", false, "fail if files on disk differ from the generated output instead of writing")
	return cmd
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, root, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	res, err := generate.Run(cmd.Context(), generateOptions(cfg, root, logger))
	if err != nil {
		return err
	}

	switch cfg.Format {
	case config.FormatPretty:
		if err := output.NewPretty(cmd.OutOrStdout()).RenderResults(res.Files, res.Summary); err != nil {
			return err
		}
	case config.FormatJSON:
		if err := output.NewJSON(cmd.OutOrStdout()).Render(output.GenerateReport{Files: res.Files, Summary: res.Summary}); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported format %q", cfg.Format)
	}

	if cfg.Check && res.Summary.ExitCode != 0 {
		return fmt.Errorf("%d generated files are out of date; run ci-mgmt generate", res.Summary.Drifted)
	}
	return nil
}
