package main

import (
	"fmt"

	"github.com/UnstoppableMango/pulumi-ci-mgmt/internal/config"
	"github.com/UnstoppableMango/pulumi-ci-mgmt/internal/filter"
	"github.com/UnstoppableMango/pulumi-ci-mgmt/internal/generate"
	"github.com/UnstoppableMango/pulumi-ci-mgmt/internal/output"
	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List generated workflows, jobs and steps without writing files",
		RunE:  runList,
	}
	cmd.Flags().Bool("steps", false, "list every step instead of a job table")
	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, root, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	plans, err := generate.Plans(cmd.Context(), generateOptions(cfg, root, logger))
	if err != nil {
		return err
	}

	providers, err := applyFilters(plans, cfg)
	if err != nil {
		return err
	}
	if len(providers) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No matching jobs or steps")
		return nil
	}

	switch cfg.Format {
	case config.FormatPretty:
		renderer := output.NewPretty(cmd.OutOrStdout())
		showSteps, err := cmd.Flags().GetBool("steps")
		if err != nil {
			return fmt.Errorf("parse --steps: %w", err)
		}
		if showSteps {
			return renderer.RenderSteps(providers)
		}
		return renderer.RenderList(providers)
	case config.FormatJSON:
		return output.NewJSON(cmd.OutOrStdout()).Render(output.ListReport{
			Providers: providers,
			Summary:   output.Summarize(providers),
		})
	default:
		return fmt.Errorf("unsupported format %q", cfg.Format)
	}
}

func applyFilters(plans []generate.Plan, cfg config.Config) ([]output.Provider, error) {
	sel, err := filter.NewSelection(cfg.Jobs, cfg.OnlySteps, cfg.SkipSteps)
	if err != nil {
		return nil, err
	}

	var providers []output.Provider
	for _, plan := range plans {
		filtered := sel.Apply(plan.Workflows)
		if len(filtered) == 0 {
			continue
		}
		entry := output.Provider{Name: plan.Provider}
		for _, w := range filtered {
			entry.Workflows = append(entry.Workflows, output.Describe(generate.WorkflowPath(w.Name), w))
		}
		providers = append(providers, entry)
	}
	return providers, nil
}
