package main

import (
	"fmt"

	"github.com/UnstoppableMango/pulumi-ci-mgmt/internal/config"
	"github.com/spf13/cobra"
)

func gatherFlags(cmd *cobra.Command) (config.FlagValues, error) {
	flags := cmd.Flags()
	var values config.FlagValues

	stringFlags := []struct {
		name string
		dst  *config.StringFlag
	}{
		{"providers-dir", &values.ProvidersDir},
		{"out", &values.OutDir},
		{"format", &values.Format},
		{"log-format", &values.LogFormat},
	}
	for _, f := range stringFlags {
		if !flags.Changed(f.name) {
			continue
		}
		v, err := flags.GetString(f.name)
		if err != nil {
			return values, fmt.Errorf("parse --%s: %w", f.name, err)
		}
		*f.dst = config.StringFlag{Value: v, Set: true}
	}

	sliceFlags := []struct {
		name string
		dst  *config.SliceFlag
	}{
		{"provider", &values.Providers},
		{"job", &values.Jobs},
		{"only-step", &values.OnlySteps},
		{"skip-step", &values.SkipSteps},
	}
	for _, f := range sliceFlags {
		if !flags.Changed(f.name) {
			continue
		}
		v, err := flags.GetStringArray(f.name)
		if err != nil {
			return values, fmt.Errorf("parse --%s: %w", f.name, err)
		}
		*f.dst = config.SliceFlag{Values: append([]string{}, v...)}
	}

	if flags.Changed("parallelism") {
		v, err := flags.GetInt("parallelism")
		if err != nil {
			return values, fmt.Errorf("parse --parallelism: %w", err)
		}
		values.Parallelism = config.IntFlag{Value: v, Set: true}
	}

	boolFlags := []struct {
		name string
		dst  *config.BoolFlag
	}{
		{"check", &values.Check},
		{"debug", &values.Debug},
	}
	for _, f := range boolFlags {
		if !flags.Changed(f.name) {
			continue
		}
		v, err := flags.GetBool(f.name)
		if err != nil {
			return values, fmt.Errorf("parse --%s: %w", f.name, err)
		}
		*f.dst = config.BoolFlag{Value: v, Set: true}
	}

	return values, nil
}
