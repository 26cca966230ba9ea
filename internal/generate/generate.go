// Package generate drives a generation run: it resolves every selected
// provider config, renders its workflows and release configs, then writes or
// checks the files under <out>/<provider>.
package generate

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/UnstoppableMango/pulumi-ci-mgmt/internal/actions"
	"github.com/UnstoppableMango/pulumi-ci-mgmt/internal/discovery"
	"github.com/UnstoppableMango/pulumi-ci-mgmt/internal/goreleaser"
	"github.com/UnstoppableMango/pulumi-ci-mgmt/internal/output"
	"github.com/UnstoppableMango/pulumi-ci-mgmt/internal/provider"
	"github.com/UnstoppableMango/pulumi-ci-mgmt/internal/report"
	"github.com/UnstoppableMango/pulumi-ci-mgmt/internal/workflows"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Release config file names, relative to a provider's output directory.
const (
	PrereleaseConfigFile = ".goreleaser.prerelease.yml"
	ReleaseConfigFile    = ".goreleaser.yml"
)

// WorkflowPath is where the workflow called name is written.
func WorkflowPath(name string) string {
	return filepath.Join(".github", "workflows", name+".yml")
}

// Options selects the providers and the output of a run.
type Options struct {
	ProvidersDir string
	OutDir       string
	Providers    []string
	Parallelism  int
	Check        bool
	Logger       *zap.Logger
}

func (o Options) limit() int {
	if o.Parallelism <= 0 {
		return 1
	}
	return o.Parallelism
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

// Plan is everything rendered for one provider.
type Plan struct {
	Provider  string
	Config    provider.Config
	Workflows []actions.Workflow
	Files     []output.File
}

// Result reports what a run did.
type Result struct {
	Files   []report.FileResult
	Summary report.Summary
}

// Render composes and serializes every file of cfg. Workflows are validated
// before they are encoded.
func Render(cfg provider.Config) (Plan, error) {
	plan := Plan{Provider: cfg.Provider, Config: cfg, Workflows: workflows.All(cfg)}
	for _, w := range plan.Workflows {
		if err := actions.Validate(w); err != nil {
			return Plan{}, fmt.Errorf("provider %q: %w", cfg.Provider, err)
		}
		data, err := output.EncodeYAML(w)
		if err != nil {
			return Plan{}, fmt.Errorf("provider %q: workflow %q: %w", cfg.Provider, w.Name, err)
		}
		plan.Files = append(plan.Files, output.File{Path: WorkflowPath(w.Name), Data: data})
	}

	releases := []struct {
		path string
		cfg  goreleaser.Config
	}{
		{PrereleaseConfigFile, goreleaser.Prerelease(cfg)},
		{ReleaseConfigFile, goreleaser.Full(cfg)},
	}
	for _, r := range releases {
		data, err := output.EncodeYAML(r.cfg)
		if err != nil {
			return Plan{}, fmt.Errorf("provider %q: %s: %w", cfg.Provider, r.path, err)
		}
		plan.Files = append(plan.Files, output.File{Path: r.path, Data: data})
	}
	return plan, nil
}

// Plans resolves every selected provider, then renders all of them. Nothing
// is written; any failure aborts the whole run.
func Plans(ctx context.Context, opts Options) ([]Plan, error) {
	log := opts.logger()
	names, err := discovery.Providers(opts.ProvidersDir, opts.Providers)
	if err != nil {
		return nil, err
	}

	configs := make([]provider.Config, len(names))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.limit())
	for i, name := range names {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			cfg, err := provider.LoadFromDir(opts.ProvidersDir, name)
			if err != nil {
				return err
			}
			log.Debug("resolved provider config", zap.String("provider", name))
			configs[i] = cfg
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	plans := make([]Plan, len(configs))
	g, gctx = errgroup.WithContext(ctx)
	g.SetLimit(opts.limit())
	for i, cfg := range configs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			plan, err := Render(cfg)
			if err != nil {
				return err
			}
			// Output directories are keyed by directory name, not the id inside the file.
			plan.Provider = names[i]
			log.Debug("rendered provider",
				zap.String("provider", names[i]),
				zap.Int("workflows", len(plan.Workflows)),
				zap.Int("files", len(plan.Files)),
			)
			plans[i] = plan
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return plans, nil
}

// Run renders every selected provider and then writes, or in check mode
// compares, its files under OutDir/<provider>.
func Run(ctx context.Context, opts Options) (Result, error) {
	start := time.Now()
	log := opts.logger()

	plans, err := Plans(ctx, opts)
	if err != nil {
		return Result{}, err
	}

	perProvider := make([][]report.FileResult, len(plans))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.limit())
	for i, plan := range plans {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			root := filepath.Join(opts.OutDir, plan.Provider)
			var results []report.FileResult
			var err error
			if opts.Check {
				results, err = output.Check(root, plan.Provider, plan.Files)
			} else {
				results, err = output.Write(root, plan.Provider, plan.Files)
			}
			if err != nil {
				return fmt.Errorf("provider %q: %w", plan.Provider, err)
			}
			for _, r := range results {
				switch r.Status {
				case report.StatusWritten:
					log.Info("wrote file", zap.String("provider", r.Provider), zap.String("path", r.Path), zap.Int("bytes", r.Bytes))
				case report.StatusDrift, report.StatusMissing:
					log.Warn("file is out of date", zap.String("provider", r.Provider), zap.String("path", r.Path), zap.String("status", string(r.Status)))
				}
			}
			perProvider[i] = results
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	var files []report.FileResult
	for _, results := range perProvider {
		files = append(files, results...)
	}
	return Result{Files: files, Summary: report.Summarize(files, time.Since(start))}, nil
}
