package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/UnstoppableMango/pulumi-ci-mgmt/internal/report"
	"github.com/jedib0t/go-pretty/v6/table"
)

// PrettyRenderer renders human-friendly tables.
type PrettyRenderer struct {
	out io.Writer
}

// NewPretty creates a PrettyRenderer writing to the provided writer.
func NewPretty(out io.Writer) *PrettyRenderer {
	return &PrettyRenderer{out: out}
}

// RenderList renders one row per generated job.
func (p *PrettyRenderer) RenderList(providers []Provider) error {
	tw := table.NewWriter()
	tw.SetOutputMirror(p.out)
	tw.AppendHeader(table.Row{"Provider", "Workflow", "Job", "Runs On", "Needs", "Steps"})
	for _, prov := range providers {
		for _, wf := range prov.Workflows {
			for _, job := range wf.Jobs {
				tw.AppendRow(table.Row{prov.Name, wf.Name, job.ID, job.RunsOn, strings.Join(job.Needs, ", "), len(job.Steps)})
			}
		}
	}
	tw.Render()
	return nil
}

// RenderSteps lists the steps of every job, one bullet per step.
func (p *PrettyRenderer) RenderSteps(providers []Provider) error {
	for _, prov := range providers {
		for _, wf := range prov.Workflows {
			if _, err := fmt.Fprintf(p.out, "Workflow %s\n", decorateName(prov.Name+"/"+wf.Name, wf.Path)); err != nil {
				return err
			}
			for _, job := range wf.Jobs {
				if _, err := fmt.Fprintf(p.out, "  Job %s\n", job.ID); err != nil {
					return err
				}
				for _, step := range job.Steps {
					if _, err := fmt.Fprintf(p.out, "    • %s\n", step); err != nil {
						return err
					}
				}
			}
		}
	}
	return nil
}

// RenderResults shows what generation did with each file plus a summary.
func (p *PrettyRenderer) RenderResults(results []report.FileResult, summary report.Summary) error {
	tw := table.NewWriter()
	tw.SetOutputMirror(p.out)
	tw.AppendHeader(table.Row{"Provider", "File", "Status"})
	for _, res := range results {
		tw.AppendRow(table.Row{res.Provider, res.Path, fmt.Sprintf("%s %s", statusGlyph(res.Status), res.Status)})
	}
	tw.Render()

	_, err := fmt.Fprintf(p.out, "SUMMARY: %d written, %d unchanged, %d drifted (%s)\n",
		summary.Written, summary.Unchanged, summary.Drifted, formatDuration(summary.Duration))
	return err
}

func decorateName(name, path string) string {
	if name == "" || name == path {
		return path
	}
	return fmt.Sprintf("%s (%s)", name, path)
}

func statusGlyph(status report.FileStatus) string {
	switch status {
	case report.StatusWritten:
		return "✓"
	case report.StatusUnchanged:
		return "="
	case report.StatusDrift, report.StatusMissing:
		return "✗"
	default:
		return "-"
	}
}

func formatDuration(d time.Duration) string {
	if d <= 0 {
		return "0s"
	}
	if d < time.Second {
		return d.Round(time.Millisecond).String()
	}
	return d.Truncate(time.Millisecond).String()
}
