package output

import "github.com/UnstoppableMango/pulumi-ci-mgmt/internal/actions"

// Provider groups the workflows generated for one provider.
type Provider struct {
	Name      string     `json:"provider"`
	Workflows []Workflow `json:"workflows"`
}

// Workflow is the listing view of a generated workflow.
type Workflow struct {
	Name string `json:"name"`
	Path string `json:"path"`
	Jobs []Job  `json:"jobs"`
}

// Job is the listing view of a generated job.
type Job struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	RunsOn string   `json:"runs_on"`
	Needs  []string `json:"needs,omitempty"`
	Steps  []string `json:"steps"`
}

// Describe flattens w into its listing view.
func Describe(path string, w actions.Workflow) Workflow {
	out := Workflow{Name: w.Name, Path: path, Jobs: make([]Job, 0, len(w.Jobs))}
	for _, j := range w.Jobs {
		steps := make([]string, 0, len(j.Steps))
		for _, s := range j.Steps {
			steps = append(steps, s.Label())
		}
		out.Jobs = append(out.Jobs, Job{
			ID:     j.ID,
			Name:   j.Name,
			RunsOn: j.RunsOn,
			Needs:  append([]string(nil), j.Needs...),
			Steps:  steps,
		})
	}
	return out
}

// ListSummary counts the listed entities.
type ListSummary struct {
	Providers int `json:"providers"`
	Workflows int `json:"workflows"`
	Jobs      int `json:"jobs"`
	Steps     int `json:"steps"`
}

// Summarize counts providers, workflows, jobs and steps.
func Summarize(providers []Provider) ListSummary {
	s := ListSummary{Providers: len(providers)}
	for _, p := range providers {
		s.Workflows += len(p.Workflows)
		for _, w := range p.Workflows {
			s.Jobs += len(w.Jobs)
			for _, j := range w.Jobs {
				s.Steps += len(j.Steps)
			}
		}
	}
	return s
}
