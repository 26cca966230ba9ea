package actions

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Workflow is a named, triggerable collection of jobs.
type Workflow struct {
	Name string   `yaml:"name"`
	On   Triggers `yaml:"on"`
	Env  Map      `yaml:"env,omitempty"`
	Jobs Jobs     `yaml:"jobs"`
}

// Triggers lists the events that start a workflow. Nil members are absent;
// a non-nil empty member renders as an empty mapping.
type Triggers struct {
	IssueComment       *TypesFilter     `yaml:"issue_comment,omitempty"`
	RepositoryDispatch *TypesFilter     `yaml:"repository_dispatch,omitempty"`
	PullRequest        *BranchFilter    `yaml:"pull_request,omitempty"`
	Push               *PushFilter      `yaml:"push,omitempty"`
	Schedule           []Schedule       `yaml:"schedule,omitempty"`
	WorkflowDispatch   *WorkflowTrigger `yaml:"workflow_dispatch,omitempty"`
}

// TypesFilter restricts an event to activity types.
type TypesFilter struct {
	Types []string `yaml:"types,omitempty"`
}

// BranchFilter restricts pull_request events.
type BranchFilter struct {
	Branches    []string `yaml:"branches,omitempty"`
	PathsIgnore []string `yaml:"paths-ignore,omitempty"`
}

// PushFilter restricts push events.
type PushFilter struct {
	Branches    []string `yaml:"branches,omitempty"`
	Tags        []string `yaml:"tags,omitempty"`
	PathsIgnore []string `yaml:"paths-ignore,omitempty"`
	TagsIgnore  []string `yaml:"tags-ignore,omitempty"`
}

// Schedule is one cron entry.
type Schedule struct {
	Cron string `yaml:"cron"`
}

// WorkflowTrigger enables manual dispatch.
type WorkflowTrigger struct{}

// Jobs is the ordered job set of a workflow. Keys are job IDs.
type Jobs []Job

// NewWorkflow starts a workflow with no jobs.
func NewWorkflow(name string, on Triggers, env Map) Workflow {
	return Workflow{Name: name, On: on, Env: env.Clone(), Jobs: Jobs{}}
}

// WithJob returns a copy containing job. A job with the same ID is replaced
// in place; otherwise the job is appended.
func (w Workflow) WithJob(job Job) Workflow {
	out := w
	out.Jobs = make(Jobs, 0, len(w.Jobs)+1)
	replaced := false
	for _, existing := range w.Jobs {
		if existing.ID == job.ID {
			out.Jobs = append(out.Jobs, job.clone())
			replaced = true
			continue
		}
		out.Jobs = append(out.Jobs, existing)
	}
	if !replaced {
		out.Jobs = append(out.Jobs, job.clone())
	}
	return out
}

// KeepJobs returns a copy holding the jobs keep returns, in order. keep may
// return a derived job in place of the one it was given.
func (w Workflow) KeepJobs(keep func(Job) (Job, bool)) Workflow {
	out := w
	out.Jobs = make(Jobs, 0, len(w.Jobs))
	for _, j := range w.Jobs {
		if derived, ok := keep(j); ok {
			out.Jobs = append(out.Jobs, derived)
		}
	}
	return out
}

// Job looks up a job by ID.
func (w Workflow) Job(id string) (Job, bool) {
	for _, j := range w.Jobs {
		if j.ID == id {
			return j, true
		}
	}
	return Job{}, false
}

// HasJob reports whether a job with id is present.
func (w Workflow) HasJob(id string) bool {
	_, ok := w.Job(id)
	return ok
}

// JobIDs returns the job IDs in insertion order.
func (w Workflow) JobIDs() []string {
	ids := make([]string, 0, len(w.Jobs))
	for _, j := range w.Jobs {
		ids = append(ids, j.ID)
	}
	return ids
}

// MarshalYAML renders the jobs as a mapping keyed by job ID.
func (js Jobs) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	seen := make(map[string]struct{}, len(js))
	for _, j := range js {
		if j.ID == "" {
			return nil, fmt.Errorf("job %q has no id", j.Name)
		}
		if _, ok := seen[j.ID]; ok {
			return nil, fmt.Errorf("duplicate job id %q", j.ID)
		}
		seen[j.ID] = struct{}{}
		value := &yaml.Node{}
		if err := value.Encode(j); err != nil {
			return nil, fmt.Errorf("encode job %q: %w", j.ID, err)
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: j.ID},
			value,
		)
	}
	return node, nil
}
