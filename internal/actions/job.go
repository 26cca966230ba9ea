package actions

// Runner labels used by generated jobs.
const (
	UbuntuLatest = "ubuntu-latest"
	MacOS11      = "macos-11"
)

// Strategy fans a job out across matrix axis values.
type Strategy struct {
	FailFast bool `yaml:"fail-fast"`
	Matrix   Map  `yaml:"matrix"`
}

// Job is a named group of ordered steps executed on one runner.
//
// Job values are immutable: every mutator returns a derived copy, so a job
// built once can serve as the template for several roles.
type Job struct {
	ID string `yaml:"-"`

	Name        string    `yaml:"name,omitempty"`
	RunsOn      string    `yaml:"runs-on"`
	If          string    `yaml:"if,omitempty"`
	Needs       []string  `yaml:"needs,omitempty"`
	Permissions Map       `yaml:"permissions,omitempty"`
	Outputs     Map       `yaml:"outputs,omitempty"`
	Strategy    *Strategy `yaml:"strategy,omitempty"`
	Steps       []Step    `yaml:"steps"`
}

// NewJob assembles a job from catalog output. Nil and non-runnable entries
// are dropped; the order of the remaining steps is preserved.
func NewJob(id string, steps ...*Step) Job {
	return Job{
		ID:     id,
		Name:   id,
		RunsOn: UbuntuLatest,
		Steps:  filterSteps(nil, steps),
	}
}

func filterSteps(dst []Step, steps []*Step) []Step {
	for _, s := range steps {
		if s == nil || !s.Runnable() {
			continue
		}
		dst = append(dst, s.Clone())
	}
	if dst == nil {
		dst = []Step{}
	}
	return dst
}

func (j Job) clone() Job {
	out := j
	out.Needs = append([]string(nil), j.Needs...)
	out.Permissions = j.Permissions.Clone()
	out.Outputs = j.Outputs.Clone()
	if j.Strategy != nil {
		s := *j.Strategy
		s.Matrix = j.Strategy.Matrix.Clone()
		out.Strategy = &s
	}
	out.Steps = make([]Step, 0, len(j.Steps))
	for _, s := range j.Steps {
		out.Steps = append(out.Steps, s.Clone())
	}
	return out
}

// WithName returns a copy with a different display name.
func (j Job) WithName(name string) Job {
	out := j.clone()
	out.Name = name
	return out
}

// WithIf returns a copy guarded by expr, replacing any previous guard.
func (j Job) WithIf(expr string) Job {
	out := j.clone()
	out.If = expr
	return out
}

// WithNeeds returns a copy depending on exactly the given jobs. Duplicates
// and empty names are dropped.
func (j Job) WithNeeds(ids ...string) Job {
	out := j.clone()
	out.Needs = nil
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out.Needs = append(out.Needs, id)
	}
	return out
}

// WithRunsOn returns a copy scheduled on runner.
func (j Job) WithRunsOn(runner string) Job {
	out := j.clone()
	out.RunsOn = runner
	return out
}

// WithStrategy returns a copy with a matrix strategy.
func (j Job) WithStrategy(s Strategy) Job {
	out := j.clone()
	s.Matrix = s.Matrix.Clone()
	out.Strategy = &s
	return out
}

// WithPermissions returns a copy with the given token permissions.
func (j Job) WithPermissions(p Map) Job {
	out := j.clone()
	out.Permissions = p.Clone()
	return out
}

// WithOutputs returns a copy exposing the given outputs to dependents.
func (j Job) WithOutputs(o Map) Job {
	out := j.clone()
	out.Outputs = o.Clone()
	return out
}

// AddStep returns a copy with s appended. An inapplicable s leaves the step
// sequence unchanged.
func (j Job) AddStep(s *Step) Job {
	out := j.clone()
	out.Steps = filterSteps(out.Steps, []*Step{s})
	return out
}

// ReplaceStep removes every step tagged key and prepends replacement.
func (j Job) ReplaceStep(key StepKey, replacement *Step) Job {
	out := j.clone()
	kept := make([]Step, 0, len(out.Steps))
	for _, s := range out.Steps {
		if key != KeyNone && s.Key == key {
			continue
		}
		kept = append(kept, s)
	}
	out.Steps = append(filterSteps(nil, []*Step{replacement}), kept...)
	return out
}

// Terms are the fields a job is selected by.
func (j Job) Terms() []string {
	return []string{j.ID, j.Name}
}

// KeepSteps returns a copy holding only the steps keep accepts, in order.
func (j Job) KeepSteps(keep func(Step) bool) Job {
	out := j.clone()
	kept := out.Steps[:0]
	for _, s := range out.Steps {
		if keep(s) {
			kept = append(kept, s)
		}
	}
	out.Steps = kept
	return out
}

// StepIndex returns the position of the first step tagged key, or -1.
func (j Job) StepIndex(key StepKey) int {
	for i, s := range j.Steps {
		if s.Key == key {
			return i
		}
	}
	return -1
}
