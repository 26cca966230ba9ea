package actions

// StepKey is a stable symbolic identifier for a catalog step. It is never
// serialized; jobs use it to locate a step regardless of its display name.
type StepKey string

const (
	KeyNone     StepKey = ""
	KeyCheckout StepKey = "checkout"
)

// Step is one GitHub Actions step. A step either invokes an action (Uses)
// with parameters (With) or runs an inline shell command (Run).
type Step struct {
	Key StepKey `yaml:"-"`

	Name             string `yaml:"name,omitempty"`
	ID               string `yaml:"id,omitempty"`
	If               string `yaml:"if,omitempty"`
	Uses             string `yaml:"uses,omitempty"`
	With             Map    `yaml:"with,omitempty"`
	Run              string `yaml:"run,omitempty"`
	Env              Map    `yaml:"env,omitempty"`
	WorkingDirectory string `yaml:"working-directory,omitempty"`
}

// Runnable reports whether the step has an execution directive.
func (s Step) Runnable() bool {
	return s.Uses != "" || s.Run != ""
}

// Clone returns a copy that shares no mutable state with s.
func (s Step) Clone() Step {
	out := s
	out.With = s.With.Clone()
	out.Env = s.Env.Clone()
	return out
}

// Label returns the display name, falling back to the directive.
func (s Step) Label() string {
	switch {
	case s.Name != "":
		return s.Name
	case s.Uses != "":
		return s.Uses
	default:
		return firstLine(s.Run)
	}
}

// Terms are the fields a step is selected by: name and directives.
func (s Step) Terms() []string {
	return []string{s.Name, s.Run, s.Uses}
}

func firstLine(s string) string {
	for i, r := range s {
		if r == '\n' {
			return s[:i]
		}
	}
	return s
}
