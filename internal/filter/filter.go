package filter

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/UnstoppableMango/pulumi-ci-mgmt/internal/actions"
)

// Pattern is a case-insensitive substring, or a regular expression when
// written between slashes.
type Pattern struct {
	raw   string
	regex *regexp.Regexp
	lower string
}

// Patterns matches when any of its members does.
type Patterns []Pattern

// Compile parses raw patterns, skipping blank ones.
func Compile(raw []string) (Patterns, error) {
	out := make(Patterns, 0, len(raw))
	for _, r := range raw {
		r = strings.TrimSpace(r)
		if r == "" {
			continue
		}
		if len(r) >= 2 && strings.HasPrefix(r, "/") && strings.HasSuffix(r, "/") {
			re, err := regexp.Compile(r[1 : len(r)-1])
			if err != nil {
				return nil, fmt.Errorf("compile regexp %q: %w", r, err)
			}
			out = append(out, Pattern{raw: r, regex: re})
			continue
		}
		out = append(out, Pattern{raw: r, lower: strings.ToLower(r)})
	}
	return out, nil
}

// Match reports whether s matches. Empty strings never match.
func (p Pattern) Match(s string) bool {
	if s == "" {
		return false
	}
	if p.regex != nil {
		return p.regex.MatchString(s)
	}
	return strings.Contains(strings.ToLower(s), p.lower)
}

func (p Pattern) String() string {
	return p.raw
}

// Any reports whether some pattern matches some term.
func (ps Patterns) Any(terms []string) bool {
	for _, p := range ps {
		for _, t := range terms {
			if p.Match(t) {
				return true
			}
		}
	}
	return false
}

// Selection narrows generated workflows for display. Jobs selects jobs by ID
// or name; Only and Skip select steps by name or directive.
type Selection struct {
	Jobs Patterns
	Only Patterns
	Skip Patterns
}

// NewSelection compiles the three pattern lists.
func NewSelection(jobs, only, skip []string) (Selection, error) {
	var (
		sel Selection
		err error
	)
	if sel.Jobs, err = Compile(jobs); err != nil {
		return Selection{}, fmt.Errorf("job filter: %w", err)
	}
	if sel.Only, err = Compile(only); err != nil {
		return Selection{}, fmt.Errorf("only-step filter: %w", err)
	}
	if sel.Skip, err = Compile(skip); err != nil {
		return Selection{}, fmt.Errorf("skip-step filter: %w", err)
	}
	return sel, nil
}

func (s Selection) keepStep(st actions.Step) bool {
	if len(s.Only) > 0 && !s.Only.Any(st.Terms()) {
		return false
	}
	return !s.Skip.Any(st.Terms())
}

func (s Selection) keepJob(j actions.Job) (actions.Job, bool) {
	if len(s.Jobs) > 0 && !s.Jobs.Any(j.Terms()) {
		return actions.Job{}, false
	}
	j = j.KeepSteps(s.keepStep)
	return j, len(j.Steps) > 0
}

// Apply returns copies of workflows holding only the selected jobs and
// steps. Jobs and workflows left empty are dropped. Needs are kept as
// generated even when they name a job that was filtered out.
func (s Selection) Apply(workflows []actions.Workflow) []actions.Workflow {
	var out []actions.Workflow
	for _, w := range workflows {
		w = w.KeepJobs(s.keepJob)
		if len(w.Jobs) > 0 {
			out = append(out, w)
		}
	}
	return out
}
