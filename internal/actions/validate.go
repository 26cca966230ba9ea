package actions

import (
	"errors"
	"fmt"

	"github.com/robfig/cron/v3"
)

var (
	// ErrUnknownNeed indicates a job depends on a job that is not in the workflow.
	ErrUnknownNeed = errors.New("job needs an unknown job")
	// ErrCyclicNeeds indicates the needs graph contains a cycle.
	ErrCyclicNeeds = errors.New("cyclic job dependencies")
	// ErrEmptyStep indicates a step with neither uses nor run.
	ErrEmptyStep = errors.New("step has no uses or run")
)

// GitHub schedules use the classic five-field cron syntax.
var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// Validate checks the structural invariants of a generated workflow: unique
// job IDs, needs that resolve inside the workflow, an acyclic needs graph,
// runnable steps and parseable schedules.
func Validate(w Workflow) error {
	for _, s := range w.On.Schedule {
		if _, err := cronParser.Parse(s.Cron); err != nil {
			return fmt.Errorf("workflow %q: invalid cron expression %q: %w", w.Name, s.Cron, err)
		}
	}

	ids := make(map[string]struct{}, len(w.Jobs))
	for _, j := range w.Jobs {
		if j.ID == "" {
			return fmt.Errorf("workflow %q: job %q has no id", w.Name, j.Name)
		}
		if _, ok := ids[j.ID]; ok {
			return fmt.Errorf("workflow %q: duplicate job id %q", w.Name, j.ID)
		}
		ids[j.ID] = struct{}{}
	}

	for _, j := range w.Jobs {
		for _, need := range j.Needs {
			if _, ok := ids[need]; !ok {
				return fmt.Errorf("workflow %q: job %q needs %q: %w", w.Name, j.ID, need, ErrUnknownNeed)
			}
		}
		for i, s := range j.Steps {
			if !s.Runnable() {
				return fmt.Errorf("workflow %q: job %q step %d: %w", w.Name, j.ID, i+1, ErrEmptyStep)
			}
		}
	}

	if _, err := TopologicalOrder(w); err != nil {
		return fmt.Errorf("workflow %q: %w", w.Name, err)
	}
	return nil
}

// TopologicalOrder returns job IDs ordered so every job follows the jobs it
// needs. Ties keep insertion order. Unknown needs are ignored here; Validate
// reports them.
func TopologicalOrder(w Workflow) ([]string, error) {
	inDegree := make(map[string]int, len(w.Jobs))
	dependents := make(map[string][]string, len(w.Jobs))
	for _, j := range w.Jobs {
		inDegree[j.ID] = 0
	}
	for _, j := range w.Jobs {
		for _, need := range j.Needs {
			if _, ok := inDegree[need]; !ok {
				continue
			}
			inDegree[j.ID]++
			dependents[need] = append(dependents[need], j.ID)
		}
	}

	queue := make([]string, 0, len(w.Jobs))
	for _, j := range w.Jobs {
		if inDegree[j.ID] == 0 {
			queue = append(queue, j.ID)
		}
	}

	order := make([]string, 0, len(w.Jobs))
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		order = append(order, id)
		for _, dep := range dependents[id] {
			inDegree[dep]--
			if inDegree[dep] == 0 {
				queue = append(queue, dep)
			}
		}
	}

	if len(order) != len(inDegree) {
		return nil, ErrCyclicNeeds
	}
	return order, nil
}
