package report

import "time"

// FileStatus describes what generation did with one output file.
type FileStatus string

const (
	StatusWritten   FileStatus = "written"
	StatusUnchanged FileStatus = "unchanged"
	StatusDrift     FileStatus = "drift"
	StatusMissing   FileStatus = "missing"
)

// FileResult captures the outcome for a single generated file.
type FileResult struct {
	Provider string     `json:"provider"`
	Path     string     `json:"path"`
	Status   FileStatus `json:"status"`
	Bytes    int        `json:"bytes"`
}

// Summary aggregates a generation run.
type Summary struct {
	Providers  int           `json:"providers"`
	Files      int           `json:"files"`
	Written    int           `json:"written"`
	Unchanged  int           `json:"unchanged"`
	Drifted    int           `json:"drifted"`
	Duration   time.Duration `json:"-"`
	DurationMS int64         `json:"duration_ms"`
	ExitCode   int           `json:"exit_code"`
}

// Summarize counts results per status. Missing files count as drift.
func Summarize(results []FileResult, elapsed time.Duration) Summary {
	s := Summary{
		Files:      len(results),
		Duration:   elapsed,
		DurationMS: elapsed.Milliseconds(),
	}
	providers := make(map[string]struct{})
	for _, r := range results {
		providers[r.Provider] = struct{}{}
		switch r.Status {
		case StatusWritten:
			s.Written++
		case StatusUnchanged:
			s.Unchanged++
		case StatusDrift, StatusMissing:
			s.Drifted++
		}
	}
	s.Providers = len(providers)
	if s.Drifted > 0 {
		s.ExitCode = 1
	}
	return s
}
