package output

import (
	"encoding/json"
	"io"

	"github.com/UnstoppableMango/pulumi-ci-mgmt/internal/report"
)

// JSONRenderer emits structured data.
type JSONRenderer struct {
	out io.Writer
}

// NewJSON creates a JSON renderer writing to out.
func NewJSON(out io.Writer) *JSONRenderer {
	return &JSONRenderer{out: out}
}

// ListReport is the JSON schema of the list command.
type ListReport struct {
	Providers []Provider  `json:"providers"`
	Summary   ListSummary `json:"summary"`
}

// GenerateReport is the JSON schema of the generate command.
type GenerateReport struct {
	Files   []report.FileResult `json:"files"`
	Summary report.Summary      `json:"summary"`
}

// Render encodes v as indented JSON.
func (j *JSONRenderer) Render(v interface{}) error {
	enc := json.NewEncoder(j.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
