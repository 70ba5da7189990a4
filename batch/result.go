package batch

import (
	"encoding/json"
	"path/filepath"

	"github.com/rickb777/srcsetlint/validator"
	"github.com/rickb777/srcsetlint/work"
)

// Result is the outcome of checking one file.
type Result struct {
	work.Item
	Report   *validator.Report // nil if the file could not be checked
	Skipped  bool              // the file content was binary
	Output   string            // the rewritten file, if any
	Relinked bool              // the rewritten file differs from the original
	Err      error
}

// Source is the path of the checked file.
func (r Result) Source() string {
	return filepath.Join(r.Root, r.Path)
}

// Failed is true when the file could not be processed or has errors.
func (r Result) Failed() bool {
	return r.Err != nil || (r.Report != nil && r.Report.HasErrors())
}

func (r Result) MarshalJSON() ([]byte, error) {
	v := struct {
		Source   string            `json:"source"`
		Kind     work.Kind         `json:"kind"`
		Report   *validator.Report `json:"report,omitempty"`
		Skipped  bool              `json:"skipped,omitempty"`
		Output   string            `json:"output,omitempty"`
		Relinked bool              `json:"relinked,omitempty"`
		Error    string            `json:"error,omitempty"`
	}{
		Source:   r.Source(),
		Kind:     r.Kind,
		Report:   r.Report,
		Skipped:  r.Skipped,
		Output:   r.Output,
		Relinked: r.Relinked,
	}

	if r.Err != nil {
		v.Error = r.Err.Error()
	}

	return json.Marshal(v)
}
