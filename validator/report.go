package validator

import (
	"fmt"
	"io"
	"time"

	"github.com/rickb777/srcsetlint/utc"
)

// Severity says whether a finding makes the document invalid.
type Severity int

const (
	Warning Severity = iota
	Error
)

func (s Severity) String() string {
	if s == Error {
		return "error"
	}
	return "warning"
}

func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Severity) UnmarshalText(text []byte) error {
	switch string(text) {
	case "error":
		*s = Error
	case "warning":
		*s = Warning
	default:
		return fmt.Errorf("unknown severity %q", text)
	}
	return nil
}

// Finding is one problem found in a document.
type Finding struct {
	Severity  Severity `json:"severity"`
	Code      string   `json:"code"`
	Message   string   `json:"message"`
	Location  string   `json:"location,omitempty"`
	Element   string   `json:"element,omitempty"`
	Attribute string   `json:"attribute,omitempty"`
	Value     string   `json:"value,omitempty"`
}

func (f Finding) String() string {
	where := f.Location
	if f.Attribute != "" {
		where += " " + f.Attribute
	}
	return fmt.Sprintf("%s %s %s: %s", f.Severity, f.Code, where, f.Message)
}

// Report collects the findings for one document.
type Report struct {
	Source    string    `json:"source"`
	CheckedAt time.Time `json:"checkedAt"`
	Findings  []Finding `json:"findings"`
}

func NewReport(source string) *Report {
	return &Report{Source: source, CheckedAt: utc.Now(), Findings: []Finding{}}
}

func (r *Report) Add(f Finding) {
	r.Findings = append(r.Findings, f)
}

// HasErrors is true if any finding has Error severity.
func (r *Report) HasErrors() bool {
	for _, f := range r.Findings {
		if f.Severity == Error {
			return true
		}
	}
	return false
}

func (r *Report) Errors() []Finding {
	return r.filter(Error)
}

func (r *Report) Warnings() []Finding {
	return r.filter(Warning)
}

func (r *Report) filter(severity Severity) []Finding {
	var list []Finding
	for _, f := range r.Findings {
		if f.Severity == severity {
			list = append(list, f)
		}
	}
	return list
}

// WriteText writes the findings one per line, each prefixed by the source.
func (r *Report) WriteText(w io.Writer) error {
	for _, f := range r.Findings {
		if _, err := fmt.Fprintf(w, "%s: %s\n", r.Source, f); err != nil {
			return err
		}
	}
	return nil
}
