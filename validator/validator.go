// Package validator checks the srcset attributes of documents and reports each
// problem with a stable error code.
package validator

import (
	"fmt"

	"github.com/rickb777/srcsetlint/srcset"
)

// MixedDescriptors is the code of the warning given for a srcset mixing width and
// density descriptors, which parses but is not allowed by HTML.
const MixedDescriptors = "MIXED_DESCRIPTORS"

var messages = map[srcset.ErrorCode]string{
	srcset.DuplicateDimension: "two image candidates have the same width or pixel density",
	srcset.InvalidAttrValue:   "not a valid comma-separated list of image candidates",
}

type Options struct {
	WarnMixedDescriptors bool
}

// Validator checks documents. It holds no state other than its options, so one
// Validator may be used by many goroutines.
type Validator struct {
	opts Options
}

func New(opts Options) *Validator {
	return &Validator{opts: opts}
}

// CheckSrcset parses one srcset value and adds any findings to the report.
// The parse result is returned for callers that need the candidates.
func (v *Validator) CheckSrcset(element, attribute, value, location string, r *Report) srcset.Result {
	result := srcset.Parse(value)

	if !result.Success {
		r.Add(Finding{
			Severity:  Error,
			Code:      result.ErrorCode.String(),
			Message:   messages[result.ErrorCode],
			Location:  location,
			Element:   element,
			Attribute: attribute,
			Value:     value,
		})
		return result
	}

	if v.opts.WarnMixedDescriptors && result.Candidates.Mixed() {
		r.Add(Finding{
			Severity:  Warning,
			Code:      MixedDescriptors,
			Message:   fmt.Sprintf("%d image candidates mix width and density descriptors", len(result.Candidates)),
			Location:  location,
			Element:   element,
			Attribute: attribute,
			Value:     value,
		})
	}

	return result
}
