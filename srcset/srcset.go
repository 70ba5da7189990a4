// Package srcset parses the value of an HTML srcset attribute into its image candidates.
//
// See https://html.spec.whatwg.org/multipage/images.html#srcset-attributes
package srcset

import (
	"regexp"

	"github.com/rickb777/srcsetlint/work"
)

// DefaultDescriptor is assigned to any candidate written without a descriptor.
const DefaultDescriptor = "1x"

// candidateRe matches one image candidate at the start of the remaining input.
// The space characters are the ASCII whitespace defined by HTML, not \s.
//
//   - optional leading spaces, then an optional comma and more spaces
//   - the URL (group 1): non-space, neither starting nor ending with a comma
//   - the optional width or density (group 2): a positive integer followed
//     by w or x, a positive decimal followed by x, or a decimal below one
//     that is not entirely zero
//   - trailing spaces, then an optional comma and the spaces after it (group 3)
var candidateRe = regexp.MustCompile(`^[ \t\n\f\r]*(?:,[ \t\n\f\r]*)?` +
	`([^ \t\n\f\r,](?:[^ \t\n\f\r]*[^ \t\n\f\r,])?)` +
	`(?:[ \t\n\f\r]+([1-9]\d*[wWxX]|[1-9]\d*\.\d+[xX]|0\.\d*[1-9]\d*[xX]))?` +
	`[ \t\n\f\r]*(,[ \t\n\f\r]*)?`)

// Result holds the outcome of parsing one srcset value. Candidates are only
// meaningful when Success is true; a failed parse may hold a partial list.
type Result struct {
	Success    bool       `json:"success"`
	Candidates Candidates `json:"candidates,omitempty"`
	ErrorCode  ErrorCode  `json:"errorCode"`
}

// Err returns nil for a successful result, or a *ParseError otherwise.
func (r Result) Err() error {
	if r.Success {
		return nil
	}
	return &ParseError{Code: r.ErrorCode}
}

func failed(code ErrorCode, candidates Candidates) Result {
	return Result{ErrorCode: code, Candidates: candidates}
}

// Parse splits a srcset attribute value into its image candidates, in source order.
// Parse never panics: malformed input is reported through the result's ErrorCode.
//
// Candidates must tile the whole value, each separated from the next by a comma.
// A candidate without a descriptor gets DefaultDescriptor. Two candidates whose
// descriptors differ only in the case of the unit letter are duplicates.
func Parse(srcset string) Result {
	var candidates Candidates
	seen := work.NewSet[string]()

	offset := 0
	for offset < len(srcset) {
		m := candidateRe.FindStringSubmatchIndex(srcset[offset:])
		if m == nil {
			break // the remainder is checked below
		}

		url := srcset[offset+m[2] : offset+m[3]]

		descriptor := DefaultDescriptor
		if m[4] >= 0 {
			descriptor = srcset[offset+m[4] : offset+m[5]]
		}

		key := normalise(descriptor)
		if seen.Contains(key) {
			return failed(DuplicateDimension, candidates)
		}
		seen.Add(key)

		candidates = append(candidates, Candidate{URL: url, Descriptor: descriptor})

		hasComma := m[6] >= 0
		offset += m[1]

		// more to come, so a comma separator was needed
		if offset < len(srcset) && !hasComma {
			return failed(InvalidAttrValue, candidates)
		}
	}

	if offset < len(srcset) {
		return failed(InvalidAttrValue, candidates)
	}

	if len(candidates) == 0 {
		return failed(InvalidAttrValue, nil)
	}

	return Result{Success: true, Candidates: candidates}
}

// normalise lowercases the unit letter; the number is kept verbatim.
func normalise(descriptor string) string {
	n := len(descriptor) - 1
	switch descriptor[n] {
	case 'W':
		return descriptor[:n] + "w"
	case 'X':
		return descriptor[:n] + "x"
	}
	return descriptor
}
