package validator

import (
	"fmt"
	"strings"

	"github.com/gorilla/css/scanner"
	"github.com/rickb777/srcsetlint/srcset"
	"github.com/rickb777/srcsetlint/work"
)

// imageSetFunctions are the CSS functions whose arguments are a list of image
// options, the stylesheet counterpart of srcset.
var imageSetFunctions = map[string]bool{
	"image-set(":         true,
	"-webkit-image-set(": true,
}

type imageOption struct {
	hasImage   bool
	resolution string
}

// CheckCSS checks the image-set() lists in a stylesheet. Each option must have an
// image and the resolutions must be distinct. Locations are line:column.
func (v *Validator) CheckCSS(source string, data []byte) *Report {
	r := NewReport(source)
	scan := scanner.New(string(data))

	for {
		token := scan.Next()
		if token.Type == scanner.TokenEOF || token.Type == scanner.TokenError {
			break
		}

		if token.Type == scanner.TokenFunction && imageSetFunctions[strings.ToLower(token.Value)] {
			location := fmt.Sprintf("%d:%d", token.Line, token.Column)
			name := strings.TrimSuffix(strings.ToLower(token.Value), "(")
			options, complete := scanImageSet(scan)
			checkImageSet(name, location, options, complete, r)
		}
	}

	return r
}

// scanImageSet consumes tokens up to the closing parenthesis of an image-set.
func scanImageSet(scan *scanner.Scanner) ([]imageOption, bool) {
	var options []imageOption
	current := imageOption{}
	empty := true
	depth := 1

	for {
		token := scan.Next()
		switch token.Type {
		case scanner.TokenEOF, scanner.TokenError:
			return options, false

		case scanner.TokenFunction:
			depth++ // e.g. type("image/avif")

		case scanner.TokenChar:
			switch token.Value {
			case "(":
				depth++
			case ")":
				depth--
				if depth == 0 {
					if !empty {
						options = append(options, current)
					}
					return options, true
				}
			case ",":
				if depth == 1 {
					options = append(options, current)
					current = imageOption{}
					empty = true
				}
			}

		case scanner.TokenURI, scanner.TokenString:
			if depth == 1 {
				current.hasImage = true
				empty = false
			}

		case scanner.TokenDimension:
			if depth == 1 {
				current.resolution = token.Value
				empty = false
			}

		case scanner.TokenS, scanner.TokenComment:
			// ignored

		default:
			if depth == 1 {
				empty = false
			}
		}
	}
}

func checkImageSet(name, location string, options []imageOption, complete bool, r *Report) {
	invalid := func(message string) {
		r.Add(Finding{
			Severity: Error,
			Code:     srcset.InvalidAttrValue.String(),
			Message:  message,
			Location: location,
			Element:  name,
		})
	}

	if !complete {
		invalid(name + " is not terminated")
		return
	}

	if len(options) == 0 {
		invalid(name + " has no image options")
		return
	}

	seen := work.NewSet[string]()
	for i, opt := range options {
		if !opt.hasImage {
			invalid(fmt.Sprintf("option %d of %s has no image", i+1, name))
			continue
		}

		resolution := normaliseResolution(opt.resolution)
		if seen.Contains(resolution) {
			r.Add(Finding{
				Severity: Error,
				Code:     srcset.DuplicateDimension.String(),
				Message:  fmt.Sprintf("resolution %s is used more than once", resolution),
				Location: location,
				Element:  name,
				Value:    opt.resolution,
			})
			return
		}
		seen.Add(resolution)
	}
}

// normaliseResolution lowercases the unit; 'x' is an alias for 'dppx'.
// An omitted resolution means 1x.
func normaliseResolution(resolution string) string {
	if resolution == "" {
		return srcset.DefaultDescriptor
	}
	r := strings.ToLower(resolution)
	if n, found := strings.CutSuffix(r, "dppx"); found {
		return n + "x"
	}
	return r
}
