package srcset

import (
	"strconv"
	"strings"
)

// Kind distinguishes width descriptors (100w) from pixel density descriptors (2x).
type Kind int

const (
	Density Kind = iota
	Width
)

func (k Kind) String() string {
	if k == Width {
		return "width"
	}
	return "density"
}

// Candidate is one image candidate of a srcset: a URL and its width or density descriptor.
type Candidate struct {
	URL        string `json:"url"`
	Descriptor string `json:"descriptor"`
}

// Kind gets the kind of descriptor, as determined by its unit letter.
func (c Candidate) Kind() Kind {
	if strings.HasSuffix(c.Descriptor, "w") || strings.HasSuffix(c.Descriptor, "W") {
		return Width
	}
	return Density
}

// Width returns the width in pixels, if this candidate has a width descriptor.
func (c Candidate) Width() (int, bool) {
	if c.Kind() != Width {
		return 0, false
	}
	w, err := strconv.Atoi(c.number())
	if err != nil {
		return 0, false
	}
	return w, true
}

// Density returns the pixel density, if this candidate has a density descriptor.
func (c Candidate) Density() (float64, bool) {
	if c.Kind() != Density || c.Descriptor == "" {
		return 0, false
	}
	d, err := strconv.ParseFloat(c.number(), 64)
	if err != nil {
		return 0, false
	}
	return d, true
}

func (c Candidate) number() string {
	if c.Descriptor == "" {
		return ""
	}
	return c.Descriptor[:len(c.Descriptor)-1]
}

func (c Candidate) String() string {
	return c.URL + " " + c.Descriptor
}

//-------------------------------------------------------------------------------------------------

// Candidates is an ordered list of image candidates.
type Candidates []Candidate

// URLs lists the candidate URLs in order.
func (cs Candidates) URLs() []string {
	urls := make([]string, len(cs))
	for i, c := range cs {
		urls[i] = c.URL
	}
	return urls
}

// MapURLs returns a copy of the candidates with every URL transformed by fn.
// The descriptors are unaltered.
func (cs Candidates) MapURLs(fn func(string) string) Candidates {
	mapped := make(Candidates, len(cs))
	for i, c := range cs {
		mapped[i] = Candidate{URL: fn(c.URL), Descriptor: c.Descriptor}
	}
	return mapped
}

// Mixed is true when the list contains both width and density descriptors.
// Parse accepts this, although HTML does not allow it.
func (cs Candidates) Mixed() bool {
	var widths, densities bool
	for _, c := range cs {
		if c.Kind() == Width {
			widths = true
		} else {
			densities = true
		}
	}
	return widths && densities
}

// String renders the candidates as a srcset attribute value, which can be parsed again.
// Implicit descriptors are written out explicitly.
func (cs Candidates) String() string {
	buf := &strings.Builder{}
	spacer := ""
	for _, c := range cs {
		buf.WriteString(spacer)
		buf.WriteString(c.URL)
		buf.WriteByte(' ')
		buf.WriteString(c.Descriptor)
		spacer = ", "
	}
	return buf.String()
}
