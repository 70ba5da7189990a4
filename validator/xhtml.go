package validator

import (
	"fmt"
	"io"
	"strings"

	"github.com/beevik/etree"
	"github.com/rickb777/srcsetlint/htmlindex"
)

var srcsetElements = map[string]bool{
	"img":    true,
	"source": true,
	"link":   true,
}

// CheckXHTML checks every srcset in an XHTML document. Elements are located by
// their path from the root.
func (v *Validator) CheckXHTML(source string, rdr io.Reader) (*Report, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(rdr); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", source, err)
	}

	r := NewReport(source)

	for _, el := range doc.FindElements("//*") {
		tag := strings.ToLower(el.Tag)
		if !srcsetElements[tag] {
			continue
		}

		location := el.GetPath()
		if id := el.SelectAttrValue("id", ""); id != "" {
			location += "#" + id
		}

		for _, attr := range el.Attr {
			if attr.Space == "" && htmlindex.IsSrcSet(attr.Key) {
				v.CheckSrcset(tag, attr.Key, attr.Value, location, r)
			}
		}
	}

	return r, nil
}
