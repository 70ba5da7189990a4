package validator

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rickb777/srcsetlint/htmlindex"
)

// srcsetSelector finds the elements that may carry srcset values. It covers the
// same elements and attributes as CheckXHTML.
var srcsetSelector = buildSrcsetSelector()

func buildSrcsetSelector() string {
	var selectors []string
	for _, tag := range slices.Sorted(maps.Keys(srcsetElements)) {
		for _, attr := range slices.Sorted(maps.Keys(htmlindex.SrcSetAttributes)) {
			selectors = append(selectors, tag+"["+attr+"]")
		}
	}
	return strings.Join(selectors, ", ")
}

// CheckHTML checks every srcset in an HTML document. Elements are located as
// tag[n], counting the checked elements of each tag in document order.
func (v *Validator) CheckHTML(source string, rdr io.Reader) (*Report, error) {
	doc, err := goquery.NewDocumentFromReader(rdr)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", source, err)
	}

	r := NewReport(source)
	counts := make(map[string]int)

	doc.Find(srcsetSelector).Each(func(_ int, s *goquery.Selection) {
		tag := goquery.NodeName(s)
		counts[tag]++

		location := fmt.Sprintf("%s[%d]", tag, counts[tag])
		if id, exists := s.Attr("id"); exists && id != "" {
			location += "#" + id
		}

		for _, attr := range s.Nodes[0].Attr {
			if attr.Namespace == "" && htmlindex.IsSrcSet(attr.Key) {
				v.CheckSrcset(tag, attr.Key, attr.Val, location, r)
			}
		}
	})

	return r, nil
}
