package document

import (
	"bytes"
	"fmt"
	"io"
	"net/url"
	"slices"
	"strings"

	"github.com/beevik/etree"
	"github.com/rickb777/srcsetlint/htmlindex"
	"golang.org/x/net/html/atom"
)

// XHTMLDocument is an XML-serialised HTML document, such as an EPUB content document.
type XHTMLDocument struct {
	doc      *etree.Document
	u        *url.URL
	startURL *url.URL
}

func ParseXHTML(u, startURL *url.URL, rdr io.Reader) (*XHTMLDocument, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(rdr); err != nil {
		return nil, fmt.Errorf("parsing: %w", err)
	}

	return &XHTMLDocument{doc: doc, u: u, startURL: startURL}, nil
}

// FixURLReferences fixes URL references to point to relative file names,
// in the same way as [HTMLDocument.FixURLReferences].
func (d *XHTMLDocument) FixURLReferences() ([]byte, bool, error) {
	relativeToRoot := upToRoot(d.u)

	var changed bool
	walkXML(&d.doc.Element, func(node *etree.Element) bool {
		info, ok := htmlindex.Nodes[atom.Lookup([]byte(strings.ToLower(node.Tag)))]
		if !ok {
			return true
		}

		for i, a := range node.Attr {
			if a.Space != "" || !slices.Contains(info.Attributes, a.Key) {
				continue
			}

			if adjusted, fixed := fixAttribute(d.u, a.Key, a.Value, d.startURL.Host, relativeToRoot); fixed {
				node.Attr[i].Value = adjusted
				changed = true
			}
		}
		return true
	})

	if !changed {
		return nil, false, nil
	}

	var rendered bytes.Buffer
	if _, err := d.doc.WriteTo(&rendered); err != nil {
		return nil, false, fmt.Errorf("rendering xhtml: %w", err)
	}

	return rendered.Bytes(), true, nil
}

func walkXML(node *etree.Element, f func(*etree.Element) bool) {
	if f(node) {
		for _, c := range node.ChildElements() {
			walkXML(c, f)
		}
	}
}
