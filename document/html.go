package document

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"slices"
	"strings"

	"github.com/rickb777/srcsetlint/htmlindex"
	"github.com/rickb777/srcsetlint/logger"
	"github.com/rickb777/srcsetlint/srcset"
	"golang.org/x/net/html"
)

// ignoredURLPrefixes contains a list of URL prefixes that do not need to be adjusted.
var ignoredURLPrefixes = []string{
	"#",       // fragment
	"/#",      // fragment
	"data:",   // embedded data
	"mailto:", // mail address
}

func isIgnored(value string) bool {
	for _, prefix := range ignoredURLPrefixes {
		if strings.HasPrefix(value, prefix) {
			return true
		}
	}
	return false
}

type HTMLDocument struct {
	u        *url.URL
	startURL *url.URL
	doc      *html.Node
	index    *htmlindex.Index
}

// ParseHTML parses the document found at u. References to the host of startURL
// are the ones that will be relinked.
func ParseHTML(u, startURL *url.URL, rdr io.Reader) (*HTMLDocument, error) {
	doc, err := html.Parse(rdr)
	if err != nil {
		return nil, fmt.Errorf("parsing: %w", err)
	}

	index := htmlindex.New()
	index.Index(u, doc)

	return &HTMLDocument{u: u, startURL: startURL, doc: doc, index: index}, nil
}

// FixURLReferences fixes URL references to point to relative file names.
// It returns a bool that indicates that no reference needed to be fixed,
// in this case the returned HTML string will be empty.
func (d *HTMLDocument) FixURLReferences() ([]byte, bool, error) {
	relativeToRoot := upToRoot(d.u)

	if changed := fixHTMLNodeURLs(d.u, d.startURL.Host, relativeToRoot, d.index); !changed {
		return nil, false, nil
	}

	var rendered bytes.Buffer
	if err := html.Render(&rendered, d.doc); err != nil {
		return nil, false, fmt.Errorf("rendering html: %w", err)
	}

	return rendered.Bytes(), true, nil
}

// fixHTMLNodeURLs processes all HTML nodes that contain URLs that need to be fixed
// to link to local files. It returns whether any URLS have been fixed.
func fixHTMLNodeURLs(baseURL *url.URL, startURLHost string, relativeToRoot string, index *htmlindex.Index) (changed bool) {
	done := make(map[*html.Node]struct{})

	for tag, nodeInfo := range htmlindex.Nodes {
		urls := index.Nodes(tag)
		for _, nodes := range urls {
			for _, node := range nodes {
				// a node with several URLs is listed against each of them
				if _, seen := done[node]; seen {
					continue
				}
				done[node] = struct{}{}

				if fixHTMLNodeURL(baseURL, nodeInfo.Attributes, node, startURLHost, relativeToRoot) {
					changed = true
				}
			}
		}
	}

	return changed
}

// fixHTMLNodeURL fixes the URL references of a HTML node to point to a relative file name.
// It returns true if any attribute value bas been adjusted.
func fixHTMLNodeURL(baseURL *url.URL, attributes []string, node *html.Node, startURLHost string, relativeToRoot string) (changed bool) {
	for i, attr := range node.Attr {
		if !slices.Contains(attributes, attr.Key) {
			continue
		}

		adjusted, ok := fixAttribute(baseURL, attr.Key, attr.Val, startURLHost, relativeToRoot)
		if ok {
			node.Attr[i].Val = adjusted
			changed = true
		}
	}

	return changed
}

// fixAttribute returns the relinked attribute value and true, or false if the
// value is unchanged.
func fixAttribute(baseURL *url.URL, key, val, startURLHost, relativeToRoot string) (string, bool) {
	value := strings.TrimSpace(val)
	if value == "" {
		return val, false
	}

	var adjusted string

	if htmlindex.IsSrcSet(key) {
		adjusted = resolveSrcSetURLs(baseURL, value, startURLHost, relativeToRoot)
	} else if isIgnored(value) {
		return val, false
	} else {
		adjusted = relink(baseURL, value, startURLHost, relativeToRoot)
	}

	if adjusted == value {
		return val, false
	}

	logger.Debug("Node relinked",
		slog.String("attribute", key),
		slog.String("value", value),
		slog.String("fixed_value", adjusted))
	return adjusted, true
}

// resolveSrcSetURLs relinks each image candidate in a srcset value. An invalid
// srcset is left exactly as it was.
func resolveSrcSetURLs(base *url.URL, srcSetValue, startURLHost, relativeToRoot string) string {
	result := srcset.Parse(srcSetValue)
	if !result.Success {
		logger.Warn("Invalid srcset left unchanged",
			slog.String("base", base.String()),
			slog.String("value", srcSetValue),
			slog.String("error", result.ErrorCode.String()))
		return srcSetValue
	}

	var changed bool
	mapped := result.Candidates.MapURLs(func(candidate string) string {
		if isIgnored(candidate) {
			return candidate
		}
		resolved := relink(base, candidate, startURLHost, relativeToRoot)
		if resolved == "" || resolved == candidate {
			return candidate
		}
		changed = true
		return resolved
	})

	if !changed {
		return srcSetValue // keeps the original spacing and implicit descriptors
	}
	return mapped.String()
}
