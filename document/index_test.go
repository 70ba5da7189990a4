package document

import (
	"bytes"
	"io"
	"log/slog"
	"net/url"
	"testing"

	"github.com/rickb777/expect"
	"github.com/rickb777/srcsetlint/logger"
	"github.com/stretchr/testify/assert"
)

func mustParseURL(s string) *url.URL {
	u, e := url.Parse(s)
	if e != nil {
		panic(e)
	}
	return u
}

func TestFindReferences(t *testing.T) {
	logger.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	u := mustParseURL("http://domain.com")

	b := []byte(`<html lang="es"><head></head>
<body>
  <a href="/wp-content/uploads/document.pdf" rel="doc">Guide</a>
  <a href="/some/things#part2">Some things</a>
  <a href="/more/things/">More things</a>
  <img src="/test.jpg" srcset="https://domain.com/test-480w.jpg 480w, https://domain.com/test-800w.jpg 800w"/>
  <img src="/broken.jpg" srcset="https://domain.com/broken-1.jpg 1x, https://domain.com/broken-2.jpg 1X"/>
  <script src="/js/func.min.js"></script> 
</body></html>
`)

	doc, err := ParseHTML(u, u, bytes.NewReader(b))
	expect.Error(err).ToBeNil(t)

	refs, err := doc.FindReferences()
	expect.Error(err).ToBeNil(t)
	expect.Slice(refs).ToHaveLength(t, 8)

	found := make([]string, len(refs))
	for i, ref := range refs {
		found[i] = ref.String()
	}

	assert.ElementsMatch(t, []string{
		"http://domain.com/wp-content/uploads/document.pdf",
		"http://domain.com/some/things",
		"http://domain.com/more/things/",
		"http://domain.com/test.jpg",
		"https://domain.com/test-480w.jpg",
		"https://domain.com/test-800w.jpg",
		"http://domain.com/broken.jpg",
		"http://domain.com/js/func.min.js",
	}, found)
}
