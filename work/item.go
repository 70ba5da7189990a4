package work

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

// Kind is the type of document held by a file, judged from its extension.
type Kind int

const (
	Unknown Kind = iota
	HTML
	XHTML
	CSS
)

var kindNames = [...]string{"unknown", "html", "xhtml", "css"}

func (k Kind) String() string {
	return kindNames[k]
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// KindOf judges the kind of document from the file name extension.
func KindOf(name string) Kind {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".html", ".htm", ".asp", ".php":
		return HTML
	case ".xhtml", ".xht", ".xml":
		return XHTML
	case ".css":
		return CSS
	}
	return Unknown
}

// Item is one file to be checked. Item is comparable.
type Item struct {
	Path string // relative to the root it was found under
	Root string // the file or directory named by the user
	Kind Kind
}

func (it Item) String() string {
	return fmt.Sprintf("%s (%s)", it.Path, it.Kind)
}

type Refs []*url.URL

func (refs Refs) String() string {
	buf := &strings.Builder{}
	spacer := ""
	for _, ref := range refs {
		buf.WriteString(spacer)
		buf.WriteString(ref.Host)
		buf.WriteString(ref.Path)
		spacer = " "
	}
	return buf.String()
}
