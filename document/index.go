package document

import (
	"log/slog"

	"github.com/rickb777/srcsetlint/htmlindex"
	"github.com/rickb777/srcsetlint/logger"
	"github.com/rickb777/srcsetlint/work"
)

// FindReferences lists the URLs referenced by the document, including every
// candidate of each valid srcset. Fragments are removed.
func (d *HTMLDocument) FindReferences() (work.Refs, error) {
	var result work.Refs
	for tag := range htmlindex.Nodes {
		references, err := d.index.URLs(tag)
		if err != nil {
			logger.Error("Getting node URLs failed",
				slog.String("url", d.u.String()),
				slog.String("node", tag.String()),
				slog.Any("error", err))
		}

		for _, ur := range references {
			ur.Fragment = ""
			result = append(result, ur)
		}
	}

	return result, nil
}
