package batch

import (
	"bytes"
	"log/slog"
	"path/filepath"

	"github.com/rickb777/srcsetlint/document"
	"github.com/rickb777/srcsetlint/ioutil"
	"github.com/rickb777/srcsetlint/logger"
	"github.com/rickb777/srcsetlint/validator"
	"github.com/rickb777/srcsetlint/work"
	pathpkg "github.com/rickb777/path"
)

// relinker is implemented by the parsed HTML and XHTML documents.
type relinker interface {
	FixURLReferences() ([]byte, bool, error)
}

// process checks one document and rewrites it if required.
func (b *Batch) process(item work.Item) Result {
	result := Result{Item: item}
	source := filepath.Join(item.Root, item.Path)

	data, err := ioutil.ReadFile(b.fs, pathpkg.Path(source))
	if err != nil {
		result.Err = err
		return result
	}

	if isBinary(data) {
		logger.Warn("Skipping binary file", slog.String("path", source), slog.String("kind", item.Kind.String()))
		result.Skipped = true
		return result
	}

	logger.Debug("Checking", slog.String("path", source))

	var report *validator.Report

	switch item.Kind {
	case work.HTML:
		report, err = b.validator.CheckHTML(source, bytes.NewReader(data))
	case work.XHTML:
		report, err = b.validator.CheckXHTML(source, bytes.NewReader(data))
	case work.CSS:
		report = b.validator.CheckCSS(source, data)
	}

	if err != nil {
		logger.Error("Checking failed", slog.String("path", source), slog.Any("error", err))
		result.Err = err
		return result
	}

	result.Report = report

	if len(report.Findings) > 0 {
		logger.Info("Checked", slog.String("path", source),
			slog.Int("errors", len(report.Errors())),
			slog.Int("warnings", len(report.Warnings())))
	}

	if b.config.Rewrite {
		result.Output, result.Relinked, result.Err = b.rewrite(item, data)
	}

	return result
}

// rewrite writes the document under the output directory. HTML and XHTML documents
// are relinked first, as though published at the base URL; anything else is copied.
func (b *Batch) rewrite(item work.Item, data []byte) (string, bool, error) {
	pageURL := b.baseURL.JoinPath(filepath.ToSlash(item.Path))

	var doc relinker
	var err error

	switch item.Kind {
	case work.HTML:
		doc, err = document.ParseHTML(pageURL, b.baseURL, bytes.NewReader(data))
	case work.XHTML:
		doc, err = document.ParseXHTML(pageURL, b.baseURL, bytes.NewReader(data))
	}

	if err != nil {
		return "", false, err
	}

	relinked := false
	if doc != nil {
		fixed, changed, err := doc.FixURLReferences()
		if err != nil {
			return "", false, err
		}
		if changed {
			data = fixed
			relinked = true
		}
	}

	output := pathpkg.Path(filepath.Join(b.config.OutputDirectory, item.Path))
	if _, err := ioutil.WriteFileAtomically(b.fs, output, bytes.NewReader(data)); err != nil {
		logger.Error("Writing file failed", slog.String("path", string(output)), slog.Any("error", err))
		return "", false, err
	}

	if relinked {
		logger.Info("Relinked", slog.String("path", string(output)))
	}

	return string(output), relinked, nil
}
