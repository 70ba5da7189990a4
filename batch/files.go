package batch

import (
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"

	"github.com/h2non/filetype"
	"github.com/rickb777/srcsetlint/logger"
	"github.com/rickb777/srcsetlint/work"
	"github.com/spf13/afero"
)

// collect lists the documents to check under root, which is a file or a directory.
func (b *Batch) collect(root string) ([]work.Item, error) {
	info, err := b.fs.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("checking %s: %w", root, err)
	}

	if !info.IsDir() {
		item := work.Item{Path: filepath.Base(root), Root: filepath.Dir(root), Kind: work.KindOf(root)}
		if !b.shouldBeChecked(item) {
			return nil, nil
		}
		return []work.Item{item}, nil
	}

	var items []work.Item

	err = afero.Walk(b.fs, root, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			if path != root && strings.HasPrefix(info.Name(), ".") {
				logger.Debug("Skipping hidden directory", slog.String("path", path))
				return filepath.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}

		item := work.Item{Path: rel, Root: root, Kind: work.KindOf(rel)}
		if b.shouldBeChecked(item) {
			items = append(items, item)
		}
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}

	slices.SortFunc(items, func(a, b work.Item) int {
		return strings.Compare(a.Path, b.Path)
	})

	return items, nil
}

// shouldBeChecked applies the file kind and the include and exclude filters.
func (b *Batch) shouldBeChecked(item work.Item) bool {
	if item.Kind == work.Unknown {
		logger.Debug("Skipping unknown file type", slog.String("path", item.Path))
		return false
	}

	p := filepath.ToSlash(item.Path)

	if b.includes != nil && !b.includes.Matches(p, "Including file") {
		return false
	}

	if b.excludes != nil && b.excludes.Matches(p, "Skipping file") {
		return false
	}

	return true
}

// isBinary is true when the content is a recognised binary format such as an
// image, whatever the file is called.
func isBinary(data []byte) bool {
	return filetype.IsImage(data) ||
		filetype.IsVideo(data) ||
		filetype.IsAudio(data) ||
		filetype.IsFont(data) ||
		filetype.IsArchive(data) ||
		filetype.IsDocument(data)
}
