// Package ioutil holds the file handling used when reading documents and writing
// their rewritten copies.
package ioutil

import (
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"strconv"

	"github.com/rickb777/srcsetlint/logger"
	pathpkg "github.com/rickb777/path"
	"github.com/spf13/afero"
)

// randomSuffix is appended to files temporarily whilst they are being written
var randomSuffix pathpkg.Path

func init() {
	randomSuffix = pathpkg.Path("." + strconv.FormatInt(rand.Int64N(1<<20), 36) + ".tmp")
}

// CreateDirectory creates the output path if it does not exist yet.
func CreateDirectory(fs afero.Fs, path pathpkg.Path) error {
	if path == "" || path == "." {
		return nil
	}

	logger.Debug("Creating dir", slog.String("path", string(path)))
	if err := fs.MkdirAll(string(path), os.ModePerm); err != nil {
		return fmt.Errorf("creating directory '%s': %w", path, err)
	}
	return nil
}

// WriteFileAtomically writes to a temporary file then renames it, so that a partly
// written document is never visible at filePath.
func WriteFileAtomically(fs afero.Fs, filePath pathpkg.Path, data io.Reader) (int64, error) {
	if err := CreateDirectory(fs, filePath.Dir()); err != nil {
		return 0, err
	}

	logger.Debug("Creating file", slog.String("path", string(filePath)))
	tempPath := filePath + randomSuffix
	f, err := fs.Create(string(tempPath))
	if err != nil {
		return 0, fmt.Errorf("creating file '%s': %w", filePath, err)
	}

	var length int64
	if length, err = io.Copy(f, data); err != nil {
		// nolint: wrapcheck
		_ = f.Close() // try to close and remove file but ignore any error
		_ = fs.Remove(string(tempPath))
		return length, fmt.Errorf("writing to file: %w", err)
	}

	if err := f.Close(); err != nil {
		return length, fmt.Errorf("closing file: %w", err)
	}

	if err := fs.Rename(string(tempPath), string(filePath)); err != nil {
		return length, fmt.Errorf("renaming %s to %s: %w", tempPath, filePath, err)
	}
	return length, nil
}

func ReadFile(fs afero.Fs, filePath pathpkg.Path) ([]byte, error) {
	data, err := afero.ReadFile(fs, string(filePath))
	if err != nil {
		return nil, fmt.Errorf("reading file '%s': %w", filePath, err)
	}
	return data, nil
}

func FileExists(fs afero.Fs, filePath pathpkg.Path) bool {
	_, err := fs.Stat(string(filePath))
	return !os.IsNotExist(err)
}
