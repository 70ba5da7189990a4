package ioutil

import (
	"errors"
	"strings"
	"testing"

	"github.com/rickb777/expect"
	pathpkg "github.com/rickb777/path"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
)

func TestWriteFileAtomically(t *testing.T) {
	fs := afero.NewMemMapFs()

	n, err := WriteFileAtomically(fs, "out/pages/index.html", strings.NewReader("<html></html>"))
	expect.Error(err).ToBeNil(t)
	expect.Number(n).ToBe(t, 13)
	expect.Bool(FileExists(fs, "out/pages/index.html")).ToBeTrue(t)
	expect.Bool(FileExists(fs, "out/pages/index.html"+randomSuffix)).ToBeFalse(t)

	data, err := ReadFile(fs, "out/pages/index.html")
	expect.Error(err).ToBeNil(t)
	expect.String(string(data)).ToEqual(t, "<html></html>")
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("boom") }

func TestWriteFileAtomicallyCleansUp(t *testing.T) {
	fs := afero.NewMemMapFs()
	path := pathpkg.Path("broken.html")

	_, err := WriteFileAtomically(fs, path, failingReader{})
	assert.ErrorContains(t, err, "boom")
	expect.Bool(FileExists(fs, path)).ToBeFalse(t)
	expect.Bool(FileExists(fs, path+randomSuffix)).ToBeFalse(t)
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(afero.NewMemMapFs(), "nope.html")
	assert.ErrorContains(t, err, "reading file 'nope.html'")
}
