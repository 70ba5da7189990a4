package mapping

import (
	"net/url"
	"path/filepath"
)

const (
	// HTMLExtension is the file extension assumed for pages whose URL has none.
	HTMLExtension = ".html"

	// PageDirIndex is the file name of the index file for every dir.
	PageDirIndex = "index" + HTMLExtension
)

// GetPageFilePath returns the file path of the page published at a URL. Relative
// links between pages are computed from these paths.
func GetPageFilePath(url *url.URL) string {
	fileName := url.Path

	// root of domain will be index.html
	switch {
	case fileName == "" || fileName == "/":
		fileName = "/" + PageDirIndex
		// directory index will be index.html in the directory

	case fileName[len(fileName)-1] == '/':
		fileName += PageDirIndex

	default:
		ext := filepath.Ext(fileName)
		// if file extension is missing add .html, otherwise keep the existing file extension
		if ext == "" {
			fileName += HTMLExtension
		}
	}

	return fileName
}
