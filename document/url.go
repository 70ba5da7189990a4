package document

import (
	"net/url"
	"path"
	"strings"

	"github.com/rickb777/srcsetlint/mapping"
)

// relink rewrites reference, found in the page at base, as a path relative to
// that page. References to other hosts are returned unchanged; a reference that
// cannot be parsed gives an empty string. upToRoot is the path from the page up
// to the site root, as given by [upToRoot], and is only used when the resolved
// reference is not on host.
func relink(base *url.URL, reference, host, upToRoot string) string {
	ref, err := url.Parse(reference)
	if err != nil {
		return ""
	}

	if ref.Host != "" && ref.Host != host {
		return reference
	}

	target := base.ResolveReference(ref)
	if target.Host == host {
		target.Path = relativePath(target, base)
		upToRoot = ""
	}

	target.Scheme = ""
	target.Host = ""

	s := target.String()
	switch {
	case s == "":
		return ""
	case s[0] == '/' && upToRoot != "":
		s = upToRoot + s[1:]
	default:
		s = upToRoot + s
	}

	return strings.TrimPrefix(s, "/")
}

// upToRoot gives one "../" for each directory above the page at u.
func upToRoot(u *url.URL) string {
	segments := strings.Split(u.Path, "/")
	dirs := 0
	for _, s := range segments[:len(segments)-1] {
		if s != "" {
			dirs++
		}
	}
	return strings.Repeat("../", dirs)
}

// relativePath gives the path of target as seen from the file that the page at
// base is stored in.
func relativePath(target, base *url.URL) string {
	from := pathSegments(target.Path)
	to := pathSegments(mapping.GetPageFilePath(base))

	for len(from) > 0 && len(to) > 0 && from[0] == to[0] {
		from, to = from[1:], to[1:]
	}

	// the last segment of to is the page file, not a directory
	up := strings.Repeat("../", max(len(to)-1, 0))
	return up + path.Join(from...)
}

func pathSegments(p string) []string {
	var segments []string
	for _, s := range strings.Split(p, "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}
	return segments
}
