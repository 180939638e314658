// Package fs stores clips as Markdown files on disk.
package fs

import (
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"github.com/fwojciec/mdclip"
)

// ClipPath converts a clip source to a relative, slash-separated file path.
//
// Web sources are grouped by host:
// https://example.com/blog/post → example.com/blog/post.md.
// Local sources keep only their base name: notes/page.html → page.md,
// and standard input becomes stdin.md.
func ClipPath(source string) (string, error) {
	if source == "-" {
		return "stdin.md", nil
	}

	u, err := url.Parse(source)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		base := filepath.Base(source)
		base = strings.TrimSuffix(base, filepath.Ext(base))
		if base == "" || base == "." || base == ".." || base == string(filepath.Separator) {
			return "", mdclip.Errorf(mdclip.EINVALID, "cannot derive file name from %q", source)
		}
		return base + ".md", nil
	}

	p := u.Path
	for _, seg := range strings.Split(p, "/") {
		if seg == ".." {
			return "", mdclip.Errorf(mdclip.EINVALID, "path traversal in %q", source)
		}
	}
	p = strings.TrimPrefix(p, "/")

	switch {
	case p == "":
		p = "index.md"
	case strings.HasSuffix(p, "/"):
		p += "index.md"
	default:
		if ext := path.Ext(p); ext == ".html" || ext == ".htm" {
			p = strings.TrimSuffix(p, ext)
		}
		p += ".md"
	}

	return path.Join(u.Hostname(), p), nil
}
