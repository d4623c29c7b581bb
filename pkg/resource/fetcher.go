package resource

import (
	"context"
	"mime"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"saba/pkg/core"
	"saba/std/net"
)

// Fetcher retrieves a document from an http server.
type Fetcher interface {
	Get(ctx context.Context, host string, port uint16, path string) (*net.Response, error)
}

// FileFetcher reads documents from the local file system. It accepts file://
// URLs and plain paths.
type FileFetcher struct{}

// IsFile reports whether dest names a local file rather than a network URL:
// a file:// URL, or a scheme-less path that is absolute, starts with a dot or
// exists. A bare host such as example.com is not a file.
func IsFile(dest string) bool {
	switch {
	case strings.HasPrefix(dest, "file://"):
		return true
	case hasScheme(dest), dest == "":
		return false
	case filepath.IsAbs(dest), strings.HasPrefix(dest, "."):
		return true
	}
	_, err := os.Stat(dest)
	return err == nil
}

func hasScheme(dest string) bool {
	return strings.Contains(dest, "://")
}

// Fetch reads dest and wraps it in a 200 response.
func (FileFetcher) Fetch(dest string) (*net.Response, error) {
	path := dest
	if strings.HasPrefix(dest, "file://") {
		u, err := url.Parse(dest)
		if err != nil {
			return nil, core.Errorf(core.ErrUnexpectedInput, "parsing %q: %w", dest, err)
		}
		path = u.Path
	}

	body, err := os.ReadFile(path)
	if err != nil {
		return nil, core.Errorf(core.ErrNetwork, "reading %s: %w", path, err)
	}

	contentType := mime.TypeByExtension(filepath.Ext(path))
	if contentType == "" {
		contentType = "text/html; charset=utf-8"
	}
	return &net.Response{
		Version:    "HTTP/1.1",
		StatusCode: 200,
		Reason:     "OK",
		Headers:    []net.Header{{Name: "Content-Type", Value: contentType}},
		Body:       string(body),
	}, nil
}

func resolveFile(base, href string) string {
	if strings.HasPrefix(href, "file://") {
		return href
	}
	base = strings.TrimPrefix(base, "file://")
	if filepath.IsAbs(href) {
		return href
	}
	return filepath.Join(filepath.Dir(base), href)
}
