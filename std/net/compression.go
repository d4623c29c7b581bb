package net

import (
	"compress/gzip"
	"compress/zlib"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/andybalholm/brotli"
)

// decompressor advertises gzip, deflate and br, then decodes the body so
// callers always see the identity encoding.
type decompressor struct {
	next http.RoundTripper
}

func (d *decompressor) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("Accept-Encoding") == "" {
		req.Header.Set("Accept-Encoding", "gzip, deflate, br")
	}
	resp, err := d.next.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	if err := decompress(resp); err != nil {
		_ = resp.Body.Close()
		return nil, err
	}
	return resp, nil
}

type bodyCloser struct {
	io.Reader
	closers []io.Closer
}

func (b *bodyCloser) Close() error {
	var first error
	for _, c := range b.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func decompress(resp *http.Response) error {
	encoding := strings.ToLower(strings.TrimSpace(resp.Header.Get("Content-Encoding")))
	if resp.Body == nil || encoding == "" || encoding == "identity" {
		return nil
	}

	body := &bodyCloser{closers: []io.Closer{resp.Body}}
	switch encoding {
	case "gzip", "x-gzip":
		r, err := gzip.NewReader(resp.Body)
		if err != nil {
			return fmt.Errorf("gzip: %w", err)
		}
		body.Reader = r
		body.closers = append([]io.Closer{r}, body.closers...)
	case "deflate":
		r, err := zlib.NewReader(resp.Body)
		if err != nil {
			return fmt.Errorf("deflate: %w", err)
		}
		body.Reader = r
		body.closers = append([]io.Closer{r}, body.closers...)
	case "br":
		body.Reader = brotli.NewReader(resp.Body)
	default:
		return fmt.Errorf("unsupported Content-Encoding %q", encoding)
	}

	resp.Body = body
	resp.Header.Del("Content-Encoding")
	resp.Header.Del("Content-Length")
	resp.ContentLength = -1
	resp.Uncompressed = true
	return nil
}
