package net

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"saba/pkg/core"
	"saba/pkg/observability"

	"go.uber.org/zap"
	"golang.org/x/net/html/charset"
)

// DefaultUserAgent is sent when the client is built without one.
const DefaultUserAgent = "saba/0.1"

// Client performs single GET requests. Redirects are returned to the caller
// rather than followed.
type Client struct {
	http      *http.Client
	userAgent string
}

// NewClient creates a client with the given request timeout and User-Agent.
func NewClient(timeout time.Duration, userAgent string) *Client {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.DisableCompression = true
	return &Client{
		http: &http.Client{
			Timeout:   timeout,
			Transport: &decompressor{next: transport},
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		userAgent: userAgent,
	}
}

// Get fetches path from host:port. Any status code is a successful response;
// only transport failures are errors, of kind ErrNetwork.
func (c *Client) Get(ctx context.Context, host string, port uint16, path string) (*Response, error) {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	target := URL{Host: host, Port: port, Path: path}.String()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, core.Errorf(core.ErrNetwork, "creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, core.Errorf(core.ErrNetwork, "fetching %s: %w", target, err)
	}
	defer resp.Body.Close()

	body, err := readBody(resp)
	if err != nil {
		return nil, core.Errorf(core.ErrNetwork, "reading response body: %w", err)
	}

	observability.GetLogger().Debug("received response",
		zap.String("url", target),
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(body)))
	return newResponse(resp, body), nil
}

// readBody returns the body as UTF-8. Textual bodies are converted from the
// charset named in Content-Type or sniffed from the content.
func readBody(resp *http.Response) (string, error) {
	contentType := resp.Header.Get("Content-Type")
	if !isText(contentType) {
		b, err := io.ReadAll(resp.Body)
		return string(b), err
	}
	r, err := charset.NewReader(resp.Body, contentType)
	if err != nil {
		return "", fmt.Errorf("charset: %w", err)
	}
	b, err := io.ReadAll(r)
	return string(b), err
}

func isText(contentType string) bool {
	if contentType == "" {
		return true
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return strings.HasPrefix(mediaType, "text/") || strings.HasSuffix(mediaType, "xml")
}
