// Package resource resolves a destination typed by the user or clicked in a
// page into a response the browser can render.
package resource

import (
	"context"
	"strings"

	"saba/pkg/observability"
	"saba/std/net"

	"go.uber.org/zap"
)

// Result is the outcome of one navigation.
type Result struct {
	// URL is where the response came from, after any redirect.
	URL      string
	Response *net.Response
}

// Navigator fetches destinations and follows at most one redirect.
type Navigator struct {
	client Fetcher
	files  FileFetcher
}

func NewNavigator(client Fetcher) *Navigator {
	return &Navigator{client: client}
}

// Navigate fetches dest. A redirect status with a Location header is followed
// exactly once; whatever the second request returns is the result, even
// another redirect.
func (n *Navigator) Navigate(ctx context.Context, dest string) (*Result, error) {
	logger := observability.GetLogger()

	if IsFile(dest) {
		resp, err := n.files.Fetch(dest)
		if err != nil {
			return nil, err
		}
		return &Result{URL: dest, Response: resp}, nil
	}

	resp, err := n.get(ctx, dest)
	if err != nil {
		return nil, err
	}
	if !resp.IsRedirect() {
		return &Result{URL: dest, Response: resp}, nil
	}

	location, err := resp.HeaderValue("Location")
	if err != nil {
		return &Result{URL: dest, Response: resp}, nil
	}
	next := net.ResolveURL(dest, location)
	logger.Debug("following redirect",
		zap.String("from", dest),
		zap.String("to", next),
		zap.Int("status", resp.StatusCode))

	resp, err = n.get(ctx, next)
	if err != nil {
		return nil, err
	}
	return &Result{URL: next, Response: resp}, nil
}

// Resolve turns a link found on the page at base into an absolute destination.
func (n *Navigator) Resolve(base, href string) string {
	if IsFile(base) && (!hasScheme(href) || strings.HasPrefix(href, "file://")) {
		return resolveFile(base, href)
	}
	return net.ResolveURL(base, href)
}

func (n *Navigator) get(ctx context.Context, dest string) (*net.Response, error) {
	u, err := net.ParseURL(dest)
	if err != nil {
		return nil, err
	}
	return n.client.Get(ctx, u.Host, u.Port, u.Path)
}
