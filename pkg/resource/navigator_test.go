package resource

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"saba/pkg/core"
	"saba/std/net"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type request struct {
	Host string
	Port uint16
	Path string
}

// fakeFetcher answers from a table keyed by path and records every request.
type fakeFetcher struct {
	responses map[string]*net.Response
	err       error
	requests  []request
}

func (f *fakeFetcher) Get(_ context.Context, host string, port uint16, path string) (*net.Response, error) {
	f.requests = append(f.requests, request{host, port, path})
	if f.err != nil {
		return nil, f.err
	}
	if resp, ok := f.responses[path]; ok {
		return resp, nil
	}
	return &net.Response{StatusCode: 404, Reason: "Not Found"}, nil
}

func redirect(code int, location string) *net.Response {
	return &net.Response{StatusCode: code, Headers: []net.Header{{Name: "Location", Value: location}}}
}

func okResponse(body string) *net.Response {
	return &net.Response{StatusCode: 200, Reason: "OK", Body: body}
}

func TestNavigate_Plain(t *testing.T) {
	f := &fakeFetcher{responses: map[string]*net.Response{"/test.html": okResponse("<p>hi</p>")}}
	res, err := NewNavigator(f).Navigate(context.Background(), "http://127.0.0.1:8000/test.html")
	require.NoError(t, err)

	assert.Equal(t, "<p>hi</p>", res.Response.Body)
	assert.Equal(t, "http://127.0.0.1:8000/test.html", res.URL)
	assert.Equal(t, []request{{"127.0.0.1", 8000, "/test.html"}}, f.requests)
}

func TestNavigate_FollowsOneRedirect(t *testing.T) {
	for _, code := range []int{301, 302, 303, 307, 308} {
		f := &fakeFetcher{responses: map[string]*net.Response{
			"/":    redirect(code, "http://other.test/next"),
			"/next": okResponse("moved"),
		}}
		res, err := NewNavigator(f).Navigate(context.Background(), "http://example.com/")
		require.NoError(t, err, "%d", code)

		assert.Equal(t, "moved", res.Response.Body, "%d", code)
		assert.Equal(t, "http://other.test/next", res.URL)
		assert.Equal(t, []request{{"example.com", 80, "/"}, {"other.test", 80, "/next"}}, f.requests)
	}
}

func TestNavigate_RelativeLocation(t *testing.T) {
	f := &fakeFetcher{responses: map[string]*net.Response{
		"/a/b":     redirect(302, "c?x=1"),
		"/a/c?x=1": okResponse("relative"),
	}}
	res, err := NewNavigator(f).Navigate(context.Background(), "http://example.com:8080/a/b")
	require.NoError(t, err)

	assert.Equal(t, "relative", res.Response.Body)
	assert.Equal(t, request{"example.com", 8080, "/a/c?x=1"}, f.requests[1])
}

func TestNavigate_NoRedirectLoop(t *testing.T) {
	f := &fakeFetcher{responses: map[string]*net.Response{
		"/loop": redirect(302, "/loop"),
	}}
	res, err := NewNavigator(f).Navigate(context.Background(), "http://example.com/loop")
	require.NoError(t, err)

	assert.Equal(t, 302, res.Response.StatusCode)
	assert.Len(t, f.requests, 2)
}

func TestNavigate_RedirectWithoutLocation(t *testing.T) {
	f := &fakeFetcher{responses: map[string]*net.Response{"/": {StatusCode: 302}}}
	res, err := NewNavigator(f).Navigate(context.Background(), "http://example.com/")
	require.NoError(t, err)

	assert.Equal(t, 302, res.Response.StatusCode)
	assert.Len(t, f.requests, 1)
}

func TestNavigate_Errors(t *testing.T) {
	_, err := NewNavigator(&fakeFetcher{}).Navigate(context.Background(), "https://example.com/")
	assert.ErrorIs(t, err, core.ErrUnexpectedInput)

	f := &fakeFetcher{err: core.Errorf(core.ErrNetwork, "refused")}
	_, err = NewNavigator(f).Navigate(context.Background(), "http://example.com/")
	assert.ErrorIs(t, err, core.ErrNetwork)

	f = &fakeFetcher{responses: map[string]*net.Response{"/": redirect(302, "ftp://x/")}}
	_, err = NewNavigator(f).Navigate(context.Background(), "http://example.com/")
	assert.True(t, errors.Is(err, core.ErrUnexpectedInput))
}

func TestNavigate_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "index.html")
	require.NoError(t, os.WriteFile(path, []byte("<p>local</p>"), 0o644))

	f := &fakeFetcher{}
	nav := NewNavigator(f)
	for _, dest := range []string{path, "file://" + path} {
		res, err := nav.Navigate(context.Background(), dest)
		require.NoError(t, err, dest)
		assert.Equal(t, "<p>local</p>", res.Response.Body)
		ct, err := res.Response.HeaderValue("Content-Type")
		require.NoError(t, err)
		assert.Contains(t, ct, "text/html")
	}
	assert.Empty(t, f.requests)

	_, err := nav.Navigate(context.Background(), filepath.Join(dir, "missing.html"))
	assert.ErrorIs(t, err, core.ErrNetwork)
}

func TestNavigator_Resolve(t *testing.T) {
	nav := NewNavigator(&fakeFetcher{})
	assert.Equal(t, "http://a.test/x/next", nav.Resolve("http://a.test/x/page", "next"))
	assert.Equal(t, "http://b.test/", nav.Resolve("http://a.test/x/page", "http://b.test/"))
	assert.Equal(t, "http://a.test/other", nav.Resolve("/tmp/site/index.html", "http://a.test/other"))
	assert.Equal(t, "/tmp/site/about.html", nav.Resolve("/tmp/site/index.html", "about.html"))
	assert.Equal(t, "/tmp/site/about.html", nav.Resolve("file:///tmp/site/index.html", "about.html"))
	assert.Equal(t, "/etc/x.html", nav.Resolve("/tmp/site/index.html", "/etc/x.html"))
}

func TestIsFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile("page.html", []byte("<p>x</p>"), 0o644))

	tests := []struct {
		dest string
		want bool
	}{
		{"file:///tmp/a.html", true},
		{"/tmp/missing.html", true},
		{"./missing.html", true},
		{"page.html", true},
		{"example.com", false},
		{"http://example.com/", false},
		{"https://example.com/", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsFile(tt.dest), tt.dest)
	}
}

func TestNavigate_BareHostIsNotAFile(t *testing.T) {
	t.Chdir(t.TempDir())
	f := &fakeFetcher{}
	_, err := NewNavigator(f).Navigate(context.Background(), "example.com")
	assert.ErrorIs(t, err, core.ErrUnexpectedInput)
	assert.NotErrorIs(t, err, core.ErrNetwork)
	assert.Empty(t, f.requests)
}
