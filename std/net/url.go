// Package net is the networking collaborator of the browser: URL parsing and a
// plain HTTP client that hands back whole responses.
package net

import (
	"net/url"
	"strconv"
	"strings"

	"saba/pkg/core"
)

const defaultPort = 80

// URL is a parsed http URL. Path always starts with "/" and keeps the query.
type URL struct {
	Host string
	Port uint16
	Path string
}

// ParseURL parses http://host[:port][/path][?query]. Any other scheme, a
// missing host or a bad port is ErrUnexpectedInput.
func ParseURL(raw string) (URL, error) {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(strings.ToLower(raw), "http://") {
		return URL{}, core.Errorf(core.ErrUnexpectedInput, "only http is supported: %q", raw)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return URL{}, core.Errorf(core.ErrUnexpectedInput, "parsing url %q: %w", raw, err)
	}
	if u.Hostname() == "" {
		return URL{}, core.Errorf(core.ErrUnexpectedInput, "missing host: %q", raw)
	}

	port := uint64(defaultPort)
	if p := u.Port(); p != "" {
		port, err = strconv.ParseUint(p, 10, 16)
		if err != nil || port == 0 {
			return URL{}, core.Errorf(core.ErrUnexpectedInput, "invalid port %q", p)
		}
	}

	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}
	if u.RawQuery != "" {
		path += "?" + u.RawQuery
	}
	return URL{Host: u.Hostname(), Port: uint16(port), Path: path}, nil
}

// String formats u back into an absolute URL. The default port is omitted.
func (u URL) String() string {
	host := u.Host
	if strings.Contains(host, ":") {
		host = "[" + host + "]"
	}
	if u.Port != defaultPort {
		host += ":" + strconv.Itoa(int(u.Port))
	}
	return "http://" + host + u.Path
}

// ResolveURL resolves a possibly-relative reference against base.
// If ref is already absolute, it is returned as-is.
func ResolveURL(base, ref string) string {
	baseURL, err := url.Parse(base)
	if err != nil {
		return ref
	}
	refURL, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return baseURL.ResolveReference(refURL).String()
}

// IsNetworkURL reports whether s looks like an http or https URL.
func IsNetworkURL(s string) bool {
	s = strings.ToLower(s)
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
