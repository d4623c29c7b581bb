package net

import (
	"bufio"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"saba/pkg/core"
)

// Header is one response header line.
type Header struct {
	Name  string
	Value string
}

// Response is a complete HTTP response with a UTF-8 body.
type Response struct {
	Version    string
	StatusCode int
	Reason     string
	Headers    []Header
	Body       string
}

// HeaderValue returns the first header named name, compared case-insensitively.
func (r *Response) HeaderValue(name string) (string, error) {
	for _, h := range r.Headers {
		if strings.EqualFold(h.Name, name) {
			return h.Value, nil
		}
	}
	return "", core.Errorf(core.ErrUnexpectedInput, "no %s header", name)
}

// IsRedirect reports whether the status asks the client to go elsewhere.
func (r *Response) IsRedirect() bool {
	switch r.StatusCode {
	case http.StatusMovedPermanently, http.StatusFound, http.StatusSeeOther,
		http.StatusTemporaryRedirect, http.StatusPermanentRedirect:
		return true
	}
	return false
}

func newResponse(resp *http.Response, body string) *Response {
	names := make([]string, 0, len(resp.Header))
	for name := range resp.Header {
		names = append(names, name)
	}
	sort.Strings(names)

	var headers []Header
	for _, name := range names {
		for _, v := range resp.Header[name] {
			headers = append(headers, Header{Name: name, Value: v})
		}
	}
	return &Response{
		Version:    resp.Proto,
		StatusCode: resp.StatusCode,
		Reason:     strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)+" "),
		Headers:    headers,
		Body:       body,
	}
}

// ParseResponse reads a raw HTTP/1.x response as it appears on the wire.
// Bare "\n" line endings are accepted.
func ParseResponse(raw string) (*Response, error) {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	head, body, _ := strings.Cut(raw, "\n\n")

	sc := bufio.NewScanner(strings.NewReader(head))
	if !sc.Scan() {
		return nil, core.Errorf(core.ErrUnexpectedInput, "empty response")
	}
	status := strings.SplitN(sc.Text(), " ", 3)
	if len(status) < 2 || !strings.HasPrefix(status[0], "HTTP/") {
		return nil, core.Errorf(core.ErrUnexpectedInput, "invalid status line %q", sc.Text())
	}
	code, err := strconv.Atoi(status[1])
	if err != nil {
		return nil, core.Errorf(core.ErrUnexpectedInput, "invalid status code %q", status[1])
	}
	resp := &Response{Version: status[0], StatusCode: code, Body: body}
	if len(status) == 3 {
		resp.Reason = status[2]
	}

	for sc.Scan() {
		name, value, ok := strings.Cut(sc.Text(), ":")
		if !ok {
			continue
		}
		resp.Headers = append(resp.Headers, Header{
			Name:  strings.TrimSpace(name),
			Value: strings.TrimSpace(value),
		})
	}
	return resp, nil
}
