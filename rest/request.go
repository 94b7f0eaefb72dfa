package rest

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"
)

// Headers is a convenience type for HTTP headers. Keys are stored as given.
type Headers map[string]string

// Request is the wire-level description of a single call. It is a value: use the
// With* methods to derive modified copies instead of mutating shared state.
type Request struct {
	// URL is the fully qualified request URL
	URL *url.URL

	// Method is the HTTP method (GET, PUT, POST, DELETE)
	Method string

	// Header holds the request headers
	Header Headers

	// Body is the request payload, nil when the call has none
	Body []byte
}

// Clone returns a deep copy of the request.
func (r Request) Clone() Request {
	out := r
	if r.URL != nil {
		u := *r.URL
		out.URL = &u
	}
	if r.Header != nil {
		out.Header = make(Headers, len(r.Header))
		for k, v := range r.Header {
			out.Header[k] = v
		}
	}
	if r.Body != nil {
		out.Body = append([]byte(nil), r.Body...)
	}
	return out
}

// WithHeaders returns a copy of the request with fields merged into its headers.
// Values in fields overwrite existing values for the same key.
func (r Request) WithHeaders(fields Headers) Request {
	out := r.Clone()
	if out.Header == nil {
		out.Header = make(Headers, len(fields))
	}
	for k, v := range fields {
		out.Header[k] = v
	}
	return out
}

// WithHeader returns a copy of the request with a single header set.
func (r Request) WithHeader(key, value string) Request {
	return r.WithHeaders(Headers{key: value})
}

// WithURL returns a copy of the request targeting u.
func (r Request) WithURL(u *url.URL) Request {
	out := r.Clone()
	out.URL = u
	return out
}

// toHTTPRequest converts a Request to a standard http.Request bound to ctx.
func (r Request) toHTTPRequest(ctx context.Context) (*http.Request, error) {
	if r.URL == nil {
		return nil, ErrUnsupportedURL
	}

	var body io.Reader
	if len(r.Body) > 0 {
		body = bytes.NewReader(r.Body)
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, r.URL.String(), body)
	if err != nil {
		return nil, err
	}

	for key, value := range r.Header {
		req.Header.Set(key, value)
	}
	if cl, ok := r.Header[HeaderContentLength]; ok {
		if n, err := strconv.ParseInt(cl, 10, 64); err == nil {
			req.ContentLength = n
		}
	}

	return req, nil
}
