package rest

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
)

// scheme used for every resolved URL.
const scheme = "https"

// Environment is a deployment target against which endpoints resolve.
type Environment interface {
	// Hostname is the host name for the environment.
	Hostname() string

	// PortNumber is the port for the environment; ok is false when the
	// scheme's default port should be used.
	PortNumber() (port int, ok bool)
}

// Endpoint is a logical API target that can be resolved to a URL.
type Endpoint interface {
	// URL resolves the fully qualified URL for the endpoint in env.
	URL(ctx context.Context, env Environment) (*url.URL, error)
}

// EndpointFunc adapts a function to the Endpoint interface.
type EndpointFunc func(ctx context.Context, env Environment) (*url.URL, error)

// URL implements Endpoint.
func (f EndpointFunc) URL(ctx context.Context, env Environment) (*url.URL, error) {
	return f(ctx, env)
}

// StaticEnvironment is an Environment with fixed values. A zero Port means no
// explicit port.
type StaticEnvironment struct {
	Host string
	Port int
}

// Hostname implements Environment.
func (e StaticEnvironment) Hostname() string { return e.Host }

// PortNumber implements Environment.
func (e StaticEnvironment) PortNumber() (int, bool) { return e.Port, e.Port != 0 }

// BaseURL builds the https root URL of env.
func BaseURL(env Environment) (*url.URL, error) {
	if env == nil {
		return nil, fmt.Errorf("%w: no environment", ErrUnsupportedURL)
	}

	host := env.Hostname()
	if host == "" || strings.ContainsAny(host, "/?#@ ") {
		return nil, fmt.Errorf("%w: invalid hostname %q", ErrUnsupportedURL, host)
	}

	if port, ok := env.PortNumber(); ok {
		if port <= 0 || port > 65535 {
			return nil, fmt.Errorf("%w: invalid port %d", ErrUnsupportedURL, port)
		}
		host = net.JoinHostPort(host, strconv.Itoa(port))
	}

	u, err := url.Parse(scheme + "://" + host)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedURL, err)
	}
	return u, nil
}

// Param is a query parameter that is only attached when Value is set.
type Param struct {
	Name  string
	Value *string
}

// StringParam returns a Param for an optional string value.
func StringParam(name string, value *string) Param {
	return Param{Name: name, Value: value}
}

// IntParam returns a Param for an optional integer value.
func IntParam(name string, value *int) Param {
	if value == nil {
		return Param{Name: name}
	}
	s := strconv.Itoa(*value)
	return Param{Name: name, Value: &s}
}

// Route is a reusable Endpoint made of a static path, an optional numeric
// identifier and optional query parameters.
//
//	Route{Path: "/api/users/"}                            -> /api/users/
//	Route{Path: "/api/users/", ID: &id}                   -> /api/users/2
//	Route{Path: "/api/users/", Query: []Param{IntParam("page", &p)}} -> /api/users/?page=1
type Route struct {
	Path  string
	ID    *int
	Query []Param
}

// URL implements Endpoint.
func (r Route) URL(_ context.Context, env Environment) (*url.URL, error) {
	base, err := BaseURL(env)
	if err != nil {
		return nil, err
	}

	path := r.Path
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if r.ID != nil {
		path = strings.TrimRight(path, "/") + "/" + strconv.Itoa(*r.ID)
	}

	ref := &url.URL{Path: path}
	query := url.Values{}
	for _, p := range r.Query {
		if p.Value != nil {
			query.Add(p.Name, *p.Value)
		}
	}
	if len(query) > 0 {
		ref.RawQuery = query.Encode()
	}

	return base.ResolveReference(ref), nil
}

// URLString is an Endpoint with a fixed absolute URL that ignores the environment.
type URLString string

// URL implements Endpoint.
func (s URLString) URL(_ context.Context, _ Environment) (*url.URL, error) {
	u, err := url.Parse(string(s))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedURL, err)
	}
	if !u.IsAbs() || u.Host == "" {
		return nil, fmt.Errorf("%w: %q is not absolute", ErrUnsupportedURL, string(s))
	}
	return u, nil
}
