package resttest

import (
	"bytes"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/seb7887/simplerest/rest"
)

// Route is a canned answer served by a Server. When Handler is set it takes
// precedence over StatusCode and Body.
type Route struct {
	Method     string
	Path       string
	StatusCode int
	Body       []byte
	Handler    gin.HandlerFunc
}

// RecordedRequest is a request received by a Server.
type RecordedRequest struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	Body   []byte
}

// Server is a TLS test server that answers registered routes, used to exercise
// rest.NetworkTransport end to end. Unknown routes answer 404 with a JSON message.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	requests []RecordedRequest
}

// NewServer starts a server for the given routes. Close it when done.
func NewServer(routes ...Route) *Server {
	gin.SetMode(gin.TestMode)

	s := &Server{}

	router := gin.New()
	router.Use(s.record())
	for _, route := range routes {
		router.Handle(route.Method, route.Path, handlerFor(route))
	}
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": rest.StatusReason(http.StatusNotFound)})
	})

	s.Server = httptest.NewTLSServer(router)
	return s
}

func handlerFor(route Route) gin.HandlerFunc {
	if route.Handler != nil {
		return route.Handler
	}
	return func(c *gin.Context) {
		status := route.StatusCode
		if status == 0 {
			status = http.StatusOK
		}
		if len(route.Body) == 0 {
			c.Status(status)
			return
		}
		c.Data(status, rest.ContentTypeJSON, route.Body)
	}
}

func (s *Server) record() gin.HandlerFunc {
	return func(c *gin.Context) {
		body, _ := io.ReadAll(c.Request.Body)
		c.Request.Body = io.NopCloser(bytes.NewReader(body))

		s.mu.Lock()
		s.requests = append(s.requests, RecordedRequest{
			Method: c.Request.Method,
			Path:   c.Request.URL.Path,
			Query:  c.Request.URL.Query(),
			Header: c.Request.Header.Clone(),
			Body:   body,
		})
		s.mu.Unlock()

		c.Next()
	}
}

// Environment returns an environment resolving to this server.
func (s *Server) Environment() rest.StaticEnvironment {
	u, _ := url.Parse(s.URL)
	host, port, _ := net.SplitHostPort(u.Host)
	p, _ := strconv.Atoi(port)
	return rest.StaticEnvironment{Host: host, Port: p}
}

// Requests returns every request received so far.
func (s *Server) Requests() []RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]RecordedRequest(nil), s.requests...)
}

// RequestCount returns the total number of requests handled by this server.
func (s *Server) RequestCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

// Reset clears the recorded requests.
func (s *Server) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = nil
}
