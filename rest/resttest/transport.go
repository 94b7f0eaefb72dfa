package resttest

import (
	"context"
	"os"
	"path/filepath"
	"slices"

	"github.com/seb7887/simplerest/rest"
)

// MockResponse is the canned response returned for an expected request.
type MockResponse struct {
	StatusCode int
	Body       []byte
}

// NewMockResponse returns a response with the given status and body.
func NewMockResponse(statusCode int, body []byte) MockResponse {
	return MockResponse{StatusCode: statusCode, Body: body}
}

// LoadMockResponse reads the body from sourceDir/filename.json.
// It returns nil if the file cannot be read.
func LoadMockResponse(statusCode int, filename, sourceDir string) *MockResponse {
	body, err := os.ReadFile(filepath.Join(sourceDir, filename+".json"))
	if err != nil {
		return nil
	}
	return &MockResponse{StatusCode: statusCode, Body: body}
}

// ExpectedRequest is an expected call and the response it receives.
type ExpectedRequest struct {
	URL      string
	Method   string
	Response MockResponse
}

// MockTransport is a rest.Transport that answers from a queue of expected
// requests instead of the network. Every received request is recorded.
//
// MockTransport is not safe for concurrent use: calls issued against the same
// instance must be serialized by the test.
type MockTransport struct {
	rest.Base

	expected []ExpectedRequest
	received []rest.Request
}

var _ rest.Transport = (*MockTransport)(nil)

// NewMockTransport creates a mock transport for env with the given processors.
func NewMockTransport(env rest.Environment, processors ...rest.RequestProcessor) *MockTransport {
	m := &MockTransport{}
	m.Base = rest.NewBase(env, m, processors...)
	return m
}

// Expect queues an expected request.
func (m *MockTransport) Expect(expected ExpectedRequest) {
	m.expected = append(m.expected, expected)
}

// AllExpectedRequestsReceived reports whether every expected request was consumed.
func (m *MockTransport) AllExpectedRequestsReceived() bool {
	return len(m.expected) == 0
}

// ExpectedRequests returns the expectations not consumed yet, in order.
func (m *MockTransport) ExpectedRequests() []ExpectedRequest {
	return append([]ExpectedRequest(nil), m.expected...)
}

// ReceivedRequests returns every request passed to Execute, in order.
func (m *MockTransport) ReceivedRequests() []rest.Request {
	return append([]rest.Request(nil), m.received...)
}

// LastRequest returns the most recent request, or false if none was received.
func (m *MockTransport) LastRequest() (rest.Request, bool) {
	if len(m.received) == 0 {
		return rest.Request{}, false
	}
	return m.received[len(m.received)-1], true
}

// Clear resets both the expectation queue and the received log.
func (m *MockTransport) Clear() {
	m.expected = nil
	m.received = nil
}

// Execute implements rest.Transport.
//
// The first expectation matching the request URL and method is removed from the
// queue and its response returned. A matched response whose status is not in
// expectedStatusCodes fails with an *rest.HTTPError carrying that status; a request
// without a match fails with status 400.
func (m *MockTransport) Execute(_ context.Context, req rest.Request, expectedStatusCodes []int) ([]byte, error) {
	m.received = append(m.received, req)

	if req.URL == nil {
		return nil, &rest.RequestError{Err: rest.ErrUnsupportedURL, Method: req.Method, Cause: rest.CauseTransport}
	}
	url := req.URL.String()

	for i, e := range m.expected {
		if e.URL != url || e.Method != req.Method {
			continue
		}

		m.expected = slices.Delete(m.expected, i, i+1)

		if !slices.Contains(expectedStatusCodes, e.Response.StatusCode) {
			return nil, &rest.HTTPError{Code: e.Response.StatusCode}
		}
		return e.Response.Body, nil
	}

	return nil, &rest.HTTPError{Code: rest.StatusBadRequest}
}
