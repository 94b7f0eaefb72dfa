package rest

import (
	"errors"
	"fmt"
)

// ErrUnsupportedURL is returned when an endpoint and environment cannot form a valid
// absolute URL, or when a request reaches a transport without one.
var ErrUnsupportedURL = errors.New("unsupported URL")

// Causes reported by RequestError.
const (
	CauseResolve   = "resolve"
	CauseProcess   = "process"
	CauseEncode    = "encode"
	CauseTransport = "transport"
	CauseDecode    = "decode"
)

// HTTPError reports a response whose status code was not in the expected set.
// It carries no body.
type HTTPError struct {
	Code int
}

// Error returns the status reason for the code, e.g. "not found".
func (e *HTTPError) Error() string {
	return StatusReason(e.Code)
}

// RequestError wraps every failure that is not an HTTPError with the stage of the
// call that produced it.
type RequestError struct {
	// Err is the underlying error
	Err error

	// Method of the request, empty if the failure happened before it was built
	Method string

	// URL of the request, empty if the failure happened before it was resolved
	URL string

	// Cause is one of the Cause* constants
	Cause string
}

// Error implements the error interface.
func (e *RequestError) Error() string {
	if e.URL != "" {
		return fmt.Sprintf("rest: %s %s failed: %v (cause: %s)", e.Method, e.URL, e.Err, e.Cause)
	}
	return fmt.Sprintf("rest: request failed: %v (cause: %s)", e.Err, e.Cause)
}

// Unwrap returns the underlying error, allowing errors.Is and errors.As to work.
func (e *RequestError) Unwrap() error {
	return e.Err
}

func newRequestError(cause string, req *Request, err error) *RequestError {
	re := &RequestError{Err: err, Cause: cause}
	if req != nil {
		re.Method = req.Method
		if req.URL != nil {
			re.URL = req.URL.String()
		}
	}
	return re
}

// IsHTTPError checks if an error is an HTTPError.
func IsHTTPError(err error) bool {
	var e *HTTPError
	return errors.As(err, &e)
}

// StatusCode returns the code carried by an HTTPError, or 0 if err is not one.
func StatusCode(err error) int {
	var e *HTTPError
	if errors.As(err, &e) {
		return e.Code
	}
	return 0
}

// IsResolveError checks if an error happened while resolving the endpoint URL.
func IsResolveError(err error) bool { return hasCause(err, CauseResolve) }

// IsProcessError checks if an error was returned by a request processor.
func IsProcessError(err error) bool { return hasCause(err, CauseProcess) }

// IsEncodeError checks if an error happened while encoding a request body.
func IsEncodeError(err error) bool { return hasCause(err, CauseEncode) }

// IsTransportError checks if the underlying I/O failed without a usable status code.
func IsTransportError(err error) bool { return hasCause(err, CauseTransport) }

// IsDecodeError checks if a response body could not be decoded into the expected type.
func IsDecodeError(err error) bool { return hasCause(err, CauseDecode) }

func hasCause(err error, cause string) bool {
	var e *RequestError
	return errors.As(err, &e) && e.Cause == cause
}
