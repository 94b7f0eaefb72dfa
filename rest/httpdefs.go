package rest

import (
	"net/http"
	"slices"
	"strings"
)

// HTTP methods used by the verb helpers.
const (
	MethodGet    = http.MethodGet
	MethodPut    = http.MethodPut
	MethodPost   = http.MethodPost
	MethodDelete = http.MethodDelete
)

// Status codes accepted by the verb helpers.
const (
	StatusOK         = http.StatusOK
	StatusCreated    = http.StatusCreated
	StatusNoContent  = http.StatusNoContent
	StatusBadRequest = http.StatusBadRequest
)

// Header names set by the transport or by common request processors.
const (
	HeaderContentType   = "Content-Type"
	HeaderContentLength = "Content-Length"
	HeaderAccept        = "Accept"
	HeaderLocation      = "Location"
	HeaderAuthorization = "Authorization"
)

// ContentTypeJSON is the only payload format the transport speaks.
const ContentTypeJSON = "application/json"

var (
	getStatusCodes    = []int{StatusOK}
	sendStatusCodes   = []int{StatusCreated, StatusOK, StatusNoContent}
	deleteStatusCodes = []int{StatusOK, StatusNoContent}
)

// GetStatusCodes returns the status codes accepted for GET.
func GetStatusCodes() []int { return slices.Clone(getStatusCodes) }

// SendStatusCodes returns the status codes accepted for PUT and POST.
func SendStatusCodes() []int { return slices.Clone(sendStatusCodes) }

// DeleteStatusCodes returns the status codes accepted for DELETE.
func DeleteStatusCodes() []int { return slices.Clone(deleteStatusCodes) }

// StatusReason returns a lowercase human-readable reason for an HTTP status code,
// e.g. "bad request" for 400. Codes without a registered reason fall back to the
// reason of their class.
func StatusReason(code int) string {
	if text := http.StatusText(code); text != "" {
		return strings.ToLower(text)
	}

	switch {
	case code >= 100 && code < 200:
		return "informational"
	case code >= 200 && code < 300:
		return "success"
	case code >= 300 && code < 400:
		return "redirected"
	case code >= 400 && code < 500:
		return "client error"
	case code >= 500 && code < 600:
		return "server error"
	default:
		return "unknown status code"
	}
}
