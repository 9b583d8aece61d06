package icu

import (
	"fmt"
	"net/http"
)

// ErrorKind classifies gateway failures so the tool layer can render
// each one as prose without inspecting error strings.
type ErrorKind string

const (
	// KindMissingCredential: no API key supplied and no default configured.
	// The request is short-circuited before any network call.
	KindMissingCredential ErrorKind = "missing-credential"
	// KindRequest: transport-level failure (connection refused, timeout).
	KindRequest ErrorKind = "request-error"
	// KindHTTPStatus: the API answered with a non-2xx status.
	KindHTTPStatus ErrorKind = "http-error"
	// KindDecode: a 2xx response whose body is not valid JSON.
	KindDecode ErrorKind = "decode-error"
)

// Error is the uniform error value produced by the gateway.
type Error struct {
	Kind       ErrorKind
	StatusCode int // set only for KindHTTPStatus
	Message    string
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s (%d): %s", e.Kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// statusMessage returns the canned human-readable message for a status
// code, falling back to the raw response body for unmapped codes.
func statusMessage(code int, body string) string {
	switch code {
	case http.StatusUnauthorized:
		return "401 Unauthorized: Please check your API key."
	case http.StatusForbidden:
		return "403 Forbidden: You may not have permission to access this resource."
	case http.StatusNotFound:
		return "404 Not Found: The requested endpoint or ID doesn't exist."
	case http.StatusUnprocessableEntity:
		return "422 Unprocessable Entity: The server couldn't process the request (invalid parameters or unsupported operation)."
	case http.StatusTooManyRequests:
		return "429 Too Many Requests: Too many requests in a short time period."
	case http.StatusInternalServerError:
		return "500 Internal Server Error: The Intervals.icu server encountered an internal error."
	case http.StatusServiceUnavailable:
		return "503 Service Unavailable: The Intervals.icu server might be down or undergoing maintenance."
	default:
		return body
	}
}
