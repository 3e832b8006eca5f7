package baas

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"ambientefest/internal/normalize"
)

// Error codes returned by the BaaS in {code, message} bodies.
const (
	CodeNotFound     = "ERROR_CODE_NOT_FOUND"
	CodeAccessDenied = "ERROR_CODE_ACCESS_DENIED"
	CodeInputError   = "ERROR_CODE_INPUT_ERROR"
)

// APIError is a non-2xx answer from the BaaS.
type APIError struct {
	Method  string
	Path    string
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("baas %s %s: status %d", e.Method, e.Path, e.Status)
	if e.Code != "" {
		msg += " " + e.Code
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// MessageContains reports whether the error message contains s, ignoring case.
func (e *APIError) MessageContains(s string) bool {
	return strings.Contains(strings.ToLower(e.Message), strings.ToLower(s))
}

func newAPIError(method, path string, status int, body []byte) *APIError {
	e := &APIError{Method: method, Path: path, Status: status}
	if r, ok := normalize.Object(body); ok {
		e.Code = r.Str("code")
		e.Message = r.Str("message", "error")
	}
	if e.Message == "" {
		e.Message = http.StatusText(status)
	}
	return e
}

// AsAPIError unwraps err to an *APIError.
func AsAPIError(err error) (*APIError, bool) {
	var e *APIError
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsNotFound matches HTTP 404 and the BaaS not-found code.
func IsNotFound(err error) bool {
	e, ok := AsAPIError(err)
	return ok && (e.Status == http.StatusNotFound || e.Code == CodeNotFound)
}

// IsUnauthorized matches HTTP 401, meaning the BaaS token is no longer valid.
func IsUnauthorized(err error) bool {
	return IsStatus(err, http.StatusUnauthorized)
}

// IsStatus reports whether err is an APIError with one of the given statuses.
func IsStatus(err error, statuses ...int) bool {
	e, ok := AsAPIError(err)
	if !ok {
		return false
	}
	for _, s := range statuses {
		if e.Status == s {
			return true
		}
	}
	return false
}

func IsServerError(err error) bool {
	e, ok := AsAPIError(err)
	return ok && e.Status >= 500
}

// HasCode reports whether err carries the given BaaS error code.
func HasCode(err error, code string) bool {
	e, ok := AsAPIError(err)
	return ok && e.Code == code
}
