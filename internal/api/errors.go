// Package api provides the HTTP client for the race backend.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrUnauthorized indicates the session is missing or expired (HTTP 401)
	ErrUnauthorized = errors.New("unauthorized")

	// ErrConnectionFailed indicates the backend could not be reached
	ErrConnectionFailed = errors.New("connection failed")

	// ErrInvalidResponse indicates a response body that could not be decoded
	ErrInvalidResponse = errors.New("invalid response from backend")
)

// APIError is a non-success answer from the backend
type APIError struct {
	StatusCode int
	Endpoint   string
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s failed with status %d: %s", e.Endpoint, e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("%s failed with status %d", e.Endpoint, e.StatusCode)
}

// Is lets errors.Is(err, ErrUnauthorized) match a 401 answer
func (e *APIError) Is(target error) bool {
	return target == ErrUnauthorized && e.StatusCode == http.StatusUnauthorized
}

// NewAPIError creates a new API error from a response body
func NewAPIError(endpoint string, statusCode int, body []byte) *APIError {
	return &APIError{
		StatusCode: statusCode,
		Endpoint:   endpoint,
		Detail:     parseDetail(body),
	}
}

// Detail returns the server-supplied detail message carried by err, if any
func Detail(err error) (string, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail, true
	}
	return "", false
}

// IsConnectionError reports whether err is a transport failure
func IsConnectionError(err error) bool {
	return errors.Is(err, ErrConnectionFailed)
}

// parseDetail extracts {"detail": "..."}; structured details (validation
// error lists) are not meant for users and are dropped
func parseDetail(body []byte) string {
	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || len(payload.Detail) == 0 {
		return ""
	}

	var detail string
	if err := json.Unmarshal(payload.Detail, &detail); err != nil {
		return ""
	}
	return strings.TrimSpace(detail)
}
