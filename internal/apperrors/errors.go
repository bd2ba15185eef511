// Package apperrors defines the typed errors the service layer reports to callers.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError represents a structured API error response
type APIError struct {
	StatusCode int    `json:"statusCode"`
	ErrorCode  string `json:"errorCode"`
	Message    string `json:"message"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// New creates a new APIError with the given parameters
func New(statusCode int, errorCode, message string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
	}
}

// BadRequest creates a 400 error for malformed or missing parameters
func BadRequest(format string, args ...interface{}) *APIError {
	return New(http.StatusBadRequest, "BAD_REQUEST", fmt.Sprintf(format, args...))
}

// Unauthorized creates a 401 error for missing or invalid credentials
func Unauthorized(format string, args ...interface{}) *APIError {
	return New(http.StatusUnauthorized, "UNAUTHORIZED", fmt.Sprintf(format, args...))
}

// NotFound creates a 404 error for absent reference data
func NotFound(format string, args ...interface{}) *APIError {
	return New(http.StatusNotFound, "NOT_FOUND", fmt.Sprintf(format, args...))
}

// Conflict creates a 409 error for uniqueness violations
func Conflict(format string, args ...interface{}) *APIError {
	return New(http.StatusConflict, "CONFLICT", fmt.Sprintf(format, args...))
}

// InsufficientData creates a 422 error for calendar history shorter than requested
func InsufficientData(format string, args ...interface{}) *APIError {
	return New(http.StatusUnprocessableEntity, "INSUFFICIENT_DATA", fmt.Sprintf(format, args...))
}

// AsAPIError extracts an *APIError from an error chain, if present
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
