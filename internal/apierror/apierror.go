// Package apierror provides standardized error response structures for the API.
// All errors returned to clients go through this package to ensure consistency
// and to prevent leaking internal details (stack traces, DB errors, etc.).
package apierror

import (
	"errors"
	"net/http"

	"github.com/NE0NOE/Veterinaria-gestor-sub002/internal/service"
)

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Error string `json:"error"`
}

func New(msg string) *APIError {
	return &APIError{Error: msg}
}

// Validation wraps multiple field errors.
type ValidationError struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Error: "Error de validacion", Fields: fields}
}

// Status maps a gate or workflow error to its HTTP status code.
func Status(err error) int {
	switch service.KindOf(err) {
	case service.KindUnauthenticated:
		return http.StatusUnauthorized
	case service.KindUnauthorized, service.KindForbidden:
		return http.StatusForbidden
	case service.KindInvalidRequest:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// From builds the response body for a gate or workflow error.
func From(err error) interface{} {
	var ae *service.AdminError
	if errors.As(err, &ae) && len(ae.Fields) > 0 {
		return &ValidationError{Error: ae.Msg, Fields: ae.Fields}
	}
	return New(service.MessageOf(err))
}
