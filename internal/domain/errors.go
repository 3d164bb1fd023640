package domain

import (
	"errors"
	"sort"
	"strings"
)

// ErrNotFound is returned by service functions when the requested resource
// does not exist — either in the local reference store or upstream.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing required field, end date before start date).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrUpstream is returned when the platform API rejects or fails a request
// that was locally valid. Handlers should map this to HTTP 502 Bad Gateway.
var ErrUpstream = errors.New("upstream error")

// ValidationError carries the per-field messages produced by the form
// validation engine. It unwraps to ErrValidation so callers can use
// errors.Is while handlers render the full field map.
type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	return "validation error: " + strings.Join(e.messages(), "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// messages returns the field messages sorted by field name for stable output.
func (e *ValidationError) messages() []string {
	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = f + ": " + e.Fields[f]
	}
	return out
}
