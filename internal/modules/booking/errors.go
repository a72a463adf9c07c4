package booking

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrValidation   = errors.New("validation error")
	ErrInvalidRange = errors.New("check-out must be after check-in")
	ErrNotAvailable = errors.New("property not available for the selected dates")
	ErrMaxGuests    = errors.New("guest count exceeds property capacity")
	ErrNotFound     = errors.New("booking not found")
	ErrForbidden    = errors.New("forbidden")

	// Submission failures. Validation failures never reach the adapter;
	// these two cover the transport and server sides of a sent request.
	ErrNetwork  = errors.New("booking request could not be sent")
	ErrRejected = errors.New("booking rejected by server")

	ErrSubmitInFlight = errors.New("submission already in progress")
	ErrWrongStep      = errors.New("action not allowed at current step")
)

// ValidationError reports which draft fields block the
// payment -> submitting transition. It matches ErrValidation under
// errors.Is so handlers can map it without inspecting fields.
type ValidationError struct {
	Fields map[string]string
}

func newValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string]string)}
}

func (e *ValidationError) add(field, msg string) {
	e.Fields[field] = msg
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		names = append(names, f)
	}
	sort.Strings(names)
	return fmt.Sprintf("validation error: %s", strings.Join(names, ", "))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }
