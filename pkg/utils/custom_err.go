package utils

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrTripNotFound       = errors.New("trip not found")
	ErrDayNotFound        = errors.New("itinerary day not found")
	ErrPOINotFound        = errors.New("poi not found")
	ErrAccountNotFound    = errors.New("account not found")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("not allowed")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidDateRange   = errors.New("end date must not be before start date")
	ErrInvalidPage        = errors.New("invalid page parameter")
	ErrInvalidPageSize    = errors.New("invalid page size parameter")
	ErrChatBusy           = errors.New("another chat or apply operation is in flight for this trip")
	ErrIntentHasWarnings  = errors.New("the parsed instruction is ambiguous; nothing was applied")
	ErrEmptyReply         = errors.New("model returned an empty reply")
	ErrDatabaseError      = errors.New("database error")
)

// ConstraintViolationError rejects a reorder/add/delete that references rows
// outside its target scope. Nothing is mutated when it is returned.
type ConstraintViolationError struct {
	Reason string
}

func (e *ConstraintViolationError) Error() string {
	return "constraint violation: " + e.Reason
}

// FieldViolation points at one offending field in a generated itinerary.
type FieldViolation struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// SchemaValidationError reports provider output that failed structural
// validation. It is never retried.
type SchemaValidationError struct {
	Violations []FieldViolation
}

func (e *SchemaValidationError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.Path+": "+v.Message)
	}
	return "generated itinerary failed validation: " + strings.Join(parts, "; ")
}

// ProviderBusyError means every candidate model kept signalling rate limits
// or overload through the whole backoff schedule. Transient; retry later.
type ProviderBusyError struct {
	ModelsTried []string
}

func (e *ProviderBusyError) Error() string {
	return fmt.Sprintf("model provider busy, retry later (models tried: %s)",
		strings.Join(e.ModelsTried, ", "))
}

// ModelAttempt records why one candidate model was skipped.
type ModelAttempt struct {
	Model  string
	Reason string
}

// NoWorkingModelError means the candidate list was exhausted because no
// model was available at all.
type NoWorkingModelError struct {
	Attempts []ModelAttempt
}

func (e *NoWorkingModelError) Error() string {
	parts := make([]string, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		parts = append(parts, a.Model+" ("+a.Reason+")")
	}
	return "no working model: " + strings.Join(parts, "; ")
}
