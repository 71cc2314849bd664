package errorx

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

type Code int

const (
	BadRequest Code = 100001
	NotFound   Code = 100004
	Conflict   Code = 100006
	Internal   Code = 100007
	Invalid    Code = 100012
	Declined   Code = 100013
)

var (
	// ErrNotIdle is returned when a checkout is submitted while another attempt is in flight.
	ErrNotIdle = &Error{Code: Conflict, Message: "checkout already in progress"}

	// ErrPaymentDeclined is returned by gateways that reject a charge.
	ErrPaymentDeclined = &Error{Code: Declined, Message: "payment declined"}
)

type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// ValidationError collects per-field messages for a rejected input.
type ValidationError struct {
	Fields map[string]string
}

func NewValidationError() *ValidationError {
	return &ValidationError{Fields: map[string]string{}}
}

// Add records a message for field, keeping the first one per field.
func (e *ValidationError) Add(field, format string, args ...any) {
	if _, ok := e.Fields[field]; ok {
		return
	}
	e.Fields[field] = fmt.Sprintf(format, args...)
}

func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

// OrNil returns nil when nothing was recorded so callers can `return v.OrNil()`.
func (e *ValidationError) OrNil() error {
	if !e.HasErrors() {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

type NotFoundError struct {
	Resource string
	ID       string
}

func NewNotFound(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Resource, e.ID)
}

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
