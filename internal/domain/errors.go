package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is returned when a referenced holding, transaction or
	// category does not exist.
	ErrNotFound = errors.New("not found")

	// ErrQuoteUnavailable is returned when no live, cached or static quote
	// data could be produced.
	ErrQuoteUnavailable = errors.New("quote data unavailable")
)

// ValidationError reports malformed input to a create or update operation.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError builds a ValidationError for field.
func NewValidationError(field, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// IsNotFound reports whether err wraps ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// AsValidationError extracts a ValidationError from err's chain.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// ValidationErrors collects every problem found in one input.
type ValidationErrors []*ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, ve := range e {
		msgs = append(msgs, ve.Error())
	}
	return strings.Join(msgs, "; ")
}

// Add appends a ValidationError for field.
func (e *ValidationErrors) Add(field, format string, args ...interface{}) {
	*e = append(*e, NewValidationError(field, format, args...))
}

// OrNil returns nil when nothing was collected, so callers can return it directly.
func (e ValidationErrors) OrNil() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// ValidationDetails returns the validation problems carried by err, whether it
// holds a single ValidationError or a ValidationErrors list.
func ValidationDetails(err error) ([]*ValidationError, bool) {
	var list ValidationErrors
	if errors.As(err, &list) {
		return list, true
	}
	if ve, ok := AsValidationError(err); ok {
		return []*ValidationError{ve}, true
	}
	return nil, false
}
