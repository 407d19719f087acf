// internal/app/system/validation/errors.go
package validation

import (
	"strings"

	"github.com/pkg/errors"
)

// FieldError ties a message to one input field (by its JSON name).
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError is a pre-flight rejection: the input was refused before
// anything was sent to the store.
type ValidationError struct {
	Err    error
	Fields []FieldError
}

// New returns a ValidationError with a summary message and optional field
// details.
func New(summary string, fields ...FieldError) error {
	return &ValidationError{Err: errors.New(summary), Fields: fields}
}

func (e *ValidationError) Error() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error { return e.Err }

// Field returns the message for one field, or "".
func (e *ValidationError) Field(name string) string {
	for _, f := range e.Fields {
		if f.Field == name {
			return f.Message
		}
	}
	return ""
}

// FieldNames returns the JSON names of the failing fields in order.
func (e *ValidationError) FieldNames() []string {
	out := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		out = append(out, f.Field)
	}
	return out
}

// Is reports whether err is (or wraps) a ValidationError.
func Is(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// As extracts the ValidationError from err.
func As(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// Summary joins the field messages into one banner line. Field messages
// that repeat the summary or each other are dropped.
func (e *ValidationError) Summary() string {
	head := e.Error()
	seen := map[string]bool{head: true}
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		if f.Message == "" || seen[f.Message] {
			continue
		}
		seen[f.Message] = true
		msgs = append(msgs, f.Message)
	}
	if len(msgs) == 0 {
		return head
	}
	return head + ": " + strings.Join(msgs, "; ")
}
