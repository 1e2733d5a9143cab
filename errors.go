package formulaic

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownField write to a field the schema does not declare
	ErrUnknownField = errors.New("unknown field")
	// ErrDuplicateField field name declared twice on one schema
	ErrDuplicateField = errors.New("duplicate field")
	// ErrInvalidTrigger trigger declared without field names or a handler,
	// or naming a field the schema does not declare
	ErrInvalidTrigger = errors.New("invalid trigger")
	// ErrMissingPersistor persist called on a model with no persistor
	ErrMissingPersistor = errors.New("persistor required")
	// ErrMissingConnector SQL persistor used without a connector or handle
	ErrMissingConnector = errors.New("connector required")
)

// FormatError reports a value that could not be coerced to its field's kind.
type FormatError struct {
	Field string
	Value interface{}
	Err   error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cannot format value %v for field %s: %v", e.Value, e.Field, e.Err)
	}
	return fmt.Sprintf("cannot format value %v for field %s", e.Value, e.Field)
}

func (e *FormatError) Unwrap() error { return e.Err }

// ValidationError reports a formatted value rejected by its field's validator.
type ValidationError struct {
	Field string
	Value interface{}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid value %v for field %s", e.Value, e.Field)
}
