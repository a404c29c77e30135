// Package convert defines the error types shared by the conversion,
// coercion, and serialization operations.
package convert

import (
	"fmt"
	"reflect"
)

// ConversionError is returned when a concrete value cannot be coerced to the
// requested target type: wrong shape, out of range, malformed text, an
// unmatched enum name or code, or an absent value into a target that does
// not accept absence.
type ConversionError struct {
	// Value is the offending input value.
	Value any
	// Target is the type the conversion was attempting to produce.
	Target reflect.Type
	// Reason is a human-readable description of the failure.
	Reason string
	// Cause is the underlying failure, if the conversion was delegated.
	Cause error
}

// Error returns the error message for ConversionError.
func (e *ConversionError) Error() string {
	switch {
	case e.Reason != "" && e.Cause != nil:
		return fmt.Sprintf("convert: cannot convert %v (%T) to %s: %s: %v",
			e.Value, e.Value, e.Target, e.Reason, e.Cause)
	case e.Reason != "":
		return fmt.Sprintf("convert: cannot convert %v (%T) to %s: %s",
			e.Value, e.Value, e.Target, e.Reason)
	case e.Cause != nil:
		return fmt.Sprintf("convert: cannot convert %v (%T) to %s: %v",
			e.Value, e.Value, e.Target, e.Cause)
	default:
		return fmt.Sprintf("convert: cannot convert %v (%T) to %s",
			e.Value, e.Value, e.Target)
	}
}

// Unwrap returns the underlying cause of the ConversionError.
func (e *ConversionError) Unwrap() error {
	return e.Cause
}

// ArgumentError is returned when a required input is absent or structurally
// unusable, such as a non-enum target given to enum coercion or a record
// type with no usable key member.
type ArgumentError struct {
	Message string
}

// Error returns the error message for ArgumentError.
func (e *ArgumentError) Error() string {
	return e.Message
}

// UnsupportedModeError is returned when an undefined serialization mode is
// supplied.
type UnsupportedModeError struct {
	Mode Mode
}

// Error returns the error message for UnsupportedModeError.
func (e *UnsupportedModeError) Error() string {
	return fmt.Sprintf("convert: unsupported serialization mode %d", int32(e.Mode))
}
