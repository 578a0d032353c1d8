package record

import (
	"errors"
	"fmt"
)

// NamingError indicates that an operation name carries a recognized accessor
// prefix but no field name remainder, e.g. a method literally called "Get".
type NamingError struct {
	// Operation is the offending operation name.
	Operation string

	// Prefix is the accessor prefix that matched.
	Prefix string
}

func (e *NamingError) Error() string {
	return fmt.Sprintf("record: operation %q does not resolve to a field name (prefix %q)", e.Operation, e.Prefix)
}

// ValueMappingError indicates that no schema type could be determined for a
// field. It carries the failing field name and declared type where known,
// and chains the underlying cause when the failure happened while resolving
// a nested type.
type ValueMappingError struct {
	// FieldName is the field whose resolution failed, if known.
	FieldName string

	// TypeName is the declared Go type that could not be mapped, if known.
	TypeName string

	// Reason is a human-readable description of the failure.
	Reason string

	// Cause is the underlying error, if any.
	Cause error
}

func (e *ValueMappingError) Error() string {
	msg := "record: "
	if e.FieldName != "" {
		msg += fmt.Sprintf("failed to map field %s: ", e.FieldName)
	}
	if e.TypeName != "" {
		msg += e.TypeName + ": "
	}
	msg += e.Reason
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *ValueMappingError) Unwrap() error {
	return e.Cause
}

// RequiredFieldMissingError indicates a read of a required field that has no
// value in the bound generic record. This is a per-call runtime error,
// distinct from the compile-time ValueMappingError.
type RequiredFieldMissingError struct {
	// FieldName is the required field that has no value.
	FieldName string
}

func (e *RequiredFieldMissingError) Error() string {
	return fmt.Sprintf("record: required field %s has no value", e.FieldName)
}

// IsNamingError checks if the error is a NamingError.
func IsNamingError(err error) bool {
	var target *NamingError
	return errors.As(err, &target)
}

// IsValueMappingError checks if the error is a ValueMappingError.
func IsValueMappingError(err error) bool {
	var target *ValueMappingError
	return errors.As(err, &target)
}

// IsRequiredFieldMissingError checks if the error is a RequiredFieldMissingError.
func IsRequiredFieldMissingError(err error) bool {
	var target *RequiredFieldMissingError
	return errors.As(err, &target)
}
