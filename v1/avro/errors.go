package avro

import "errors"

// Common record container errors
var (
	// ErrUnknownField is returned when an operation names a field that is
	// not part of the record's schema.
	ErrUnknownField = errors.New("avro: unknown field")

	// ErrNotRecord is returned when a record container is constructed from
	// a schema that is not a record schema.
	ErrNotRecord = errors.New("avro: schema is not a record")

	// ErrNotArray is returned when an append or element removal targets a
	// field whose schema is not an array.
	ErrNotArray = errors.New("avro: field is not an array")

	// ErrNotMap is returned when a keyed insert or removal targets a field
	// whose schema is not a map.
	ErrNotMap = errors.New("avro: field is not a map")
)

// IsUnknownFieldError checks if the error is an unknown-field error.
func IsUnknownFieldError(err error) bool {
	return errors.Is(err, ErrUnknownField)
}
