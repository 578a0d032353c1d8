package avro

import (
	"fmt"
	"reflect"
)

// Record is a generic, schema-shaped field container.
//
// It stores untyped values keyed by field name and rejects writes to fields
// the schema does not declare. Collection fields hold []interface{} for
// arrays and map[string]interface{} for maps; both are mutated in place by
// AppendTo, PutInto and RemoveFrom.
//
// Record adds no synchronization of its own. Concurrent writers to the same
// record must coordinate externally; the intended use is single-writer per
// record instance.
type Record struct {
	schema *Schema
	values map[string]interface{}
}

// NewRecord creates an empty record shaped by the given record schema.
func NewRecord(schema *Schema) (*Record, error) {
	if schema == nil || schema.Type != TypeRecord {
		return nil, ErrNotRecord
	}
	return &Record{
		schema: schema,
		values: make(map[string]interface{}),
	}, nil
}

// Schema returns the schema that shapes this record.
func (r *Record) Schema() *Schema {
	return r.schema
}

// Get returns the current value of a field and whether it has been set.
func (r *Record) Get(field string) (interface{}, bool) {
	v, ok := r.values[field]
	return v, ok
}

// Set writes a field value, replacing any previous value.
// Returns ErrUnknownField if the schema does not declare the field.
func (r *Record) Set(field string, value interface{}) error {
	if _, ok := r.schema.Field(field); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	r.values[field] = value
	return nil
}

// AppendTo appends a value to an array field, initializing the underlying
// slice on first use.
func (r *Record) AppendTo(field string, value interface{}) error {
	f, ok := r.schema.Field(field)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	if f.Schema.NonNull().Type != TypeArray {
		return fmt.Errorf("%w: %s", ErrNotArray, field)
	}

	current, _ := r.values[field].([]interface{})
	r.values[field] = append(current, value)
	return nil
}

// PutInto inserts a keyed value into a map field, initializing the
// underlying map on first use.
func (r *Record) PutInto(field, key string, value interface{}) error {
	f, ok := r.schema.Field(field)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	if f.Schema.NonNull().Type != TypeMap {
		return fmt.Errorf("%w: %s", ErrNotMap, field)
	}

	current, ok := r.values[field].(map[string]interface{})
	if !ok {
		current = make(map[string]interface{})
		r.values[field] = current
	}
	current[key] = value
	return nil
}

// RemoveFrom removes an entry from a collection field in place.
//
// For map fields the key must be the string map key to delete. For array
// fields the first element equal to key is removed. Removing from an unset
// field is a no-op.
func (r *Record) RemoveFrom(field string, key interface{}) error {
	f, ok := r.schema.Field(field)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownField, field)
	}

	switch f.Schema.NonNull().Type {
	case TypeMap:
		name, ok := key.(string)
		if !ok {
			return fmt.Errorf("avro: map field %s requires a string key, got %T", field, key)
		}
		if current, ok := r.values[field].(map[string]interface{}); ok {
			delete(current, name)
		}
		return nil

	case TypeArray:
		current, ok := r.values[field].([]interface{})
		if !ok {
			return nil
		}
		for i, v := range current {
			if reflect.DeepEqual(v, key) {
				r.values[field] = append(current[:i], current[i+1:]...)
				return nil
			}
		}
		return nil
	}

	return fmt.Errorf("avro: field %s is not a collection", field)
}

// Fields returns a shallow copy of the currently set field values.
// Collection values are shared with the record, not copied.
func (r *Record) Fields() map[string]interface{} {
	out := make(map[string]interface{}, len(r.values))
	for k, v := range r.values {
		out[k] = v
	}
	return out
}
