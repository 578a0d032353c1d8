package avro

import (
	"fmt"
	"reflect"
)

// Type identifies the kind of an Avro schema node.
type Type string

// Supported Avro schema kinds.
const (
	TypeNull    Type = "null"
	TypeBoolean Type = "boolean"
	TypeInt     Type = "int"
	TypeLong    Type = "long"
	TypeFloat   Type = "float"
	TypeDouble  Type = "double"
	TypeBytes   Type = "bytes"
	TypeString  Type = "string"
	TypeRecord  Type = "record"
	TypeEnum    Type = "enum"
	TypeArray   Type = "array"
	TypeMap     Type = "map"
	TypeUnion   Type = "union"
)

// Schema is one node of an Avro schema tree.
//
// Only the fields relevant for the node's Type are populated:
//   - TypeRecord: Name, Fields
//   - TypeEnum: Name, Symbols
//   - TypeArray: Items
//   - TypeMap: Values (keys are always strings in Avro)
//   - TypeUnion: Types, in declaration order
//
// Primitive nodes carry only Type.
type Schema struct {
	Type    Type
	Name    string
	Fields  []Field
	Symbols []string
	Items   *Schema
	Values  *Schema
	Types   []*Schema
}

// Field is one named field of a record schema.
//
// HasDefault distinguishes "no default declared" from an explicit null
// default; Avro treats those differently when resolving missing values.
type Field struct {
	Name       string
	Schema     *Schema
	HasDefault bool
	Default    interface{}
}

// Null returns the null primitive schema.
func Null() *Schema { return &Schema{Type: TypeNull} }

// Boolean returns the boolean primitive schema.
func Boolean() *Schema { return &Schema{Type: TypeBoolean} }

// Int returns the 32-bit integer primitive schema.
func Int() *Schema { return &Schema{Type: TypeInt} }

// Long returns the 64-bit integer primitive schema.
func Long() *Schema { return &Schema{Type: TypeLong} }

// Float returns the 32-bit float primitive schema.
func Float() *Schema { return &Schema{Type: TypeFloat} }

// Double returns the 64-bit float primitive schema.
func Double() *Schema { return &Schema{Type: TypeDouble} }

// Bytes returns the raw-bytes primitive schema.
func Bytes() *Schema { return &Schema{Type: TypeBytes} }

// String returns the string primitive schema.
func String() *Schema { return &Schema{Type: TypeString} }

// NewRecordSchema creates a record schema with the given name and fields.
// Field order is preserved as given.
func NewRecordSchema(name string, fields []Field) *Schema {
	return &Schema{Type: TypeRecord, Name: name, Fields: fields}
}

// NewEnumSchema creates an enum schema with the given name and symbols.
// Symbol order is preserved as given.
func NewEnumSchema(name string, symbols []string) *Schema {
	return &Schema{Type: TypeEnum, Name: name, Symbols: symbols}
}

// NewArraySchema creates an array schema with the given item schema.
func NewArraySchema(items *Schema) *Schema {
	return &Schema{Type: TypeArray, Items: items}
}

// NewMapSchema creates a map schema with the given value schema.
// Avro map keys are always strings.
func NewMapSchema(values *Schema) *Schema {
	return &Schema{Type: TypeMap, Values: values}
}

// NewUnionSchema creates a union of the given member schemas, in order.
func NewUnionSchema(types ...*Schema) *Schema {
	return &Schema{Type: TypeUnion, Types: types}
}

// Nullable wraps a schema into a [null, T] union, the Avro representation
// of an optional value. Wrapping an already-nullable schema is a no-op.
func Nullable(s *Schema) *Schema {
	if s.Optional() {
		return s
	}
	return NewUnionSchema(Null(), s)
}

// NewField creates a record field with no declared default.
func NewField(name string, schema *Schema) Field {
	return Field{Name: name, Schema: schema}
}

// NewFieldWithDefault creates a record field carrying an explicit default
// value. Pass nil for a null default on nullable fields.
func NewFieldWithDefault(name string, schema *Schema, def interface{}) Field {
	return Field{Name: name, Schema: schema, HasDefault: true, Default: def}
}

// Optional reports whether the schema is a union that admits null.
func (s *Schema) Optional() bool {
	if s == nil || s.Type != TypeUnion {
		return false
	}
	for _, t := range s.Types {
		if t.Type == TypeNull {
			return true
		}
	}
	return false
}

// NonNull returns the first non-null member of a nullable union, or the
// schema itself when it is not a union.
func (s *Schema) NonNull() *Schema {
	if s == nil || s.Type != TypeUnion {
		return s
	}
	for _, t := range s.Types {
		if t.Type != TypeNull {
			return t
		}
	}
	return s
}

// Field returns the record field with the given name.
func (s *Schema) Field(name string) (*Field, bool) {
	if s == nil || s.Type != TypeRecord {
		return nil, false
	}
	for i := range s.Fields {
		if s.Fields[i].Name == name {
			return &s.Fields[i], true
		}
	}
	return nil, false
}

// Equal reports whether two schemas are structurally identical, including
// field order, defaults and union member order.
func (s *Schema) Equal(other *Schema) bool {
	return reflect.DeepEqual(s, other)
}

// FullName returns the qualified name used in union type resolution:
// the declared name for records and enums, the type keyword otherwise.
func (s *Schema) FullName() string {
	switch s.Type {
	case TypeRecord, TypeEnum:
		return s.Name
	default:
		return string(s.Type)
	}
}

func (s *Schema) String() string {
	data, err := s.MarshalJSON()
	if err != nil {
		return fmt.Sprintf("avro: invalid schema: %v", err)
	}
	return string(data)
}
