package avro

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Parse decodes Avro schema JSON into a Schema tree.
// It accepts primitive name strings, union arrays and complex type objects.
func Parse(data []byte) (*Schema, error) {
	s := &Schema{}
	if err := s.UnmarshalJSON(data); err != nil {
		return nil, err
	}
	return s, nil
}

// fieldJSON is the wire shape of one record field. Default is kept raw so
// that an explicit "default": null survives the round trip.
type fieldJSON struct {
	Name    string          `json:"name"`
	Type    *Schema         `json:"type"`
	Default json.RawMessage `json:"default,omitempty"`
}

// schemaJSON is the wire shape of complex schema objects.
type schemaJSON struct {
	Type    json.RawMessage `json:"type"`
	Name    string          `json:"name,omitempty"`
	Fields  []fieldJSON     `json:"fields,omitempty"`
	Symbols []string        `json:"symbols,omitempty"`
	Items   *Schema         `json:"items,omitempty"`
	Values  *Schema         `json:"values,omitempty"`
}

// MarshalJSON produces standard Avro schema JSON: primitives as bare name
// strings, unions as arrays, records/enums/arrays/maps as type objects.
func (s *Schema) MarshalJSON() ([]byte, error) {
	if s == nil {
		return nil, fmt.Errorf("avro: cannot marshal nil schema")
	}

	switch s.Type {
	case TypeNull, TypeBoolean, TypeInt, TypeLong, TypeFloat, TypeDouble, TypeBytes, TypeString:
		return json.Marshal(string(s.Type))

	case TypeUnion:
		return json.Marshal(s.Types)

	case TypeRecord:
		fields := make([]fieldJSON, 0, len(s.Fields))
		for _, f := range s.Fields {
			fj := fieldJSON{Name: f.Name, Type: f.Schema}
			if f.HasDefault {
				raw, err := json.Marshal(f.Default)
				if err != nil {
					return nil, fmt.Errorf("avro: field %s default: %w", f.Name, err)
				}
				fj.Default = raw
			}
			fields = append(fields, fj)
		}
		return json.Marshal(schemaJSON{
			Type:   json.RawMessage(`"record"`),
			Name:   s.Name,
			Fields: fields,
		})

	case TypeEnum:
		return json.Marshal(schemaJSON{
			Type:    json.RawMessage(`"enum"`),
			Name:    s.Name,
			Symbols: s.Symbols,
		})

	case TypeArray:
		return json.Marshal(schemaJSON{
			Type:  json.RawMessage(`"array"`),
			Items: s.Items,
		})

	case TypeMap:
		return json.Marshal(schemaJSON{
			Type:   json.RawMessage(`"map"`),
			Values: s.Values,
		})
	}

	return nil, fmt.Errorf("avro: cannot marshal schema type %q", s.Type)
}

// UnmarshalJSON decodes Avro schema JSON in place.
func (s *Schema) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("avro: empty schema document")
	}

	switch data[0] {
	case '"':
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return fmt.Errorf("avro: invalid schema name: %w", err)
		}
		return s.fromPrimitiveName(name)

	case '[':
		var members []*Schema
		if err := json.Unmarshal(data, &members); err != nil {
			return fmt.Errorf("avro: invalid union: %w", err)
		}
		s.Type = TypeUnion
		s.Types = members
		return nil

	case '{':
		var obj schemaJSON
		if err := json.Unmarshal(data, &obj); err != nil {
			return fmt.Errorf("avro: invalid schema object: %w", err)
		}
		return s.fromObject(&obj)
	}

	return fmt.Errorf("avro: unrecognized schema document")
}

func (s *Schema) fromPrimitiveName(name string) error {
	switch Type(name) {
	case TypeNull, TypeBoolean, TypeInt, TypeLong, TypeFloat, TypeDouble, TypeBytes, TypeString:
		s.Type = Type(name)
		return nil
	}
	return fmt.Errorf("avro: unknown primitive type %q", name)
}

func (s *Schema) fromObject(obj *schemaJSON) error {
	var kind string
	if err := json.Unmarshal(obj.Type, &kind); err != nil {
		// An object whose "type" is itself an object or array wraps a
		// nested schema definition, e.g. {"type": {"type": "array", ...}}.
		return s.UnmarshalJSON(obj.Type)
	}

	switch Type(kind) {
	case TypeRecord:
		s.Type = TypeRecord
		s.Name = obj.Name
		s.Fields = make([]Field, 0, len(obj.Fields))
		for _, fj := range obj.Fields {
			if fj.Type == nil {
				return fmt.Errorf("avro: field %s has no type", fj.Name)
			}
			f := Field{Name: fj.Name, Schema: fj.Type}
			if fj.Default != nil {
				f.HasDefault = true
				if err := json.Unmarshal(fj.Default, &f.Default); err != nil {
					return fmt.Errorf("avro: field %s default: %w", fj.Name, err)
				}
			}
			s.Fields = append(s.Fields, f)
		}
		return nil

	case TypeEnum:
		s.Type = TypeEnum
		s.Name = obj.Name
		s.Symbols = obj.Symbols
		return nil

	case TypeArray:
		if obj.Items == nil {
			return fmt.Errorf("avro: array schema has no items")
		}
		s.Type = TypeArray
		s.Items = obj.Items
		return nil

	case TypeMap:
		if obj.Values == nil {
			return fmt.Errorf("avro: map schema has no values")
		}
		s.Type = TypeMap
		s.Values = obj.Values
		return nil
	}

	// Objects are also allowed to wrap primitives: {"type": "string"}.
	return s.fromPrimitiveName(kind)
}
