package serde

import (
	"fmt"
	"reflect"

	"github.com/streamhaus/dynrec/v1/avro"
	"github.com/streamhaus/dynrec/v1/record"
)

// nativeFromRecord converts a generic record into goavro's native form:
// a map of field name to native value, with optional fields union-wrapped.
//
// Unset optional fields encode as null. An unset required field fails with
// a RequiredFieldMissingError before any bytes are produced.
func nativeFromRecord(rec *avro.Record) (map[string]interface{}, error) {
	schema := rec.Schema()
	out := make(map[string]interface{}, len(schema.Fields))

	for _, f := range schema.Fields {
		v, set := rec.Get(f.Name)
		if !set {
			if f.Schema.Optional() {
				out[f.Name] = nil
				continue
			}
			return nil, &record.RequiredFieldMissingError{FieldName: f.Name}
		}

		nv, err := nativeFromValue(f.Schema, v)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", f.Name, err)
		}
		out[f.Name] = nv
	}

	return out, nil
}

// nativeFromValue converts one value into goavro's native form for the given
// schema node. Union members encode as a single-entry map keyed by the
// member's type name; named Go types are canonicalized to the plain Go types
// goavro expects for primitives.
func nativeFromValue(s *avro.Schema, v interface{}) (interface{}, error) {
	switch s.Type {
	case avro.TypeUnion:
		if v == nil {
			return nil, nil
		}
		member := s.NonNull()
		nv, err := nativeFromValue(member, v)
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{member.FullName(): nv}, nil

	case avro.TypeRecord:
		switch rv := v.(type) {
		case *avro.Record:
			return nativeFromRecord(rv)
		case record.Dynamic:
			return nativeFromRecord(rv.Record())
		}
		return nil, fmt.Errorf("expected a record value, got %T", v)

	case avro.TypeArray:
		rv := reflect.ValueOf(v)
		if rv.Kind() != reflect.Slice {
			return nil, fmt.Errorf("expected a slice value, got %T", v)
		}
		items := make([]interface{}, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			nv, err := nativeFromValue(s.Items, rv.Index(i).Interface())
			if err != nil {
				return nil, err
			}
			items[i] = nv
		}
		return items, nil

	case avro.TypeMap:
		rv := reflect.ValueOf(v)
		if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
			return nil, fmt.Errorf("expected a string-keyed map value, got %T", v)
		}
		values := make(map[string]interface{}, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			nv, err := nativeFromValue(s.Values, iter.Value().Interface())
			if err != nil {
				return nil, err
			}
			values[iter.Key().String()] = nv
		}
		return values, nil

	case avro.TypeEnum, avro.TypeString:
		rv := reflect.ValueOf(v)
		if rv.Kind() != reflect.String {
			return nil, fmt.Errorf("expected a string value, got %T", v)
		}
		return rv.String(), nil

	case avro.TypeBoolean:
		rv := reflect.ValueOf(v)
		if rv.Kind() != reflect.Bool {
			return nil, fmt.Errorf("expected a bool value, got %T", v)
		}
		return rv.Bool(), nil

	case avro.TypeInt:
		rv := reflect.ValueOf(v)
		if !isIntKind(rv.Kind()) {
			return nil, fmt.Errorf("expected an integer value, got %T", v)
		}
		return int32(rv.Int()), nil

	case avro.TypeLong:
		rv := reflect.ValueOf(v)
		if !isIntKind(rv.Kind()) {
			return nil, fmt.Errorf("expected an integer value, got %T", v)
		}
		return rv.Int(), nil

	case avro.TypeFloat:
		rv := reflect.ValueOf(v)
		if !isFloatKind(rv.Kind()) {
			return nil, fmt.Errorf("expected a float value, got %T", v)
		}
		return float32(rv.Float()), nil

	case avro.TypeDouble:
		rv := reflect.ValueOf(v)
		if !isFloatKind(rv.Kind()) {
			return nil, fmt.Errorf("expected a float value, got %T", v)
		}
		return rv.Float(), nil

	case avro.TypeBytes:
		b, ok := v.([]byte)
		if !ok {
			return nil, fmt.Errorf("expected a bytes value, got %T", v)
		}
		return b, nil

	case avro.TypeNull:
		if v != nil {
			return nil, fmt.Errorf("expected null, got %T", v)
		}
		return nil, nil
	}

	return nil, fmt.Errorf("unsupported schema type %q", s.Type)
}

func isIntKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	}
	return false
}

func isFloatKind(k reflect.Kind) bool {
	return k == reflect.Float32 || k == reflect.Float64
}

// recordFromNative rebuilds a generic record from goavro's native decoding
// of a payload. Null optional fields stay unset on the record.
func recordFromNative(schema *avro.Schema, native interface{}) (*avro.Record, error) {
	values, ok := native.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("expected a decoded record, got %T", native)
	}

	rec, err := avro.NewRecord(schema)
	if err != nil {
		return nil, err
	}

	for _, f := range schema.Fields {
		nv, present := values[f.Name]
		if !present {
			continue
		}

		v, err := valueFromNative(f.Schema, nv)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", f.Name, err)
		}
		if v == nil && f.Schema.Optional() {
			continue
		}
		if err := rec.Set(f.Name, v); err != nil {
			return nil, err
		}
	}

	return rec, nil
}

// valueFromNative unwraps goavro's native form back into container values.
func valueFromNative(s *avro.Schema, nv interface{}) (interface{}, error) {
	switch s.Type {
	case avro.TypeUnion:
		if nv == nil {
			return nil, nil
		}
		member := s.NonNull()
		if wrapped, ok := nv.(map[string]interface{}); ok && len(wrapped) == 1 {
			if inner, ok := wrapped[member.FullName()]; ok {
				return valueFromNative(member, inner)
			}
		}
		return valueFromNative(member, nv)

	case avro.TypeRecord:
		return recordFromNative(s, nv)

	case avro.TypeArray:
		items, ok := nv.([]interface{})
		if !ok {
			return nil, fmt.Errorf("expected a decoded array, got %T", nv)
		}
		out := make([]interface{}, len(items))
		for i, item := range items {
			v, err := valueFromNative(s.Items, item)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil

	case avro.TypeMap:
		values, ok := nv.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("expected a decoded map, got %T", nv)
		}
		out := make(map[string]interface{}, len(values))
		for k, item := range values {
			v, err := valueFromNative(s.Values, item)
			if err != nil {
				return nil, err
			}
			out[k] = v
		}
		return out, nil
	}

	return nv, nil
}
