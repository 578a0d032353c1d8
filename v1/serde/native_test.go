package serde

import (
	"reflect"
	"testing"

	"github.com/streamhaus/dynrec/v1/avro"
	"github.com/streamhaus/dynrec/v1/record"
)

func TestNativeFromValueUnionWrapping(t *testing.T) {
	s := avro.Nullable(avro.String())

	nv, err := nativeFromValue(s, "hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := map[string]interface{}{"string": "hello"}
	if !reflect.DeepEqual(nv, want) {
		t.Errorf("expected %v, got %v", want, nv)
	}

	nv, err = nativeFromValue(s, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if nv != nil {
		t.Errorf("expected nil for null union value, got %v", nv)
	}
}

func TestNativeFromValueNamedTypes(t *testing.T) {
	enum := avro.NewEnumSchema("testStatus", []string{"NEW", "DONE"})

	nv, err := nativeFromValue(enum, testStatus("NEW"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if nv != "NEW" {
		t.Errorf("expected plain string NEW, got %v (%T)", nv, nv)
	}

	type count int32
	nv, err = nativeFromValue(avro.Int(), count(7))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if nv != int32(7) {
		t.Errorf("expected int32 7, got %v (%T)", nv, nv)
	}
}

func TestNativeFromValueTypeMismatch(t *testing.T) {
	if _, err := nativeFromValue(avro.String(), 42); err == nil {
		t.Error("expected error for int against string schema")
	}
	if _, err := nativeFromValue(avro.Long(), "nope"); err == nil {
		t.Error("expected error for string against long schema")
	}
}

func TestNativeFromRecordRequiredUnset(t *testing.T) {
	schema := avro.NewRecordSchema("Thing", []avro.Field{
		avro.NewField("name", avro.String()),
	})
	rec, err := avro.NewRecord(schema)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = nativeFromRecord(rec)
	if !record.IsRequiredFieldMissingError(err) {
		t.Fatalf("expected RequiredFieldMissingError, got %v", err)
	}
}

func TestNativeFromRecordOptionalUnsetIsNull(t *testing.T) {
	schema := avro.NewRecordSchema("Thing", []avro.Field{
		avro.NewFieldWithDefault("nickname", avro.Nullable(avro.String()), nil),
	})
	rec, _ := avro.NewRecord(schema)

	native, err := nativeFromRecord(rec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	nv, present := native["nickname"]
	if !present || nv != nil {
		t.Errorf("expected explicit null entry, got present=%v value=%v", present, nv)
	}
}

func TestRecordFromNativeNullOptionalStaysUnset(t *testing.T) {
	schema := avro.NewRecordSchema("Thing", []avro.Field{
		avro.NewField("name", avro.String()),
		avro.NewFieldWithDefault("nickname", avro.Nullable(avro.String()), nil),
	})

	rec, err := recordFromNative(schema, map[string]interface{}{
		"name":     "gopher",
		"nickname": nil,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if v, ok := rec.Get("name"); !ok || v != "gopher" {
		t.Errorf("expected gopher, got %v (set=%v)", v, ok)
	}
	if _, ok := rec.Get("nickname"); ok {
		t.Error("expected null optional field to stay unset")
	}
}

func TestRecordFromNativeRejectsNonMap(t *testing.T) {
	schema := avro.NewRecordSchema("Thing", nil)
	if _, err := recordFromNative(schema, "not a map"); err == nil {
		t.Fatal("expected error for non-map native value")
	}
}
