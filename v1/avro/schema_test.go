package avro

import (
	"encoding/json"
	"testing"
)

func TestMarshalPrimitive(t *testing.T) {
	data, err := json.Marshal(String())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != `"string"` {
		t.Errorf("expected %q, got %s", `"string"`, data)
	}
}

func TestMarshalRecord(t *testing.T) {
	schema := NewRecordSchema("User", []Field{
		NewField("name", String()),
		NewFieldWithDefault("nickname", Nullable(String()), nil),
	})

	data, err := json.Marshal(schema)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := `{"type":"record","name":"User","fields":[{"name":"name","type":"string"},{"name":"nickname","type":["null","string"],"default":null}]}`
	if string(data) != want {
		t.Errorf("expected %s, got %s", want, data)
	}
}

func TestMarshalEnum(t *testing.T) {
	schema := NewEnumSchema("Color", []string{"RED", "GREEN", "BLUE"})

	data, err := json.Marshal(schema)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := `{"type":"enum","name":"Color","symbols":["RED","GREEN","BLUE"]}`
	if string(data) != want {
		t.Errorf("expected %s, got %s", want, data)
	}
}

func TestMarshalArrayAndMap(t *testing.T) {
	data, err := json.Marshal(NewArraySchema(String()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != `{"type":"array","items":"string"}` {
		t.Errorf("unexpected array JSON: %s", data)
	}

	data, err = json.Marshal(NewMapSchema(Long()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != `{"type":"map","values":"long"}` {
		t.Errorf("unexpected map JSON: %s", data)
	}
}

func TestParseRoundTrip(t *testing.T) {
	schema := NewRecordSchema("Order", []Field{
		NewField("id", Long()),
		NewField("items", NewArraySchema(String())),
		NewField("attributes", NewMapSchema(String())),
		NewField("status", NewEnumSchema("Status", []string{"OPEN", "CLOSED"})),
		NewFieldWithDefault("note", Nullable(String()), nil),
	})

	data, err := json.Marshal(schema)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	parsed, err := Parse(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !schema.Equal(parsed) {
		t.Errorf("round trip mismatch:\n  in:  %s\n  out: %s", schema, parsed)
	}
}

func TestParseUnknownPrimitive(t *testing.T) {
	if _, err := Parse([]byte(`"varchar"`)); err == nil {
		t.Fatal("expected error for unknown primitive")
	}
}

func TestNullableIsIdempotent(t *testing.T) {
	s := Nullable(String())
	if !s.Optional() {
		t.Fatal("expected nullable schema to be optional")
	}
	if again := Nullable(s); again != s {
		t.Error("expected Nullable of a nullable schema to be a no-op")
	}
}

func TestNonNull(t *testing.T) {
	s := Nullable(Long())
	if got := s.NonNull(); got.Type != TypeLong {
		t.Errorf("expected long member, got %s", got.Type)
	}
	if got := String().NonNull(); got.Type != TypeString {
		t.Errorf("expected string, got %s", got.Type)
	}
}

func TestFieldLookup(t *testing.T) {
	schema := NewRecordSchema("User", []Field{
		NewField("name", String()),
	})

	f, ok := schema.Field("name")
	if !ok {
		t.Fatal("expected field name to be found")
	}
	if f.Schema.Type != TypeString {
		t.Errorf("expected string field, got %s", f.Schema.Type)
	}

	if _, ok := schema.Field("missing"); ok {
		t.Error("expected field missing to be absent")
	}
}
