package record

import (
	"reflect"
	"testing"

	"github.com/streamhaus/dynrec/v1/avro"
)

type testColor string

func (testColor) EnumSymbols() []string {
	return []string{"RED", "GREEN", "BLUE"}
}

type testProfile interface {
	Dynamic
	GetBio() string
}

type testModel interface {
	Dynamic
	GetOptionalValue() string
	SetOptionalValue(string)
	GetRequiredValue() string
	SetRequiredValue(string)
}

type testEveryType interface {
	Dynamic
	GetText() string
	IsEnabled() bool
	GetCount() int32
	GetTotal() int64
	GetRatio() float32
	GetPrecise() float64
	GetBlob() []byte
	GetColor() testColor
	GetTags() []string
	GetAttributes() map[string]string
	GetProfile() testProfile
}

func fieldSchema(t *testing.T, schema *avro.Schema, name string) *avro.Schema {
	t.Helper()
	f, ok := schema.Field(name)
	if !ok {
		t.Fatalf("expected field %s in schema %s", name, schema)
	}
	return f.Schema
}

func TestSchemaOfRequiredAndOptional(t *testing.T) {
	schema, err := SchemaOf[testModel](Optional("GetOptionalValue"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if schema.Name != "testModel" {
		t.Errorf("expected record name testModel, got %s", schema.Name)
	}
	if len(schema.Fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(schema.Fields))
	}

	optional, ok := schema.Field("optionalValue")
	if !ok {
		t.Fatal("expected field optionalValue")
	}
	if !optional.Schema.Optional() {
		t.Errorf("expected optionalValue to be nullable, got %s", optional.Schema)
	}
	if optional.Schema.NonNull().Type != avro.TypeString {
		t.Errorf("expected optionalValue to wrap string, got %s", optional.Schema.NonNull().Type)
	}
	if !optional.HasDefault || optional.Default != nil {
		t.Errorf("expected null default on optionalValue, got HasDefault=%v Default=%v",
			optional.HasDefault, optional.Default)
	}

	required, ok := schema.Field("requiredValue")
	if !ok {
		t.Fatal("expected field requiredValue")
	}
	if required.Schema.Type != avro.TypeString {
		t.Errorf("expected requiredValue to be string, got %s", required.Schema.Type)
	}
	if required.HasDefault {
		t.Error("expected no default on requiredValue")
	}
}

func TestCompileTypeMapping(t *testing.T) {
	schema, err := SchemaOf[testEveryType]()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cases := []struct {
		field string
		typ   avro.Type
	}{
		{"text", avro.TypeString},
		{"enabled", avro.TypeBoolean},
		{"count", avro.TypeInt},
		{"total", avro.TypeLong},
		{"ratio", avro.TypeFloat},
		{"precise", avro.TypeDouble},
		{"blob", avro.TypeBytes},
		{"color", avro.TypeEnum},
		{"tags", avro.TypeArray},
		{"attributes", avro.TypeMap},
		{"profile", avro.TypeRecord},
	}

	for _, tc := range cases {
		fs := fieldSchema(t, schema, tc.field)
		if fs.Type != tc.typ {
			t.Errorf("field %s: expected %s, got %s", tc.field, tc.typ, fs.Type)
		}
	}

	if got := fieldSchema(t, schema, "tags").Items.Type; got != avro.TypeString {
		t.Errorf("expected tags items to be string, got %s", got)
	}
	if got := fieldSchema(t, schema, "attributes").Values.Type; got != avro.TypeString {
		t.Errorf("expected attributes values to be string, got %s", got)
	}

	color := fieldSchema(t, schema, "color")
	if color.Name != "testColor" {
		t.Errorf("expected enum name testColor, got %s", color.Name)
	}
	if !reflect.DeepEqual(color.Symbols, []string{"RED", "GREEN", "BLUE"}) {
		t.Errorf("expected symbols in declaration order, got %v", color.Symbols)
	}

	profile := fieldSchema(t, schema, "profile")
	if profile.Name != "testProfile" {
		t.Errorf("expected nested record testProfile, got %s", profile.Name)
	}
	if got := fieldSchema(t, profile, "bio").Type; got != avro.TypeString {
		t.Errorf("expected nested bio field to be string, got %s", got)
	}
}

type testUnsupported interface {
	Dynamic
	GetWeird() complex64
}

func TestCompileUnsupportedType(t *testing.T) {
	_, err := SchemaOf[testUnsupported]()
	if !IsValueMappingError(err) {
		t.Fatalf("expected ValueMappingError, got %v", err)
	}

	vme := err.(*ValueMappingError)
	if vme.FieldName != "weird" {
		t.Errorf("expected failing field weird, got %q", vme.FieldName)
	}
	if vme.Cause == nil {
		t.Error("expected the original cause to be chained")
	}
}

type testAdderOnly interface {
	Dynamic
	AddToTags(string)
}

func TestCompileFieldWithoutGetterOrSetter(t *testing.T) {
	_, err := SchemaOf[testAdderOnly]()
	if !IsValueMappingError(err) {
		t.Fatalf("expected ValueMappingError, got %v", err)
	}

	vme := err.(*ValueMappingError)
	if vme.FieldName != "tags" {
		t.Errorf("expected failing field tags, got %q", vme.FieldName)
	}
}

type testPutterOnly interface {
	Dynamic
	PutIntoAttributes(key, value string)
	RemoveFromAttributes(key string)
}

func TestCompilePutterNeedsGetterOrSetter(t *testing.T) {
	_, err := SchemaOf[testPutterOnly]()
	if !IsValueMappingError(err) {
		t.Fatalf("expected ValueMappingError, got %v", err)
	}

	vme := err.(*ValueMappingError)
	if vme.FieldName != "attributes" {
		t.Errorf("expected failing field attributes, got %q", vme.FieldName)
	}
}

type testMapAccess interface {
	Dynamic
	GetAttributes() map[string]string
	PutIntoAttributes(key, value string)
	RemoveFromAttributes(key string)
}

func TestCompileMapFieldFromGetter(t *testing.T) {
	schema, err := SchemaOf[testMapAccess]()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	attrs := fieldSchema(t, schema, "attributes")
	if attrs.Type != avro.TypeMap {
		t.Fatalf("expected map schema, got %s", attrs.Type)
	}
	if attrs.Values.Type != avro.TypeString {
		t.Errorf("expected string values, got %s", attrs.Values.Type)
	}
}

type testSetterOnly interface {
	Dynamic
	SetName(string)
}

func TestCompileSetterFallback(t *testing.T) {
	schema, err := SchemaOf[testSetterOnly]()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := fieldSchema(t, schema, "name").Type; got != avro.TypeString {
		t.Errorf("expected name to map to string from setter, got %s", got)
	}
}

type testBareGet interface {
	Dynamic
	Get() string
}

func TestCompileNamingErrorPropagates(t *testing.T) {
	_, err := SchemaOf[testBareGet]()
	if !IsNamingError(err) {
		t.Fatalf("expected NamingError, got %v", err)
	}
}

func TestCompileIdempotent(t *testing.T) {
	first, err := SchemaOf[testEveryType]()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := SchemaOf[testEveryType]()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !first.Equal(second) {
		t.Errorf("expected identical schemas:\n  first:  %s\n  second: %s", first, second)
	}
}

func TestCompileFirstMetadataWins(t *testing.T) {
	// The getter is enumerated before the setter, so its declaration is
	// registered first and the conflicting one on the setter is dropped.
	schema, err := SchemaOf[testModel](
		Optional("GetOptionalValue"),
		WithMetadata("SetOptionalValue", FieldMeta{Required: true}),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !fieldSchema(t, schema, "optionalValue").Optional() {
		t.Error("expected first-registered metadata to win")
	}
}

type testTags interface {
	Dynamic
	GetTags() []string
	AddToTags(string)
}

func TestCompileAdderParamMetadata(t *testing.T) {
	schema, err := SchemaOf[testTags](
		WithParamMetadata("AddToTags", 0, FieldMeta{Required: false}),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tags := fieldSchema(t, schema, "tags")
	if !tags.Optional() {
		t.Fatalf("expected tags to be nullable, got %s", tags)
	}
	// Field metadata travels down the recursion, so array items are
	// union-wrapped as well.
	if !tags.NonNull().Items.Optional() {
		t.Errorf("expected tags items to be nullable too, got %s", tags.NonNull().Items)
	}
}

func TestCompileNestedRecordOptional(t *testing.T) {
	schema, err := SchemaOf[testEveryType](Optional("GetProfile"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	profile := fieldSchema(t, schema, "profile")
	if !profile.Optional() {
		t.Fatalf("expected profile to be nullable, got %s", profile)
	}
	if profile.NonNull().Type != avro.TypeRecord {
		t.Errorf("expected nullable union around record, got %s", profile.NonNull().Type)
	}
}

type testBadMap interface {
	Dynamic
	GetScores() map[int32]string
}

func TestCompileMapRequiresStringKeys(t *testing.T) {
	_, err := SchemaOf[testBadMap]()
	if !IsValueMappingError(err) {
		t.Fatalf("expected ValueMappingError, got %v", err)
	}
}

func TestCompileNilDescriptor(t *testing.T) {
	if _, err := Compile(nil); !IsValueMappingError(err) {
		t.Fatalf("expected ValueMappingError, got %v", err)
	}
}

func TestCompileDeterministicFieldOrder(t *testing.T) {
	first, _ := SchemaOf[testEveryType]()
	second, _ := SchemaOf[testEveryType]()

	for i := range first.Fields {
		if first.Fields[i].Name != second.Fields[i].Name {
			t.Fatalf("field order differs at %d: %s vs %s",
				i, first.Fields[i].Name, second.Fields[i].Name)
		}
	}
}

func TestDescribeRejectsNonInterface(t *testing.T) {
	if _, err := Describe(reflect.TypeOf("")); err == nil {
		t.Fatal("expected error describing a non-interface type")
	}
}
