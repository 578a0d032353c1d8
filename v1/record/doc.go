// Package record derives Avro schemas from strongly-typed record interfaces
// and binds those interfaces to generic, schema-shaped record containers at
// runtime.
//
// A record interface declares its fields through accessor-style operations
// and embeds the Dynamic capability marker:
//
//	type Customer interface {
//	    record.Dynamic
//
//	    GetFirstName() string
//	    SetFirstName(string)
//	    GetNickname() string
//	    SetNickname(string)
//	    GetTags() []string
//	    AddToTags(string)
//	    GetAttributes() map[string]string
//	    PutIntoAttributes(key, value string)
//	    RemoveFromAttributes(key string)
//	    IsActive() bool
//	}
//
// Recognized accessor prefixes are Get, Is, Set, AddTo, PutInto and
// RemoveFrom; the field name is the prefix remainder with its leading rune
// lower-cased (GetFirstName -> firstName).
//
// Compiling a Schema:
//
//	schema, err := record.SchemaOf[Customer](
//	    record.Optional("GetNickname"), // nickname becomes [null, string], default null
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Field types may be strings, booleans, int32/int64, float32/float64,
// []byte, slices (Avro arrays), string-keyed maps (Avro maps), named types
// implementing record.Enum (Avro enums), or further record interfaces (Avro
// nested records). Anything else fails compilation with a ValueMappingError
// naming the field and type. Fields are required unless marked otherwise;
// optional fields compile to [null, T] unions defaulting to null.
//
// Binding a Record:
//
//	desc, _ := record.DescribeInterface[Customer]()
//	rec, _ := avro.NewRecord(schema)
//
//	adapter, err := record.Bind(desc, rec)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	_, _ = adapter.Dispatch("SetFirstName", "Ada")
//	name, _ := adapter.Dispatch("GetFirstName")
//
// Reading an unset required field fails with RequiredFieldMissingError;
// reading an unset optional field yields nil.
//
// Compilation is pure and safe for concurrent use. Use SchemaCache to
// guarantee at most one compile per interface type across goroutines.
package record
