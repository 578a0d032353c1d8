// Package avro provides an in-memory model for Avro schemas and a generic,
// schema-shaped record container.
//
// The Schema type covers the subset of Avro needed by dynamic records:
// primitives, records, enums, arrays, maps and nullable unions. Schemas
// marshal to and parse from standard Avro schema JSON, so they can be
// registered with and fetched from a Confluent Schema Registry as-is.
//
// The Record type is an untyped key/value container shaped by one record
// schema. It is the runtime backing store for dynamic records: typed
// accessors resolve to Get/Set/AppendTo/PutInto/RemoveFrom calls against it.
//
// Basic Usage:
//
//	schema := avro.NewRecordSchema("User", []avro.Field{
//	    avro.NewField("name", avro.String()),
//	    avro.NewFieldWithDefault("nickname", avro.Nullable(avro.String()), nil),
//	    avro.NewField("tags", avro.NewArraySchema(avro.String())),
//	})
//
//	rec, err := avro.NewRecord(schema)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	_ = rec.Set("name", "Ada")
//	_ = rec.AppendTo("tags", "admin")
//
//	data, _ := json.Marshal(schema) // canonical Avro schema JSON
package avro
