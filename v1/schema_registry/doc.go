// Package schema_registry provides integration with Confluent Schema Registry.
//
// The client speaks the registry's HTTP API in terms of typed avro.Schema
// values: registration marshals the schema to Avro schema JSON, retrieval
// parses the JSON back into a schema tree. Schemas and IDs are cached
// in-memory for the lifetime of the client, and every remote operation can
// be observed through the observability.Observer seam.
//
// Basic Usage:
//
//	registry, err := schema_registry.NewClient(schema_registry.Config{
//	    URL:      "http://localhost:8081",
//	    Username: "user",     // Optional
//	    Password: "password", // Optional
//	    Timeout:  10 * time.Second,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	schema, err := record.SchemaOf[Customer]()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	schemaID, err := registry.Register("customers-value", schema)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fetched, err := registry.SchemaByID(schemaID)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	compatible, err := registry.IsCompatible("customers-value", schema)
//	if !compatible {
//	    log.Println("Schema is not compatible!")
//	}
//
// Wire Format:
//
// EncodeSchemaID and DecodeSchemaID implement the Confluent wire framing
// used by serializers:
//
//	[magic_byte (1 byte, 0x0)] [schema_id (4 bytes, big-endian)] [payload]
//
// Using with FX:
//
//	app := fx.New(
//	    schema_registry.FXModule,
//	    fx.Provide(
//	        func() schema_registry.Config {
//	            return schema_registry.Config{
//	                URL: os.Getenv("SCHEMA_REGISTRY_URL"),
//	            }
//	        },
//	    ),
//	)
package schema_registry
