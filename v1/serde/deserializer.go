package serde

import (
	"fmt"
	"sync"

	"github.com/linkedin/goavro/v2"

	"github.com/streamhaus/dynrec/v1/avro"
	"github.com/streamhaus/dynrec/v1/schema_registry"
)

// Deserializer turns Confluent-framed Avro payloads back into generic
// records. The writer schema is fetched from the registry by the ID in the
// wire header; codecs are cached per schema ID.
type Deserializer struct {
	registry schema_registry.Registry

	mu     sync.RWMutex
	codecs map[int]*goavro.Codec
}

// DeserializerConfig holds configuration for a Deserializer.
type DeserializerConfig struct {
	// Registry is the schema registry client. Required.
	Registry schema_registry.Registry
}

// NewDeserializer creates a deserializer backed by the given registry.
func NewDeserializer(cfg DeserializerConfig) (*Deserializer, error) {
	if cfg.Registry == nil {
		return nil, fmt.Errorf("serde: registry is required")
	}
	return &Deserializer{
		registry: cfg.Registry,
		codecs:   make(map[int]*goavro.Codec),
	}, nil
}

// Deserialize decodes a Confluent-framed payload into a generic record
// shaped by the writer schema. Bind the result to a record interface
// descriptor for typed access.
func (d *Deserializer) Deserialize(data []byte) (*avro.Record, error) {
	id, payload, err := schema_registry.DecodeSchemaID(data)
	if err != nil {
		return nil, fmt.Errorf("serde: %w", err)
	}

	schema, err := d.registry.SchemaByID(id)
	if err != nil {
		return nil, fmt.Errorf("serde: failed to resolve schema %d: %w", id, err)
	}

	codec, err := d.codecFor(id, schema.String())
	if err != nil {
		return nil, err
	}

	native, _, err := codec.NativeFromBinary(payload)
	if err != nil {
		return nil, fmt.Errorf("serde: unable to deserialize %s: %w", schema.Name, err)
	}

	rec, err := recordFromNative(schema, native)
	if err != nil {
		return nil, fmt.Errorf("serde: unable to deserialize %s: %w", schema.Name, err)
	}
	return rec, nil
}

func (d *Deserializer) codecFor(id int, schemaJSON string) (*goavro.Codec, error) {
	d.mu.RLock()
	codec, ok := d.codecs[id]
	d.mu.RUnlock()
	if ok {
		return codec, nil
	}

	codec, err := goavro.NewCodec(schemaJSON)
	if err != nil {
		return nil, fmt.Errorf("serde: failed to build codec for schema %d: %w", id, err)
	}

	d.mu.Lock()
	d.codecs[id] = codec
	d.mu.Unlock()
	return codec, nil
}
