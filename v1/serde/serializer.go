package serde

import (
	"fmt"
	"sync"

	"github.com/linkedin/goavro/v2"

	"github.com/streamhaus/dynrec/v1/record"
	"github.com/streamhaus/dynrec/v1/schema_registry"
)

// DefaultSubjectSuffix is appended to the topic to form the registry
// subject, following the Confluent topic-name subject strategy.
const DefaultSubjectSuffix = "-value"

// Serializer turns dynamic records into Confluent-framed Avro payloads.
//
// For each record it registers the record's schema under "<topic>-value"
// (registrations of an already-known schema are served from the registry
// client's cache), encodes the record with a goavro codec cached per schema
// ID, and prepends the Confluent wire header.
type Serializer struct {
	registry schema_registry.Registry
	suffix   string

	mu     sync.RWMutex
	codecs map[int]*goavro.Codec
}

// SerializerConfig holds configuration for a Serializer.
type SerializerConfig struct {
	// Registry is the schema registry client. Required.
	Registry schema_registry.Registry

	// SubjectSuffix is appended to the topic to form the subject.
	// Default: "-value".
	SubjectSuffix string
}

// NewSerializer creates a serializer backed by the given registry.
func NewSerializer(cfg SerializerConfig) (*Serializer, error) {
	if cfg.Registry == nil {
		return nil, fmt.Errorf("serde: registry is required")
	}
	if cfg.SubjectSuffix == "" {
		cfg.SubjectSuffix = DefaultSubjectSuffix
	}
	return &Serializer{
		registry: cfg.Registry,
		suffix:   cfg.SubjectSuffix,
		codecs:   make(map[int]*goavro.Codec),
	}, nil
}

// Serialize encodes a dynamic record for the given topic.
//
// The returned payload is [magic_byte][schema_id][avro_binary]. Fails when
// the record's schema cannot be registered, when a required field is unset,
// or when encoding fails.
func (s *Serializer) Serialize(topic string, rec record.Dynamic) ([]byte, error) {
	if rec == nil || rec.Record() == nil {
		return nil, fmt.Errorf("serde: cannot serialize nil record")
	}

	generic := rec.Record()
	schema := generic.Schema()

	id, err := s.registry.Register(topic+s.suffix, schema)
	if err != nil {
		return nil, fmt.Errorf("serde: failed to register schema for %s: %w", schema.Name, err)
	}

	codec, err := s.codecFor(id, schema.String())
	if err != nil {
		return nil, err
	}

	native, err := nativeFromRecord(generic)
	if err != nil {
		return nil, fmt.Errorf("serde: unable to serialize %s: %w", schema.Name, err)
	}

	payload, err := codec.BinaryFromNative(nil, native)
	if err != nil {
		return nil, fmt.Errorf("serde: unable to serialize %s: %w", schema.Name, err)
	}

	return append(schema_registry.EncodeSchemaID(id), payload...), nil
}

// codecFor returns the goavro codec for a schema ID, building it once.
func (s *Serializer) codecFor(id int, schemaJSON string) (*goavro.Codec, error) {
	s.mu.RLock()
	codec, ok := s.codecs[id]
	s.mu.RUnlock()
	if ok {
		return codec, nil
	}

	codec, err := goavro.NewCodec(schemaJSON)
	if err != nil {
		return nil, fmt.Errorf("serde: failed to build codec for schema %d: %w", id, err)
	}

	s.mu.Lock()
	s.codecs[id] = codec
	s.mu.Unlock()
	return codec, nil
}
