package serde

import (
	"go.uber.org/fx"

	"github.com/streamhaus/dynrec/v1/schema_registry"
)

// FXModule defines the Fx module for the serde package. It provides a
// Serializer and Deserializer wired to the schema_registry.Registry present
// in the container.
//
// Usage:
//
//	app := fx.New(
//	    schema_registry.FXModule,
//	    serde.FXModule,
//	    fx.Provide(func() schema_registry.Config {
//	        return schema_registry.Config{URL: "http://localhost:8081"}
//	    }),
//	)
var FXModule = fx.Module("serde",
	fx.Provide(
		NewSerializerWithDI,
		NewDeserializerWithDI,
	),
)

// SerdeParams groups the dependencies needed to create serializers.
type SerdeParams struct {
	fx.In

	Registry schema_registry.Registry
}

// NewSerializerWithDI creates a Serializer using dependency injection.
func NewSerializerWithDI(params SerdeParams) (*Serializer, error) {
	return NewSerializer(SerializerConfig{Registry: params.Registry})
}

// NewDeserializerWithDI creates a Deserializer using dependency injection.
func NewDeserializerWithDI(params SerdeParams) (*Deserializer, error) {
	return NewDeserializer(DeserializerConfig{Registry: params.Registry})
}
