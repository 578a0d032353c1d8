package record

import (
	"go.uber.org/fx"

	"github.com/streamhaus/dynrec/v1/logger"
)

// FXModule defines the Fx module for the record package. It provides a
// Compiler and a SchemaCache memoizing it; a *logger.Logger present in the
// container is picked up automatically for duplicate-metadata debug logs.
//
// Usage:
//
//	app := fx.New(
//	    logger.FXModule,
//	    record.FXModule,
//	    fx.Provide(func() logger.Config {
//	        return logger.Config{Level: logger.Info, ServiceName: "record-serde"}
//	    }),
//	)
var FXModule = fx.Module("record",
	fx.Provide(
		NewCompilerWithDI,
		NewSchemaCacheWithDI,
	),
)

// CompilerParams groups the dependencies needed to create a Compiler.
type CompilerParams struct {
	fx.In

	Logger *logger.Logger `optional:"true"`
}

// NewCompilerWithDI creates a Compiler using dependency injection.
func NewCompilerWithDI(params CompilerParams) *Compiler {
	if params.Logger != nil {
		return NewCompiler(WithLogger(params.Logger.Zap))
	}
	return NewCompiler()
}

// NewSchemaCacheWithDI creates the shared schema cache backed by the
// container's compiler.
func NewSchemaCacheWithDI(compiler *Compiler) *SchemaCache {
	return NewSchemaCache(compiler)
}
