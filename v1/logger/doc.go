// Package logger provides structured logging built on Uber's Zap.
//
// It wraps zap.Logger behind a small interface taking a message, an optional
// error and optional field maps, and exposes the underlying Zap instance for
// components (like the schema compiler) that take a *zap.Logger directly.
//
// Basic Usage:
//
//	log := logger.NewLoggerClient(logger.Config{
//	    Level:       logger.Info,
//	    ServiceName: "record-serde",
//	})
//
//	log.Info("Schema registered", nil, map[string]interface{}{
//	    "subject": "customers-value",
//	})
//
// With the Fx module:
//
//	app := fx.New(
//	    logger.FXModule,
//	    fx.Provide(func() logger.Config {
//	        return logger.Config{Level: logger.Info, ServiceName: "record-serde"}
//	    }),
//	)
package logger
