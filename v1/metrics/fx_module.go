package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"

	"github.com/streamhaus/dynrec/v1/observability"
)

// FXModule defines the Fx module for the metrics observer.
// It provides a prometheus registry, the Observer built on it, and binds the
// Observer to the observability.Observer interface so other components pick
// it up automatically.
//
// Usage:
//
//	app := fx.New(
//	    metrics.FXModule,
//	    fx.Provide(func() metrics.Config {
//	        return metrics.Config{Namespace: "dynrec", ServiceName: "record-serde"}
//	    }),
//	)
var FXModule = fx.Module("metrics",
	fx.Provide(
		NewRegistry,
		NewObserverWithDI,
	),
)

// NewRegistry creates the dedicated prometheus registry for this service.
func NewRegistry() *prometheus.Registry {
	return prometheus.NewRegistry()
}

// ObserverParams groups the dependencies needed to create the metrics observer.
type ObserverParams struct {
	fx.In

	Config   Config
	Registry *prometheus.Registry
}

// NewObserverWithDI creates the metrics observer using dependency injection,
// exposing it both as *Observer and as observability.Observer.
func NewObserverWithDI(params ObserverParams) (*Observer, observability.Observer) {
	o := NewObserver(params.Config, params.Registry)
	return o, o
}
