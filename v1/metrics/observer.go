package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/streamhaus/dynrec/v1/observability"
)

// Observer is a prometheus-backed observability.Observer. It turns operation
// notifications into three metrics, labeled by component and operation:
//
//   - operations_total (counter, plus a status label: ok / error)
//   - operation_duration_seconds (histogram)
//   - payload_bytes_total (counter, only for operations reporting a size)
type Observer struct {
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	bytes      *prometheus.CounterVec
}

// Config holds configuration for the metrics observer.
type Config struct {
	// Namespace prefixes all metric names, e.g. "dynrec".
	Namespace string `yaml:"namespace" env:"METRICS_NAMESPACE"`

	// ServiceName is attached to all metrics as a constant "service" label.
	ServiceName string `yaml:"service_name" env:"SERVICE_NAME"`
}

// NewObserver creates a prometheus observer and registers its collectors
// with the given registerer. Registration failures panic, matching
// prometheus.MustRegister semantics: duplicate registration is a programming
// error.
func NewObserver(cfg Config, reg prometheus.Registerer) *Observer {
	constLabels := prometheus.Labels{}
	if cfg.ServiceName != "" {
		constLabels["service"] = cfg.ServiceName
	}

	o := &Observer{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Name:        "operations_total",
			Help:        "Total number of component operations.",
			ConstLabels: constLabels,
		}, []string{"component", "operation", "status"}),

		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   cfg.Namespace,
			Name:        "operation_duration_seconds",
			Help:        "Duration of component operations.",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"component", "operation"}),

		bytes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Name:        "payload_bytes_total",
			Help:        "Total payload bytes handled by component operations.",
			ConstLabels: constLabels,
		}, []string{"component", "operation"}),
	}

	reg.MustRegister(o.operations, o.duration, o.bytes)
	return o
}

// ObserveOperation implements observability.Observer.
func (o *Observer) ObserveOperation(ctx observability.OperationContext) {
	status := "ok"
	if ctx.Error != nil {
		status = "error"
	}

	o.operations.WithLabelValues(ctx.Component, ctx.Operation, status).Inc()
	o.duration.WithLabelValues(ctx.Component, ctx.Operation).Observe(ctx.Duration.Seconds())
	if ctx.Size > 0 {
		o.bytes.WithLabelValues(ctx.Component, ctx.Operation).Add(float64(ctx.Size))
	}
}
