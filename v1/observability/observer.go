package observability

import "time"

// OperationContext carries the details of one component operation for
// observation: what ran, against which resource, how long it took and how it
// ended.
type OperationContext struct {
	// Component is the emitting component, e.g. "schema_registry".
	Component string

	// Operation is the operation name, e.g. "register".
	Operation string

	// Resource is the primary resource operated on, e.g. a subject name.
	Resource string

	// SubResource is additional context, e.g. a schema name.
	SubResource string

	// Duration is how long the operation took.
	Duration time.Duration

	// Error is the operation's error, or nil on success.
	Error error

	// Size is an operation-specific payload size in bytes, or 0.
	Size int64

	// Metadata holds extra key/value context.
	Metadata map[string]interface{}
}

// Observer receives operation notifications from components. Implementations
// must be safe for concurrent use; components call ObserveOperation inline.
type Observer interface {
	ObserveOperation(ctx OperationContext)
}
