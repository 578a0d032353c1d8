package record

import (
	"fmt"
	"strings"

	"github.com/streamhaus/dynrec/v1/avro"
)

type opKind int

const (
	opGet opKind = iota
	opSet
	opAdd
	opPut
	opRemove
)

type boundOp struct {
	kind  opKind
	field string
}

// Adapter binds a record interface's operations to one generic record
// instance. It is the runtime half of a dynamic record: the schema compiler
// derives the shape, the adapter dispatches accessor calls against a record
// shaped by it.
//
// Go has no dynamic proxies, so dispatch is an explicit table keyed by
// operation name, built once at construction from the descriptor. Typed
// wrappers implement their record interface by delegating each method to
// Dispatch or to the field-level accessors.
//
// The adapter holds no state beyond the binding and adds no locking;
// concurrent mutation of the same field requires external coordination.
type Adapter struct {
	rec *avro.Record
	ops map[string]boundOp
}

// Bind constructs an adapter dispatching the descriptor's operations against
// the given generic record. Operations that match no accessor prefix are
// left out of the dispatch table; operation names with an empty prefix
// remainder fail with a NamingError.
func Bind(desc *InterfaceDescriptor, rec *avro.Record) (*Adapter, error) {
	if desc == nil {
		return nil, fmt.Errorf("record: cannot bind nil descriptor")
	}
	if rec == nil {
		return nil, fmt.Errorf("record: cannot bind nil record instance")
	}

	ops := make(map[string]boundOp, len(desc.Operations))
	for _, op := range desc.Operations {
		kind, prefix, ok := classify(op.Name)
		if !ok {
			continue
		}
		field, err := FieldName(op.Name, prefix)
		if err != nil {
			return nil, err
		}
		ops[op.Name] = boundOp{kind: kind, field: field}
	}

	return &Adapter{rec: rec, ops: ops}, nil
}

func classify(operation string) (opKind, string, bool) {
	switch {
	case strings.HasPrefix(operation, PrefixGet):
		return opGet, PrefixGet, true
	case strings.HasPrefix(operation, PrefixIs):
		return opGet, PrefixIs, true
	case strings.HasPrefix(operation, PrefixSet):
		return opSet, PrefixSet, true
	case strings.HasPrefix(operation, PrefixAddTo):
		return opAdd, PrefixAddTo, true
	case strings.HasPrefix(operation, PrefixPutInto):
		return opPut, PrefixPutInto, true
	case strings.HasPrefix(operation, PrefixRemoveFrom):
		return opRemove, PrefixRemoveFrom, true
	}
	return 0, "", false
}

// Record returns the bound generic record instance. This also makes the
// adapter itself satisfy Dynamic, so it can be handed straight to a
// serializer.
func (a *Adapter) Record() *avro.Record {
	return a.rec
}

// Get reads a field's current value from the bound record.
//
// A missing value on a required field fails with a
// RequiredFieldMissingError; on an optional field it yields nil.
func (a *Adapter) Get(field string) (interface{}, error) {
	f, ok := a.rec.Schema().Field(field)
	if !ok {
		return nil, fmt.Errorf("%w: %s", avro.ErrUnknownField, field)
	}

	v, set := a.rec.Get(field)
	if !set {
		if !f.Schema.Optional() {
			return nil, &RequiredFieldMissingError{FieldName: field}
		}
		return nil, nil
	}
	return v, nil
}

// Set writes a field value into the bound record. No type re-validation
// happens here beyond what the record container enforces from its schema.
func (a *Adapter) Set(field string, value interface{}) error {
	return a.rec.Set(field, value)
}

// AppendTo appends a value to an array field of the bound record.
func (a *Adapter) AppendTo(field string, value interface{}) error {
	return a.rec.AppendTo(field, value)
}

// PutInto inserts a keyed value into a map field of the bound record.
func (a *Adapter) PutInto(field, key string, value interface{}) error {
	return a.rec.PutInto(field, key, value)
}

// RemoveFrom removes an entry from a collection field of the bound record.
func (a *Adapter) RemoveFrom(field string, key interface{}) error {
	return a.rec.RemoveFrom(field, key)
}

// Dispatch invokes an operation by its interface method name:
//
//	v, err := adapter.Dispatch("GetFirstName")
//	_, err = adapter.Dispatch("SetFirstName", "Ada")
//	_, err = adapter.Dispatch("PutIntoAttributes", "size", "large")
//
// Getter dispatches return the field value; mutating dispatches return nil.
func (a *Adapter) Dispatch(operation string, args ...interface{}) (interface{}, error) {
	op, ok := a.ops[operation]
	if !ok {
		return nil, fmt.Errorf("record: unknown operation %q", operation)
	}

	switch op.kind {
	case opGet:
		if err := wantArgs(operation, args, 0); err != nil {
			return nil, err
		}
		return a.Get(op.field)

	case opSet:
		if err := wantArgs(operation, args, 1); err != nil {
			return nil, err
		}
		return nil, a.Set(op.field, args[0])

	case opAdd:
		if err := wantArgs(operation, args, 1); err != nil {
			return nil, err
		}
		return nil, a.AppendTo(op.field, args[0])

	case opPut:
		if err := wantArgs(operation, args, 2); err != nil {
			return nil, err
		}
		key, ok := args[0].(string)
		if !ok {
			return nil, fmt.Errorf("record: operation %s requires a string key, got %T", operation, args[0])
		}
		return nil, a.PutInto(op.field, key, args[1])

	case opRemove:
		if err := wantArgs(operation, args, 1); err != nil {
			return nil, err
		}
		return nil, a.RemoveFrom(op.field, args[0])
	}

	return nil, fmt.Errorf("record: unknown operation kind for %q", operation)
}

func wantArgs(operation string, args []interface{}, n int) error {
	if len(args) != n {
		return fmt.Errorf("record: operation %s expects %d argument(s), got %d", operation, n, len(args))
	}
	return nil
}
