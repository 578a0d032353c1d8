package record

import (
	"fmt"
	"reflect"

	"github.com/streamhaus/dynrec/v1/avro"
)

// Dynamic is the capability marker for record interfaces. A record interface
// embeds Dynamic and declares its fields through accessor operations:
//
//	type Customer interface {
//	    record.Dynamic
//
//	    GetName() string
//	    SetName(string)
//	    GetTags() []string
//	    AddToTags(string)
//	}
//
// Any interface type implementing Dynamic can be compiled into an Avro
// schema, and compiled field types that themselves implement Dynamic become
// nested record schemas.
type Dynamic interface {
	// Record returns the generic record instance backing this handle.
	Record() *avro.Record
}

// Enum is the capability for named types whose values map onto an Avro enum.
// Symbols must be returned in declaration order; the enum's schema name is
// the Go type name.
type Enum interface {
	EnumSymbols() []string
}

// Metadata is one piece of per-operation metadata. Implementations declare a
// kind; the annotation collector keeps at most one value per kind per field.
type Metadata interface {
	MetadataKind() string
}

// KindField is the metadata kind carrying per-field schema options.
const KindField = "field"

// FieldMeta declares schema options for the field an operation touches.
// Attach it to any of the field's operations via DescribeOptions; the first
// declaration encountered wins.
type FieldMeta struct {
	// Required controls optionality. When false the field's schema type is
	// wrapped in a [null, T] union with a null default. Fields without any
	// FieldMeta are required.
	Required bool
}

// MetadataKind implements Metadata.
func (FieldMeta) MetadataKind() string { return KindField }

// Operation describes one declared operation on a record interface: its
// name, signature and attached metadata.
type Operation struct {
	// Name is the declared method name, e.g. "GetFirstName".
	Name string

	// ParamTypes are the operation's parameter types, in order.
	ParamTypes []reflect.Type

	// ReturnType is the operation's first return type, or nil if it
	// returns nothing.
	ReturnType reflect.Type

	// Metadata holds metadata attached to the operation itself.
	Metadata []Metadata

	// ParamMetadata holds metadata attached to individual parameters,
	// aligned with ParamTypes.
	ParamMetadata [][]Metadata
}

// InterfaceDescriptor is the reflective description of a record interface:
// its simple name and declared operations. It is the input of the schema
// compiler and the dynamic adapter, and is built once per Describe call.
type InterfaceDescriptor struct {
	// Name is the interface's simple type name; the compiled record schema
	// is named after it.
	Name string

	// Type is the described interface type. Used as cache identity.
	Type reflect.Type

	// Operations are the declared operations, in reflection order
	// (alphabetical by method name, stable across runs).
	Operations []Operation
}

type describeConfig struct {
	opMeta    map[string][]Metadata
	paramMeta map[string]map[int][]Metadata
}

// DescribeOption attaches metadata to operations during Describe. Go has no
// method annotations, so per-field metadata is supplied explicitly alongside
// the interface type.
type DescribeOption func(*describeConfig)

// WithMetadata attaches metadata to the named operation.
func WithMetadata(operation string, meta ...Metadata) DescribeOption {
	return func(cfg *describeConfig) {
		cfg.opMeta[operation] = append(cfg.opMeta[operation], meta...)
	}
}

// WithParamMetadata attaches metadata to one parameter of the named
// operation. Parameter indexes are zero-based.
func WithParamMetadata(operation string, param int, meta ...Metadata) DescribeOption {
	return func(cfg *describeConfig) {
		if cfg.paramMeta[operation] == nil {
			cfg.paramMeta[operation] = make(map[int][]Metadata)
		}
		cfg.paramMeta[operation][param] = append(cfg.paramMeta[operation][param], meta...)
	}
}

// Optional marks the fields touched by the named operations as not required.
// Shorthand for WithMetadata(op, FieldMeta{Required: false}).
func Optional(operations ...string) DescribeOption {
	return func(cfg *describeConfig) {
		for _, op := range operations {
			cfg.opMeta[op] = append(cfg.opMeta[op], FieldMeta{Required: false})
		}
	}
}

// Describe enumerates the declared operations of a record interface type
// into an InterfaceDescriptor. The type must be an interface; methods
// inherited from embedded interfaces (including Dynamic itself) are listed
// too, and ones that match no accessor prefix are ignored by the compiler.
func Describe(t reflect.Type, opts ...DescribeOption) (*InterfaceDescriptor, error) {
	if t == nil || t.Kind() != reflect.Interface {
		return nil, fmt.Errorf("record: cannot describe %v: not an interface type", t)
	}

	cfg := describeConfig{
		opMeta:    make(map[string][]Metadata),
		paramMeta: make(map[string]map[int][]Metadata),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	desc := &InterfaceDescriptor{
		Name: t.Name(),
		Type: t,
	}

	for i := 0; i < t.NumMethod(); i++ {
		m := t.Method(i)

		op := Operation{
			Name:     m.Name,
			Metadata: cfg.opMeta[m.Name],
		}

		ft := m.Type
		op.ParamTypes = make([]reflect.Type, ft.NumIn())
		op.ParamMetadata = make([][]Metadata, ft.NumIn())
		for p := 0; p < ft.NumIn(); p++ {
			op.ParamTypes[p] = ft.In(p)
			op.ParamMetadata[p] = cfg.paramMeta[m.Name][p]
		}
		if ft.NumOut() > 0 {
			op.ReturnType = ft.Out(0)
		}

		desc.Operations = append(desc.Operations, op)
	}

	return desc, nil
}

// DescribeInterface is the generic convenience form of Describe:
//
//	desc, err := record.DescribeInterface[Customer]()
func DescribeInterface[T Dynamic](opts ...DescribeOption) (*InterfaceDescriptor, error) {
	return Describe(reflect.TypeOf((*T)(nil)).Elem(), opts...)
}
