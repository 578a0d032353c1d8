package record

import (
	"reflect"
	"strings"

	"go.uber.org/zap"

	"github.com/streamhaus/dynrec/v1/avro"
)

var (
	dynamicType = reflect.TypeOf((*Dynamic)(nil)).Elem()
	enumType    = reflect.TypeOf((*Enum)(nil)).Elem()
)

// Compiler derives Avro schemas from record interface descriptors.
//
// Compilation is a pure function of the descriptor: it touches no shared
// state, is safe for concurrent use and is idempotent. Callers that compile
// the same interface repeatedly should memoize through a SchemaCache.
type Compiler struct {
	log *zap.Logger
}

// CompilerOption configures a Compiler.
type CompilerOption func(*Compiler)

// WithLogger sets the logger used for duplicate-metadata debug logs.
// Defaults to a no-op logger.
func WithLogger(log *zap.Logger) CompilerOption {
	return func(c *Compiler) {
		c.log = log
	}
}

// NewCompiler creates a schema compiler.
func NewCompiler(opts ...CompilerOption) *Compiler {
	c := &Compiler{log: zap.NewNop()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compile produces the Avro record schema for a record interface.
//
// Operations are classified by accessor prefix; field names are the union of
// the names seen across all operation kinds, in first-discovery order (the
// descriptor's operation order, which reflection keeps stable). Each field's
// declared type is taken from its getter's return type, falling back to its
// single setter's parameter type. A field with neither fails with a
// ValueMappingError, as does a field whose declared type matches no mapping
// rule. Operation names with an empty prefix remainder fail with a
// NamingError.
func (c *Compiler) Compile(desc *InterfaceDescriptor) (*avro.Schema, error) {
	if desc == nil {
		return nil, &ValueMappingError{Reason: "nil interface descriptor"}
	}

	getters := make(map[string]*Operation)
	setters := make(map[string]*Operation)
	meta := newCollector(c.log)
	var order []string

	seen := make(map[string]bool)
	discover := func(name string) {
		if !seen[name] {
			seen[name] = true
			order = append(order, name)
		}
	}

	for i := range desc.Operations {
		op := &desc.Operations[i]

		switch {
		case strings.HasPrefix(op.Name, PrefixGet):
			name, err := FieldName(op.Name, PrefixGet)
			if err != nil {
				return nil, err
			}
			discover(name)
			getters[name] = op
			meta.add(name, op.Metadata)

		case strings.HasPrefix(op.Name, PrefixIs):
			name, err := FieldName(op.Name, PrefixIs)
			if err != nil {
				return nil, err
			}
			discover(name)
			getters[name] = op
			meta.add(name, op.Metadata)

		case strings.HasPrefix(op.Name, PrefixSet):
			name, err := FieldName(op.Name, PrefixSet)
			if err != nil {
				return nil, err
			}
			discover(name)
			setters[name] = op
			meta.add(name, op.Metadata)

		case strings.HasPrefix(op.Name, PrefixAddTo):
			name, err := FieldName(op.Name, PrefixAddTo)
			if err != nil {
				return nil, err
			}
			discover(name)
			if len(op.ParamMetadata) > 0 {
				meta.add(name, op.ParamMetadata[0])
			}
			meta.add(name, op.Metadata)

		case strings.HasPrefix(op.Name, PrefixPutInto):
			name, err := FieldName(op.Name, PrefixPutInto)
			if err != nil {
				return nil, err
			}
			discover(name)
			if len(op.ParamMetadata) > 0 {
				meta.add(name, op.ParamMetadata[0])
			}
			meta.add(name, op.Metadata)

		case strings.HasPrefix(op.Name, PrefixRemoveFrom):
			name, err := FieldName(op.Name, PrefixRemoveFrom)
			if err != nil {
				return nil, err
			}
			discover(name)
			meta.add(name, op.Metadata)
		}
		// Operations matching no prefix (such as the Dynamic marker's
		// Record method) declare no field and are skipped.
	}

	fields := make([]avro.Field, 0, len(order))
	for _, name := range order {
		fieldType, err := typeOfField(name, getters[name], setters[name])
		if err != nil {
			return nil, err
		}

		fieldSchema, err := c.schemaFor(fieldType, meta.forField(name))
		if err != nil {
			return nil, &ValueMappingError{
				FieldName: name,
				Reason:    "type resolution failed",
				Cause:     err,
			}
		}

		if fieldSchema.Optional() {
			fields = append(fields, avro.NewFieldWithDefault(name, fieldSchema, nil))
		} else {
			fields = append(fields, avro.NewField(name, fieldSchema))
		}
	}

	return avro.NewRecordSchema(desc.Name, fields), nil
}

// typeOfField determines a field's declared value type, preferring the
// getter's return type and falling back to the single setter parameter.
func typeOfField(name string, getter, setter *Operation) (reflect.Type, error) {
	if getter != nil && getter.ReturnType != nil {
		return getter.ReturnType, nil
	}
	if setter != nil && len(setter.ParamTypes) == 1 {
		return setter.ParamTypes[0], nil
	}
	return nil, &ValueMappingError{
		FieldName: name,
		Reason:    "no getter or setter found for field",
	}
}

// schemaFor maps a declared Go type onto an Avro schema. Mapping rules, in
// precedence order: nested record capability, enum capability, recognized
// scalar kinds, raw bytes, slices as arrays, string-keyed maps as maps.
// Anything else fails with a ValueMappingError naming the type.
//
// The field's metadata travels down the recursion, so an optional field's
// collection elements and nested records are union-wrapped at every level.
func (c *Compiler) schemaFor(t reflect.Type, meta map[string]Metadata) (*avro.Schema, error) {
	if t.Kind() == reflect.Interface && t != dynamicType && t.Implements(dynamicType) {
		nested, err := Describe(t)
		if err != nil {
			return nil, err
		}
		nestedSchema, err := c.Compile(nested)
		if err != nil {
			return nil, err
		}
		return optionalIfNeeded(nestedSchema, meta), nil
	}

	if t.Kind() != reflect.Interface && t.Implements(enumType) {
		symbols := reflect.Zero(t).Interface().(Enum).EnumSymbols()
		return optionalIfNeeded(avro.NewEnumSchema(t.Name(), symbols), meta), nil
	}

	switch t.Kind() {
	case reflect.String:
		return optionalIfNeeded(avro.String(), meta), nil
	case reflect.Bool:
		return optionalIfNeeded(avro.Boolean(), meta), nil
	case reflect.Int32:
		return optionalIfNeeded(avro.Int(), meta), nil
	case reflect.Int64:
		return optionalIfNeeded(avro.Long(), meta), nil
	case reflect.Float32:
		return optionalIfNeeded(avro.Float(), meta), nil
	case reflect.Float64:
		return optionalIfNeeded(avro.Double(), meta), nil

	case reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 {
			return optionalIfNeeded(avro.Bytes(), meta), nil
		}
		items, err := c.schemaFor(t.Elem(), meta)
		if err != nil {
			return nil, err
		}
		return optionalIfNeeded(avro.NewArraySchema(items), meta), nil

	case reflect.Map:
		if t.Key().Kind() != reflect.String {
			return nil, &ValueMappingError{
				TypeName: t.String(),
				Reason:   "map keys must be strings",
			}
		}
		values, err := c.schemaFor(t.Elem(), meta)
		if err != nil {
			return nil, err
		}
		return optionalIfNeeded(avro.NewMapSchema(values), meta), nil
	}

	return nil, &ValueMappingError{
		TypeName: t.String(),
		Reason:   "unsupported type",
	}
}

// optionalIfNeeded wraps a schema into a nullable union when the field's
// metadata marks it as not required.
func optionalIfNeeded(s *avro.Schema, meta map[string]Metadata) *avro.Schema {
	if fm, ok := meta[KindField].(FieldMeta); ok && !fm.Required {
		return avro.Nullable(s)
	}
	return s
}

// Compile derives the Avro schema for a descriptor using a default compiler.
func Compile(desc *InterfaceDescriptor) (*avro.Schema, error) {
	return NewCompiler().Compile(desc)
}

// SchemaOf compiles the Avro schema for a record interface type:
//
//	schema, err := record.SchemaOf[Customer](
//	    record.Optional("GetNickname"),
//	)
func SchemaOf[T Dynamic](opts ...DescribeOption) (*avro.Schema, error) {
	desc, err := DescribeInterface[T](opts...)
	if err != nil {
		return nil, err
	}
	return NewCompiler().Compile(desc)
}
