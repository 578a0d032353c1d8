package record

import "go.uber.org/zap"

// collector accumulates metadata per field name across every operation that
// touches the field. When two pieces of metadata of the same kind show up
// for one field, the first one registered wins and the duplicate is dropped
// with a debug log. This tolerates the same FieldMeta being declared on both
// a getter and its setter.
type collector struct {
	log    *zap.Logger
	fields map[string]map[string]Metadata
}

func newCollector(log *zap.Logger) *collector {
	if log == nil {
		log = zap.NewNop()
	}
	return &collector{
		log:    log,
		fields: make(map[string]map[string]Metadata),
	}
}

func (c *collector) add(field string, meta []Metadata) {
	byKind, ok := c.fields[field]
	if !ok {
		byKind = make(map[string]Metadata)
		c.fields[field] = byKind
	}

	for _, m := range meta {
		kind := m.MetadataKind()
		if _, exists := byKind[kind]; exists {
			c.log.Debug("duplicate metadata dropped",
				zap.String("field", field),
				zap.String("kind", kind),
			)
			continue
		}
		byKind[kind] = m
	}
}

// forField returns the merged metadata for a field, keyed by kind.
// Never returns nil.
func (c *collector) forField(field string) map[string]Metadata {
	if byKind, ok := c.fields[field]; ok {
		return byKind
	}
	return map[string]Metadata{}
}
