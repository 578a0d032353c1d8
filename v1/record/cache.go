package record

import (
	"fmt"
	"reflect"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/streamhaus/dynrec/v1/avro"
)

// SchemaCache memoizes compiled schemas per interface type.
//
// Compilation itself is pure and always safe to repeat, but it walks the
// whole interface reflectively; callers on hot paths should compile once per
// type. The cache guarantees at most one compile per interface under
// concurrent first access through singleflight, and serves all later lookups
// from memory.
type SchemaCache struct {
	compiler *Compiler
	group    singleflight.Group

	mu      sync.RWMutex
	schemas map[reflect.Type]*avro.Schema
}

// NewSchemaCache creates a schema cache backed by the given compiler.
// Passing nil uses a default compiler.
func NewSchemaCache(compiler *Compiler) *SchemaCache {
	if compiler == nil {
		compiler = NewCompiler()
	}
	return &SchemaCache{
		compiler: compiler,
		schemas:  make(map[reflect.Type]*avro.Schema),
	}
}

// SchemaFor returns the compiled schema for an interface type, compiling it
// on first access. DescribeOptions only take effect on the call that
// performs the compile; later calls return the cached schema as-is.
func (c *SchemaCache) SchemaFor(t reflect.Type, opts ...DescribeOption) (*avro.Schema, error) {
	c.mu.RLock()
	if s, ok := c.schemas[t]; ok {
		c.mu.RUnlock()
		return s, nil
	}
	c.mu.RUnlock()

	key := cacheKey(t)
	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		c.mu.RLock()
		if s, ok := c.schemas[t]; ok {
			c.mu.RUnlock()
			return s, nil
		}
		c.mu.RUnlock()

		desc, err := Describe(t, opts...)
		if err != nil {
			return nil, err
		}
		s, err := c.compiler.Compile(desc)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.schemas[t] = s
		c.mu.Unlock()
		return s, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*avro.Schema), nil
}

func cacheKey(t reflect.Type) string {
	return fmt.Sprintf("%s.%s", t.PkgPath(), t.Name())
}
