package record

import (
	"reflect"
	"sync"
	"testing"
)

func TestSchemaCacheReturnsSameSchema(t *testing.T) {
	cache := NewSchemaCache(nil)
	typ := reflect.TypeOf((*testModel)(nil)).Elem()

	first, err := cache.SchemaFor(typ)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := cache.SchemaFor(typ)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first != second {
		t.Error("expected cached schema pointer to be reused")
	}
}

func TestSchemaCacheConcurrentFirstAccess(t *testing.T) {
	cache := NewSchemaCache(nil)
	typ := reflect.TypeOf((*testEveryType)(nil)).Elem()

	const goroutines = 16

	var wg sync.WaitGroup
	results := make([]interface{}, goroutines)
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s, err := cache.SchemaFor(typ)
			if err != nil {
				results[i] = err
				return
			}
			results[i] = s
		}(i)
	}
	wg.Wait()

	for i := 1; i < goroutines; i++ {
		if results[i] != results[0] {
			t.Fatalf("expected one shared schema, got %v and %v", results[0], results[i])
		}
	}
}

func TestSchemaCachePropagatesCompileErrors(t *testing.T) {
	cache := NewSchemaCache(nil)
	typ := reflect.TypeOf((*testUnsupported)(nil)).Elem()

	if _, err := cache.SchemaFor(typ); !IsValueMappingError(err) {
		t.Fatalf("expected ValueMappingError, got %v", err)
	}

	// Failures are not cached; a later call fails the same way.
	if _, err := cache.SchemaFor(typ); !IsValueMappingError(err) {
		t.Fatalf("expected ValueMappingError on retry, got %v", err)
	}
}
