package schema_registry

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/streamhaus/dynrec/v1/avro"
	"github.com/streamhaus/dynrec/v1/observability"
)

// Registry provides an interface for interacting with a Confluent Schema
// Registry in terms of typed avro.Schema values. It handles schema
// registration, retrieval, and caching for efficient serialization.
type Registry interface {
	// SchemaByID retrieves a schema by its registry ID
	SchemaByID(id int) (*avro.Schema, error)

	// Latest retrieves the latest version of a schema for a subject
	Latest(subject string) (*Metadata, error)

	// Register registers a schema for a subject and returns its ID
	Register(subject string, schema *avro.Schema) (int, error)

	// IsCompatible checks if a schema is compatible with the latest version
	IsCompatible(subject string, schema *avro.Schema) (bool, error)
}

// Metadata contains metadata about a registered schema
type Metadata struct {
	ID      int
	Version int
	Subject string
	Schema  *avro.Schema
}

// Client is the default implementation of Registry
// that communicates with Confluent Schema Registry over HTTP.
type Client struct {
	url        string
	httpClient *http.Client

	// observer provides optional observability hooks for tracking operations
	observer observability.Observer

	// Cache for schemas by ID
	schemaCache      map[int]*avro.Schema
	schemaCacheMutex sync.RWMutex

	// Cache for schema IDs by subject and schema
	idCache      map[string]int
	idCacheMutex sync.RWMutex

	// Authentication
	username string
	password string
}

// Config holds configuration for schema registry client
type Config struct {
	// URL is the schema registry endpoint (e.g., "http://localhost:8081")
	URL string `yaml:"url" env:"SCHEMA_REGISTRY_URL"`

	// Username for basic auth (optional)
	Username string `yaml:"username" env:"SCHEMA_REGISTRY_USERNAME"`

	// Password for basic auth (optional)
	Password string `yaml:"password" env:"SCHEMA_REGISTRY_PASSWORD"`

	// Timeout for HTTP requests
	Timeout time.Duration `yaml:"timeout" env:"SCHEMA_REGISTRY_TIMEOUT"`
}

// NewClient creates a new schema registry client
// Returns the concrete *Client type.
func NewClient(config Config) (*Client, error) {
	if config.URL == "" {
		return nil, fmt.Errorf("schema registry URL is required")
	}

	if config.Timeout == 0 {
		config.Timeout = 10 * time.Second
	}

	return &Client{
		url: config.URL,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		schemaCache: make(map[int]*avro.Schema),
		idCache:     make(map[string]int),
		username:    config.Username,
		password:    config.Password,
	}, nil
}

// WithObserver attaches an observer to the client for tracking operations.
// This method uses the builder pattern and returns the client for method chaining.
func (c *Client) WithObserver(observer observability.Observer) *Client {
	c.observer = observer
	return c
}

// observeOperation notifies the observer about an operation if one is configured.
func (c *Client) observeOperation(operation, subject string, start time.Time, err error, size int64) {
	if c == nil || c.observer == nil {
		return
	}

	c.observer.ObserveOperation(observability.OperationContext{
		Component: "schema_registry",
		Operation: operation,
		Resource:  subject,
		Duration:  time.Since(start),
		Error:     err,
		Size:      size,
	})
}

// SchemaByID retrieves a schema from the registry by its ID
func (c *Client) SchemaByID(id int) (*avro.Schema, error) {
	start := time.Now()

	// Check cache first
	c.schemaCacheMutex.RLock()
	if schema, ok := c.schemaCache[id]; ok {
		c.schemaCacheMutex.RUnlock()
		return schema, nil
	}
	c.schemaCacheMutex.RUnlock()

	var result struct {
		Schema string `json:"schema"`
	}
	err := c.get(fmt.Sprintf("%s/schemas/ids/%d", c.url, id), &result)
	if err != nil {
		c.observeOperation("schema_by_id", "", start, err, 0)
		return nil, err
	}

	schema, err := avro.Parse([]byte(result.Schema))
	if err != nil {
		err = fmt.Errorf("failed to parse schema %d: %w", id, err)
		c.observeOperation("schema_by_id", "", start, err, 0)
		return nil, err
	}

	// Cache the schema
	c.schemaCacheMutex.Lock()
	c.schemaCache[id] = schema
	c.schemaCacheMutex.Unlock()

	c.observeOperation("schema_by_id", "", start, nil, int64(len(result.Schema)))
	return schema, nil
}

// Latest retrieves the latest version of a schema for a subject
func (c *Client) Latest(subject string) (*Metadata, error) {
	start := time.Now()

	var result struct {
		ID      int    `json:"id"`
		Version int    `json:"version"`
		Schema  string `json:"schema"`
	}
	err := c.get(fmt.Sprintf("%s/subjects/%s/versions/latest", c.url, subject), &result)
	if err != nil {
		c.observeOperation("latest", subject, start, err, 0)
		return nil, err
	}

	schema, err := avro.Parse([]byte(result.Schema))
	if err != nil {
		err = fmt.Errorf("failed to parse latest schema for %s: %w", subject, err)
		c.observeOperation("latest", subject, start, err, 0)
		return nil, err
	}

	// Cache the schema
	c.schemaCacheMutex.Lock()
	c.schemaCache[result.ID] = schema
	c.schemaCacheMutex.Unlock()

	c.observeOperation("latest", subject, start, nil, int64(len(result.Schema)))
	return &Metadata{
		ID:      result.ID,
		Version: result.Version,
		Subject: subject,
		Schema:  schema,
	}, nil
}

// Register registers a schema with the schema registry and returns its ID.
// Repeated registrations of the same schema are served from cache.
func (c *Client) Register(subject string, schema *avro.Schema) (int, error) {
	start := time.Now()

	schemaJSON, err := json.Marshal(schema)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal schema: %w", err)
	}

	// Check cache first
	cacheKey := fmt.Sprintf("%s:%s", subject, schemaJSON)
	c.idCacheMutex.RLock()
	if id, ok := c.idCache[cacheKey]; ok {
		c.idCacheMutex.RUnlock()
		return id, nil
	}
	c.idCacheMutex.RUnlock()

	var result struct {
		ID int `json:"id"`
	}
	err = c.post(fmt.Sprintf("%s/subjects/%s/versions", c.url, subject), string(schemaJSON), &result)
	if err != nil {
		c.observeOperation("register", subject, start, err, 0)
		return 0, err
	}

	// Cache the ID
	c.idCacheMutex.Lock()
	c.idCache[cacheKey] = result.ID
	c.idCacheMutex.Unlock()

	c.observeOperation("register", subject, start, nil, int64(len(schemaJSON)))
	return result.ID, nil
}

// IsCompatible checks if a schema is compatible with the existing schema for a subject
func (c *Client) IsCompatible(subject string, schema *avro.Schema) (bool, error) {
	start := time.Now()

	schemaJSON, err := json.Marshal(schema)
	if err != nil {
		return false, fmt.Errorf("failed to marshal schema: %w", err)
	}

	var result struct {
		IsCompatible bool `json:"is_compatible"`
	}
	err = c.post(fmt.Sprintf("%s/compatibility/subjects/%s/versions/latest", c.url, subject), string(schemaJSON), &result)
	c.observeOperation("is_compatible", subject, start, err, 0)
	if err != nil {
		return false, err
	}

	return result.IsCompatible, nil
}

// get performs an authenticated GET against the registry and decodes the response.
func (c *Client) get(url string, out interface{}) error {
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if c.username != "" {
		req.SetBasicAuth(c.username, c.password)
	}
	req.Header.Set("Accept", "application/vnd.schemaregistry.v1+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch schema: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("schema registry returned status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// post sends a schema payload to the registry and decodes the response.
func (c *Client) post(url, schemaJSON string, out interface{}) error {
	payload := map[string]interface{}{
		"schema": schemaJSON,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequest("POST", url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if c.username != "" {
		req.SetBasicAuth(c.username, c.password)
	}
	req.Header.Set("Content-Type", "application/vnd.schemaregistry.v1+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach schema registry: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("schema registry returned status %d: %s", resp.StatusCode, string(respBody))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// EncodeSchemaID encodes a schema ID in the Confluent wire format
// Format: [magic_byte][schema_id]
// - magic_byte: 0x0 (1 byte)
// - schema_id: 4 bytes (big-endian)
func EncodeSchemaID(schemaID int) []byte {
	buf := make([]byte, 5)
	buf[0] = 0x0 // Magic byte
	binary.BigEndian.PutUint32(buf[1:], uint32(schemaID))
	return buf
}

// DecodeSchemaID decodes a schema ID from the Confluent wire format
// Returns the schema ID and the remaining payload (after the 5-byte header)
func DecodeSchemaID(data []byte) (int, []byte, error) {
	if len(data) < 5 {
		return 0, nil, fmt.Errorf("data too short: expected at least 5 bytes, got %d", len(data))
	}

	if data[0] != 0x0 {
		return 0, nil, fmt.Errorf("invalid magic byte: expected 0x0, got 0x%x", data[0])
	}

	schemaID := int(binary.BigEndian.Uint32(data[1:5]))
	payload := data[5:]

	return schemaID, payload, nil
}
