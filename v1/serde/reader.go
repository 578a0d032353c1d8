package serde

import (
	"context"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/streamhaus/dynrec/v1/avro"
)

// RecordReader consumes Confluent-framed Avro messages from one Kafka topic
// and decodes each into a generic record. It is the consumer-side counterpart
// of RecordWriter.
type RecordReader struct {
	reader       *kafka.Reader
	deserializer *Deserializer
}

// RecordReaderConfig holds configuration for a RecordReader.
type RecordReaderConfig struct {
	// Brokers is the list of Kafka broker addresses. Required.
	Brokers []string

	// Topic is the topic to consume from. Required.
	Topic string

	// GroupID is the consumer group. Required.
	GroupID string

	// Deserializer decodes payloads into records. Required.
	Deserializer *Deserializer

	// MinBytes and MaxBytes bound fetch request sizes.
	// Defaults: 1 and 10MB.
	MinBytes int
	MaxBytes int

	// MaxWait bounds how long a fetch blocks waiting for MinBytes.
	// Default: 1s.
	MaxWait time.Duration
}

// NewRecordReader creates a Kafka reader decoding dynamic records.
func NewRecordReader(cfg RecordReaderConfig) (*RecordReader, error) {
	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("serde: at least one broker is required")
	}
	if cfg.Topic == "" {
		return nil, fmt.Errorf("serde: topic is required")
	}
	if cfg.GroupID == "" {
		return nil, fmt.Errorf("serde: group id is required")
	}
	if cfg.Deserializer == nil {
		return nil, fmt.Errorf("serde: deserializer is required")
	}
	if cfg.MinBytes == 0 {
		cfg.MinBytes = 1
	}
	if cfg.MaxBytes == 0 {
		cfg.MaxBytes = 10 << 20
	}
	if cfg.MaxWait == 0 {
		cfg.MaxWait = time.Second
	}

	return &RecordReader{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:  cfg.Brokers,
			Topic:    cfg.Topic,
			GroupID:  cfg.GroupID,
			MinBytes: cfg.MinBytes,
			MaxBytes: cfg.MaxBytes,
			MaxWait:  cfg.MaxWait,
		}),
		deserializer: cfg.Deserializer,
	}, nil
}

// Read blocks until the next message arrives and returns its key and the
// decoded record. The message offset is committed through the consumer group.
func (r *RecordReader) Read(ctx context.Context) (string, *avro.Record, error) {
	msg, err := r.reader.ReadMessage(ctx)
	if err != nil {
		return "", nil, fmt.Errorf("serde: failed to read message: %w", err)
	}

	rec, err := r.deserializer.Deserialize(msg.Value)
	if err != nil {
		return "", nil, err
	}
	return string(msg.Key), rec, nil
}

// Close releases the underlying reader and leaves the consumer group.
func (r *RecordReader) Close() error {
	return r.reader.Close()
}
