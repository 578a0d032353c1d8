package serde

import (
	"context"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/streamhaus/dynrec/v1/record"
)

// RecordWriter publishes dynamic records to one Kafka topic, serializing
// each record through a Serializer. It is the producer-side seam between
// dynamic records and the message bus; consumer configuration and broker
// management stay with the application.
type RecordWriter struct {
	topic      string
	writer     *kafka.Writer
	serializer *Serializer
}

// RecordWriterConfig holds configuration for a RecordWriter.
type RecordWriterConfig struct {
	// Brokers is the list of Kafka broker addresses. Required.
	Brokers []string

	// Topic is the destination topic. Required; it also determines the
	// registry subject ("<topic>-value").
	Topic string

	// Serializer encodes records for the wire. Required.
	Serializer *Serializer

	// BatchTimeout bounds how long messages may sit in a batch.
	// Default: 1s (kafka-go's default).
	BatchTimeout time.Duration
}

// NewRecordWriter creates a Kafka writer publishing dynamic records.
func NewRecordWriter(cfg RecordWriterConfig) (*RecordWriter, error) {
	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("serde: at least one broker is required")
	}
	if cfg.Topic == "" {
		return nil, fmt.Errorf("serde: topic is required")
	}
	if cfg.Serializer == nil {
		return nil, fmt.Errorf("serde: serializer is required")
	}

	return &RecordWriter{
		topic: cfg.Topic,
		writer: &kafka.Writer{
			Addr:         kafka.TCP(cfg.Brokers...),
			Topic:        cfg.Topic,
			Balancer:     &kafka.LeastBytes{},
			BatchTimeout: cfg.BatchTimeout,
		},
		serializer: cfg.Serializer,
	}, nil
}

// Write serializes the record and publishes it under the given key.
func (w *RecordWriter) Write(ctx context.Context, key string, rec record.Dynamic) error {
	value, err := w.serializer.Serialize(w.topic, rec)
	if err != nil {
		return err
	}

	return w.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: value,
	})
}

// Close flushes pending messages and releases the underlying writer.
func (w *RecordWriter) Close() error {
	return w.writer.Close()
}
