// Package serde serializes dynamic records to and from the Confluent wire
// format: a magic byte and big-endian schema ID followed by Avro binary.
//
// The Serializer registers the record's schema with a Confluent Schema
// Registry and encodes through goavro; the Deserializer resolves the writer
// schema by ID and rebuilds a generic record that can be bound to a record
// interface for typed access. RecordWriter and RecordReader add the producer
// and consumer seams to Kafka via segmentio/kafka-go.
//
// Round trip:
//
//	registry, _ := schema_registry.NewClient(schema_registry.Config{URL: url})
//
//	serializer, _ := serde.NewSerializer(serde.SerializerConfig{Registry: registry})
//	payload, err := serializer.Serialize("customers", adapter) // adapter satisfies record.Dynamic
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	deserializer, _ := serde.NewDeserializer(serde.DeserializerConfig{Registry: registry})
//	rec, err := deserializer.Deserialize(payload)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	desc, _ := record.DescribeInterface[Customer]()
//	customer, _ := record.Bind(desc, rec)
//
// Publishing to Kafka:
//
//	writer, _ := serde.NewRecordWriter(serde.RecordWriterConfig{
//	    Brokers:    []string{"localhost:9092"},
//	    Topic:      "customers",
//	    Serializer: serializer,
//	})
//	defer writer.Close()
//
//	err = writer.Write(ctx, "customer-42", adapter)
package serde
