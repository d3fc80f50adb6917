// Package broker defines the interface for message brokers and provides implementations.
package broker

import (
	"context"
	"encoding/json"
	"fmt"
)

// Broker abstracts message publishing.
type Broker interface {
	// Publish sends a message to a topic. For Redpanda/Kafka the key selects
	// the partition; the in-memory broker records it as-is.
	Publish(ctx context.Context, topic string, key string, value []byte) error

	// Close shuts down the broker connection gracefully.
	Close() error
}

// Message is a published message as recorded by InMemoryBroker.
type Message struct {
	Topic string
	Key   string
	Value []byte
}

// PublishJSON marshals event and publishes it.
func PublishJSON(ctx context.Context, b Broker, topic, key string, event any) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", topic, err)
	}
	return b.Publish(ctx, topic, key, data)
}
