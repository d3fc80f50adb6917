package broker

import (
	"context"
	"testing"
)

func TestInMemoryBroker_Messages(t *testing.T) {
	b := NewInMemoryBroker()
	ctx := context.Background()

	value := []byte("first")
	if err := b.Publish(ctx, "a", "k1", value); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}
	value[0] = 'X'
	if err := b.Publish(ctx, "b", "k2", []byte("other")); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}
	if err := b.Publish(ctx, "a", "k3", []byte("second")); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	msgs := b.Messages("a")
	if len(msgs) != 2 {
		t.Fatalf("Expected 2 messages on topic a, got %d", len(msgs))
	}
	if string(msgs[0].Value) != "first" {
		t.Errorf("Expected stored copy %q, got %q", "first", msgs[0].Value)
	}
	if msgs[1].Key != "k3" {
		t.Errorf("Expected key k3, got %s", msgs[1].Key)
	}
	if len(b.Messages("missing")) != 0 {
		t.Error("Expected no messages for unknown topic")
	}
}

func TestInMemoryBroker_Closed(t *testing.T) {
	b := NewInMemoryBroker()
	if err := b.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := b.Publish(context.Background(), "a", "", nil); err == nil {
		t.Error("Expected error publishing to closed broker")
	}
}
