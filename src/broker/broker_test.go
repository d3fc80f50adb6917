package broker

import (
	"context"
	"encoding/json"
	"os"
	"strings"
	"testing"
	"time"

	"pantry-ci/src/contracts"
)

func TestPublishJSON(t *testing.T) {
	b := NewInMemoryBroker()
	defer b.Close()

	event := contracts.FilterResult{
		Requested: []string{"deno.land", "ziglang.org"},
		Kept:      []string{"ziglang.org"},
	}
	if err := PublishJSON(context.Background(), b, contracts.TopicFilterResults, "run-1", event); err != nil {
		t.Fatalf("PublishJSON failed: %v", err)
	}

	msgs := b.Messages(contracts.TopicFilterResults)
	if len(msgs) != 1 {
		t.Fatalf("Expected 1 message, got %d", len(msgs))
	}
	if msgs[0].Key != "run-1" {
		t.Errorf("Expected key run-1, got %s", msgs[0].Key)
	}

	var got contracts.FilterResult
	if err := json.Unmarshal(msgs[0].Value, &got); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if len(got.Kept) != 1 || got.Kept[0] != "ziglang.org" {
		t.Errorf("Unexpected kept list: %v", got.Kept)
	}
}

func TestPublishJSON_MarshalError(t *testing.T) {
	b := NewInMemoryBroker()
	defer b.Close()

	err := PublishJSON(context.Background(), b, "t", "", func() {})
	if err == nil {
		t.Fatal("Expected marshal error, got nil")
	}
	if len(b.Messages("t")) != 0 {
		t.Error("Expected nothing published on marshal error")
	}
}

func TestNewRedpandaBroker_NoBrokers(t *testing.T) {
	if _, err := NewRedpandaBroker(nil); err == nil {
		t.Fatal("Expected error for empty broker list")
	}
}

// Requires a running Redpanda; set REDPANDA_BROKERS to run.
func TestRedpandaBroker_Publish(t *testing.T) {
	brokers := os.Getenv("REDPANDA_BROKERS")
	if brokers == "" {
		t.Skip("REDPANDA_BROKERS not set")
	}

	b, err := NewRedpandaBroker(strings.Split(brokers, ","))
	if err != nil {
		t.Fatalf("NewRedpandaBroker failed: %v", err)
	}
	defer b.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := b.Publish(ctx, "pantry_ci_test", "key", []byte(`{}`)); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	b.Close()
	if err := b.Publish(ctx, "pantry_ci_test", "key", []byte(`{}`)); err == nil {
		t.Error("Expected error publishing on closed broker")
	}
}

func TestRedpandaBroker_UnreachableFailsWithinDeadline(t *testing.T) {
	b, err := NewRedpandaBroker([]string{"127.0.0.1:1"})
	if err != nil {
		t.Fatalf("NewRedpandaBroker failed: %v", err)
	}
	defer b.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	start := time.Now()
	err = b.Publish(ctx, contracts.TopicFilterResults, "k", []byte("{}"))
	if err == nil {
		t.Fatal("expected error publishing to an unreachable broker")
	}
	if elapsed := time.Since(start); elapsed > 10*time.Second {
		t.Errorf("Publish returned after %v, want it bounded by the context", elapsed)
	}
}
