package broadcast

import (
	"context"
	"testing"
	"time"
)

func TestStartConsumerWithoutKafka(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "")

	// Without brokers configured the consumer must decline to run instead
	// of dereferencing a nil reader.
	done := make(chan struct{})
	go func() {
		defer close(done)
		(&Service{}).StartConsumer(context.Background())
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("StartConsumer did not return with kafka unconfigured")
	}
}
