package amqp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestExponentialBackoff(t *testing.T) {
	tests := []struct {
		attempt  int
		expected time.Duration
	}{
		{0, 1 * time.Second},
		{1, 2 * time.Second},
		{2, 4 * time.Second},
		{3, 8 * time.Second},
		{4, 16 * time.Second},
		{5, 30 * time.Second},
		{10, 30 * time.Second},
		{40, 30 * time.Second},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("attempt_%d", tt.attempt), func(t *testing.T) {
			result := exponentialBackoff(tt.attempt)
			if result != tt.expected {
				t.Errorf("exponentialBackoff(%d) = %v, want %v", tt.attempt, result, tt.expected)
			}
		})
	}
}

func TestIsConnectionError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil error", nil, false},
		{"connection refused", errors.New("connection refused"), true},
		{"connection closed", errors.New("connection closed"), true},
		{"unexpected EOF", errors.New("unexpected EOF"), true},
		{"delivery channel closed", errors.New("message channel closed"), true},
		{"broken pipe", errors.New("write: broken pipe"), true},
		{"unrelated error", errors.New("invalid argument"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isConnectionError(tt.err); got != tt.expected {
				t.Errorf("isConnectionError(%v) = %v, want %v", tt.err, got, tt.expected)
			}
		})
	}
}

// A dropped connection must trigger a reconnect and a fresh subscription
// instead of ending the consume loop.
func TestConsumeWithRetryReconnects(t *testing.T) {
	ctx := context.Background()

	consumes, reconnects := 0, 0
	err := consumeWithRetry(ctx,
		func(context.Context) error {
			consumes++
			if consumes <= 2 {
				return errors.New("message channel closed")
			}
			return errors.New("handler gave up")
		},
		func(context.Context) error {
			reconnects++
			return nil
		})

	if err == nil || err.Error() != "handler gave up" {
		t.Fatalf("err = %v, want the non-connection error", err)
	}
	if consumes != 3 || reconnects != 2 {
		t.Errorf("consumes = %d reconnects = %d, want 3 and 2", consumes, reconnects)
	}
}

func TestConsumeWithRetryStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	reconnects := 0
	err := consumeWithRetry(ctx,
		func(ctx context.Context) error {
			cancel()
			return ctx.Err()
		},
		func(context.Context) error {
			reconnects++
			return nil
		})

	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if reconnects != 0 {
		t.Errorf("reconnects = %d after cancel, want 0", reconnects)
	}
}

func TestConsumeWithRetrySurfacesReconnectFailure(t *testing.T) {
	err := consumeWithRetry(context.Background(),
		func(context.Context) error { return errors.New("connection reset") },
		func(context.Context) error { return errors.New("broker unreachable") })

	if err == nil || !strings.Contains(err.Error(), "broker unreachable") {
		t.Errorf("err = %v, want the reconnect failure", err)
	}
}

func TestTransactionSyncMessageRoundTrip(t *testing.T) {
	msg := NewTransactionSyncMessage("1718000000000000000", ActionCreate)

	data, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	got, err := TransactionSyncMessageFromJSON(data)
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}
	if got.ID != msg.ID || got.Action != msg.Action {
		t.Errorf("got %+v, want %+v", got, msg)
	}
	if got.Timestamp.IsZero() {
		t.Error("timestamp lost in round trip")
	}
}

func TestTransactionSyncMessageFromJSONInvalid(t *testing.T) {
	if _, err := TransactionSyncMessageFromJSON([]byte("not json")); err == nil {
		t.Error("expected error for malformed payload")
	}
}
