package amqp

import (
	"testing"
	"time"
)

func TestLedgerEventMessageRoundTrip(t *testing.T) {
	original := &LedgerEventMessage{
		UserID:        "local",
		TransactionID: "3f0c2a",
		Action:        ActionCreated,
		Timestamp:     time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC),
	}

	data, err := original.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON failed: %v", err)
	}

	decoded, err := LedgerEventMessageFromJSON(data)
	if err != nil {
		t.Fatalf("LedgerEventMessageFromJSON failed: %v", err)
	}

	if decoded.UserID != original.UserID {
		t.Errorf("UserID = %q, want %q", decoded.UserID, original.UserID)
	}
	if decoded.TransactionID != original.TransactionID {
		t.Errorf("TransactionID = %q, want %q", decoded.TransactionID, original.TransactionID)
	}
	if decoded.Action != original.Action {
		t.Errorf("Action = %q, want %q", decoded.Action, original.Action)
	}
	if !decoded.Timestamp.Equal(original.Timestamp) {
		t.Errorf("Timestamp = %v, want %v", decoded.Timestamp, original.Timestamp)
	}
}

func TestLedgerEventMessageFromJSONMalformed(t *testing.T) {
	if _, err := LedgerEventMessageFromJSON([]byte("{not json")); err == nil {
		t.Fatal("expected error for malformed payload, got nil")
	}
}
