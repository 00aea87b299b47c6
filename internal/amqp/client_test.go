package amqp

import (
	"testing"
	"time"
)

func TestExpenseChangeMessageRoundTrip(t *testing.T) {
	msg := NewExpenseChangeMessage(42, ChangeCreated)
	if msg.ID != 42 || msg.Change != ChangeCreated {
		t.Fatalf("unexpected message: %+v", msg)
	}
	if msg.Timestamp.IsZero() {
		t.Fatal("timestamp must be set")
	}

	body, err := msg.ToJSON()
	if err != nil {
		t.Fatal(err)
	}

	back, err := ExpenseChangeMessageFromJSON(body)
	if err != nil {
		t.Fatal(err)
	}
	if back.ID != msg.ID || back.Change != msg.Change {
		t.Fatalf("round trip mismatch: %+v", back)
	}
	if back.Timestamp.Sub(msg.Timestamp) > time.Second {
		t.Fatalf("timestamp drifted: %v vs %v", back.Timestamp, msg.Timestamp)
	}
}

func TestExpenseChangeMessageFromJSONInvalid(t *testing.T) {
	if _, err := ExpenseChangeMessageFromJSON([]byte("{broken")); err == nil {
		t.Fatal("expected error for malformed JSON")
	}
}
