package amqp

import (
	"encoding/json"
	"time"
)

// Change kinds carried on the expense events queue.
const (
	ChangeCreated = "created"
	ChangeUpdated = "updated"
	ChangeDeleted = "deleted"
)

// ExpenseChangeMessage announces that an expense row changed. It
// carries only the id and kind; consumers fetch the current row from
// the store, so a stale message never overwrites newer data.
type ExpenseChangeMessage struct {
	ID        int64     `json:"id"`
	Change    string    `json:"change"`
	Timestamp time.Time `json:"timestamp"`
}

func NewExpenseChangeMessage(id int64, change string) *ExpenseChangeMessage {
	return &ExpenseChangeMessage{
		ID:        id,
		Change:    change,
		Timestamp: time.Now(),
	}
}

func (m *ExpenseChangeMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func ExpenseChangeMessageFromJSON(data []byte) (*ExpenseChangeMessage, error) {
	var msg ExpenseChangeMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
