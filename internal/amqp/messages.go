package amqp

import (
	"encoding/json"
	"time"
)

// TransactionEvent announces that the upstream transaction history
// changed. Consumers drop their cached ledger pages when one arrives.
type TransactionEvent struct {
	TransactionID string    `json:"transactionId"`
	Action        string    `json:"action"`
	Timestamp     time.Time `json:"timestamp"`
}

// Known event actions.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// NewTransactionEvent creates an event for the given transaction and action.
func NewTransactionEvent(transactionID, action string) *TransactionEvent {
	return &TransactionEvent{
		TransactionID: transactionID,
		Action:        action,
		Timestamp:     time.Now(),
	}
}

// ToJSON converts the event to JSON bytes
func (e *TransactionEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// TransactionEventFromJSON creates an event from JSON bytes
func TransactionEventFromJSON(data []byte) (*TransactionEvent, error) {
	var e TransactionEvent
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	return &e, nil
}
