package amqp

import (
	"encoding/json"
	"time"
)

// TransactionEvent says what happened to a transaction.
type TransactionEvent string

const (
	EventCreated TransactionEvent = "created"
	EventUpdated TransactionEvent = "updated"
	EventDeleted TransactionEvent = "deleted"
)

// TransactionEventMessage is the lightweight envelope published on every
// transaction mutation. It carries identifiers only; the mirror worker
// fetches the full record from storage, except for deletions where the row
// is already gone and the snapshot fields below are all it has.
type TransactionEventMessage struct {
	TransactionID string           `json:"transaction_id"`
	Owner         string           `json:"owner"`
	Event         TransactionEvent `json:"event"`
	Timestamp     time.Time        `json:"timestamp"`

	// Snapshot for deletions, empty otherwise.
	Type        string `json:"type,omitempty"`
	AmountCents int64  `json:"amount_cents,omitempty"`
	Category    string `json:"category,omitempty"`
	Date        string `json:"date,omitempty"`
}

func NewTransactionEventMessage(id, owner string, event TransactionEvent) *TransactionEventMessage {
	return &TransactionEventMessage{
		TransactionID: id,
		Owner:         owner,
		Event:         event,
		Timestamp:     time.Now(),
	}
}

func (m *TransactionEventMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func TransactionEventMessageFromJSON(data []byte) (*TransactionEventMessage, error) {
	var msg TransactionEventMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
