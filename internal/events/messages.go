package events

import (
	"encoding/json"
	"time"
)

// TransactionRecordedMessage announces a newly persisted transaction.
// Consumers fetch the full row from the database by id.
type TransactionRecordedMessage struct {
	ID        int64     `json:"id"`
	CardID    int64     `json:"card_id"`
	Timestamp time.Time `json:"timestamp"`
}

// CardDeletedMessage announces a card deletion, including the number of
// transactions removed by the cascade.
type CardDeletedMessage struct {
	CardID       int64     `json:"card_id"`
	Transactions int64     `json:"transactions"`
	Timestamp    time.Time `json:"timestamp"`
}

func NewTransactionRecordedMessage(id, cardID int64) *TransactionRecordedMessage {
	return &TransactionRecordedMessage{
		ID:        id,
		CardID:    cardID,
		Timestamp: time.Now(),
	}
}

func NewCardDeletedMessage(cardID, transactions int64) *CardDeletedMessage {
	return &CardDeletedMessage{
		CardID:       cardID,
		Transactions: transactions,
		Timestamp:    time.Now(),
	}
}

func (m *TransactionRecordedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func (m *CardDeletedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// TransactionRecordedMessageFromJSON decodes a message published by
// PublishTransactionRecorded.
func TransactionRecordedMessageFromJSON(data []byte) (*TransactionRecordedMessage, error) {
	var msg TransactionRecordedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// CardDeletedMessageFromJSON decodes a message published by
// PublishCardDeleted.
func CardDeletedMessageFromJSON(data []byte) (*CardDeletedMessage, error) {
	var msg CardDeletedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
