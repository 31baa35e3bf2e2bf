package models

// Ledger event kinds published after successful operations
const (
	EventTransactionCompleted = "transaction.completed"
	EventTransferCompleted    = "transfer.completed"
	EventTransferReversed     = "transfer.reversed"
)

// LedgerEvent is the message published to Kafka.
type LedgerEvent struct {
	EventID       string        `json:"event_id"`                 // EventID is a unique identifier for the event.
	Kind          string        `json:"kind"`                     // Kind is one of the Event* constants.
	Timestamp     int64         `json:"timestamp"`                // Timestamp is the Unix timestamp (in seconds) of publication.
	CorrelationID string        `json:"correlation_id,omitempty"` // CorrelationID links transfer legs.
	Transactions  []Transaction `json:"transactions"`             // Transactions affected by the operation.
}
