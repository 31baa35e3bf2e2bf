package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransferRequest moves Amount from FromUserID to ToUserID.
type TransferRequest struct {
	FromUserID     uuid.UUID
	ToUserID       uuid.UUID
	Amount         decimal.Decimal // positive
	Description    string
	IdempotencyKey *string // optional; leg references are derived from it
}

// TransferResult holds the legs of a transfer. In is nil and Reversal is set
// when the credit leg failed and the debit was compensated.
type TransferResult struct {
	CorrelationID string       `json:"correlation_id"`
	Out           *Transaction `json:"out"`
	In            *Transaction `json:"in,omitempty"`
	Reversal      *Transaction `json:"reversal,omitempty"`
}
