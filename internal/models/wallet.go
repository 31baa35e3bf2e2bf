package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OMR is the default ledger currency. Omani rial amounts carry three decimal places.
const OMR = "OMR"

// AmountScale is the number of fractional digits kept for every amount and balance.
const AmountScale int32 = 3

// WalletDB represents a wallet row in the database
type WalletDB struct {
	UserID    uuid.UUID       `json:"user_id" db:"user_id"`       // Identifier of the wallet's owner
	Balance   decimal.Decimal `json:"balance" db:"balance"`       // Current balance, never negative
	Currency  string          `json:"currency" db:"currency"`     // Currency code (single supported currency)
	Version   int64           `json:"version" db:"version"`       // Incremented on every append
	CreatedAt time.Time       `json:"created_at" db:"created_at"` // Timestamp when the wallet was created
	UpdatedAt time.Time       `json:"updated_at" db:"updated_at"` // Timestamp of the last wallet update
}

// Balance is the read-side view of a wallet.
type Balance struct {
	UserID   uuid.UUID       `json:"user_id"`
	Amount   decimal.Decimal `json:"balance"`
	Currency string          `json:"currency"`
	Version  int64           `json:"version"` // Wallet version the balance was read at
}

// RoundAmount normalizes an amount to the ledger scale.
func RoundAmount(d decimal.Decimal) decimal.Decimal {
	return d.Round(AmountScale)
}
