package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType is the kind of balance-affecting event.
type TransactionType string

// Supported transaction types
const (
	TypeTopUp        TransactionType = "top-up"
	TypePaymentDebit TransactionType = "payment-debit"
	TypeRefund       TransactionType = "refund"
	TypeBonus        TransactionType = "bonus"
	TypeAdjustment   TransactionType = "adjustment"
	TypeTransferIn   TransactionType = "transfer-in"
	TypeTransferOut  TransactionType = "transfer-out"
)

// Valid reports whether t is one of the known transaction types.
func (t TransactionType) Valid() bool {
	switch t {
	case TypeTopUp, TypePaymentDebit, TypeRefund, TypeBonus, TypeAdjustment, TypeTransferIn, TypeTransferOut:
		return true
	}
	return false
}

// IsCredit reports whether the type may only carry positive amounts.
func (t TransactionType) IsCredit() bool {
	switch t {
	case TypeTopUp, TypeRefund, TypeBonus, TypeTransferIn:
		return true
	}
	return false
}

// IsDebit reports whether the type may only carry negative amounts.
func (t TransactionType) IsDebit() bool {
	return t == TypePaymentDebit || t == TypeTransferOut
}

// SpendingTypes are the debit types counted against daily and monthly limits.
var SpendingTypes = []TransactionType{TypePaymentDebit, TypeTransferOut}

// TransactionStatus is the lifecycle state of a transaction.
type TransactionStatus string

// Transaction statuses: pending -> completed | failed | reversed
const (
	StatusPending   TransactionStatus = "pending"
	StatusCompleted TransactionStatus = "completed"
	StatusFailed    TransactionStatus = "failed"
	StatusReversed  TransactionStatus = "reversed"
)

// Valid reports whether s is one of the known statuses.
func (s TransactionStatus) Valid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusFailed, StatusReversed:
		return true
	}
	return false
}

// Metadata is free-form caller data stored as JSONB.
type Metadata map[string]any

// Value implements driver.Valuer.
func (m Metadata) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	data, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner.
func (m *Metadata) Scan(src any) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*m = nil
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.New("metadata: unsupported source type")
	}
	if len(data) == 0 {
		*m = nil
		return nil
	}
	return json.Unmarshal(data, m)
}

// Transaction is an immutable record of a single balance-affecting event.
type Transaction struct {
	ID                 string            `json:"id" db:"id"`                                     // ULID, monotonic-sortable
	UserID             uuid.UUID         `json:"user_id" db:"user_id"`                           // Wallet owner
	Type               TransactionType   `json:"type" db:"type"`                                 // Kind of event
	Amount             decimal.Decimal   `json:"amount" db:"amount"`                             // Signed: positive credit, negative debit
	BalanceBefore      decimal.Decimal   `json:"balance_before" db:"balance_before"`             // Wallet balance before the event
	BalanceAfter       decimal.Decimal   `json:"balance_after" db:"balance_after"`               // BalanceBefore + Amount
	Status             TransactionStatus `json:"status" db:"status"`                             // Lifecycle state
	ExternalReference  *string           `json:"external_reference,omitempty" db:"external_reference"`
	CounterpartyUserID *uuid.UUID        `json:"counterparty_user_id,omitempty" db:"counterparty_user_id"`
	CorrelationID      *string           `json:"correlation_id,omitempty" db:"correlation_id"`
	ReversesID         *string           `json:"reverses_id,omitempty" db:"reverses_id"`
	Sequence           int64             `json:"sequence" db:"sequence"` // Wallet version after this append
	Description        string            `json:"description" db:"description"`
	Metadata           Metadata          `json:"metadata,omitempty" db:"metadata"`
	CreatedBy          *string           `json:"created_by,omitempty" db:"created_by"`
	CreatedAt          time.Time         `json:"created_at" db:"created_at"`
}

// AppendRecord is a fully computed transaction handed to the store for atomic append.
type AppendRecord struct {
	UserID             uuid.UUID
	Currency           string
	Type               TransactionType
	Amount             decimal.Decimal
	BalanceBefore      decimal.Decimal
	BalanceAfter       decimal.Decimal
	ExpectedVersion    int64 // 0 when the wallet does not exist yet
	Status             TransactionStatus
	ExternalReference  *string
	CounterpartyUserID *uuid.UUID
	CorrelationID      *string
	ReversesID         *string // transaction flipped to reversed in the same unit
	Description        string
	Metadata           Metadata
	CreatedBy          *string
}

// ApplyRequest is the input of a single ledger operation.
type ApplyRequest struct {
	UserID             uuid.UUID
	Type               TransactionType
	Amount             decimal.Decimal // signed
	ExternalReference  *string
	CounterpartyUserID *uuid.UUID
	CorrelationID      *string
	Description        string
	Metadata           Metadata
	CreatedBy          *string
}

// TransactionFilter narrows a transaction listing.
type TransactionFilter struct {
	Types    []TransactionType
	Statuses []TransactionStatus
	From     *time.Time // inclusive
	To       *time.Time // exclusive
}

// DefaultPageLimit and MaxPageLimit bound listing page sizes.
const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// Page selects a window of a listing ordered by id descending.
type Page struct {
	Limit  int
	Cursor string // return transactions with id strictly below the cursor
}

// Normalize clamps the page limit into [1, MaxPageLimit].
func (p Page) Normalize() Page {
	if p.Limit <= 0 {
		p.Limit = DefaultPageLimit
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
	return p
}

// TransactionPage is one page of a listing.
type TransactionPage struct {
	Items      []Transaction `json:"items"`
	NextCursor string        `json:"next_cursor,omitempty"`
}
