package models

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Ledger error taxonomy
var (
	// ErrWalletNotFound is returned when a user has no wallet and no history.
	ErrWalletNotFound = errors.New("wallet not found")
	// ErrInsufficientFunds is returned when a debit would make the balance negative.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrSpendingLimitExceeded is matched by every *SpendingLimitError.
	ErrSpendingLimitExceeded = errors.New("spending limit exceeded")
	// ErrInvalidTransfer is returned for self-transfers and non-positive transfer amounts.
	ErrInvalidTransfer = errors.New("invalid transfer")
	// ErrConcurrentModification signals a stale read at append time. Retried inside the engine.
	ErrConcurrentModification = errors.New("concurrent modification")
	// ErrDuplicateReference signals a unique violation on the external reference. Resolved inside the engine.
	ErrDuplicateReference = errors.New("duplicate external reference")
	// ErrLedgerBusy is returned once append retries are exhausted.
	ErrLedgerBusy = errors.New("ledger busy")
	// ErrValidation is returned for malformed amounts, types or settings.
	ErrValidation = errors.New("validation error")
	// ErrStorageUnavailable wraps unrecoverable storage faults and timeouts.
	ErrStorageUnavailable = errors.New("storage unavailable")
	// ErrSettingsNotFound is returned by the store when a user has no settings row.
	ErrSettingsNotFound = errors.New("wallet settings not found")
)

// LimitKind names the window of a spending limit.
type LimitKind string

// Spending limit windows
const (
	LimitDaily   LimitKind = "daily"
	LimitMonthly LimitKind = "monthly"
)

// SpendingLimitError describes which cap a debit would exceed.
type SpendingLimitError struct {
	Kind      LimitKind
	Limit     decimal.Decimal
	Used      decimal.Decimal
	Requested decimal.Decimal
}

func (e *SpendingLimitError) Error() string {
	return fmt.Sprintf("%s spending limit exceeded: limit %s, used %s, requested %s",
		e.Kind, e.Limit.StringFixed(AmountScale), e.Used.StringFixed(AmountScale), e.Requested.StringFixed(AmountScale))
}

// Is makes errors.Is(err, ErrSpendingLimitExceeded) true.
func (e *SpendingLimitError) Is(target error) bool {
	return target == ErrSpendingLimitExceeded
}

// ValidationError returns an ErrValidation wrapping a field-specific message.
func ValidationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
