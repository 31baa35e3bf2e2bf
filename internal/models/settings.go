package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Known preferred payment methods for auto top-up.
var PaymentMethods = map[string]struct{}{
	"card":      {},
	"stripe":    {},
	"tap":       {},
	"apple-pay": {},
}

// WalletSettings holds per-user auto top-up and spending-limit preferences.
type WalletSettings struct {
	UserID                 uuid.UUID        `json:"user_id" db:"user_id"`
	AutoTopUpEnabled       bool             `json:"auto_top_up_enabled" db:"auto_top_up_enabled"`
	AutoTopUpThreshold     decimal.Decimal  `json:"auto_top_up_threshold" db:"auto_top_up_threshold"`
	AutoTopUpAmount        decimal.Decimal  `json:"auto_top_up_amount" db:"auto_top_up_amount"`
	PreferredPaymentMethod *string          `json:"preferred_payment_method,omitempty" db:"preferred_payment_method"`
	DailySpendingLimit     *decimal.Decimal `json:"daily_spending_limit,omitempty" db:"daily_spending_limit"`     // nil: system default
	MonthlySpendingLimit   *decimal.Decimal `json:"monthly_spending_limit,omitempty" db:"monthly_spending_limit"` // nil: system default
	UpdatedAt              time.Time        `json:"updated_at" db:"updated_at"`
}

// DefaultSettings returns the settings that apply when a user never stored any.
func DefaultSettings(userID uuid.UUID) WalletSettings {
	return WalletSettings{
		UserID:             userID,
		AutoTopUpThreshold: decimal.Zero,
		AutoTopUpAmount:    decimal.Zero,
	}
}

// SettingsUpdate is a partial update; nil fields are left untouched.
type SettingsUpdate struct {
	AutoTopUpEnabled       *bool            `json:"auto_top_up_enabled,omitempty"`
	AutoTopUpThreshold     *decimal.Decimal `json:"auto_top_up_threshold,omitempty"`
	AutoTopUpAmount        *decimal.Decimal `json:"auto_top_up_amount,omitempty"`
	PreferredPaymentMethod *string          `json:"preferred_payment_method,omitempty"`
	DailySpendingLimit     *decimal.Decimal `json:"daily_spending_limit,omitempty"`
	MonthlySpendingLimit   *decimal.Decimal `json:"monthly_spending_limit,omitempty"`
}

// AutoTopUpAdvice is the result of an auto top-up eligibility check.
type AutoTopUpAdvice struct {
	Eligible               bool            `json:"eligible"`
	SuggestedAmount        decimal.Decimal `json:"suggested_amount"`
	Balance                decimal.Decimal `json:"balance"`
	Threshold              decimal.Decimal `json:"threshold"`
	PreferredPaymentMethod *string         `json:"preferred_payment_method,omitempty"`
}
