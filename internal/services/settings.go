package services

//go:generate mockgen -source=settings.go -destination=settings_mock.go -package=services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-wallet-ledger/internal/logger"
	"github.com/sbilibin2017/gw-wallet-ledger/internal/models"
)

// SettingsStore reads and writes wallet settings.
type SettingsStore interface {
	GetSettings(ctx context.Context, userID uuid.UUID) (*models.WalletSettings, error)
	UpsertSettings(ctx context.Context, s models.WalletSettings) (*models.WalletSettings, error)
}

// SettingsService applies validated partial updates to wallet settings.
type SettingsService struct {
	store SettingsStore
}

// NewSettingsService creates a new SettingsService.
func NewSettingsService(store SettingsStore) *SettingsService {
	return &SettingsService{store: store}
}

// GetSettings returns the stored settings, or the defaults when none exist.
func (s *SettingsService) GetSettings(ctx context.Context, userID uuid.UUID) (*models.WalletSettings, error) {
	settings, err := s.store.GetSettings(ctx, userID)
	if err != nil {
		if errors.Is(err, models.ErrSettingsNotFound) {
			defaults := models.DefaultSettings(userID)
			return &defaults, nil
		}
		logger.Log.Errorw("failed to get settings", "userID", userID, "error", err)
		return nil, err
	}
	return settings, nil
}

// UpdateSettings merges delta onto the current settings and stores the result.
// Invalid combinations fail with models.ErrValidation and nothing is written.
func (s *SettingsService) UpdateSettings(ctx context.Context, userID uuid.UUID, delta models.SettingsUpdate) (*models.WalletSettings, error) {
	current, err := s.GetSettings(ctx, userID)
	if err != nil {
		return nil, err
	}

	next := *current
	next.UserID = userID
	if delta.AutoTopUpEnabled != nil {
		next.AutoTopUpEnabled = *delta.AutoTopUpEnabled
	}
	if delta.AutoTopUpThreshold != nil {
		next.AutoTopUpThreshold = *delta.AutoTopUpThreshold
	}
	if delta.AutoTopUpAmount != nil {
		next.AutoTopUpAmount = *delta.AutoTopUpAmount
	}
	if delta.PreferredPaymentMethod != nil {
		method := strings.ToLower(strings.TrimSpace(*delta.PreferredPaymentMethod))
		next.PreferredPaymentMethod = &method
	}
	if delta.DailySpendingLimit != nil {
		limit := *delta.DailySpendingLimit
		next.DailySpendingLimit = &limit
	}
	if delta.MonthlySpendingLimit != nil {
		limit := *delta.MonthlySpendingLimit
		next.MonthlySpendingLimit = &limit
	}

	if err := validateSettings(next); err != nil {
		logger.Log.Warnw("rejected settings update", "userID", userID, "error", err)
		return nil, err
	}

	saved, err := s.store.UpsertSettings(ctx, next)
	if err != nil {
		logger.Log.Errorw("failed to save settings", "userID", userID, "error", err)
		return nil, err
	}
	return saved, nil
}

func validateSettings(s models.WalletSettings) error {
	if s.AutoTopUpThreshold.IsNegative() {
		return models.ValidationError("auto_top_up_threshold must not be negative")
	}
	if s.AutoTopUpAmount.IsNegative() {
		return models.ValidationError("auto_top_up_amount must not be negative")
	}
	if s.AutoTopUpEnabled {
		if !s.AutoTopUpAmount.IsPositive() {
			return models.ValidationError("auto_top_up_amount must be positive when auto top-up is enabled")
		}
		if s.PreferredPaymentMethod == nil {
			return models.ValidationError("preferred_payment_method is required when auto top-up is enabled")
		}
	}
	if s.PreferredPaymentMethod != nil {
		if _, ok := models.PaymentMethods[*s.PreferredPaymentMethod]; !ok {
			return models.ValidationError("unsupported preferred_payment_method %q", *s.PreferredPaymentMethod)
		}
	}
	if s.DailySpendingLimit != nil && !s.DailySpendingLimit.IsPositive() {
		return models.ValidationError("daily_spending_limit must be positive")
	}
	if s.MonthlySpendingLimit != nil && !s.MonthlySpendingLimit.IsPositive() {
		return models.ValidationError("monthly_spending_limit must be positive")
	}
	if s.DailySpendingLimit != nil && s.MonthlySpendingLimit != nil &&
		s.DailySpendingLimit.GreaterThan(*s.MonthlySpendingLimit) {
		return models.ValidationError("daily_spending_limit must not exceed monthly_spending_limit")
	}
	return nil
}
