package services

//go:generate mockgen -source=policy.go -destination=policy_mock.go -package=services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-wallet-ledger/internal/logger"
	"github.com/sbilibin2017/gw-wallet-ledger/internal/models"
	"github.com/shopspring/decimal"
)

// SpendingHistoryReader provides the balance and debit history limits are evaluated on.
type SpendingHistoryReader interface {
	GetWallet(ctx context.Context, userID uuid.UUID) (*models.WalletDB, error)
	SumAmountsSince(ctx context.Context, userID uuid.UUID, since time.Time, types []models.TransactionType) (decimal.Decimal, error)
}

// SettingsReader returns stored wallet settings.
type SettingsReader interface {
	GetSettings(ctx context.Context, userID uuid.UUID) (*models.WalletSettings, error) // Returns models.ErrSettingsNotFound when absent
}

// PolicyConfig holds the system-wide limit defaults. A zero limit means unlimited.
type PolicyConfig struct {
	DailyLimit   decimal.Decimal
	MonthlyLimit decimal.Decimal
	Location     *time.Location // Day and month boundaries are computed here
}

// PolicyEvaluator evaluates spending limits and auto top-up eligibility.
// It never mutates state.
type PolicyEvaluator struct {
	history  SpendingHistoryReader
	settings SettingsReader
	cfg      PolicyConfig
	now      func() time.Time
}

// NewPolicyEvaluator creates a new PolicyEvaluator.
func NewPolicyEvaluator(history SpendingHistoryReader, settings SettingsReader, cfg PolicyConfig) *PolicyEvaluator {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	return &PolicyEvaluator{
		history:  history,
		settings: settings,
		cfg:      cfg,
		now:      time.Now,
	}
}

// CheckSpendingLimit returns nil when debit fits under both the daily and the
// monthly cap, or a *models.SpendingLimitError naming the first cap exceeded.
func (p *PolicyEvaluator) CheckSpendingLimit(ctx context.Context, userID uuid.UUID, debit decimal.Decimal) error {
	settings, err := p.loadSettings(ctx, userID)
	if err != nil {
		return err
	}

	now := p.now().In(p.cfg.Location)
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, p.cfg.Location)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, p.cfg.Location)

	windows := []struct {
		kind  models.LimitKind
		limit decimal.Decimal
		since time.Time
	}{
		{models.LimitDaily, limitOrDefault(settings.DailySpendingLimit, p.cfg.DailyLimit), dayStart},
		{models.LimitMonthly, limitOrDefault(settings.MonthlySpendingLimit, p.cfg.MonthlyLimit), monthStart},
	}

	for _, w := range windows {
		if !w.limit.IsPositive() {
			continue
		}

		sum, err := p.history.SumAmountsSince(ctx, userID, w.since, models.SpendingTypes)
		if err != nil {
			logger.Log.Errorw("failed to sum spending", "userID", userID, "window", w.kind, "error", err)
			return err
		}

		used := sum.Neg()
		if used.Add(debit).GreaterThan(w.limit) {
			return &models.SpendingLimitError{
				Kind:      w.kind,
				Limit:     w.limit,
				Used:      used,
				Requested: debit,
			}
		}
	}

	return nil
}

// CheckAutoTopUp advises whether the wallet has fallen under the user's
// auto top-up threshold. It never triggers a top-up.
func (p *PolicyEvaluator) CheckAutoTopUp(ctx context.Context, userID uuid.UUID) (*models.AutoTopUpAdvice, error) {
	settings, err := p.loadSettings(ctx, userID)
	if err != nil {
		return nil, err
	}

	balance := decimal.Zero
	wallet, err := p.history.GetWallet(ctx, userID)
	switch {
	case err == nil:
		balance = wallet.Balance
	case errors.Is(err, models.ErrWalletNotFound):
	default:
		logger.Log.Errorw("failed to read wallet for auto top-up", "userID", userID, "error", err)
		return nil, err
	}

	advice := &models.AutoTopUpAdvice{
		SuggestedAmount:        decimal.Zero,
		Balance:                balance,
		Threshold:              settings.AutoTopUpThreshold,
		PreferredPaymentMethod: settings.PreferredPaymentMethod,
	}
	if settings.AutoTopUpEnabled && balance.LessThan(settings.AutoTopUpThreshold) {
		advice.Eligible = true
		advice.SuggestedAmount = settings.AutoTopUpAmount
	}
	return advice, nil
}

func (p *PolicyEvaluator) loadSettings(ctx context.Context, userID uuid.UUID) (models.WalletSettings, error) {
	settings, err := p.settings.GetSettings(ctx, userID)
	if err != nil {
		if errors.Is(err, models.ErrSettingsNotFound) {
			return models.DefaultSettings(userID), nil
		}
		logger.Log.Errorw("failed to load wallet settings", "userID", userID, "error", err)
		return models.WalletSettings{}, err
	}
	return *settings, nil
}

func limitOrDefault(limit *decimal.Decimal, fallback decimal.Decimal) decimal.Decimal {
	if limit != nil {
		return *limit
	}
	return fallback
}
