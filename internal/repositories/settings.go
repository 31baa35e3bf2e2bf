package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-wallet-ledger/internal/models"
)

// SettingsRepository persists per-user wallet settings.
type SettingsRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewSettingsRepository(db *sqlx.DB) *SettingsRepository {
	return &SettingsRepository{db: db, now: time.Now}
}

const settingsColumns = `
	user_id, auto_top_up_enabled, auto_top_up_threshold, auto_top_up_amount,
	preferred_payment_method, daily_spending_limit, monthly_spending_limit, updated_at
`

// GetSettings returns the stored settings of userID or models.ErrSettingsNotFound.
func (r *SettingsRepository) GetSettings(ctx context.Context, userID uuid.UUID) (*models.WalletSettings, error) {
	query := `SELECT ` + settingsColumns + ` FROM wallet_settings WHERE user_id = $1`

	var settings models.WalletSettings
	err := r.db.GetContext(ctx, &settings, query, userID)
	logQuery(query, []any{userID}, settings, err)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrSettingsNotFound
		}
		return nil, storageError("get settings", err)
	}
	return &settings, nil
}

// UpsertSettings stores s, replacing any previous row of the same user.
func (r *SettingsRepository) UpsertSettings(ctx context.Context, s models.WalletSettings) (*models.WalletSettings, error) {
	query := `
		INSERT INTO wallet_settings (
			user_id, auto_top_up_enabled, auto_top_up_threshold, auto_top_up_amount,
			preferred_payment_method, daily_spending_limit, monthly_spending_limit, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id) DO UPDATE SET
			auto_top_up_enabled = EXCLUDED.auto_top_up_enabled,
			auto_top_up_threshold = EXCLUDED.auto_top_up_threshold,
			auto_top_up_amount = EXCLUDED.auto_top_up_amount,
			preferred_payment_method = EXCLUDED.preferred_payment_method,
			daily_spending_limit = EXCLUDED.daily_spending_limit,
			monthly_spending_limit = EXCLUDED.monthly_spending_limit,
			updated_at = EXCLUDED.updated_at
		RETURNING ` + settingsColumns

	args := []any{
		s.UserID, s.AutoTopUpEnabled, s.AutoTopUpThreshold, s.AutoTopUpAmount,
		s.PreferredPaymentMethod, s.DailySpendingLimit, s.MonthlySpendingLimit, r.now().UTC(),
	}

	var saved models.WalletSettings
	err := r.db.GetContext(ctx, &saved, query, args...)
	logQuery(query, args, saved, err)
	if err != nil {
		return nil, storageError("upsert settings", err)
	}
	return &saved, nil
}
