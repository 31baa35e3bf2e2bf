package repositories

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-wallet-ledger/internal/logger"
)

// migrations create the ledger schema. Every statement is idempotent.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS wallets (
		user_id UUID PRIMARY KEY,
		balance NUMERIC(20,3) NOT NULL DEFAULT 0 CHECK (balance >= 0),
		currency CHAR(3) NOT NULL,
		version BIGINT NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS wallet_transactions (
		id CHAR(26) PRIMARY KEY,
		user_id UUID NOT NULL REFERENCES wallets(user_id),
		type VARCHAR(32) NOT NULL,
		amount NUMERIC(20,3) NOT NULL,
		balance_before NUMERIC(20,3) NOT NULL,
		balance_after NUMERIC(20,3) NOT NULL,
		status VARCHAR(16) NOT NULL,
		external_reference VARCHAR(255) UNIQUE,
		counterparty_user_id UUID,
		correlation_id CHAR(26),
		reverses_id CHAR(26) REFERENCES wallet_transactions(id),
		sequence BIGINT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		metadata JSONB NOT NULL DEFAULT '{}'::jsonb,
		created_by VARCHAR(255),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CHECK (balance_after = balance_before + amount),
		UNIQUE (user_id, sequence)
	);`,
	`CREATE INDEX IF NOT EXISTS wallet_transactions_user_id_idx
		ON wallet_transactions (user_id, id DESC);`,
	`CREATE INDEX IF NOT EXISTS wallet_transactions_spending_idx
		ON wallet_transactions (user_id, created_at) WHERE status = 'completed' AND amount < 0;`,
	`CREATE INDEX IF NOT EXISTS wallet_transactions_correlation_idx
		ON wallet_transactions (correlation_id) WHERE correlation_id IS NOT NULL;`,
	`CREATE TABLE IF NOT EXISTS wallet_settings (
		user_id UUID PRIMARY KEY,
		auto_top_up_enabled BOOLEAN NOT NULL DEFAULT FALSE,
		auto_top_up_threshold NUMERIC(20,3) NOT NULL DEFAULT 0,
		auto_top_up_amount NUMERIC(20,3) NOT NULL DEFAULT 0,
		preferred_payment_method VARCHAR(32),
		daily_spending_limit NUMERIC(20,3),
		monthly_spending_limit NUMERIC(20,3),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
}

// Migrate applies the ledger schema.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	for i, m := range migrations {
		if _, err := db.ExecContext(ctx, m); err != nil {
			logger.Log.Errorw("migration failed", "step", i, "error", err)
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	logger.Log.Infow("ledger schema migrated", "steps", len(migrations))
	return nil
}
