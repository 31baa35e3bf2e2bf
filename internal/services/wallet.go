package services

//go:generate mockgen -source=wallet.go -destination=wallet_mock.go -package=services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-wallet-ledger/internal/logger"
	"github.com/sbilibin2017/gw-wallet-ledger/internal/models"
)

// WalletReader defines wallet read operations used by the read endpoints.
type WalletReader interface {
	GetWallet(ctx context.Context, userID uuid.UUID) (*models.WalletDB, error)
	ListTransactions(ctx context.Context, userID uuid.UUID, filter models.TransactionFilter, page models.Page) (*models.TransactionPage, error)
}

// BalanceCache caches balances for reads. It is never used to compute a write.
// Entries are versioned: an entry for a lower wallet version never replaces a
// higher one.
type BalanceCache interface {
	GetBalance(ctx context.Context, userID uuid.UUID) (*models.Balance, error) // Returns an error on miss
	SetBalance(ctx context.Context, balance models.Balance) error
	Invalidate(ctx context.Context, userID uuid.UUID, version int64) error // Marks entries below version stale
}

// WalletService serves balance and history reads.
type WalletService struct {
	reader WalletReader
	cache  BalanceCache
}

// NewWalletService creates a new WalletService. cache may be nil.
func NewWalletService(reader WalletReader, cache BalanceCache) *WalletService {
	return &WalletService{
		reader: reader,
		cache:  cache,
	}
}

// GetBalance returns the user's balance and currency, or models.ErrWalletNotFound.
func (s *WalletService) GetBalance(ctx context.Context, userID uuid.UUID) (*models.Balance, error) {
	if s.cache != nil {
		if balance, err := s.cache.GetBalance(ctx, userID); err == nil {
			return balance, nil
		}
	}

	wallet, err := s.reader.GetWallet(ctx, userID)
	if err != nil {
		if !errors.Is(err, models.ErrWalletNotFound) {
			logger.Log.Errorw("failed to get wallet", "userID", userID, "error", err)
		}
		return nil, err
	}

	balance := &models.Balance{
		UserID:   wallet.UserID,
		Amount:   wallet.Balance,
		Currency: wallet.Currency,
		Version:  wallet.Version,
	}
	if s.cache != nil {
		if err := s.cache.SetBalance(ctx, *balance); err != nil {
			logger.Log.Warnw("failed to cache balance", "userID", userID, "error", err)
		}
	}
	return balance, nil
}

// InvalidateBalance drops the cached balances the committed txns made stale.
func (s *WalletService) InvalidateBalance(ctx context.Context, txns ...*models.Transaction) {
	if s.cache == nil {
		return
	}
	for _, txn := range txns {
		if txn == nil {
			continue
		}
		if err := s.cache.Invalidate(ctx, txn.UserID, txn.Sequence); err != nil {
			logger.Log.Warnw("failed to invalidate cached balance", "userID", txn.UserID, "version", txn.Sequence, "error", err)
		}
	}
}

// ListTransactions returns a page of the user's transactions, newest first.
func (s *WalletService) ListTransactions(
	ctx context.Context,
	userID uuid.UUID,
	filter models.TransactionFilter,
	page models.Page,
) (*models.TransactionPage, error) {
	for _, t := range filter.Types {
		if !t.Valid() {
			return nil, models.ValidationError("unknown transaction type %q", t)
		}
	}
	for _, st := range filter.Statuses {
		if !st.Valid() {
			return nil, models.ValidationError("unknown transaction status %q", st)
		}
	}
	if filter.From != nil && filter.To != nil && !filter.From.Before(*filter.To) {
		return nil, models.ValidationError("date range start must be before its end")
	}

	result, err := s.reader.ListTransactions(ctx, userID, filter, page.Normalize())
	if err != nil {
		logger.Log.Errorw("failed to list transactions", "userID", userID, "error", err)
		return nil, err
	}
	return result, nil
}
