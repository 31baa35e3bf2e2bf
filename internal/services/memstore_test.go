package services

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-wallet-ledger/internal/models"
	"github.com/shopspring/decimal"
)

// memStore is an in-memory ledger store with the same version semantics as
// the postgres repositories.
type memStore struct {
	mu      sync.Mutex
	wallets map[uuid.UUID]models.WalletDB
	txns    []models.Transaction
	refs    map[string]int
	seq     int
	now     func() time.Time
}

func newMemStore() *memStore {
	return &memStore{
		wallets: make(map[uuid.UUID]models.WalletDB),
		refs:    make(map[string]int),
		now:     time.Now,
	}
}

func (s *memStore) GetWallet(_ context.Context, userID uuid.UUID) (*models.WalletDB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.wallets[userID]
	if !ok {
		return nil, models.ErrWalletNotFound
	}
	return &w, nil
}

func (s *memStore) FindByExternalReference(_ context.Context, ref string) (*models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.refs[ref]
	if !ok {
		return nil, nil
	}
	txn := s.txns[i]
	return &txn, nil
}

func (s *memStore) AppendTransaction(_ context.Context, rec models.AppendRecord) (*models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, exists := s.wallets[rec.UserID]
	if rec.ExpectedVersion == 0 && exists {
		return nil, models.ErrConcurrentModification
	}
	if rec.ExpectedVersion != 0 && (!exists || w.Version != rec.ExpectedVersion) {
		return nil, models.ErrConcurrentModification
	}
	if rec.BalanceAfter.IsNegative() {
		return nil, models.ErrInsufficientFunds
	}
	if rec.ExternalReference != nil {
		if _, dup := s.refs[*rec.ExternalReference]; dup {
			return nil, models.ErrDuplicateReference
		}
	}

	reversed := -1
	if rec.ReversesID != nil {
		for i := range s.txns {
			if s.txns[i].ID == *rec.ReversesID && s.txns[i].UserID == rec.UserID && s.txns[i].Status == models.StatusCompleted {
				reversed = i
			}
		}
		if reversed < 0 {
			return nil, models.ValidationError("transaction %s is not reversible", *rec.ReversesID)
		}
	}

	now := s.now()
	if !exists {
		w = models.WalletDB{UserID: rec.UserID, Currency: rec.Currency, CreatedAt: now}
	}
	w.Balance = rec.BalanceAfter
	w.Version++
	w.UpdatedAt = now
	s.wallets[rec.UserID] = w

	if reversed >= 0 {
		s.txns[reversed].Status = models.StatusReversed
	}

	s.seq++
	txn := models.Transaction{
		ID:                 fmt.Sprintf("%026d", s.seq),
		UserID:             rec.UserID,
		Type:               rec.Type,
		Amount:             rec.Amount,
		BalanceBefore:      rec.BalanceBefore,
		BalanceAfter:       rec.BalanceAfter,
		Status:             rec.Status,
		ExternalReference:  rec.ExternalReference,
		CounterpartyUserID: rec.CounterpartyUserID,
		CorrelationID:      rec.CorrelationID,
		ReversesID:         rec.ReversesID,
		Sequence:           w.Version,
		Description:        rec.Description,
		Metadata:           rec.Metadata,
		CreatedBy:          rec.CreatedBy,
		CreatedAt:          now,
	}
	s.txns = append(s.txns, txn)
	if rec.ExternalReference != nil {
		s.refs[*rec.ExternalReference] = len(s.txns) - 1
	}
	return &txn, nil
}

func (s *memStore) SumAmountsSince(_ context.Context, userID uuid.UUID, since time.Time, types []models.TransactionType) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sum := decimal.Zero
	for _, t := range s.txns {
		if t.UserID != userID || t.Status != models.StatusCompleted || t.CreatedAt.Before(since) {
			continue
		}
		for _, typ := range types {
			if t.Type == typ {
				sum = sum.Add(t.Amount)
			}
		}
	}
	return sum, nil
}

// history returns the user's transactions in append order.
func (s *memStore) history(userID uuid.UUID) []models.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Transaction
	for _, t := range s.txns {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Sequence < out[j].Sequence })
	return out
}

func (s *memStore) balance(userID uuid.UUID) decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wallets[userID].Balance
}

// noSettings behaves like a settings table with no rows.
type noSettings struct{}

func (noSettings) GetSettings(context.Context, uuid.UUID) (*models.WalletSettings, error) {
	return nil, models.ErrSettingsNotFound
}

func omr(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func strPtr(s string) *string {
	return &s
}
