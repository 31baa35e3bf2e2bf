package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-wallet-ledger/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalletService_GetBalance(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	cached := &models.Balance{UserID: userID, Amount: omr("4.200"), Currency: models.OMR}
	wallet := &models.WalletDB{UserID: userID, Balance: omr("9.100"), Currency: models.OMR, Version: 3}

	tests := []struct {
		name      string
		setup     func(r *MockWalletReader, c *MockBalanceCache)
		want      string
		expectErr error
	}{
		{
			name: "cache hit",
			setup: func(r *MockWalletReader, c *MockBalanceCache) {
				c.EXPECT().GetBalance(ctx, userID).Return(cached, nil)
			},
			want: "4.200",
		},
		{
			name: "cache miss reads and fills",
			setup: func(r *MockWalletReader, c *MockBalanceCache) {
				c.EXPECT().GetBalance(ctx, userID).Return(nil, errors.New("miss"))
				r.EXPECT().GetWallet(ctx, userID).Return(wallet, nil)
				c.EXPECT().SetBalance(ctx, models.Balance{UserID: userID, Amount: wallet.Balance, Currency: models.OMR, Version: 3}).Return(nil)
			},
			want: "9.100",
		},
		{
			name: "cache write failure is ignored",
			setup: func(r *MockWalletReader, c *MockBalanceCache) {
				c.EXPECT().GetBalance(ctx, userID).Return(nil, errors.New("miss"))
				r.EXPECT().GetWallet(ctx, userID).Return(wallet, nil)
				c.EXPECT().SetBalance(ctx, gomock.Any()).Return(errors.New("redis down"))
			},
			want: "9.100",
		},
		{
			name: "wallet not found",
			setup: func(r *MockWalletReader, c *MockBalanceCache) {
				c.EXPECT().GetBalance(ctx, userID).Return(nil, errors.New("miss"))
				r.EXPECT().GetWallet(ctx, userID).Return(nil, models.ErrWalletNotFound)
			},
			expectErr: models.ErrWalletNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			reader := NewMockWalletReader(ctrl)
			cache := NewMockBalanceCache(ctrl)
			tt.setup(reader, cache)

			svc := NewWalletService(reader, cache)
			balance, err := svc.GetBalance(ctx, userID)
			if tt.expectErr != nil {
				assert.ErrorIs(t, err, tt.expectErr)
				return
			}
			require.NoError(t, err)
			assert.True(t, omr(tt.want).Equal(balance.Amount))
			assert.Equal(t, models.OMR, balance.Currency)
		})
	}
}

func TestWalletService_GetBalance_NoCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	userID := uuid.New()
	reader := NewMockWalletReader(ctrl)
	reader.EXPECT().GetWallet(ctx, userID).Return(&models.WalletDB{UserID: userID, Balance: omr("1"), Currency: models.OMR}, nil)

	balance, err := NewWalletService(reader, nil).GetBalance(ctx, userID)
	require.NoError(t, err)
	assert.True(t, omr("1").Equal(balance.Amount))
}

func TestWalletService_InvalidateBalance(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	a, b := uuid.New(), uuid.New()
	cache := NewMockBalanceCache(ctrl)
	cache.EXPECT().Invalidate(ctx, a, int64(4)).Return(nil)
	cache.EXPECT().Invalidate(ctx, b, int64(7)).Return(errors.New("redis down"))

	NewWalletService(NewMockWalletReader(ctrl), cache).InvalidateBalance(ctx,
		&models.Transaction{UserID: a, Sequence: 4},
		nil,
		&models.Transaction{UserID: b, Sequence: 7},
	)
}

// versionedCache keeps one entry per user and refuses writes older than it.
type versionedCache struct {
	entries map[uuid.UUID]models.Balance
	stale   map[uuid.UUID]bool
}

func newVersionedCache() *versionedCache {
	return &versionedCache{entries: map[uuid.UUID]models.Balance{}, stale: map[uuid.UUID]bool{}}
}

func (c *versionedCache) GetBalance(_ context.Context, userID uuid.UUID) (*models.Balance, error) {
	b, ok := c.entries[userID]
	if !ok || c.stale[userID] {
		return nil, errors.New("miss")
	}
	return &b, nil
}

func (c *versionedCache) SetBalance(_ context.Context, balance models.Balance) error {
	if cur, ok := c.entries[balance.UserID]; ok && cur.Version > balance.Version {
		return nil
	}
	c.entries[balance.UserID] = balance
	c.stale[balance.UserID] = false
	return nil
}

func (c *versionedCache) Invalidate(_ context.Context, userID uuid.UUID, version int64) error {
	if cur, ok := c.entries[userID]; ok && cur.Version > version {
		return nil
	}
	c.entries[userID] = models.Balance{UserID: userID, Version: version}
	c.stale[userID] = true
	return nil
}

func TestWalletService_GetBalance_StaleFillAfterInvalidate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	userID := uuid.New()
	cache := newVersionedCache()
	reader := NewMockWalletReader(ctrl)
	svc := NewWalletService(reader, cache)

	// a write commits version 2 between the read and the fill of version 1
	gomock.InOrder(
		reader.EXPECT().GetWallet(ctx, userID).
			DoAndReturn(func(ctx context.Context, id uuid.UUID) (*models.WalletDB, error) {
				svc.InvalidateBalance(ctx, &models.Transaction{UserID: id, Sequence: 2})
				return &models.WalletDB{UserID: id, Balance: omr("10"), Currency: models.OMR, Version: 1}, nil
			}),
		reader.EXPECT().GetWallet(ctx, userID).
			Return(&models.WalletDB{UserID: userID, Balance: omr("50"), Currency: models.OMR, Version: 2}, nil),
	)

	first, err := svc.GetBalance(ctx, userID)
	require.NoError(t, err)
	assert.True(t, omr("10").Equal(first.Amount))

	// the version 1 fill lost to the marker, so the next read goes to the ledger
	second, err := svc.GetBalance(ctx, userID)
	require.NoError(t, err)
	assert.True(t, omr("50").Equal(second.Amount))
	assert.Equal(t, int64(2), second.Version)

	// and the version 2 fill is served from cache
	third, err := svc.GetBalance(ctx, userID)
	require.NoError(t, err)
	assert.True(t, omr("50").Equal(third.Amount))
}

func TestWalletService_ListTransactions(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	t.Run("normalizes the page", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		reader := NewMockWalletReader(ctrl)
		filter := models.TransactionFilter{Types: []models.TransactionType{models.TypeTopUp}, From: &from, To: &to}
		page := &models.TransactionPage{Items: []models.Transaction{{ID: "b"}, {ID: "a"}}}
		reader.EXPECT().ListTransactions(ctx, userID, filter, models.Page{Limit: models.MaxPageLimit, Cursor: "c"}).Return(page, nil)

		got, err := NewWalletService(reader, nil).ListTransactions(ctx, userID, filter, models.Page{Limit: 1000, Cursor: "c"})
		require.NoError(t, err)
		assert.Equal(t, page, got)
	})

	invalid := []struct {
		name   string
		filter models.TransactionFilter
	}{
		{"unknown type", models.TransactionFilter{Types: []models.TransactionType{"cashback"}}},
		{"unknown status", models.TransactionFilter{Statuses: []models.TransactionStatus{"settled"}}},
		{"inverted range", models.TransactionFilter{From: &to, To: &from}},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			_, err := NewWalletService(NewMockWalletReader(ctrl), nil).ListTransactions(ctx, userID, tt.filter, models.Page{})
			assert.ErrorIs(t, err, models.ErrValidation)
		})
	}
}
