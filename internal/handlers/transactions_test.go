package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-wallet-ledger/internal/jwt"
	"github.com/sbilibin2017/gw-wallet-ledger/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyTransactionHandler(t *testing.T) {
	userID := uuid.New()
	otherID := uuid.New()
	adminID := uuid.New()
	user := &jwt.Claims{UserID: userID, Role: jwt.RoleUser}
	admin := &jwt.Claims{UserID: adminID, Role: jwt.RoleAdmin}

	applied := &models.Transaction{ID: "01J9ZQ4Y3H5M8V2K6T0R1B7XWQ", UserID: userID, Type: models.TypeTopUp}

	tests := []struct {
		name           string
		claims         *jwt.Claims
		body           string
		setupMocks     func(a *MockTransactionApplier, p *MockEventPublisher, i *MockBalanceInvalidator)
		expectedStatus int
	}{
		{
			name:   "top-up",
			claims: user,
			body:   `{"type":"top-up","amount":"10.000","external_reference":"stripe:pi_9"}`,
			setupMocks: func(a *MockTransactionApplier, p *MockEventPublisher, i *MockBalanceInvalidator) {
				a.EXPECT().Apply(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, req models.ApplyRequest) (*models.Transaction, error) {
						assert.Equal(t, userID, req.UserID)
						assert.True(t, decimal.RequireFromString("10").Equal(req.Amount))
						assert.Equal(t, "stripe:pi_9", *req.ExternalReference)
						assert.Nil(t, req.CreatedBy)
						return applied, nil
					})
				i.EXPECT().InvalidateBalance(gomock.Any(), applied)
				p.EXPECT().PublishTransaction(gomock.Any(), applied)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "invalid body",
			claims:         user,
			body:           `not-json`,
			setupMocks:     func(a *MockTransactionApplier, p *MockEventPublisher, i *MockBalanceInvalidator) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unauthorized",
			body:           `{"type":"top-up","amount":1}`,
			setupMocks:     func(a *MockTransactionApplier, p *MockEventPublisher, i *MockBalanceInvalidator) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "adjustment by user",
			claims:         user,
			body:           `{"type":"adjustment","amount":"-1"}`,
			setupMocks:     func(a *MockTransactionApplier, p *MockEventPublisher, i *MockBalanceInvalidator) {},
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "user targeting another wallet",
			claims:         user,
			body:           `{"user_id":"` + otherID.String() + `","type":"bonus","amount":"1"}`,
			setupMocks:     func(a *MockTransactionApplier, p *MockEventPublisher, i *MockBalanceInvalidator) {},
			expectedStatus: http.StatusForbidden,
		},
		{
			name:   "adjustment by admin",
			claims: admin,
			body:   `{"user_id":"` + otherID.String() + `","type":"adjustment","amount":"-1.5","description":"chargeback"}`,
			setupMocks: func(a *MockTransactionApplier, p *MockEventPublisher, i *MockBalanceInvalidator) {
				a.EXPECT().Apply(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, req models.ApplyRequest) (*models.Transaction, error) {
						assert.Equal(t, otherID, req.UserID)
						require.NotNil(t, req.CreatedBy)
						assert.Equal(t, "admin:"+adminID.String(), *req.CreatedBy)
						return &models.Transaction{ID: "x", UserID: otherID}, nil
					})
				i.EXPECT().InvalidateBalance(gomock.Any(), gomock.Any())
				p.EXPECT().PublishTransaction(gomock.Any(), gomock.Any())
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:   "insufficient funds",
			claims: user,
			body:   `{"type":"payment-debit","amount":"-100"}`,
			setupMocks: func(a *MockTransactionApplier, p *MockEventPublisher, i *MockBalanceInvalidator) {
				a.EXPECT().Apply(gomock.Any(), gomock.Any()).Return(nil, models.ErrInsufficientFunds)
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name:   "validation error",
			claims: user,
			body:   `{"type":"top-up","amount":"1.0001"}`,
			setupMocks: func(a *MockTransactionApplier, p *MockEventPublisher, i *MockBalanceInvalidator) {
				a.EXPECT().Apply(gomock.Any(), gomock.Any()).Return(nil, models.ValidationError("too many decimals"))
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:   "ledger busy",
			claims: user,
			body:   `{"type":"payment-debit","amount":"-1"}`,
			setupMocks: func(a *MockTransactionApplier, p *MockEventPublisher, i *MockBalanceInvalidator) {
				a.EXPECT().Apply(gomock.Any(), gomock.Any()).Return(nil, models.ErrLedgerBusy)
			},
			expectedStatus: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			applier := NewMockTransactionApplier(ctrl)
			publisher := NewMockEventPublisher(ctrl)
			invalidator := NewMockBalanceInvalidator(ctrl)
			tt.setupMocks(applier, publisher, invalidator)

			req := withClaims(httptest.NewRequest(http.MethodPost, "/wallet/transactions", bytes.NewBufferString(tt.body)), tt.claims)
			rr := httptest.NewRecorder()

			NewApplyTransactionHandler(applier, publisher, invalidator).ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
		})
	}
}

func TestApplyTransactionHandler_SpendingLimitBody(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()
	applier := NewMockTransactionApplier(ctrl)
	applier.EXPECT().Apply(gomock.Any(), gomock.Any()).Return(nil, &models.SpendingLimitError{
		Kind:      models.LimitMonthly,
		Limit:     decimal.RequireFromString("200"),
		Used:      decimal.RequireFromString("199"),
		Requested: decimal.RequireFromString("2"),
	})

	req := withClaims(httptest.NewRequest(http.MethodPost, "/wallet/transactions",
		bytes.NewBufferString(`{"type":"payment-debit","amount":"-2"}`)), &jwt.Claims{UserID: userID})
	rr := httptest.NewRecorder()

	NewApplyTransactionHandler(applier, NewMockEventPublisher(ctrl), NewMockBalanceInvalidator(ctrl)).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, models.LimitMonthly, resp.LimitKind)
}

func TestListTransactionsHandler(t *testing.T) {
	userID := uuid.New()
	user := &jwt.Claims{UserID: userID, Role: jwt.RoleUser}
	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name           string
		query          string
		setupMocks     func(m *MockTransactionLister)
		expectedStatus int
	}{
		{
			name:  "filters and page",
			query: "?type=payment-debit,transfer-out&status=completed&from=2024-03-01T00:00:00Z&limit=2&cursor=01J9ZQ4Y3H5M8V2K6T0R1B7XWR",
			setupMocks: func(m *MockTransactionLister) {
				m.EXPECT().ListTransactions(gomock.Any(), userID, gomock.Any(), models.Page{Limit: 2, Cursor: "01J9ZQ4Y3H5M8V2K6T0R1B7XWR"}).
					DoAndReturn(func(_ context.Context, _ uuid.UUID, filter models.TransactionFilter, _ models.Page) (*models.TransactionPage, error) {
						assert.Equal(t, []models.TransactionType{models.TypePaymentDebit, models.TypeTransferOut}, filter.Types)
						assert.Equal(t, []models.TransactionStatus{models.StatusCompleted}, filter.Statuses)
						require.NotNil(t, filter.From)
						assert.True(t, from.Equal(*filter.From))
						assert.Nil(t, filter.To)
						return &models.TransactionPage{Items: []models.Transaction{{ID: "b"}, {ID: "a"}}, NextCursor: "a"}, nil
					})
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:  "defaults",
			query: "",
			setupMocks: func(m *MockTransactionLister) {
				m.EXPECT().ListTransactions(gomock.Any(), userID, models.TransactionFilter{}, models.Page{}).
					Return(&models.TransactionPage{Items: []models.Transaction{}}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "bad timestamp",
			query:          "?from=yesterday",
			setupMocks:     func(m *MockTransactionLister) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "bad limit",
			query:          "?limit=-3",
			setupMocks:     func(m *MockTransactionLister) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "bad cursor",
			query:          "?cursor=not-a-ulid",
			setupMocks:     func(m *MockTransactionLister) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:  "unknown type",
			query: "?type=cashback",
			setupMocks: func(m *MockTransactionLister) {
				m.EXPECT().ListTransactions(gomock.Any(), userID, gomock.Any(), gomock.Any()).
					Return(nil, models.ValidationError("unknown transaction type"))
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			lister := NewMockTransactionLister(ctrl)
			tt.setupMocks(lister)

			req := withClaims(httptest.NewRequest(http.MethodGet, "/wallet/transactions"+tt.query, nil), user)
			rr := httptest.NewRecorder()

			NewListTransactionsHandler(lister).ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
		})
	}
}
