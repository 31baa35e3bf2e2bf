package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-wallet-ledger/internal/jwt"
	"github.com/sbilibin2017/gw-wallet-ledger/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAutoTopUpHandler(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name           string
		claims         *jwt.Claims
		setupMocks     func(m *MockAutoTopUpChecker)
		expectedStatus int
		expectEligible bool
	}{
		{
			name:   "eligible",
			claims: &jwt.Claims{UserID: userID},
			setupMocks: func(m *MockAutoTopUpChecker) {
				m.EXPECT().CheckAutoTopUp(gomock.Any(), userID).Return(&models.AutoTopUpAdvice{
					Eligible:        true,
					SuggestedAmount: decimal.RequireFromString("20"),
					Balance:         decimal.RequireFromString("1"),
					Threshold:       decimal.RequireFromString("5"),
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectEligible: true,
		},
		{
			name:           "unauthorized",
			setupMocks:     func(m *MockAutoTopUpChecker) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:   "store failure",
			claims: &jwt.Claims{UserID: userID},
			setupMocks: func(m *MockAutoTopUpChecker) {
				m.EXPECT().CheckAutoTopUp(gomock.Any(), userID).Return(nil, errors.New("boom"))
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			checker := NewMockAutoTopUpChecker(ctrl)
			tt.setupMocks(checker)

			req := withClaims(httptest.NewRequest(http.MethodGet, "/wallet/auto-top-up", nil), tt.claims)
			rr := httptest.NewRecorder()

			NewAutoTopUpHandler(checker).ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			if tt.expectedStatus == http.StatusOK {
				var advice models.AutoTopUpAdvice
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&advice))
				assert.Equal(t, tt.expectEligible, advice.Eligible)
			}
		})
	}
}

func TestGetSettingsHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()
	manager := NewMockSettingsManager(ctrl)
	defaults := models.DefaultSettings(userID)
	manager.EXPECT().GetSettings(gomock.Any(), userID).Return(&defaults, nil)

	req := withClaims(httptest.NewRequest(http.MethodGet, "/wallet/settings", nil), &jwt.Claims{UserID: userID})
	rr := httptest.NewRecorder()

	NewGetSettingsHandler(manager).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var got models.WalletSettings
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
	assert.Equal(t, userID, got.UserID)
	assert.False(t, got.AutoTopUpEnabled)
}

func TestUpdateSettingsHandler(t *testing.T) {
	userID := uuid.New()
	admin := &jwt.Claims{UserID: uuid.New(), Role: jwt.RoleAdmin}
	user := &jwt.Claims{UserID: userID, Role: jwt.RoleUser}

	tests := []struct {
		name           string
		claims         *jwt.Claims
		query          string
		body           string
		setupMocks     func(m *MockSettingsManager)
		expectedStatus int
	}{
		{
			name:   "admin update",
			claims: admin,
			query:  "?user_id=" + userID.String(),
			body:   `{"daily_spending_limit":"50","auto_top_up_enabled":true,"auto_top_up_amount":"10","preferred_payment_method":"card"}`,
			setupMocks: func(m *MockSettingsManager) {
				m.EXPECT().UpdateSettings(gomock.Any(), userID, gomock.Any()).
					DoAndReturn(func(_ context.Context, _ uuid.UUID, delta models.SettingsUpdate) (*models.WalletSettings, error) {
						require.NotNil(t, delta.DailySpendingLimit)
						assert.True(t, decimal.RequireFromString("50").Equal(*delta.DailySpendingLimit))
						assert.Nil(t, delta.MonthlySpendingLimit)
						s := models.DefaultSettings(userID)
						s.DailySpendingLimit = delta.DailySpendingLimit
						return &s, nil
					})
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "not an admin",
			claims:         user,
			query:          "?user_id=" + userID.String(),
			body:           `{}`,
			setupMocks:     func(m *MockSettingsManager) {},
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "missing user_id",
			claims:         admin,
			body:           `{}`,
			setupMocks:     func(m *MockSettingsManager) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "malformed user_id",
			claims:         admin,
			query:          "?user_id=abc",
			body:           `{}`,
			setupMocks:     func(m *MockSettingsManager) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:   "invalid settings",
			claims: admin,
			query:  "?user_id=" + userID.String(),
			body:   `{"daily_spending_limit":"500","monthly_spending_limit":"100"}`,
			setupMocks: func(m *MockSettingsManager) {
				m.EXPECT().UpdateSettings(gomock.Any(), userID, gomock.Any()).
					Return(nil, models.ValidationError("daily limit exceeds monthly limit"))
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unauthorized",
			body:           `{}`,
			setupMocks:     func(m *MockSettingsManager) {},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			manager := NewMockSettingsManager(ctrl)
			tt.setupMocks(manager)

			req := withClaims(httptest.NewRequest(http.MethodPatch, "/wallet/settings"+tt.query, bytes.NewBufferString(tt.body)), tt.claims)
			rr := httptest.NewRecorder()

			NewUpdateSettingsHandler(manager).ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
		})
	}
}
