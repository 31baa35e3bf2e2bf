package handlers

//go:generate mockgen -source=balance.go -destination=balance_mock.go -package=handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-wallet-ledger/internal/logger"
	"github.com/sbilibin2017/gw-wallet-ledger/internal/models"
)

// BalanceReader defines the interface that the service must implement.
type BalanceReader interface {
	GetBalance(ctx context.Context, userID uuid.UUID) (*models.Balance, error)
}

// BalanceResponse represents a successful response with the user balance
// swagger:model BalanceResponse
type BalanceResponse struct {
	// Wallet owner
	UserID uuid.UUID `json:"user_id"`

	// Current balance
	// default: 12.500
	Balance string `json:"balance"`

	// Currency code
	// default: OMR
	Currency string `json:"currency"`
}

// NewGetBalanceHandler returns an HTTP handler for fetching the user balance.
// @Summary Get wallet balance
// @Description Returns the balance and currency of the caller's wallet. Admins may pass user_id.
// @Tags wallet
// @Produce json
// @Param user_id query string false "Wallet owner (admin only)"
// @Success 200 {object} handlers.BalanceResponse "Wallet balance"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 404 {object} handlers.ErrorResponse "Wallet not found"
// @Failure 503 {object} handlers.ErrorResponse "Service temporarily unavailable"
// @Router /wallet/balance [get]
// @Security BearerAuth
func NewGetBalanceHandler(reader BalanceReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		claims, ok := requireClaims(w, r)
		if !ok {
			return
		}
		userID, ok := targetUser(w, claims, r.URL.Query().Get("user_id"))
		if !ok {
			return
		}

		balance, err := reader.GetBalance(ctx, userID)
		if err != nil {
			if !errors.Is(err, models.ErrWalletNotFound) {
				logger.Log.Errorw("failed to get balance", "userID", userID, "error", err)
			}
			writeLedgerError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, BalanceResponse{
			UserID:   balance.UserID,
			Balance:  balance.Amount.StringFixed(models.AmountScale),
			Currency: balance.Currency,
		})
	}
}
