package handlers

//go:generate mockgen -source=transfer.go -destination=transfer_mock.go -package=handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-wallet-ledger/internal/logger"
	"github.com/sbilibin2017/gw-wallet-ledger/internal/models"
	"github.com/shopspring/decimal"
)

// Transferer moves funds between wallets.
type Transferer interface {
	Transfer(ctx context.Context, req models.TransferRequest) (*models.TransferResult, error)
}

// TransferRequest represents the JSON body of a peer transfer
// swagger:model TransferRequest
type TransferRequest struct {
	// Recipient wallet owner
	// required: true
	ToUserID uuid.UUID `json:"to_user_id"`

	// Positive amount with at most three decimals
	// required: true
	// default: 5.000
	Amount decimal.Decimal `json:"amount"`

	// Free text
	Description string `json:"description,omitempty"`

	// Optional key making retries of the same transfer idempotent.
	// The Idempotency-Key header is used when absent.
	IdempotencyKey *string `json:"idempotency_key,omitempty"`
}

// NewTransferHandler returns an HTTP handler transferring funds from the caller.
// @Summary Transfer funds
// @Description Debits the caller and credits the recipient. A failed credit is compensated and reported with its correlation id.
// @Tags wallet
// @Accept json
// @Produce json
// @Param request body handlers.TransferRequest true "Transfer"
// @Param Idempotency-Key header string false "Idempotency key"
// @Success 201 {object} models.TransferResult "Both legs"
// @Failure 400 {object} handlers.ErrorResponse "Invalid transfer"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 409 {object} handlers.ErrorResponse "Insufficient funds"
// @Failure 422 {object} handlers.ErrorResponse "Spending limit exceeded"
// @Failure 503 {object} handlers.ErrorResponse "Service temporarily unavailable"
// @Router /wallet/transfer [post]
// @Security BearerAuth
func NewTransferHandler(
	transferer Transferer,
	publisher EventPublisher,
	invalidator BalanceInvalidator,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		claims, ok := requireClaims(w, r)
		if !ok {
			return
		}

		var req TransferRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Log.Errorw("failed to decode transfer request", "error", err)
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if req.IdempotencyKey == nil {
			if key := r.Header.Get("Idempotency-Key"); key != "" {
				req.IdempotencyKey = &key
			}
		}

		result, err := transferer.Transfer(ctx, models.TransferRequest{
			FromUserID:     claims.UserID,
			ToUserID:       req.ToUserID,
			Amount:         req.Amount,
			Description:    req.Description,
			IdempotencyKey: req.IdempotencyKey,
		})
		if err != nil {
			status, resp := errorResponse(err)
			if result != nil {
				// the debit went through and was reversed
				invalidator.InvalidateBalance(ctx, result.Out, result.Reversal)
				publisher.PublishTransfer(ctx, result)
				resp.CorrelationID = result.CorrelationID
			}
			writeJSON(w, status, resp)
			return
		}

		invalidator.InvalidateBalance(ctx, result.Out, result.In)
		publisher.PublishTransfer(ctx, result)

		writeJSON(w, http.StatusCreated, result)
	}
}
