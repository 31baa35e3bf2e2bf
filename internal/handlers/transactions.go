package handlers

//go:generate mockgen -source=transactions.go -destination=transactions_mock.go -package=handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-wallet-ledger/internal/ids"
	"github.com/sbilibin2017/gw-wallet-ledger/internal/logger"
	"github.com/sbilibin2017/gw-wallet-ledger/internal/models"
	"github.com/shopspring/decimal"
)

// TransactionApplier applies a single ledger operation.
type TransactionApplier interface {
	Apply(ctx context.Context, req models.ApplyRequest) (*models.Transaction, error)
}

// TransactionLister lists a wallet's history.
type TransactionLister interface {
	ListTransactions(ctx context.Context, userID uuid.UUID, filter models.TransactionFilter, page models.Page) (*models.TransactionPage, error)
}

// EventPublisher publishes ledger events after a committed operation.
type EventPublisher interface {
	PublishTransaction(ctx context.Context, txn *models.Transaction)
	PublishTransfer(ctx context.Context, result *models.TransferResult)
}

// BalanceInvalidator drops the cached balances committed transactions made stale.
type BalanceInvalidator interface {
	InvalidateBalance(ctx context.Context, txns ...*models.Transaction)
}

// ApplyTransactionRequest represents the JSON body of a ledger operation
// swagger:model ApplyTransactionRequest
type ApplyTransactionRequest struct {
	// Target wallet, admin only; defaults to the caller
	UserID string `json:"user_id,omitempty"`

	// Transaction type
	// required: true
	// default: top-up
	Type models.TransactionType `json:"type"`

	// Signed amount with at most three decimals
	// required: true
	// default: 10.000
	Amount decimal.Decimal `json:"amount"`

	// Gateway or caller reference; replays with the same reference are idempotent
	ExternalReference *string `json:"external_reference,omitempty"`

	// Free text
	Description string `json:"description,omitempty"`

	// Free-form caller data
	Metadata models.Metadata `json:"metadata,omitempty"`
}

// NewApplyTransactionHandler returns an HTTP handler applying a credit or debit.
// @Summary Apply a transaction
// @Description Applies a top-up, payment, refund, bonus or adjustment. Adjustments and user_id require the admin role.
// @Tags wallet
// @Accept json
// @Produce json
// @Param request body handlers.ApplyTransactionRequest true "Ledger operation"
// @Success 201 {object} models.Transaction "Applied transaction"
// @Failure 400 {object} handlers.ErrorResponse "Validation error"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 403 {object} handlers.ErrorResponse "Forbidden"
// @Failure 409 {object} handlers.ErrorResponse "Insufficient funds"
// @Failure 422 {object} handlers.ErrorResponse "Spending limit exceeded"
// @Failure 503 {object} handlers.ErrorResponse "Service temporarily unavailable"
// @Router /wallet/transactions [post]
// @Security BearerAuth
func NewApplyTransactionHandler(
	applier TransactionApplier,
	publisher EventPublisher,
	invalidator BalanceInvalidator,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		claims, ok := requireClaims(w, r)
		if !ok {
			return
		}

		var req ApplyTransactionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Log.Errorw("failed to decode transaction request", "error", err)
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		userID, ok := targetUser(w, claims, req.UserID)
		if !ok {
			return
		}

		applyReq := models.ApplyRequest{
			UserID:            userID,
			Type:              req.Type,
			Amount:            req.Amount,
			ExternalReference: req.ExternalReference,
			Description:       req.Description,
			Metadata:          req.Metadata,
		}
		if req.Type == models.TypeAdjustment {
			if !claims.IsAdmin() {
				logger.Log.Warnw("adjustment without admin role", "userID", claims.UserID)
				writeError(w, http.StatusForbidden, "Adjustments require the admin role")
				return
			}
			actor := claims.Actor()
			applyReq.CreatedBy = &actor
		}

		txn, err := applier.Apply(ctx, applyReq)
		if err != nil {
			writeLedgerError(w, err)
			return
		}

		invalidator.InvalidateBalance(ctx, txn)
		publisher.PublishTransaction(ctx, txn)

		writeJSON(w, http.StatusCreated, txn)
	}
}

// NewListTransactionsHandler returns an HTTP handler listing the caller's transactions.
// @Summary List transactions
// @Description Returns transactions newest first. Pass next_cursor back as cursor for the next page.
// @Tags wallet
// @Produce json
// @Param type query string false "Comma separated transaction types"
// @Param status query string false "Comma separated statuses"
// @Param from query string false "RFC3339 start, inclusive"
// @Param to query string false "RFC3339 end, exclusive"
// @Param limit query int false "Page size, at most 100"
// @Param cursor query string false "Cursor from the previous page"
// @Param user_id query string false "Wallet owner (admin only)"
// @Success 200 {object} models.TransactionPage "Transactions"
// @Failure 400 {object} handlers.ErrorResponse "Invalid filter"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Router /wallet/transactions [get]
// @Security BearerAuth
func NewListTransactionsHandler(lister TransactionLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		claims, ok := requireClaims(w, r)
		if !ok {
			return
		}

		q := r.URL.Query()
		userID, ok := targetUser(w, claims, q.Get("user_id"))
		if !ok {
			return
		}

		filter, page, err := parseListQuery(q.Get("type"), q.Get("status"), q.Get("from"), q.Get("to"), q.Get("limit"), q.Get("cursor"))
		if err != nil {
			logger.Log.Warnw("invalid transaction listing query", "userID", userID, "error", err)
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		result, err := lister.ListTransactions(ctx, userID, filter, page)
		if err != nil {
			writeLedgerError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, result)
	}
}

func parseListQuery(types, statuses, from, to, limit, cursor string) (models.TransactionFilter, models.Page, error) {
	var (
		filter models.TransactionFilter
		page   = models.Page{Cursor: cursor}
	)

	for _, t := range splitList(types) {
		filter.Types = append(filter.Types, models.TransactionType(t))
	}
	for _, s := range splitList(statuses) {
		filter.Statuses = append(filter.Statuses, models.TransactionStatus(s))
	}
	if from != "" {
		ts, err := time.Parse(time.RFC3339, from)
		if err != nil {
			return filter, page, models.ValidationError("from must be an RFC3339 timestamp")
		}
		filter.From = &ts
	}
	if to != "" {
		ts, err := time.Parse(time.RFC3339, to)
		if err != nil {
			return filter, page, models.ValidationError("to must be an RFC3339 timestamp")
		}
		filter.To = &ts
	}
	if limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil || n <= 0 {
			return filter, page, models.ValidationError("limit must be a positive integer")
		}
		page.Limit = n
	}
	if cursor != "" && !ids.Valid(cursor) {
		return filter, page, models.ValidationError("cursor is not a valid transaction id")
	}
	return filter, page, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
