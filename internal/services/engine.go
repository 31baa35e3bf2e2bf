package services

//go:generate mockgen -source=engine.go -destination=engine_mock.go -package=services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-wallet-ledger/internal/logger"
	"github.com/sbilibin2017/gw-wallet-ledger/internal/models"
	"github.com/shopspring/decimal"
)

// LedgerReader reads the state the engine computes an append from.
type LedgerReader interface {
	GetWallet(ctx context.Context, userID uuid.UUID) (*models.WalletDB, error)                 // Returns models.ErrWalletNotFound when absent
	FindByExternalReference(ctx context.Context, ref string) (*models.Transaction, error) // Returns nil, nil when absent
}

// LedgerWriter performs the atomic balance update plus log append.
type LedgerWriter interface {
	AppendTransaction(ctx context.Context, rec models.AppendRecord) (*models.Transaction, error)
}

// SpendingLimiter checks a debit magnitude against the user's spending caps.
type SpendingLimiter interface {
	CheckSpendingLimit(ctx context.Context, userID uuid.UUID, debit decimal.Decimal) error
}

// EngineConfig tunes the transaction engine.
type EngineConfig struct {
	Currency     string        // Currency of newly created wallets
	MaxAttempts  int           // Append attempts before ErrLedgerBusy
	RetryBase    time.Duration // First retry delay, doubled per attempt
	StoreTimeout time.Duration // Bound on every store call
}

// DefaultEngineConfig returns the engine defaults.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		Currency:     models.OMR,
		MaxAttempts:  5,
		RetryBase:    10 * time.Millisecond,
		StoreTimeout: 3 * time.Second,
	}
}

// TransactionEngine is the single authorized path that mutates a wallet balance.
type TransactionEngine struct {
	reader  LedgerReader
	writer  LedgerWriter
	limiter SpendingLimiter
	cfg     EngineConfig
}

// NewTransactionEngine creates a new TransactionEngine.
func NewTransactionEngine(
	reader LedgerReader,
	writer LedgerWriter,
	limiter SpendingLimiter,
	cfg EngineConfig,
) *TransactionEngine {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 1
	}
	if cfg.Currency == "" {
		cfg.Currency = models.OMR
	}
	return &TransactionEngine{
		reader:  reader,
		writer:  writer,
		limiter: limiter,
		cfg:     cfg,
	}
}

// applyOptions distinguish regular operations from compensating entries.
type applyOptions struct {
	status      models.TransactionStatus
	checkLimits bool
	reversesID  *string
}

// Apply validates and applies a single credit or debit.
//
// A request carrying an external reference that was already applied with the
// same parameters returns the stored transaction without touching the
// balance. Debits that would overdraw the wallet fail with
// models.ErrInsufficientFunds; spending debits over a cap fail with a
// *models.SpendingLimitError. Lost optimistic races are retried and surface as
// models.ErrLedgerBusy once attempts run out.
func (e *TransactionEngine) Apply(ctx context.Context, req models.ApplyRequest) (*models.Transaction, error) {
	if err := validateApplyRequest(req); err != nil {
		logger.Log.Warnw("rejected ledger operation", "userID", req.UserID, "type", req.Type, "amount", req.Amount, "error", err)
		return nil, err
	}

	return e.apply(ctx, req, applyOptions{
		status:      models.StatusCompleted,
		checkLimits: req.Type != models.TypeAdjustment,
	})
}

// Compensate credits back a completed debit and marks both entries reversed.
// It bypasses spending limits and runs detached from the caller's
// cancellation so a dying request cannot strand a half-done transfer.
func (e *TransactionEngine) Compensate(ctx context.Context, original *models.Transaction, reason string) (*models.Transaction, error) {
	if original == nil || !original.Amount.IsNegative() {
		return nil, models.ValidationError("only debits can be compensated")
	}

	req := models.ApplyRequest{
		UserID:             original.UserID,
		Type:               models.TypeRefund,
		Amount:             original.Amount.Neg(),
		CounterpartyUserID: original.CounterpartyUserID,
		CorrelationID:      original.CorrelationID,
		Description:        reason,
		Metadata:           models.Metadata{"reverses": original.ID},
	}
	if original.ExternalReference != nil {
		ref := *original.ExternalReference + ":reversal"
		req.ExternalReference = &ref
	}

	return e.apply(context.WithoutCancel(ctx), req, applyOptions{
		status:     models.StatusReversed,
		reversesID: &original.ID,
	})
}

func (e *TransactionEngine) apply(ctx context.Context, req models.ApplyRequest, opts applyOptions) (*models.Transaction, error) {
	if req.ExternalReference != nil {
		existing, err := e.findReplay(ctx, req, opts.status)
		if err != nil || existing != nil {
			return existing, err
		}
	}

	var (
		result   *models.Transaction
		attempts int
	)
	operation := func() error {
		attempts++
		txn, err := e.attempt(ctx, req, opts)
		switch {
		case err == nil:
			result = txn
			return nil
		case errors.Is(err, models.ErrConcurrentModification):
			logger.Log.Debugw("stale wallet read, retrying", "userID", req.UserID, "attempt", attempts)
			return err
		case errors.Is(err, models.ErrDuplicateReference):
			// Another request with the same reference won the insert race.
			existing, ferr := e.findReplay(ctx, req, opts.status)
			if ferr != nil {
				return backoff.Permanent(ferr)
			}
			if existing != nil {
				result = existing
				return nil
			}
			return err
		default:
			return backoff.Permanent(err)
		}
	}

	if err := backoff.Retry(operation, e.retryPolicy(ctx)); err != nil {
		if errors.Is(err, models.ErrConcurrentModification) || errors.Is(err, models.ErrDuplicateReference) {
			logger.Log.Errorw("ledger append retries exhausted", "userID", req.UserID, "type", req.Type, "attempts", attempts)
			return nil, fmt.Errorf("%w: wallet %s after %d attempts", models.ErrLedgerBusy, req.UserID, attempts)
		}
		logLedgerFailure(req, err)
		return nil, err
	}

	logger.Log.Infow("ledger transaction applied",
		"transactionID", result.ID,
		"userID", result.UserID,
		"type", result.Type,
		"amount", result.Amount,
		"balanceAfter", result.BalanceAfter,
		"status", result.Status,
	)
	return result, nil
}

// attempt runs one read-compute-append cycle.
func (e *TransactionEngine) attempt(ctx context.Context, req models.ApplyRequest, opts applyOptions) (*models.Transaction, error) {
	before := decimal.Zero
	var version int64
	currency := e.cfg.Currency

	wallet, err := e.getWallet(ctx, req.UserID)
	switch {
	case err == nil:
		before, version, currency = wallet.Balance, wallet.Version, wallet.Currency
	case errors.Is(err, models.ErrWalletNotFound):
	default:
		return nil, err
	}

	after := before.Add(req.Amount)
	if req.Amount.IsNegative() && after.IsNegative() {
		return nil, models.ErrInsufficientFunds
	}

	if opts.checkLimits && req.Amount.IsNegative() && e.limiter != nil {
		limitCtx, cancel := context.WithTimeout(ctx, e.cfg.StoreTimeout)
		err := e.limiter.CheckSpendingLimit(limitCtx, req.UserID, req.Amount.Neg())
		cancel()
		if err != nil {
			return nil, err
		}
	}

	rec := models.AppendRecord{
		UserID:             req.UserID,
		Currency:           currency,
		Type:               req.Type,
		Amount:             req.Amount,
		BalanceBefore:      before,
		BalanceAfter:       after,
		ExpectedVersion:    version,
		Status:             opts.status,
		ExternalReference:  req.ExternalReference,
		CounterpartyUserID: req.CounterpartyUserID,
		CorrelationID:      req.CorrelationID,
		ReversesID:         opts.reversesID,
		Description:        req.Description,
		Metadata:           req.Metadata,
		CreatedBy:          req.CreatedBy,
	}

	appendCtx, cancel := context.WithTimeout(ctx, e.cfg.StoreTimeout)
	defer cancel()
	return e.writer.AppendTransaction(appendCtx, rec)
}

// findReplay returns the stored transaction for an already applied reference.
func (e *TransactionEngine) findReplay(ctx context.Context, req models.ApplyRequest, status models.TransactionStatus) (*models.Transaction, error) {
	findCtx, cancel := context.WithTimeout(ctx, e.cfg.StoreTimeout)
	defer cancel()

	existing, err := e.reader.FindByExternalReference(findCtx, *req.ExternalReference)
	if err != nil {
		logger.Log.Errorw("failed to look up external reference", "reference", *req.ExternalReference, "error", err)
		return nil, err
	}
	if existing == nil {
		return nil, nil
	}

	if existing.Status == status &&
		existing.UserID == req.UserID &&
		existing.Type == req.Type &&
		existing.Amount.Equal(req.Amount) {
		logger.Log.Infow("idempotent replay", "reference", *req.ExternalReference, "transactionID", existing.ID)
		return existing, nil
	}

	logger.Log.Warnw("external reference reused with different parameters",
		"reference", *req.ExternalReference, "transactionID", existing.ID, "status", existing.Status)
	return nil, models.ValidationError("external reference %q already used by transaction %s", *req.ExternalReference, existing.ID)
}

func (e *TransactionEngine) getWallet(ctx context.Context, userID uuid.UUID) (*models.WalletDB, error) {
	readCtx, cancel := context.WithTimeout(ctx, e.cfg.StoreTimeout)
	defer cancel()
	return e.reader.GetWallet(readCtx, userID)
}

func (e *TransactionEngine) retryPolicy(ctx context.Context) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = e.cfg.RetryBase
	b.MaxInterval = 20 * e.cfg.RetryBase
	b.MaxElapsedTime = 0
	return backoff.WithContext(backoff.WithMaxRetries(b, uint64(e.cfg.MaxAttempts-1)), ctx)
}

// validateApplyRequest checks the amount sign and scale against the type.
func validateApplyRequest(req models.ApplyRequest) error {
	if req.UserID == uuid.Nil {
		return models.ValidationError("user id is required")
	}
	if !req.Type.Valid() {
		return models.ValidationError("unknown transaction type %q", req.Type)
	}
	if req.Amount.IsZero() {
		return models.ValidationError("amount must not be zero")
	}
	if !req.Amount.Equal(models.RoundAmount(req.Amount)) {
		return models.ValidationError("amount %s has more than %d decimal places", req.Amount, models.AmountScale)
	}
	if req.Type.IsCredit() && req.Amount.IsNegative() {
		return models.ValidationError("%s must be a credit", req.Type)
	}
	if req.Type.IsDebit() && req.Amount.IsPositive() {
		return models.ValidationError("%s must be a debit", req.Type)
	}
	if req.Type == models.TypeAdjustment && (req.CreatedBy == nil || *req.CreatedBy == "") {
		return models.ValidationError("adjustments must record who authorized them")
	}
	if req.ExternalReference != nil && *req.ExternalReference == "" {
		return models.ValidationError("external reference must not be empty")
	}
	return nil
}

// logLedgerFailure logs expected business outcomes at info and faults at error.
func logLedgerFailure(req models.ApplyRequest, err error) {
	if errors.Is(err, models.ErrInsufficientFunds) || errors.Is(err, models.ErrSpendingLimitExceeded) {
		logger.Log.Infow("ledger operation declined", "userID", req.UserID, "type", req.Type, "amount", req.Amount, "reason", err)
		return
	}
	logger.Log.Errorw("ledger operation failed", "userID", req.UserID, "type", req.Type, "amount", req.Amount, "error", err)
}
