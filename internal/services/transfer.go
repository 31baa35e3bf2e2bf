package services

//go:generate mockgen -source=transfer.go -destination=transfer_mock.go -package=services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-wallet-ledger/internal/logger"
	"github.com/sbilibin2017/gw-wallet-ledger/internal/models"
)

// ReferenceFinder looks up applied transactions by external reference.
type ReferenceFinder interface {
	FindByExternalReference(ctx context.Context, ref string) (*models.Transaction, error) // Returns nil, nil when absent
}

// TransactionApplier applies single ledger operations and compensations.
type TransactionApplier interface {
	Apply(ctx context.Context, req models.ApplyRequest) (*models.Transaction, error)
	Compensate(ctx context.Context, original *models.Transaction, reason string) (*models.Transaction, error)
}

// IDGenerator produces correlation ids.
type IDGenerator interface {
	NewString() string
}

// MaxTransferAttempts bounds how many compensated attempts one idempotency key may accumulate.
const MaxTransferAttempts = 10

// TransferCoordinator moves funds between two wallets as one user-visible operation.
type TransferCoordinator struct {
	engine TransactionApplier
	refs   ReferenceFinder
	ids    IDGenerator
}

// NewTransferCoordinator creates a new TransferCoordinator.
func NewTransferCoordinator(engine TransactionApplier, refs ReferenceFinder, ids IDGenerator) *TransferCoordinator {
	return &TransferCoordinator{engine: engine, refs: refs, ids: ids}
}

// Transfer debits the sender and then credits the recipient, each leg its own
// atomic append. When the credit fails the debit is compensated and the
// credit's error is returned together with a result holding the reversed pair.
//
// Retrying with the same idempotency key replays a completed transfer. When
// the earlier attempt was compensated the retry runs the transfer again.
func (c *TransferCoordinator) Transfer(ctx context.Context, req models.TransferRequest) (*models.TransferResult, error) {
	if req.FromUserID == uuid.Nil || req.ToUserID == uuid.Nil {
		return nil, fmt.Errorf("%w: sender and recipient are required", models.ErrInvalidTransfer)
	}
	if req.FromUserID == req.ToUserID {
		return nil, fmt.Errorf("%w: sender and recipient are the same wallet", models.ErrInvalidTransfer)
	}
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", models.ErrInvalidTransfer)
	}
	if req.IdempotencyKey != nil && *req.IdempotencyKey == "" {
		return nil, fmt.Errorf("%w: idempotency key must not be empty", models.ErrInvalidTransfer)
	}

	key := req.IdempotencyKey
	if key != nil {
		attemptKey, err := c.attemptKey(ctx, *key)
		if err != nil {
			return nil, err
		}
		key = &attemptKey
	}

	correlationID := c.ids.NewString()
	from, to := req.FromUserID, req.ToUserID

	out, err := c.engine.Apply(ctx, models.ApplyRequest{
		UserID:             from,
		Type:               models.TypeTransferOut,
		Amount:             req.Amount.Neg(),
		ExternalReference:  legReference(key, "out"),
		CounterpartyUserID: &to,
		CorrelationID:      &correlationID,
		Description:        req.Description,
	})
	if err != nil {
		logger.Log.Infow("transfer debit leg failed", "correlationID", correlationID, "from", from, "to", to, "error", err)
		return nil, err
	}

	// An idempotent replay returns the legs of the original transfer.
	if out.CorrelationID != nil {
		correlationID = *out.CorrelationID
	}

	in, err := c.engine.Apply(ctx, models.ApplyRequest{
		UserID:             to,
		Type:               models.TypeTransferIn,
		Amount:             req.Amount,
		ExternalReference:  legReference(key, "in"),
		CounterpartyUserID: &from,
		CorrelationID:      &correlationID,
		Description:        req.Description,
	})
	if err != nil {
		logger.Log.Warnw("transfer credit leg failed, compensating sender",
			"correlationID", correlationID, "from", from, "to", to, "debitID", out.ID, "error", err)

		reversal, cerr := c.engine.Compensate(ctx, out, fmt.Sprintf("reversal of transfer %s", correlationID))
		if cerr != nil {
			logger.Log.Errorw("transfer compensation failed, sender left debited",
				"correlationID", correlationID, "from", from, "debitID", out.ID, "amount", out.Amount,
				"creditError", err, "compensationError", cerr)
			return nil, err
		}

		out.Status = models.StatusReversed
		return &models.TransferResult{
			CorrelationID: correlationID,
			Out:           out,
			Reversal:      reversal,
		}, err
	}

	logger.Log.Infow("transfer completed", "correlationID", correlationID, "from", from, "to", to, "amount", req.Amount)
	return &models.TransferResult{
		CorrelationID: correlationID,
		Out:           out,
		In:            in,
	}, nil
}

// attemptKey returns the key of the first attempt of key whose debit leg was
// not compensated. The first attempt uses key itself, later ones key#n.
func (c *TransferCoordinator) attemptKey(ctx context.Context, key string) (string, error) {
	for n := 1; n <= MaxTransferAttempts; n++ {
		attempt := key
		if n > 1 {
			attempt = fmt.Sprintf("%s#%d", key, n)
		}

		out, err := c.refs.FindByExternalReference(ctx, *legReference(&attempt, "out"))
		if err != nil {
			logger.Log.Errorw("failed to look up transfer attempt", "idempotencyKey", key, "attempt", n, "error", err)
			return "", err
		}
		if out == nil || out.Status != models.StatusReversed {
			return attempt, nil
		}
		logger.Log.Infow("transfer attempt was reversed, trying next", "idempotencyKey", key, "attempt", n, "debitID", out.ID)
	}
	return "", models.ValidationError("transfer %q was reversed %d times", key, MaxTransferAttempts)
}

func legReference(key *string, leg string) *string {
	if key == nil {
		return nil
	}
	ref := fmt.Sprintf("transfer:%s:%s", *key, leg)
	return &ref
}
