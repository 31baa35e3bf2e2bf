package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-wallet-ledger/internal/models"
	"github.com/shopspring/decimal"
)

// IDGenerator produces monotonic transaction ids.
type IDGenerator interface {
	NewString() string
}

// WalletWriterRepository is the only writer of wallet balances and the transaction log.
type WalletWriterRepository struct {
	db  *sqlx.DB
	ids IDGenerator
	now func() time.Time
}

// NewWalletWriterRepository creates a new WalletWriterRepository.
func NewWalletWriterRepository(db *sqlx.DB, ids IDGenerator) *WalletWriterRepository {
	return &WalletWriterRepository{db: db, ids: ids, now: time.Now}
}

const (
	createWalletQuery = `
		INSERT INTO wallets (user_id, balance, currency, version, created_at, updated_at)
		VALUES ($1, $2, $3, 1, $4, $4)
		ON CONFLICT (user_id) DO NOTHING
	`

	updateWalletQuery = `
		UPDATE wallets
		SET balance = $1, version = version + 1, updated_at = $2
		WHERE user_id = $3 AND version = $4
	`

	reverseTransactionQuery = `
		UPDATE wallet_transactions
		SET status = 'reversed'
		WHERE id = $1 AND user_id = $2 AND status = 'completed'
	`

	insertTransactionQuery = `
		INSERT INTO wallet_transactions (
			id, user_id, type, amount, balance_before, balance_after, status,
			external_reference, counterparty_user_id, correlation_id, reverses_id,
			sequence, description, metadata, created_by, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`
)

// AppendTransaction persists rec and moves the wallet balance to rec.BalanceAfter
// in one database transaction.
//
// The wallet row is created when rec.ExpectedVersion is 0 and updated under a
// version check otherwise; a lost race in either case yields
// models.ErrConcurrentModification and nothing is written. When rec.ReversesID
// is set the referenced completed transaction is flipped to reversed in the
// same unit.
func (r *WalletWriterRepository) AppendTransaction(ctx context.Context, rec models.AppendRecord) (*models.Transaction, error) {
	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return nil, storageError("begin append", err)
	}
	defer tx.Rollback()

	now := r.now().UTC()

	var (
		query string
		args  []any
	)
	if rec.ExpectedVersion == 0 {
		query = createWalletQuery
		args = []any{rec.UserID, rec.BalanceAfter, rec.Currency, now}
	} else {
		query = updateWalletQuery
		args = []any{rec.BalanceAfter, now, rec.UserID, rec.ExpectedVersion}
	}

	res, err := tx.ExecContext(ctx, query, args...)
	affected := rowsAffected(res)
	logQuery(query, args, affected, err)
	if err != nil {
		if pgCode(err) == pgCheckViolation {
			return nil, models.ErrInsufficientFunds
		}
		return nil, storageError("update wallet", err)
	}
	if affected == 0 {
		return nil, models.ErrConcurrentModification
	}

	if rec.ReversesID != nil {
		args = []any{*rec.ReversesID, rec.UserID}
		res, err = tx.ExecContext(ctx, reverseTransactionQuery, args...)
		affected = rowsAffected(res)
		logQuery(reverseTransactionQuery, args, affected, err)
		if err != nil {
			return nil, storageError("reverse transaction", err)
		}
		if affected == 0 {
			return nil, models.ValidationError("transaction %s is not a completed entry of wallet %s", *rec.ReversesID, rec.UserID)
		}
	}

	// The wallet row is locked from here on, so ids follow commit order per wallet.
	txn := &models.Transaction{
		ID:                 r.ids.NewString(),
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
		Sequence:           rec.ExpectedVersion + 1,
		Description:        rec.Description,
		Metadata:           rec.Metadata,
		CreatedBy:          rec.CreatedBy,
		CreatedAt:          now,
	}

	args = []any{
		txn.ID, txn.UserID, txn.Type, txn.Amount, txn.BalanceBefore, txn.BalanceAfter, txn.Status,
		txn.ExternalReference, txn.CounterpartyUserID, txn.CorrelationID, txn.ReversesID,
		txn.Sequence, txn.Description, txn.Metadata, txn.CreatedBy, txn.CreatedAt,
	}
	res, err = tx.ExecContext(ctx, insertTransactionQuery, args...)
	logQuery(insertTransactionQuery, args, rowsAffected(res), err)
	if err != nil {
		if pgCode(err) == pgUniqueViolation {
			return nil, models.ErrDuplicateReference
		}
		return nil, storageError("insert transaction", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, storageError("commit append", err)
	}

	return txn, nil
}

func rowsAffected(res sql.Result) int64 {
	if res == nil {
		return 0
	}
	n, _ := res.RowsAffected()
	return n
}

// WalletReaderRepository handles wallet and transaction log reads
type WalletReaderRepository struct {
	db *sqlx.DB
}

func NewWalletReaderRepository(db *sqlx.DB) *WalletReaderRepository {
	return &WalletReaderRepository{db: db}
}

// GetWallet returns the wallet of userID or models.ErrWalletNotFound.
func (r *WalletReaderRepository) GetWallet(ctx context.Context, userID uuid.UUID) (*models.WalletDB, error) {
	const query = `
		SELECT user_id, balance, currency, version, created_at, updated_at
		FROM wallets
		WHERE user_id = $1
	`

	var wallet models.WalletDB
	err := r.db.GetContext(ctx, &wallet, query, userID)
	logQuery(query, []any{userID}, wallet, err)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrWalletNotFound
		}
		return nil, storageError("get wallet", err)
	}
	return &wallet, nil
}

const transactionColumns = `
	id, user_id, type, amount, balance_before, balance_after, status,
	external_reference, counterparty_user_id, correlation_id, reverses_id,
	sequence, description, metadata, created_by, created_at
`

// FindByExternalReference returns the transaction carrying ref, or nil when there is none.
func (r *WalletReaderRepository) FindByExternalReference(ctx context.Context, ref string) (*models.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM wallet_transactions WHERE external_reference = $1`

	var txn models.Transaction
	err := r.db.GetContext(ctx, &txn, query, ref)
	logQuery(query, []any{ref}, txn.ID, err)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, storageError("find by external reference", err)
	}
	return &txn, nil
}

// ListTransactions returns one page of userID's transactions, newest first.
func (r *WalletReaderRepository) ListTransactions(
	ctx context.Context,
	userID uuid.UUID,
	filter models.TransactionFilter,
	page models.Page,
) (*models.TransactionPage, error) {
	page = page.Normalize()

	query := `SELECT ` + transactionColumns + ` FROM wallet_transactions WHERE user_id = ?`
	args := []any{userID}

	if len(filter.Types) > 0 {
		query += ` AND type IN (?)`
		args = append(args, filter.Types)
	}
	if len(filter.Statuses) > 0 {
		query += ` AND status IN (?)`
		args = append(args, filter.Statuses)
	}
	if filter.From != nil {
		query += ` AND created_at >= ?`
		args = append(args, *filter.From)
	}
	if filter.To != nil {
		query += ` AND created_at < ?`
		args = append(args, *filter.To)
	}
	if page.Cursor != "" {
		query += ` AND id < ?`
		args = append(args, page.Cursor)
	}
	query += ` ORDER BY id DESC LIMIT ?`
	args = append(args, page.Limit+1)

	query, args, err := sqlx.In(query, args...)
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}
	query = r.db.Rebind(query)

	var items []models.Transaction
	err = r.db.SelectContext(ctx, &items, query, args...)
	logQuery(query, args, len(items), err)
	if err != nil {
		return nil, storageError("list transactions", err)
	}

	result := &models.TransactionPage{Items: items}
	if len(items) > page.Limit {
		result.Items = items[:page.Limit]
		result.NextCursor = result.Items[page.Limit-1].ID
	}
	if result.Items == nil {
		result.Items = []models.Transaction{}
	}
	return result, nil
}

// SumAmountsSince sums the amounts of userID's completed transactions of the
// given types created at or after since.
func (r *WalletReaderRepository) SumAmountsSince(
	ctx context.Context,
	userID uuid.UUID,
	since time.Time,
	types []models.TransactionType,
) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM wallet_transactions
		WHERE user_id = ? AND status = 'completed' AND created_at >= ?`
	args := []any{userID, since}
	if len(types) > 0 {
		query += ` AND type IN (?)`
		args = append(args, types)
	}

	query, args, err := sqlx.In(query, args...)
	if err != nil {
		return decimal.Zero, fmt.Errorf("build sum query: %w", err)
	}
	query = r.db.Rebind(query)

	var sum decimal.Decimal
	err = r.db.GetContext(ctx, &sum, query, args...)
	logQuery(query, args, sum, err)
	if err != nil {
		return decimal.Zero, storageError("sum amounts", err)
	}
	return sum, nil
}
