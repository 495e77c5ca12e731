package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/govstack/wallet_service/internal/apperrors"
	"github.com/govstack/wallet_service/internal/core/domain"
	portsrepo "github.com/govstack/wallet_service/internal/core/ports/repositories"
	"github.com/govstack/wallet_service/internal/models"
	"github.com/govstack/wallet_service/internal/utils/mapping"
	"github.com/govstack/wallet_service/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const transactionColumns = `transaction_id, transaction_number, from_wallet_id, to_wallet_id, amount, fee_amount, currency_code, transaction_type, status, description, reference_id, reference_type, initiated_by, approved_by, reversal_of, processed_at, created_at, created_by, last_updated_at, last_updated_by, version`

const insertTransactionQuery = `
	INSERT INTO transactions (` + transactionColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21);
`

type PgxLedgerRepository struct {
	BaseRepository
	walletRepo portsrepo.WalletRepositoryFacade
}

// newPgxLedgerRepository creates a new repository for ledger entries.
func newPgxLedgerRepository(pool *pgxpool.Pool, walletRepo portsrepo.WalletRepositoryFacade) portsrepo.LedgerRepositoryFacade {
	return &PgxLedgerRepository{
		BaseRepository: BaseRepository{Pool: pool},
		walletRepo:     walletRepo,
	}
}

// Ensure PgxLedgerRepository implements the facade
var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

// scanTransaction scans a transaction row in transactionColumns order.
func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.TransactionNumber,
		&m.FromWalletID,
		&m.ToWalletID,
		&m.Amount,
		&m.FeeAmount,
		&m.CurrencyCode,
		&m.TransactionType,
		&m.Status,
		&m.Description,
		&m.ReferenceID,
		&m.ReferenceType,
		&m.InitiatedBy,
		&m.ApprovedBy,
		&m.ReversalOf,
		&m.ProcessedAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.Version,
	)
	if err != nil {
		return nil, err
	}
	txn := mapping.ToDomainTransaction(m)
	return &txn, nil
}

// insertArgs flattens a transaction model into the insert parameter list.
func insertArgs(m models.Transaction) []interface{} {
	return []interface{}{
		m.TransactionID,
		m.TransactionNumber,
		m.FromWalletID,
		m.ToWalletID,
		m.Amount,
		m.FeeAmount,
		m.CurrencyCode,
		m.TransactionType,
		m.Status,
		m.Description,
		m.ReferenceID,
		m.ReferenceType,
		m.InitiatedBy,
		m.ApprovedBy,
		m.ReversalOf,
		m.ProcessedAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.Version,
	}
}

// applyBalanceChanges locks the affected wallets and applies the deltas inside
// the given transaction.
func (r *PgxLedgerRepository) applyBalanceChanges(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error {
	walletIDs := make([]string, 0, len(balanceChanges))
	for id := range balanceChanges {
		walletIDs = append(walletIDs, id)
	}

	lockedWallets, err := r.walletRepo.FindWalletsByIDsForUpdate(ctx, tx, walletIDs)
	if err != nil {
		return apperrors.NewAppError(500, "failed to lock wallets for settlement", err)
	}
	for _, id := range walletIDs {
		if _, ok := lockedWallets[id]; !ok {
			return fmt.Errorf("%w: wallet %s", apperrors.ErrNotFound, id)
		}
	}

	if err := r.walletRepo.UpdateWalletBalancesInTx(ctx, tx, balanceChanges, userID, now); err != nil {
		return err
	}
	return nil
}

// SaveSettledTransactions persists settled entries and applies their balance
// deltas atomically. The entries carry their settlement state already; this is
// the only place their balance effect touches the wallets.
func (r *PgxLedgerRepository) SaveSettledTransactions(ctx context.Context, transactions []domain.Transaction, balanceChanges map[string]decimal.Decimal) error {
	if len(transactions) == 0 {
		return fmt.Errorf("%w: no transactions to save", apperrors.ErrValidation)
	}
	for _, txn := range transactions {
		if txn.Status != domain.StatusCompleted && txn.Status != domain.StatusFailed {
			return fmt.Errorf("%w: transaction %s is not settled", apperrors.ErrValidation, txn.TransactionID)
		}
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // no-op once committed

	now := transactions[0].CreatedAt
	userID := transactions[0].CreatedBy

	if err := r.applyBalanceChanges(ctx, tx, balanceChanges, userID, now); err != nil {
		return err
	}

	batch := &pgx.Batch{}
	for _, txn := range transactions {
		batch.Queue(insertTransactionQuery, insertArgs(mapping.ToModelTransaction(txn))...)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert ledger entries", err)
	}

	return r.Commit(ctx, tx)
}

// SavePendingTransaction persists a pending entry and places a hold on the
// source wallet. Balances stay untouched until the entry settles.
func (r *PgxLedgerRepository) SavePendingTransaction(ctx context.Context, transaction domain.Transaction, holdWalletID string, holdAmount decimal.Decimal) error {
	if transaction.Status != domain.StatusPending {
		return fmt.Errorf("%w: transaction %s is not pending", apperrors.ErrValidation, transaction.TransactionID)
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := r.walletRepo.FindWalletsByIDsForUpdate(ctx, tx, []string{holdWalletID}); err != nil {
		return apperrors.NewAppError(500, "failed to lock wallet for hold", err)
	}
	if err := r.walletRepo.UpdateWalletHoldInTx(ctx, tx, holdWalletID, holdAmount, transaction.CreatedBy, transaction.CreatedAt); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, insertTransactionQuery, insertArgs(mapping.ToModelTransaction(transaction))...); err != nil {
		return apperrors.NewAppError(500, "failed to insert pending entry "+transaction.TransactionID, err)
	}

	return r.Commit(ctx, tx)
}

// SettleHeldTransaction moves a pending held entry to its terminal state. The
// hold is always released; the balance debit only lands on completion.
func (r *PgxLedgerRepository) SettleHeldTransaction(ctx context.Context, transactionID string, final domain.TransactionStatus, approvedBy string, now time.Time) error {
	if final != domain.StatusCompleted && final != domain.StatusCancelled && final != domain.StatusFailed {
		return fmt.Errorf("%w: illegal settlement state %s", apperrors.ErrValidation, final)
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	var fromWalletID *string
	var amount decimal.Decimal
	var status string
	row := tx.QueryRow(ctx, `
		SELECT from_wallet_id, amount, status
		FROM transactions
		WHERE transaction_id = $1
		FOR UPDATE;
	`, transactionID)
	if err := row.Scan(&fromWalletID, &amount, &status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to load entry %s for settlement: %w", transactionID, err)
	}
	if status != string(domain.StatusPending) {
		return fmt.Errorf("%w: entry %s is not pending", apperrors.ErrConflict, transactionID)
	}
	if fromWalletID == nil {
		return fmt.Errorf("%w: entry %s carries no hold wallet", apperrors.ErrConflict, transactionID)
	}

	if _, err := r.walletRepo.FindWalletsByIDsForUpdate(ctx, tx, []string{*fromWalletID}); err != nil {
		return apperrors.NewAppError(500, "failed to lock wallet for settlement", err)
	}

	// Release the hold first so the balance guard sees the freed amount.
	if err := r.walletRepo.UpdateWalletHoldInTx(ctx, tx, *fromWalletID, amount.Neg(), approvedBy, now); err != nil {
		return err
	}
	if final == domain.StatusCompleted {
		changes := map[string]decimal.Decimal{*fromWalletID: amount.Neg()}
		if err := r.walletRepo.UpdateWalletBalancesInTx(ctx, tx, changes, approvedBy, now); err != nil {
			return err
		}
	}

	cmdTag, err := tx.Exec(ctx, `
		UPDATE transactions
		SET status = $2, approved_by = $3, processed_at = $4, last_updated_at = $4, last_updated_by = $3, version = version + 1
		WHERE transaction_id = $1 AND status = 'pending';
	`, transactionID, string(final), approvedBy, now)
	if err != nil {
		return fmt.Errorf("failed to settle entry %s: %w", transactionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: entry %s is not pending", apperrors.ErrConflict, transactionID)
	}

	return r.Commit(ctx, tx)
}

// SaveRefundTransaction flips the original entry to refunded and persists the
// reversing credit atomically. The conditional flip keeps reversal single-shot
// even under concurrent refund attempts.
func (r *PgxLedgerRepository) SaveRefundTransaction(ctx context.Context, refund domain.Transaction, originalTransactionID string, balanceChanges map[string]decimal.Decimal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	cmdTag, err := tx.Exec(ctx, `
		UPDATE transactions
		SET status = 'refunded', last_updated_at = $2, last_updated_by = $3, version = version + 1
		WHERE transaction_id = $1 AND status = 'completed';
	`, originalTransactionID, refund.CreatedAt, refund.CreatedBy)
	if err != nil {
		return fmt.Errorf("failed to mark entry %s refunded: %w", originalTransactionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: entry %s is not refundable", apperrors.ErrConflict, originalTransactionID)
	}

	if err := r.applyBalanceChanges(ctx, tx, balanceChanges, refund.CreatedBy, refund.CreatedAt); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, insertTransactionQuery, insertArgs(mapping.ToModelTransaction(refund))...); err != nil {
		return apperrors.NewAppError(500, "failed to insert refund entry "+refund.TransactionID, err)
	}

	return r.Commit(ctx, tx)
}

// FindTransactionByID retrieves a ledger entry by its ID.
func (r *PgxLedgerRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1;`

	txn, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction by ID %s: %w", transactionID, err)
	}
	return txn, nil
}

// FindPaymentByReference retrieves a payment entry by its caller-chosen
// reference, used to make payment retries idempotent.
func (r *PgxLedgerRepository) FindPaymentByReference(ctx context.Context, walletID string, referenceID string) (*domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE from_wallet_id = $1 AND reference_id = $2 AND transaction_type = 'payment'
		ORDER BY created_at
		LIMIT 1;
	`
	txn, err := scanTransaction(r.Pool.QueryRow(ctx, query, walletID, referenceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find payment by reference %s: %w", referenceID, err)
	}
	return txn, nil
}

// ListTransactionsByWallet retrieves a paginated, newest-first list of entries
// affecting a wallet using token-based pagination.
func (r *PgxLedgerRepository) ListTransactionsByWallet(ctx context.Context, walletID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// We fetch one extra item to determine if there's a next page.
	fetchLimit := limit + 1

	baseQuery := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE (from_wallet_id = $1 OR to_wallet_id = $1)
	`
	// Ordering must be stable; transfer legs share a created_at, so the
	// transaction id breaks the tie.
	orderByClause := `ORDER BY created_at DESC, transaction_id DESC`

	var rows pgx.Rows
	var err error
	args := []interface{}{walletID}

	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, lastID, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}

		cursorClause := `AND (created_at, transaction_id) < ($2, $3)`
		args = append(args, lastCreatedAt, lastID)

		query := baseQuery + " " + cursorClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	} else {
		query := baseQuery + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	}

	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query ledger for wallet "+walletID, err)
	}
	defer rows.Close()

	results := make([]domain.Transaction, 0, fetchLimit)
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan ledger row for wallet "+walletID, err)
		}
		results = append(results, *txn)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating ledger rows for wallet "+walletID, err)
	}

	var nextTokenVal *string
	if len(results) > limit {
		last := results[limit-1] // last item actually included in this page
		token := pagination.EncodeToken(last.CreatedAt, last.TransactionID)
		nextTokenVal = &token
		results = results[:limit]
	}

	return results, nextTokenVal, nil
}
