package pgsql

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/govstack/wallet_service/internal/apperrors"
	"github.com/govstack/wallet_service/internal/core/domain"
	portsrepo "github.com/govstack/wallet_service/internal/core/ports/repositories"
	"github.com/govstack/wallet_service/internal/models"
	"github.com/govstack/wallet_service/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const walletColumns = `wallet_id, wallet_number, owner_id, owner_type, owner_name, balance, held_amount, currency_code, status, is_verified, created_at, created_by, last_updated_at, last_updated_by, version`

type PgxWalletRepository struct {
	BaseRepository
}

// newPgxWalletRepository creates a new repository for wallet data.
func newPgxWalletRepository(pool *pgxpool.Pool) portsrepo.WalletRepositoryFacade {
	return &PgxWalletRepository{BaseRepository{Pool: pool}}
}

// Ensure PgxWalletRepository implements the facade
var _ portsrepo.WalletRepositoryFacade = (*PgxWalletRepository)(nil)

// scanWallet scans a wallet row in walletColumns order.
func scanWallet(row pgx.Row) (*domain.Wallet, error) {
	var m models.Wallet
	err := row.Scan(
		&m.WalletID,
		&m.WalletNumber,
		&m.OwnerID,
		&m.OwnerType,
		&m.OwnerName,
		&m.Balance,
		&m.HeldAmount,
		&m.CurrencyCode,
		&m.Status,
		&m.IsVerified,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.Version,
	)
	if err != nil {
		return nil, err
	}
	wallet := mapping.ToDomainWallet(m)
	return &wallet, nil
}

// SaveWallet inserts a new wallet row.
func (r *PgxWalletRepository) SaveWallet(ctx context.Context, wallet domain.Wallet) error {
	m := mapping.ToModelWallet(wallet)

	query := `
		INSERT INTO wallets (` + walletColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.WalletID,
		m.WalletNumber,
		m.OwnerID,
		m.OwnerType,
		m.OwnerName,
		m.Balance,
		m.HeldAmount,
		m.CurrencyCode,
		m.Status,
		m.IsVerified,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.Version,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: wallet conflicts on %s", apperrors.ErrDuplicate, pgErr.ConstraintName)
		}
		return fmt.Errorf("failed to save wallet %s: %w", m.WalletID, err)
	}
	return nil
}

// FindWalletByID retrieves a wallet by its ID.
func (r *PgxWalletRepository) FindWalletByID(ctx context.Context, walletID string) (*domain.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE wallet_id = $1;`

	wallet, err := scanWallet(r.Pool.QueryRow(ctx, query, walletID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find wallet by ID %s: %w", walletID, err)
	}
	return wallet, nil
}

// FindWalletByNumber retrieves a wallet by its public wallet number.
func (r *PgxWalletRepository) FindWalletByNumber(ctx context.Context, walletNumber string) (*domain.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE wallet_number = $1;`

	wallet, err := scanWallet(r.Pool.QueryRow(ctx, query, walletNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find wallet by number %s: %w", walletNumber, err)
	}
	return wallet, nil
}

// FindWalletByOwner retrieves the single wallet mapped to an owner reference.
func (r *PgxWalletRepository) FindWalletByOwner(ctx context.Context, owner domain.WalletOwnerRef) (*domain.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE owner_id = $1 AND owner_type = $2;`

	wallet, err := scanWallet(r.Pool.QueryRow(ctx, query, owner.OwnerID, string(owner.OwnerType)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find wallet for owner %s: %w", owner.OwnerID, err)
	}
	return wallet, nil
}

// UpdateWalletStatus transitions a wallet's lifecycle status.
func (r *PgxWalletRepository) UpdateWalletStatus(ctx context.Context, walletID string, status domain.WalletStatus, userID string, now time.Time) error {
	query := `
		UPDATE wallets
		SET status = $2, last_updated_at = $3, last_updated_by = $4, version = version + 1
		WHERE wallet_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, walletID, string(status), now, userID)
	if err != nil {
		return fmt.Errorf("failed to update status for wallet %s: %w", walletID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindWalletsByIDsForUpdate selects wallets and locks them within a transaction.
// Rows are locked in wallet_id order so concurrent settlements cannot deadlock.
func (r *PgxWalletRepository) FindWalletsByIDsForUpdate(ctx context.Context, tx pgx.Tx, walletIDs []string) (map[string]domain.Wallet, error) {
	if len(walletIDs) == 0 {
		return map[string]domain.Wallet{}, nil
	}

	ids := make([]string, len(walletIDs))
	copy(ids, walletIDs)
	sort.Strings(ids)

	query := `
		SELECT ` + walletColumns + `
		FROM wallets
		WHERE wallet_id = ANY($1)
		ORDER BY wallet_id
		FOR UPDATE;
	`
	rows, err := tx.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to lock wallets for update: %w", err)
	}
	defer rows.Close()

	walletsMap := make(map[string]domain.Wallet, len(ids))
	for rows.Next() {
		wallet, err := scanWallet(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan wallet row during lock: %w", err)
		}
		walletsMap[wallet.WalletID] = *wallet
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating wallet rows during lock: %w", err)
	}

	return walletsMap, nil
}

// UpdateWalletBalancesInTx applies signed balance deltas within a transaction.
// The guard keeps the available balance non-negative; a rejected row means the
// pre-check raced with another settlement.
func (r *PgxWalletRepository) UpdateWalletBalancesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error {
	query := `
		UPDATE wallets
		SET balance = balance + $2, last_updated_at = $3, last_updated_by = $4, version = version + 1
		WHERE wallet_id = $1 AND balance + $2 >= held_amount;
	`

	// Deterministic order; the rows are already locked at this point.
	ids := make([]string, 0, len(balanceChanges))
	for id := range balanceChanges {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, walletID := range ids {
		cmdTag, err := tx.Exec(ctx, query, walletID, balanceChanges[walletID], now, userID)
		if err != nil {
			return fmt.Errorf("failed to update balance for wallet %s: %w", walletID, err)
		}
		if cmdTag.RowsAffected() == 0 {
			return fmt.Errorf("%w: balance update rejected for wallet %s", apperrors.ErrConflict, walletID)
		}
	}
	return nil
}

// UpdateWalletHoldInTx adjusts the held amount within a transaction. A positive
// delta places a hold and must fit in the available balance; a negative delta
// releases one.
func (r *PgxWalletRepository) UpdateWalletHoldInTx(ctx context.Context, tx pgx.Tx, walletID string, delta decimal.Decimal, userID string, now time.Time) error {
	query := `
		UPDATE wallets
		SET held_amount = held_amount + $2, last_updated_at = $3, last_updated_by = $4, version = version + 1
		WHERE wallet_id = $1 AND held_amount + $2 >= 0 AND balance - (held_amount + $2) >= 0;
	`
	cmdTag, err := tx.Exec(ctx, query, walletID, delta, now, userID)
	if err != nil {
		return fmt.Errorf("failed to update hold for wallet %s: %w", walletID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: hold update rejected for wallet %s", apperrors.ErrConflict, walletID)
	}
	return nil
}
