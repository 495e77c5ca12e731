package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/govstack/wallet_service/internal/apperrors"
	"github.com/govstack/wallet_service/internal/core/domain"
	portsrepo "github.com/govstack/wallet_service/internal/core/ports/repositories"
	portssvc "github.com/govstack/wallet_service/internal/core/ports/services"
	"github.com/govstack/wallet_service/internal/dto"
	"github.com/govstack/wallet_service/internal/middleware"
	"github.com/govstack/wallet_service/internal/platform/config"
	"github.com/govstack/wallet_service/internal/utils/numbering"
	"golang.org/x/sync/singleflight"
)

// walletNumberAttempts bounds retries when a generated wallet number collides
// with an existing row.
const walletNumberAttempts = 3

type walletService struct {
	cfg          *config.Config
	walletRepo   portsrepo.WalletRepositoryFacade
	ledgerRepo   portsrepo.LedgerRepositoryFacade
	currencyRepo portsrepo.CurrencyRepositoryFacade

	// resolveGroup collapses concurrent resolves for the same owner so the
	// lazy-create path runs at most once per owner per instance.
	resolveGroup singleflight.Group
}

// NewWalletService creates a new wallet service instance.
func NewWalletService(cfg *config.Config, walletRepo portsrepo.WalletRepositoryFacade, ledgerRepo portsrepo.LedgerRepositoryFacade, currencyRepo portsrepo.CurrencyRepositoryFacade) portssvc.WalletSvcFacade {
	return &walletService{
		cfg:          cfg,
		walletRepo:   walletRepo,
		ledgerRepo:   ledgerRepo,
		currencyRepo: currencyRepo,
	}
}

// Ensure walletService implements the facade at compile time.
var _ portssvc.WalletSvcFacade = (*walletService)(nil)

// ResolveWallet fetches the owner's wallet, creating it with the default
// currency on first access. The owner-to-wallet mapping is one-to-one, so a
// second resolve for the same owner always returns the same wallet.
func (s *walletService) ResolveWallet(ctx context.Context, owner domain.WalletOwnerRef, ownerName string, userID string) (*domain.Wallet, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !owner.OwnerType.IsValid() {
		return nil, apperrors.NewAppError(400, fmt.Sprintf("invalid owner type: %s", owner.OwnerType), apperrors.ErrValidation)
	}
	if owner.OwnerID == "" {
		return nil, apperrors.NewAppError(400, "owner id is required", apperrors.ErrValidation)
	}

	result, err, _ := s.resolveGroup.Do(owner.Key(), func() (interface{}, error) {
		wallet, err := s.walletRepo.FindWalletByOwner(ctx, owner)
		if err == nil {
			return wallet, nil
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to look up wallet by owner", "error", err, "owner_id", owner.OwnerID)
			return nil, err
		}

		logger.Info("No wallet for owner, creating one", "owner_id", owner.OwnerID, "owner_type", owner.OwnerType)
		return s.createWalletForOwner(ctx, owner, ownerName, s.cfg.DefaultCurrency, userID)
	})
	if err != nil {
		return nil, err
	}
	return result.(*domain.Wallet), nil
}

// CreateWallet creates a wallet explicitly for an owner that does not have one
// yet. Unlike ResolveWallet it fails when the owner already holds a wallet.
func (s *walletService) CreateWallet(ctx context.Context, req dto.CreateWalletRequest, userID string) (*domain.Wallet, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	owner := domain.WalletOwnerRef{OwnerID: req.OwnerID, OwnerType: req.OwnerType}
	if !owner.OwnerType.IsValid() {
		return nil, apperrors.NewAppError(400, fmt.Sprintf("invalid owner type: %s", req.OwnerType), apperrors.ErrValidation)
	}

	currencyCode := req.Currency
	if currencyCode == "" {
		currencyCode = s.cfg.DefaultCurrency
	}
	if _, err := s.currencyRepo.FindCurrencyByCode(ctx, currencyCode); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewAppError(400, fmt.Sprintf("unsupported currency: %s", currencyCode), apperrors.ErrValidation)
		}
		logger.Error("Failed to look up currency", "error", err, "currency", currencyCode)
		return nil, err
	}

	if _, err := s.walletRepo.FindWalletByOwner(ctx, owner); err == nil {
		return nil, apperrors.NewAppError(409, "owner already has a wallet", apperrors.ErrDuplicate)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	wallet, err := s.createWalletForOwner(ctx, owner, req.OwnerName, currencyCode, userID)
	if err != nil {
		return nil, err
	}

	logger.Info("Wallet created", "wallet_id", wallet.WalletID, "owner_id", owner.OwnerID)
	return wallet, nil
}

// createWalletForOwner persists a fresh wallet, retrying on wallet number
// collisions. A duplicate-owner conflict means another request created the
// wallet first; the existing row wins.
func (s *walletService) createWalletForOwner(ctx context.Context, owner domain.WalletOwnerRef, ownerName string, currencyCode string, userID string) (*domain.Wallet, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now().UTC()

	for attempt := 0; attempt < walletNumberAttempts; attempt++ {
		walletNumber, err := numbering.NewWalletNumber()
		if err != nil {
			return nil, fmt.Errorf("failed to generate wallet number: %w", err)
		}

		wallet := domain.Wallet{
			WalletID:     uuid.NewString(),
			WalletNumber: walletNumber,
			OwnerID:      owner.OwnerID,
			OwnerType:    owner.OwnerType,
			OwnerName:    ownerName,
			CurrencyCode: currencyCode,
			Status:       domain.WalletActive,
			IsVerified:   false,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
				Version:       1,
			},
		}

		err = s.walletRepo.SaveWallet(ctx, wallet)
		if err == nil {
			return &wallet, nil
		}
		if !errors.Is(err, apperrors.ErrDuplicate) {
			logger.Error("Failed to save wallet", "error", err, "owner_id", owner.OwnerID)
			return nil, err
		}

		// Duplicate can mean either a lost owner race or a wallet number
		// collision. An existing owner wallet settles it.
		if existing, findErr := s.walletRepo.FindWalletByOwner(ctx, owner); findErr == nil {
			return existing, nil
		}
		logger.Warn("Wallet number collision, retrying", "wallet_number", walletNumber)
	}

	return nil, apperrors.NewAppError(500, "failed to allocate a unique wallet number", apperrors.ErrInternal)
}

// GetWalletByID retrieves a wallet by its opaque identifier.
func (s *walletService) GetWalletByID(ctx context.Context, walletID string) (*domain.Wallet, error) {
	wallet, err := s.walletRepo.FindWalletByID(ctx, walletID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("wallet not found: %s", walletID))
		}
		return nil, err
	}
	return wallet, nil
}

// GetWalletByNumber retrieves a wallet by its public wallet number.
func (s *walletService) GetWalletByNumber(ctx context.Context, walletNumber string) (*domain.Wallet, error) {
	if !numbering.WalletNumberPattern.MatchString(walletNumber) {
		return nil, apperrors.NewAppError(400, fmt.Sprintf("invalid wallet number format: %s", walletNumber), apperrors.ErrValidation)
	}
	wallet, err := s.walletRepo.FindWalletByNumber(ctx, walletNumber)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("wallet not found: %s", walletNumber))
		}
		return nil, err
	}
	return wallet, nil
}

// GetWalletByOwner retrieves the single wallet mapped to an owner reference
// without creating one.
func (s *walletService) GetWalletByOwner(ctx context.Context, owner domain.WalletOwnerRef) (*domain.Wallet, error) {
	if !owner.OwnerType.IsValid() {
		return nil, apperrors.NewAppError(400, fmt.Sprintf("invalid owner type: %s", owner.OwnerType), apperrors.ErrValidation)
	}
	wallet, err := s.walletRepo.FindWalletByOwner(ctx, owner)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("wallet not found for owner")
		}
		return nil, err
	}
	return wallet, nil
}

// UpdateWalletStatus transitions a wallet's lifecycle status. Closed wallets
// stay on record; closing requires both balance and holds to be zero.
func (s *walletService) UpdateWalletStatus(ctx context.Context, walletID string, req dto.UpdateWalletStatusRequest, userID string) (*domain.Wallet, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	wallet, err := s.GetWalletByID(ctx, walletID)
	if err != nil {
		return nil, err
	}

	if wallet.Status == domain.WalletClosed {
		return nil, apperrors.NewAppError(422, "wallet is closed and cannot change status", apperrors.ErrConflict)
	}
	if wallet.Status == req.Status {
		return wallet, nil
	}
	if req.Status == domain.WalletClosed {
		if !wallet.Balance.IsZero() {
			return nil, apperrors.NewAppError(422, "wallet balance must be zero before closing", apperrors.ErrConflict)
		}
		if !wallet.HeldAmount.IsZero() {
			return nil, apperrors.NewAppError(422, "wallet has pending holds and cannot be closed", apperrors.ErrConflict)
		}
	}

	now := time.Now().UTC()
	if err := s.walletRepo.UpdateWalletStatus(ctx, walletID, req.Status, userID, now); err != nil {
		logger.Error("Failed to update wallet status", "error", err, "wallet_id", walletID)
		return nil, err
	}

	logger.Info("Wallet status updated", "wallet_id", walletID, "from", wallet.Status, "to", req.Status)
	wallet.Status = req.Status
	wallet.LastUpdatedAt = now
	wallet.LastUpdatedBy = userID
	return wallet, nil
}

// ListTransactions returns a page of the wallet's ledger entries, newest first.
func (s *walletService) ListTransactions(ctx context.Context, walletID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	if _, err := s.GetWalletByID(ctx, walletID); err != nil {
		return nil, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	txns, nextToken, err := s.ledgerRepo.ListTransactionsByWallet(ctx, walletID, limit, params.NextToken)
	if err != nil {
		return nil, err
	}

	return &dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(txns),
		NextToken:    nextToken,
	}, nil
}
