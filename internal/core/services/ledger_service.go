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
	"github.com/shopspring/decimal"
)

// Business rejection sentinels. Their messages are surfaced verbatim to
// clients with a 422 status.
var (
	ErrAmountNotPositive   = errors.New("amount must be greater than zero")
	ErrInsufficientFunds   = errors.New("insufficient available balance")
	ErrSourceInactive      = errors.New("source wallet is not active")
	ErrDestinationInactive = errors.New("destination wallet is not active")
	ErrSameWallet          = errors.New("cannot transfer to the same wallet")
	ErrCurrencyMismatch    = errors.New("wallets use different currencies")
	ErrUnverifiedLimit     = errors.New("amount exceeds the limit for unverified wallets")
	ErrWalletInactive      = errors.New("wallet is not active")
	ErrWalletCannotReceive = errors.New("wallet cannot receive funds")
	ErrNotPending          = errors.New("transaction is not pending")
	ErrNotRefundable       = errors.New("only completed transactions can be refunded")
)

// rejection wraps a business sentinel into the 422 shape handlers expect.
func rejection(err error) *apperrors.AppError {
	return apperrors.NewAppError(422, err.Error(), err)
}

type ledgerService struct {
	cfg        *config.Config
	walletRepo portsrepo.WalletRepositoryFacade
	ledgerRepo portsrepo.LedgerRepositoryFacade
}

// NewLedgerService creates a new ledger service instance.
func NewLedgerService(cfg *config.Config, walletRepo portsrepo.WalletRepositoryFacade, ledgerRepo portsrepo.LedgerRepositoryFacade) portssvc.LedgerSvcFacade {
	return &ledgerService{
		cfg:        cfg,
		walletRepo: walletRepo,
		ledgerRepo: ledgerRepo,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// newEntry builds a ledger entry in pending state with audit stamps applied.
func newEntry(txnType domain.TransactionType, amount decimal.Decimal, currency string, userID string, now time.Time) (domain.Transaction, error) {
	number, err := numbering.NewTransactionNumber(now)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("failed to generate transaction number: %w", err)
	}
	return domain.Transaction{
		TransactionID:     uuid.NewString(),
		TransactionNumber: number,
		Amount:            amount,
		FeeAmount:         decimal.Zero,
		CurrencyCode:      currency,
		TransactionType:   txnType,
		Status:            domain.StatusPending,
		InitiatedBy:       userID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
			Version:       1,
		},
	}, nil
}

// checkUnverifiedCap enforces the per-transaction cap on unverified wallets.
// Unverified wallets are never blocked outright, only capped.
func (s *ledgerService) checkUnverifiedCap(wallet *domain.Wallet, amount decimal.Decimal) error {
	if !wallet.IsVerified && amount.GreaterThan(s.cfg.UnverifiedTxnLimit) {
		return rejection(ErrUnverifiedLimit)
	}
	return nil
}

// TransferByNumber moves funds between two wallets addressed by their public
// wallet numbers. Both legs settle atomically; a flat fee is debited from the
// source on top of the amount.
func (s *ledgerService) TransferByNumber(ctx context.Context, req dto.TransferRequest, userID string) (*dto.TransferResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Amount.IsPositive() {
		return nil, rejection(ErrAmountNotPositive)
	}
	if req.FromWalletNumber == req.ToWalletNumber {
		return nil, rejection(ErrSameWallet)
	}

	source, err := s.walletRepo.FindWalletByNumber(ctx, req.FromWalletNumber)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("source wallet not found")
		}
		return nil, err
	}
	destination, err := s.walletRepo.FindWalletByNumber(ctx, req.ToWalletNumber)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("destination wallet not found")
		}
		return nil, err
	}

	if !source.CanTransact() {
		return nil, rejection(ErrSourceInactive)
	}
	if !destination.CanReceive() {
		return nil, rejection(ErrDestinationInactive)
	}
	if source.CurrencyCode != destination.CurrencyCode {
		return nil, rejection(ErrCurrencyMismatch)
	}
	if err := s.checkUnverifiedCap(source, req.Amount); err != nil {
		return nil, err
	}

	totalDebit := req.Amount.Add(s.cfg.TransferFee)
	if totalDebit.GreaterThan(source.AvailableBalance()) {
		return nil, rejection(ErrInsufficientFunds)
	}

	now := time.Now().UTC()
	referenceID := uuid.NewString()
	referenceType := req.ReferenceType
	if referenceType == "" {
		referenceType = "transfer"
	}

	outLeg, err := newEntry(domain.TypeTransferOut, req.Amount, source.CurrencyCode, userID, now)
	if err != nil {
		return nil, err
	}
	outLeg.FromWalletID = &source.WalletID
	outLeg.FeeAmount = s.cfg.TransferFee
	outLeg.Description = req.Description
	outLeg.ReferenceID = referenceID
	outLeg.ReferenceType = referenceType

	inLeg, err := newEntry(domain.TypeTransferIn, req.Amount, source.CurrencyCode, userID, now)
	if err != nil {
		return nil, err
	}
	inLeg.ToWalletID = &destination.WalletID
	inLeg.Description = req.Description
	inLeg.ReferenceID = referenceID
	inLeg.ReferenceType = referenceType

	outLeg.Settle(domain.StatusCompleted, now)
	inLeg.Settle(domain.StatusCompleted, now)

	balanceChanges := map[string]decimal.Decimal{
		source.WalletID:      totalDebit.Neg(),
		destination.WalletID: req.Amount,
	}

	if err := s.ledgerRepo.SaveSettledTransactions(ctx, []domain.Transaction{outLeg, inLeg}, balanceChanges); err != nil {
		logger.Error("Failed to settle transfer", "error", err, "from", source.WalletID, "to", destination.WalletID)
		return nil, err
	}

	logger.Info("Transfer settled",
		"transaction_number", outLeg.TransactionNumber,
		"from", source.WalletNumber,
		"to", destination.WalletNumber,
		"amount", req.Amount.String())

	return &dto.TransferResponse{
		OutLeg: dto.ToTransactionResponse(&outLeg),
		InLeg:  dto.ToTransactionResponse(&inLeg),
	}, nil
}

// Payment applies a one-sided debit for a government-service charge. Value
// leaves the ledger to an external biller, so no destination wallet exists.
// Retrying with the same referenceId returns the original entry untouched.
func (s *ledgerService) Payment(ctx context.Context, req dto.PaymentRequest, userID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Amount.IsPositive() {
		return nil, rejection(ErrAmountNotPositive)
	}

	wallet, err := s.walletRepo.FindWalletByID(ctx, req.WalletID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("wallet not found: %s", req.WalletID))
		}
		return nil, err
	}

	existing, err := s.ledgerRepo.FindPaymentByReference(ctx, wallet.WalletID, req.ReferenceID)
	if err == nil {
		logger.Info("Duplicate payment reference, returning original entry",
			"wallet_id", wallet.WalletID, "reference_id", req.ReferenceID)
		return existing, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	if !wallet.CanTransact() {
		return nil, rejection(ErrWalletInactive)
	}
	if err := s.checkUnverifiedCap(wallet, req.Amount); err != nil {
		return nil, err
	}
	if req.Amount.GreaterThan(wallet.AvailableBalance()) {
		return nil, rejection(ErrInsufficientFunds)
	}

	now := time.Now().UTC()
	entry, err := newEntry(domain.TypePayment, req.Amount, wallet.CurrencyCode, userID, now)
	if err != nil {
		return nil, err
	}
	entry.FromWalletID = &wallet.WalletID
	entry.Description = req.Description
	if req.RecipientInfo != nil && *req.RecipientInfo != "" {
		entry.Description = fmt.Sprintf("%s (to %s)", req.Description, *req.RecipientInfo)
	}
	entry.ReferenceID = req.ReferenceID
	entry.ReferenceType = req.ReferenceType
	entry.Settle(domain.StatusCompleted, now)

	balanceChanges := map[string]decimal.Decimal{wallet.WalletID: req.Amount.Neg()}
	if err := s.ledgerRepo.SaveSettledTransactions(ctx, []domain.Transaction{entry}, balanceChanges); err != nil {
		logger.Error("Failed to settle payment", "error", err, "wallet_id", wallet.WalletID, "reference_id", req.ReferenceID)
		return nil, err
	}

	logger.Info("Payment settled",
		"transaction_number", entry.TransactionNumber,
		"wallet_id", wallet.WalletID,
		"amount", req.Amount.String(),
		"reference_id", req.ReferenceID)
	return &entry, nil
}

// Deposit credits a wallet. Government payout flows use the salary and bonus
// types; plain deposits are the default.
func (s *ledgerService) Deposit(ctx context.Context, req dto.DepositRequest, userID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Amount.IsPositive() {
		return nil, rejection(ErrAmountNotPositive)
	}

	txnType := req.Type
	if txnType == "" {
		txnType = domain.TypeDeposit
	}
	if !txnType.IsCredit() {
		return nil, apperrors.NewAppError(400, fmt.Sprintf("invalid deposit type: %s", txnType), apperrors.ErrValidation)
	}

	wallet, err := s.walletRepo.FindWalletByID(ctx, req.WalletID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("wallet not found: %s", req.WalletID))
		}
		return nil, err
	}
	if !wallet.CanReceive() {
		return nil, rejection(ErrWalletCannotReceive)
	}

	now := time.Now().UTC()
	entry, err := newEntry(txnType, req.Amount, wallet.CurrencyCode, userID, now)
	if err != nil {
		return nil, err
	}
	entry.ToWalletID = &wallet.WalletID
	entry.Description = req.Description
	entry.ReferenceID = req.ReferenceID
	entry.ReferenceType = req.ReferenceType
	entry.Settle(domain.StatusCompleted, now)

	balanceChanges := map[string]decimal.Decimal{wallet.WalletID: req.Amount}
	if err := s.ledgerRepo.SaveSettledTransactions(ctx, []domain.Transaction{entry}, balanceChanges); err != nil {
		logger.Error("Failed to settle deposit", "error", err, "wallet_id", wallet.WalletID)
		return nil, err
	}

	logger.Info("Deposit settled",
		"transaction_number", entry.TransactionNumber,
		"wallet_id", wallet.WalletID,
		"type", txnType,
		"amount", req.Amount.String())
	return &entry, nil
}

// Withdraw records a dual-control debit. The entry stays pending with a hold
// on the available balance until a second operator settles it.
func (s *ledgerService) Withdraw(ctx context.Context, req dto.WithdrawRequest, userID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Amount.IsPositive() {
		return nil, rejection(ErrAmountNotPositive)
	}

	wallet, err := s.walletRepo.FindWalletByID(ctx, req.WalletID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("wallet not found: %s", req.WalletID))
		}
		return nil, err
	}
	if !wallet.CanTransact() {
		return nil, rejection(ErrWalletInactive)
	}
	if err := s.checkUnverifiedCap(wallet, req.Amount); err != nil {
		return nil, err
	}
	if req.Amount.GreaterThan(wallet.AvailableBalance()) {
		return nil, rejection(ErrInsufficientFunds)
	}

	now := time.Now().UTC()
	entry, err := newEntry(domain.TypeWithdrawal, req.Amount, wallet.CurrencyCode, userID, now)
	if err != nil {
		return nil, err
	}
	entry.FromWalletID = &wallet.WalletID
	entry.Description = req.Description

	if err := s.ledgerRepo.SavePendingTransaction(ctx, entry, wallet.WalletID, req.Amount); err != nil {
		logger.Error("Failed to place withdrawal hold", "error", err, "wallet_id", wallet.WalletID)
		return nil, err
	}

	logger.Info("Withdrawal pending approval",
		"transaction_number", entry.TransactionNumber,
		"wallet_id", wallet.WalletID,
		"amount", req.Amount.String())
	return &entry, nil
}

// SettleWithdrawal approves or rejects a pending withdrawal. Approval applies
// the debit; rejection only releases the hold. The initiator cannot settle
// their own withdrawal.
func (s *ledgerService) SettleWithdrawal(ctx context.Context, transactionID string, approve bool, userID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.ledgerRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("transaction not found: %s", transactionID))
		}
		return nil, err
	}
	if entry.TransactionType != domain.TypeWithdrawal {
		return nil, apperrors.NewAppError(422, "transaction is not a withdrawal", apperrors.ErrConflict)
	}
	if entry.Status != domain.StatusPending {
		return nil, rejection(ErrNotPending)
	}
	if entry.InitiatedBy == userID {
		return nil, apperrors.NewAppError(403, "withdrawals require a different approver", apperrors.ErrForbidden)
	}

	final := domain.StatusCompleted
	if !approve {
		final = domain.StatusCancelled
	}

	now := time.Now().UTC()
	if err := s.ledgerRepo.SettleHeldTransaction(ctx, transactionID, final, userID, now); err != nil {
		logger.Error("Failed to settle withdrawal", "error", err, "transaction_id", transactionID)
		return nil, err
	}

	logger.Info("Withdrawal settled",
		"transaction_number", entry.TransactionNumber,
		"status", final,
		"approved_by", userID)

	entry.Status = final
	entry.ApprovedBy = &userID
	entry.ProcessedAt = &now
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = userID
	return entry, nil
}

// Refund reverses a completed debit entry exactly once, crediting the amount
// back to the debited wallet. Fees are not refunded. Transfer legs are
// excluded; reversing a transfer means transferring back.
func (s *ledgerService) Refund(ctx context.Context, transactionID string, req dto.RefundRequest, userID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	original, err := s.ledgerRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("transaction not found: %s", transactionID))
		}
		return nil, err
	}

	if original.Status != domain.StatusCompleted {
		return nil, rejection(ErrNotRefundable)
	}
	if original.TransactionType == domain.TypeTransferOut || original.TransactionType == domain.TypeTransferIn {
		return nil, apperrors.NewAppError(422, "transfer entries are reversed with an opposite transfer", apperrors.ErrConflict)
	}
	if !original.TransactionType.IsDebit() || original.FromWalletID == nil {
		return nil, rejection(ErrNotRefundable)
	}

	wallet, err := s.walletRepo.FindWalletByID(ctx, *original.FromWalletID)
	if err != nil {
		return nil, err
	}
	if wallet.Status == domain.WalletClosed {
		return nil, apperrors.NewAppError(422, "wallet is closed", apperrors.ErrConflict)
	}

	now := time.Now().UTC()
	refund, err := newEntry(domain.TypeRefund, original.Amount, original.CurrencyCode, userID, now)
	if err != nil {
		return nil, err
	}
	refund.ToWalletID = original.FromWalletID
	refund.Description = req.Reason
	refund.ReferenceID = original.ReferenceID
	refund.ReferenceType = original.ReferenceType
	refund.ReversalOf = &original.TransactionID
	refund.Settle(domain.StatusCompleted, now)

	balanceChanges := map[string]decimal.Decimal{*original.FromWalletID: original.Amount}
	if err := s.ledgerRepo.SaveRefundTransaction(ctx, refund, original.TransactionID, balanceChanges); err != nil {
		logger.Error("Failed to save refund", "error", err, "transaction_id", transactionID)
		return nil, err
	}

	logger.Info("Refund settled",
		"transaction_number", refund.TransactionNumber,
		"reversal_of", original.TransactionNumber,
		"amount", original.Amount.String())
	return &refund, nil
}
