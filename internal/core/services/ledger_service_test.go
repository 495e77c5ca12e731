package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/govstack/wallet_service/internal/apperrors"
	"github.com/govstack/wallet_service/internal/core/domain"
	portssvc "github.com/govstack/wallet_service/internal/core/ports/services"
	"github.com/govstack/wallet_service/internal/core/services"
	"github.com/govstack/wallet_service/internal/dto"
	"github.com/govstack/wallet_service/internal/platform/config"
	"github.com/govstack/wallet_service/internal/utils/numbering"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite Setup ---
type LedgerServiceTestSuite struct {
	suite.Suite
	mockWalletRepo *MockWalletRepository
	mockLedgerRepo *MockLedgerRepository
	service        portssvc.LedgerSvcFacade
	source         domain.Wallet
	destination    domain.Wallet
	userID         string
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.mockWalletRepo = new(MockWalletRepository)
	suite.mockLedgerRepo = new(MockLedgerRepository)

	cfg := &config.Config{
		DefaultCurrency:    "SLE",
		TransferFee:        decimal.Zero,
		UnverifiedTxnLimit: decimal.NewFromInt(1000),
	}
	suite.service = services.NewLedgerService(cfg, suite.mockWalletRepo, suite.mockLedgerRepo)

	suite.userID = uuid.NewString()
	suite.source = suite.newWallet(decimal.NewFromInt(100))
	suite.destination = suite.newWallet(decimal.NewFromInt(10))
}

func (suite *LedgerServiceTestSuite) newWallet(balance decimal.Decimal) domain.Wallet {
	number, err := numbering.NewWalletNumber()
	suite.Require().NoError(err)
	return domain.Wallet{
		WalletID:     uuid.NewString(),
		WalletNumber: number,
		OwnerID:      uuid.NewString(),
		OwnerType:    domain.OwnerCitizen,
		Balance:      balance,
		HeldAmount:   decimal.Zero,
		CurrencyCode: "SLE",
		Status:       domain.WalletActive,
		IsVerified:   true,
	}
}

func (suite *LedgerServiceTestSuite) transferRequest(amount decimal.Decimal) dto.TransferRequest {
	return dto.TransferRequest{
		FromWalletNumber: suite.source.WalletNumber,
		ToWalletNumber:   suite.destination.WalletNumber,
		Amount:           amount,
		Description:      "school fees",
	}
}

// --- Transfer ---

func (suite *LedgerServiceTestSuite) TestTransfer_Success() {
	ctx := context.Background()
	req := suite.transferRequest(decimal.RequireFromString("40.00"))

	suite.mockWalletRepo.On("FindWalletByNumber", ctx, suite.source.WalletNumber).Return(&suite.source, nil).Once()
	suite.mockWalletRepo.On("FindWalletByNumber", ctx, suite.destination.WalletNumber).Return(&suite.destination, nil).Once()

	var savedTxns []domain.Transaction
	var savedChanges map[string]decimal.Decimal
	suite.mockLedgerRepo.On("SaveSettledTransactions", ctx, mock.AnythingOfType("[]domain.Transaction"), mock.AnythingOfType("map[string]decimal.Decimal")).
		Run(func(args mock.Arguments) {
			savedTxns = args.Get(1).([]domain.Transaction)
			savedChanges = args.Get(2).(map[string]decimal.Decimal)
		}).
		Return(nil).Once()

	result, err := suite.service.TransferByNumber(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(result)

	suite.Require().Len(savedTxns, 2)
	outLeg, inLeg := savedTxns[0], savedTxns[1]
	suite.Equal(domain.TypeTransferOut, outLeg.TransactionType)
	suite.Equal(domain.TypeTransferIn, inLeg.TransactionType)
	suite.Equal(domain.StatusCompleted, outLeg.Status)
	suite.Equal(domain.StatusCompleted, inLeg.Status)
	suite.Require().NotNil(outLeg.FromWalletID)
	suite.Equal(suite.source.WalletID, *outLeg.FromWalletID)
	suite.Require().NotNil(inLeg.ToWalletID)
	suite.Equal(suite.destination.WalletID, *inLeg.ToWalletID)
	suite.Equal(outLeg.ReferenceID, inLeg.ReferenceID)
	suite.NotNil(outLeg.ProcessedAt)
	suite.Regexp(numbering.TransactionNumberPattern, outLeg.TransactionNumber)

	// Exactly -40 out and +40 in, no partial amounts
	suite.True(savedChanges[suite.source.WalletID].Equal(decimal.RequireFromString("-40.00")))
	suite.True(savedChanges[suite.destination.WalletID].Equal(decimal.RequireFromString("40.00")))

	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestTransfer_InsufficientFunds() {
	ctx := context.Background()
	// Balance is 100.00; 150.00 must be rejected with no debit at all
	req := suite.transferRequest(decimal.RequireFromString("150.00"))

	suite.mockWalletRepo.On("FindWalletByNumber", ctx, suite.source.WalletNumber).Return(&suite.source, nil).Once()
	suite.mockWalletRepo.On("FindWalletByNumber", ctx, suite.destination.WalletNumber).Return(&suite.destination, nil).Once()

	_, err := suite.service.TransferByNumber(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrInsufficientFunds)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "SaveSettledTransactions", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestTransfer_FeeCountsTowardBound() {
	ctx := context.Background()
	cfg := &config.Config{
		DefaultCurrency:    "SLE",
		TransferFee:        decimal.RequireFromString("5.00"),
		UnverifiedTxnLimit: decimal.NewFromInt(1000),
	}
	svc := services.NewLedgerService(cfg, suite.mockWalletRepo, suite.mockLedgerRepo)

	// 98 + 5 fee exceeds the 100 available balance
	req := suite.transferRequest(decimal.RequireFromString("98.00"))

	suite.mockWalletRepo.On("FindWalletByNumber", ctx, suite.source.WalletNumber).Return(&suite.source, nil).Once()
	suite.mockWalletRepo.On("FindWalletByNumber", ctx, suite.destination.WalletNumber).Return(&suite.destination, nil).Once()

	_, err := svc.TransferByNumber(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrInsufficientFunds)
}

func (suite *LedgerServiceTestSuite) TestTransfer_FeeDebitedFromSource() {
	ctx := context.Background()
	cfg := &config.Config{
		DefaultCurrency:    "SLE",
		TransferFee:        decimal.RequireFromString("5.00"),
		UnverifiedTxnLimit: decimal.NewFromInt(1000),
	}
	svc := services.NewLedgerService(cfg, suite.mockWalletRepo, suite.mockLedgerRepo)

	req := suite.transferRequest(decimal.RequireFromString("40.00"))

	suite.mockWalletRepo.On("FindWalletByNumber", ctx, suite.source.WalletNumber).Return(&suite.source, nil).Once()
	suite.mockWalletRepo.On("FindWalletByNumber", ctx, suite.destination.WalletNumber).Return(&suite.destination, nil).Once()

	var savedChanges map[string]decimal.Decimal
	suite.mockLedgerRepo.On("SaveSettledTransactions", ctx, mock.Anything, mock.AnythingOfType("map[string]decimal.Decimal")).
		Run(func(args mock.Arguments) {
			savedChanges = args.Get(2).(map[string]decimal.Decimal)
		}).
		Return(nil).Once()

	result, err := svc.TransferByNumber(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.True(result.OutLeg.FeeAmount.Equal(decimal.RequireFromString("5.00")))
	// Source pays amount + fee; destination receives only the amount
	suite.True(savedChanges[suite.source.WalletID].Equal(decimal.RequireFromString("-45.00")))
	suite.True(savedChanges[suite.destination.WalletID].Equal(decimal.RequireFromString("40.00")))
}

func (suite *LedgerServiceTestSuite) TestTransfer_DestinationNotFound() {
	ctx := context.Background()
	req := suite.transferRequest(decimal.NewFromInt(10))

	suite.mockWalletRepo.On("FindWalletByNumber", ctx, suite.source.WalletNumber).Return(&suite.source, nil).Once()
	suite.mockWalletRepo.On("FindWalletByNumber", ctx, suite.destination.WalletNumber).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.TransferByNumber(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.ErrorContains(err, "destination wallet not found")
}

func (suite *LedgerServiceTestSuite) TestTransfer_DestinationInactive() {
	ctx := context.Background()
	suite.destination.Status = domain.WalletSuspended
	req := suite.transferRequest(decimal.NewFromInt(10))

	suite.mockWalletRepo.On("FindWalletByNumber", ctx, suite.source.WalletNumber).Return(&suite.source, nil).Once()
	suite.mockWalletRepo.On("FindWalletByNumber", ctx, suite.destination.WalletNumber).Return(&suite.destination, nil).Once()

	_, err := suite.service.TransferByNumber(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrDestinationInactive)
}

func (suite *LedgerServiceTestSuite) TestTransfer_SameWallet() {
	ctx := context.Background()
	req := suite.transferRequest(decimal.NewFromInt(10))
	req.ToWalletNumber = req.FromWalletNumber

	_, err := suite.service.TransferByNumber(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrSameWallet)
	suite.mockWalletRepo.AssertNotCalled(suite.T(), "FindWalletByNumber", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestTransfer_CurrencyMismatch() {
	ctx := context.Background()
	suite.destination.CurrencyCode = "USD"
	req := suite.transferRequest(decimal.NewFromInt(10))

	suite.mockWalletRepo.On("FindWalletByNumber", ctx, suite.source.WalletNumber).Return(&suite.source, nil).Once()
	suite.mockWalletRepo.On("FindWalletByNumber", ctx, suite.destination.WalletNumber).Return(&suite.destination, nil).Once()

	_, err := suite.service.TransferByNumber(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrCurrencyMismatch)
}

func (suite *LedgerServiceTestSuite) TestTransfer_UnverifiedCap() {
	ctx := context.Background()
	suite.source.IsVerified = false
	suite.source.Balance = decimal.NewFromInt(5000)
	req := suite.transferRequest(decimal.NewFromInt(2000))

	suite.mockWalletRepo.On("FindWalletByNumber", ctx, suite.source.WalletNumber).Return(&suite.source, nil).Once()
	suite.mockWalletRepo.On("FindWalletByNumber", ctx, suite.destination.WalletNumber).Return(&suite.destination, nil).Once()

	_, err := suite.service.TransferByNumber(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrUnverifiedLimit)
}

// --- Payment ---

func (suite *LedgerServiceTestSuite) TestPayment_SuccessNoDestination() {
	ctx := context.Background()
	req := dto.PaymentRequest{
		WalletID:      suite.source.WalletID,
		Amount:        decimal.RequireFromString("25.00"),
		Description:   "passport renewal",
		ReferenceID:   "SVC-2026-000123",
		ReferenceType: "service_payment",
	}

	suite.mockWalletRepo.On("FindWalletByID", ctx, suite.source.WalletID).Return(&suite.source, nil).Once()
	suite.mockLedgerRepo.On("FindPaymentByReference", ctx, suite.source.WalletID, req.ReferenceID).Return(nil, apperrors.ErrNotFound).Once()

	var savedTxns []domain.Transaction
	var savedChanges map[string]decimal.Decimal
	suite.mockLedgerRepo.On("SaveSettledTransactions", ctx, mock.AnythingOfType("[]domain.Transaction"), mock.AnythingOfType("map[string]decimal.Decimal")).
		Run(func(args mock.Arguments) {
			savedTxns = args.Get(1).([]domain.Transaction)
			savedChanges = args.Get(2).(map[string]decimal.Decimal)
		}).
		Return(nil).Once()

	txn, err := suite.service.Payment(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(savedTxns, 1)
	suite.Equal(domain.TypePayment, txn.TransactionType)
	suite.Equal(domain.StatusCompleted, txn.Status)
	suite.Nil(txn.ToWalletID) // value leaves the ledger, no destination wallet
	suite.Require().NotNil(txn.FromWalletID)
	suite.Equal(suite.source.WalletID, *txn.FromWalletID)
	suite.True(savedChanges[suite.source.WalletID].Equal(decimal.RequireFromString("-25.00")))
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestPayment_DuplicateReferenceReturnsOriginal() {
	ctx := context.Background()
	original := &domain.Transaction{
		TransactionID:   uuid.NewString(),
		FromWalletID:    &suite.source.WalletID,
		Amount:          decimal.RequireFromString("25.00"),
		TransactionType: domain.TypePayment,
		Status:          domain.StatusCompleted,
		ReferenceID:     "SVC-2026-000123",
	}
	req := dto.PaymentRequest{
		WalletID:      suite.source.WalletID,
		Amount:        decimal.RequireFromString("25.00"),
		Description:   "passport renewal",
		ReferenceID:   "SVC-2026-000123",
		ReferenceType: "service_payment",
	}

	suite.mockWalletRepo.On("FindWalletByID", ctx, suite.source.WalletID).Return(&suite.source, nil).Once()
	suite.mockLedgerRepo.On("FindPaymentByReference", ctx, suite.source.WalletID, req.ReferenceID).Return(original, nil).Once()

	txn, err := suite.service.Payment(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(original.TransactionID, txn.TransactionID)
	// No second debit
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "SaveSettledTransactions", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestPayment_WalletInactive() {
	ctx := context.Background()
	suite.source.Status = domain.WalletSuspended
	req := dto.PaymentRequest{
		WalletID:      suite.source.WalletID,
		Amount:        decimal.NewFromInt(10),
		Description:   "fine",
		ReferenceID:   "FINE-1",
		ReferenceType: "fine",
	}

	suite.mockWalletRepo.On("FindWalletByID", ctx, suite.source.WalletID).Return(&suite.source, nil).Once()
	suite.mockLedgerRepo.On("FindPaymentByReference", ctx, suite.source.WalletID, req.ReferenceID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.Payment(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrWalletInactive)
}

// --- Deposit ---

func (suite *LedgerServiceTestSuite) TestDeposit_DefaultsToDepositType() {
	ctx := context.Background()
	req := dto.DepositRequest{
		WalletID:    suite.destination.WalletID,
		Amount:      decimal.NewFromInt(200),
		Description: "cash in",
	}

	suite.mockWalletRepo.On("FindWalletByID", ctx, suite.destination.WalletID).Return(&suite.destination, nil).Once()

	var savedChanges map[string]decimal.Decimal
	suite.mockLedgerRepo.On("SaveSettledTransactions", ctx, mock.Anything, mock.AnythingOfType("map[string]decimal.Decimal")).
		Run(func(args mock.Arguments) {
			savedChanges = args.Get(2).(map[string]decimal.Decimal)
		}).
		Return(nil).Once()

	txn, err := suite.service.Deposit(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.TypeDeposit, txn.TransactionType)
	suite.Equal(domain.StatusCompleted, txn.Status)
	suite.True(savedChanges[suite.destination.WalletID].Equal(decimal.NewFromInt(200)))
}

func (suite *LedgerServiceTestSuite) TestDeposit_SalaryToPendingVerificationWallet() {
	ctx := context.Background()
	suite.destination.Status = domain.WalletPendingVerification
	req := dto.DepositRequest{
		WalletID:    suite.destination.WalletID,
		Amount:      decimal.NewFromInt(500),
		Type:        domain.TypeSalary,
		Description: "july salary",
	}

	suite.mockWalletRepo.On("FindWalletByID", ctx, suite.destination.WalletID).Return(&suite.destination, nil).Once()
	suite.mockLedgerRepo.On("SaveSettledTransactions", ctx, mock.Anything, mock.Anything).Return(nil).Once()

	txn, err := suite.service.Deposit(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.TypeSalary, txn.TransactionType)
}

// --- Withdrawals ---

func (suite *LedgerServiceTestSuite) TestWithdraw_PlacesHold() {
	ctx := context.Background()
	req := dto.WithdrawRequest{
		WalletID:    suite.source.WalletID,
		Amount:      decimal.NewFromInt(30),
		Description: "cash out",
	}

	suite.mockWalletRepo.On("FindWalletByID", ctx, suite.source.WalletID).Return(&suite.source, nil).Once()
	suite.mockLedgerRepo.On("SavePendingTransaction", ctx, mock.AnythingOfType("domain.Transaction"), suite.source.WalletID, decimal.NewFromInt(30)).Return(nil).Once()

	txn, err := suite.service.Withdraw(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.TypeWithdrawal, txn.TransactionType)
	suite.Equal(domain.StatusPending, txn.Status)
	suite.Nil(txn.ProcessedAt)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestWithdraw_HeldAmountReducesAvailable() {
	ctx := context.Background()
	suite.source.HeldAmount = decimal.NewFromInt(80) // available 20
	req := dto.WithdrawRequest{
		WalletID:    suite.source.WalletID,
		Amount:      decimal.NewFromInt(30),
		Description: "cash out",
	}

	suite.mockWalletRepo.On("FindWalletByID", ctx, suite.source.WalletID).Return(&suite.source, nil).Once()

	_, err := suite.service.Withdraw(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrInsufficientFunds)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "SavePendingTransaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) pendingWithdrawal(initiatedBy string) *domain.Transaction {
	return &domain.Transaction{
		TransactionID:   uuid.NewString(),
		FromWalletID:    &suite.source.WalletID,
		Amount:          decimal.NewFromInt(30),
		CurrencyCode:    "SLE",
		TransactionType: domain.TypeWithdrawal,
		Status:          domain.StatusPending,
		InitiatedBy:     initiatedBy,
	}
}

func (suite *LedgerServiceTestSuite) TestSettleWithdrawal_Approve() {
	ctx := context.Background()
	entry := suite.pendingWithdrawal(uuid.NewString())

	suite.mockLedgerRepo.On("FindTransactionByID", ctx, entry.TransactionID).Return(entry, nil).Once()
	suite.mockLedgerRepo.On("SettleHeldTransaction", ctx, entry.TransactionID, domain.StatusCompleted, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	settled, err := suite.service.SettleWithdrawal(ctx, entry.TransactionID, true, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusCompleted, settled.Status)
	suite.Require().NotNil(settled.ApprovedBy)
	suite.Equal(suite.userID, *settled.ApprovedBy)
	suite.NotNil(settled.ProcessedAt)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestSettleWithdrawal_RejectCancels() {
	ctx := context.Background()
	entry := suite.pendingWithdrawal(uuid.NewString())

	suite.mockLedgerRepo.On("FindTransactionByID", ctx, entry.TransactionID).Return(entry, nil).Once()
	suite.mockLedgerRepo.On("SettleHeldTransaction", ctx, entry.TransactionID, domain.StatusCancelled, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	settled, err := suite.service.SettleWithdrawal(ctx, entry.TransactionID, false, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusCancelled, settled.Status)
}

func (suite *LedgerServiceTestSuite) TestSettleWithdrawal_InitiatorCannotApprove() {
	ctx := context.Background()
	entry := suite.pendingWithdrawal(suite.userID)

	suite.mockLedgerRepo.On("FindTransactionByID", ctx, entry.TransactionID).Return(entry, nil).Once()

	_, err := suite.service.SettleWithdrawal(ctx, entry.TransactionID, true, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "SettleHeldTransaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestSettleWithdrawal_NotPending() {
	ctx := context.Background()
	entry := suite.pendingWithdrawal(uuid.NewString())
	entry.Status = domain.StatusCompleted

	suite.mockLedgerRepo.On("FindTransactionByID", ctx, entry.TransactionID).Return(entry, nil).Once()

	_, err := suite.service.SettleWithdrawal(ctx, entry.TransactionID, true, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrNotPending)
}

// --- Refund ---

func (suite *LedgerServiceTestSuite) completedPayment() *domain.Transaction {
	return &domain.Transaction{
		TransactionID:   uuid.NewString(),
		FromWalletID:    &suite.source.WalletID,
		Amount:          decimal.RequireFromString("25.00"),
		CurrencyCode:    "SLE",
		TransactionType: domain.TypePayment,
		Status:          domain.StatusCompleted,
		ReferenceID:     "SVC-2026-000123",
		ReferenceType:   "service_payment",
	}
}

func (suite *LedgerServiceTestSuite) TestRefund_Success() {
	ctx := context.Background()
	original := suite.completedPayment()

	suite.mockLedgerRepo.On("FindTransactionByID", ctx, original.TransactionID).Return(original, nil).Once()
	suite.mockWalletRepo.On("FindWalletByID", ctx, suite.source.WalletID).Return(&suite.source, nil).Once()

	var savedRefund domain.Transaction
	var savedChanges map[string]decimal.Decimal
	suite.mockLedgerRepo.On("SaveRefundTransaction", ctx, mock.AnythingOfType("domain.Transaction"), original.TransactionID, mock.AnythingOfType("map[string]decimal.Decimal")).
		Run(func(args mock.Arguments) {
			savedRefund = args.Get(1).(domain.Transaction)
			savedChanges = args.Get(3).(map[string]decimal.Decimal)
		}).
		Return(nil).Once()

	refund, err := suite.service.Refund(ctx, original.TransactionID, dto.RefundRequest{Reason: "service unavailable"}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.TypeRefund, refund.TransactionType)
	suite.Equal(domain.StatusCompleted, refund.Status)
	suite.Require().NotNil(refund.ReversalOf)
	suite.Equal(original.TransactionID, *refund.ReversalOf)
	suite.Require().NotNil(savedRefund.ToWalletID)
	suite.Equal(suite.source.WalletID, *savedRefund.ToWalletID)
	suite.True(savedChanges[suite.source.WalletID].Equal(original.Amount))
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestRefund_OnlyCompletedEntries() {
	ctx := context.Background()
	original := suite.completedPayment()
	original.Status = domain.StatusPending

	suite.mockLedgerRepo.On("FindTransactionByID", ctx, original.TransactionID).Return(original, nil).Once()

	_, err := suite.service.Refund(ctx, original.TransactionID, dto.RefundRequest{Reason: "oops"}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrNotRefundable)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "SaveRefundTransaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestRefund_TransferLegRejected() {
	ctx := context.Background()
	original := suite.completedPayment()
	original.TransactionType = domain.TypeTransferOut

	suite.mockLedgerRepo.On("FindTransactionByID", ctx, original.TransactionID).Return(original, nil).Once()

	_, err := suite.service.Refund(ctx, original.TransactionID, dto.RefundRequest{Reason: "wrong recipient"}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
