package services_test

import (
	"context"
	"time"

	"github.com/govstack/wallet_service/internal/core/domain"
	portsrepo "github.com/govstack/wallet_service/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock WalletRepository ---
type MockWalletRepository struct {
	mock.Mock
}

// Ensure MockWalletRepository implements portsrepo.WalletRepositoryFacade
var _ portsrepo.WalletRepositoryFacade = (*MockWalletRepository)(nil)

func (m *MockWalletRepository) FindWalletByID(ctx context.Context, walletID string) (*domain.Wallet, error) {
	args := m.Called(ctx, walletID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

func (m *MockWalletRepository) FindWalletByNumber(ctx context.Context, walletNumber string) (*domain.Wallet, error) {
	args := m.Called(ctx, walletNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

func (m *MockWalletRepository) FindWalletByOwner(ctx context.Context, owner domain.WalletOwnerRef) (*domain.Wallet, error) {
	args := m.Called(ctx, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

func (m *MockWalletRepository) SaveWallet(ctx context.Context, wallet domain.Wallet) error {
	args := m.Called(ctx, wallet)
	return args.Error(0)
}

func (m *MockWalletRepository) UpdateWalletStatus(ctx context.Context, walletID string, status domain.WalletStatus, userID string, now time.Time) error {
	args := m.Called(ctx, walletID, status, userID, now)
	return args.Error(0)
}

func (m *MockWalletRepository) FindWalletsByIDsForUpdate(ctx context.Context, tx pgx.Tx, walletIDs []string) (map[string]domain.Wallet, error) {
	args := m.Called(ctx, tx, walletIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Wallet), args.Error(1)
}

func (m *MockWalletRepository) UpdateWalletBalancesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error {
	args := m.Called(ctx, tx, balanceChanges, userID, now)
	return args.Error(0)
}

func (m *MockWalletRepository) UpdateWalletHoldInTx(ctx context.Context, tx pgx.Tx, walletID string, delta decimal.Decimal, userID string, now time.Time) error {
	args := m.Called(ctx, tx, walletID, delta, userID, now)
	return args.Error(0)
}

// --- Mock LedgerRepository ---
type MockLedgerRepository struct {
	mock.Mock
}

// Ensure MockLedgerRepository implements portsrepo.LedgerRepositoryFacade
var _ portsrepo.LedgerRepositoryFacade = (*MockLedgerRepository)(nil)

func (m *MockLedgerRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockLedgerRepository) FindPaymentByReference(ctx context.Context, walletID string, referenceID string) (*domain.Transaction, error) {
	args := m.Called(ctx, walletID, referenceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockLedgerRepository) ListTransactionsByWallet(ctx context.Context, walletID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, walletID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.Transaction), returnedNextToken, args.Error(2)
}

func (m *MockLedgerRepository) SaveSettledTransactions(ctx context.Context, transactions []domain.Transaction, balanceChanges map[string]decimal.Decimal) error {
	args := m.Called(ctx, transactions, balanceChanges)
	return args.Error(0)
}

func (m *MockLedgerRepository) SavePendingTransaction(ctx context.Context, transaction domain.Transaction, holdWalletID string, holdAmount decimal.Decimal) error {
	args := m.Called(ctx, transaction, holdWalletID, holdAmount)
	return args.Error(0)
}

func (m *MockLedgerRepository) SettleHeldTransaction(ctx context.Context, transactionID string, final domain.TransactionStatus, approvedBy string, now time.Time) error {
	args := m.Called(ctx, transactionID, final, approvedBy, now)
	return args.Error(0)
}

func (m *MockLedgerRepository) SaveRefundTransaction(ctx context.Context, refund domain.Transaction, originalTransactionID string, balanceChanges map[string]decimal.Decimal) error {
	args := m.Called(ctx, refund, originalTransactionID, balanceChanges)
	return args.Error(0)
}

// --- Mock CurrencyRepository ---
type MockCurrencyRepository struct {
	mock.Mock
}

// Ensure MockCurrencyRepository implements portsrepo.CurrencyRepositoryFacade
var _ portsrepo.CurrencyRepositoryFacade = (*MockCurrencyRepository)(nil)

func (m *MockCurrencyRepository) FindCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) SaveCurrency(ctx context.Context, currency domain.Currency) error {
	args := m.Called(ctx, currency)
	return args.Error(0)
}
