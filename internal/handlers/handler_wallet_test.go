package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/govstack/wallet_service/internal/apperrors"
	"github.com/govstack/wallet_service/internal/core/domain"
	portssvc "github.com/govstack/wallet_service/internal/core/ports/services"
	"github.com/govstack/wallet_service/internal/core/services"
	"github.com/govstack/wallet_service/internal/dto"
	"github.com/govstack/wallet_service/internal/handlers"
	"github.com/govstack/wallet_service/internal/platform/config"
	"github.com/govstack/wallet_service/internal/utils/numbering"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock WalletService ---
type MockWalletService struct {
	mock.Mock
}

func (m *MockWalletService) ResolveWallet(ctx context.Context, owner domain.WalletOwnerRef, ownerName string, userID string) (*domain.Wallet, error) {
	args := m.Called(ctx, owner, ownerName, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}
func (m *MockWalletService) GetWalletByID(ctx context.Context, walletID string) (*domain.Wallet, error) {
	args := m.Called(ctx, walletID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}
func (m *MockWalletService) GetWalletByNumber(ctx context.Context, walletNumber string) (*domain.Wallet, error) {
	args := m.Called(ctx, walletNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}
func (m *MockWalletService) GetWalletByOwner(ctx context.Context, owner domain.WalletOwnerRef) (*domain.Wallet, error) {
	args := m.Called(ctx, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}
func (m *MockWalletService) ListTransactions(ctx context.Context, walletID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	args := m.Called(ctx, walletID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListTransactionsResponse), args.Error(1)
}
func (m *MockWalletService) CreateWallet(ctx context.Context, req dto.CreateWalletRequest, userID string) (*domain.Wallet, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}
func (m *MockWalletService) UpdateWalletStatus(ctx context.Context, walletID string, req dto.UpdateWalletStatusRequest, userID string) (*domain.Wallet, error) {
	args := m.Called(ctx, walletID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.WalletSvcFacade = (*MockWalletService)(nil)

// --- Mock LedgerService ---
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) TransferByNumber(ctx context.Context, req dto.TransferRequest, userID string) (*dto.TransferResponse, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TransferResponse), args.Error(1)
}
func (m *MockLedgerService) Payment(ctx context.Context, req dto.PaymentRequest, userID string) (*domain.Transaction, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockLedgerService) Deposit(ctx context.Context, req dto.DepositRequest, userID string) (*domain.Transaction, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockLedgerService) Withdraw(ctx context.Context, req dto.WithdrawRequest, userID string) (*domain.Transaction, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockLedgerService) SettleWithdrawal(ctx context.Context, transactionID string, approve bool, userID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID, approve, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockLedgerService) Refund(ctx context.Context, transactionID string, req dto.RefundRequest, userID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.LedgerSvcFacade = (*MockLedgerService)(nil)

// --- Mock CurrencyService ---
type MockCurrencyService struct {
	mock.Mock
}

func (m *MockCurrencyService) CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, userID string) (*domain.Currency, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}
func (m *MockCurrencyService) GetCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}
func (m *MockCurrencyService) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Currency), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.CurrencySvcFacade = (*MockCurrencyService)(nil)

// --- Test Suite ---
type WalletHandlerTestSuite struct {
	suite.Suite
	router            *gin.Engine
	mockWalletService *MockWalletService
	mockLedgerService *MockLedgerService
	jwtSecret         string
}

// generateTestToken creates a dummy JWT for testing.
func (suite *WalletHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "wallet-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *WalletHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	// DTO binding tags use the walletnumber validation; register it the same
	// way main does.
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("walletnumber", func(fl validator.FieldLevel) bool {
			return numbering.WalletNumberPattern.MatchString(fl.Field().String())
		})
	}

	suite.mockWalletService = new(MockWalletService)
	suite.mockLedgerService = new(MockLedgerService)

	cfg := &config.Config{
		JWTSecret:    suite.jwtSecret,
		IsProduction: true, // no swagger routes in the test router
	}
	container := &portssvc.ServiceContainer{
		Wallet:   suite.mockWalletService,
		Ledger:   suite.mockLedgerService,
		Currency: new(MockCurrencyService),
	}

	suite.router = gin.New()
	handlers.RegisterRoutes(suite.router, cfg, container)
}

func (suite *WalletHandlerTestSuite) authedRequest(method, url string, body any, userID string) *http.Request {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, url, reader)
	suite.Require().NoError(err)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// --- Test Cases ---

func (suite *WalletHandlerTestSuite) TestResolveWallet_Success() {
	userID := uuid.NewString()
	owner := domain.WalletOwnerRef{OwnerID: uuid.NewString(), OwnerType: domain.OwnerCitizen}
	wallet := &domain.Wallet{
		WalletID:     uuid.NewString(),
		WalletNumber: "WG-1234-5678-9012",
		OwnerID:      owner.OwnerID,
		OwnerType:    owner.OwnerType,
		OwnerName:    "Aminata Kamara",
		Balance:      decimal.NewFromInt(100),
		HeldAmount:   decimal.NewFromInt(30),
		CurrencyCode: "SLE",
		Status:       domain.WalletActive,
	}

	suite.mockWalletService.On("ResolveWallet",
		mock.AnythingOfType("*context.valueCtx"),
		owner,
		"Aminata Kamara",
		userID,
	).Return(wallet, nil).Once()

	url := fmt.Sprintf("/api/wallet/owner/%s/citizen?ownerName=Aminata+Kamara", owner.OwnerID)
	req := suite.authedRequest(http.MethodGet, url, nil, userID)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var body dto.WalletResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal(wallet.WalletID, body.ID)
	suite.Equal("WG-1234-5678-9012", body.WalletNumber)
	suite.True(body.AvailableBalance.Equal(decimal.NewFromInt(70)))
	suite.mockWalletService.AssertExpectations(suite.T())
}

func (suite *WalletHandlerTestSuite) TestResolveWallet_Unauthorized() {
	url := fmt.Sprintf("/api/wallet/owner/%s/citizen", uuid.NewString())
	req, _ := http.NewRequest(http.MethodGet, url, nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockWalletService.AssertNotCalled(suite.T(), "ResolveWallet", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *WalletHandlerTestSuite) TestCreateWallet_DuplicateOwner() {
	userID := uuid.NewString()
	reqBody := dto.CreateWalletRequest{
		OwnerID:   uuid.NewString(),
		OwnerType: domain.OwnerOrganization,
		OwnerName: "Ministry of Health",
		Currency:  "SLE",
	}

	suite.mockWalletService.On("CreateWallet",
		mock.AnythingOfType("*context.valueCtx"),
		reqBody,
		userID,
	).Return(nil, apperrors.NewAppError(http.StatusConflict, "owner already has a wallet", apperrors.ErrDuplicate)).Once()

	req := suite.authedRequest(http.MethodPost, "/api/wallet/create", reqBody, userID)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusConflict, w.Code)

	var body map[string]string
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal("owner already has a wallet", body["error"])
}

func (suite *WalletHandlerTestSuite) TestTransfer_BusinessRejection() {
	userID := uuid.NewString()
	reqBody := dto.TransferRequest{
		FromWalletNumber: "WG-1234-5678-9012",
		ToWalletNumber:   "WG-2345-6789-0123",
		Amount:           decimal.RequireFromString("150.00"),
		Description:      "school fees",
	}

	suite.mockLedgerService.On("TransferByNumber",
		mock.AnythingOfType("*context.valueCtx"),
		reqBody,
		userID,
	).Return(nil, apperrors.NewAppError(http.StatusUnprocessableEntity, services.ErrInsufficientFunds.Error(), services.ErrInsufficientFunds)).Once()

	req := suite.authedRequest(http.MethodPost, "/api/wallet/transfer/by-number", reqBody, userID)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	// Business rejections surface the server message verbatim with 422
	suite.Equal(http.StatusUnprocessableEntity, w.Code)

	var body map[string]string
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal("insufficient available balance", body["error"])
}

func (suite *WalletHandlerTestSuite) TestTransfer_MalformedWalletNumber() {
	userID := uuid.NewString()
	reqBody := dto.TransferRequest{
		FromWalletNumber: "not-a-wallet-number",
		ToWalletNumber:   "WG-2345-6789-0123",
		Amount:           decimal.NewFromInt(10),
	}

	req := suite.authedRequest(http.MethodPost, "/api/wallet/transfer/by-number", reqBody, userID)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockLedgerService.AssertNotCalled(suite.T(), "TransferByNumber", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *WalletHandlerTestSuite) TestPayment_Created() {
	userID := uuid.NewString()
	walletID := uuid.NewString()
	reqBody := dto.PaymentRequest{
		WalletID:      walletID,
		Amount:        decimal.RequireFromString("25.00"),
		Description:   "passport renewal",
		ReferenceID:   "SVC-2026-000123",
		ReferenceType: "service_payment",
	}
	entry := &domain.Transaction{
		TransactionID:     uuid.NewString(),
		TransactionNumber: "TXN-20260829-12345678",
		FromWalletID:      &walletID,
		Amount:            reqBody.Amount,
		CurrencyCode:      "SLE",
		TransactionType:   domain.TypePayment,
		Status:            domain.StatusCompleted,
		ReferenceID:       reqBody.ReferenceID,
		ReferenceType:     reqBody.ReferenceType,
		InitiatedBy:       userID,
	}

	suite.mockLedgerService.On("Payment",
		mock.AnythingOfType("*context.valueCtx"),
		reqBody,
		userID,
	).Return(entry, nil).Once()

	req := suite.authedRequest(http.MethodPost, "/api/wallet/payment", reqBody, userID)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusCreated, w.Code)

	var body dto.TransactionResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal(entry.TransactionID, body.ID)
	suite.Equal(dto.DirectionDebit, body.Direction)
	suite.Nil(body.ToWalletID)
	suite.mockLedgerService.AssertExpectations(suite.T())
}

func (suite *WalletHandlerTestSuite) TestSettleWithdrawal_SelfApprovalForbidden() {
	userID := uuid.NewString()
	transactionID := uuid.NewString()

	suite.mockLedgerService.On("SettleWithdrawal",
		mock.AnythingOfType("*context.valueCtx"),
		transactionID,
		true,
		userID,
	).Return(nil, apperrors.NewAppError(http.StatusForbidden, "withdrawals require a different approver", apperrors.ErrForbidden)).Once()

	url := fmt.Sprintf("/api/wallet/transactions/%s/settle", transactionID)
	req := suite.authedRequest(http.MethodPost, url, dto.SettleWithdrawalRequest{Approve: true}, userID)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusForbidden, w.Code)
}

// --- Run Test Suite ---
func TestWalletHandler(t *testing.T) {
	suite.Run(t, new(WalletHandlerTestSuite))
}
