package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/govstack/wallet_service/internal/core/ports/services"
	"github.com/govstack/wallet_service/internal/dto"
	"github.com/govstack/wallet_service/internal/middleware"
)

// ledgerHandler handles HTTP requests that move funds.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

// newLedgerHandler creates a new ledgerHandler.
func newLedgerHandler(ls portssvc.LedgerSvcFacade) *ledgerHandler {
	return &ledgerHandler{ledgerService: ls}
}

// registerLedgerRoutes registers the fund-movement routes.
func registerLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newLedgerHandler(ledgerService)

	rg.POST("/transfer/by-number", h.transferByNumber)
	rg.POST("/payment", h.payment)
	rg.POST("/deposit", h.deposit)
	rg.POST("/withdraw", h.withdraw)
	rg.POST("/transactions/:transactionID/settle", h.settleWithdrawal)
	rg.POST("/transactions/:transactionID/refund", h.refund)
}

// transferByNumber godoc
// @Summary Transfer funds between wallets
// @Description Moves funds between two wallets addressed by wallet number; both legs settle atomically
// @Tags ledger
// @Accept json
// @Produce json
// @Param transfer body dto.TransferRequest true "Transfer details"
// @Success 201 {object} dto.TransferResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Source or destination wallet not found"
// @Failure 422 {object} map[string]string "Transfer rejected"
// @Failure 500 {object} map[string]string "Failed to transfer"
// @Security BearerAuth
// @Router /api/wallet/transfer/by-number [post]
func (h *ledgerHandler) transferByNumber(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Transfer", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	// Client idempotency keys are logged for reconciliation
	if key := c.GetHeader("Idempotency-Key"); key != "" {
		logger = logger.With(slog.String("idempotency_key", key))
	}
	logger.Info("Received transfer request",
		slog.String("from", req.FromWalletNumber),
		slog.String("to", req.ToWalletNumber),
		slog.String("amount", req.Amount.String()))

	result, err := h.ledgerService.TransferByNumber(c.Request.Context(), req, userID)
	if err != nil {
		respondWithError(c, err, "Failed to transfer")
		return
	}

	c.JSON(http.StatusCreated, result)
}

// payment godoc
// @Summary Pay for a government service
// @Description One-sided debit against the caller's wallet; retrying with the same referenceId returns the original entry
// @Tags ledger
// @Accept json
// @Produce json
// @Param payment body dto.PaymentRequest true "Payment details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Wallet not found"
// @Failure 422 {object} map[string]string "Payment rejected"
// @Failure 500 {object} map[string]string "Failed to pay"
// @Security BearerAuth
// @Router /api/wallet/payment [post]
func (h *ledgerHandler) payment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Payment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger.Info("Received payment request",
		slog.String("wallet_id", req.WalletID),
		slog.String("amount", req.Amount.String()),
		slog.String("reference_id", req.ReferenceID))

	txn, err := h.ledgerService.Payment(c.Request.Context(), req, userID)
	if err != nil {
		respondWithError(c, err, "Failed to pay")
		return
	}

	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// deposit godoc
// @Summary Deposit funds into a wallet
// @Description Credits a wallet; government payout flows use the salary and bonus types
// @Tags ledger
// @Accept json
// @Produce json
// @Param deposit body dto.DepositRequest true "Deposit details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Wallet not found"
// @Failure 422 {object} map[string]string "Deposit rejected"
// @Failure 500 {object} map[string]string "Failed to deposit"
// @Security BearerAuth
// @Router /api/wallet/deposit [post]
func (h *ledgerHandler) deposit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Deposit", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	txn, err := h.ledgerService.Deposit(c.Request.Context(), req, userID)
	if err != nil {
		respondWithError(c, err, "Failed to deposit")
		return
	}

	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// withdraw godoc
// @Summary Request a withdrawal
// @Description Places a dual-control debit; the entry stays pending with a hold until a second operator settles it
// @Tags ledger
// @Accept json
// @Produce json
// @Param withdrawal body dto.WithdrawRequest true "Withdrawal details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Wallet not found"
// @Failure 422 {object} map[string]string "Withdrawal rejected"
// @Failure 500 {object} map[string]string "Failed to withdraw"
// @Security BearerAuth
// @Router /api/wallet/withdraw [post]
func (h *ledgerHandler) withdraw(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.WithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Withdraw", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	txn, err := h.ledgerService.Withdraw(c.Request.Context(), req, userID)
	if err != nil {
		respondWithError(c, err, "Failed to withdraw")
		return
	}

	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// settleWithdrawal godoc
// @Summary Approve or reject a pending withdrawal
// @Description Completes the withdrawal (applying the debit) or cancels it (releasing the hold); the initiator cannot settle their own withdrawal
// @Tags ledger
// @Accept json
// @Produce json
// @Param transactionID path string true "Transaction ID"
// @Param decision body dto.SettleWithdrawalRequest true "Approval decision"
// @Success 200 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid input format"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Initiator cannot approve their own withdrawal"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 422 {object} map[string]string "Transaction is not a pending withdrawal"
// @Failure 500 {object} map[string]string "Failed to settle withdrawal"
// @Security BearerAuth
// @Router /api/wallet/transactions/{transactionID}/settle [post]
func (h *ledgerHandler) settleWithdrawal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("transactionID")

	var req dto.SettleWithdrawalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SettleWithdrawal", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	txn, err := h.ledgerService.SettleWithdrawal(c.Request.Context(), transactionID, req.Approve, userID)
	if err != nil {
		respondWithError(c, err, "Failed to settle withdrawal")
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// refund godoc
// @Summary Refund a completed transaction
// @Description Reverses a completed debit exactly once, crediting the amount back to the debited wallet
// @Tags ledger
// @Accept json
// @Produce json
// @Param transactionID path string true "Transaction ID"
// @Param refund body dto.RefundRequest true "Refund reason"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid input format"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 422 {object} map[string]string "Transaction cannot be refunded"
// @Failure 500 {object} map[string]string "Failed to refund"
// @Security BearerAuth
// @Router /api/wallet/transactions/{transactionID}/refund [post]
func (h *ledgerHandler) refund(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("transactionID")

	var req dto.RefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Refund", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	txn, err := h.ledgerService.Refund(c.Request.Context(), transactionID, req, userID)
	if err != nil {
		respondWithError(c, err, "Failed to refund")
		return
	}

	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}
