package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/govstack/wallet_service/internal/core/domain"
	portssvc "github.com/govstack/wallet_service/internal/core/ports/services"
	"github.com/govstack/wallet_service/internal/dto"
	"github.com/govstack/wallet_service/internal/middleware"
)

// walletHandler handles HTTP requests related to wallets.
type walletHandler struct {
	walletService portssvc.WalletSvcFacade
}

// newWalletHandler creates a new walletHandler.
func newWalletHandler(ws portssvc.WalletSvcFacade) *walletHandler {
	return &walletHandler{walletService: ws}
}

// registerWalletRoutes registers routes related to wallet lifecycle and views.
func registerWalletRoutes(rg *gin.RouterGroup, walletService portssvc.WalletSvcFacade) {
	h := newWalletHandler(walletService)

	rg.GET("/owner/:ownerID/:ownerType", h.resolveWallet)
	rg.POST("/create", h.createWallet)
	rg.GET("/number/:walletNumber", h.lookupWalletByNumber)
	rg.GET("/:walletID", h.getWallet)
	rg.GET("/:walletID/transactions", h.listTransactions)
	rg.PATCH("/:walletID/status", h.updateWalletStatus)
}

// resolveWallet godoc
// @Summary Resolve the wallet for an owner
// @Description Returns the owner's wallet, creating one with the default currency on first access
// @Tags wallet
// @Produce json
// @Param ownerID path string true "Owner ID"
// @Param ownerType path string true "Owner type" Enums(citizen, organization, ncra, government_agency, super_admin)
// @Param ownerName query string false "Owner display name, used when the wallet is created"
// @Success 200 {object} dto.WalletResponse
// @Failure 400 {object} map[string]string "Invalid owner reference"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to resolve wallet"
// @Security BearerAuth
// @Router /api/wallet/owner/{ownerID}/{ownerType} [get]
func (h *walletHandler) resolveWallet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	owner := domain.WalletOwnerRef{
		OwnerID:   c.Param("ownerID"),
		OwnerType: domain.OwnerType(c.Param("ownerType")),
	}
	ownerName := c.Query("ownerName")

	logger.Info("Received request to resolve wallet", slog.String("owner_id", owner.OwnerID), slog.String("owner_type", string(owner.OwnerType)))

	wallet, err := h.walletService.ResolveWallet(c.Request.Context(), owner, ownerName, userID)
	if err != nil {
		respondWithError(c, err, "Failed to resolve wallet")
		return
	}

	c.JSON(http.StatusOK, dto.ToWalletResponse(wallet))
}

// createWallet godoc
// @Summary Create a wallet
// @Description Creates a wallet for an owner that does not have one yet
// @Tags wallet
// @Accept json
// @Produce json
// @Param wallet body dto.CreateWalletRequest true "Wallet details"
// @Success 201 {object} dto.WalletResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Owner already has a wallet"
// @Failure 500 {object} map[string]string "Failed to create wallet"
// @Security BearerAuth
// @Router /api/wallet/create [post]
func (h *walletHandler) createWallet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateWallet", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger.Info("Received request to create wallet", slog.String("owner_id", req.OwnerID), slog.String("owner_type", string(req.OwnerType)))

	wallet, err := h.walletService.CreateWallet(c.Request.Context(), req, userID)
	if err != nil {
		respondWithError(c, err, "Failed to create wallet")
		return
	}

	c.JSON(http.StatusCreated, dto.ToWalletResponse(wallet))
}

// getWallet godoc
// @Summary Get a wallet by ID
// @Description Retrieves the wallet including balance and available balance
// @Tags wallet
// @Produce json
// @Param walletID path string true "Wallet ID"
// @Success 200 {object} dto.WalletResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Wallet not found"
// @Failure 500 {object} map[string]string "Failed to retrieve wallet"
// @Security BearerAuth
// @Router /api/wallet/{walletID} [get]
func (h *walletHandler) getWallet(c *gin.Context) {
	walletID := c.Param("walletID")

	wallet, err := h.walletService.GetWalletByID(c.Request.Context(), walletID)
	if err != nil {
		respondWithError(c, err, "Failed to retrieve wallet")
		return
	}

	c.JSON(http.StatusOK, dto.ToWalletResponse(wallet))
}

// lookupWalletByNumber godoc
// @Summary Look up a wallet by its public number
// @Description Destination preflight for transfers; returns owner info without balances
// @Tags wallet
// @Produce json
// @Param walletNumber path string true "Wallet number (WG-XXXX-XXXX-XXXX)"
// @Success 200 {object} dto.WalletLookupResponse
// @Failure 400 {object} map[string]string "Invalid wallet number format"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Wallet not found"
// @Failure 500 {object} map[string]string "Failed to look up wallet"
// @Security BearerAuth
// @Router /api/wallet/number/{walletNumber} [get]
func (h *walletHandler) lookupWalletByNumber(c *gin.Context) {
	walletNumber := c.Param("walletNumber")

	wallet, err := h.walletService.GetWalletByNumber(c.Request.Context(), walletNumber)
	if err != nil {
		respondWithError(c, err, "Failed to look up wallet")
		return
	}

	c.JSON(http.StatusOK, dto.ToWalletLookupResponse(wallet))
}

// listTransactions godoc
// @Summary List a wallet's ledger entries
// @Description Retrieves the wallet's transactions, newest first, with cursor pagination
// @Tags wallet
// @Produce json
// @Param walletID path string true "Wallet ID"
// @Param limit query int false "Page size" default(20) maximum(100)
// @Param nextToken query string false "Cursor from the previous page"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} map[string]string "Invalid pagination parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Wallet not found"
// @Failure 500 {object} map[string]string "Failed to list transactions"
// @Security BearerAuth
// @Router /api/wallet/{walletID}/transactions [get]
func (h *walletHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	walletID := c.Param("walletID")

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListTransactions", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	page, err := h.walletService.ListTransactions(c.Request.Context(), walletID, params)
	if err != nil {
		respondWithError(c, err, "Failed to list transactions")
		return
	}

	c.JSON(http.StatusOK, page)
}

// updateWalletStatus godoc
// @Summary Update a wallet's status
// @Description Suspends, reactivates or closes a wallet; closing requires a zero balance
// @Tags wallet
// @Accept json
// @Produce json
// @Param walletID path string true "Wallet ID"
// @Param status body dto.UpdateWalletStatusRequest true "Target status"
// @Success 200 {object} dto.WalletResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Wallet not found"
// @Failure 422 {object} map[string]string "Status change rejected"
// @Failure 500 {object} map[string]string "Failed to update wallet status"
// @Security BearerAuth
// @Router /api/wallet/{walletID}/status [patch]
func (h *walletHandler) updateWalletStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	walletID := c.Param("walletID")

	var req dto.UpdateWalletStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateWalletStatus", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	wallet, err := h.walletService.UpdateWalletStatus(c.Request.Context(), walletID, req, userID)
	if err != nil {
		respondWithError(c, err, "Failed to update wallet status")
		return
	}

	c.JSON(http.StatusOK, dto.ToWalletResponse(wallet))
}
