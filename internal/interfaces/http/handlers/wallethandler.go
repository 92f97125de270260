package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tonpay/internal/application/ledger/usecases"
	"tonpay/internal/infrastructure/auth"
	"tonpay/internal/interfaces/http/middleware"
	"tonpay/internal/shared/logger"
	"tonpay/internal/shared/utils"
)

type WalletHandler struct {
	connectWalletUC *usecases.ConnectWalletUseCase
	getWalletUC     *usecases.GetWalletUseCase
	jwtService      *auth.JWTService
	logger          logger.Interface
}

func NewWalletHandler(
	connectWalletUC *usecases.ConnectWalletUseCase,
	getWalletUC *usecases.GetWalletUseCase,
	jwtService *auth.JWTService,
	logger logger.Interface,
) *WalletHandler {
	return &WalletHandler{
		connectWalletUC: connectWalletUC,
		getWalletUC:     getWalletUC,
		jwtService:      jwtService,
		logger:          logger,
	}
}

type ConnectWalletRequest struct {
	Address string `json:"address" binding:"required,tonaddress"`
}

type ConnectWalletResponse struct {
	Wallet      *usecases.WalletResult `json:"wallet"`
	AccessToken string                 `json:"access_token"`
}

// Connect registers the caller's wallet and reissues a token with the wallet
// address bound. Reconnecting the same address is idempotent.
func (h *WalletHandler) Connect(c *gin.Context) {
	var req ConnectWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.connectWalletUC.Execute(c.Request.Context(), req.Address)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	token, err := h.jwtService.Generate(
		c.GetInt64(middleware.ContextKeyTelegramID),
		c.GetString(middleware.ContextKeyUsername),
		result.Address,
	)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "wallet connected", ConnectWalletResponse{
		Wallet:      result,
		AccessToken: token,
	})
}

// Get returns a wallet by address.
func (h *WalletHandler) Get(c *gin.Context) {
	result, err := h.getWalletUC.Execute(c.Request.Context(), c.Param("address"))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// Me returns the authenticated caller's wallet.
func (h *WalletHandler) Me(c *gin.Context) {
	address := middleware.CallerWallet(c)
	if address == "" {
		utils.ErrorResponse(c, http.StatusNotFound, "no wallet connected")
		return
	}

	result, err := h.getWalletUC.Execute(c.Request.Context(), address)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
