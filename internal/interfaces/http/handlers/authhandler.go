// Package handlers contains the gin HTTP handlers. Each handler binds the
// request, delegates to a use case or the settlement engine, and maps typed
// errors onto HTTP responses.
package handlers

import (
	"github.com/gin-gonic/gin"

	"tonpay/internal/infrastructure/auth"
	"tonpay/internal/shared/logger"
	"tonpay/internal/shared/utils"
)

type AuthHandler struct {
	telegramValidator *auth.TelegramValidator
	jwtService        *auth.JWTService
	logger            logger.Interface
}

func NewAuthHandler(telegramValidator *auth.TelegramValidator, jwtService *auth.JWTService, logger logger.Interface) *AuthHandler {
	return &AuthHandler{
		telegramValidator: telegramValidator,
		jwtService:        jwtService,
		logger:            logger,
	}
}

type TelegramLoginRequest struct {
	InitData string `json:"init_data" binding:"required"`
}

type TelegramLoginResponse struct {
	AccessToken string `json:"access_token"`
	TelegramID  int64  `json:"telegram_id"`
	Username    string `json:"username,omitempty"`
}

// Login verifies Mini App initData and issues an access token. The wallet
// address is bound later, when the user connects a wallet.
func (h *AuthHandler) Login(c *gin.Context) {
	var req TelegramLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid telegram login request", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	user, err := h.telegramValidator.Validate(req.InitData)
	if err != nil {
		h.logger.Warnw("telegram init data rejected", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	token, err := h.jwtService.Generate(user.ID, user.Username, "")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	h.logger.Infow("telegram user authenticated", "telegram_id", user.ID, "username", user.Username)
	utils.SuccessResponse(c, 200, "authenticated", TelegramLoginResponse{
		AccessToken: token,
		TelegramID:  user.ID,
		Username:    user.Username,
	})
}
