package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"tonpay/internal/infrastructure/auth"
	"tonpay/internal/shared/logger"
	"tonpay/internal/shared/utils"
)

// Context keys populated by RequireAuth.
const (
	ContextKeyTelegramID    = "telegram_id"
	ContextKeyUsername      = "username"
	ContextKeyWalletAddress = "wallet_address"
)

type AuthMiddleware struct {
	jwtService *auth.JWTService
	logger     logger.Interface
}

func NewAuthMiddleware(jwtService *auth.JWTService, logger logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		logger:     logger,
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "missing authorization token")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := m.jwtService.Verify(parts[1])
		if err != nil {
			m.logger.Warnw("failed to verify token", "error", err)
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}

		c.Set(ContextKeyTelegramID, claims.TelegramID)
		c.Set(ContextKeyUsername, claims.Username)
		c.Set(ContextKeyWalletAddress, claims.WalletAddress)

		c.Next()
	}
}

// CallerWallet returns the wallet address bound to the authenticated caller.
func CallerWallet(c *gin.Context) string {
	return c.GetString(ContextKeyWalletAddress)
}
