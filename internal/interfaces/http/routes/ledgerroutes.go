package routes

import (
	"github.com/gin-gonic/gin"

	"tonpay/internal/interfaces/http/handlers"
	"tonpay/internal/interfaces/http/middleware"
)

// LedgerRouteConfig holds dependencies for wallet and transaction routes.
type LedgerRouteConfig struct {
	WalletHandler      *handlers.WalletHandler
	TransactionHandler *handlers.TransactionHandler
	AuthMiddleware     *middleware.AuthMiddleware
}

// SetupLedgerRoutes configures wallet and transaction routes.
func SetupLedgerRoutes(engine *gin.Engine, cfg *LedgerRouteConfig) {
	wallets := engine.Group("/api/v1/wallets")
	wallets.Use(cfg.AuthMiddleware.RequireAuth())
	{
		wallets.POST("/connect", cfg.WalletHandler.Connect)
		wallets.GET("/me", cfg.WalletHandler.Me)
		wallets.GET("/:address", cfg.WalletHandler.Get)
	}

	transactions := engine.Group("/api/v1/transactions")
	transactions.Use(cfg.AuthMiddleware.RequireAuth())
	{
		transactions.POST("/send", cfg.TransactionHandler.Send)
		transactions.GET("", cfg.TransactionHandler.List)
		transactions.GET("/:id", cfg.TransactionHandler.Get)
	}
}
