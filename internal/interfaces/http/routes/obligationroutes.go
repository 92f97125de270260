package routes

import (
	"github.com/gin-gonic/gin"

	"tonpay/internal/interfaces/http/handlers"
	"tonpay/internal/interfaces/http/middleware"
)

// ObligationRouteConfig holds dependencies for the obligation routes.
type ObligationRouteConfig struct {
	InvoiceHandler  *handlers.InvoiceHandler
	BillHandler     *handlers.BillHandler
	GiftHandler     *handlers.GiftHandler
	MerchantHandler *handlers.MerchantHandler
	AuthMiddleware  *middleware.AuthMiddleware
}

// SetupObligationRoutes configures invoice, bill split, gift and merchant
// payment routes.
func SetupObligationRoutes(engine *gin.Engine, cfg *ObligationRouteConfig) {
	invoices := engine.Group("/api/v1/invoices")
	invoices.Use(cfg.AuthMiddleware.RequireAuth())
	{
		invoices.POST("", cfg.InvoiceHandler.Create)
		invoices.GET("", cfg.InvoiceHandler.List)
		invoices.GET("/:id", cfg.InvoiceHandler.Get)
		invoices.POST("/:id/pay", cfg.InvoiceHandler.Pay)
		invoices.POST("/:id/cancel", cfg.InvoiceHandler.Cancel)
	}

	bills := engine.Group("/api/v1/bills")
	bills.Use(cfg.AuthMiddleware.RequireAuth())
	{
		bills.POST("", cfg.BillHandler.Create)
		bills.GET("", cfg.BillHandler.List)
		bills.GET("/:id", cfg.BillHandler.Get)
		bills.POST("/:id/pay", cfg.BillHandler.PayShare)
		bills.POST("/:id/cancel", cfg.BillHandler.Cancel)
	}

	gifts := engine.Group("/api/v1/gifts")
	gifts.Use(cfg.AuthMiddleware.RequireAuth())
	{
		gifts.POST("", cfg.GiftHandler.Create)
		gifts.GET("", cfg.GiftHandler.List)
		gifts.GET("/:id", cfg.GiftHandler.Get)
		gifts.POST("/:id/claim", cfg.GiftHandler.Claim)
	}

	payments := engine.Group("/api/v1/merchant-payments")
	payments.Use(cfg.AuthMiddleware.RequireAuth())
	{
		payments.POST("", cfg.MerchantHandler.Create)
		payments.GET("", cfg.MerchantHandler.List)
		payments.GET("/:id", cfg.MerchantHandler.Get)
		payments.GET("/order/:order_id", cfg.MerchantHandler.GetByOrder)
		payments.POST("/:id/pay", cfg.MerchantHandler.Pay)
	}
}
