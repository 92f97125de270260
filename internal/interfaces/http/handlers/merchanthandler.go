package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"tonpay/internal/application/obligations/usecases"
	"tonpay/internal/application/settlement"
	vo "tonpay/internal/domain/shared/valueobjects"
	"tonpay/internal/interfaces/http/middleware"
	apperrors "tonpay/internal/shared/errors"
	"tonpay/internal/shared/logger"
	"tonpay/internal/shared/utils"
)

type MerchantHandler struct {
	createUC *usecases.CreateMerchantPaymentUseCase
	getUC    *usecases.GetObligationsUseCase
	engine   *settlement.Engine
	logger   logger.Interface
}

func NewMerchantHandler(
	createUC *usecases.CreateMerchantPaymentUseCase,
	getUC *usecases.GetObligationsUseCase,
	engine *settlement.Engine,
	logger logger.Interface,
) *MerchantHandler {
	return &MerchantHandler{
		createUC: createUC,
		getUC:    getUC,
		engine:   engine,
		logger:   logger,
	}
}

type CreateMerchantPaymentRequest struct {
	MerchantName string     `json:"merchant_name" binding:"required"`
	AmountNano   int64      `json:"amount_nano" binding:"required,gt=0"`
	OrderID      string     `json:"order_id" binding:"required"`
	Description  string     `json:"description"`
	ExpiresAt    *time.Time `json:"expires_at"`
}

// Create registers a payment request payable to the caller's wallet.
func (h *MerchantHandler) Create(c *gin.Context) {
	var req CreateMerchantPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid create merchant payment request", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	merchantAddress := middleware.CallerWallet(c)
	if merchantAddress == "" {
		utils.ErrorResponseWithError(c, apperrors.NewValidationError("no wallet connected"))
		return
	}

	result, err := h.createUC.Execute(c.Request.Context(), usecases.CreateMerchantPaymentCommand{
		MerchantName:    req.MerchantName,
		MerchantAddress: merchantAddress,
		AmountNano:      req.AmountNano,
		OrderID:         req.OrderID,
		Description:     req.Description,
		ExpiresAt:       req.ExpiresAt,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "payment request created")
}

// Get returns a payment request by ID.
func (h *MerchantHandler) Get(c *gin.Context) {
	result, err := h.getUC.GetMerchantPayment(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// GetByOrder looks up a payment request by its merchant order ID.
func (h *MerchantHandler) GetByOrder(c *gin.Context) {
	result, err := h.getUC.GetMerchantPaymentByOrder(c.Request.Context(), c.Param("order_id"))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// List returns payment requests payable to the caller.
func (h *MerchantHandler) List(c *gin.Context) {
	merchantAddress := middleware.CallerWallet(c)
	if merchantAddress == "" {
		utils.SuccessResponse(c, http.StatusOK, "", []*usecases.MerchantPaymentResult{})
		return
	}

	results, err := h.getUC.ListMerchantPayments(c.Request.Context(), merchantAddress)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", results)
}

// Pay settles the payment request from the caller's wallet.
func (h *MerchantHandler) Pay(c *gin.Context) {
	var req PayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	payer := middleware.CallerWallet(c)
	if payer == "" {
		utils.ErrorResponseWithError(c, apperrors.NewValidationError("no wallet connected"))
		return
	}

	paymentID := c.Param("id")
	if err := h.engine.SettleMerchantPayment(c.Request.Context(), paymentID, payer, vo.NewAmount(req.AmountNano)); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getUC.GetMerchantPayment(c.Request.Context(), paymentID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "payment settled", result)
}
