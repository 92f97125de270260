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

type InvoiceHandler struct {
	createUC *usecases.CreateInvoiceUseCase
	getUC    *usecases.GetObligationsUseCase
	cancelUC *usecases.CancelObligationUseCase
	engine   *settlement.Engine
	logger   logger.Interface
}

func NewInvoiceHandler(
	createUC *usecases.CreateInvoiceUseCase,
	getUC *usecases.GetObligationsUseCase,
	cancelUC *usecases.CancelObligationUseCase,
	engine *settlement.Engine,
	logger logger.Interface,
) *InvoiceHandler {
	return &InvoiceHandler{
		createUC: createUC,
		getUC:    getUC,
		cancelUC: cancelUC,
		engine:   engine,
		logger:   logger,
	}
}

type CreateInvoiceRequest struct {
	Title        string     `json:"title" binding:"required"`
	Description  string     `json:"description"`
	AmountNano   int64      `json:"amount_nano" binding:"required,gt=0"`
	AllowedPayer *string    `json:"allowed_payer"`
	DueDate      *time.Time `json:"due_date"`
	ExpiresAt    *time.Time `json:"expires_at"`
}

type PayRequest struct {
	AmountNano int64 `json:"amount_nano" binding:"required,gt=0"`
}

// Create issues a new invoice with the caller's wallet as issuer.
func (h *InvoiceHandler) Create(c *gin.Context) {
	var req CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid create invoice request", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	issuer := middleware.CallerWallet(c)
	if issuer == "" {
		utils.ErrorResponseWithError(c, apperrors.NewValidationError("no wallet connected"))
		return
	}

	result, err := h.createUC.Execute(c.Request.Context(), usecases.CreateInvoiceCommand{
		Title:         req.Title,
		Description:   req.Description,
		AmountNano:    req.AmountNano,
		IssuerAddress: issuer,
		AllowedPayer:  req.AllowedPayer,
		DueDate:       req.DueDate,
		ExpiresAt:     req.ExpiresAt,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "invoice created")
}

// Get returns an invoice by ID.
func (h *InvoiceHandler) Get(c *gin.Context) {
	result, err := h.getUC.GetInvoice(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// List returns invoices issued by the caller.
func (h *InvoiceHandler) List(c *gin.Context) {
	issuer := middleware.CallerWallet(c)
	if issuer == "" {
		utils.SuccessResponse(c, http.StatusOK, "", []*usecases.InvoiceResult{})
		return
	}

	results, err := h.getUC.ListInvoicesByIssuer(c.Request.Context(), issuer)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", results)
}

// Pay settles the invoice with the caller's wallet as payer.
func (h *InvoiceHandler) Pay(c *gin.Context) {
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

	invoiceID := c.Param("id")
	if err := h.engine.SettleInvoice(c.Request.Context(), invoiceID, payer, vo.NewAmount(req.AmountNano)); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getUC.GetInvoice(c.Request.Context(), invoiceID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "invoice paid", result)
}

// Cancel withdraws a pending invoice. Issuer only.
func (h *InvoiceHandler) Cancel(c *gin.Context) {
	result, err := h.cancelUC.CancelInvoice(c.Request.Context(), c.Param("id"), middleware.CallerWallet(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "invoice cancelled", result)
}
