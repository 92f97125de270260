package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tonpay/internal/application/ledger/usecases"
	"tonpay/internal/interfaces/http/middleware"
	apperrors "tonpay/internal/shared/errors"
	"tonpay/internal/shared/logger"
	"tonpay/internal/shared/utils"
)

type TransactionHandler struct {
	sendUC *usecases.SendUseCase
	listUC *usecases.ListTransactionsUseCase
	logger logger.Interface
}

func NewTransactionHandler(
	sendUC *usecases.SendUseCase,
	listUC *usecases.ListTransactionsUseCase,
	logger logger.Interface,
) *TransactionHandler {
	return &TransactionHandler{
		sendUC: sendUC,
		listUC: listUC,
		logger: logger,
	}
}

type SendRequest struct {
	ToAddress   string `json:"to_address" binding:"required,tonaddress"`
	AmountNano  int64  `json:"amount_nano" binding:"required,gt=0"`
	Description string `json:"description"`
}

// Send performs a direct transfer from the caller's wallet.
func (h *TransactionHandler) Send(c *gin.Context) {
	var req SendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid send request", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	from := middleware.CallerWallet(c)
	if from == "" {
		utils.ErrorResponseWithError(c, apperrors.NewValidationError("no wallet connected"))
		return
	}

	result, err := h.sendUC.Execute(c.Request.Context(), usecases.SendCommand{
		FromAddress: from,
		ToAddress:   req.ToAddress,
		AmountNano:  req.AmountNano,
		Description: req.Description,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "transfer recorded")
}

// List returns the caller's transactions, newest first.
func (h *TransactionHandler) List(c *gin.Context) {
	address := middleware.CallerWallet(c)
	if address == "" {
		utils.SuccessResponse(c, http.StatusOK, "", []*usecases.TransactionResult{})
		return
	}

	results, err := h.listUC.ByAddress(c.Request.Context(), address)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", results)
}

// Get returns a single transaction by ID.
func (h *TransactionHandler) Get(c *gin.Context) {
	result, err := h.listUC.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
