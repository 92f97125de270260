package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tonpay/internal/application/obligations/usecases"
	"tonpay/internal/application/settlement"
	vo "tonpay/internal/domain/shared/valueobjects"
	"tonpay/internal/interfaces/http/middleware"
	apperrors "tonpay/internal/shared/errors"
	"tonpay/internal/shared/logger"
	"tonpay/internal/shared/utils"
)

type BillHandler struct {
	createUC *usecases.CreateBillSplitUseCase
	getUC    *usecases.GetObligationsUseCase
	cancelUC *usecases.CancelObligationUseCase
	engine   *settlement.Engine
	logger   logger.Interface
}

func NewBillHandler(
	createUC *usecases.CreateBillSplitUseCase,
	getUC *usecases.GetObligationsUseCase,
	cancelUC *usecases.CancelObligationUseCase,
	engine *settlement.Engine,
	logger logger.Interface,
) *BillHandler {
	return &BillHandler{
		createUC: createUC,
		getUC:    getUC,
		cancelUC: cancelUC,
		engine:   engine,
		logger:   logger,
	}
}

type BillShareRequest struct {
	Address   string `json:"address" binding:"required,tonaddress"`
	ShareNano int64  `json:"share_nano" binding:"required,gt=0"`
}

// CreateBillRequest accepts either explicit shares or a plain participant
// list for an even split.
type CreateBillRequest struct {
	Title           string             `json:"title" binding:"required"`
	Description     string             `json:"description"`
	TotalAmountNano int64              `json:"total_amount_nano" binding:"required,gt=0"`
	Participants    []string           `json:"participants"`
	Shares          []BillShareRequest `json:"shares"`
}

// Create opens a new bill split created by the caller.
func (h *BillHandler) Create(c *gin.Context) {
	var req CreateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid create bill request", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	creator := middleware.CallerWallet(c)
	if creator == "" {
		utils.ErrorResponseWithError(c, apperrors.NewValidationError("no wallet connected"))
		return
	}

	shares := make([]usecases.BillShareInput, 0, len(req.Shares))
	for _, s := range req.Shares {
		shares = append(shares, usecases.BillShareInput{Address: s.Address, ShareNano: s.ShareNano})
	}

	result, err := h.createUC.Execute(c.Request.Context(), usecases.CreateBillSplitCommand{
		Title:           req.Title,
		Description:     req.Description,
		TotalAmountNano: req.TotalAmountNano,
		CreatorAddress:  creator,
		Participants:    req.Participants,
		Shares:          shares,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "bill split created")
}

// Get returns a bill split by ID.
func (h *BillHandler) Get(c *gin.Context) {
	result, err := h.getUC.GetBill(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// List returns bills the caller created or participates in.
func (h *BillHandler) List(c *gin.Context) {
	address := middleware.CallerWallet(c)
	if address == "" {
		utils.SuccessResponse(c, http.StatusOK, "", []*usecases.BillResult{})
		return
	}

	results, err := h.getUC.ListBillsByAddress(c.Request.Context(), address)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", results)
}

// PayShare settles the caller's share of the bill.
func (h *BillHandler) PayShare(c *gin.Context) {
	var req PayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	participant := middleware.CallerWallet(c)
	if participant == "" {
		utils.ErrorResponseWithError(c, apperrors.NewValidationError("no wallet connected"))
		return
	}

	billID := c.Param("id")
	if err := h.engine.SettleBillParticipant(c.Request.Context(), billID, participant, vo.NewAmount(req.AmountNano)); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getUC.GetBill(c.Request.Context(), billID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "share paid", result)
}

// Cancel withdraws an active bill split. Creator only.
func (h *BillHandler) Cancel(c *gin.Context) {
	result, err := h.cancelUC.CancelBill(c.Request.Context(), c.Param("id"), middleware.CallerWallet(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "bill cancelled", result)
}
