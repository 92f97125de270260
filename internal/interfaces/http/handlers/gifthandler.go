package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"tonpay/internal/application/obligations/usecases"
	"tonpay/internal/application/settlement"
	"tonpay/internal/interfaces/http/middleware"
	apperrors "tonpay/internal/shared/errors"
	"tonpay/internal/shared/logger"
	"tonpay/internal/shared/utils"
)

type GiftHandler struct {
	createUC *usecases.CreateGiftUseCase
	getUC    *usecases.GetObligationsUseCase
	engine   *settlement.Engine
	logger   logger.Interface
}

func NewGiftHandler(
	createUC *usecases.CreateGiftUseCase,
	getUC *usecases.GetObligationsUseCase,
	engine *settlement.Engine,
	logger logger.Interface,
) *GiftHandler {
	return &GiftHandler{
		createUC: createUC,
		getUC:    getUC,
		engine:   engine,
		logger:   logger,
	}
}

type CreateGiftRequest struct {
	AmountNano       int64      `json:"amount_nano" binding:"required,gt=0"`
	RecipientAddress *string    `json:"recipient_address"`
	Secret           string     `json:"secret" binding:"required,min=8"`
	Description      string     `json:"description"`
	ExpiresAt        *time.Time `json:"expires_at"`
}

type ClaimGiftRequest struct {
	Secret string `json:"secret" binding:"required"`
}

// Create escrows a new gift from the caller's wallet. Only the secret's
// digest is stored; the caller shares the secret out of band.
func (h *GiftHandler) Create(c *gin.Context) {
	var req CreateGiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid create gift request", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	sender := middleware.CallerWallet(c)
	if sender == "" {
		utils.ErrorResponseWithError(c, apperrors.NewValidationError("no wallet connected"))
		return
	}

	result, err := h.createUC.Execute(c.Request.Context(), usecases.CreateGiftCommand{
		AmountNano:       req.AmountNano,
		SenderAddress:    sender,
		RecipientAddress: req.RecipientAddress,
		Secret:           req.Secret,
		Description:      req.Description,
		ExpiresAt:        req.ExpiresAt,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "gift created")
}

// Get returns a gift by ID. The secret digest is never included.
func (h *GiftHandler) Get(c *gin.Context) {
	result, err := h.getUC.GetGift(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// List returns gifts sent by the caller.
func (h *GiftHandler) List(c *gin.Context) {
	sender := middleware.CallerWallet(c)
	if sender == "" {
		utils.SuccessResponse(c, http.StatusOK, "", []*usecases.GiftResult{})
		return
	}

	results, err := h.getUC.ListGiftsBySender(c.Request.Context(), sender)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", results)
}

// Claim redeems the gift into the caller's wallet.
func (h *GiftHandler) Claim(c *gin.Context) {
	var req ClaimGiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	recipient := middleware.CallerWallet(c)
	if recipient == "" {
		utils.ErrorResponseWithError(c, apperrors.NewValidationError("no wallet connected"))
		return
	}

	giftID := c.Param("id")
	if err := h.engine.ClaimGift(c.Request.Context(), giftID, recipient, req.Secret); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getUC.GetGift(c.Request.Context(), giftID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "gift claimed", result)
}
