package usecases

import (
	"context"
	"fmt"
	"time"

	"tonpay/internal/domain/gift"
	vo "tonpay/internal/domain/shared/valueobjects"
	"tonpay/internal/shared/logger"
)

// CreateGiftCommand represents the input for creating a gift. The secret is
// plaintext here; only its digest is stored.
type CreateGiftCommand struct {
	AmountNano       int64
	SenderAddress    string
	RecipientAddress *string
	Secret           string
	Description      string
	ExpiresAt        *time.Time
}

// CreateGiftUseCase handles gift creation.
type CreateGiftUseCase struct {
	repo   gift.Repository
	logger logger.Interface
}

// NewCreateGiftUseCase creates a new CreateGiftUseCase.
func NewCreateGiftUseCase(repo gift.Repository, logger logger.Interface) *CreateGiftUseCase {
	return &CreateGiftUseCase{repo: repo, logger: logger}
}

// Execute creates a new unclaimed gift.
func (uc *CreateGiftUseCase) Execute(ctx context.Context, cmd CreateGiftCommand) (*GiftResult, error) {
	g, err := gift.NewGift(vo.NewAmount(cmd.AmountNano), cmd.SenderAddress, cmd.RecipientAddress, cmd.Secret, cmd.Description, cmd.ExpiresAt)
	if err != nil {
		uc.logger.Warnw("invalid create gift command", "error", err)
		return nil, err
	}

	if err := uc.repo.Create(ctx, g); err != nil {
		uc.logger.Errorw("failed to persist gift", "error", err)
		return nil, fmt.Errorf("failed to save gift: %w", err)
	}

	uc.logger.Infow("gift created", "gift_id", g.ID(), "sender", g.SenderAddress(), "amount", g.Amount().String())
	return toGiftResult(g), nil
}
