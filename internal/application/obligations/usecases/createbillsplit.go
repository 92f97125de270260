package usecases

import (
	"context"
	"fmt"

	"tonpay/internal/domain/bill"
	vo "tonpay/internal/domain/shared/valueobjects"
	"tonpay/internal/shared/logger"
)

// BillShareInput is one caller-supplied participant share.
type BillShareInput struct {
	Address   string
	ShareNano int64
}

// CreateBillSplitCommand represents the input for creating a bill split.
// When Shares is empty the total is divided evenly among Participants;
// otherwise Shares must cover every participant and sum to the total.
type CreateBillSplitCommand struct {
	Title           string
	Description     string
	TotalAmountNano int64
	CreatorAddress  string
	Participants    []string
	Shares          []BillShareInput
}

// CreateBillSplitUseCase handles bill split creation.
type CreateBillSplitUseCase struct {
	repo   bill.Repository
	logger logger.Interface
}

// NewCreateBillSplitUseCase creates a new CreateBillSplitUseCase.
func NewCreateBillSplitUseCase(repo bill.Repository, logger logger.Interface) *CreateBillSplitUseCase {
	return &CreateBillSplitUseCase{repo: repo, logger: logger}
}

// Execute creates a new active bill split.
func (uc *CreateBillSplitUseCase) Execute(ctx context.Context, cmd CreateBillSplitCommand) (*BillResult, error) {
	total := vo.NewAmount(cmd.TotalAmountNano)

	var (
		b   *bill.BillSplit
		err error
	)
	if len(cmd.Shares) > 0 {
		shares := make([]bill.ParticipantShare, 0, len(cmd.Shares))
		for _, s := range cmd.Shares {
			shares = append(shares, bill.ParticipantShare{
				Address: s.Address,
				Share:   vo.NewAmount(s.ShareNano),
			})
		}
		b, err = bill.NewBillSplit(cmd.Title, cmd.Description, total, cmd.CreatorAddress, shares)
	} else {
		b, err = bill.NewEqualBillSplit(cmd.Title, cmd.Description, total, cmd.CreatorAddress, cmd.Participants)
	}
	if err != nil {
		uc.logger.Warnw("invalid create bill split command", "error", err)
		return nil, err
	}

	if err := uc.repo.Create(ctx, b); err != nil {
		uc.logger.Errorw("failed to persist bill split", "error", err)
		return nil, fmt.Errorf("failed to save bill split: %w", err)
	}

	uc.logger.Infow("bill split created",
		"bill_id", b.ID(),
		"creator", b.CreatorAddress(),
		"total", b.TotalAmount().String(),
		"participants", len(b.Participants()))
	return toBillResult(b), nil
}
