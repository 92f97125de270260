package mappers

import (
	"fmt"

	"tonpay/internal/domain/bill"
	vo "tonpay/internal/domain/shared/valueobjects"
	"tonpay/internal/infrastructure/persistence/models"
)

type BillMapper interface {
	ToEntity(model *models.BillSplitModel) (*bill.BillSplit, error)
	ToModel(entity *bill.BillSplit) (*models.BillSplitModel, error)
	ToEntities(models []*models.BillSplitModel) ([]*bill.BillSplit, error)
}

type BillMapperImpl struct{}

func NewBillMapper() BillMapper {
	return &BillMapperImpl{}
}

func (m *BillMapperImpl) ToEntity(model *models.BillSplitModel) (*bill.BillSplit, error) {
	if model == nil {
		return nil, nil
	}
	status := bill.Status(model.Status)
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid bill status in storage: %s", model.Status)
	}
	participants := make([]*bill.Participant, 0, len(model.Participants))
	for _, pm := range model.Participants {
		participants = append(participants, bill.ReconstructParticipant(
			pm.ID,
			pm.BillID,
			pm.Address,
			vo.NewAmount(pm.Share),
			pm.Paid,
			pm.PaidAt,
		))
	}
	return bill.ReconstructBillSplit(
		model.ID,
		model.Title,
		model.Description,
		vo.NewAmount(model.TotalAmount),
		model.CreatorAddress,
		status,
		participants,
		model.CreatedAt,
	), nil
}

func (m *BillMapperImpl) ToModel(entity *bill.BillSplit) (*models.BillSplitModel, error) {
	if entity == nil {
		return nil, nil
	}
	participants := make([]models.BillParticipantModel, 0, len(entity.Participants()))
	for _, p := range entity.Participants() {
		participants = append(participants, models.BillParticipantModel{
			ID:      p.ID(),
			BillID:  p.BillID(),
			Address: p.Address(),
			Share:   p.Share().Nano(),
			Paid:    p.Paid(),
			PaidAt:  p.PaidAt(),
		})
	}
	return &models.BillSplitModel{
		ID:             entity.ID(),
		Title:          entity.Title(),
		Description:    entity.Description(),
		TotalAmount:    entity.TotalAmount().Nano(),
		CreatorAddress: entity.CreatorAddress(),
		Status:         entity.Status().String(),
		CreatedAt:      entity.CreatedAt(),
		Participants:   participants,
	}, nil
}

func (m *BillMapperImpl) ToEntities(ms []*models.BillSplitModel) ([]*bill.BillSplit, error) {
	out := make([]*bill.BillSplit, 0, len(ms))
	for _, model := range ms {
		entity, err := m.ToEntity(model)
		if err != nil {
			return nil, err
		}
		out = append(out, entity)
	}
	return out, nil
}
