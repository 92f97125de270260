package mappers

import (
	"tonpay/internal/domain/gift"
	vo "tonpay/internal/domain/shared/valueobjects"
	"tonpay/internal/infrastructure/persistence/models"
)

type GiftMapper interface {
	ToEntity(model *models.GiftModel) (*gift.Gift, error)
	ToModel(entity *gift.Gift) (*models.GiftModel, error)
	ToEntities(models []*models.GiftModel) ([]*gift.Gift, error)
}

type GiftMapperImpl struct{}

func NewGiftMapper() GiftMapper {
	return &GiftMapperImpl{}
}

func (m *GiftMapperImpl) ToEntity(model *models.GiftModel) (*gift.Gift, error) {
	if model == nil {
		return nil, nil
	}
	return gift.ReconstructGift(
		model.ID,
		vo.NewAmount(model.Amount),
		model.SenderAddress,
		model.RecipientAddress,
		model.SecretHash,
		model.Description,
		model.IsClaimed,
		model.ClaimedAt,
		model.ExpiresAt,
		model.CreatedAt,
	), nil
}

func (m *GiftMapperImpl) ToModel(entity *gift.Gift) (*models.GiftModel, error) {
	if entity == nil {
		return nil, nil
	}
	return &models.GiftModel{
		ID:               entity.ID(),
		Amount:           entity.Amount().Nano(),
		SenderAddress:    entity.SenderAddress(),
		RecipientAddress: entity.RecipientAddress(),
		SecretHash:       entity.SecretHash(),
		Description:      entity.Description(),
		IsClaimed:        entity.IsClaimed(),
		ClaimedAt:        entity.ClaimedAt(),
		ExpiresAt:        entity.ExpiresAt(),
		CreatedAt:        entity.CreatedAt(),
	}, nil
}

func (m *GiftMapperImpl) ToEntities(ms []*models.GiftModel) ([]*gift.Gift, error) {
	out := make([]*gift.Gift, 0, len(ms))
	for _, model := range ms {
		entity, err := m.ToEntity(model)
		if err != nil {
			return nil, err
		}
		out = append(out, entity)
	}
	return out, nil
}
