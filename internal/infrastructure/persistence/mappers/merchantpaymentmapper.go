package mappers

import (
	"fmt"

	"tonpay/internal/domain/merchant"
	vo "tonpay/internal/domain/shared/valueobjects"
	"tonpay/internal/infrastructure/persistence/models"
)

type MerchantPaymentMapper interface {
	ToEntity(model *models.MerchantPaymentModel) (*merchant.Payment, error)
	ToModel(entity *merchant.Payment) (*models.MerchantPaymentModel, error)
	ToEntities(models []*models.MerchantPaymentModel) ([]*merchant.Payment, error)
}

type MerchantPaymentMapperImpl struct{}

func NewMerchantPaymentMapper() MerchantPaymentMapper {
	return &MerchantPaymentMapperImpl{}
}

func (m *MerchantPaymentMapperImpl) ToEntity(model *models.MerchantPaymentModel) (*merchant.Payment, error) {
	if model == nil {
		return nil, nil
	}
	status := merchant.Status(model.Status)
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid merchant payment status in storage: %s", model.Status)
	}
	return merchant.ReconstructPayment(
		model.ID,
		model.MerchantName,
		model.MerchantAddress,
		vo.NewAmount(model.Amount),
		model.OrderID,
		model.Description,
		status,
		model.ExpiresAt,
		model.PaidAt,
		model.CreatedAt,
	), nil
}

func (m *MerchantPaymentMapperImpl) ToModel(entity *merchant.Payment) (*models.MerchantPaymentModel, error) {
	if entity == nil {
		return nil, nil
	}
	return &models.MerchantPaymentModel{
		ID:              entity.ID(),
		MerchantName:    entity.MerchantName(),
		MerchantAddress: entity.MerchantAddress(),
		Amount:          entity.Amount().Nano(),
		OrderID:         entity.OrderID(),
		Description:     entity.Description(),
		Status:          entity.Status().String(),
		ExpiresAt:       entity.ExpiresAt(),
		PaidAt:          entity.PaidAt(),
		CreatedAt:       entity.CreatedAt(),
	}, nil
}

func (m *MerchantPaymentMapperImpl) ToEntities(ms []*models.MerchantPaymentModel) ([]*merchant.Payment, error) {
	out := make([]*merchant.Payment, 0, len(ms))
	for _, model := range ms {
		entity, err := m.ToEntity(model)
		if err != nil {
			return nil, err
		}
		out = append(out, entity)
	}
	return out, nil
}
