package mappers

import (
	"fmt"

	"tonpay/internal/domain/invoice"
	vo "tonpay/internal/domain/shared/valueobjects"
	"tonpay/internal/infrastructure/persistence/models"
)

type InvoiceMapper interface {
	ToEntity(model *models.InvoiceModel) (*invoice.Invoice, error)
	ToModel(entity *invoice.Invoice) (*models.InvoiceModel, error)
	ToEntities(models []*models.InvoiceModel) ([]*invoice.Invoice, error)
}

type InvoiceMapperImpl struct{}

func NewInvoiceMapper() InvoiceMapper {
	return &InvoiceMapperImpl{}
}

func (m *InvoiceMapperImpl) ToEntity(model *models.InvoiceModel) (*invoice.Invoice, error) {
	if model == nil {
		return nil, nil
	}
	status := invoice.Status(model.Status)
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid invoice status in storage: %s", model.Status)
	}
	return invoice.ReconstructInvoice(
		model.ID,
		model.Title,
		model.Description,
		vo.NewAmount(model.Amount),
		model.IssuerAddress,
		model.AllowedPayer,
		status,
		model.DueDate,
		model.ExpiresAt,
		model.PaidAt,
		model.CreatedAt,
	), nil
}

func (m *InvoiceMapperImpl) ToModel(entity *invoice.Invoice) (*models.InvoiceModel, error) {
	if entity == nil {
		return nil, nil
	}
	return &models.InvoiceModel{
		ID:            entity.ID(),
		Title:         entity.Title(),
		Description:   entity.Description(),
		Amount:        entity.Amount().Nano(),
		IssuerAddress: entity.IssuerAddress(),
		AllowedPayer:  entity.AllowedPayer(),
		Status:        entity.Status().String(),
		DueDate:       entity.DueDate(),
		ExpiresAt:     entity.ExpiresAt(),
		PaidAt:        entity.PaidAt(),
		CreatedAt:     entity.CreatedAt(),
	}, nil
}

func (m *InvoiceMapperImpl) ToEntities(ms []*models.InvoiceModel) ([]*invoice.Invoice, error) {
	out := make([]*invoice.Invoice, 0, len(ms))
	for _, model := range ms {
		entity, err := m.ToEntity(model)
		if err != nil {
			return nil, err
		}
		out = append(out, entity)
	}
	return out, nil
}
