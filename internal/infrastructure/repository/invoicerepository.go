package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"tonpay/internal/domain/invoice"
	"tonpay/internal/infrastructure/persistence/mappers"
	"tonpay/internal/infrastructure/persistence/models"
	"tonpay/internal/shared/db"
	apperrors "tonpay/internal/shared/errors"
)

type InvoiceRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.InvoiceMapper
}

func NewInvoiceRepository(gdb *gorm.DB) invoice.Repository {
	return &InvoiceRepositoryImpl{
		db:     gdb,
		mapper: mappers.NewInvoiceMapper(),
	}
}

func (r *InvoiceRepositoryImpl) Create(ctx context.Context, inv *invoice.Invoice) error {
	model, err := r.mapper.ToModel(inv)
	if err != nil {
		return fmt.Errorf("failed to map invoice entity to model: %w", err)
	}
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create invoice: %w", err)
	}
	return nil
}

func (r *InvoiceRepositoryImpl) GetByID(ctx context.Context, invoiceID string) (*invoice.Invoice, error) {
	var model models.InvoiceModel
	if err := db.GetTxFromContext(ctx, r.db).Where("id = ?", invoiceID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("invoice not found", invoiceID)
		}
		return nil, fmt.Errorf("failed to get invoice by ID: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

func (r *InvoiceRepositoryImpl) Update(ctx context.Context, inv *invoice.Invoice) error {
	model, err := r.mapper.ToModel(inv)
	if err != nil {
		return fmt.Errorf("failed to map invoice entity to model: %w", err)
	}
	result := db.GetTxFromContext(ctx, r.db).Save(model)
	if result.Error != nil {
		return fmt.Errorf("failed to update invoice: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError("invoice not found", inv.ID())
	}
	return nil
}

func (r *InvoiceRepositoryImpl) ListByIssuer(ctx context.Context, issuerAddress string) ([]*invoice.Invoice, error) {
	var ms []*models.InvoiceModel
	err := db.GetTxFromContext(ctx, r.db).
		Where("issuer_address = ?", issuerAddress).
		Order("created_at DESC").
		Find(&ms).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices by issuer: %w", err)
	}
	return r.mapper.ToEntities(ms)
}
