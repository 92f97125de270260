package mappers

import (
	"fmt"

	"tonpay/internal/domain/ledger"
	vo "tonpay/internal/domain/shared/valueobjects"
	"tonpay/internal/infrastructure/persistence/models"
)

type WalletMapper interface {
	ToEntity(model *models.WalletModel) (*ledger.Wallet, error)
	ToModel(entity *ledger.Wallet) (*models.WalletModel, error)
	ToEntities(models []*models.WalletModel) ([]*ledger.Wallet, error)
}

type WalletMapperImpl struct{}

func NewWalletMapper() WalletMapper {
	return &WalletMapperImpl{}
}

func (m *WalletMapperImpl) ToEntity(model *models.WalletModel) (*ledger.Wallet, error) {
	if model == nil {
		return nil, nil
	}
	return ledger.ReconstructWallet(model.ID, model.Address, vo.NewAmount(model.Balance), model.CreatedAt), nil
}

func (m *WalletMapperImpl) ToModel(entity *ledger.Wallet) (*models.WalletModel, error) {
	if entity == nil {
		return nil, nil
	}
	return &models.WalletModel{
		ID:        entity.ID(),
		Address:   entity.Address(),
		Balance:   entity.Balance().Nano(),
		CreatedAt: entity.ConnectedAt(),
	}, nil
}

func (m *WalletMapperImpl) ToEntities(ms []*models.WalletModel) ([]*ledger.Wallet, error) {
	out := make([]*ledger.Wallet, 0, len(ms))
	for _, model := range ms {
		entity, err := m.ToEntity(model)
		if err != nil {
			return nil, err
		}
		out = append(out, entity)
	}
	return out, nil
}

type TransactionMapper interface {
	ToEntity(model *models.TransactionModel) (*ledger.Transaction, error)
	ToModel(entity *ledger.Transaction) (*models.TransactionModel, error)
	ToEntities(models []*models.TransactionModel) ([]*ledger.Transaction, error)
}

type TransactionMapperImpl struct{}

func NewTransactionMapper() TransactionMapper {
	return &TransactionMapperImpl{}
}

func (m *TransactionMapperImpl) ToEntity(model *models.TransactionModel) (*ledger.Transaction, error) {
	if model == nil {
		return nil, nil
	}
	kind := ledger.TransactionKind(model.Kind)
	if !kind.IsValid() {
		return nil, fmt.Errorf("invalid transaction kind in storage: %s", model.Kind)
	}
	status := ledger.TransactionStatus(model.Status)
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid transaction status in storage: %s", model.Status)
	}
	return ledger.ReconstructTransaction(
		model.ID,
		model.FromAddress,
		model.ToAddress,
		vo.NewAmount(model.Amount),
		kind,
		status,
		model.Description,
		model.ExternalHash,
		model.CreatedAt,
	), nil
}

func (m *TransactionMapperImpl) ToModel(entity *ledger.Transaction) (*models.TransactionModel, error) {
	if entity == nil {
		return nil, nil
	}
	return &models.TransactionModel{
		ID:           entity.ID(),
		FromAddress:  entity.FromAddress(),
		ToAddress:    entity.ToAddress(),
		Amount:       entity.Amount().Nano(),
		Kind:         entity.Kind().String(),
		Status:       entity.Status().String(),
		Description:  entity.Description(),
		ExternalHash: entity.ExternalHash(),
		CreatedAt:    entity.CreatedAt(),
	}, nil
}

func (m *TransactionMapperImpl) ToEntities(ms []*models.TransactionModel) ([]*ledger.Transaction, error) {
	out := make([]*ledger.Transaction, 0, len(ms))
	for _, model := range ms {
		entity, err := m.ToEntity(model)
		if err != nil {
			return nil, err
		}
		out = append(out, entity)
	}
	return out, nil
}
