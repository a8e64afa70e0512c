package repository

import (
	"context"

	"github.com/jhoicas/kitob-pos/internal/domain/entity"
)

// CirculatingFundRepository depósitos y retiros manuales.
type CirculatingFundRepository interface {
	Create(ctx context.Context, f *entity.CirculatingFund) error
	// List filtra por caja y tipo; vacíos = sin filtro.
	List(ctx context.Context, registerID, fundType string) ([]*entity.CirculatingFund, error)
}

// MoneyTransferRepository traslados entre cajas.
type MoneyTransferRepository interface {
	Create(ctx context.Context, t *entity.MoneyTransfer) error
	GetByID(ctx context.Context, id string) (*entity.MoneyTransfer, error)
	List(ctx context.Context, limit, offset int) ([]*entity.MoneyTransfer, error)
}
