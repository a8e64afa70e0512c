package repository

import (
	"context"
	"time"

	"github.com/jhoicas/kitob-pos/internal/domain/entity"
)

// SaleFilter filtros para listar ventas.
type SaleFilter struct {
	BranchID string
	From     *time.Time
	To       *time.Time
	Limit    int
	Offset   int
}

// SaleRepository puerto de persistencia de ventas y sus líneas.
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	CreateItem(ctx context.Context, item *entity.SaleItem) error
	// GetByID carga la venta con sus líneas.
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	List(ctx context.Context, f SaleFilter) ([]*entity.Sale, error)
}
