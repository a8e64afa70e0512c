package repository

import (
	"context"

	"github.com/jhoicas/kitob-pos/internal/domain/entity"
)

// PurchaseFilter filtros para listar compras.
type PurchaseFilter struct {
	Status     string
	SupplierID string
	Limit      int
	Offset     int
}

// PurchaseRepository puerto de persistencia de compras y sus líneas.
type PurchaseRepository interface {
	Create(ctx context.Context, p *entity.Purchase) error
	CreateItem(ctx context.Context, item *entity.PurchaseItem) error
	GetByID(ctx context.Context, id string) (*entity.Purchase, error)
	// GetForUpdate carga la compra con sus líneas y bloquea la cabecera.
	GetForUpdate(ctx context.Context, id string) (*entity.Purchase, error)
	UpdateStatus(ctx context.Context, id, status string) error
	List(ctx context.Context, f PurchaseFilter) ([]*entity.Purchase, error)
}
