package repository

import (
	"context"

	"github.com/jhoicas/kitob-pos/internal/domain/entity"
)

// WarehouseRepository bodegas referenciadas por movimientos de stock.
type WarehouseRepository interface {
	Create(ctx context.Context, w *entity.Warehouse) error
	GetByID(ctx context.Context, id string) (*entity.Warehouse, error)
	// List filtra por sucursal; vacío = todas.
	List(ctx context.Context, branchID string) ([]*entity.Warehouse, error)
}

// SupplierRepository proveedores referenciados por compras.
type SupplierRepository interface {
	Create(ctx context.Context, s *entity.Supplier) error
	GetByID(ctx context.Context, id string) (*entity.Supplier, error)
	List(ctx context.Context) ([]*entity.Supplier, error)
}
