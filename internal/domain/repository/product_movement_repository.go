package repository

import (
	"context"

	"github.com/jhoicas/kitob-pos/internal/domain/entity"
)

// ProductMovementRepository bitácora de movimientos de producto (solo inserción).
type ProductMovementRepository interface {
	Create(ctx context.Context, m *entity.ProductMovement) error
	// ListByProduct en orden de inserción; warehouseID vacío = todas las bodegas.
	ListByProduct(ctx context.Context, productID, warehouseID string, limit, offset int) ([]*entity.ProductMovement, error)
}
