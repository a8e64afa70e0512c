package repository

import (
	"context"

	"github.com/jhoicas/kitob-pos/internal/domain/entity"
)

// StockRepository define el puerto para consultar/actualizar stock por bodega+producto.
// Usado dentro de transacciones para garantizar consistencia.
type StockRepository interface {
	// Get devuelve la fila o una fila con cantidad 0 si no existe (sin crearla).
	Get(ctx context.Context, productID, warehouseID string) (*entity.ProductStock, error)
	// GetForUpdate crea la fila si falta (cantidad 0) y la bloquea hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, productID, warehouseID string) (*entity.ProductStock, error)
	Upsert(ctx context.Context, stock *entity.ProductStock) error
	// ListAtOrBelow lista filas con cantidad <= threshold; warehouseID vacío = todas las bodegas.
	ListAtOrBelow(ctx context.Context, warehouseID string, threshold int) ([]*entity.ProductStock, error)
}
