package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/kitob-pos/internal/domain/entity"
	"github.com/jhoicas/kitob-pos/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Get obtiene el stock actual de un producto en una bodega; sin fila devuelve cantidad 0.
func (r *StockRepo) Get(ctx context.Context, productID, warehouseID string) (*entity.ProductStock, error) {
	query := `
		SELECT product_id, warehouse_id, quantity, updated_at
		FROM product_stocks WHERE product_id = $1 AND warehouse_id = $2`
	var s entity.ProductStock
	err := r.q.QueryRow(ctx, query, productID, warehouseID).Scan(
		&s.ProductID, &s.WarehouseID, &s.Quantity, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.ProductStock{ProductID: productID, WarehouseID: warehouseID}, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &s, nil
}

// Upsert inserta o actualiza la cantidad en stock (por producto y bodega).
func (r *StockRepo) Upsert(ctx context.Context, stock *entity.ProductStock) error {
	query := `
		INSERT INTO product_stocks (product_id, warehouse_id, quantity, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (product_id, warehouse_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = now()`
	_, err := r.q.Exec(ctx, query, stock.ProductID, stock.WarehouseID, stock.Quantity)
	if err != nil {
		return fmt.Errorf("upsert stock: %w", err)
	}
	return nil
}

// GetForUpdate crea la fila en 0 si no existe y la bloquea (SELECT FOR UPDATE).
// El INSERT ... DO NOTHING evita que dos transacciones creen la misma fila y una pierda su escritura.
func (r *StockRepo) GetForUpdate(ctx context.Context, productID, warehouseID string) (*entity.ProductStock, error) {
	if _, err := r.q.Exec(ctx, `
		INSERT INTO product_stocks (product_id, warehouse_id, quantity, updated_at)
		VALUES ($1, $2, 0, now())
		ON CONFLICT (product_id, warehouse_id) DO NOTHING`, productID, warehouseID); err != nil {
		return nil, fmt.Errorf("ensure stock row: %w", err)
	}
	query := `
		SELECT product_id, warehouse_id, quantity, updated_at
		FROM product_stocks WHERE product_id = $1 AND warehouse_id = $2
		FOR UPDATE`
	var s entity.ProductStock
	err := r.q.QueryRow(ctx, query, productID, warehouseID).Scan(
		&s.ProductID, &s.WarehouseID, &s.Quantity, &s.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("get stock for update: %w", err)
	}
	return &s, nil
}

// ListAtOrBelow filas con cantidad <= threshold; warehouseID vacío = todas las bodegas.
func (r *StockRepo) ListAtOrBelow(ctx context.Context, warehouseID string, threshold int) ([]*entity.ProductStock, error) {
	query := `
		SELECT product_id, warehouse_id, quantity, updated_at
		FROM product_stocks WHERE quantity <= $1`
	args := []any{threshold}
	if warehouseID != "" {
		query += ` AND warehouse_id = $2`
		args = append(args, warehouseID)
	}
	query += ` ORDER BY quantity, product_id`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list low stock: %w", err)
	}
	defer rows.Close()
	var list []*entity.ProductStock
	for rows.Next() {
		var s entity.ProductStock
		if err := rows.Scan(&s.ProductID, &s.WarehouseID, &s.Quantity, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
