package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jhoicas/kitob-pos/internal/domain/entity"
	"github.com/jhoicas/kitob-pos/internal/domain/repository"
)

var _ repository.ProductMovementRepository = (*ProductMovementRepo)(nil)

// ProductMovementRepo bitácora de producto sobre PostgreSQL (usable con pool o tx). Solo INSERT y SELECT.
type ProductMovementRepo struct {
	q Querier
}

// NewProductMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductMovementRepository(q Querier) *ProductMovementRepo {
	return &ProductMovementRepo{q: q}
}

// Create persiste un movimiento de producto.
func (r *ProductMovementRepo) Create(ctx context.Context, m *entity.ProductMovement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	query := `
		INSERT INTO product_movements
			(id, product_id, warehouse_id, user_id, type, quantity, quantity_after, reference_type, reference_id, note, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.ProductID, m.WarehouseID, nullable(m.UserID), m.Type, m.Quantity, m.QuantityAfter,
		nullable(m.ReferenceType), nullable(m.ReferenceID), nullable(m.Note), m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create product movement: %w", err)
	}
	return nil
}

// ListByProduct lista movimientos de un producto en orden de inserción; warehouseID vacío = todas las bodegas.
func (r *ProductMovementRepo) ListByProduct(ctx context.Context, productID, warehouseID string, limit, offset int) ([]*entity.ProductMovement, error) {
	query := `
		SELECT id, product_id, warehouse_id, COALESCE(user_id::text, ''), type, quantity, quantity_after,
			COALESCE(reference_type, ''), COALESCE(reference_id, ''), COALESCE(note, ''), created_at
		FROM product_movements WHERE product_id = $1`
	args := []any{productID}
	pos := 2
	if warehouseID != "" {
		query += fmt.Sprintf(" AND warehouse_id = $%d", pos)
		args = append(args, warehouseID)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY seq LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limitArg(limit), offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list product movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.ProductMovement
	for rows.Next() {
		var m entity.ProductMovement
		if err := rows.Scan(&m.ID, &m.ProductID, &m.WarehouseID, &m.UserID, &m.Type, &m.Quantity, &m.QuantityAfter,
			&m.ReferenceType, &m.ReferenceID, &m.Note, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan product movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
