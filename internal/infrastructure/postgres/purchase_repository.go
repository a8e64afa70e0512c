package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/kitob-pos/internal/domain"
	"github.com/jhoicas/kitob-pos/internal/domain/entity"
	"github.com/jhoicas/kitob-pos/internal/domain/repository"
)

var _ repository.PurchaseRepository = (*PurchaseRepo)(nil)

// PurchaseRepo compras y sus líneas sobre PostgreSQL (usable con pool o tx).
type PurchaseRepo struct {
	q Querier
}

// NewPurchaseRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseRepository(q Querier) *PurchaseRepo {
	return &PurchaseRepo{q: q}
}

const purchaseColumns = `id, supplier_id, currency_id, COALESCE(user_id::text, ''), total_amount, status,
	COALESCE(note, ''), created_at, updated_at`

// Create persiste la cabecera de la compra.
func (r *PurchaseRepo) Create(ctx context.Context, p *entity.Purchase) error {
	query := `
		INSERT INTO purchases (id, supplier_id, currency_id, user_id, total_amount, status, note, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.SupplierID, p.CurrencyID, nullable(p.UserID), p.TotalAmount, p.Status, nullable(p.Note),
		p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.NotFound("proveedor", p.SupplierID)
		}
		return fmt.Errorf("create purchase: %w", err)
	}
	return nil
}

// CreateItem persiste una línea de compra.
func (r *PurchaseRepo) CreateItem(ctx context.Context, it *entity.PurchaseItem) error {
	query := `
		INSERT INTO purchase_items (id, purchase_id, product_id, warehouse_id, quantity, unit_price, total_price)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		it.ID, it.PurchaseID, it.ProductID, it.WarehouseID, it.Quantity, it.UnitPrice, it.TotalPrice,
	)
	if err != nil {
		return fmt.Errorf("create purchase item: %w", err)
	}
	return nil
}

func scanPurchase(row pgx.Row) (*entity.Purchase, error) {
	var p entity.Purchase
	err := row.Scan(&p.ID, &p.SupplierID, &p.CurrencyID, &p.UserID, &p.TotalAmount, &p.Status,
		&p.Note, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PurchaseRepo) get(ctx context.Context, query, id string) (*entity.Purchase, error) {
	p, err := scanPurchase(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase: %w", err)
	}
	if err := r.attachItems(ctx, []*entity.Purchase{p}); err != nil {
		return nil, err
	}
	return p, nil
}

// GetByID obtiene la compra con sus líneas.
func (r *PurchaseRepo) GetByID(ctx context.Context, id string) (*entity.Purchase, error) {
	return r.get(ctx, `SELECT `+purchaseColumns+` FROM purchases WHERE id = $1`, id)
}

// GetForUpdate obtiene la compra con sus líneas y bloquea la cabecera; dos recepciones simultáneas se serializan aquí.
func (r *PurchaseRepo) GetForUpdate(ctx context.Context, id string) (*entity.Purchase, error) {
	return r.get(ctx, `SELECT `+purchaseColumns+` FROM purchases WHERE id = $1 FOR UPDATE`, id)
}

// UpdateStatus cambia el estado de la compra.
func (r *PurchaseRepo) UpdateStatus(ctx context.Context, id, status string) error {
	tag, err := r.q.Exec(ctx, `UPDATE purchases SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update purchase status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("compra", id)
	}
	return nil
}

// List compras filtradas, las más recientes primero.
func (r *PurchaseRepo) List(ctx context.Context, f repository.PurchaseFilter) ([]*entity.Purchase, error) {
	query := `SELECT ` + purchaseColumns + ` FROM purchases WHERE true`
	var args []any
	pos := 1
	if f.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", pos)
		args = append(args, f.Status)
		pos++
	}
	if f.SupplierID != "" {
		query += fmt.Sprintf(" AND supplier_id = $%d", pos)
		args = append(args, f.SupplierID)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC, id LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limitArg(f.Limit), f.Offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	defer rows.Close()
	var list []*entity.Purchase
	for rows.Next() {
		p, err := scanPurchase(rows)
		if err != nil {
			return nil, fmt.Errorf("scan purchase: %w", err)
		}
		list = append(list, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()
	if err := r.attachItems(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *PurchaseRepo) attachItems(ctx context.Context, purchases []*entity.Purchase) error {
	if len(purchases) == 0 {
		return nil
	}
	ids := make([]string, len(purchases))
	byID := make(map[string]*entity.Purchase, len(purchases))
	for i, p := range purchases {
		ids[i] = p.ID
		byID[p.ID] = p
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, purchase_id, product_id, warehouse_id, quantity, unit_price, total_price
		FROM purchase_items WHERE purchase_id = ANY($1::uuid[]) ORDER BY seq`, ids)
	if err != nil {
		return fmt.Errorf("list purchase items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.PurchaseItem
		if err := rows.Scan(&it.ID, &it.PurchaseID, &it.ProductID, &it.WarehouseID, &it.Quantity,
			&it.UnitPrice, &it.TotalPrice); err != nil {
			return fmt.Errorf("scan purchase item: %w", err)
		}
		if p, ok := byID[it.PurchaseID]; ok {
			p.Items = append(p.Items, it)
		}
	}
	return rows.Err()
}
