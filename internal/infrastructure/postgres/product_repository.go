package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/kitob-pos/internal/domain"
	"github.com/jhoicas/kitob-pos/internal/domain/entity"
	"github.com/jhoicas/kitob-pos/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación de ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, name, COALESCE(name_alt, ''), COALESCE(isbn, ''), COALESCE(barcode, ''),
	COALESCE(category_id, ''), COALESCE(author_id, ''), cost_price, is_active, created_at, updated_at`

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(&p.ID, &p.Name, &p.NameAlt, &p.ISBN, &p.Barcode,
		&p.CategoryID, &p.AuthorID, &p.CostPrice, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserta el producto; los precios se escriben aparte con ReplacePrices.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (id, name, name_alt, isbn, barcode, category_id, author_id, cost_price, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Name, nullable(p.NameAlt), nullable(p.ISBN), nullable(p.Barcode),
		nullable(p.CategoryID), nullable(p.AuthorID), p.CostPrice, p.IsActive, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Duplicate("código de barras %s ya registrado", p.Barcode)
		}
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

// Update reescribe los datos editables; cost_price solo cambia con las compras.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE products
		SET name = $2, name_alt = $3, isbn = $4, barcode = $5, category_id = $6, author_id = $7,
		    is_active = $8, updated_at = $9
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		p.ID, p.Name, nullable(p.NameAlt), nullable(p.ISBN), nullable(p.Barcode),
		nullable(p.CategoryID), nullable(p.AuthorID), p.IsActive, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Duplicate("código de barras %s ya registrado", p.Barcode)
		}
		return fmt.Errorf("update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("producto", p.ID)
	}
	return nil
}

// ReplacePrices borra y reescribe la lista de precios. Debe correr dentro de la misma tx que el producto.
func (r *ProductRepo) ReplacePrices(ctx context.Context, productID string, prices []entity.ProductPrice) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM product_prices WHERE product_id = $1`, productID); err != nil {
		return fmt.Errorf("delete product prices: %w", err)
	}
	for _, pr := range prices {
		_, err := r.q.Exec(ctx,
			`INSERT INTO product_prices (product_id, currency_id, price) VALUES ($1, $2, $3)`,
			productID, pr.CurrencyID, pr.Price)
		if err != nil {
			if isUniqueViolation(err) {
				return domain.Duplicate("precio en %s repetido", pr.CurrencyID)
			}
			if isForeignKeyViolation(err) {
				return domain.NotFound("producto", productID)
			}
			return fmt.Errorf("insert product price: %w", err)
		}
	}
	return nil
}

// List catálogo ordenado por nombre, con sus precios.
func (r *ProductRepo) List(ctx context.Context, f repository.ProductFilter) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products
		WHERE ($1 = '' OR name ILIKE '%' || $1 || '%' OR name_alt ILIKE '%' || $1 || '%' OR isbn = $1 OR barcode = $1)
		  AND (NOT $2 OR is_active)
		ORDER BY name, id
		LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, f.Search, f.OnlyActive, limitArg(f.Limit), f.Offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	// Los precios se leen con las filas ya cerradas: la conexión de una tx no admite dos consultas abiertas.
	for _, p := range list {
		if err := r.loadPrices(ctx, p); err != nil {
			return nil, err
		}
	}
	return list, nil
}

// GetByID obtiene el producto con su lista de precios.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	p, err := scanProduct(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, r.loadPrices(ctx, p)
}

// GetByBarcode busca un producto activo cuyo código de barras o ISBN coincida; el código de barras tiene prioridad.
func (r *ProductRepo) GetByBarcode(ctx context.Context, code string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products
		WHERE is_active AND (barcode = $1 OR isbn = $1)
		ORDER BY (barcode = $1) DESC, id
		LIMIT 1`
	p, err := scanProduct(r.q.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product by barcode: %w", err)
	}
	return p, r.loadPrices(ctx, p)
}

func (r *ProductRepo) loadPrices(ctx context.Context, p *entity.Product) error {
	rows, err := r.q.Query(ctx,
		`SELECT product_id, currency_id, price FROM product_prices WHERE product_id = $1 ORDER BY currency_id`, p.ID)
	if err != nil {
		return fmt.Errorf("list product prices: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var pr entity.ProductPrice
		if err := rows.Scan(&pr.ProductID, &pr.CurrencyID, &pr.Price); err != nil {
			return fmt.Errorf("scan product price: %w", err)
		}
		p.Prices = append(p.Prices, pr)
	}
	return rows.Err()
}

// UpdateCostPrice sobrescribe el costo (última recepción gana).
func (r *ProductRepo) UpdateCostPrice(ctx context.Context, productID string, cost decimal.Decimal) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE products SET cost_price = $2, updated_at = now() WHERE id = $1`, productID, cost)
	if err != nil {
		return fmt.Errorf("update cost price: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("producto", productID)
	}
	return nil
}
