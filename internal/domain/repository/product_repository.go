package repository

import (
	"context"

	"github.com/jhoicas/kitob-pos/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ProductFilter filtros para listar el catálogo.
type ProductFilter struct {
	Search     string // nombre, ISBN o código de barras
	OnlyActive bool
	Limit      int
	Offset     int
}

// ProductRepository define el puerto de persistencia para Product (DIP).
// Los métodos que devuelven entidades retornan (nil, nil) si no existen.
type ProductRepository interface {
	// Create falla con domain.ErrDuplicate si el código de barras ya existe.
	Create(ctx context.Context, p *entity.Product) error
	// Update reescribe los datos del producto sin tocar precios ni costo.
	Update(ctx context.Context, p *entity.Product) error
	// ReplacePrices borra la lista de precios del producto y escribe la nueva.
	ReplacePrices(ctx context.Context, productID string, prices []entity.ProductPrice) error
	// GetByID carga el producto con su lista de precios.
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetByBarcode busca por código de barras o ISBN (solo productos activos).
	GetByBarcode(ctx context.Context, code string) (*entity.Product, error)
	List(ctx context.Context, f ProductFilter) ([]*entity.Product, error)
	UpdateCostPrice(ctx context.Context, productID string, cost decimal.Decimal) error
}
