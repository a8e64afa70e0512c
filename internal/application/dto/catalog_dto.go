package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductPriceRequest precio de venta en una moneda.
type ProductPriceRequest struct {
	CurrencyID string          `json:"currency_id" validate:"required,max=20"`
	Price      decimal.Decimal `json:"price" validate:"gte=0,money"`
}

// InitialStockRequest cantidad de apertura en una bodega.
type InitialStockRequest struct {
	WarehouseID string `json:"warehouse_id" validate:"required,uuid"`
	Quantity    int    `json:"quantity" validate:"min=1"`
}

// CreateProductRequest alta de un libro con su lista de precios y stock de apertura opcional.
type CreateProductRequest struct {
	Name         string                `json:"name" validate:"required,min=1,max=300"`
	NameAlt      string                `json:"name_alt" validate:"omitempty,max=300"`
	ISBN         string                `json:"isbn" validate:"omitempty,max=20"`
	Barcode      string                `json:"barcode" validate:"omitempty,max=50"`
	CategoryID   string                `json:"category_id" validate:"omitempty,max=50"`
	AuthorID     string                `json:"author_id" validate:"omitempty,max=50"`
	CostPrice    decimal.Decimal       `json:"cost_price" validate:"gte=0,money"`
	Prices       []ProductPriceRequest `json:"prices" validate:"dive"`
	InitialStock []InitialStockRequest `json:"initial_stock" validate:"dive"`
}

// UpdateProductRequest campos editables; nil = sin cambio. Prices no nil reemplaza la lista completa.
// El costo y el stock no se editan aquí: cambian con compras y ajustes.
type UpdateProductRequest struct {
	Name       *string                `json:"name" validate:"omitempty,min=1,max=300"`
	NameAlt    *string                `json:"name_alt" validate:"omitempty,max=300"`
	ISBN       *string                `json:"isbn" validate:"omitempty,max=20"`
	Barcode    *string                `json:"barcode" validate:"omitempty,max=50"`
	CategoryID *string                `json:"category_id" validate:"omitempty,max=50"`
	AuthorID   *string                `json:"author_id" validate:"omitempty,max=50"`
	IsActive   *bool                  `json:"is_active"`
	Prices     *[]ProductPriceRequest `json:"prices" validate:"omitempty,dive"`
}

// ProductFilterRequest query de GET /api/products.
type ProductFilterRequest struct {
	PageRequest
	Search     string `query:"search" validate:"omitempty,max=100"`
	OnlyActive bool   `query:"only_active"`
}

// ProductListResponse catálogo paginado.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// CreateWarehouseRequest alta de bodega. Sin branch_id se usa la sucursal del token.
type CreateWarehouseRequest struct {
	BranchID string `json:"branch_id" validate:"omitempty,max=50"`
	Name     string `json:"name" validate:"required,min=1,max=200"`
	Address  string `json:"address" validate:"omitempty,max=500"`
}

// WarehouseResponse salida de una bodega.
type WarehouseResponse struct {
	ID        string    `json:"id"`
	BranchID  string    `json:"branch_id,omitempty"`
	Name      string    `json:"name"`
	Address   string    `json:"address,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateSupplierRequest alta de proveedor.
type CreateSupplierRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=200"`
	Phone   string `json:"phone" validate:"omitempty,max=50"`
	Email   string `json:"email" validate:"omitempty,email,max=200"`
	Address string `json:"address" validate:"omitempty,max=500"`
}

// SupplierResponse salida de un proveedor.
type SupplierResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
	Address string `json:"address,omitempty"`
}

// CreateCashRegisterRequest alta de caja. El saldo inicial entra como ajuste en la bitácora.
type CreateCashRegisterRequest struct {
	Name           string          `json:"name" validate:"required,min=1,max=200"`
	BranchID       string          `json:"branch_id" validate:"required,max=50"`
	CurrencyID     string          `json:"currency_id" validate:"required,max=20"`
	OpeningBalance decimal.Decimal `json:"opening_balance" validate:"gte=0,money"`
}
