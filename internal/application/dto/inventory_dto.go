package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AdjustStockRequest body para POST /api/products/:id/adjust-stock. Quantity es la cantidad final, no un delta.
type AdjustStockRequest struct {
	WarehouseID string `json:"warehouse_id" validate:"required,uuid"`
	Quantity    *int   `json:"quantity" validate:"required,min=0"`
	Note        string `json:"note" validate:"omitempty,max=500"`
}

// StockResponse cantidad de un producto en una bodega.
type StockResponse struct {
	ProductID   string    `json:"product_id"`
	WarehouseID string    `json:"warehouse_id"`
	Quantity    int       `json:"quantity"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProductMovementResponse fila de la bitácora de producto.
type ProductMovementResponse struct {
	ID            string    `json:"id"`
	ProductID     string    `json:"product_id"`
	WarehouseID   string    `json:"warehouse_id"`
	UserID        string    `json:"user_id"`
	Type          string    `json:"type"`
	Quantity      int       `json:"quantity"`
	QuantityAfter int       `json:"quantity_after"`
	ReferenceType string    `json:"reference_type,omitempty"`
	ReferenceID   string    `json:"reference_id,omitempty"`
	Note          string    `json:"note,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// ProductMovementListResponse historial paginado.
type ProductMovementListResponse struct {
	Items []ProductMovementResponse `json:"items"`
	Page  PageResponse              `json:"page"`
}

// LowStockItemResponse producto en o por debajo del umbral en una bodega.
type LowStockItemResponse struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	ISBN        string `json:"isbn,omitempty"`
	WarehouseID string `json:"warehouse_id"`
	Quantity    int    `json:"quantity"`
	Threshold   int    `json:"threshold"`
	Priority    int    `json:"priority"` // 1 = más urgente
}

// ProductPriceResponse precio en una moneda.
type ProductPriceResponse struct {
	CurrencyID string          `json:"currency_id"`
	Price      decimal.Decimal `json:"price"`
}

// ProductResponse producto con su lista de precios.
type ProductResponse struct {
	ID         string                 `json:"id"`
	Name       string                 `json:"name"`
	NameAlt    string                 `json:"name_alt,omitempty"`
	ISBN       string                 `json:"isbn,omitempty"`
	Barcode    string                 `json:"barcode,omitempty"`
	CategoryID string                 `json:"category_id,omitempty"`
	AuthorID   string                 `json:"author_id,omitempty"`
	CostPrice  decimal.Decimal        `json:"cost_price"`
	IsActive   bool                   `json:"is_active"`
	Prices     []ProductPriceResponse `json:"prices"`
}
