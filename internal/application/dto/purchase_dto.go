package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePurchaseRequest body para POST /api/purchases.
type CreatePurchaseRequest struct {
	SupplierID string                `json:"supplier_id" validate:"required,uuid"`
	CurrencyID string                `json:"currency_id" validate:"required"`
	Note       string                `json:"note" validate:"omitempty,max=500"`
	Items      []PurchaseItemRequest `json:"items" validate:"required,min=1,dive"`
}

// PurchaseItemRequest línea de compra.
type PurchaseItemRequest struct {
	ProductID   string          `json:"product_id" validate:"required,uuid"`
	WarehouseID string          `json:"warehouse_id" validate:"required,uuid"`
	Quantity    int             `json:"quantity" validate:"gt=0"`
	UnitPrice   decimal.Decimal `json:"unit_price" validate:"gte=0,money"`
}

// PurchaseFilterRequest query de GET /api/purchases.
type PurchaseFilterRequest struct {
	PageRequest
	Status     string `query:"status" validate:"omitempty,oneof=PENDING RECEIVED CANCELLED"`
	SupplierID string `query:"supplier_id" validate:"omitempty,uuid"`
}

// PurchaseItemResponse línea de compra.
type PurchaseItemResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	WarehouseID string          `json:"warehouse_id"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalPrice  decimal.Decimal `json:"total_price"`
}

// PurchaseResponse compra con sus líneas.
type PurchaseResponse struct {
	ID          string                 `json:"id"`
	SupplierID  string                 `json:"supplier_id"`
	CurrencyID  string                 `json:"currency_id"`
	UserID      string                 `json:"user_id"`
	TotalAmount decimal.Decimal        `json:"total_amount"`
	Status      string                 `json:"status"`
	Note        string                 `json:"note,omitempty"`
	Items       []PurchaseItemResponse `json:"items"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
}

// PurchaseListResponse lista paginada de compras.
type PurchaseListResponse struct {
	Items []PurchaseResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
