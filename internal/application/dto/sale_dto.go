package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSaleRequest body para POST /api/sales.
type CreateSaleRequest struct {
	BranchID       string            `json:"branch_id" validate:"required"`
	CashRegisterID string            `json:"cash_register_id" validate:"required,uuid"`
	CurrencyID     string            `json:"currency_id" validate:"required"`
	PaymentTypeID  string            `json:"payment_type_id" validate:"required"`
	WarehouseID    string            `json:"warehouse_id" validate:"required,uuid"`
	CustomerName   string            `json:"customer_name" validate:"omitempty,max=200"`
	Discount       decimal.Decimal   `json:"discount" validate:"gte=0,money"`
	Note           string            `json:"note" validate:"omitempty,max=500"`
	Items          []SaleItemRequest `json:"items" validate:"required,min=1,dive"`
}

// SaleItemRequest línea de venta. Sin UnitPrice se usa el precio del producto en la moneda de la venta.
type SaleItemRequest struct {
	ProductID string           `json:"product_id" validate:"required,uuid"`
	Quantity  int              `json:"quantity" validate:"gt=0"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty" validate:"omitempty,gte=0,money"`
}

// SaleFilterRequest query de GET /api/sales.
type SaleFilterRequest struct {
	PageRequest
	BranchID string     `query:"branch_id"`
	From     *time.Time `query:"-"`
	To       *time.Time `query:"-"`
}

// SaleItemResponse línea de venta.
type SaleItemResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	WarehouseID string          `json:"warehouse_id"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	CostPrice   decimal.Decimal `json:"cost_price"`
	TotalPrice  decimal.Decimal `json:"total_price"`
	Profit      decimal.Decimal `json:"profit"`
}

// SaleResponse venta con sus líneas.
type SaleResponse struct {
	ID             string             `json:"id"`
	BranchID       string             `json:"branch_id"`
	CashRegisterID string             `json:"cash_register_id"`
	CurrencyID     string             `json:"currency_id"`
	PaymentTypeID  string             `json:"payment_type_id"`
	UserID         string             `json:"user_id"`
	CustomerName   string             `json:"customer_name,omitempty"`
	Subtotal       decimal.Decimal    `json:"subtotal"`
	Discount       decimal.Decimal    `json:"discount"`
	TotalAmount    decimal.Decimal    `json:"total_amount"`
	CostTotal      decimal.Decimal    `json:"cost_total"`
	Profit         decimal.Decimal    `json:"profit"`
	Note           string             `json:"note,omitempty"`
	Items          []SaleItemResponse `json:"items"`
	CreatedAt      time.Time          `json:"created_at"`
}

// SaleListResponse lista paginada de ventas.
type SaleListResponse struct {
	Items []SaleResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
