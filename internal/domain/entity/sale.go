package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale transacción de punto de venta. Inmutable una vez creada.
type Sale struct {
	ID             string
	BranchID       string
	CashRegisterID string
	CurrencyID     string
	PaymentTypeID  string
	UserID         string
	CustomerName   string
	Subtotal       decimal.Decimal
	Discount       decimal.Decimal
	TotalAmount    decimal.Decimal
	CostTotal      decimal.Decimal
	Profit         decimal.Decimal
	Note           string
	Items          []SaleItem
	CreatedAt      time.Time
}

// SaleItem línea de venta con precio y costo resueltos al momento de la venta.
type SaleItem struct {
	ID          string
	SaleID      string
	ProductID   string
	ProductName string
	WarehouseID string
	Quantity    int
	UnitPrice   decimal.Decimal
	CostPrice   decimal.Decimal
	TotalPrice  decimal.Decimal
	Profit      decimal.Decimal
}
