package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una compra. RECEIVED y CANCELLED son terminales.
const (
	PurchasePending   = "PENDING"
	PurchaseReceived  = "RECEIVED"
	PurchaseCancelled = "CANCELLED"
)

// Purchase pedido a un proveedor. Solo la recepción mueve stock y costo.
type Purchase struct {
	ID          string
	SupplierID  string
	CurrencyID  string
	UserID      string
	TotalAmount decimal.Decimal
	Status      string
	Note        string
	Items       []PurchaseItem
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// PurchaseItem línea de compra.
type PurchaseItem struct {
	ID          string
	PurchaseID  string
	ProductID   string
	WarehouseID string
	Quantity    int
	UnitPrice   decimal.Decimal
	TotalPrice  decimal.Decimal
}
