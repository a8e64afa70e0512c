package entity

import "time"

// Tipos de movimiento de producto.
const (
	MovementIN         = "IN"
	MovementOUT        = "OUT"
	MovementADJUSTMENT = "ADJUSTMENT"
)

// Tipos de referencia de un movimiento (de producto o financiero).
const (
	ReferenceSale       = "SALE"
	ReferencePurchase   = "PURCHASE"
	ReferenceAdjustment = "ADJUSTMENT"
	ReferenceFund       = "FUND"
	ReferenceTransfer   = "TRANSFER"
)

// ProductMovement registro inmutable de un cambio de stock.
// Quantity es el delta con signo; QuantityAfter la cantidad resultante en la bodega.
type ProductMovement struct {
	ID            string
	ProductID     string
	WarehouseID   string
	UserID        string
	Type          string
	Quantity      int
	QuantityAfter int
	ReferenceType string
	ReferenceID   string
	Note          string
	CreatedAt     time.Time
}
