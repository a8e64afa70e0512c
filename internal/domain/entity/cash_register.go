package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CashRegister caja con saldo en una sola moneda, asociada a una sucursal.
// Balance es la única fuente de verdad del dinero disponible.
type CashRegister struct {
	ID         string
	Name       string
	BranchID   string
	CurrencyID string
	Balance    decimal.Decimal
	IsActive   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
