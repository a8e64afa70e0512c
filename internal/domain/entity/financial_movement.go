package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento financiero.
const (
	FinancialINFLOW  = "INFLOW"
	FinancialOUTFLOW = "OUTFLOW"
)

// FinancialMovement registro inmutable de un cambio de saldo de caja.
// Amount siempre es magnitud (>= 0); el signo lo da Type.
type FinancialMovement struct {
	ID             string
	CashRegisterID string
	CurrencyID     string
	PaymentTypeID  string
	UserID         string
	Type           string
	Amount         decimal.Decimal
	BalanceAfter   decimal.Decimal
	ReferenceType  string
	ReferenceID    string
	Note           string
	CreatedAt      time.Time
}

// Signed devuelve el monto con signo (INFLOW positivo, OUTFLOW negativo).
func (m *FinancialMovement) Signed() decimal.Decimal {
	if m.Type == FinancialOUTFLOW {
		return m.Amount.Neg()
	}
	return m.Amount
}
