package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de fondo circulante.
const (
	FundDeposit    = "DEPOSIT"
	FundWithdrawal = "WITHDRAWAL"
)

// CirculatingFund depósito o retiro manual de efectivo no ligado a una venta.
// Siempre va acompañado de exactamente un FinancialMovement.
type CirculatingFund struct {
	ID             string
	CashRegisterID string
	Type           string
	Amount         decimal.Decimal
	DepositorName  string
	Note           string
	UserID         string
	CreatedAt      time.Time
}
