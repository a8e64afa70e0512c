package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MoneyTransfer traslado de dinero entre dos cajas; genera un OUTFLOW en origen y un INFLOW en destino.
type MoneyTransfer struct {
	ID             string
	FromRegisterID string
	ToRegisterID   string
	UserID         string
	Amount         decimal.Decimal
	Note           string
	CreatedAt      time.Time
}
