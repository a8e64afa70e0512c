package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/kitob-pos/internal/application/ports"
	"github.com/jhoicas/kitob-pos/internal/domain"
	"github.com/jhoicas/kitob-pos/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// BalanceDelta entrada del motor de saldo.
type BalanceDelta struct {
	RegisterID    string
	CurrencyID    string // vacío = moneda de la caja
	UserID        string
	PaymentTypeID string
	Delta         decimal.Decimal // con signo
	ReferenceType string
	ReferenceID   string
	Note          string
}

// BalanceEngine aplica deltas al saldo de una caja y deja un FinancialMovement por cada llamada.
type BalanceEngine struct {
	now func() time.Time
}

// NewBalanceEngine construye el motor de saldo.
func NewBalanceEngine() *BalanceEngine {
	return &BalanceEngine{now: time.Now}
}

// ApplyBalanceDelta bloquea la caja, suma el delta y agrega el movimiento (INFLOW si delta >= 0,
// OUTFLOW si no; Amount = |delta|). No impide saldos negativos: los retiros validan antes.
func (e *BalanceEngine) ApplyBalanceDelta(ctx context.Context, repos ports.TxRepos, in BalanceDelta) (decimal.Decimal, error) {
	// Saldo y monto se guardan por separado con dos decimales; un delta más fino rompería la suma.
	if !in.Delta.Equal(in.Delta.Round(2)) {
		return decimal.Zero, domain.Invalid("monto %s con más de dos decimales", in.Delta.String())
	}
	reg, err := repos.Registers.GetForUpdate(ctx, in.RegisterID)
	if err != nil {
		return decimal.Zero, err
	}
	if reg == nil {
		return decimal.Zero, domain.NotFound("caja", in.RegisterID)
	}

	newBalance := reg.Balance.Add(in.Delta)
	if err := repos.Registers.UpdateBalance(ctx, reg.ID, newBalance); err != nil {
		return decimal.Zero, err
	}

	currency := in.CurrencyID
	if currency == "" {
		currency = reg.CurrencyID
	}
	movType := entity.FinancialINFLOW
	if in.Delta.IsNegative() {
		movType = entity.FinancialOUTFLOW
	}
	mov := &entity.FinancialMovement{
		ID:             uuid.New().String(),
		CashRegisterID: reg.ID,
		CurrencyID:     currency,
		PaymentTypeID:  in.PaymentTypeID,
		UserID:         in.UserID,
		Type:           movType,
		Amount:         in.Delta.Abs(),
		BalanceAfter:   newBalance,
		ReferenceType:  in.ReferenceType,
		ReferenceID:    in.ReferenceID,
		Note:           in.Note,
		CreatedAt:      e.now(),
	}
	if err := repos.FinancialMovements.Create(ctx, mov); err != nil {
		return decimal.Zero, err
	}
	return newBalance, nil
}
