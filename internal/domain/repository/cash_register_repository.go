package repository

import (
	"context"

	"github.com/jhoicas/kitob-pos/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// CashRegisterRepository puerto de persistencia de cajas.
type CashRegisterRepository interface {
	// Create inserta la caja con saldo 0; el saldo inicial entra por el motor de saldo.
	Create(ctx context.Context, c *entity.CashRegister) error
	GetByID(ctx context.Context, id string) (*entity.CashRegister, error)
	// GetForUpdate bloquea la fila de la caja hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.CashRegister, error)
	// List filtra por sucursal; vacío = todas.
	List(ctx context.Context, branchID string) ([]*entity.CashRegister, error)
	UpdateBalance(ctx context.Context, id string, balance decimal.Decimal) error
}
