// Package ledger contiene los dos motores del núcleo de liquidación: el de stock y el de saldo de caja.
// Ambos trabajan con los repositorios de la transacción del caller (ports.TxRepos);
// nunca abren ni confirman una transacción propia.
package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/kitob-pos/internal/application/ports"
	"github.com/jhoicas/kitob-pos/internal/domain"
	"github.com/jhoicas/kitob-pos/internal/domain/entity"
)

// StockDelta entrada del motor de stock.
type StockDelta struct {
	ProductID     string
	WarehouseID   string
	UserID        string
	Delta         int    // con signo
	Type          string // IN, OUT, ADJUSTMENT
	ReferenceType string
	ReferenceID   string
	Note          string
}

// StockEngine aplica deltas a ProductStock y deja un ProductMovement por cada llamada.
type StockEngine struct {
	now func() time.Time
}

// NewStockEngine construye el motor de stock.
func NewStockEngine() *StockEngine {
	return &StockEngine{now: time.Now}
}

// ApplyStockDelta bloquea (o crea en 0) la fila (producto, bodega), suma el delta, persiste la
// cantidad y agrega el movimiento con la cantidad resultante. Devuelve la nueva cantidad.
// El caller ya validó la política de negocio; aquí solo se impide que el resultado sea negativo.
func (e *StockEngine) ApplyStockDelta(ctx context.Context, repos ports.TxRepos, in StockDelta) (int, error) {
	if in.ProductID == "" || in.WarehouseID == "" {
		return 0, domain.Invalid("producto y bodega son obligatorios")
	}
	switch in.Type {
	case entity.MovementIN, entity.MovementOUT, entity.MovementADJUSTMENT:
	default:
		return 0, domain.Invalid("tipo de movimiento %q inválido", in.Type)
	}

	stock, err := repos.Stocks.GetForUpdate(ctx, in.ProductID, in.WarehouseID)
	if err != nil {
		return 0, err
	}
	newQty := stock.Quantity + in.Delta
	if newQty < 0 {
		return 0, domain.InsufficientStock(in.ProductID, stock.Quantity, -in.Delta)
	}

	now := e.now()
	stock.Quantity = newQty
	stock.UpdatedAt = now
	if err := repos.Stocks.Upsert(ctx, stock); err != nil {
		return 0, err
	}

	mov := &entity.ProductMovement{
		ID:            uuid.New().String(),
		ProductID:     in.ProductID,
		WarehouseID:   in.WarehouseID,
		UserID:        in.UserID,
		Type:          in.Type,
		Quantity:      in.Delta,
		QuantityAfter: newQty,
		ReferenceType: in.ReferenceType,
		ReferenceID:   in.ReferenceID,
		Note:          in.Note,
		CreatedAt:     now,
	}
	if err := repos.ProductMovements.Create(ctx, mov); err != nil {
		return 0, err
	}
	return newQty, nil
}
