package ledger

import (
	"context"

	"github.com/jhoicas/kitob-pos/internal/application/ports"
	"github.com/jhoicas/kitob-pos/internal/domain/entity"
	"github.com/jhoicas/kitob-pos/pkg/logger"
)

// EventPublisher entrega eventos al Notifier después del Commit.
// Un fallo del Notifier se registra en warn y no se propaga.
type EventPublisher struct {
	notifier  ports.Notifier
	log       *logger.Logger
	threshold int
}

// NewEventPublisher construye el publicador; notifier nil descarta los eventos.
func NewEventPublisher(notifier ports.Notifier, log *logger.Logger, threshold int) *EventPublisher {
	if log == nil {
		log = logger.Nop()
	}
	return &EventPublisher{notifier: notifier, log: log.Component("events"), threshold: threshold}
}

// LowStockAfter devuelve la alerta si la cantidad resultante quedó en o por debajo del umbral.
func (p *EventPublisher) LowStockAfter(product *entity.Product, warehouseID string, qty int) (ports.LowStockAlert, bool) {
	if qty > p.threshold {
		return ports.LowStockAlert{}, false
	}
	return ports.LowStockAlert{
		ProductID:   product.ID,
		ProductName: product.DisplayName(),
		WarehouseID: warehouseID,
		Quantity:    qty,
		Threshold:   p.threshold,
	}, true
}

// SaleCompleted publica la venta confirmada.
func (p *EventPublisher) SaleCompleted(ctx context.Context, sale *entity.Sale) {
	if p.notifier == nil {
		return
	}
	if err := p.notifier.SaleCompleted(ctx, sale); err != nil {
		p.log.Warn().Err(err).Str("sale_id", sale.ID).Msg("no se pudo notificar la venta")
	}
}

// StockLow publica cada alerta de stock bajo.
func (p *EventPublisher) StockLow(ctx context.Context, alerts []ports.LowStockAlert) {
	if p.notifier == nil {
		return
	}
	for _, a := range alerts {
		if err := p.notifier.StockLow(ctx, a); err != nil {
			p.log.Warn().Err(err).
				Str("product_id", a.ProductID).
				Str("warehouse_id", a.WarehouseID).
				Msg("no se pudo notificar stock bajo")
		}
	}
}
