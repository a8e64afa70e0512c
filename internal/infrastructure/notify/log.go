package notify

import (
	"context"

	"github.com/jhoicas/kitob-pos/internal/application/ports"
	"github.com/jhoicas/kitob-pos/internal/domain/entity"
	"github.com/jhoicas/kitob-pos/pkg/logger"
)

var _ ports.Notifier = (*LogNotifier)(nil)

// LogNotifier escribe los eventos en el log. Se usa cuando no hay Redis configurado.
type LogNotifier struct {
	log *logger.Logger
}

// NewLogNotifier construye el notifier de log.
func NewLogNotifier(log *logger.Logger) *LogNotifier {
	return &LogNotifier{log: log.Component("notify")}
}

func (n *LogNotifier) SaleCompleted(_ context.Context, sale *entity.Sale) error {
	ev := NewSaleCompletedEvent(sale)
	n.log.Info().
		Str("event", ChannelSaleCompleted).
		Str("sale_id", ev.SaleID).
		Str("cash_register_id", ev.CashRegisterID).
		Str("total", ev.TotalAmount.String()).
		Str("currency", ev.CurrencyID).
		Int("units", ev.Units).
		Msg("venta completada")
	return nil
}

func (n *LogNotifier) StockLow(_ context.Context, alert ports.LowStockAlert) error {
	n.log.Warn().
		Str("event", ChannelStockLow).
		Str("product_id", alert.ProductID).
		Str("product", alert.ProductName).
		Str("warehouse_id", alert.WarehouseID).
		Int("quantity", alert.Quantity).
		Int("threshold", alert.Threshold).
		Msg("stock bajo")
	return nil
}

// Multi reparte cada evento a varios notifiers; devuelve el primer error sin cortar la entrega al resto.
type Multi []ports.Notifier

var _ ports.Notifier = Multi(nil)

func (m Multi) SaleCompleted(ctx context.Context, sale *entity.Sale) error {
	var first error
	for _, n := range m {
		if err := n.SaleCompleted(ctx, sale); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (m Multi) StockLow(ctx context.Context, alert ports.LowStockAlert) error {
	var first error
	for _, n := range m {
		if err := n.StockLow(ctx, alert); err != nil && first == nil {
			first = err
		}
	}
	return first
}
