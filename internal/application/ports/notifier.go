package ports

import (
	"context"

	"github.com/jhoicas/kitob-pos/internal/domain/entity"
)

// LowStockAlert stock de un producto que quedó en o por debajo del umbral tras un movimiento.
type LowStockAlert struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	WarehouseID string `json:"warehouse_id"`
	Quantity    int    `json:"quantity"`
	Threshold   int    `json:"threshold"`
}

// Notifier sumidero de eventos para consumidores externos (bot, dashboards).
// Se invoca después del Commit; sus errores nunca afectan el resultado de la operación.
type Notifier interface {
	SaleCompleted(ctx context.Context, sale *entity.Sale) error
	StockLow(ctx context.Context, alert LowStockAlert) error
}
