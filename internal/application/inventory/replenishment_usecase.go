package inventory

import (
	"context"
	"sort"

	"github.com/jhoicas/kitob-pos/internal/application/dto"
	"github.com/jhoicas/kitob-pos/internal/domain/repository"
)

// ReplenishmentUseCase lista los productos que quedaron en o por debajo del umbral de stock bajo.
type ReplenishmentUseCase struct {
	stockRepo   repository.StockRepository
	productRepo repository.ProductRepository
	threshold   int
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(
	stockRepo repository.StockRepository,
	productRepo repository.ProductRepository,
	threshold int,
) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{
		stockRepo:   stockRepo,
		productRepo: productRepo,
		threshold:   threshold,
	}
}

// ListLowStock devuelve las filas con cantidad <= umbral, las más críticas primero.
// warehouseID puede ser vacío para considerar todas las bodegas.
func (uc *ReplenishmentUseCase) ListLowStock(ctx context.Context, warehouseID string) ([]dto.LowStockItemResponse, error) {
	rows, err := uc.stockRepo.ListAtOrBelow(ctx, warehouseID, uc.threshold)
	if err != nil {
		return nil, err
	}

	items := make([]dto.LowStockItemResponse, 0, len(rows))
	for _, r := range rows {
		p, err := uc.productRepo.GetByID(ctx, r.ProductID)
		if err != nil {
			return nil, err
		}
		// Productos inactivos no se reponen.
		if p == nil || !p.IsActive {
			continue
		}
		items = append(items, dto.LowStockItemResponse{
			ProductID:   p.ID,
			ProductName: p.DisplayName(),
			ISBN:        p.ISBN,
			WarehouseID: r.WarehouseID,
			Quantity:    r.Quantity,
			Threshold:   uc.threshold,
		})
	}

	// Menor cantidad primero; empate por nombre y bodega para un orden estable.
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.Quantity != b.Quantity {
			return a.Quantity < b.Quantity
		}
		if a.ProductName != b.ProductName {
			return a.ProductName < b.ProductName
		}
		return a.WarehouseID < b.WarehouseID
	})

	// Prioridad (1 = más urgente)
	for i := range items {
		items[i].Priority = i + 1
	}
	return items, nil
}
