// Package inventory agrupa las operaciones de stock fuera de la venta: ajuste manual,
// historial de movimientos, búsqueda por código y lista de reposición.
package inventory

import (
	"context"

	"github.com/jhoicas/kitob-pos/internal/application/dto"
	"github.com/jhoicas/kitob-pos/internal/application/ledger"
	"github.com/jhoicas/kitob-pos/internal/application/ports"
	"github.com/jhoicas/kitob-pos/internal/domain"
	"github.com/jhoicas/kitob-pos/internal/domain/entity"
	"github.com/jhoicas/kitob-pos/pkg/logger"
)

// StockUseCase ajustes manuales de stock con bloqueo de fila y Commit/Rollback (TxRunner).
type StockUseCase struct {
	tx     ports.TxRunner
	repos  ports.TxRepos
	stock  *ledger.StockEngine
	events *ledger.EventPublisher
	log    *logger.Logger
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(
	tx ports.TxRunner,
	repos ports.TxRepos,
	stock *ledger.StockEngine,
	events *ledger.EventPublisher,
	log *logger.Logger,
) *StockUseCase {
	if log == nil {
		log = logger.Nop()
	}
	if events == nil {
		events = ledger.NewEventPublisher(nil, log, 0)
	}
	return &StockUseCase{tx: tx, repos: repos, stock: stock, events: events, log: log.Component("inventory")}
}

// AdjustStock lleva el stock de (producto, bodega) a la cantidad indicada. El delta puede ser
// positivo, negativo o cero; con cero igual queda el movimiento en la bitácora.
func (uc *StockUseCase) AdjustStock(ctx context.Context, userID, productID string, in dto.AdjustStockRequest) (*dto.StockResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	target := *in.Quantity

	var (
		out    *dto.StockResponse
		alerts []ports.LowStockAlert
	)
	err := uc.tx.Run(ctx, func(ctx context.Context, repos ports.TxRepos) error {
		alerts = nil
		p, err := repos.Products.GetByID(ctx, productID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.NotFound("producto", productID)
		}
		wh, err := repos.Warehouses.GetByID(ctx, in.WarehouseID)
		if err != nil {
			return err
		}
		if wh == nil {
			return domain.NotFound("bodega", in.WarehouseID)
		}

		// La lectura del actual y la escritura quedan bajo el mismo bloqueo.
		cur, err := repos.Stocks.GetForUpdate(ctx, productID, in.WarehouseID)
		if err != nil {
			return err
		}
		delta := target - cur.Quantity
		note := in.Note
		if note == "" {
			note = "Manual adjustment"
		}
		qty, err := uc.stock.ApplyStockDelta(ctx, repos, ledger.StockDelta{
			ProductID:     productID,
			WarehouseID:   in.WarehouseID,
			UserID:        userID,
			Delta:         delta,
			Type:          entity.MovementADJUSTMENT,
			ReferenceType: entity.ReferenceAdjustment,
			Note:          note,
		})
		if err != nil {
			return err
		}
		if delta < 0 {
			if a, low := uc.events.LowStockAfter(p, in.WarehouseID, qty); low {
				alerts = append(alerts, a)
			}
		}
		st, err := repos.Stocks.Get(ctx, productID, in.WarehouseID)
		if err != nil {
			return err
		}
		out = &dto.StockResponse{
			ProductID:   productID,
			WarehouseID: in.WarehouseID,
			Quantity:    qty,
			UpdatedAt:   st.UpdatedAt,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("product_id", productID).
		Str("warehouse_id", in.WarehouseID).
		Int("quantity", out.Quantity).
		Msg("stock ajustado")
	uc.events.StockLow(ctx, alerts)
	return out, nil
}

// ListMovements historial de movimientos del producto en orden de inserción.
func (uc *StockUseCase) ListMovements(ctx context.Context, productID, warehouseID string, page dto.PageRequest) (*dto.ProductMovementListResponse, error) {
	if err := dto.Validate(page); err != nil {
		return nil, err
	}
	page.DefaultPage()
	p, err := uc.repos.Products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.NotFound("producto", productID)
	}
	list, err := uc.repos.ProductMovements.ListByProduct(ctx, productID, warehouseID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductMovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, dto.ProductMovementResponse{
			ID:            m.ID,
			ProductID:     m.ProductID,
			WarehouseID:   m.WarehouseID,
			UserID:        m.UserID,
			Type:          m.Type,
			Quantity:      m.Quantity,
			QuantityAfter: m.QuantityAfter,
			ReferenceType: m.ReferenceType,
			ReferenceID:   m.ReferenceID,
			Note:          m.Note,
			CreatedAt:     m.CreatedAt,
		})
	}
	return &dto.ProductMovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// GetByBarcode busca un producto activo por código de barras o ISBN (lector del POS).
func (uc *StockUseCase) GetByBarcode(ctx context.Context, code string) (*dto.ProductResponse, error) {
	if code == "" {
		return nil, domain.Invalid("código obligatorio")
	}
	p, err := uc.repos.Products.GetByBarcode(ctx, code)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.NotFound("producto", code)
	}
	prices := make([]dto.ProductPriceResponse, 0, len(p.Prices))
	for _, pr := range p.Prices {
		prices = append(prices, dto.ProductPriceResponse{CurrencyID: pr.CurrencyID, Price: pr.Price})
	}
	return &dto.ProductResponse{
		ID:         p.ID,
		Name:       p.Name,
		NameAlt:    p.NameAlt,
		ISBN:       p.ISBN,
		Barcode:    p.Barcode,
		CategoryID: p.CategoryID,
		AuthorID:   p.AuthorID,
		CostPrice:  p.CostPrice,
		IsActive:   p.IsActive,
		Prices:     prices,
	}, nil
}
