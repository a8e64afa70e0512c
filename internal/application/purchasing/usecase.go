// Package purchasing gestiona compras a proveedores: creación, recepción y cancelación.
package purchasing

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/kitob-pos/internal/application/dto"
	"github.com/jhoicas/kitob-pos/internal/application/ledger"
	"github.com/jhoicas/kitob-pos/internal/application/ports"
	"github.com/jhoicas/kitob-pos/internal/domain"
	"github.com/jhoicas/kitob-pos/internal/domain/entity"
	"github.com/jhoicas/kitob-pos/internal/domain/repository"
	"github.com/jhoicas/kitob-pos/pkg/logger"
	"github.com/shopspring/decimal"
)

// PurchaseUseCase ciclo de vida de una compra: PENDING → RECEIVED | CANCELLED.
type PurchaseUseCase struct {
	tx    ports.TxRunner
	repos ports.TxRepos
	stock *ledger.StockEngine
	log   *logger.Logger
	now   func() time.Time
}

// NewPurchaseUseCase construye el caso de uso.
func NewPurchaseUseCase(tx ports.TxRunner, repos ports.TxRepos, stock *ledger.StockEngine, log *logger.Logger) *PurchaseUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &PurchaseUseCase{tx: tx, repos: repos, stock: stock, log: log.Component("purchasing"), now: time.Now}
}

// Create registra la compra en PENDING. No toca stock.
func (uc *PurchaseUseCase) Create(ctx context.Context, userID string, in dto.CreatePurchaseRequest) (*dto.PurchaseResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}

	var p *entity.Purchase
	err := uc.tx.Run(ctx, func(ctx context.Context, repos ports.TxRepos) error {
		sup, err := repos.Suppliers.GetByID(ctx, in.SupplierID)
		if err != nil {
			return err
		}
		if sup == nil {
			return domain.NotFound("proveedor", in.SupplierID)
		}

		now := uc.now()
		p = &entity.Purchase{
			ID:         uuid.New().String(),
			SupplierID: in.SupplierID,
			CurrencyID: in.CurrencyID,
			UserID:     userID,
			Status:     entity.PurchasePending,
			Note:       in.Note,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		total := decimal.Zero
		for _, it := range in.Items {
			prod, err := repos.Products.GetByID(ctx, it.ProductID)
			if err != nil {
				return err
			}
			if prod == nil {
				return domain.NotFound("producto", it.ProductID)
			}
			wh, err := repos.Warehouses.GetByID(ctx, it.WarehouseID)
			if err != nil {
				return err
			}
			if wh == nil {
				return domain.NotFound("bodega", it.WarehouseID)
			}
			lineTotal := it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity)))
			p.Items = append(p.Items, entity.PurchaseItem{
				ID:          uuid.New().String(),
				PurchaseID:  p.ID,
				ProductID:   it.ProductID,
				WarehouseID: it.WarehouseID,
				Quantity:    it.Quantity,
				UnitPrice:   it.UnitPrice,
				TotalPrice:  lineTotal,
			})
			total = total.Add(lineTotal)
		}
		p.TotalAmount = total

		if err := repos.Purchases.Create(ctx, p); err != nil {
			return err
		}
		for i := range p.Items {
			if err := repos.Purchases.CreateItem(ctx, &p.Items[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("purchase_id", p.ID).Str("total", p.TotalAmount.String()).Msg("compra creada")
	return toPurchaseResponse(p), nil
}

// Receive ingresa el stock de todas las líneas, fija el costo del producto al precio recibido
// y pasa la compra a RECEIVED. Solo se permite desde PENDING.
func (uc *PurchaseUseCase) Receive(ctx context.Context, userID, id string) (*dto.PurchaseResponse, error) {
	var p *entity.Purchase
	err := uc.tx.Run(ctx, func(ctx context.Context, repos ports.TxRepos) error {
		var err error
		p, err = lockPending(ctx, repos, id, "recibir")
		if err != nil {
			return err
		}

		// Filas de stock en orden (producto, bodega) para no cruzar bloqueos con ventas.
		order := make([]int, len(p.Items))
		for i := range order {
			order[i] = i
		}
		sort.SliceStable(order, func(a, b int) bool {
			ia, ib := p.Items[order[a]], p.Items[order[b]]
			if ia.ProductID != ib.ProductID {
				return ia.ProductID < ib.ProductID
			}
			return ia.WarehouseID < ib.WarehouseID
		})

		note := "Purchase #" + p.ID + " received"
		for _, i := range order {
			it := p.Items[i]
			if _, err := uc.stock.ApplyStockDelta(ctx, repos, ledger.StockDelta{
				ProductID:     it.ProductID,
				WarehouseID:   it.WarehouseID,
				UserID:        userID,
				Delta:         it.Quantity,
				Type:          entity.MovementIN,
				ReferenceType: entity.ReferencePurchase,
				ReferenceID:   p.ID,
				Note:          note,
			}); err != nil {
				return err
			}
		}
		// El costo queda en el precio de la última línea del producto (última recepción gana).
		for _, it := range p.Items {
			if err := repos.Products.UpdateCostPrice(ctx, it.ProductID, it.UnitPrice); err != nil {
				return err
			}
		}

		if err := repos.Purchases.UpdateStatus(ctx, p.ID, entity.PurchaseReceived); err != nil {
			return err
		}
		p.Status = entity.PurchaseReceived
		p.UpdatedAt = uc.now()
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("purchase_id", p.ID).Int("items", len(p.Items)).Msg("compra recibida")
	return toPurchaseResponse(p), nil
}

// Cancel pasa la compra a CANCELLED. Solo se permite desde PENDING; no toca stock.
func (uc *PurchaseUseCase) Cancel(ctx context.Context, id string) (*dto.PurchaseResponse, error) {
	var p *entity.Purchase
	err := uc.tx.Run(ctx, func(ctx context.Context, repos ports.TxRepos) error {
		var err error
		p, err = lockPending(ctx, repos, id, "cancelar")
		if err != nil {
			return err
		}
		if err := repos.Purchases.UpdateStatus(ctx, p.ID, entity.PurchaseCancelled); err != nil {
			return err
		}
		p.Status = entity.PurchaseCancelled
		p.UpdatedAt = uc.now()
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("purchase_id", p.ID).Msg("compra cancelada")
	return toPurchaseResponse(p), nil
}

func lockPending(ctx context.Context, repos ports.TxRepos, id, action string) (*entity.Purchase, error) {
	p, err := repos.Purchases.GetForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.NotFound("compra", id)
	}
	if p.Status != entity.PurchasePending {
		return nil, domain.InvalidState("no se puede %s la compra %s en estado %s", action, id, p.Status)
	}
	return p, nil
}

// GetByID devuelve la compra con sus líneas.
func (uc *PurchaseUseCase) GetByID(ctx context.Context, id string) (*dto.PurchaseResponse, error) {
	p, err := uc.repos.Purchases.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.NotFound("compra", id)
	}
	return toPurchaseResponse(p), nil
}

// List lista compras, las más recientes primero.
func (uc *PurchaseUseCase) List(ctx context.Context, in dto.PurchaseFilterRequest) (*dto.PurchaseListResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	in.DefaultPage()
	list, err := uc.repos.Purchases.List(ctx, repository.PurchaseFilter{
		Status:     in.Status,
		SupplierID: in.SupplierID,
		Limit:      in.Limit,
		Offset:     in.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.PurchaseResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toPurchaseResponse(p))
	}
	return &dto.PurchaseListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset},
	}, nil
}

func toPurchaseResponse(p *entity.Purchase) *dto.PurchaseResponse {
	items := make([]dto.PurchaseItemResponse, 0, len(p.Items))
	for _, it := range p.Items {
		items = append(items, dto.PurchaseItemResponse{
			ID:          it.ID,
			ProductID:   it.ProductID,
			WarehouseID: it.WarehouseID,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			TotalPrice:  it.TotalPrice,
		})
	}
	return &dto.PurchaseResponse{
		ID:          p.ID,
		SupplierID:  p.SupplierID,
		CurrencyID:  p.CurrencyID,
		UserID:      p.UserID,
		TotalAmount: p.TotalAmount,
		Status:      p.Status,
		Note:        p.Note,
		Items:       items,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
