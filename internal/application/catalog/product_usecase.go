// Package catalog altas y mantenimiento de libros, bodegas y proveedores.
// El stock de apertura de un libro entra por el motor de stock como ajuste, igual que cualquier otro cambio.
package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/kitob-pos/internal/application/dto"
	"github.com/jhoicas/kitob-pos/internal/application/ledger"
	"github.com/jhoicas/kitob-pos/internal/application/ports"
	"github.com/jhoicas/kitob-pos/internal/domain"
	"github.com/jhoicas/kitob-pos/internal/domain/entity"
	"github.com/jhoicas/kitob-pos/internal/domain/repository"
	"github.com/jhoicas/kitob-pos/pkg/logger"
)

// ProductUseCase casos de uso del catálogo de libros. Costo y stock no se editan aquí.
type ProductUseCase struct {
	tx    ports.TxRunner
	repos ports.TxRepos
	stock *ledger.StockEngine
	log   *logger.Logger
	now   func() time.Time
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(tx ports.TxRunner, repos ports.TxRepos, stock *ledger.StockEngine, log *logger.Logger) *ProductUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &ProductUseCase{tx: tx, repos: repos, stock: stock, log: log.Component("catalog"), now: time.Now}
}

// Create da de alta el libro, su lista de precios y el stock de apertura en una sola transacción.
func (uc *ProductUseCase) Create(ctx context.Context, userID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	prices, err := toPrices(in.Prices)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	p := &entity.Product{
		ID:         uuid.New().String(),
		Name:       in.Name,
		NameAlt:    in.NameAlt,
		ISBN:       in.ISBN,
		Barcode:    in.Barcode,
		CategoryID: in.CategoryID,
		AuthorID:   in.AuthorID,
		CostPrice:  in.CostPrice,
		IsActive:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	var created *entity.Product
	err = uc.tx.Run(ctx, func(ctx context.Context, repos ports.TxRepos) error {
		if err := repos.Products.Create(ctx, p); err != nil {
			return err
		}
		if err := repos.Products.ReplacePrices(ctx, p.ID, prices); err != nil {
			return err
		}
		for _, s := range in.InitialStock {
			wh, err := repos.Warehouses.GetByID(ctx, s.WarehouseID)
			if err != nil {
				return err
			}
			if wh == nil {
				return domain.NotFound("bodega", s.WarehouseID)
			}
			if _, err := uc.stock.ApplyStockDelta(ctx, repos, ledger.StockDelta{
				ProductID:     p.ID,
				WarehouseID:   s.WarehouseID,
				UserID:        userID,
				Delta:         s.Quantity,
				Type:          entity.MovementADJUSTMENT,
				ReferenceType: entity.ReferenceAdjustment,
				Note:          "Opening stock",
			}); err != nil {
				return err
			}
		}
		var err error
		created, err = repos.Products.GetByID(ctx, p.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("product_id", created.ID).
		Int("prices", len(created.Prices)).
		Int("initial_stock", len(in.InitialStock)).
		Msg("producto creado")
	return toProductResponse(created), nil
}

// Update aplica los campos presentes. Si llegan precios, la lista se reemplaza completa
// dentro de la misma transacción que los datos del producto.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	var prices []entity.ProductPrice
	if in.Prices != nil {
		var err error
		if prices, err = toPrices(*in.Prices); err != nil {
			return nil, err
		}
	}

	var updated *entity.Product
	err := uc.tx.Run(ctx, func(ctx context.Context, repos ports.TxRepos) error {
		p, err := repos.Products.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.NotFound("producto", id)
		}
		if in.Name != nil {
			p.Name = *in.Name
		}
		if in.NameAlt != nil {
			p.NameAlt = *in.NameAlt
		}
		if in.ISBN != nil {
			p.ISBN = *in.ISBN
		}
		if in.Barcode != nil {
			p.Barcode = *in.Barcode
		}
		if in.CategoryID != nil {
			p.CategoryID = *in.CategoryID
		}
		if in.AuthorID != nil {
			p.AuthorID = *in.AuthorID
		}
		if in.IsActive != nil {
			p.IsActive = *in.IsActive
		}
		p.UpdatedAt = uc.now()
		if err := repos.Products.Update(ctx, p); err != nil {
			return err
		}
		if in.Prices != nil {
			if err := repos.Products.ReplacePrices(ctx, id, prices); err != nil {
				return err
			}
		}
		updated, err = repos.Products.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("product_id", id).Bool("prices_replaced", in.Prices != nil).Msg("producto actualizado")
	return toProductResponse(updated), nil
}

// GetByID producto con su lista de precios, activo o no.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	p, err := uc.repos.Products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.NotFound("producto", id)
	}
	return toProductResponse(p), nil
}

// List catálogo paginado por nombre.
func (uc *ProductUseCase) List(ctx context.Context, in dto.ProductFilterRequest) (*dto.ProductListResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	in.DefaultPage()
	list, err := uc.repos.Products.List(ctx, repository.ProductFilter{
		Search:     in.Search,
		OnlyActive: in.OnlyActive,
		Limit:      in.Limit,
		Offset:     in.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset},
	}, nil
}

// toPrices rechaza monedas repetidas: el precio es único por (producto, moneda).
func toPrices(in []dto.ProductPriceRequest) ([]entity.ProductPrice, error) {
	out := make([]entity.ProductPrice, 0, len(in))
	seen := make(map[string]bool, len(in))
	for i, pr := range in {
		if seen[pr.CurrencyID] {
			return nil, domain.Invalid("prices[%d]: moneda %s repetida", i, pr.CurrencyID)
		}
		seen[pr.CurrencyID] = true
		out = append(out, entity.ProductPrice{CurrencyID: pr.CurrencyID, Price: pr.Price})
	}
	return out, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
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
	}
}
