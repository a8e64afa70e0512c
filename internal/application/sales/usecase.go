// Package sales implementa la liquidación de ventas del punto de venta.
package sales

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

// ReceiptRenderer genera el ticket PDF de una venta confirmada.
type ReceiptRenderer interface {
	SaleReceiptPDF(sale *entity.Sale) ([]byte, error)
}

// SaleUseCase registra ventas de forma atómica: cabecera, líneas, salida de stock y entrada en caja.
type SaleUseCase struct {
	tx                 ports.TxRunner
	repos              ports.TxRepos
	stock              *ledger.StockEngine
	balance            *ledger.BalanceEngine
	events             *ledger.EventPublisher
	receipts           ReceiptRenderer
	rejectMissingPrice bool
	log                *logger.Logger
	now                func() time.Time
}

// NewSaleUseCase construye el caso de uso. repos se usa para lecturas fuera de transacción.
// rejectMissingPrice=false vende a 0 las líneas sin precio (comportamiento histórico).
func NewSaleUseCase(
	tx ports.TxRunner,
	repos ports.TxRepos,
	stock *ledger.StockEngine,
	balance *ledger.BalanceEngine,
	events *ledger.EventPublisher,
	receipts ReceiptRenderer,
	rejectMissingPrice bool,
	log *logger.Logger,
) *SaleUseCase {
	if log == nil {
		log = logger.Nop()
	}
	if events == nil {
		events = ledger.NewEventPublisher(nil, log, 0)
	}
	return &SaleUseCase{
		tx:                 tx,
		repos:              repos,
		stock:              stock,
		balance:            balance,
		events:             events,
		receipts:           receipts,
		rejectMissingPrice: rejectMissingPrice,
		log:                log.Component("sales"),
		now:                time.Now,
	}
}

// line línea validada, con producto y precio resueltos.
type line struct {
	product  *entity.Product
	quantity int
	price    decimal.Decimal
}

// Create valida y registra la venta. Cualquier fallo descarta todas las escrituras.
func (uc *SaleUseCase) Create(ctx context.Context, userID string, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	for i, it := range in.Items {
		if it.UnitPrice != nil && it.UnitPrice.IsNegative() {
			return nil, domain.Invalid("campo items[%d].unit_price inválido (mínimo 0)", i)
		}
	}

	var (
		sale   *entity.Sale
		alerts []ports.LowStockAlert
	)
	err := uc.tx.Run(ctx, func(ctx context.Context, repos ports.TxRepos) error {
		sale, alerts = nil, nil

		reg, err := repos.Registers.GetByID(ctx, in.CashRegisterID)
		if err != nil {
			return err
		}
		if reg == nil {
			return domain.NotFound("caja", in.CashRegisterID)
		}
		wh, err := repos.Warehouses.GetByID(ctx, in.WarehouseID)
		if err != nil {
			return err
		}
		if wh == nil {
			return domain.NotFound("bodega", in.WarehouseID)
		}

		lines, err := uc.lockAndValidate(ctx, repos, in)
		if err != nil {
			return err
		}
		if err := uc.resolvePrices(lines, in); err != nil {
			return err
		}

		sale, err = uc.build(userID, in, lines)
		if err != nil {
			return err
		}
		if err := repos.Sales.Create(ctx, sale); err != nil {
			return err
		}
		note := "Sale #" + sale.ID
		for i := range sale.Items {
			item := &sale.Items[i]
			if err := repos.Sales.CreateItem(ctx, item); err != nil {
				return err
			}
			qty, err := uc.stock.ApplyStockDelta(ctx, repos, ledger.StockDelta{
				ProductID:     item.ProductID,
				WarehouseID:   item.WarehouseID,
				UserID:        userID,
				Delta:         -item.Quantity,
				Type:          entity.MovementOUT,
				ReferenceType: entity.ReferenceSale,
				ReferenceID:   sale.ID,
				Note:          note,
			})
			if err != nil {
				return err
			}
			if a, low := uc.events.LowStockAfter(lines[i].product, item.WarehouseID, qty); low {
				alerts = append(alerts, a)
			}
		}

		_, err = uc.balance.ApplyBalanceDelta(ctx, repos, ledger.BalanceDelta{
			RegisterID:    sale.CashRegisterID,
			CurrencyID:    sale.CurrencyID,
			UserID:        userID,
			PaymentTypeID: sale.PaymentTypeID,
			Delta:         sale.TotalAmount,
			ReferenceType: entity.ReferenceSale,
			ReferenceID:   sale.ID,
			Note:          note,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("sale_id", sale.ID).
		Str("register_id", sale.CashRegisterID).
		Str("total", sale.TotalAmount.String()).
		Int("items", len(sale.Items)).
		Msg("venta registrada")
	uc.events.SaleCompleted(ctx, sale)
	uc.events.StockLow(ctx, alerts)

	return toSaleResponse(sale), nil
}

// lockAndValidate carga los productos en el orden de la solicitud, bloquea las filas de stock
// ordenadas por producto y valida cada línea contra lo disponible (acumulando líneas repetidas).
func (uc *SaleUseCase) lockAndValidate(ctx context.Context, repos ports.TxRepos, in dto.CreateSaleRequest) ([]line, error) {
	lines := make([]line, len(in.Items))
	missing := len(in.Items)
	for i, it := range in.Items {
		p, err := repos.Products.GetByID(ctx, it.ProductID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			missing = i
			break
		}
		lines[i] = line{product: p, quantity: it.Quantity}
	}

	ids := make([]string, 0, missing)
	seen := make(map[string]bool, missing)
	for _, it := range in.Items[:missing] {
		if !seen[it.ProductID] {
			seen[it.ProductID] = true
			ids = append(ids, it.ProductID)
		}
	}
	sort.Strings(ids)
	available := make(map[string]int, len(ids))
	for _, id := range ids {
		s, err := repos.Stocks.GetForUpdate(ctx, id, in.WarehouseID)
		if err != nil {
			return nil, err
		}
		available[id] = s.Quantity
	}

	requested := make(map[string]int, len(ids))
	for i, it := range in.Items {
		if i == missing {
			return nil, domain.NotFound("producto", it.ProductID)
		}
		requested[it.ProductID] += it.Quantity
		if requested[it.ProductID] > available[it.ProductID] {
			return nil, domain.InsufficientStock(lines[i].product.DisplayName(), available[it.ProductID], requested[it.ProductID])
		}
	}
	return lines, nil
}

// resolvePrices: precio explícito de la línea, si no el de la moneda de la venta, si no 0 o rechazo.
func (uc *SaleUseCase) resolvePrices(lines []line, in dto.CreateSaleRequest) error {
	for i, it := range in.Items {
		switch price, ok := lines[i].product.PriceFor(in.CurrencyID); {
		case it.UnitPrice != nil:
			lines[i].price = *it.UnitPrice
		case ok:
			lines[i].price = price
		case uc.rejectMissingPrice:
			return domain.Invalid("el producto %q no tiene precio en la moneda %s", lines[i].product.DisplayName(), in.CurrencyID)
		default:
			lines[i].price = decimal.Zero
		}
	}
	return nil
}

// build calcula totales. El descuento reduce ingreso y utilidad, nunca el costo.
func (uc *SaleUseCase) build(userID string, in dto.CreateSaleRequest, lines []line) (*entity.Sale, error) {
	sale := &entity.Sale{
		ID:             uuid.New().String(),
		BranchID:       in.BranchID,
		CashRegisterID: in.CashRegisterID,
		CurrencyID:     in.CurrencyID,
		PaymentTypeID:  in.PaymentTypeID,
		UserID:         userID,
		CustomerName:   in.CustomerName,
		Discount:       in.Discount,
		Note:           in.Note,
		CreatedAt:      uc.now(),
		Items:          make([]entity.SaleItem, 0, len(lines)),
	}
	subtotal, costTotal := decimal.Zero, decimal.Zero
	for _, l := range lines {
		qty := decimal.NewFromInt(int64(l.quantity))
		// Misma escala que las columnas numeric(18,2).
		lineTotal := l.price.Mul(qty).Round(2)
		lineCost := l.product.CostPrice.Mul(qty).Round(2)
		sale.Items = append(sale.Items, entity.SaleItem{
			ID:          uuid.New().String(),
			SaleID:      sale.ID,
			ProductID:   l.product.ID,
			ProductName: l.product.DisplayName(),
			WarehouseID: in.WarehouseID,
			Quantity:    l.quantity,
			UnitPrice:   l.price,
			CostPrice:   l.product.CostPrice,
			TotalPrice:  lineTotal,
			Profit:      lineTotal.Sub(lineCost),
		})
		subtotal = subtotal.Add(lineTotal)
		costTotal = costTotal.Add(lineCost)
	}
	if in.Discount.GreaterThan(subtotal) {
		return nil, domain.Invalid("el descuento %s supera el subtotal %s", in.Discount.String(), subtotal.String())
	}
	sale.Subtotal = subtotal
	sale.CostTotal = costTotal
	sale.TotalAmount = subtotal.Sub(in.Discount)
	sale.Profit = sale.TotalAmount.Sub(costTotal)
	return sale, nil
}

// GetByID devuelve la venta con sus líneas.
func (uc *SaleUseCase) GetByID(ctx context.Context, id string) (*dto.SaleResponse, error) {
	s, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return toSaleResponse(s), nil
}

// List lista ventas, las más recientes primero.
func (uc *SaleUseCase) List(ctx context.Context, in dto.SaleFilterRequest) (*dto.SaleListResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	in.DefaultPage()
	list, err := uc.repos.Sales.List(ctx, repository.SaleFilter{
		BranchID: in.BranchID,
		From:     in.From,
		To:       in.To,
		Limit:    in.Limit,
		Offset:   in.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSaleResponse(s))
	}
	return &dto.SaleListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset},
	}, nil
}

// Receipt genera el ticket PDF de la venta.
func (uc *SaleUseCase) Receipt(ctx context.Context, id string) ([]byte, error) {
	s, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.receipts.SaleReceiptPDF(s)
}

func (uc *SaleUseCase) load(ctx context.Context, id string) (*entity.Sale, error) {
	s, err := uc.repos.Sales.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.NotFound("venta", id)
	}
	return s, nil
}

func toSaleResponse(s *entity.Sale) *dto.SaleResponse {
	items := make([]dto.SaleItemResponse, 0, len(s.Items))
	for _, it := range s.Items {
		items = append(items, dto.SaleItemResponse{
			ID:          it.ID,
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			WarehouseID: it.WarehouseID,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			CostPrice:   it.CostPrice,
			TotalPrice:  it.TotalPrice,
			Profit:      it.Profit,
		})
	}
	return &dto.SaleResponse{
		ID:             s.ID,
		BranchID:       s.BranchID,
		CashRegisterID: s.CashRegisterID,
		CurrencyID:     s.CurrencyID,
		PaymentTypeID:  s.PaymentTypeID,
		UserID:         s.UserID,
		CustomerName:   s.CustomerName,
		Subtotal:       s.Subtotal,
		Discount:       s.Discount,
		TotalAmount:    s.TotalAmount,
		CostTotal:      s.CostTotal,
		Profit:         s.Profit,
		Note:           s.Note,
		Items:          items,
		CreatedAt:      s.CreatedAt,
	}
}
