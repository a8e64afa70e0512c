package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/kitob-pos/internal/domain"
	"github.com/jhoicas/kitob-pos/internal/domain/entity"
	"github.com/jhoicas/kitob-pos/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var (
	_ repository.ProductRepository           = productRepo{}
	_ repository.StockRepository             = stockRepo{}
	_ repository.ProductMovementRepository   = productMovementRepo{}
	_ repository.CashRegisterRepository      = registerRepo{}
	_ repository.FinancialMovementRepository = financialMovementRepo{}
	_ repository.SaleRepository              = saleRepo{}
	_ repository.PurchaseRepository          = purchaseRepo{}
	_ repository.CirculatingFundRepository   = fundRepo{}
	_ repository.MoneyTransferRepository     = transferRepo{}
	_ repository.WarehouseRepository         = warehouseRepo{}
	_ repository.SupplierRepository          = supplierRepo{}
	_ repository.UserRepository              = UserRepo{}
)

// page aplica limit/offset sobre n elementos y devuelve el rango [from, to).
func page(n, limit, offset int) (int, int) {
	if offset < 0 {
		offset = 0
	}
	if offset > n {
		offset = n
	}
	end := n
	if limit > 0 && offset+limit < n {
		end = offset + limit
	}
	return offset, end
}

// ── Products ─────────────────────────────────────────────────────────────────

type productRepo struct{ v view }

// barcodeTaken replica el índice único parcial de Postgres sobre products.barcode.
func barcodeTaken(st *state, barcode, exceptID string) bool {
	if barcode == "" {
		return false
	}
	for id, p := range st.products {
		if id != exceptID && p.Barcode == barcode {
			return true
		}
	}
	return false
}

func (r productRepo) Create(_ context.Context, p *entity.Product) error {
	var err error
	r.v.with(func(st *state) {
		if barcodeTaken(st, p.Barcode, p.ID) {
			err = domain.Duplicate("código de barras %s ya registrado", p.Barcode)
			return
		}
		c := *p
		c.Prices = nil
		st.products[p.ID] = c
	})
	return err
}

func (r productRepo) Update(_ context.Context, p *entity.Product) error {
	var err error
	r.v.with(func(st *state) {
		cur, ok := st.products[p.ID]
		if !ok {
			err = domain.NotFound("producto", p.ID)
			return
		}
		if barcodeTaken(st, p.Barcode, p.ID) {
			err = domain.Duplicate("código de barras %s ya registrado", p.Barcode)
			return
		}
		c := *p
		c.CostPrice = cur.CostPrice
		c.Prices = cur.Prices
		c.CreatedAt = cur.CreatedAt
		st.products[p.ID] = c
	})
	return err
}

func (r productRepo) ReplacePrices(_ context.Context, productID string, prices []entity.ProductPrice) error {
	var err error
	r.v.with(func(st *state) {
		p, ok := st.products[productID]
		if !ok {
			err = domain.NotFound("producto", productID)
			return
		}
		seen := make(map[string]bool, len(prices))
		out := make([]entity.ProductPrice, 0, len(prices))
		for _, pr := range prices {
			if seen[pr.CurrencyID] {
				err = domain.Duplicate("precio en %s repetido", pr.CurrencyID)
				return
			}
			seen[pr.CurrencyID] = true
			pr.ProductID = productID
			out = append(out, pr)
		}
		sort.Slice(out, func(i, j int) bool { return out[i].CurrencyID < out[j].CurrencyID })
		p.Prices = out
		st.products[productID] = p
	})
	return err
}

func (r productRepo) List(_ context.Context, f repository.ProductFilter) ([]*entity.Product, error) {
	var all []*entity.Product
	search := strings.ToLower(f.Search)
	r.v.with(func(st *state) {
		for _, p := range st.products {
			if f.OnlyActive && !p.IsActive {
				continue
			}
			if search != "" &&
				!strings.Contains(strings.ToLower(p.Name), search) &&
				!strings.Contains(strings.ToLower(p.NameAlt), search) &&
				p.ISBN != f.Search && p.Barcode != f.Search {
				continue
			}
			p := p
			p.Prices = append([]entity.ProductPrice(nil), p.Prices...)
			all = append(all, &p)
		}
	})
	sort.Slice(all, func(i, j int) bool {
		if all[i].Name != all[j].Name {
			return all[i].Name < all[j].Name
		}
		return all[i].ID < all[j].ID
	})
	from, to := page(len(all), f.Limit, f.Offset)
	return all[from:to], nil
}

func (r productRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	r.v.with(func(st *state) {
		if p, ok := st.products[id]; ok {
			p.Prices = append([]entity.ProductPrice(nil), p.Prices...)
			out = &p
		}
	})
	return out, nil
}

// GetByBarcode coincide con Postgres: gana el código de barras sobre el ISBN y, a igual
// coincidencia, el id menor.
func (r productRepo) GetByBarcode(_ context.Context, code string) (*entity.Product, error) {
	if code == "" {
		return nil, nil
	}
	var out *entity.Product
	r.v.with(func(st *state) {
		var best *entity.Product
		bestByBarcode := false
		for _, p := range st.products {
			if !p.IsActive || (p.Barcode != code && p.ISBN != code) {
				continue
			}
			byBarcode := p.Barcode == code
			switch {
			case best == nil,
				byBarcode && !bestByBarcode,
				byBarcode == bestByBarcode && p.ID < best.ID:
				p := p
				best, bestByBarcode = &p, byBarcode
			}
		}
		if best != nil {
			best.Prices = append([]entity.ProductPrice(nil), best.Prices...)
			out = best
		}
	})
	return out, nil
}

func (r productRepo) UpdateCostPrice(_ context.Context, productID string, cost decimal.Decimal) error {
	var err error
	r.v.with(func(st *state) {
		p, ok := st.products[productID]
		if !ok {
			err = domain.NotFound("producto", productID)
			return
		}
		p.CostPrice = cost
		st.products[productID] = p
	})
	return err
}

// ── Stock ────────────────────────────────────────────────────────────────────

type stockRepo struct{ v view }

func (r stockRepo) Get(_ context.Context, productID, warehouseID string) (*entity.ProductStock, error) {
	out := &entity.ProductStock{ProductID: productID, WarehouseID: warehouseID}
	r.v.with(func(st *state) {
		if s, ok := st.stocks[stockKey{productID, warehouseID}]; ok {
			*out = s
		}
	})
	return out, nil
}

// GetForUpdate crea la fila en 0 si falta; el bloqueo lo da la transacción exclusiva de Run.
func (r stockRepo) GetForUpdate(_ context.Context, productID, warehouseID string) (*entity.ProductStock, error) {
	out := &entity.ProductStock{ProductID: productID, WarehouseID: warehouseID}
	r.v.with(func(st *state) {
		k := stockKey{productID, warehouseID}
		s, ok := st.stocks[k]
		if !ok {
			st.stocks[k] = *out
			return
		}
		*out = s
	})
	return out, nil
}

func (r stockRepo) Upsert(_ context.Context, s *entity.ProductStock) error {
	r.v.with(func(st *state) {
		st.stocks[stockKey{s.ProductID, s.WarehouseID}] = *s
	})
	return nil
}

func (r stockRepo) ListAtOrBelow(_ context.Context, warehouseID string, threshold int) ([]*entity.ProductStock, error) {
	var out []*entity.ProductStock
	r.v.with(func(st *state) {
		for _, s := range st.stocks {
			if warehouseID != "" && s.WarehouseID != warehouseID {
				continue
			}
			if s.Quantity <= threshold {
				s := s
				out = append(out, &s)
			}
		}
	})
	return out, nil
}

// ── Product movements ────────────────────────────────────────────────────────

type productMovementRepo struct{ v view }

func (r productMovementRepo) Create(_ context.Context, m *entity.ProductMovement) error {
	r.v.with(func(st *state) {
		st.productMovements = append(st.productMovements, *m)
	})
	return nil
}

func (r productMovementRepo) ListByProduct(_ context.Context, productID, warehouseID string, limit, offset int) ([]*entity.ProductMovement, error) {
	var all []*entity.ProductMovement
	r.v.with(func(st *state) {
		for _, m := range st.productMovements {
			if m.ProductID != productID || (warehouseID != "" && m.WarehouseID != warehouseID) {
				continue
			}
			m := m
			all = append(all, &m)
		}
	})
	from, to := page(len(all), limit, offset)
	return all[from:to], nil
}

// ── Cash registers ───────────────────────────────────────────────────────────

type registerRepo struct{ v view }

func (r registerRepo) Create(_ context.Context, c *entity.CashRegister) error {
	r.v.with(func(st *state) {
		st.registers[c.ID] = *c
	})
	return nil
}

func (r registerRepo) List(_ context.Context, branchID string) ([]*entity.CashRegister, error) {
	var out []*entity.CashRegister
	r.v.with(func(st *state) {
		for _, c := range st.registers {
			if branchID != "" && c.BranchID != branchID {
				continue
			}
			c := c
			out = append(out, &c)
		}
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r registerRepo) GetByID(_ context.Context, id string) (*entity.CashRegister, error) {
	var out *entity.CashRegister
	r.v.with(func(st *state) {
		if c, ok := st.registers[id]; ok {
			out = &c
		}
	})
	return out, nil
}

func (r registerRepo) GetForUpdate(ctx context.Context, id string) (*entity.CashRegister, error) {
	return r.GetByID(ctx, id)
}

func (r registerRepo) UpdateBalance(_ context.Context, id string, balance decimal.Decimal) error {
	var err error
	r.v.with(func(st *state) {
		c, ok := st.registers[id]
		if !ok {
			err = domain.NotFound("caja", id)
			return
		}
		c.Balance = balance
		st.registers[id] = c
	})
	return err
}

// ── Financial movements ──────────────────────────────────────────────────────

type financialMovementRepo struct{ v view }

func (r financialMovementRepo) Create(_ context.Context, m *entity.FinancialMovement) error {
	r.v.with(func(st *state) {
		st.financialMovements = append(st.financialMovements, *m)
	})
	return nil
}

func (r financialMovementRepo) ListByRegister(_ context.Context, registerID string, limit, offset int) ([]*entity.FinancialMovement, error) {
	var all []*entity.FinancialMovement
	r.v.with(func(st *state) {
		for _, m := range st.financialMovements {
			if m.CashRegisterID == registerID {
				m := m
				all = append(all, &m)
			}
		}
	})
	from, to := page(len(all), limit, offset)
	return all[from:to], nil
}

func (r financialMovementRepo) ListByReference(_ context.Context, referenceType, referenceID string) ([]*entity.FinancialMovement, error) {
	var out []*entity.FinancialMovement
	r.v.with(func(st *state) {
		for _, m := range st.financialMovements {
			if m.ReferenceType == referenceType && m.ReferenceID == referenceID {
				m := m
				out = append(out, &m)
			}
		}
	})
	return out, nil
}

// ── Sales ────────────────────────────────────────────────────────────────────

type saleRepo struct{ v view }

func (r saleRepo) Create(_ context.Context, s *entity.Sale) error {
	r.v.with(func(st *state) {
		h := *s
		h.Items = nil
		st.sales[s.ID] = h
		st.saleOrder = append(st.saleOrder, s.ID)
	})
	return nil
}

func (r saleRepo) CreateItem(_ context.Context, item *entity.SaleItem) error {
	var err error
	r.v.with(func(st *state) {
		if _, ok := st.sales[item.SaleID]; !ok {
			err = domain.NotFound("venta", item.SaleID)
			return
		}
		st.saleItems[item.SaleID] = append(st.saleItems[item.SaleID], *item)
	})
	return err
}

func (r saleRepo) GetByID(_ context.Context, id string) (*entity.Sale, error) {
	var out *entity.Sale
	r.v.with(func(st *state) {
		if s, ok := st.sales[id]; ok {
			s.Items = append([]entity.SaleItem(nil), st.saleItems[id]...)
			out = &s
		}
	})
	return out, nil
}

func (r saleRepo) List(_ context.Context, f repository.SaleFilter) ([]*entity.Sale, error) {
	var all []*entity.Sale
	r.v.with(func(st *state) {
		for i := len(st.saleOrder) - 1; i >= 0; i-- {
			s := st.sales[st.saleOrder[i]]
			if f.BranchID != "" && s.BranchID != f.BranchID {
				continue
			}
			if f.From != nil && s.CreatedAt.Before(*f.From) {
				continue
			}
			if f.To != nil && s.CreatedAt.After(*f.To) {
				continue
			}
			s.Items = append([]entity.SaleItem(nil), st.saleItems[s.ID]...)
			all = append(all, &s)
		}
	})
	from, to := page(len(all), f.Limit, f.Offset)
	return all[from:to], nil
}

// ── Purchases ────────────────────────────────────────────────────────────────

type purchaseRepo struct{ v view }

func (r purchaseRepo) Create(_ context.Context, p *entity.Purchase) error {
	r.v.with(func(st *state) {
		h := *p
		h.Items = nil
		st.purchases[p.ID] = h
		st.purchaseOrder = append(st.purchaseOrder, p.ID)
	})
	return nil
}

func (r purchaseRepo) CreateItem(_ context.Context, item *entity.PurchaseItem) error {
	var err error
	r.v.with(func(st *state) {
		if _, ok := st.purchases[item.PurchaseID]; !ok {
			err = domain.NotFound("compra", item.PurchaseID)
			return
		}
		st.purchaseItems[item.PurchaseID] = append(st.purchaseItems[item.PurchaseID], *item)
	})
	return err
}

func (r purchaseRepo) GetByID(_ context.Context, id string) (*entity.Purchase, error) {
	var out *entity.Purchase
	r.v.with(func(st *state) {
		if p, ok := st.purchases[id]; ok {
			p.Items = append([]entity.PurchaseItem(nil), st.purchaseItems[id]...)
			out = &p
		}
	})
	return out, nil
}

func (r purchaseRepo) GetForUpdate(ctx context.Context, id string) (*entity.Purchase, error) {
	return r.GetByID(ctx, id)
}

func (r purchaseRepo) UpdateStatus(_ context.Context, id, status string) error {
	var err error
	r.v.with(func(st *state) {
		p, ok := st.purchases[id]
		if !ok {
			err = domain.NotFound("compra", id)
			return
		}
		p.Status = status
		st.purchases[id] = p
	})
	return err
}

func (r purchaseRepo) List(_ context.Context, f repository.PurchaseFilter) ([]*entity.Purchase, error) {
	var all []*entity.Purchase
	r.v.with(func(st *state) {
		for i := len(st.purchaseOrder) - 1; i >= 0; i-- {
			p := st.purchases[st.purchaseOrder[i]]
			if f.Status != "" && !strings.EqualFold(p.Status, f.Status) {
				continue
			}
			if f.SupplierID != "" && p.SupplierID != f.SupplierID {
				continue
			}
			p.Items = append([]entity.PurchaseItem(nil), st.purchaseItems[p.ID]...)
			all = append(all, &p)
		}
	})
	from, to := page(len(all), f.Limit, f.Offset)
	return all[from:to], nil
}

// ── Funds & transfers ────────────────────────────────────────────────────────

type fundRepo struct{ v view }

func (r fundRepo) Create(_ context.Context, f *entity.CirculatingFund) error {
	r.v.with(func(st *state) {
		st.funds = append(st.funds, *f)
	})
	return nil
}

func (r fundRepo) List(_ context.Context, registerID, fundType string) ([]*entity.CirculatingFund, error) {
	var out []*entity.CirculatingFund
	r.v.with(func(st *state) {
		for i := len(st.funds) - 1; i >= 0; i-- {
			f := st.funds[i]
			if (registerID != "" && f.CashRegisterID != registerID) || (fundType != "" && f.Type != fundType) {
				continue
			}
			out = append(out, &f)
		}
	})
	return out, nil
}

type transferRepo struct{ v view }

func (r transferRepo) Create(_ context.Context, t *entity.MoneyTransfer) error {
	r.v.with(func(st *state) {
		st.transfers = append(st.transfers, *t)
	})
	return nil
}

func (r transferRepo) GetByID(_ context.Context, id string) (*entity.MoneyTransfer, error) {
	var out *entity.MoneyTransfer
	r.v.with(func(st *state) {
		for i := range st.transfers {
			if st.transfers[i].ID == id {
				t := st.transfers[i]
				out = &t
				return
			}
		}
	})
	return out, nil
}

func (r transferRepo) List(_ context.Context, limit, offset int) ([]*entity.MoneyTransfer, error) {
	var all []*entity.MoneyTransfer
	r.v.with(func(st *state) {
		for i := len(st.transfers) - 1; i >= 0; i-- {
			t := st.transfers[i]
			all = append(all, &t)
		}
	})
	from, to := page(len(all), limit, offset)
	return all[from:to], nil
}

// ── Catálogos de referencia ──────────────────────────────────────────────────

type warehouseRepo struct{ v view }

func (r warehouseRepo) Create(_ context.Context, w *entity.Warehouse) error {
	r.v.with(func(st *state) {
		st.warehouses[w.ID] = *w
	})
	return nil
}

func (r warehouseRepo) List(_ context.Context, branchID string) ([]*entity.Warehouse, error) {
	var out []*entity.Warehouse
	r.v.with(func(st *state) {
		for _, w := range st.warehouses {
			if branchID != "" && w.BranchID != branchID {
				continue
			}
			w := w
			out = append(out, &w)
		}
	})
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r warehouseRepo) GetByID(_ context.Context, id string) (*entity.Warehouse, error) {
	var out *entity.Warehouse
	r.v.with(func(st *state) {
		if w, ok := st.warehouses[id]; ok {
			out = &w
		}
	})
	return out, nil
}

type supplierRepo struct{ v view }

func (r supplierRepo) Create(_ context.Context, s *entity.Supplier) error {
	r.v.with(func(st *state) {
		st.suppliers[s.ID] = *s
	})
	return nil
}

func (r supplierRepo) List(_ context.Context) ([]*entity.Supplier, error) {
	var out []*entity.Supplier
	r.v.with(func(st *state) {
		for _, s := range st.suppliers {
			s := s
			out = append(out, &s)
		}
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r supplierRepo) GetByID(_ context.Context, id string) (*entity.Supplier, error) {
	var out *entity.Supplier
	r.v.with(func(st *state) {
		if s, ok := st.suppliers[id]; ok {
			out = &s
		}
	})
	return out, nil
}

// UserRepo repositorio de usuarios en memoria.
type UserRepo struct{ v view }

func (r UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	var out *entity.User
	r.v.with(func(st *state) {
		if u, ok := st.users[id]; ok {
			out = &u
		}
	})
	return out, nil
}

func (r UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	var out *entity.User
	r.v.with(func(st *state) {
		for _, u := range st.users {
			if strings.EqualFold(u.Email, email) {
				u := u
				out = &u
				return
			}
		}
	})
	return out, nil
}
