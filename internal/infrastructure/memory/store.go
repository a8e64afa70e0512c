// Package memory implementa los puertos de persistencia en memoria.
// Se usa en modo desarrollo (STORE_DRIVER=memory) y en los tests de liquidación.
// Las transacciones se serializan con un único mutex y el Rollback restaura una copia del estado.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/jhoicas/kitob-pos/internal/application/ports"
	"github.com/jhoicas/kitob-pos/internal/domain/entity"
)

var _ ports.TxRunner = (*Store)(nil)

type stockKey struct {
	productID   string
	warehouseID string
}

type state struct {
	products           map[string]entity.Product
	stocks             map[stockKey]entity.ProductStock
	productMovements   []entity.ProductMovement
	registers          map[string]entity.CashRegister
	financialMovements []entity.FinancialMovement
	sales              map[string]entity.Sale
	saleOrder          []string
	saleItems          map[string][]entity.SaleItem
	purchases          map[string]entity.Purchase
	purchaseOrder      []string
	purchaseItems      map[string][]entity.PurchaseItem
	funds              []entity.CirculatingFund
	transfers          []entity.MoneyTransfer
	warehouses         map[string]entity.Warehouse
	suppliers          map[string]entity.Supplier
	users              map[string]entity.User
}

func newState() *state {
	return &state{
		products:      map[string]entity.Product{},
		stocks:        map[stockKey]entity.ProductStock{},
		registers:     map[string]entity.CashRegister{},
		sales:         map[string]entity.Sale{},
		saleItems:     map[string][]entity.SaleItem{},
		purchases:     map[string]entity.Purchase{},
		purchaseItems: map[string][]entity.PurchaseItem{},
		warehouses:    map[string]entity.Warehouse{},
		suppliers:     map[string]entity.Supplier{},
		users:         map[string]entity.User{},
	}
}

// clone copia profunda para poder descartar los cambios de una transacción fallida.
func (st *state) clone() *state {
	c := newState()
	for k, v := range st.products {
		v.Prices = append([]entity.ProductPrice(nil), v.Prices...)
		c.products[k] = v
	}
	for k, v := range st.stocks {
		c.stocks[k] = v
	}
	c.productMovements = append([]entity.ProductMovement(nil), st.productMovements...)
	for k, v := range st.registers {
		c.registers[k] = v
	}
	c.financialMovements = append([]entity.FinancialMovement(nil), st.financialMovements...)
	for k, v := range st.sales {
		c.sales[k] = v
	}
	c.saleOrder = append([]string(nil), st.saleOrder...)
	for k, v := range st.saleItems {
		c.saleItems[k] = append([]entity.SaleItem(nil), v...)
	}
	for k, v := range st.purchases {
		c.purchases[k] = v
	}
	c.purchaseOrder = append([]string(nil), st.purchaseOrder...)
	for k, v := range st.purchaseItems {
		c.purchaseItems[k] = append([]entity.PurchaseItem(nil), v...)
	}
	c.funds = append([]entity.CirculatingFund(nil), st.funds...)
	c.transfers = append([]entity.MoneyTransfer(nil), st.transfers...)
	for k, v := range st.warehouses {
		c.warehouses[k] = v
	}
	for k, v := range st.suppliers {
		c.suppliers[k] = v
	}
	for k, v := range st.users {
		c.users[k] = v
	}
	return c
}

// Store almacén en memoria; implementa ports.TxRunner y expone repos fuera de transacción con Repos().
type Store struct {
	mu   sync.Mutex
	data *state
}

// New crea un almacén vacío.
func New() *Store {
	return &Store{data: newState()}
}

// Run ejecuta fn con repos atados a una transacción exclusiva; si fn falla se restaura el estado previo.
func (s *Store) Run(ctx context.Context, fn func(ctx context.Context, repos ports.TxRepos) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.data.clone()
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := fn(ctx, s.repos(true)); err != nil {
		s.data = snapshot
		return err
	}
	return nil
}

// Repos devuelve repositorios que toman el lock en cada llamada (lecturas fuera de transacción).
func (s *Store) Repos() ports.TxRepos {
	return s.repos(false)
}

func (s *Store) repos(inTx bool) ports.TxRepos {
	v := view{s: s, inTx: inTx}
	return ports.TxRepos{
		Products:           productRepo{v},
		Stocks:             stockRepo{v},
		ProductMovements:   productMovementRepo{v},
		Registers:          registerRepo{v},
		FinancialMovements: financialMovementRepo{v},
		Sales:              saleRepo{v},
		Purchases:          purchaseRepo{v},
		Funds:              fundRepo{v},
		Transfers:          transferRepo{v},
		Warehouses:         warehouseRepo{v},
		Suppliers:          supplierRepo{v},
	}
}

// Users devuelve el repositorio de usuarios (para login).
func (s *Store) Users() UserRepo {
	return UserRepo{view{s: s}}
}

// view da acceso al estado actual, tomando el lock si no se está dentro de Run.
type view struct {
	s    *Store
	inTx bool
}

func (v view) with(fn func(st *state)) {
	if !v.inTx {
		v.s.mu.Lock()
		defer v.s.mu.Unlock()
	}
	fn(v.s.data)
}

// ── Carga de datos (seed) ─────────────────────────────────────────────────────

// PutProduct crea o reemplaza un producto con su lista de precios.
func (s *Store) PutProduct(p entity.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p.Prices = append([]entity.ProductPrice(nil), p.Prices...)
	s.data.products[p.ID] = p
}

// PutWarehouse crea o reemplaza una bodega.
func (s *Store) PutWarehouse(w entity.Warehouse) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.warehouses[w.ID] = w
}

// PutSupplier crea o reemplaza un proveedor.
func (s *Store) PutSupplier(sp entity.Supplier) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.suppliers[sp.ID] = sp
}

// PutUser crea o reemplaza un usuario.
func (s *Store) PutUser(u entity.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.users[u.ID] = u
}

// PutRegister crea una caja. El saldo inicial se registra como movimiento INFLOW de ajuste
// para que la bitácora reproduzca el saldo desde 0.
func (s *Store) PutRegister(r entity.CashRegister) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.registers[r.ID] = r
	if !r.Balance.IsZero() {
		t := entity.FinancialINFLOW
		if r.Balance.IsNegative() {
			t = entity.FinancialOUTFLOW
		}
		s.data.financialMovements = append(s.data.financialMovements, entity.FinancialMovement{
			ID:             uuid.New().String(),
			CashRegisterID: r.ID,
			CurrencyID:     r.CurrencyID,
			Type:           t,
			Amount:         r.Balance.Abs(),
			BalanceAfter:   r.Balance,
			ReferenceType:  entity.ReferenceAdjustment,
			Note:           "saldo inicial",
			CreatedAt:      r.CreatedAt,
		})
	}
}

// PutStock fija la cantidad inicial de un producto en una bodega y deja el movimiento de ajuste
// correspondiente, de modo que la suma de deltas reproduzca la cantidad.
func (s *Store) PutStock(productID, warehouseID string, qty int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := stockKey{productID, warehouseID}
	prev := s.data.stocks[k].Quantity
	s.data.stocks[k] = entity.ProductStock{ProductID: productID, WarehouseID: warehouseID, Quantity: qty}
	s.data.productMovements = append(s.data.productMovements, entity.ProductMovement{
		ID:            uuid.New().String(),
		ProductID:     productID,
		WarehouseID:   warehouseID,
		Type:          entity.MovementADJUSTMENT,
		Quantity:      qty - prev,
		QuantityAfter: qty,
		Note:          "stock inicial",
	})
}
