package catalog_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/kitob-pos/internal/application/catalog"
	"github.com/jhoicas/kitob-pos/internal/application/dto"
	"github.com/jhoicas/kitob-pos/internal/application/ledger"
	"github.com/jhoicas/kitob-pos/internal/domain"
	"github.com/jhoicas/kitob-pos/internal/domain/entity"
	"github.com/jhoicas/kitob-pos/internal/infrastructure/memory"
)

const (
	prodMissing = "10000000-0000-4000-8000-000000000404"
	wh1         = "20000000-0000-4000-8000-000000000001"
	wh2         = "20000000-0000-4000-8000-000000000002"
	whMissing   = "20000000-0000-4000-8000-000000000404"
	user1       = "50000000-0000-4000-8000-000000000001"
)

func uzs(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func setup(t *testing.T) (*memory.Store, *catalog.ProductUseCase) {
	t.Helper()
	store := memory.New()
	store.PutWarehouse(entity.Warehouse{ID: wh1, Name: "Markaz", IsActive: true})
	store.PutWarehouse(entity.Warehouse{ID: wh2, Name: "Chilonzor", IsActive: true})
	return store, catalog.NewProductUseCase(store, store.Repos(), ledger.NewStockEngine(), nil)
}

func newBook(barcode string) dto.CreateProductRequest {
	return dto.CreateProductRequest{
		Name:      "O'tkan kunlar",
		ISBN:      "9789943000011",
		Barcode:   barcode,
		CostPrice: uzs(45000),
		Prices: []dto.ProductPriceRequest{
			{CurrencyID: "UZS", Price: uzs(65000)},
			{CurrencyID: "USD", Price: decimal.RequireFromString("5.50")},
		},
	}
}

// ─── Alta de producto ─────────────────────────────────────────────────────────

func TestCreateProduct_PreciosYStockDeApertura(t *testing.T) {
	store, uc := setup(t)
	ctx := context.Background()

	in := newBook("4780000000011")
	in.InitialStock = []dto.InitialStockRequest{{WarehouseID: wh1, Quantity: 12}, {WarehouseID: wh2, Quantity: 3}}
	out, err := uc.Create(ctx, user1, in)
	require.NoError(t, err)
	assert.True(t, out.IsActive)
	assert.True(t, out.CostPrice.Equal(uzs(45000)))
	require.Len(t, out.Prices, 2)

	st, err := store.Repos().Stocks.Get(ctx, out.ID, wh1)
	require.NoError(t, err)
	assert.Equal(t, 12, st.Quantity)

	movs, err := store.Repos().ProductMovements.ListByProduct(ctx, out.ID, "", 0, 0)
	require.NoError(t, err)
	require.Len(t, movs, 2)
	for _, m := range movs {
		assert.Equal(t, entity.MovementADJUSTMENT, m.Type)
		assert.Equal(t, m.Quantity, m.QuantityAfter, "la apertura parte de 0")
		assert.Equal(t, user1, m.UserID)
	}

	got, err := uc.GetByID(ctx, out.ID)
	require.NoError(t, err)
	assert.Equal(t, "4780000000011", got.Barcode)
}

func TestCreateProduct_CodigoDeBarrasRepetido_Duplicate(t *testing.T) {
	store, uc := setup(t)
	ctx := context.Background()

	_, err := uc.Create(ctx, user1, newBook("4780000000011"))
	require.NoError(t, err)

	in := newBook("4780000000011")
	in.InitialStock = []dto.InitialStockRequest{{WarehouseID: wh1, Quantity: 5}}
	_, err = uc.Create(ctx, user1, in)
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	list, err := uc.List(ctx, dto.ProductFilterRequest{})
	require.NoError(t, err)
	assert.Len(t, list.Items, 1)
	low, err := store.Repos().Stocks.ListAtOrBelow(ctx, wh1, 100)
	require.NoError(t, err)
	assert.Empty(t, low, "el alta rechazada no deja stock")
}

func TestCreateProduct_BodegaInexistente_SinEscrituras(t *testing.T) {
	_, uc := setup(t)
	ctx := context.Background()

	in := newBook("4780000000011")
	in.InitialStock = []dto.InitialStockRequest{{WarehouseID: wh1, Quantity: 5}, {WarehouseID: whMissing, Quantity: 1}}
	_, err := uc.Create(ctx, user1, in)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := uc.List(ctx, dto.ProductFilterRequest{})
	require.NoError(t, err)
	assert.Empty(t, list.Items)
}

func TestCreateProduct_Validacion(t *testing.T) {
	_, uc := setup(t)
	ctx := context.Background()

	in := newBook("")
	in.Prices = append(in.Prices, dto.ProductPriceRequest{CurrencyID: "UZS", Price: uzs(1)})
	_, err := uc.Create(ctx, user1, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "moneda repetida")

	in = newBook("")
	in.Prices[0].Price = decimal.RequireFromString("65000.001")
	_, err = uc.Create(ctx, user1, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	in = newBook("")
	in.InitialStock = []dto.InitialStockRequest{{WarehouseID: "w-1", Quantity: 1}}
	_, err = uc.Create(ctx, user1, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	in = newBook("")
	in.Name = ""
	_, err = uc.Create(ctx, user1, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ─── Cambios ──────────────────────────────────────────────────────────────────

func TestUpdateProduct_ReemplazaPrecios(t *testing.T) {
	_, uc := setup(t)
	ctx := context.Background()

	created, err := uc.Create(ctx, user1, newBook("4780000000011"))
	require.NoError(t, err)

	name := "O'tkan kunlar (2-nashr)"
	prices := []dto.ProductPriceRequest{{CurrencyID: "UZS", Price: uzs(70000)}}
	out, err := uc.Update(ctx, created.ID, dto.UpdateProductRequest{Name: &name, Prices: &prices})
	require.NoError(t, err)
	assert.Equal(t, name, out.Name)
	require.Len(t, out.Prices, 1)
	assert.True(t, out.Prices[0].Price.Equal(uzs(70000)))
	assert.True(t, out.CostPrice.Equal(uzs(45000)), "el costo no cambia al editar")

	inactive := false
	out, err = uc.Update(ctx, created.ID, dto.UpdateProductRequest{IsActive: &inactive})
	require.NoError(t, err)
	assert.False(t, out.IsActive)
	assert.Len(t, out.Prices, 1, "sin prices la lista queda igual")
}

func TestUpdateProduct_CodigoAjeno_RollbackDePrecios(t *testing.T) {
	_, uc := setup(t)
	ctx := context.Background()

	_, err := uc.Create(ctx, user1, newBook("4780000000011"))
	require.NoError(t, err)
	second, err := uc.Create(ctx, user1, newBook("4780000000028"))
	require.NoError(t, err)

	taken := "4780000000011"
	prices := []dto.ProductPriceRequest{{CurrencyID: "UZS", Price: uzs(1)}}
	_, err = uc.Update(ctx, second.ID, dto.UpdateProductRequest{Barcode: &taken, Prices: &prices})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	got, err := uc.GetByID(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, "4780000000028", got.Barcode)
	assert.Len(t, got.Prices, 2)
}

func TestUpdateProduct_NoExiste(t *testing.T) {
	_, uc := setup(t)
	name := "x"
	_, err := uc.Update(context.Background(), prodMissing, dto.UpdateProductRequest{Name: &name})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.GetByID(context.Background(), prodMissing)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListProducts_BusquedaYActivos(t *testing.T) {
	_, uc := setup(t)
	ctx := context.Background()

	a := newBook("4780000000011")
	a.Name = "Alpomish"
	_, err := uc.Create(ctx, user1, a)
	require.NoError(t, err)
	b := newBook("4780000000028")
	b.Name = "Boburnoma"
	created, err := uc.Create(ctx, user1, b)
	require.NoError(t, err)
	inactive := false
	_, err = uc.Update(ctx, created.ID, dto.UpdateProductRequest{IsActive: &inactive})
	require.NoError(t, err)

	all, err := uc.List(ctx, dto.ProductFilterRequest{})
	require.NoError(t, err)
	require.Len(t, all.Items, 2)
	assert.Equal(t, "Alpomish", all.Items[0].Name)
	assert.Equal(t, 20, all.Page.Limit)

	active, err := uc.List(ctx, dto.ProductFilterRequest{OnlyActive: true})
	require.NoError(t, err)
	require.Len(t, active.Items, 1)

	byName, err := uc.List(ctx, dto.ProductFilterRequest{Search: "bobur"})
	require.NoError(t, err)
	require.Len(t, byName.Items, 1)
	assert.Equal(t, created.ID, byName.Items[0].ID)

	byBarcode, err := uc.List(ctx, dto.ProductFilterRequest{Search: "4780000000011"})
	require.NoError(t, err)
	require.Len(t, byBarcode.Items, 1)

	_, err = uc.List(ctx, dto.ProductFilterRequest{PageRequest: dto.PageRequest{Limit: 500}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ─── Bodegas y proveedores ────────────────────────────────────────────────────

func TestWarehouse_CrearConsultarListar(t *testing.T) {
	store := memory.New()
	uc := catalog.NewWarehouseUseCase(store.Repos().Warehouses)
	ctx := context.Background()

	out, err := uc.Create(ctx, dto.CreateWarehouseRequest{BranchID: "b-1", Name: "Markaz", Address: "Toshkent"})
	require.NoError(t, err)
	assert.True(t, out.IsActive)

	got, err := uc.GetByID(ctx, out.ID)
	require.NoError(t, err)
	assert.Equal(t, "Toshkent", got.Address)

	_, err = uc.Create(ctx, dto.CreateWarehouseRequest{BranchID: "b-2", Name: "Samarqand"})
	require.NoError(t, err)
	list, err := uc.List(ctx, "b-1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, out.ID, list[0].ID)

	_, err = uc.GetByID(ctx, whMissing)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = uc.Create(ctx, dto.CreateWarehouseRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSupplier_CrearYListar(t *testing.T) {
	store := memory.New()
	uc := catalog.NewSupplierUseCase(store.Repos().Suppliers)
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreateSupplierRequest{Name: "Sharq", Email: "info@sharq.uz"})
	require.NoError(t, err)
	_, err = uc.Create(ctx, dto.CreateSupplierRequest{Name: "Akademnashr"})
	require.NoError(t, err)

	list, err := uc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Akademnashr", list[0].Name)

	_, err = uc.Create(ctx, dto.CreateSupplierRequest{Name: "X", Email: "no-es-correo"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
