package purchasing_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/kitob-pos/internal/application/dto"
	"github.com/jhoicas/kitob-pos/internal/application/ledger"
	"github.com/jhoicas/kitob-pos/internal/application/purchasing"
	"github.com/jhoicas/kitob-pos/internal/domain"
	"github.com/jhoicas/kitob-pos/internal/domain/entity"
	"github.com/jhoicas/kitob-pos/internal/infrastructure/memory"
)

const (
	prod1           = "10000000-0000-4000-8000-000000000001"
	prod2           = "10000000-0000-4000-8000-000000000002"
	wh1             = "20000000-0000-4000-8000-000000000001"
	wh2             = "20000000-0000-4000-8000-000000000002"
	whMissing       = "20000000-0000-4000-8000-000000000404"
	sup1            = "40000000-0000-4000-8000-000000000001"
	supMissing      = "40000000-0000-4000-8000-000000000404"
	user1           = "50000000-0000-4000-8000-000000000001"
	user2           = "50000000-0000-4000-8000-000000000002"
	purchaseMissing = "60000000-0000-4000-8000-000000000404"
)

func setup(t *testing.T) (*memory.Store, *purchasing.PurchaseUseCase) {
	t.Helper()
	store := memory.New()
	store.PutSupplier(entity.Supplier{ID: sup1, Name: "Sharq nashriyoti"})
	store.PutWarehouse(entity.Warehouse{ID: wh1, Name: "Markaz", IsActive: true})
	store.PutWarehouse(entity.Warehouse{ID: wh2, Name: "Yunusobod", IsActive: true})
	store.PutProduct(entity.Product{ID: prod1, Name: "Alpomish", CostPrice: decimal.NewFromInt(2000), IsActive: true})
	store.PutProduct(entity.Product{ID: prod2, Name: "Kecha va kunduz", CostPrice: decimal.NewFromInt(4000), IsActive: true})
	store.PutStock(prod1, wh1, 3)
	return store, purchasing.NewPurchaseUseCase(store, store.Repos(), ledger.NewStockEngine(), nil)
}

func twoLinePurchase() dto.CreatePurchaseRequest {
	return dto.CreatePurchaseRequest{
		SupplierID: sup1,
		CurrencyID: "UZS",
		Items: []dto.PurchaseItemRequest{
			{ProductID: prod1, WarehouseID: wh1, Quantity: 10, UnitPrice: decimal.NewFromInt(2500)},
			{ProductID: prod2, WarehouseID: wh2, Quantity: 4, UnitPrice: decimal.NewFromInt(3500)},
		},
	}
}

func qty(t *testing.T, store *memory.Store, productID, warehouseID string) int {
	t.Helper()
	st, err := store.Repos().Stocks.Get(context.Background(), productID, warehouseID)
	require.NoError(t, err)
	return st.Quantity
}

func cost(t *testing.T, store *memory.Store, productID string) decimal.Decimal {
	t.Helper()
	p, err := store.Repos().Products.GetByID(context.Background(), productID)
	require.NoError(t, err)
	return p.CostPrice
}

func TestCreate_QuedaPendienteSinTocarStock(t *testing.T) {
	store, uc := setup(t)

	out, err := uc.Create(context.Background(), user1, twoLinePurchase())
	require.NoError(t, err)
	assert.Equal(t, entity.PurchasePending, out.Status)
	assert.True(t, out.TotalAmount.Equal(decimal.NewFromInt(39000)), "total %s", out.TotalAmount)
	assert.Len(t, out.Items, 2)
	assert.Equal(t, 3, qty(t, store, prod1, wh1))
	assert.Equal(t, 0, qty(t, store, prod2, wh2))
}

func TestCreate_ReferenciasInexistentes_NotFound(t *testing.T) {
	_, uc := setup(t)
	ctx := context.Background()

	req := twoLinePurchase()
	req.SupplierID = supMissing
	_, err := uc.Create(ctx, user1, req)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	req = twoLinePurchase()
	req.Items[1].WarehouseID = whMissing
	_, err = uc.Create(ctx, user1, req)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := uc.List(ctx, dto.PurchaseFilterRequest{})
	require.NoError(t, err)
	assert.Empty(t, list.Items, "las compras fallidas no quedan guardadas")
}

func TestReceive_IngresaStockYActualizaCosto(t *testing.T) {
	store, uc := setup(t)
	ctx := context.Background()
	p, err := uc.Create(ctx, user1, twoLinePurchase())
	require.NoError(t, err)

	out, err := uc.Receive(ctx, user2, p.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PurchaseReceived, out.Status)

	assert.Equal(t, 13, qty(t, store, prod1, wh1))
	assert.Equal(t, 4, qty(t, store, prod2, wh2))
	assert.True(t, cost(t, store, prod1).Equal(decimal.NewFromInt(2500)))
	assert.True(t, cost(t, store, prod2).Equal(decimal.NewFromInt(3500)))

	movs1, _ := store.Repos().ProductMovements.ListByProduct(ctx, prod1, wh1, 0, 0)
	movs2, _ := store.Repos().ProductMovements.ListByProduct(ctx, prod2, wh2, 0, 0)
	require.Len(t, movs1, 2)
	require.Len(t, movs2, 1)
	for _, m := range []*entity.ProductMovement{movs1[1], movs2[0]} {
		assert.Equal(t, entity.MovementIN, m.Type)
		assert.Equal(t, entity.ReferencePurchase, m.ReferenceType)
		assert.Equal(t, p.ID, m.ReferenceID)
		assert.Equal(t, user2, m.UserID)
	}
	assert.Equal(t, 13, movs1[1].QuantityAfter)
	assert.Equal(t, 4, movs2[0].QuantityAfter)
}

func TestReceive_DosVeces_InvalidStateSinEfectos(t *testing.T) {
	store, uc := setup(t)
	ctx := context.Background()
	p, err := uc.Create(ctx, user1, twoLinePurchase())
	require.NoError(t, err)
	_, err = uc.Receive(ctx, user1, p.ID)
	require.NoError(t, err)

	_, err = uc.Receive(ctx, user1, p.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
	assert.Equal(t, 13, qty(t, store, prod1, wh1))
	assert.True(t, cost(t, store, prod1).Equal(decimal.NewFromInt(2500)))
	movs, _ := store.Repos().ProductMovements.ListByProduct(ctx, prod1, wh1, 0, 0)
	assert.Len(t, movs, 2)
}

func TestCancel_Transiciones(t *testing.T) {
	store, uc := setup(t)
	ctx := context.Background()

	pending, err := uc.Create(ctx, user1, twoLinePurchase())
	require.NoError(t, err)
	out, err := uc.Cancel(ctx, pending.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PurchaseCancelled, out.Status)

	_, err = uc.Receive(ctx, user1, pending.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState, "una compra cancelada no se recibe")
	_, err = uc.Cancel(ctx, pending.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
	assert.Equal(t, 3, qty(t, store, prod1, wh1))

	received, err := uc.Create(ctx, user1, twoLinePurchase())
	require.NoError(t, err)
	_, err = uc.Receive(ctx, user1, received.ID)
	require.NoError(t, err)
	_, err = uc.Cancel(ctx, received.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	_, err = uc.Cancel(ctx, purchaseMissing)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestList_FiltraPorEstado(t *testing.T) {
	_, uc := setup(t)
	ctx := context.Background()
	a, err := uc.Create(ctx, user1, twoLinePurchase())
	require.NoError(t, err)
	_, err = uc.Create(ctx, user1, twoLinePurchase())
	require.NoError(t, err)
	_, err = uc.Receive(ctx, user1, a.ID)
	require.NoError(t, err)

	received, err := uc.List(ctx, dto.PurchaseFilterRequest{Status: entity.PurchaseReceived})
	require.NoError(t, err)
	require.Len(t, received.Items, 1)
	assert.Equal(t, a.ID, received.Items[0].ID)

	got, err := uc.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PurchaseReceived, got.Status)

	_, err = uc.List(ctx, dto.PurchaseFilterRequest{Status: "LOST"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
