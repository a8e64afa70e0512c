//go:build integration

// Pruebas contra un PostgreSQL real. Se ejecutan con:
//
//	DATABASE_URL=postgres://... go test -tags integration ./internal/infrastructure/postgres/
package postgres_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/kitob-pos/internal/application/catalog"
	"github.com/jhoicas/kitob-pos/internal/application/dto"
	"github.com/jhoicas/kitob-pos/internal/application/ledger"
	"github.com/jhoicas/kitob-pos/internal/application/ports"
	"github.com/jhoicas/kitob-pos/internal/application/sales"
	"github.com/jhoicas/kitob-pos/internal/application/treasury"
	"github.com/jhoicas/kitob-pos/internal/domain"
	"github.com/jhoicas/kitob-pos/internal/domain/entity"
	"github.com/jhoicas/kitob-pos/internal/infrastructure/postgres"
)

type noReceipts struct{}

func (noReceipts) SaleReceiptPDF(*entity.Sale) ([]byte, error) { return nil, nil }

type pgFixture struct {
	tx       ports.TxRunner
	repos    ports.TxRepos
	products *catalog.ProductUseCase
	treasury *treasury.TreasuryUseCase
	sales    *sales.SaleUseCase
	userID   string
	whID     string
}

// newPGFixture aplica las migraciones y arma los casos de uso sobre la base de DATABASE_URL.
// Cada prueba crea sus propias filas con IDs nuevos, así que la base puede reutilizarse.
func newPGFixture(t *testing.T) *pgFixture {
	t.Helper()
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL no definido")
	}
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	for _, name := range []string{"001_settlement.sql", "002_catalog.sql"} {
		sql, err := os.ReadFile(filepath.Join("..", "..", "..", "migrations", name))
		require.NoError(t, err)
		_, err = pool.Exec(ctx, string(sql))
		require.NoError(t, err, name)
	}

	tx, repos := postgres.NewTxRunner(pool), postgres.NewRepos(pool)
	stock, balance := ledger.NewStockEngine(), ledger.NewBalanceEngine()
	f := &pgFixture{
		tx:       tx,
		repos:    repos,
		products: catalog.NewProductUseCase(tx, repos, stock, nil),
		treasury: treasury.NewTreasuryUseCase(tx, repos, balance, nil),
		sales: sales.NewSaleUseCase(tx, repos, stock, balance,
			ledger.NewEventPublisher(nil, nil, 5), noReceipts{}, false, nil),
		userID: uuid.New().String(),
	}

	wh, err := catalog.NewWarehouseUseCase(repos.Warehouses).Create(ctx, dto.CreateWarehouseRequest{BranchID: "b-it", Name: "Integración"})
	require.NoError(t, err)
	f.whID = wh.ID
	return f
}

func (f *pgFixture) register(t *testing.T, opening string) string {
	t.Helper()
	reg, err := f.treasury.CreateRegister(context.Background(), f.userID, dto.CreateCashRegisterRequest{
		Name: "Kassa", BranchID: "b-it", CurrencyID: "UZS", OpeningBalance: decimal.RequireFromString(opening),
	})
	require.NoError(t, err)
	return reg.ID
}

func (f *pgFixture) product(t *testing.T, qty int) string {
	t.Helper()
	p, err := f.products.Create(context.Background(), f.userID, dto.CreateProductRequest{
		Name:         "Kitob " + uuid.NewString()[:8],
		Barcode:      uuid.NewString(),
		CostPrice:    decimal.NewFromInt(3000),
		Prices:       []dto.ProductPriceRequest{{CurrencyID: "UZS", Price: decimal.RequireFromString("5000.25")}},
		InitialStock: []dto.InitialStockRequest{{WarehouseID: f.whID, Quantity: qty}},
	})
	require.NoError(t, err)
	return p.ID
}

// assertBalanceMatchesLog: el saldo guardado es la suma de la bitácora, con el mismo redondeo de la columna.
func (f *pgFixture) assertBalanceMatchesLog(t *testing.T, regID string) decimal.Decimal {
	t.Helper()
	ctx := context.Background()
	movs, err := f.repos.FinancialMovements.ListByRegister(ctx, regID, 0, 0)
	require.NoError(t, err)
	sum := decimal.Zero
	for _, m := range movs {
		sum = sum.Add(m.Signed())
	}
	reg, err := f.repos.Registers.GetByID(ctx, regID)
	require.NoError(t, err)
	require.NotNil(t, reg)
	assert.True(t, reg.Balance.Equal(sum), "caja %s: saldo %s, bitácora %s", regID, reg.Balance, sum)
	return reg.Balance
}

func (f *pgFixture) assertStockMatchesLog(t *testing.T, productID string) int {
	t.Helper()
	ctx := context.Background()
	movs, err := f.repos.ProductMovements.ListByProduct(ctx, productID, f.whID, 0, 0)
	require.NoError(t, err)
	sum := 0
	for _, m := range movs {
		sum += m.Quantity
	}
	st, err := f.repos.Stocks.Get(ctx, productID, f.whID)
	require.NoError(t, err)
	require.NotNil(t, st)
	assert.Equal(t, sum, st.Quantity)
	return st.Quantity
}

func TestPG_VentasConcurrentesNoSobrevenden(t *testing.T) {
	f := newPGFixture(t)
	regID := f.register(t, "1000.50")
	prodID := f.product(t, 10)

	const workers = 16
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		ok, fail int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.sales.Create(context.Background(), f.userID, dto.CreateSaleRequest{
				BranchID: "b-it", CashRegisterID: regID, CurrencyID: "UZS", PaymentTypeID: "cash", WarehouseID: f.whID,
				Items: []dto.SaleItemRequest{{ProductID: prodID, Quantity: 1}},
			})
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				ok++
				return
			}
			assert.ErrorIs(t, err, domain.ErrInsufficientStock)
			fail++
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, ok)
	assert.Equal(t, workers-10, fail)
	assert.Equal(t, 0, f.assertStockMatchesLog(t, prodID))
	bal := f.assertBalanceMatchesLog(t, regID)
	assert.True(t, bal.Equal(decimal.RequireFromString("51003.00")), "1000.50 + 10 × 5000.25, saldo %s", bal)
}

func TestPG_TrasladosCruzadosConservanTotal(t *testing.T) {
	f := newPGFixture(t)
	a, b := f.register(t, "10000"), f.register(t, "10000")

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		from, to := a, b
		if i%2 == 1 {
			from, to = b, a
		}
		wg.Add(1)
		go func(from, to string) {
			defer wg.Done()
			_, err := f.treasury.Transfer(context.Background(), f.userID, dto.TransferRequest{
				FromRegisterID: from, ToRegisterID: to, Amount: decimal.RequireFromString("123.45"),
			})
			assert.NoError(t, err)
		}(from, to)
	}
	wg.Wait()

	total := f.assertBalanceMatchesLog(t, a).Add(f.assertBalanceMatchesLog(t, b))
	assert.True(t, total.Equal(decimal.NewFromInt(20000)), "total %s", total)
}

func TestPG_RechazosSinEscrituras(t *testing.T) {
	f := newPGFixture(t)
	ctx := context.Background()
	regID := f.register(t, "100")

	_, err := f.treasury.Deposit(ctx, f.userID, dto.FundRequest{CashRegisterID: regID, Amount: decimal.RequireFromString("0.005")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.treasury.GetRegister(ctx, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrNotFound)

	prodID := f.product(t, 1)
	p, err := f.products.GetByID(ctx, prodID)
	require.NoError(t, err)
	_, err = f.products.Create(ctx, f.userID, dto.CreateProductRequest{
		Name: "Otro", Barcode: p.Barcode,
		InitialStock: []dto.InitialStockRequest{{WarehouseID: f.whID, Quantity: 5}},
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	assert.Equal(t, 1, f.assertStockMatchesLog(t, prodID))
	assert.True(t, f.assertBalanceMatchesLog(t, regID).Equal(decimal.NewFromInt(100)))
}
