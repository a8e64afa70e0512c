package treasury_test

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/kitob-pos/internal/application/dto"
	"github.com/jhoicas/kitob-pos/internal/application/ledger"
	"github.com/jhoicas/kitob-pos/internal/application/treasury"
	"github.com/jhoicas/kitob-pos/internal/domain"
	"github.com/jhoicas/kitob-pos/internal/domain/entity"
	"github.com/jhoicas/kitob-pos/internal/infrastructure/memory"
)

const (
	reg1       = "30000000-0000-4000-8000-000000000001"
	reg2       = "30000000-0000-4000-8000-000000000002"
	regMissing = "30000000-0000-4000-8000-000000000404"
	user1      = "50000000-0000-4000-8000-000000000001"
)

func amount(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func setup(t *testing.T) (*memory.Store, *treasury.TreasuryUseCase) {
	t.Helper()
	store := memory.New()
	store.PutRegister(entity.CashRegister{ID: reg1, Name: "Kassa 1", CurrencyID: "UZS", Balance: amount(100000), IsActive: true})
	store.PutRegister(entity.CashRegister{ID: reg2, Name: "Kassa 2", CurrencyID: "UZS", Balance: amount(5000), IsActive: true})
	return store, treasury.NewTreasuryUseCase(store, store.Repos(), ledger.NewBalanceEngine(), nil)
}

func balance(t *testing.T, store *memory.Store, id string) decimal.Decimal {
	t.Helper()
	reg, err := store.Repos().Registers.GetByID(context.Background(), id)
	require.NoError(t, err)
	return reg.Balance
}

func assertBalanceMatchesLog(t *testing.T, store *memory.Store, id string) {
	t.Helper()
	movs, err := store.Repos().FinancialMovements.ListByRegister(context.Background(), id, 0, 0)
	require.NoError(t, err)
	sum := decimal.Zero
	for _, m := range movs {
		sum = sum.Add(m.Signed())
		assert.True(t, m.BalanceAfter.Equal(sum))
		assert.False(t, m.Amount.IsNegative())
	}
	assert.True(t, balance(t, store, id).Equal(sum), "caja %s", id)
}

// ─── Fondo circulante ─────────────────────────────────────────────────────────

func TestWithdraw_EscenarioNumerico(t *testing.T) {
	store, uc := setup(t)
	ctx := context.Background()

	out, err := uc.Withdraw(ctx, user1, dto.FundRequest{CashRegisterID: reg1, Amount: amount(30000)})
	require.NoError(t, err)
	assert.True(t, out.BalanceAfter.Equal(amount(70000)))
	assert.True(t, balance(t, store, reg1).Equal(amount(70000)))

	movs, err := store.Repos().FinancialMovements.ListByReference(ctx, entity.ReferenceFund, out.ID)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.FinancialOUTFLOW, movs[0].Type)
	assert.True(t, movs[0].Amount.Equal(amount(30000)))
	assert.True(t, movs[0].BalanceAfter.Equal(amount(70000)))

	_, err = uc.Withdraw(ctx, user1, dto.FundRequest{CashRegisterID: reg1, Amount: amount(80000)})
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
	assert.True(t, balance(t, store, reg1).Equal(amount(70000)))

	funds, err := uc.ListFunds(ctx, reg1, "")
	require.NoError(t, err)
	assert.Len(t, funds, 1, "el retiro rechazado no deja registro")
	assertBalanceMatchesLog(t, store, reg1)
}

func TestWithdraw_SaldoExactoQuedaEnCero(t *testing.T) {
	store, uc := setup(t)

	_, err := uc.Withdraw(context.Background(), user1, dto.FundRequest{CashRegisterID: reg2, Amount: amount(5000)})
	require.NoError(t, err)
	assert.True(t, balance(t, store, reg2).IsZero())
}

func TestDeposit_SumaYQuedaEnlazado(t *testing.T) {
	store, uc := setup(t)
	ctx := context.Background()

	out, err := uc.Deposit(ctx, user1, dto.FundRequest{CashRegisterID: reg2, Amount: amount(2500), DepositorName: "Aziz"})
	require.NoError(t, err)
	assert.Equal(t, entity.FundDeposit, out.Type)
	assert.True(t, balance(t, store, reg2).Equal(amount(7500)))

	deposits, err := uc.ListFunds(ctx, "", entity.FundDeposit)
	require.NoError(t, err)
	require.Len(t, deposits, 1)
	assert.Equal(t, "Aziz", deposits[0].DepositorName)

	_, err = uc.ListFunds(ctx, "", "LOAN")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestFund_ValidacionYCajaInexistente(t *testing.T) {
	_, uc := setup(t)
	ctx := context.Background()

	_, err := uc.Deposit(ctx, user1, dto.FundRequest{CashRegisterID: reg1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Deposit(ctx, user1, dto.FundRequest{Amount: amount(10)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Withdraw(ctx, user1, dto.FundRequest{CashRegisterID: regMissing, Amount: amount(10)})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeposit_MontoConTresDecimales_InvalidInput(t *testing.T) {
	store, uc := setup(t)
	ctx := context.Background()

	_, err := uc.Deposit(ctx, user1, dto.FundRequest{CashRegisterID: reg1, Amount: decimal.RequireFromString("0.005")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Transfer(ctx, user1, dto.TransferRequest{FromRegisterID: reg1, ToRegisterID: reg2, Amount: decimal.RequireFromString("10.001")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.True(t, balance(t, store, reg1).Equal(amount(100000)))
	movs, err := store.Repos().FinancialMovements.ListByRegister(ctx, reg1, 0, 0)
	require.NoError(t, err)
	assert.Len(t, movs, 1, "solo la apertura")
	assertBalanceMatchesLog(t, store, reg1)
}

// ─── Ajuste manual ────────────────────────────────────────────────────────────

func TestAdjustBalance_PuedeDejarSaldoNegativo(t *testing.T) {
	store, uc := setup(t)
	ctx := context.Background()

	out, err := uc.AdjustBalance(ctx, user1, reg2, dto.AdjustBalanceRequest{Amount: amount(-8000)})
	require.NoError(t, err)
	assert.True(t, out.Balance.Equal(amount(-3000)))

	_, err = uc.AdjustBalance(ctx, user1, reg2, dto.AdjustBalanceRequest{Amount: amount(1000), Note: "sobrante"})
	require.NoError(t, err)
	assert.True(t, balance(t, store, reg2).Equal(amount(-2000)))

	movs, _ := store.Repos().FinancialMovements.ListByRegister(ctx, reg2, 0, 0)
	require.Len(t, movs, 3)
	assert.Equal(t, entity.ReferenceAdjustment, movs[1].ReferenceType)
	assert.Equal(t, "Manual adjustment", movs[1].Note)
	assert.Equal(t, "sobrante", movs[2].Note)
	assertBalanceMatchesLog(t, store, reg2)

	_, err = uc.AdjustBalance(ctx, user1, regMissing, dto.AdjustBalanceRequest{Amount: amount(1)})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = uc.AdjustBalance(ctx, user1, reg2, dto.AdjustBalanceRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ─── Traslados ────────────────────────────────────────────────────────────────

func TestTransfer_Simetria(t *testing.T) {
	store, uc := setup(t)
	ctx := context.Background()

	out, err := uc.Transfer(ctx, user1, dto.TransferRequest{FromRegisterID: reg1, ToRegisterID: reg2, Amount: amount(40000)})
	require.NoError(t, err)
	assert.True(t, out.FromBalanceAfter.Equal(amount(60000)))
	assert.True(t, out.ToBalanceAfter.Equal(amount(45000)))
	assert.True(t, balance(t, store, reg1).Equal(amount(60000)))
	assert.True(t, balance(t, store, reg2).Equal(amount(45000)))

	movs, err := store.Repos().FinancialMovements.ListByReference(ctx, entity.ReferenceTransfer, out.ID)
	require.NoError(t, err)
	require.Len(t, movs, 2)
	byRegister := map[string]string{}
	for _, m := range movs {
		byRegister[m.CashRegisterID] = m.Type
		assert.True(t, m.Amount.Equal(amount(40000)))
	}
	assert.Equal(t, entity.FinancialOUTFLOW, byRegister[reg1])
	assert.Equal(t, entity.FinancialINFLOW, byRegister[reg2])

	list, err := uc.ListTransfers(ctx, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, out.ID, list[0].ID)
	assertBalanceMatchesLog(t, store, reg1)
	assertBalanceMatchesLog(t, store, reg2)

	detail, err := uc.GetTransfer(ctx, out.ID)
	require.NoError(t, err)
	require.Len(t, detail.Movements, 2)
	assert.True(t, detail.FromBalanceAfter.Equal(amount(60000)))
	assert.True(t, detail.ToBalanceAfter.Equal(amount(45000)))
	for _, m := range detail.Movements {
		assert.Equal(t, out.ID, m.ReferenceID)
	}

	_, err = uc.GetTransfer(ctx, "80000000-0000-4000-8000-000000000404")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTransfer_Rechazos(t *testing.T) {
	store, uc := setup(t)
	ctx := context.Background()

	_, err := uc.Transfer(ctx, user1, dto.TransferRequest{FromRegisterID: reg1, ToRegisterID: reg1, Amount: amount(1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Transfer(ctx, user1, dto.TransferRequest{FromRegisterID: reg1, ToRegisterID: regMissing, Amount: amount(1)})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Transfer(ctx, user1, dto.TransferRequest{FromRegisterID: reg2, ToRegisterID: reg1, Amount: amount(5001)})
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)

	assert.True(t, balance(t, store, reg1).Equal(amount(100000)))
	assert.True(t, balance(t, store, reg2).Equal(amount(5000)))
	list, err := uc.ListTransfers(ctx, dto.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestTransfer_CruzadosConcurrentesConservanTotal(t *testing.T) {
	store, uc := setup(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		from, to := reg1, reg2
		if i%2 == 1 {
			from, to = to, from
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			// Algunos pueden fallar por saldo; ninguno debe dejar estado parcial.
			_, _ = uc.Transfer(ctx, user1, dto.TransferRequest{FromRegisterID: from, ToRegisterID: to, Amount: amount(1000)})
		}()
	}
	wg.Wait()

	total := balance(t, store, reg1).Add(balance(t, store, reg2))
	assert.True(t, total.Equal(amount(105000)))
	assertBalanceMatchesLog(t, store, reg1)
	assertBalanceMatchesLog(t, store, reg2)
}

func TestGetRegisterYMovimientos(t *testing.T) {
	_, uc := setup(t)
	ctx := context.Background()

	reg, err := uc.GetRegister(ctx, reg1)
	require.NoError(t, err)
	assert.Equal(t, "Kassa 1", reg.Name)

	movs, err := uc.ListMovements(ctx, reg1, dto.PageRequest{Limit: 10})
	require.NoError(t, err)
	require.Len(t, movs.Items, 1)
	assert.True(t, movs.Items[0].BalanceAfter.Equal(amount(100000)))

	_, err = uc.ListMovements(ctx, regMissing, dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ─── Alta de cajas ────────────────────────────────────────────────────────────

func TestCreateRegister_SaldoInicialComoAjuste(t *testing.T) {
	store, uc := setup(t)
	ctx := context.Background()

	out, err := uc.CreateRegister(ctx, user1, dto.CreateCashRegisterRequest{
		Name: "Kassa 3", BranchID: "b-1", CurrencyID: "UZS", OpeningBalance: decimal.RequireFromString("2500.50"),
	})
	require.NoError(t, err)
	assert.True(t, out.IsActive)
	assert.True(t, out.Balance.Equal(decimal.RequireFromString("2500.50")))

	movs, err := store.Repos().FinancialMovements.ListByRegister(ctx, out.ID, 0, 0)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.FinancialINFLOW, movs[0].Type)
	assert.Equal(t, entity.ReferenceAdjustment, movs[0].ReferenceType)
	assert.Equal(t, "UZS", movs[0].CurrencyID)
	assertBalanceMatchesLog(t, store, out.ID)

	empty, err := uc.CreateRegister(ctx, user1, dto.CreateCashRegisterRequest{Name: "Kassa 4", BranchID: "b-2", CurrencyID: "USD"})
	require.NoError(t, err)
	assert.True(t, empty.Balance.IsZero())
	movs, err = store.Repos().FinancialMovements.ListByRegister(ctx, empty.ID, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, movs, "sin saldo inicial no hay movimiento")

	list, err := uc.ListRegisters(ctx, "b-1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, out.ID, list[0].ID)

	_, err = uc.CreateRegister(ctx, user1, dto.CreateCashRegisterRequest{
		Name: "Kassa 5", BranchID: "b-1", CurrencyID: "UZS", OpeningBalance: decimal.RequireFromString("0.005"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.CreateRegister(ctx, user1, dto.CreateCashRegisterRequest{
		Name: "Kassa 6", BranchID: "b-1", CurrencyID: "UZS", OpeningBalance: amount(-1),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
