package dto_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/kitob-pos/internal/application/dto"
	"github.com/jhoicas/kitob-pos/internal/domain"
)

const (
	prod1 = "10000000-0000-4000-8000-000000000001"
	wh1   = "20000000-0000-4000-8000-000000000001"
	reg1  = "30000000-0000-4000-8000-000000000001"
)

func validSale() dto.CreateSaleRequest {
	return dto.CreateSaleRequest{
		BranchID:       "b-1",
		CashRegisterID: reg1,
		CurrencyID:     "UZS",
		PaymentTypeID:  "cash",
		WarehouseID:    wh1,
		Items:          []dto.SaleItemRequest{{ProductID: prod1, Quantity: 1}},
	}
}

func TestValidate_VentaCompletaEsValida(t *testing.T) {
	assert.NoError(t, dto.Validate(validSale()))
}

func TestValidate_VentaSinItems_InvalidInput(t *testing.T) {
	req := validSale()
	req.Items = nil

	err := dto.Validate(req)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.Contains(t, err.Error(), "items")
}

func TestValidate_LineaConCantidadCero_NombraCampoJSON(t *testing.T) {
	req := validSale()
	req.Items[0].Quantity = 0

	err := dto.Validate(req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "items[0].quantity")
}

func TestValidate_DescuentoNegativo(t *testing.T) {
	req := validSale()
	req.Discount = decimal.NewFromInt(-1)

	assert.ErrorIs(t, dto.Validate(req), domain.ErrInvalidInput)
}

func TestValidate_MontoDecimal(t *testing.T) {
	ok := dto.FundRequest{CashRegisterID: reg1, Amount: decimal.RequireFromString("0.01")}
	assert.NoError(t, dto.Validate(ok))

	cero := dto.FundRequest{CashRegisterID: reg1}
	assert.ErrorIs(t, dto.Validate(cero), domain.ErrInvalidInput)

	ajuste := dto.AdjustBalanceRequest{Amount: decimal.NewFromInt(-500)}
	assert.NoError(t, dto.Validate(ajuste))
}

func TestValidate_AjusteStockRequiereCantidad(t *testing.T) {
	assert.ErrorIs(t, dto.Validate(dto.AdjustStockRequest{WarehouseID: wh1}), domain.ErrInvalidInput)

	zero := 0
	assert.NoError(t, dto.Validate(dto.AdjustStockRequest{WarehouseID: wh1, Quantity: &zero}))
}

func TestValidate_MontosConMasDeDosDecimales(t *testing.T) {
	fondo := dto.FundRequest{CashRegisterID: reg1, Amount: decimal.RequireFromString("0.005")}
	err := dto.Validate(fondo)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "amount")

	assert.NoError(t, dto.Validate(dto.FundRequest{CashRegisterID: reg1, Amount: decimal.RequireFromString("10.500")}),
		"ceros a la derecha no cuentan como decimales")

	venta := validSale()
	venta.Discount = decimal.RequireFromString("0.125")
	assert.ErrorIs(t, dto.Validate(venta), domain.ErrInvalidInput)

	venta = validSale()
	precio := decimal.RequireFromString("4999.999")
	venta.Items[0].UnitPrice = &precio
	err = dto.Validate(venta)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "items[0].unit_price")

	ajuste := dto.AdjustBalanceRequest{Amount: decimal.New(1, 17)}
	assert.ErrorIs(t, dto.Validate(ajuste), domain.ErrInvalidInput, "no cabe en numeric(18,2)")
}

func TestValidate_IdentificadoresDebenSerUUID(t *testing.T) {
	venta := validSale()
	venta.CashRegisterID = "not-a-uuid"
	err := dto.Validate(venta)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "cash_register_id")

	venta = validSale()
	venta.Items[0].ProductID = "abc"
	assert.ErrorIs(t, dto.Validate(venta), domain.ErrInvalidInput)

	traslado := dto.TransferRequest{FromRegisterID: "x", ToRegisterID: "y", Amount: decimal.NewFromInt(1)}
	assert.ErrorIs(t, dto.Validate(traslado), domain.ErrInvalidInput)
}

func TestParseID(t *testing.T) {
	id, err := dto.ParseID("id", "30000000-0000-4000-8000-000000000001")
	require.NoError(t, err)
	assert.Equal(t, reg1, id)

	id, err = dto.ParseID("id", "{30000000-0000-4000-8000-000000000001}")
	require.NoError(t, err)
	assert.Equal(t, reg1, id, "se devuelve la forma canónica")

	_, err = dto.ParseID("id", "abc")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
