package pdf

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/kitob-pos/internal/domain/entity"
)

func TestFormatMoney(t *testing.T) {
	cases := map[string]decimal.Decimal{
		"0":         decimal.Zero,
		"950":       decimal.NewFromInt(950),
		"25 000":    decimal.NewFromInt(25000),
		"1 000 000": decimal.RequireFromString("1000000.4"),
		"-12 500":   decimal.NewFromInt(-12500),
	}
	for want, in := range cases {
		assert.Equal(t, want, formatMoney(in))
	}
}

func TestSaleReceiptPDF_GeneraDocumento(t *testing.T) {
	sale := &entity.Sale{
		ID:             "0b6a1e2c-0000-4000-8000-000000000001",
		BranchID:       "b-1",
		CashRegisterID: "r-1",
		CurrencyID:     "UZS",
		PaymentTypeID:  "cash",
		CustomerName:   "Aziz",
		Subtotal:       decimal.NewFromInt(22000),
		Discount:       decimal.NewFromInt(2000),
		TotalAmount:    decimal.NewFromInt(20000),
		Items: []entity.SaleItem{
			{ProductName: "O'tkan kunlar", Quantity: 2, UnitPrice: decimal.NewFromInt(5000), TotalPrice: decimal.NewFromInt(10000)},
			{ProductName: "Mehrobdan chayon", Quantity: 1, UnitPrice: decimal.NewFromInt(12000), TotalPrice: decimal.NewFromInt(12000)},
		},
		CreatedAt: time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC),
	}

	out, err := NewReceiptGenerator("Kitob Do'koni").SaleReceiptPDF(sale)
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.Equal(t, "%PDF-", string(out[:5]))
}
