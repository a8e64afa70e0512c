package notify

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/kitob-pos/internal/application/ports"
	"github.com/jhoicas/kitob-pos/internal/domain/entity"
	"github.com/jhoicas/kitob-pos/pkg/logger"
)

type published struct {
	channel string
	body    []byte
}

type fakePublisher struct {
	msgs []published
	err  error
}

func (f *fakePublisher) Publish(_ context.Context, channel string, message interface{}) *redis.IntCmd {
	if f.err != nil {
		return redis.NewIntResult(0, f.err)
	}
	f.msgs = append(f.msgs, published{channel: channel, body: message.([]byte)})
	return redis.NewIntResult(1, nil)
}

func sampleSale() *entity.Sale {
	return &entity.Sale{
		ID:             "s-1",
		BranchID:       "b-1",
		CashRegisterID: "r-1",
		CurrencyID:     "UZS",
		PaymentTypeID:  "cash",
		TotalAmount:    decimal.NewFromInt(22000),
		Profit:         decimal.NewFromInt(8000),
		Items: []entity.SaleItem{
			{ProductID: "p-1", Quantity: 2},
			{ProductID: "p-2", Quantity: 1},
		},
		CreatedAt: time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC),
	}
}

func TestRedisNotifier_VentaPublicaEnCanalConPrefijo(t *testing.T) {
	pub := &fakePublisher{}
	n := NewRedisNotifier(pub, "kitob")

	require.NoError(t, n.SaleCompleted(context.Background(), sampleSale()))
	require.Len(t, pub.msgs, 1)
	assert.Equal(t, "kitob.sale.completed", pub.msgs[0].channel)

	var ev map[string]any
	require.NoError(t, json.Unmarshal(pub.msgs[0].body, &ev))
	assert.Equal(t, "s-1", ev["sale_id"])
	assert.Equal(t, "22000", ev["total_amount"])
	assert.EqualValues(t, 3, ev["units"])
	assert.EqualValues(t, 2, ev["lines"])
}

func TestRedisNotifier_StockBajoSinPrefijo(t *testing.T) {
	pub := &fakePublisher{}
	n := NewRedisNotifier(pub, "")

	alert := ports.LowStockAlert{ProductID: "p-1", ProductName: "Kitob", WarehouseID: "w-1", Quantity: 2, Threshold: 5}
	require.NoError(t, n.StockLow(context.Background(), alert))
	require.Len(t, pub.msgs, 1)
	assert.Equal(t, "stock.low", pub.msgs[0].channel)

	var got ports.LowStockAlert
	require.NoError(t, json.Unmarshal(pub.msgs[0].body, &got))
	assert.Equal(t, alert, got)
}

func TestRedisNotifier_ErrorDePublicacion(t *testing.T) {
	n := NewRedisNotifier(&fakePublisher{err: errors.New("connection refused")}, "kitob")

	err := n.SaleCompleted(context.Background(), sampleSale())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "publish sale.completed")
}

func TestMulti_EntregaATodosAunqueUnoFalle(t *testing.T) {
	failing := NewRedisNotifier(&fakePublisher{err: errors.New("down")}, "")
	ok := &fakePublisher{}
	m := Multi{failing, NewLogNotifier(logger.Nop()), NewRedisNotifier(ok, "")}

	err := m.StockLow(context.Background(), ports.LowStockAlert{ProductID: "p-1", Quantity: 0, Threshold: 5})
	assert.Error(t, err)
	assert.Len(t, ok.msgs, 1)
}

func TestLogNotifier_NoFalla(t *testing.T) {
	n := NewLogNotifier(logger.Nop())
	assert.NoError(t, n.SaleCompleted(context.Background(), sampleSale()))
	assert.NoError(t, n.StockLow(context.Background(), ports.LowStockAlert{ProductID: "p-1"}))
}
