package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, MissingPriceZero, cfg.Settlement.MissingPricePolicy)
	assert.Equal(t, 5, cfg.Settlement.LowStockThreshold)
	assert.Equal(t, StoreDriverPostgres, cfg.App.StoreDriver)
	assert.False(t, cfg.Redis.Enabled())
}

func TestLoad_LeeVariablesDeEntorno(t *testing.T) {
	t.Setenv("SALE_MISSING_PRICE_POLICY", "reject")
	t.Setenv("LOW_STOCK_THRESHOLD", "3")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("STORE_DRIVER", "memory")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, MissingPriceReject, cfg.Settlement.MissingPricePolicy)
	assert.Equal(t, 3, cfg.Settlement.LowStockThreshold)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, StoreDriverMemory, cfg.App.StoreDriver)
}

func TestLoad_PoliticaDePrecioInvalida(t *testing.T) {
	t.Setenv("SALE_MISSING_PRICE_POLICY", "free")

	_, err := Load()
	assert.Error(t, err)
}

func TestDBConfig_DSNEscapaPassword(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "pos", Password: "p@ss/word", DBName: "kitob", SSLMode: "disable"}

	assert.Equal(t, "postgres://pos:p%40ss%2Fword@db:5432/kitob?sslmode=disable", c.DSN())
	assert.Equal(t, c.DSN(), c.ConnectionString())

	c.DatabaseURL = "postgres://other"
	assert.Equal(t, "postgres://other", c.ConnectionString())
}
