package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/kitob-pos/internal/domain"
)

func TestError_ClasificaPorTipo(t *testing.T) {
	err := domain.InsufficientStock("Qo'rqma", 3, 5)

	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))
	assert.False(t, errors.Is(err, domain.ErrNotFound))
	assert.Contains(t, err.Error(), "disponible 3")
	assert.Contains(t, err.Error(), "solicitado 5")
}

func TestError_EnvueltoConservaTipo(t *testing.T) {
	err := fmt.Errorf("venta: %w", domain.NotFound("kassa", "r-1"))

	assert.Equal(t, domain.ErrNotFound, domain.Kind(err))
}

func TestKind_ErrorInternoDevuelveNil(t *testing.T) {
	assert.Nil(t, domain.Kind(errors.New("conexión cerrada")))
	assert.Equal(t, domain.ErrInsufficientFunds,
		domain.Kind(domain.InsufficientFunds("r-1", decimal.NewFromInt(10), decimal.NewFromInt(20))))
}

func TestDuplicate_SeClasificaComoDuplicado(t *testing.T) {
	err := domain.Duplicate("código de barras %s ya registrado", "4780000000011")

	assert.Equal(t, domain.ErrDuplicate, domain.Kind(err))
	assert.Contains(t, err.Error(), "4780000000011")
}
