package repository

import (
	"context"

	"github.com/jhoicas/kitob-pos/internal/domain/entity"
)

// FinancialMovementRepository bitácora de movimientos de caja (solo inserción).
type FinancialMovementRepository interface {
	Create(ctx context.Context, m *entity.FinancialMovement) error
	ListByRegister(ctx context.Context, registerID string, limit, offset int) ([]*entity.FinancialMovement, error)
	ListByReference(ctx context.Context, referenceType, referenceID string) ([]*entity.FinancialMovement, error)
}
