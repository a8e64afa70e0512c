package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/kitob-pos/internal/domain/entity"
	"github.com/jhoicas/kitob-pos/internal/domain/repository"
)

var _ repository.FinancialMovementRepository = (*FinancialMovementRepo)(nil)

// FinancialMovementRepo bitácora de caja sobre PostgreSQL (usable con pool o tx). Solo INSERT y SELECT.
type FinancialMovementRepo struct {
	q Querier
}

// NewFinancialMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewFinancialMovementRepository(q Querier) *FinancialMovementRepo {
	return &FinancialMovementRepo{q: q}
}

const financialColumns = `id, cash_register_id, currency_id, COALESCE(payment_type_id, ''), COALESCE(user_id::text, ''),
	type, amount, balance_after, COALESCE(reference_type, ''), COALESCE(reference_id, ''), COALESCE(note, ''), created_at`

// Create persiste un movimiento financiero.
func (r *FinancialMovementRepo) Create(ctx context.Context, m *entity.FinancialMovement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	query := `
		INSERT INTO financial_movements
			(id, cash_register_id, currency_id, payment_type_id, user_id, type, amount, balance_after,
			 reference_type, reference_id, note, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.CashRegisterID, m.CurrencyID, nullable(m.PaymentTypeID), nullable(m.UserID),
		m.Type, m.Amount, m.BalanceAfter,
		nullable(m.ReferenceType), nullable(m.ReferenceID), nullable(m.Note), m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create financial movement: %w", err)
	}
	return nil
}

// ListByRegister movimientos de una caja en orden de inserción.
func (r *FinancialMovementRepo) ListByRegister(ctx context.Context, registerID string, limit, offset int) ([]*entity.FinancialMovement, error) {
	query := `SELECT ` + financialColumns + ` FROM financial_movements
		WHERE cash_register_id = $1 ORDER BY seq LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, registerID, limitArg(limit), offset)
	if err != nil {
		return nil, fmt.Errorf("list financial movements: %w", err)
	}
	return scanFinancialMovements(rows)
}

// ListByReference movimientos ligados a una venta, fondo, traslado, etc.
func (r *FinancialMovementRepo) ListByReference(ctx context.Context, referenceType, referenceID string) ([]*entity.FinancialMovement, error) {
	query := `SELECT ` + financialColumns + ` FROM financial_movements
		WHERE reference_type = $1 AND reference_id = $2 ORDER BY seq`
	rows, err := r.q.Query(ctx, query, referenceType, referenceID)
	if err != nil {
		return nil, fmt.Errorf("list financial movements by reference: %w", err)
	}
	return scanFinancialMovements(rows)
}

func scanFinancialMovements(rows pgx.Rows) ([]*entity.FinancialMovement, error) {
	defer rows.Close()
	var list []*entity.FinancialMovement
	for rows.Next() {
		var m entity.FinancialMovement
		if err := rows.Scan(&m.ID, &m.CashRegisterID, &m.CurrencyID, &m.PaymentTypeID, &m.UserID,
			&m.Type, &m.Amount, &m.BalanceAfter, &m.ReferenceType, &m.ReferenceID, &m.Note, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan financial movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
