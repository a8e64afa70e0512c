package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/kitob-pos/internal/domain"
	"github.com/jhoicas/kitob-pos/internal/domain/entity"
	"github.com/jhoicas/kitob-pos/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.CashRegisterRepository = (*CashRegisterRepo)(nil)

// CashRegisterRepo cajas sobre PostgreSQL (usable con pool o tx).
type CashRegisterRepo struct {
	q Querier
}

// NewCashRegisterRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCashRegisterRepository(q Querier) *CashRegisterRepo {
	return &CashRegisterRepo{q: q}
}

const registerColumns = `id, name, branch_id, currency_id, balance, is_active, created_at, updated_at`

const registerQuery = `SELECT ` + registerColumns + ` FROM cash_registers WHERE id = $1`

func scanRegister(row pgx.Row) (*entity.CashRegister, error) {
	var c entity.CashRegister
	err := row.Scan(&c.ID, &c.Name, &c.BranchID, &c.CurrencyID, &c.Balance, &c.IsActive, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserta la caja con el saldo que traiga (0 al darla de alta).
func (r *CashRegisterRepo) Create(ctx context.Context, c *entity.CashRegister) error {
	query := `
		INSERT INTO cash_registers (id, name, branch_id, currency_id, balance, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.Name, c.BranchID, c.CurrencyID, c.Balance, c.IsActive, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create cash register: %w", err)
	}
	return nil
}

// List cajas de la sucursal (todas si branchID es vacío) por nombre.
func (r *CashRegisterRepo) List(ctx context.Context, branchID string) ([]*entity.CashRegister, error) {
	query := `SELECT ` + registerColumns + ` FROM cash_registers
		WHERE ($1 = '' OR branch_id = $1)
		ORDER BY name, id`
	rows, err := r.q.Query(ctx, query, branchID)
	if err != nil {
		return nil, fmt.Errorf("list cash registers: %w", err)
	}
	defer rows.Close()
	var list []*entity.CashRegister
	for rows.Next() {
		c, err := scanRegister(rows)
		if err != nil {
			return nil, fmt.Errorf("scan cash register: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

func (r *CashRegisterRepo) get(ctx context.Context, query, id string) (*entity.CashRegister, error) {
	c, err := scanRegister(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cash register: %w", err)
	}
	return c, nil
}

// GetByID obtiene la caja sin bloquearla.
func (r *CashRegisterRepo) GetByID(ctx context.Context, id string) (*entity.CashRegister, error) {
	return r.get(ctx, registerQuery, id)
}

// GetForUpdate obtiene la caja y bloquea la fila (SELECT FOR UPDATE).
func (r *CashRegisterRepo) GetForUpdate(ctx context.Context, id string) (*entity.CashRegister, error) {
	return r.get(ctx, registerQuery+` FOR UPDATE`, id)
}

// UpdateBalance fija el saldo; el caller ya tiene la fila bloqueada.
func (r *CashRegisterRepo) UpdateBalance(ctx context.Context, id string, balance decimal.Decimal) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE cash_registers SET balance = $2, updated_at = now() WHERE id = $1`, id, balance)
	if err != nil {
		return fmt.Errorf("update balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("caja", id)
	}
	return nil
}
