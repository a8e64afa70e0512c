package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/kitob-pos/internal/domain/entity"
	"github.com/jhoicas/kitob-pos/internal/domain/repository"
)

var (
	_ repository.CirculatingFundRepository = (*CirculatingFundRepo)(nil)
	_ repository.MoneyTransferRepository   = (*MoneyTransferRepo)(nil)
)

// CirculatingFundRepo depósitos y retiros de caja.
type CirculatingFundRepo struct {
	q Querier
}

// NewCirculatingFundRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCirculatingFundRepository(q Querier) *CirculatingFundRepo {
	return &CirculatingFundRepo{q: q}
}

// Create persiste el fondo; el movimiento financiero lo escribe el motor de saldo.
func (r *CirculatingFundRepo) Create(ctx context.Context, f *entity.CirculatingFund) error {
	query := `
		INSERT INTO circulating_funds (id, cash_register_id, type, amount, depositor_name, note, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		f.ID, f.CashRegisterID, f.Type, f.Amount, nullable(f.DepositorName), nullable(f.Note), nullable(f.UserID), f.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create circulating fund: %w", err)
	}
	return nil
}

// List fondos filtrados por caja y tipo, los más recientes primero.
func (r *CirculatingFundRepo) List(ctx context.Context, registerID, fundType string) ([]*entity.CirculatingFund, error) {
	query := `
		SELECT id, cash_register_id, type, amount, COALESCE(depositor_name, ''), COALESCE(note, ''),
		       COALESCE(user_id::text, ''), created_at
		FROM circulating_funds
		WHERE ($1 = '' OR cash_register_id::text = $1) AND ($2 = '' OR type = $2)
		ORDER BY created_at DESC, id`
	rows, err := r.q.Query(ctx, query, registerID, fundType)
	if err != nil {
		return nil, fmt.Errorf("list circulating funds: %w", err)
	}
	defer rows.Close()
	var list []*entity.CirculatingFund
	for rows.Next() {
		var f entity.CirculatingFund
		if err := rows.Scan(&f.ID, &f.CashRegisterID, &f.Type, &f.Amount, &f.DepositorName, &f.Note,
			&f.UserID, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan circulating fund: %w", err)
		}
		list = append(list, &f)
	}
	return list, rows.Err()
}

// MoneyTransferRepo traslados entre cajas.
type MoneyTransferRepo struct {
	q Querier
}

// NewMoneyTransferRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMoneyTransferRepository(q Querier) *MoneyTransferRepo {
	return &MoneyTransferRepo{q: q}
}

// Create persiste el traslado.
func (r *MoneyTransferRepo) Create(ctx context.Context, t *entity.MoneyTransfer) error {
	query := `
		INSERT INTO money_transfers (id, from_register_id, to_register_id, user_id, amount, note, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		t.ID, t.FromRegisterID, t.ToRegisterID, nullable(t.UserID), t.Amount, nullable(t.Note), t.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create money transfer: %w", err)
	}
	return nil
}

// GetByID obtiene un traslado por ID.
func (r *MoneyTransferRepo) GetByID(ctx context.Context, id string) (*entity.MoneyTransfer, error) {
	query := `
		SELECT id, from_register_id, to_register_id, COALESCE(user_id::text, ''), amount, COALESCE(note, ''), created_at
		FROM money_transfers WHERE id = $1`
	var t entity.MoneyTransfer
	err := r.q.QueryRow(ctx, query, id).
		Scan(&t.ID, &t.FromRegisterID, &t.ToRegisterID, &t.UserID, &t.Amount, &t.Note, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get money transfer: %w", err)
	}
	return &t, nil
}

// List traslados, los más recientes primero.
func (r *MoneyTransferRepo) List(ctx context.Context, limit, offset int) ([]*entity.MoneyTransfer, error) {
	query := `
		SELECT id, from_register_id, to_register_id, COALESCE(user_id::text, ''), amount, COALESCE(note, ''), created_at
		FROM money_transfers
		ORDER BY created_at DESC, id
		LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limitArg(limit), offset)
	if err != nil {
		return nil, fmt.Errorf("list money transfers: %w", err)
	}
	defer rows.Close()
	var list []*entity.MoneyTransfer
	for rows.Next() {
		var t entity.MoneyTransfer
		if err := rows.Scan(&t.ID, &t.FromRegisterID, &t.ToRegisterID, &t.UserID, &t.Amount, &t.Note, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan money transfer: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}
