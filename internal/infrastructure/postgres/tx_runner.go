package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/kitob-pos/internal/application/ports"
)

var _ ports.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción (READ COMMITTED), ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// Las filas de stock y de caja se bloquean con SELECT ... FOR UPDATE dentro de los repos.
func (r *TxRunner) Run(ctx context.Context, fn func(ctx context.Context, repos ports.TxRepos) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(ctx, NewRepos(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// NewRepos construye todos los repositorios sobre q (pool para lecturas, tx dentro de Run).
func NewRepos(q Querier) ports.TxRepos {
	return ports.TxRepos{
		Products:           NewProductRepository(q),
		Stocks:             NewStockRepository(q),
		ProductMovements:   NewProductMovementRepository(q),
		Registers:          NewCashRegisterRepository(q),
		FinancialMovements: NewFinancialMovementRepository(q),
		Sales:              NewSaleRepository(q),
		Purchases:          NewPurchaseRepository(q),
		Funds:              NewCirculatingFundRepository(q),
		Transfers:          NewMoneyTransferRepository(q),
		Warehouses:         NewWarehouseRepository(q),
		Suppliers:          NewSupplierRepository(q),
	}
}
