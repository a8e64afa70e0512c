package ports

import (
	"context"

	"github.com/jhoicas/kitob-pos/internal/domain/repository"
)

// TxRepos repositorios atados a una misma transacción de BD.
// Todo lo que se escriba a través de ellos se confirma o se descarta junto.
type TxRepos struct {
	Products           repository.ProductRepository
	Stocks             repository.StockRepository
	ProductMovements   repository.ProductMovementRepository
	Registers          repository.CashRegisterRepository
	FinancialMovements repository.FinancialMovementRepository
	Sales              repository.SaleRepository
	Purchases          repository.PurchaseRepository
	Funds              repository.CirculatingFundRepository
	Transfers          repository.MoneyTransferRepository
	Warehouses         repository.WarehouseRepository
	Suppliers          repository.SupplierRepository
}

// TxRunner ejecuta fn dentro de una transacción: Commit si fn retorna nil, Rollback en cualquier otro caso.
// Los motores de stock y saldo reciben los repos de la transacción del caller y nunca abren una propia.
type TxRunner interface {
	Run(ctx context.Context, fn func(ctx context.Context, repos TxRepos) error) error
}
