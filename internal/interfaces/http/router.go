package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/kitob-pos/internal/application/auth"
	"github.com/jhoicas/kitob-pos/internal/application/catalog"
	"github.com/jhoicas/kitob-pos/internal/application/inventory"
	"github.com/jhoicas/kitob-pos/internal/application/purchasing"
	"github.com/jhoicas/kitob-pos/internal/application/sales"
	"github.com/jhoicas/kitob-pos/internal/application/treasury"
	"github.com/jhoicas/kitob-pos/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC          *auth.AuthUseCase
	SaleUC          *sales.SaleUseCase
	PurchaseUC      *purchasing.PurchaseUseCase
	StockUC         *inventory.StockUseCase
	ReplenishmentUC *inventory.ReplenishmentUseCase
	TreasuryUC      *treasury.TreasuryUseCase
	ProductUC       *catalog.ProductUseCase
	WarehouseUC     *catalog.WarehouseUseCase
	SupplierUC      *catalog.SupplierUseCase
	JWTSecret       string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	managers := RequireRole(entity.RoleAdmin, entity.RoleManager)

	// Ventas: cualquier rol autenticado
	saleHandler := NewSaleHandler(deps.SaleUC)
	protected.Post("/sales", saleHandler.Create)
	protected.Get("/sales", saleHandler.List)
	protected.Get("/sales/:id", saleHandler.GetByID)
	protected.Get("/sales/:id/receipt", saleHandler.Receipt)

	// Compras
	purchaseHandler := NewPurchaseHandler(deps.PurchaseUC)
	protected.Post("/purchases", managers, purchaseHandler.Create)
	protected.Get("/purchases", purchaseHandler.List)
	protected.Get("/purchases/:id", purchaseHandler.GetByID)
	protected.Post("/purchases/:id/receive", managers, purchaseHandler.Receive)
	protected.Post("/purchases/:id/cancel", managers, purchaseHandler.Cancel)

	// Productos e inventario
	inventoryHandler := NewInventoryHandler(deps.StockUC, deps.ReplenishmentUC)
	productHandler := NewProductHandler(deps.ProductUC)
	protected.Get("/products/barcode/:code", inventoryHandler.GetByBarcode)
	protected.Post("/products", managers, productHandler.Create)
	protected.Get("/products", productHandler.List)
	protected.Get("/products/:id", productHandler.GetByID)
	protected.Put("/products/:id", managers, productHandler.Update)
	protected.Post("/products/:id/adjust-stock", managers, inventoryHandler.AdjustStock)
	protected.Get("/products/:id/movements", inventoryHandler.ListMovements)
	protected.Get("/inventory/low-stock", inventoryHandler.ListLowStock)

	// Bodegas y proveedores
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC, deps.SupplierUC)
	protected.Post("/warehouses", managers, warehouseHandler.Create)
	protected.Get("/warehouses", warehouseHandler.List)
	protected.Get("/warehouses/:id", warehouseHandler.GetByID)
	protected.Post("/suppliers", managers, warehouseHandler.CreateSupplier)
	protected.Get("/suppliers", warehouseHandler.ListSuppliers)

	// Tesorería
	treasuryHandler := NewTreasuryHandler(deps.TreasuryUC)
	protected.Post("/cash-registers", managers, treasuryHandler.CreateRegister)
	protected.Get("/cash-registers", treasuryHandler.ListRegisters)
	protected.Get("/cash-registers/:id", treasuryHandler.GetRegister)
	protected.Post("/cash-registers/:id/adjust-balance", managers, treasuryHandler.AdjustBalance)
	protected.Get("/cash-registers/:id/movements", treasuryHandler.ListMovements)
	protected.Post("/circulating-funds/deposit", managers, treasuryHandler.Deposit)
	protected.Post("/circulating-funds/withdraw", managers, treasuryHandler.Withdraw)
	protected.Get("/circulating-funds", treasuryHandler.ListFunds)
	protected.Post("/money-transfers", managers, treasuryHandler.Transfer)
	protected.Get("/money-transfers", treasuryHandler.ListTransfers)
	protected.Get("/money-transfers/:id", treasuryHandler.GetTransfer)
}
