package main

import (
	"context"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/kitob-pos/internal/application/catalog"
	"github.com/jhoicas/kitob-pos/internal/application/dto"
	"github.com/jhoicas/kitob-pos/internal/application/ledger"
	"github.com/jhoicas/kitob-pos/internal/application/treasury"
	"github.com/jhoicas/kitob-pos/internal/domain/entity"
	"github.com/jhoicas/kitob-pos/internal/infrastructure/memory"
	"github.com/jhoicas/kitob-pos/pkg/logger"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

// seedDemo carga un catálogo mínimo en el almacén en memoria para probar la API en local.
// Pasa por los mismos casos de uso que la API, así el stock y el saldo inicial quedan en las bitácoras.
// La contraseña del admin se toma de DEMO_ADMIN_PASSWORD.
func seedDemo(ctx context.Context, store *memory.Store, log *logger.Logger) {
	const branchID = "main"
	repos := store.Repos()
	systemUser := uuid.NewString()

	wh, err := catalog.NewWarehouseUseCase(repos.Warehouses).Create(ctx, dto.CreateWarehouseRequest{
		BranchID: branchID, Name: "Asosiy ombor",
	})
	if err != nil {
		log.Error().Err(err).Msg("seed: bodega")
		return
	}
	reg, err := treasury.NewTreasuryUseCase(store, repos, ledger.NewBalanceEngine(), log).CreateRegister(ctx, systemUser,
		dto.CreateCashRegisterRequest{Name: "Kassa 1", BranchID: branchID, CurrencyID: "UZS", OpeningBalance: decimal.NewFromInt(500000)})
	if err != nil {
		log.Error().Err(err).Msg("seed: caja")
		return
	}
	if _, err := catalog.NewSupplierUseCase(repos.Suppliers).Create(ctx, dto.CreateSupplierRequest{Name: "Sharq nashriyoti"}); err != nil {
		log.Error().Err(err).Msg("seed: proveedor")
		return
	}

	products := catalog.NewProductUseCase(store, repos, ledger.NewStockEngine(), log)
	books := []struct {
		name, isbn string
		cost, sell int64
		qty        int
	}{
		{"O'tkan kunlar", "9789943000011", 45000, 65000, 12},
		{"Mehrobdan chayon", "9789943000028", 38000, 55000, 4},
		{"Kecha va kunduz", "9789943000035", 30000, 42000, 0},
	}
	for _, b := range books {
		in := dto.CreateProductRequest{
			Name: b.name, ISBN: b.isbn, Barcode: b.isbn, CostPrice: decimal.NewFromInt(b.cost),
			Prices: []dto.ProductPriceRequest{{CurrencyID: "UZS", Price: decimal.NewFromInt(b.sell)}},
		}
		if b.qty > 0 {
			in.InitialStock = []dto.InitialStockRequest{{WarehouseID: wh.ID, Quantity: b.qty}}
		}
		if _, err := products.Create(ctx, systemUser, in); err != nil {
			log.Error().Err(err).Str("isbn", b.isbn).Msg("seed: producto")
			return
		}
	}

	password := os.Getenv("DEMO_ADMIN_PASSWORD")
	if password == "" {
		log.Warn().Msg("DEMO_ADMIN_PASSWORD vacío: no se crea usuario admin de demo")
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Error().Err(err).Msg("hash de contraseña demo")
		return
	}
	now := time.Now().UTC()
	store.PutUser(entity.User{
		ID: uuid.NewString(), BranchID: branchID, Email: "admin@kitob.local", PasswordHash: string(hash),
		FullName: "Admin", Role: entity.RoleAdmin, IsActive: true, CreatedAt: now, UpdatedAt: now,
	})
	log.Info().
		Str("warehouse_id", wh.ID).
		Str("cash_register_id", reg.ID).
		Msg("datos de demo cargados")
}
