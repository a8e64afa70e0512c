package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/kitob-pos/internal/application/auth"
	"github.com/jhoicas/kitob-pos/internal/application/catalog"
	"github.com/jhoicas/kitob-pos/internal/application/inventory"
	"github.com/jhoicas/kitob-pos/internal/application/ledger"
	"github.com/jhoicas/kitob-pos/internal/application/ports"
	"github.com/jhoicas/kitob-pos/internal/application/purchasing"
	"github.com/jhoicas/kitob-pos/internal/application/sales"
	"github.com/jhoicas/kitob-pos/internal/application/treasury"
	"github.com/jhoicas/kitob-pos/internal/domain/repository"
	"github.com/jhoicas/kitob-pos/internal/infrastructure/memory"
	"github.com/jhoicas/kitob-pos/internal/infrastructure/notify"
	infrapdf "github.com/jhoicas/kitob-pos/internal/infrastructure/pdf"
	"github.com/jhoicas/kitob-pos/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/kitob-pos/internal/interfaces/http"
	"github.com/jhoicas/kitob-pos/pkg/config"
	"github.com/jhoicas/kitob-pos/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.App.StoreDriver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	// Almacén: PostgreSQL en producción; memoria solo para desarrollo.
	var (
		txRunner ports.TxRunner
		repos    ports.TxRepos
		userRepo repository.UserRepository
	)
	switch cfg.App.StoreDriver {
	case config.StoreDriverMemory:
		store := memory.New()
		seedDemo(ctx, store, log)
		txRunner, repos, userRepo = store, store.Repos(), store.Users()
		log.Warn().Msg("almacén en memoria: los datos se pierden al reiniciar")
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		txRunner, repos, userRepo = postgres.NewTxRunner(pool), postgres.NewRepos(pool), postgres.NewUserRepository(pool)
	}

	// Notificaciones: siempre al log; además a Redis si está configurado.
	notifiers := notify.Multi{notify.NewLogNotifier(log)}
	if cfg.Redis.Enabled() {
		rdb, err := notify.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Error().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis no disponible, solo se notificará al log")
		} else {
			defer rdb.Close()
			notifiers = append(notifiers, notify.NewRedisNotifier(rdb, cfg.Redis.ChannelPrefix))
		}
	}

	stockEngine := ledger.NewStockEngine()
	balanceEngine := ledger.NewBalanceEngine()
	events := ledger.NewEventPublisher(notifiers, log, cfg.Settlement.LowStockThreshold)

	saleUC := sales.NewSaleUseCase(
		txRunner, repos, stockEngine, balanceEngine, events,
		infrapdf.NewReceiptGenerator(cfg.App.Name),
		cfg.Settlement.MissingPricePolicy == config.MissingPriceReject,
		log,
	)
	purchaseUC := purchasing.NewPurchaseUseCase(txRunner, repos, stockEngine, log)
	stockUC := inventory.NewStockUseCase(txRunner, repos, stockEngine, events, log)
	replenishmentUC := inventory.NewReplenishmentUseCase(repos.Stocks, repos.Products, cfg.Settlement.LowStockThreshold)
	treasuryUC := treasury.NewTreasuryUseCase(txRunner, repos, balanceEngine, log)
	productUC := catalog.NewProductUseCase(txRunner, repos, stockEngine, log)
	warehouseUC := catalog.NewWarehouseUseCase(repos.Warehouses)
	supplierUC := catalog.NewSupplierUseCase(repos.Suppliers)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.App.SwaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.App.SwaggerFile,
			Path:     "docs",
			Title:    "Kitob POS API",
		}))
	} else {
		log.Warn().Str("file", cfg.App.SwaggerFile).Msg("swagger deshabilitado: archivo no encontrado")
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:          authUC,
		SaleUC:          saleUC,
		PurchaseUC:      purchaseUC,
		StockUC:         stockUC,
		ReplenishmentUC: replenishmentUC,
		TreasuryUC:      treasuryUC,
		ProductUC:       productUC,
		WarehouseUC:     warehouseUC,
		SupplierUC:      supplierUC,
		JWTSecret:       cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
