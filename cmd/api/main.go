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
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/jhoicas/pos-ventas-api/internal/application/auth"
	"github.com/jhoicas/pos-ventas-api/internal/application/catalog"
	"github.com/jhoicas/pos-ventas-api/internal/application/inventory"
	"github.com/jhoicas/pos-ventas-api/internal/application/sales"
	"github.com/jhoicas/pos-ventas-api/internal/domain/invoice"
	"github.com/jhoicas/pos-ventas-api/internal/domain/repository"
	"github.com/jhoicas/pos-ventas-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/pos-ventas-api/internal/infrastructure/pdf"
	"github.com/jhoicas/pos-ventas-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/pos-ventas-api/internal/interfaces/http"
	"github.com/jhoicas/pos-ventas-api/pkg/config"
	"github.com/jhoicas/pos-ventas-api/pkg/logger"
)

// demoPassword contraseña del empleado de demostración en STORE_DRIVER=memory.
const demoPassword = "admin123"

// stores repositorios y runner transaccional del driver elegido.
type stores struct {
	products  repository.ProductRepository
	clients   repository.ClientRepository
	employees repository.EmployeeRepository
	sales     repository.SaleRepository
	txRunner  sales.SalesTxRunner
	close     func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("store", cfg.App.StoreDriver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	st, err := openStores(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer st.close()

	createSaleUC := sales.NewCreateSaleUseCase(
		sales.NewValidator(st.clients), st.txRunner, inventory.NewLedger(), log.Component("sale_ledger"),
	)
	invoiceUC := sales.NewInvoiceUseCase(st.sales, infrapdf.NewMarotoRenderer(), invoice.Issuer{
		Name:           cfg.Invoice.IssuerName,
		Address:        cfg.Invoice.IssuerAddress,
		Phone:          cfg.Invoice.IssuerPhone,
		CurrencySymbol: cfg.Invoice.CurrencySymbol,
		Location:       cfg.Invoice.Location(),
	})
	authUC := auth.NewAuthUseCase(st.employees, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "POS Ventas API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "store": cfg.App.StoreDriver})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		CreateSale: createSaleUC,
		SaleQuery:  sales.NewQueryUseCase(st.sales),
		Invoice:    invoiceUC,
		CatalogUC:  catalog.NewCatalogUseCase(st.products, st.clients),
		JWTSecret:  cfg.JWT.Secret,
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

func openStores(ctx context.Context, cfg *config.Config, log *logger.Logger) (*stores, error) {
	if cfg.App.StoreDriver == config.StoreDriverMemory {
		store := memory.NewStore(memory.WithCommitTimeout(cfg.Sales.CommitTimeout))
		hash, err := auth.HashPassword(demoPassword)
		if err != nil {
			return nil, err
		}
		memory.SeedDemo(store, hash)
		log.Warn().
			Str("email", memory.DemoEmployeeEmail).
			Msg("almacenamiento en memoria con datos de demostración; los datos se pierden al reiniciar")
		return &stores{
			products:  store.Products(),
			clients:   store.Clients(),
			employees: store.Employees(),
			sales:     store.Sales(),
			txRunner:  store,
			close:     func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	return &stores{
		products:  postgres.NewProductRepository(pool),
		clients:   postgres.NewClientRepository(pool),
		employees: postgres.NewEmployeeRepository(pool),
		sales:     postgres.NewSaleRepository(pool),
		txRunner:  postgres.NewTxRunner(pool, cfg.Sales.CommitTimeout, cfg.Sales.LockTimeout),
		close:     pool.Close,
	}, nil
}
