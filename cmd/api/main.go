package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/marjoc/farmacia-api/internal/application/auth"
	"github.com/marjoc/farmacia-api/internal/application/reports"
	"github.com/marjoc/farmacia-api/internal/application/sales"
	"github.com/marjoc/farmacia-api/internal/application/usecase"
	"github.com/marjoc/farmacia-api/internal/infrastructure/csvexport"
	infrapdf "github.com/marjoc/farmacia-api/internal/infrastructure/pdf"
	"github.com/marjoc/farmacia-api/internal/infrastructure/postgres"
	httpRouter "github.com/marjoc/farmacia-api/internal/interfaces/http"
	"github.com/marjoc/farmacia-api/pkg/config"
	"github.com/marjoc/farmacia-api/pkg/logger"
	"github.com/marjoc/farmacia-api/pkg/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	metrics.Init()

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, cfg.Auth.HandleDomain)
	productUC := usecase.NewProductUseCase(productRepo)
	customerUC := usecase.NewCustomerUseCase(customerRepo)
	dashboardUC := usecase.NewDashboardUseCase(customerRepo, productRepo)
	commitSaleUC := sales.NewCommitSaleUseCase(txRunner, log)
	listSalesUC := sales.NewListSalesUseCase(saleRepo)
	reportUC := reports.NewReportUseCase(saleRepo, productRepo, csvexport.NewRenderer(), infrapdf.NewMarotoReportGenerator())

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	registerSwagger(app, "./docs/swagger.json", log)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		DashboardUC: dashboardUC,
		CustomerUC:  customerUC,
		ProductUC:   productUC,
		CommitSale:  commitSaleUC,
		ListSales:   listSalesUC,
		ReportUC:    reportUC,
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

// registerSwagger monta la UI de swagger solo si el spec generado existe.
// swagger.New lee el archivo al construirse y entra en pánico si falta, así
// que sin docs generados el servidor arranca igual, solo sin la UI.
func registerSwagger(app *fiber.App, specPath string, log *logger.Logger) {
	if _, err := os.Stat(specPath); err != nil {
		log.Warn().Str("path", specPath).Msg("spec de swagger ausente, UI deshabilitada")
		return
	}
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: specPath,
		Path:     "docs",
		Title:    "Farmacia API",
	}))
}
