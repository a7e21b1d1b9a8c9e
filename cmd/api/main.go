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

	appauth "github.com/jhoicas/ims-backend/internal/application/auth"
	"github.com/jhoicas/ims-backend/internal/application/catalog"
	"github.com/jhoicas/ims-backend/internal/application/ledger"
	"github.com/jhoicas/ims-backend/internal/application/report"
	"github.com/jhoicas/ims-backend/internal/infrastructure/export"
	infrapdf "github.com/jhoicas/ims-backend/internal/infrastructure/pdf"
	"github.com/jhoicas/ims-backend/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/ims-backend/internal/interfaces/http"
	"github.com/jhoicas/ims-backend/pkg/config"
	"github.com/jhoicas/ims-backend/pkg/logger"
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
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	productRepo := postgres.NewProductRepository(pool)
	txRepo := postgres.NewStockTransactionRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	clientRepo := postgres.NewClientRepository(pool)
	typeRepo := postgres.NewProductTypeRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	productUC := catalog.NewProductUseCase(productRepo)
	typeUC := catalog.NewProductTypeUseCase(typeRepo)
	supplierUC := catalog.NewSupplierUseCase(supplierRepo, txRepo, productRepo)
	clientUC := catalog.NewClientUseCase(clientRepo, txRepo, productRepo)
	applyUC := ledger.NewApplyTransactionUseCase(txRunner, supplierRepo, clientRepo)
	historyUC := ledger.NewHistoryUseCase(txRepo, productRepo, supplierRepo, clientRepo)
	reportUC := report.NewUseCase(txRepo, productRepo)
	authUC := appauth.NewUseCase(userRepo, appauth.JWTConfig{
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
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "IMS API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:     productUC,
		ProductTypeUC: typeUC,
		SupplierUC:    supplierUC,
		ClientUC:      clientUC,
		ApplyUC:       applyUC,
		HistoryUC:     historyUC,
		ReportUC:      reportUC,
		AuthUC:        authUC,
		Formatters: []report.Formatter{
			export.NewCSVFormatter(),
			infrapdf.NewMarotoReportFormatter(),
		},
		JWTSecret: cfg.JWT.Secret,
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
