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

	"github.com/jcastillo/AgroStock-api/internal/application/audit"
	"github.com/jcastillo/AgroStock-api/internal/application/auth"
	"github.com/jcastillo/AgroStock-api/internal/application/fumigation"
	"github.com/jcastillo/AgroStock-api/internal/application/stock"
	"github.com/jcastillo/AgroStock-api/internal/application/usecase"
	infrapdf "github.com/jcastillo/AgroStock-api/internal/infrastructure/pdf"
	"github.com/jcastillo/AgroStock-api/internal/infrastructure/postgres"
	httpRouter "github.com/jcastillo/AgroStock-api/internal/interfaces/http"
	"github.com/jcastillo/AgroStock-api/pkg/config"
	"github.com/jcastillo/AgroStock-api/pkg/logger"
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

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	purchaseRepo := postgres.NewPurchaseRepository(pool)
	transferRepo := postgres.NewTransferRepository(pool)
	expenseRepo := postgres.NewExpenseRepository(pool)
	activityRepo := postgres.NewActivityRepository(pool)
	fumigationRepo := postgres.NewFumigationRepository(pool)
	fumigationPDFRepo := postgres.NewFumigationPDFRepository(pool)
	folioRepo := postgres.NewFolioRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	recorder := audit.NewRecorder(activityRepo, log)

	// Workflows que mueven stock (transaccionales)
	expenseUC := stock.NewExpenseUseCase(txRunner, expenseRepo, recorder)
	deliveryUC := stock.NewDeliveryUseCase(txRunner, recorder)
	shipUC := stock.NewTransferUseCase(txRunner, recorder)

	// Ciclo de vida y CRUD
	productUC := usecase.NewProductUseCase(productRepo, warehouseRepo, recorder)
	warehouseUC := usecase.NewWarehouseUseCase(warehouseRepo, recorder)
	purchaseUC := usecase.NewPurchaseUseCase(txRunner, purchaseRepo, productRepo, recorder)
	transferUC := usecase.NewTransferUseCase(txRunner, transferRepo, productRepo, warehouseRepo, recorder)
	userUC := usecase.NewUserUseCase(userRepo, recorder)
	activityUC := usecase.NewActivityUseCase(activityRepo)
	authUC := auth.NewUseCase(userRepo, cfg.JWT)

	// Órdenes de fumigación + PDF almacenado en la base
	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	fumigationUC := fumigation.NewUseCase(fumigationRepo, fumigationPDFRepo, folioRepo, pdfGenerator, recorder)

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
		Title:    "AgroStock API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		ProductUC:    productUC,
		WarehouseUC:  warehouseUC,
		PurchaseUC:   purchaseUC,
		TransferUC:   transferUC,
		UserUC:       userUC,
		ActivityUC:   activityUC,
		ExpenseUC:    expenseUC,
		DeliveryUC:   deliveryUC,
		ShipUC:       shipUC,
		FumigationUC: fumigationUC,
		JWTSecret:    cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("apagando servidor")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error().Err(err).Msg("apagado con error")
	}
}
