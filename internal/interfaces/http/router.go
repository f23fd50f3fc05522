package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jcastillo/AgroStock-api/internal/application/auth"
	"github.com/jcastillo/AgroStock-api/internal/application/fumigation"
	"github.com/jcastillo/AgroStock-api/internal/application/stock"
	"github.com/jcastillo/AgroStock-api/internal/application/usecase"
	"github.com/jcastillo/AgroStock-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.UseCase
	ProductUC    *usecase.ProductUseCase
	WarehouseUC  *usecase.WarehouseUseCase
	PurchaseUC   *usecase.PurchaseUseCase
	TransferUC   *usecase.TransferUseCase
	UserUC       *usecase.UserUseCase
	ActivityUC   *usecase.ActivityUseCase
	ExpenseUC    *stock.ExpenseUseCase
	DeliveryUC   *stock.DeliveryUseCase
	ShipUC       *stock.TransferUseCase
	FumigationUC *fumigation.UseCase
	JWTSecret    string
}

// Router registra las rutas de la API. Todo bajo /api y protegido por JWT,
// salvo /auth/login y /health. Aprobaciones, rechazos y administración de
// usuarios exigen rol.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	supervisorUp := RequireRole(entity.RoleAdmin, entity.RoleSupervisor)
	adminOnly := RequireRole(entity.RoleAdmin)

	// Auth: login público; register solo admin
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)
	api.Post("/auth/register", AuthMiddleware(deps.JWTSecret), adminOnly, authHandler.Register)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Products
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", supervisorUp, productHandler.Delete)

	// Warehouses
	warehouses := protected.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Post("/", supervisorUp, warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.GetByID)
	warehouses.Put("/:id", supervisorUp, warehouseHandler.Update)

	// Purchases + deliveries
	purchaseHandler := NewPurchaseHandler(deps.PurchaseUC, deps.DeliveryUC)
	purchases := protected.Group("/purchases")
	purchases.Post("/", purchaseHandler.Create)
	purchases.Get("/", purchaseHandler.List)
	purchases.Get("/:id", purchaseHandler.GetByID)
	purchases.Post("/:id/approve", supervisorUp, purchaseHandler.Approve)
	purchases.Post("/:id/cancel", supervisorUp, purchaseHandler.Cancel)
	purchases.Post("/:id/deliveries", purchaseHandler.AddDelivery)
	deliveries := protected.Group("/deliveries")
	deliveries.Post("/:id/transit", purchaseHandler.MarkInTransit)
	deliveries.Post("/:id/complete", purchaseHandler.CompleteDelivery)
	deliveries.Post("/:id/cancel", purchaseHandler.CancelDelivery)

	// Transfers
	transferHandler := NewTransferHandler(deps.TransferUC, deps.ShipUC)
	transfers := protected.Group("/transfers")
	transfers.Post("/", transferHandler.Create)
	transfers.Get("/", transferHandler.List)
	transfers.Get("/:id", transferHandler.GetByID)
	transfers.Post("/:id/approve", supervisorUp, transferHandler.Approve)
	transfers.Post("/:id/reject", supervisorUp, transferHandler.Reject)
	transfers.Post("/:id/ship", transferHandler.Ship)
	transfers.Post("/:id/receive", transferHandler.Receive)

	// Expenses
	expenses := protected.Group("/expenses")
	expenseHandler := NewExpenseHandler(deps.ExpenseUC)
	expenses.Post("/", expenseHandler.Create)
	expenses.Get("/", expenseHandler.List)
	expenses.Get("/:id", expenseHandler.GetByID)

	// Activities (solo lectura)
	activityHandler := NewActivityHandler(deps.ActivityUC)
	protected.Get("/activities", activityHandler.List)

	// Fumigations + PDF
	fumigationHandler := NewFumigationHandler(deps.FumigationUC)
	fumigations := protected.Group("/fumigations")
	fumigations.Post("/", fumigationHandler.Create)
	fumigations.Get("/", fumigationHandler.List)
	fumigations.Get("/:id", fumigationHandler.GetByID)
	fumigations.Post("/:id/applied", fumigationHandler.MarkApplied)
	fumigations.Post("/:id/cancel", fumigationHandler.Cancel)
	fumigations.Post("/:id/pdf", fumigationHandler.GeneratePDF)
	fumigations.Get("/:id/pdf", fumigationHandler.DownloadPDF)
	fumigations.Get("/:id/pdf/metadata", fumigationHandler.PDFMetadata)
	fumigations.Delete("/:id/pdf", fumigationHandler.DeletePDF)

	// Users (escritura y listado solo admin)
	userHandler := NewUserHandler(deps.UserUC)
	users := protected.Group("/users")
	users.Get("/me", userHandler.Me)
	users.Post("/", adminOnly, userHandler.Create)
	users.Get("/", adminOnly, userHandler.List)
	users.Put("/:id", adminOnly, userHandler.Update)
}
