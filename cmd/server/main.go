package main

import (
	"strings"

	"agrostore-backend/internal/admin"
	"agrostore-backend/internal/auth"
	"agrostore-backend/internal/backup"
	"agrostore-backend/internal/config"
	"agrostore-backend/internal/crops"
	"agrostore-backend/internal/customers"
	"agrostore-backend/internal/dashboard"
	"agrostore-backend/internal/database"
	"agrostore-backend/internal/inventory"
	"agrostore-backend/internal/notifications"
	"agrostore-backend/internal/reports"
	"agrostore-backend/internal/sales"
	"agrostore-backend/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	log := logger.Must(logger.New())
	defer log.Sync()

	cfg := config.Load()
	database.Init(cfg, log)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Error("unexpected error", zap.Error(err), zap.String("path", c.Path()))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "unexpected server error",
			})
		},
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/register", auth.RegisterHandler(cfg))
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())

	// Shop management
	protected.Post("/shops", admin.CreateShopHandler())
	protected.Get("/shops", admin.ListShopsHandler())
	protected.Put("/shops/:id", admin.UpdateShopHandler())
	protected.Delete("/shops/:id", admin.DeleteShopHandler())

	// Products
	protected.Get("/products", inventory.ListProductsHandler())
	protected.Post("/products", inventory.CreateProductHandler())
	protected.Put("/products/:id", inventory.UpdateProductHandler())
	protected.Delete("/products/:id", inventory.DeleteProductHandler())

	// Purchases & stock position
	protected.Get("/purchases", inventory.ListPurchasesHandler())
	protected.Post("/purchases", inventory.CreatePurchaseHandler())
	protected.Get("/stock", inventory.GetStockHandler())

	// Sales & loans
	protected.Get("/sales", sales.ListSalesHandler())
	protected.Post("/sales", sales.CreateSaleHandler())
	protected.Get("/loans", sales.ListLoansHandler())
	protected.Post("/loans/:id/payments", sales.CreateLoanPaymentHandler())

	// Crop trading
	protected.Get("/crop-purchases", crops.ListCropPurchasesHandler())
	protected.Post("/crop-purchases", crops.CreateCropPurchaseHandler())
	protected.Patch("/crop-purchases/:id/status", crops.UpdateCropStatusHandler())
	protected.Get("/crop-inventory", crops.CropInventoryHandler())

	// Derived views
	protected.Get("/customers", customers.ListCustomersHandler())
	protected.Get("/notifications", notifications.ListNotificationsHandler())
	protected.Get("/dashboard", dashboard.GetDashboardHandler())

	// Reports & data export
	protected.Get("/reports/daily", reports.DailyReportHandler())
	protected.Get("/reports/monthly", reports.MonthlyReportHandler())
	protected.Get("/export/xlsx", reports.ExportXLSXHandler())
	protected.Get("/backup", backup.DownloadBackupHandler())
	protected.Post("/backup/restore", backup.RestoreBackupHandler())

	log.Info("server listening", zap.String("port", cfg.HTTPPort))
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
