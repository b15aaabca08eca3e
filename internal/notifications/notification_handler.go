package notifications

import (
	"agrostore-backend/internal/auth"
	"agrostore-backend/internal/database"
	"agrostore-backend/internal/models"
	"agrostore-backend/internal/stock"

	"github.com/gofiber/fiber/v2"
)

// GET /api/notifications
// Low-stock warnings followed by overdue-loan alerts, recomputed fresh on
// every call. Nothing is stored; an alert repeats until its cause is fixed.
func ListNotificationsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		shopID, err := auth.ResolveShopID(c)
		if err != nil {
			return err
		}

		var products []models.Product
		if err := database.DB.Where("shop_id = ?", shopID).Order("id").Find(&products).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not load products")
		}

		var sales []models.Sale
		if err := database.DB.Where("shop_id = ?", shopID).Order("id").Find(&sales).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not load sales")
		}

		var purchases []models.Purchase
		if err := database.DB.Where("shop_id = ?", shopID).Find(&purchases).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not load purchases")
		}

		return c.JSON(stock.ComputeNotifications(products, sales, purchases))
	}
}
