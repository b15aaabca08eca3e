package customers

import (
	"agrostore-backend/internal/auth"
	"agrostore-backend/internal/database"
	"agrostore-backend/internal/models"
	"agrostore-backend/internal/stock"

	"github.com/gofiber/fiber/v2"
)

// GET /api/customers
// Customer ledger derived from the sales history: totals, outstanding loans
// and last purchase per customer name. There is no customers table; identity
// is the exact name written on the sale.
func ListCustomersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		shopID, err := auth.ResolveShopID(c)
		if err != nil {
			return err
		}

		var sales []models.Sale
		if err := database.DB.Where("shop_id = ?", shopID).Order("id").Find(&sales).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not load sales")
		}

		return c.JSON(stock.ComputeCustomerSummaries(sales))
	}
}
