package inventory

import (
	"agrostore-backend/internal/auth"
	"agrostore-backend/internal/database"
	"agrostore-backend/internal/models"
	"agrostore-backend/internal/stock"

	"github.com/gofiber/fiber/v2"
)

type StockRow struct {
	ProductID   uint    `json:"product_id"`
	ProductName string  `json:"product_name"`
	Category    string  `json:"category"`
	Unit        string  `json:"unit"`
	MinStock    float64 `json:"min_stock"`
	LowStock    bool    `json:"low_stock"`
	stock.ProductStock
}

// GET /api/stock
// Current stock position of every product in the shop, straight from the
// aggregation engine over the full purchase/sale history.
func GetStockHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		shopID, err := auth.ResolveShopID(c)
		if err != nil {
			return err
		}

		var products []models.Product
		if err := database.DB.Where("shop_id = ?", shopID).Order("id").Find(&products).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not list products")
		}

		var purchases []models.Purchase
		if err := database.DB.Where("shop_id = ?", shopID).Find(&purchases).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not load purchases")
		}

		var sales []models.Sale
		if err := database.DB.Where("shop_id = ?", shopID).Find(&sales).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not load sales")
		}

		rows := make([]StockRow, 0, len(products))
		for _, p := range products {
			st := stock.ComputeProductStock(p.ID, purchases, sales)
			rows = append(rows, StockRow{
				ProductID:    p.ID,
				ProductName:  p.Name,
				Category:     p.Category,
				Unit:         p.Unit,
				MinStock:     p.MinStock,
				LowStock:     st.StockLeft < p.MinStock,
				ProductStock: st,
			})
		}

		return c.JSON(rows)
	}
}
