package dashboard

import (
	"strings"

	"agrostore-backend/internal/auth"
	"agrostore-backend/internal/database"
	"agrostore-backend/internal/models"
	"agrostore-backend/internal/stock"

	"github.com/gofiber/fiber/v2"
)

type DashboardResponse struct {
	Date            string  `json:"date"`
	Month           string  `json:"month"`
	TodaySales      float64 `json:"today_sales"`
	TodayProfit     float64 `json:"today_profit"`
	PendingLoans    float64 `json:"pending_loans"`
	TotalStockValue float64 `json:"total_stock_value"`
	MonthlySales    float64 `json:"monthly_sales"`
	MonthlyProfit   float64 `json:"monthly_profit"`
	ProductCount    int     `json:"product_count"`
	Transactions    int     `json:"transactions"`
}

// GET /api/dashboard
// The at-a-glance numbers: today's and this month's figures use the profit
// frozen on each sale at entry time, while the stock value comes from the
// aggregation engine's current position.
func GetDashboardHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		shopID, err := auth.ResolveShopID(c)
		if err != nil {
			return err
		}

		var products []models.Product
		if err := database.DB.Where("shop_id = ?", shopID).Find(&products).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not load products")
		}
		var sales []models.Sale
		if err := database.DB.Where("shop_id = ?", shopID).Find(&sales).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not load sales")
		}
		var purchases []models.Purchase
		if err := database.DB.Where("shop_id = ?", shopID).Find(&purchases).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not load purchases")
		}

		today := stock.TodayISO()
		month := stock.ThisMonthISO()

		resp := DashboardResponse{
			Date:         today,
			Month:        month,
			ProductCount: len(products),
			Transactions: len(sales) + len(purchases),
		}

		for _, s := range sales {
			if s.Date == today {
				resp.TodaySales += s.TotalAmount
				resp.TodayProfit += s.Profit
			}
			if strings.HasPrefix(s.Date, month) {
				resp.MonthlySales += s.TotalAmount
				resp.MonthlyProfit += s.Profit
			}
			resp.PendingLoans += s.RemainingAmount
		}

		for _, p := range products {
			resp.TotalStockValue += stock.ComputeProductStock(p.ID, purchases, sales).StockValue
		}

		return c.JSON(resp)
	}
}
