package reports

import (
	"strings"
	"time"

	"agrostore-backend/internal/auth"
	"agrostore-backend/internal/database"
	"agrostore-backend/internal/models"
	"agrostore-backend/internal/stock"

	"github.com/gofiber/fiber/v2"
)

type ReportResponse struct {
	Period       string  `json:"period"` // "daily" or "monthly"
	Date         string  `json:"date"`
	TotalSales   float64 `json:"total_sales"`
	TotalProfit  float64 `json:"total_profit"`
	Transactions int     `json:"transactions"`
}

// GET /api/reports/daily?date=YYYY-MM-DD (defaults to today)
// Profit here is the per-sale figure frozen at entry time, matching what the
// shopkeeper saw when closing the day.
func DailyReportHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		shopID, err := auth.ResolveShopID(c)
		if err != nil {
			return err
		}

		date := c.Query("date", stock.TodayISO())
		if _, err := time.Parse("2006-01-02", date); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "date must be 'YYYY-MM-DD'")
		}

		var sales []models.Sale
		if err := database.DB.Where("shop_id = ? AND date = ?", shopID, date).Find(&sales).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not load sales")
		}

		resp := ReportResponse{Period: "daily", Date: date, Transactions: len(sales)}
		for _, s := range sales {
			resp.TotalSales += s.TotalAmount
			resp.TotalProfit += s.Profit
		}

		return c.JSON(resp)
	}
}

// GET /api/reports/monthly?month=YYYY-MM (defaults to the current month)
func MonthlyReportHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		shopID, err := auth.ResolveShopID(c)
		if err != nil {
			return err
		}

		month := c.Query("month", stock.ThisMonthISO())
		if _, err := time.Parse("2006-01", month); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "month must be 'YYYY-MM'")
		}

		var sales []models.Sale
		if err := database.DB.Where("shop_id = ?", shopID).Find(&sales).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not load sales")
		}

		resp := ReportResponse{Period: "monthly", Date: month}
		for _, s := range sales {
			if !strings.HasPrefix(s.Date, month) {
				continue
			}
			resp.TotalSales += s.TotalAmount
			resp.TotalProfit += s.Profit
			resp.Transactions++
		}

		return c.JSON(resp)
	}
}
