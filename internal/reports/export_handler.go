package reports

import (
	"fmt"

	"agrostore-backend/internal/auth"
	"agrostore-backend/internal/database"
	"agrostore-backend/internal/models"
	"agrostore-backend/internal/stock"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

// GET /api/export/xlsx
// Full workbook export: a Sales sheet, a Purchases sheet and a current Stock
// sheet computed by the aggregation engine. Same columns the shop always
// printed from its old spreadsheet export.
func ExportXLSXHandler() fiber.Handler {
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
		if err := database.DB.Preload("Product").Where("shop_id = ?", shopID).Order("id").Find(&sales).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not load sales")
		}
		var purchases []models.Purchase
		if err := database.DB.Preload("Product").Where("shop_id = ?", shopID).Order("id").Find(&purchases).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not load purchases")
		}

		f := excelize.NewFile()
		defer f.Close()

		if err := f.SetSheetName("Sheet1", "Sales"); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not build workbook")
		}
		if _, err := f.NewSheet("Purchases"); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not build workbook")
		}
		if _, err := f.NewSheet("Stock"); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not build workbook")
		}

		salesHeader := []interface{}{"Date", "Product", "Quantity", "Rate", "Amount", "Profit", "Customer", "Phone", "Status", "Paid", "Remaining", "Notes"}
		_ = f.SetSheetRow("Sales", "A1", &salesHeader)
		for i, s := range sales {
			row := []interface{}{
				s.Date, s.Product.Name, s.Quantity, s.Rate, s.TotalAmount, s.Profit,
				s.CustomerName, s.CustomerPhone, string(s.PaymentStatus), s.AmountPaid, s.RemainingAmount, s.Notes,
			}
			_ = f.SetSheetRow("Sales", fmt.Sprintf("A%d", i+2), &row)
		}

		purchasesHeader := []interface{}{"Date", "Product", "Quantity", "Rate", "Amount", "Supplier", "Notes"}
		_ = f.SetSheetRow("Purchases", "A1", &purchasesHeader)
		for i, p := range purchases {
			row := []interface{}{p.Date, p.Product.Name, p.Quantity, p.Rate, p.TotalAmount, p.Supplier, p.Notes}
			_ = f.SetSheetRow("Purchases", fmt.Sprintf("A%d", i+2), &row)
		}

		stockHeader := []interface{}{"Product", "Category", "Unit", "Bought", "Sold", "Stock", "Avg Rate", "Value", "Profit"}
		_ = f.SetSheetRow("Stock", "A1", &stockHeader)
		for i, p := range products {
			st := stock.ComputeProductStock(p.ID, purchases, sales)
			row := []interface{}{
				p.Name, p.Category, p.Unit,
				st.TotalBought, st.TotalSold, st.StockLeft, st.AvgPurchaseRate, st.StockValue, st.TotalProfit,
			}
			_ = f.SetSheetRow("Stock", fmt.Sprintf("A%d", i+2), &row)
		}

		buf, err := f.WriteToBuffer()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not write workbook")
		}

		filename := fmt.Sprintf("agrostore_export_%s.xlsx", stock.TodayISO())
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		return c.Send(buf.Bytes())
	}
}
