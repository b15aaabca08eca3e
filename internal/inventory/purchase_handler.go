package inventory

import (
	"time"

	"agrostore-backend/internal/auth"
	"agrostore-backend/internal/database"
	"agrostore-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreatePurchaseRequest struct {
	ProductID uint    `json:"product_id" validate:"required"`
	Quantity  float64 `json:"quantity" validate:"required,gt=0"`
	Rate      float64 `json:"rate" validate:"gte=0"`
	Date      string  `json:"date" validate:"required"`
	Supplier  string  `json:"supplier" validate:"max=100"`
	Notes     string  `json:"notes" validate:"max=255"`
}

type PurchaseResponse struct {
	ID          uint    `json:"id"`
	ProductID   uint    `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    float64 `json:"quantity"`
	Rate        float64 `json:"rate"`
	TotalAmount float64 `json:"total_amount"`
	Date        string  `json:"date"`
	Supplier    string  `json:"supplier"`
	Notes       string  `json:"notes"`
}

// GET /api/purchases
func ListPurchasesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		shopID, err := auth.ResolveShopID(c)
		if err != nil {
			return err
		}

		var purchases []models.Purchase
		if err := database.DB.
			Preload("Product").
			Where("shop_id = ?", shopID).
			Order("id DESC").
			Find(&purchases).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not list purchases")
		}

		resp := make([]PurchaseResponse, 0, len(purchases))
		for _, p := range purchases {
			resp = append(resp, PurchaseResponse{
				ID:          p.ID,
				ProductID:   p.ProductID,
				ProductName: p.Product.Name,
				Quantity:    p.Quantity,
				Rate:        p.Rate,
				TotalAmount: p.TotalAmount,
				Date:        p.Date,
				Supplier:    p.Supplier,
				Notes:       p.Notes,
			})
		}
		return c.JSON(resp)
	}
}

// POST /api/purchases
func CreatePurchaseHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		shopID, err := auth.ResolveShopID(c)
		if err != nil {
			return err
		}

		var body CreatePurchaseRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if err := validate.Struct(body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "product_id, positive quantity and date are required")
		}
		if _, err := time.Parse("2006-01-02", body.Date); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "date must be 'YYYY-MM-DD'")
		}

		var product models.Product
		if err := database.DB.First(&product, "id = ? AND shop_id = ?", body.ProductID, shopID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "product not found")
		}

		// Total is fixed at entry time, the same way the paper register works.
		purchase := models.Purchase{
			ShopID:      shopID,
			ProductID:   body.ProductID,
			Quantity:    body.Quantity,
			Rate:        body.Rate,
			TotalAmount: body.Quantity * body.Rate,
			Date:        body.Date,
			Supplier:    body.Supplier,
			Notes:       body.Notes,
		}

		if err := database.DB.Create(&purchase).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not create purchase")
		}

		return c.Status(fiber.StatusCreated).JSON(PurchaseResponse{
			ID:          purchase.ID,
			ProductID:   purchase.ProductID,
			ProductName: product.Name,
			Quantity:    purchase.Quantity,
			Rate:        purchase.Rate,
			TotalAmount: purchase.TotalAmount,
			Date:        purchase.Date,
			Supplier:    purchase.Supplier,
			Notes:       purchase.Notes,
		})
	}
}
