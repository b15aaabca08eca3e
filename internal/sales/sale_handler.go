package sales

import (
	"time"

	"agrostore-backend/internal/auth"
	"agrostore-backend/internal/database"
	"agrostore-backend/internal/models"
	"agrostore-backend/internal/stock"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

type CreateSaleRequest struct {
	ProductID       uint    `json:"product_id" validate:"required"`
	Quantity        float64 `json:"quantity" validate:"required,gt=0"`
	Rate            float64 `json:"rate" validate:"gte=0"`
	Date            string  `json:"date" validate:"required"`
	CustomerName    string  `json:"customer_name" validate:"max=100"`
	CustomerPhone   string  `json:"customer_phone" validate:"max=50"`
	CustomerAddress string  `json:"customer_address" validate:"max=255"`
	IsLoan          bool    `json:"is_loan"`
	AmountPaid      float64 `json:"amount_paid" validate:"gte=0"`
	DueDate         string  `json:"due_date"`
	Notes           string  `json:"notes" validate:"max=255"`
}

type SaleResponse struct {
	ID              uint    `json:"id"`
	ProductID       uint    `json:"product_id"`
	ProductName     string  `json:"product_name"`
	Quantity        float64 `json:"quantity"`
	Rate            float64 `json:"rate"`
	TotalAmount     float64 `json:"total_amount"`
	Profit          float64 `json:"profit"`
	Date            string  `json:"date"`
	CustomerName    string  `json:"customer_name"`
	CustomerPhone   string  `json:"customer_phone"`
	CustomerAddress string  `json:"customer_address"`
	PaymentStatus   models.PaymentStatus `json:"payment_status"`
	AmountPaid      float64 `json:"amount_paid"`
	RemainingAmount float64 `json:"remaining_amount"`
	DueDate         *string `json:"due_date"`
	Notes           string  `json:"notes"`
}

// derivePayment turns the checkout form's loan toggle into the stored
// payment fields. A cash sale is fully paid by definition; a credit sale with
// nothing outstanding collapses back to cash.
func derivePayment(total float64, isLoan bool, amountPaid float64, dueDateStr string) (models.PaymentStatus, float64, float64, *string) {
	if !isLoan {
		return models.PaymentCash, total, 0, nil
	}

	remaining := total - amountPaid
	var dueDate *string
	if dueDateStr != "" {
		dueDate = &dueDateStr
	}

	status := models.PaymentCash
	if remaining > 0 {
		if amountPaid > 0 {
			status = models.PaymentPartial
		} else {
			status = models.PaymentLoan
		}
	}
	return status, amountPaid, remaining, dueDate
}

func toSaleResponse(s models.Sale, productName string) SaleResponse {
	return SaleResponse{
		ID:              s.ID,
		ProductID:       s.ProductID,
		ProductName:     productName,
		Quantity:        s.Quantity,
		Rate:            s.Rate,
		TotalAmount:     s.TotalAmount,
		Profit:          s.Profit,
		Date:            s.Date,
		CustomerName:    s.CustomerName,
		CustomerPhone:   s.CustomerPhone,
		CustomerAddress: s.CustomerAddress,
		PaymentStatus:   s.PaymentStatus,
		AmountPaid:      s.AmountPaid,
		RemainingAmount: s.RemainingAmount,
		DueDate:         s.DueDate,
		Notes:           s.Notes,
	}
}

// GET /api/sales
func ListSalesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		shopID, err := auth.ResolveShopID(c)
		if err != nil {
			return err
		}

		var sales []models.Sale
		if err := database.DB.
			Preload("Product").
			Where("shop_id = ?", shopID).
			Order("id DESC").
			Find(&sales).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not list sales")
		}

		resp := make([]SaleResponse, 0, len(sales))
		for _, s := range sales {
			resp = append(resp, toSaleResponse(s, s.Product.Name))
		}
		return c.JSON(resp)
	}
}

// POST /api/sales
// Entry-time arithmetic: total = quantity * rate, profit is frozen against
// the weighted-average purchase rate as of this moment, payment status is
// derived from what was paid. A sale larger than the current stock position
// is rejected outright.
func CreateSaleHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		shopID, err := auth.ResolveShopID(c)
		if err != nil {
			return err
		}

		var body CreateSaleRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if err := validate.Struct(body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "product_id, positive quantity and date are required")
		}
		if _, err := time.Parse("2006-01-02", body.Date); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "date must be 'YYYY-MM-DD'")
		}
		if body.DueDate != "" {
			if _, err := time.Parse("2006-01-02", body.DueDate); err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "due_date must be 'YYYY-MM-DD'")
			}
		}

		var product models.Product
		if err := database.DB.First(&product, "id = ? AND shop_id = ?", body.ProductID, shopID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "product not found")
		}

		var purchases []models.Purchase
		if err := database.DB.Where("shop_id = ?", shopID).Find(&purchases).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not load purchases")
		}
		var existing []models.Sale
		if err := database.DB.Where("shop_id = ?", shopID).Find(&existing).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not load sales")
		}

		st := stock.ComputeProductStock(body.ProductID, purchases, existing)
		if body.Quantity > st.StockLeft {
			return fiber.NewError(fiber.StatusBadRequest, "not enough stock")
		}

		total := body.Quantity * body.Rate
		profit := body.Quantity * (body.Rate - st.AvgPurchaseRate)

		paymentStatus, paid, remaining, dueDate := derivePayment(total, body.IsLoan, body.AmountPaid, body.DueDate)

		sale := models.Sale{
			ShopID:          shopID,
			ProductID:       body.ProductID,
			Quantity:        body.Quantity,
			Rate:            body.Rate,
			TotalAmount:     total,
			Profit:          profit,
			Date:            body.Date,
			CustomerName:    body.CustomerName,
			CustomerPhone:   body.CustomerPhone,
			CustomerAddress: body.CustomerAddress,
			PaymentStatus:   paymentStatus,
			AmountPaid:      paid,
			RemainingAmount: remaining,
			DueDate:         dueDate,
			Notes:           body.Notes,
		}

		if err := database.DB.Create(&sale).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not create sale")
		}

		return c.Status(fiber.StatusCreated).JSON(toSaleResponse(sale, product.Name))
	}
}
