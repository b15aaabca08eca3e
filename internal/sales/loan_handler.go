package sales

import (
	"time"

	"agrostore-backend/internal/auth"
	"agrostore-backend/internal/database"
	"agrostore-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type LoanRow struct {
	SaleResponse
	LoanStatus string `json:"loan_status"` // pending, partial, overdue
}

type LoanListResponse struct {
	TotalOutstanding float64   `json:"total_outstanding"`
	TotalLoans       int       `json:"total_loans"`
	Loans            []LoanRow `json:"loans"`
}

type CreateLoanPaymentRequest struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

func loanStatus(s models.Sale, now time.Time) string {
	if s.DueDate != nil && *s.DueDate != "" {
		if due, err := time.Parse("2006-01-02", *s.DueDate); err == nil && due.Before(now) {
			return "overdue"
		}
	}
	if s.AmountPaid > 0 {
		return "partial"
	}
	return "pending"
}

// GET /api/loans
// Every sale that still has an outstanding balance, with the total owed.
func ListLoansHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		shopID, err := auth.ResolveShopID(c)
		if err != nil {
			return err
		}

		var loans []models.Sale
		if err := database.DB.
			Preload("Product").
			Where("shop_id = ? AND remaining_amount > 0", shopID).
			Order("id DESC").
			Find(&loans).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not list loans")
		}

		now := time.Now().UTC()
		resp := LoanListResponse{Loans: make([]LoanRow, 0, len(loans))}
		for _, s := range loans {
			resp.TotalOutstanding += s.RemainingAmount
			resp.Loans = append(resp.Loans, LoanRow{
				SaleResponse: toSaleResponse(s, s.Product.Name),
				LoanStatus:   loanStatus(s, now),
			})
		}
		resp.TotalLoans = len(resp.Loans)

		return c.JSON(resp)
	}
}

// POST /api/loans/:id/payments
// Records a repayment against a credit sale and rolls the payment status
// forward; a fully repaid sale ends up back at "cash".
func CreateLoanPaymentHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		shopID, err := auth.ResolveShopID(c)
		if err != nil {
			return err
		}

		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "invalid sale id")
		}

		var body CreateLoanPaymentRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if err := validate.Struct(body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "a positive amount is required")
		}

		var sale models.Sale
		if err := database.DB.Preload("Product").First(&sale, "id = ? AND shop_id = ?", id, shopID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "sale not found")
		}

		if sale.RemainingAmount <= 0 {
			return fiber.NewError(fiber.StatusConflict, "sale has no outstanding balance")
		}
		if body.Amount > sale.RemainingAmount {
			return fiber.NewError(fiber.StatusBadRequest, "payment exceeds the outstanding balance")
		}

		sale.AmountPaid += body.Amount
		sale.RemainingAmount = sale.TotalAmount - sale.AmountPaid
		if sale.RemainingAmount > 0 {
			sale.PaymentStatus = models.PaymentPartial
		} else {
			sale.PaymentStatus = models.PaymentCash
		}

		if err := database.DB.Save(&sale).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not record payment")
		}

		return c.JSON(toSaleResponse(sale, sale.Product.Name))
	}
}
