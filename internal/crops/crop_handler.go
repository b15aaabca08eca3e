package crops

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

type CreateCropPurchaseRequest struct {
	CropType string  `json:"crop_type" validate:"required,max=100"`
	Quantity float64 `json:"quantity" validate:"required,gt=0"`
	Rate     float64 `json:"rate" validate:"gte=0"`
	Date     string  `json:"date" validate:"required"`
	Supplier string  `json:"supplier" validate:"max=100"`
	Notes    string  `json:"notes" validate:"max=255"`
}

type UpdateCropStatusRequest struct {
	Status models.CropStatus `json:"status" validate:"required,oneof=in_storage sold"`
}

type CropPurchaseResponse struct {
	ID          uint    `json:"id"`
	CropType    string  `json:"crop_type"`
	Quantity    float64 `json:"quantity"`
	Rate        float64 `json:"rate"`
	TotalAmount float64 `json:"total_amount"`
	Date        string  `json:"date"`
	Supplier    string  `json:"supplier"`
	Notes       string  `json:"notes"`
	Status      models.CropStatus `json:"status"`
}

func toCropPurchaseResponse(cp models.CropPurchase) CropPurchaseResponse {
	return CropPurchaseResponse{
		ID:          cp.ID,
		CropType:    cp.CropType,
		Quantity:    cp.Quantity,
		Rate:        cp.Rate,
		TotalAmount: cp.TotalAmount,
		Date:        cp.Date,
		Supplier:    cp.Supplier,
		Notes:       cp.Notes,
		Status:      cp.Status,
	}
}

// GET /api/crop-purchases
func ListCropPurchasesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		shopID, err := auth.ResolveShopID(c)
		if err != nil {
			return err
		}

		var cropPurchases []models.CropPurchase
		if err := database.DB.
			Where("shop_id = ?", shopID).
			Order("id DESC").
			Find(&cropPurchases).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not list crop purchases")
		}

		resp := make([]CropPurchaseResponse, 0, len(cropPurchases))
		for _, cp := range cropPurchases {
			resp = append(resp, toCropPurchaseResponse(cp))
		}
		return c.JSON(resp)
	}
}

// POST /api/crop-purchases
// New lots always start in storage; they leave the inventory view only when
// marked sold.
func CreateCropPurchaseHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		shopID, err := auth.ResolveShopID(c)
		if err != nil {
			return err
		}

		var body CreateCropPurchaseRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if err := validate.Struct(body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "crop_type, positive quantity and date are required")
		}
		if _, err := time.Parse("2006-01-02", body.Date); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "date must be 'YYYY-MM-DD'")
		}

		cropPurchase := models.CropPurchase{
			ShopID:      shopID,
			CropType:    body.CropType,
			Quantity:    body.Quantity,
			Rate:        body.Rate,
			TotalAmount: body.Quantity * body.Rate,
			Date:        body.Date,
			Supplier:    body.Supplier,
			Notes:       body.Notes,
			Status:      models.CropInStorage,
		}

		if err := database.DB.Create(&cropPurchase).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not create crop purchase")
		}

		return c.Status(fiber.StatusCreated).JSON(toCropPurchaseResponse(cropPurchase))
	}
}

// PATCH /api/crop-purchases/:id/status
func UpdateCropStatusHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		shopID, err := auth.ResolveShopID(c)
		if err != nil {
			return err
		}

		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "invalid crop purchase id")
		}

		var body UpdateCropStatusRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if err := validate.Struct(body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "status must be 'in_storage' or 'sold'")
		}

		var cropPurchase models.CropPurchase
		if err := database.DB.First(&cropPurchase, "id = ? AND shop_id = ?", id, shopID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "crop purchase not found")
		}

		cropPurchase.Status = body.Status
		if err := database.DB.Save(&cropPurchase).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not update status")
		}

		return c.JSON(toCropPurchaseResponse(cropPurchase))
	}
}

// GET /api/crop-inventory
// Storage holdings grouped by crop type, via the aggregation engine.
func CropInventoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		shopID, err := auth.ResolveShopID(c)
		if err != nil {
			return err
		}

		var cropPurchases []models.CropPurchase
		if err := database.DB.Where("shop_id = ?", shopID).Order("id").Find(&cropPurchases).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not load crop purchases")
		}

		return c.JSON(stock.ComputeCropInventory(cropPurchases))
	}
}
