package admin

import (
	"agrostore-backend/internal/auth"
	"agrostore-backend/internal/database"
	"agrostore-backend/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

type ShopRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	Address string `json:"address" validate:"max=255"`
	Phone   string `json:"phone" validate:"max=50"`
}

type ShopResponse struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

func toShopResponse(s models.Shop) ShopResponse {
	return ShopResponse{ID: s.ID, Name: s.Name, Address: s.Address, Phone: s.Phone}
}

// POST /api/shops
func CreateShopHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}

		var body ShopRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if err := validate.Struct(body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "name is required")
		}

		shop := models.Shop{
			UserID:  userID,
			Name:    body.Name,
			Address: body.Address,
			Phone:   body.Phone,
		}

		if err := database.DB.Create(&shop).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not create shop")
		}

		return c.Status(fiber.StatusCreated).JSON(toShopResponse(shop))
	}
}

// GET /api/shops
func ListShopsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}

		var shops []models.Shop
		if err := database.DB.Where("user_id = ?", userID).Order("id").Find(&shops).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not list shops")
		}

		resp := make([]ShopResponse, 0, len(shops))
		for _, s := range shops {
			resp = append(resp, toShopResponse(s))
		}
		return c.JSON(resp)
	}
}

// PUT /api/shops/:id
func UpdateShopHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}

		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "invalid shop id")
		}

		var body ShopRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if err := validate.Struct(body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "name is required")
		}

		var shop models.Shop
		if err := database.DB.First(&shop, "id = ? AND user_id = ?", id, userID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "shop not found")
		}

		shop.Name = body.Name
		shop.Address = body.Address
		shop.Phone = body.Phone

		if err := database.DB.Save(&shop).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not update shop")
		}

		return c.JSON(toShopResponse(shop))
	}
}

// DELETE /api/shops/:id
// Refused while the shop still holds records; deleting a shop must not orphan
// or silently drop its transaction history.
func DeleteShopHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}

		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "invalid shop id")
		}

		var shop models.Shop
		if err := database.DB.First(&shop, "id = ? AND user_id = ?", id, userID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "shop not found")
		}

		var count int64
		database.DB.Model(&models.Sale{}).Where("shop_id = ?", shop.ID).Count(&count)
		if count == 0 {
			database.DB.Model(&models.Purchase{}).Where("shop_id = ?", shop.ID).Count(&count)
		}
		if count == 0 {
			database.DB.Model(&models.Product{}).Where("shop_id = ?", shop.ID).Count(&count)
		}
		if count == 0 {
			database.DB.Model(&models.CropPurchase{}).Where("shop_id = ?", shop.ID).Count(&count)
		}
		if count > 0 {
			return fiber.NewError(fiber.StatusConflict, "shop still has records, delete them first")
		}

		if err := database.DB.Delete(&shop).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not delete shop")
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
