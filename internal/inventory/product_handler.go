package inventory

import (
	"agrostore-backend/internal/auth"
	"agrostore-backend/internal/database"
	"agrostore-backend/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

type ProductRequest struct {
	Name     string  `json:"name" validate:"required,max=100"`
	Category string  `json:"category" validate:"max=50"`
	Unit     string  `json:"unit" validate:"required,max=20"`
	MinStock float64 `json:"min_stock" validate:"gte=0"`
}

type ProductResponse struct {
	ID       uint    `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Unit     string  `json:"unit"`
	MinStock float64 `json:"min_stock"`
}

func toProductResponse(p models.Product) ProductResponse {
	return ProductResponse{
		ID:       p.ID,
		Name:     p.Name,
		Category: p.Category,
		Unit:     p.Unit,
		MinStock: p.MinStock,
	}
}

// GET /api/products
func ListProductsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		shopID, err := auth.ResolveShopID(c)
		if err != nil {
			return err
		}

		var products []models.Product
		if err := database.DB.Where("shop_id = ?", shopID).Order("id").Find(&products).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not list products")
		}

		resp := make([]ProductResponse, 0, len(products))
		for _, p := range products {
			resp = append(resp, toProductResponse(p))
		}
		return c.JSON(resp)
	}
}

// POST /api/products
func CreateProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		shopID, err := auth.ResolveShopID(c)
		if err != nil {
			return err
		}

		var body ProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if err := validate.Struct(body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "name and unit are required, min_stock cannot be negative")
		}

		product := models.Product{
			ShopID:   shopID,
			Name:     body.Name,
			Category: body.Category,
			Unit:     body.Unit,
			MinStock: body.MinStock,
		}

		if err := database.DB.Create(&product).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not create product")
		}

		return c.Status(fiber.StatusCreated).JSON(toProductResponse(product))
	}
}

// PUT /api/products/:id
func UpdateProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		shopID, err := auth.ResolveShopID(c)
		if err != nil {
			return err
		}

		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "invalid product id")
		}

		var body ProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if err := validate.Struct(body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "name and unit are required, min_stock cannot be negative")
		}

		var product models.Product
		if err := database.DB.First(&product, "id = ? AND shop_id = ?", id, shopID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "product not found")
		}

		product.Name = body.Name
		product.Category = body.Category
		product.Unit = body.Unit
		product.MinStock = body.MinStock

		if err := database.DB.Save(&product).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not update product")
		}

		return c.JSON(toProductResponse(product))
	}
}

// DELETE /api/products/:id
func DeleteProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		shopID, err := auth.ResolveShopID(c)
		if err != nil {
			return err
		}

		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "invalid product id")
		}

		var product models.Product
		if err := database.DB.First(&product, "id = ? AND shop_id = ?", id, shopID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "product not found")
		}

		var count int64
		database.DB.Model(&models.Purchase{}).Where("product_id = ?", product.ID).Count(&count)
		if count == 0 {
			database.DB.Model(&models.Sale{}).Where("product_id = ?", product.ID).Count(&count)
		}
		if count > 0 {
			return fiber.NewError(fiber.StatusConflict, "product has transactions, it cannot be deleted")
		}

		if err := database.DB.Delete(&product).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not delete product")
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
