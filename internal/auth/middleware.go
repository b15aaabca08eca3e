package auth

import (
	"fmt"
	"strings"

	"agrostore-backend/internal/config"
	"agrostore-backend/internal/database"
	"agrostore-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const CtxUserIDKey = "user_id"

func JWTMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing Authorization header")
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return fiber.NewError(fiber.StatusUnauthorized, "Authorization header must be 'Bearer <token>'")
		}

		token, err := jwt.ParseWithClaims(parts[1], &JWTCustomClaims{}, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid or expired token")
		}

		claims, ok := token.Claims.(*JWTCustomClaims)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "could not parse token claims")
		}

		c.Locals(CtxUserIDKey, claims.UserID)

		return c.Next()
	}
}

// UserID returns the authenticated user id stored by JWTMiddleware.
func UserID(c *fiber.Ctx) (uint, error) {
	id, ok := c.Locals(CtxUserIDKey).(uint)
	if !ok {
		return 0, fiber.NewError(fiber.StatusUnauthorized, "not authenticated")
	}
	return id, nil
}

// ResolveShopID reads shop_id from the query string and verifies the shop
// belongs to the authenticated user. Every shop-scoped route goes through it.
func ResolveShopID(c *fiber.Ctx) (uint, error) {
	userID, err := UserID(c)
	if err != nil {
		return 0, err
	}

	shopIDStr := c.Query("shop_id")
	if shopIDStr == "" {
		return 0, fiber.NewError(fiber.StatusBadRequest, "shop_id is required")
	}
	var shopID uint
	if _, err := fmt.Sscan(shopIDStr, &shopID); err != nil || shopID == 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "shop_id is invalid")
	}

	var shop models.Shop
	if err := database.DB.First(&shop, "id = ? AND user_id = ?", shopID, userID).Error; err != nil {
		return 0, fiber.NewError(fiber.StatusForbidden, "shop not found or not yours")
	}

	return shopID, nil
}
