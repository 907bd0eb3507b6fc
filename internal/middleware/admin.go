package middleware

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/chenglu1/admin-console/internal/dto"
	"github.com/chenglu1/admin-console/internal/models"
)

// AdminRequired allows only users that currently hold the admin role. The
// role is re-read from the database, so revoking it takes effect without
// waiting for token expiry.
func AdminRequired(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := GetUserID(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    fiber.StatusUnauthorized,
				Message: "unauthorized",
			})
		}

		var user models.User
		if err := db.Preload("Roles").First(&user, "id = ?", userID).Error; err != nil || !user.IsActive() {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    fiber.StatusUnauthorized,
				Message: "unauthorized",
			})
		}

		for _, r := range user.Roles {
			if r.Name == models.AdminRoleName {
				return c.Next()
			}
		}

		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Code:    fiber.StatusForbidden,
			Message: "admin access required",
		})
	}
}
