package middleware

import (
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"

	"github.com/chenglu1/admin-console/internal/config"
	"github.com/chenglu1/admin-console/internal/dto"
)

// JWTProtected verifies the bearer access token. The check is stateless:
// signature and expiry only, never the refresh-token store.
func JWTProtected(cfg *config.Config) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{Key: []byte(cfg.JWTSecret)},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    fiber.StatusUnauthorized,
				Message: "invalid or expired access token",
			})
		},
	})
}
