package middleware

import (
	"strings"

	"staffsync/internal/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Keys under which AuthRequired stores the caller in c.Locals.
const (
	LocalEmail = "email"
	LocalRole  = "role"
)

// AuthRequired is a Fiber middleware to check for a valid access token.
func AuthRequired(authService *services.AuthService, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header is required",
			})
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer" && parts[1] != "") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header format must be 'Bearer <token>'",
			})
		}

		claims, err := authService.ValidateToken(parts[1], services.TokenTypeAccess)
		if err != nil {
			logger.Debug("rejected bearer token", zap.String("path", c.Path()), zap.Error(err))
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid or expired token",
			})
		}

		c.Locals(LocalEmail, claims["sub"])
		c.Locals(LocalRole, claims["role"])

		return c.Next()
	}
}
