package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// Auth validates the Bearer token signed with secret and stores the claims
// in Locals for the handlers.
func Auth(secret []byte) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// 1. Take the token from the Authorization header
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing token"})
		}

		// Header format: "Bearer <token>"
		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))

		// 2. Parse and validate
		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.ErrUnauthorized
			}
			return secret, nil
		})
		if err != nil || !token.Valid {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or expired token"})
		}

		// 3. Keep the claims for handlers; JSON numbers decode as float64
		claims := token.Claims.(jwt.MapClaims)
		id, ok := claims["user_id"].(float64)
		if !ok || id <= 0 {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or expired token"})
		}
		role, _ := claims["role"].(string)
		badge, _ := claims["badge_number"].(string)

		c.Locals("user_id", uint(id))
		c.Locals("badge_number", badge)
		c.Locals("role", role)

		return c.Next()
	}
}

// UserID returns the id stored by Auth, or 0 outside an authenticated route.
func UserID(c *fiber.Ctx) uint {
	id, _ := c.Locals("user_id").(uint)
	return id
}

func UserRole(c *fiber.Ctx) string {
	role, _ := c.Locals("role").(string)
	return role
}
