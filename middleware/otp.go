package middleware

import "github.com/gofiber/fiber/v2"

// OTP blocks sessions that have not passed the second factor yet.
func OTP() fiber.Handler {
	return func(c *fiber.Ctx) error {
		mapClaims, ok := claims(c)
		if !ok {
			return reject(c, fiber.StatusUnauthorized, "Invalid or expired JWT")
		}

		if pending, _ := mapClaims["otp"].(bool); pending {
			return reject(c, fiber.StatusBadRequest, "2FA required")
		}

		return c.Next()
	}
}
