package middleware

import (
	"log/slog"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// Enforcer decides whether a subject may act on an object.
// *casbin.Enforcer satisfies it.
type Enforcer interface {
	Enforce(rvals ...interface{}) (bool, error)
}

func RBAC(enforcer Enforcer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := CurrentUserID(c)
		if err != nil {
			return reject(c, fiber.StatusUnauthorized, "Invalid or expired JWT")
		}

		accepted, err := enforcer.Enforce(strconv.FormatUint(uint64(userID), 10), c.Path(), c.Method())
		if err != nil {
			slog.Error("casbin enforce failed", "user_id", userID, "path", c.Path(), "error", err)
			return reject(c, fiber.StatusInternalServerError, "Internal server error")
		}

		if !accepted {
			return reject(c, fiber.StatusForbidden, "Unauthorized")
		}

		return c.Next()
	}
}
