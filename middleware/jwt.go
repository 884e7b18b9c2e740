package middleware

import (
	"errors"

	"skillswap-service/config"
	"skillswap-service/utils"

	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

func JWT() fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{
			JWTAlg: "HS512",
			Key:    []byte(config.Config(utils.AccessKey)),
		},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if errors.Is(err, jwtware.ErrJWTMissingOrMalformed) {
				return reject(c, fiber.StatusBadRequest, "Missing or malformed JWT")
			}
			return reject(c, fiber.StatusUnauthorized, "Invalid or expired JWT")
		},
	})
}

// claims returns the claims JWT stored for the request, if any.
func claims(c *fiber.Ctx) (jwt.MapClaims, bool) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return nil, false
	}
	mapClaims, ok := token.Claims.(jwt.MapClaims)
	return mapClaims, ok
}

// CurrentUserID is the id of the authenticated caller. Only valid behind JWT.
func CurrentUserID(c *fiber.Ctx) (uint, error) {
	mapClaims, ok := claims(c)
	if !ok {
		return 0, utils.ErrInvalidToken
	}
	return utils.UserIDFromClaims(mapClaims)
}

func reject(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"status":  "error",
		"message": message,
		"data":    nil,
	})
}
