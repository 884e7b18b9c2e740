package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

type stubEnforcer struct {
	allow bool
	err   error
	got   []interface{}
}

func (s *stubEnforcer) Enforce(rvals ...interface{}) (bool, error) {
	s.got = rvals
	return s.allow, s.err
}

func withClaims(claims jwt.MapClaims) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("user", jwt.NewWithClaims(jwt.SigningMethodHS512, claims))
		return c.Next()
	}
}

func status(t *testing.T, app *fiber.App, path string) int {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil))
	require.NoError(t, err)
	return resp.StatusCode
}

func ok(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) }

func TestRBAC(t *testing.T) {
	tests := []struct {
		name     string
		enforcer *stubEnforcer
		want     int
	}{
		{"allowed", &stubEnforcer{allow: true}, fiber.StatusOK},
		{"denied", &stubEnforcer{}, fiber.StatusForbidden},
		{"enforcer failure", &stubEnforcer{err: errors.New("adapter down")}, fiber.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/v1/admin/users", withClaims(jwt.MapClaims{"id": "5", "otp": false}), RBAC(tt.enforcer), ok)

			require.Equal(t, tt.want, status(t, app, "/v1/admin/users"))
			require.Equal(t, []interface{}{"5", "/v1/admin/users", "GET"}, tt.enforcer.got)
		})
	}
}

func TestOTP(t *testing.T) {
	app := fiber.New()
	app.Get("/pending", withClaims(jwt.MapClaims{"id": "5", "otp": true}), OTP(), ok)
	app.Get("/done", withClaims(jwt.MapClaims{"id": "5", "otp": false}), OTP(), ok)
	app.Get("/anonymous", OTP(), ok)

	require.Equal(t, fiber.StatusBadRequest, status(t, app, "/pending"))
	require.Equal(t, fiber.StatusOK, status(t, app, "/done"))
	require.Equal(t, fiber.StatusUnauthorized, status(t, app, "/anonymous"))
}

func TestCurrentUserID(t *testing.T) {
	app := fiber.New()
	var got uint
	app.Get("/", withClaims(jwt.MapClaims{"id": "42"}), func(c *fiber.Ctx) error {
		id, err := CurrentUserID(c)
		if err != nil {
			return err
		}
		got = id
		return c.SendStatus(fiber.StatusOK)
	})

	require.Equal(t, fiber.StatusOK, status(t, app, "/"))
	require.Equal(t, uint(42), got)
}
