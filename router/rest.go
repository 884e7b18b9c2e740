package router

import (
	"skillswap-service/controller"
	"skillswap-service/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func Rest(app *fiber.App, h *controller.Handler, enforcer middleware.Enforcer) {
	api := app.Group("/v1", logger.New())
	authenticated := []fiber.Handler{middleware.JWT(), middleware.OTP()}

	// Auth
	auth := api.Group("/auth")
	auth.Post("/signup", h.AuthSignup)
	auth.Post("/signin", h.AuthSignin)
	auth.Post("/token/renew", h.AuthTokenRenew)
	auth.Post("/2fa/secret", middleware.JWT(), middleware.OTP(), h.AuthOtpSecret)
	auth.Post("/2fa/verify", middleware.JWT(), middleware.OTP(), h.AuthOtpVerify)
	auth.Post("/2fa/validate", middleware.JWT(), h.AuthOtpValidate)
	auth.Post("/2fa/disable", middleware.JWT(), middleware.OTP(), h.AuthOtpDisable)

	// Users, public profiles are open to anyone
	users := api.Group("/users")
	users.Get("/profile", append(authenticated, h.UserProfile)...)
	users.Put("/profile", append(authenticated, h.UserProfileUpdate)...)
	users.Get("/:id", h.UserGet)

	// Listings are public to browse
	offers := api.Group("/offers")
	offers.Get("/", h.Offers.List)
	offers.Get("/:id", h.Offers.Get)
	offers.Post("/", append(authenticated, h.Offers.Create)...)
	offers.Put("/:id", append(authenticated, h.Offers.Update)...)
	offers.Delete("/:id", append(authenticated, h.Offers.Delete)...)

	requests := api.Group("/requests")
	requests.Get("/", h.Requests.List)
	requests.Get("/:id", h.Requests.Get)
	requests.Post("/", append(authenticated, h.Requests.Create)...)
	requests.Put("/:id", append(authenticated, h.Requests.Update)...)
	requests.Delete("/:id", append(authenticated, h.Requests.Delete)...)

	// Messages
	messages := api.Group("/messages", authenticated...)
	messages.Post("/", h.MessageSend)
	messages.Get("/", h.MessageList)
	messages.Get("/conversation/:otherUserId", h.MessageConversation)

	// Exchanges
	exchanges := api.Group("/exchanges", authenticated...)
	exchanges.Post("/", h.ExchangePropose)
	exchanges.Get("/", h.ExchangeList)
	exchanges.Put("/:id", h.ExchangeUpdateStatus)

	// Notifications
	notifications := api.Group("/notifications", authenticated...)
	notifications.Get("/", h.NotificationList)
	notifications.Put("/:id/read", h.NotificationRead)
	notifications.Delete("/:id", h.NotificationDelete)

	// Admin
	admin := api.Group("/admin", append(authenticated, middleware.RBAC(enforcer))...)
	admin.Get("/users", h.AdminUsers)
}
