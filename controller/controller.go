// Package controller holds the REST handlers. Handlers resolve the caller
// from the JWT, call one service operation and render the result in the
// {"status","message","data"} envelope.
package controller

import (
	"log/slog"

	"skillswap-service/middleware"
	"skillswap-service/model"
	"skillswap-service/service"

	"github.com/gofiber/fiber/v2"
)

type Services struct {
	Users         *service.UserService
	Messages      *service.MessageService
	Exchanges     *service.ExchangeService
	Notifications *service.NotificationService
	Offers        *service.OfferService
	Requests      *service.RequestService
}

type Handler struct {
	responder
	users         *service.UserService
	messages      *service.MessageService
	exchanges     *service.ExchangeService
	notifications *service.NotificationService

	Offers   *ListingHandler[model.Offer, *model.Offer]
	Requests *ListingHandler[model.Request, *model.Request]
}

func New(s Services, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	r := responder{log: log}
	return &Handler{
		responder:     r,
		users:         s.Users,
		messages:      s.Messages,
		exchanges:     s.Exchanges,
		notifications: s.Notifications,
		Offers:        &ListingHandler[model.Offer, *model.Offer]{responder: r, listings: s.Offers},
		Requests:      &ListingHandler[model.Request, *model.Request]{responder: r, listings: s.Requests},
	}
}

type responder struct {
	log *slog.Logger
}

func success(c *fiber.Ctx, status int, data any) error {
	return c.Status(status).JSON(fiber.Map{
		"status":  "success",
		"message": nil,
		"data":    data,
	})
}

func failure(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"status":  "error",
		"message": message,
		"data":    nil,
	})
}

func badInput(c *fiber.Ctx) error {
	return failure(c, fiber.StatusBadRequest, "Review your input")
}

// StatusFor maps a failure kind to its HTTP status.
func StatusFor(kind service.Kind) int {
	switch kind {
	case service.KindValidation,
		service.KindSelfReference,
		service.KindInvalidReference,
		service.KindInvalidStatus,
		service.KindInvalidTransition,
		service.KindAlreadyTerminal:
		return fiber.StatusBadRequest
	case service.KindNotFound:
		return fiber.StatusNotFound
	case service.KindUnauthorized:
		return fiber.StatusUnauthorized
	default:
		return fiber.StatusInternalServerError
	}
}

// fail renders err. Failures outside the service taxonomy are logged and
// hidden behind a generic message.
func (r responder) fail(c *fiber.Ctx, err error) error {
	status := StatusFor(service.KindOf(err))
	if status == fiber.StatusInternalServerError {
		r.log.Error("request failed", "method", c.Method(), "path", c.Path(), "error", err)
		return failure(c, status, "Internal server error")
	}
	return failure(c, status, err.Error())
}

func (r responder) caller(c *fiber.Ctx) (uint, error) {
	id, err := middleware.CurrentUserID(c)
	if err != nil {
		return 0, &service.Error{Kind: service.KindUnauthorized, Detail: "Invalid or expired JWT"}
	}
	return id, nil
}

func paramID(c *fiber.Ctx, name string) (uint, error) {
	id, err := c.ParamsInt(name)
	if err != nil || id <= 0 {
		return 0, &service.Error{Kind: service.KindValidation, Detail: "Invalid " + name}
	}
	return uint(id), nil
}
