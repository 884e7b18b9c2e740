package controller

import "github.com/gofiber/fiber/v2"

func (h *Handler) NotificationList(c *fiber.Ctx) error {
	userID, err := h.caller(c)
	if err != nil {
		return h.fail(c, err)
	}

	notifications, err := h.notifications.List(c.UserContext(), userID)
	if err != nil {
		return h.fail(c, err)
	}

	return success(c, fiber.StatusOK, NotificationViews(notifications))
}

func (h *Handler) NotificationRead(c *fiber.Ctx) error {
	userID, err := h.caller(c)
	if err != nil {
		return h.fail(c, err)
	}
	id, err := paramID(c, "id")
	if err != nil {
		return h.fail(c, err)
	}

	notification, err := h.notifications.MarkRead(c.UserContext(), userID, id)
	if err != nil {
		return h.fail(c, err)
	}

	return success(c, fiber.StatusOK, NewNotificationView(notification))
}

func (h *Handler) NotificationDelete(c *fiber.Ctx) error {
	userID, err := h.caller(c)
	if err != nil {
		return h.fail(c, err)
	}
	id, err := paramID(c, "id")
	if err != nil {
		return h.fail(c, err)
	}

	if err := h.notifications.Delete(c.UserContext(), userID, id); err != nil {
		return h.fail(c, err)
	}

	return success(c, fiber.StatusOK, fiber.Map{"id": id})
}
