package controller

import (
	"skillswap-service/service"

	"github.com/gofiber/fiber/v2"
)

type MessageSendInput struct {
	RecipientID      uint   `json:"recipient_id"`
	Content          string `json:"content"`
	RelatedOfferID   *uint  `json:"related_offer_id"`
	RelatedRequestID *uint  `json:"related_request_id"`
}

func (h *Handler) MessageSend(c *fiber.Ctx) error {
	input := new(MessageSendInput)
	if err := c.BodyParser(input); err != nil {
		return badInput(c)
	}
	userID, err := h.caller(c)
	if err != nil {
		return h.fail(c, err)
	}

	message, err := h.messages.SendMessage(c.UserContext(), userID, service.SendMessageInput{
		RecipientID:      input.RecipientID,
		Content:          input.Content,
		RelatedOfferID:   input.RelatedOfferID,
		RelatedRequestID: input.RelatedRequestID,
	})
	if err != nil {
		return h.fail(c, err)
	}

	return success(c, fiber.StatusCreated, messageView(*message))
}

func (h *Handler) MessageList(c *fiber.Ctx) error {
	userID, err := h.caller(c)
	if err != nil {
		return h.fail(c, err)
	}

	messages, err := h.messages.Inbox(c.UserContext(), userID)
	if err != nil {
		return h.fail(c, err)
	}

	return success(c, fiber.StatusOK, messageViews(messages))
}

func (h *Handler) MessageConversation(c *fiber.Ctx) error {
	userID, err := h.caller(c)
	if err != nil {
		return h.fail(c, err)
	}
	otherUserID, err := paramID(c, "otherUserId")
	if err != nil {
		return h.fail(c, err)
	}

	messages, err := h.messages.Conversation(c.UserContext(), userID, otherUserID)
	if err != nil {
		return h.fail(c, err)
	}

	return success(c, fiber.StatusOK, messageViews(messages))
}
