package controller

import (
	"skillswap-service/model"
	"skillswap-service/service"

	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
)

type ExchangeProposeInput struct {
	AccepterID          uint   `json:"accepter_id"`
	OfferedSkillRefID   *uint  `json:"offered_skill_ref_id"`
	RequestedSkillRefID *uint  `json:"requested_skill_ref_id"`
	ProposedTerms       string `json:"proposed_terms"`
}

type ExchangeStatusInput struct {
	Status string `json:"status"`
}

func (h *Handler) ExchangePropose(c *fiber.Ctx) error {
	input := new(ExchangeProposeInput)
	if err := c.BodyParser(input); err != nil {
		return badInput(c)
	}
	userID, err := h.caller(c)
	if err != nil {
		return h.fail(c, err)
	}

	exchange, err := h.exchanges.CreateProposal(c.UserContext(), userID, service.ProposalInput{
		AccepterID:    input.AccepterID,
		Skills:        service.SkillRefFrom(input.OfferedSkillRefID, input.RequestedSkillRefID),
		ProposedTerms: input.ProposedTerms,
	})
	if err != nil {
		return h.fail(c, err)
	}

	return success(c, fiber.StatusCreated, exchangeView(*exchange))
}

func (h *Handler) ExchangeList(c *fiber.Ctx) error {
	userID, err := h.caller(c)
	if err != nil {
		return h.fail(c, err)
	}

	exchanges, err := h.exchanges.Exchanges(c.UserContext(), userID)
	if err != nil {
		return h.fail(c, err)
	}

	return success(c, fiber.StatusOK, lo.Map(exchanges, func(e model.Exchange, _ int) ExchangeView {
		return exchangeView(e)
	}))
}

func (h *Handler) ExchangeUpdateStatus(c *fiber.Ctx) error {
	input := new(ExchangeStatusInput)
	if err := c.BodyParser(input); err != nil {
		return badInput(c)
	}
	userID, err := h.caller(c)
	if err != nil {
		return h.fail(c, err)
	}
	id, err := paramID(c, "id")
	if err != nil {
		return h.fail(c, err)
	}

	exchange, err := h.exchanges.UpdateStatus(c.UserContext(), id, userID, input.Status)
	if err != nil {
		return h.fail(c, err)
	}

	return success(c, fiber.StatusOK, exchangeView(*exchange))
}
