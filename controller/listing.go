package controller

import (
	"skillswap-service/model"
	"skillswap-service/service"

	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
)

type ListingCreateInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Skills      []string `json:"skills"`
	Location    string   `json:"location"`
}

type ListingUpdateInput struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	Skills      []string `json:"skills"`
	Location    *string  `json:"location"`
	Status      *string  `json:"status"`
}

// ListingHandler serves the CRUD routes of offers or requests.
type ListingHandler[T any, P model.Listable[T]] struct {
	responder
	listings *service.ListingService[T, P]
}

func (h *ListingHandler[T, P]) List(c *fiber.Ctx) error {
	items, err := h.listings.Open(c.UserContext())
	if err != nil {
		return h.fail(c, err)
	}

	return success(c, fiber.StatusOK, lo.Map(items, func(item T, _ int) ListingView {
		return listingView(P(&item).Base())
	}))
}

func (h *ListingHandler[T, P]) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return h.fail(c, err)
	}

	item, err := h.listings.Get(c.UserContext(), id)
	if err != nil {
		return h.fail(c, err)
	}

	return success(c, fiber.StatusOK, listingView(item.Base()))
}

func (h *ListingHandler[T, P]) Create(c *fiber.Ctx) error {
	input := new(ListingCreateInput)
	if err := c.BodyParser(input); err != nil {
		return badInput(c)
	}
	userID, err := h.caller(c)
	if err != nil {
		return h.fail(c, err)
	}

	item, err := h.listings.Create(c.UserContext(), userID, service.ListingInput{
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		Skills:      input.Skills,
		Location:    input.Location,
	})
	if err != nil {
		return h.fail(c, err)
	}

	return success(c, fiber.StatusCreated, listingView(item.Base()))
}

func (h *ListingHandler[T, P]) Update(c *fiber.Ctx) error {
	input := new(ListingUpdateInput)
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

	item, err := h.listings.Update(c.UserContext(), userID, id, service.ListingPatch{
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		Skills:      input.Skills,
		Location:    input.Location,
		Status:      input.Status,
	})
	if err != nil {
		return h.fail(c, err)
	}

	return success(c, fiber.StatusOK, listingView(item.Base()))
}

func (h *ListingHandler[T, P]) Delete(c *fiber.Ctx) error {
	userID, err := h.caller(c)
	if err != nil {
		return h.fail(c, err)
	}
	id, err := paramID(c, "id")
	if err != nil {
		return h.fail(c, err)
	}

	if err := h.listings.Delete(c.UserContext(), userID, id); err != nil {
		return h.fail(c, err)
	}

	return success(c, fiber.StatusOK, fiber.Map{"id": id})
}
