package controller

import (
	"skillswap-service/model"
	"skillswap-service/service"

	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
)

type UserProfileInput struct {
	Name           *string  `json:"name"`
	Email          *string  `json:"email"`
	Password       *string  `json:"password"`
	ProfilePicture *string  `json:"profile_picture"`
	AboutMe        *string  `json:"about_me"`
	Location       *string  `json:"location"`
	SkillsOffered  []string `json:"skills_offered"`
	SkillsNeeded   []string `json:"skills_needed"`
}

func (h *Handler) UserProfile(c *fiber.Ctx) error {
	userID, err := h.caller(c)
	if err != nil {
		return h.fail(c, err)
	}

	user, err := h.users.Profile(c.UserContext(), userID)
	if err != nil {
		return h.fail(c, err)
	}

	return success(c, fiber.StatusOK, userView(user, true))
}

func (h *Handler) UserProfileUpdate(c *fiber.Ctx) error {
	input := new(UserProfileInput)
	if err := c.BodyParser(input); err != nil {
		return badInput(c)
	}
	userID, err := h.caller(c)
	if err != nil {
		return h.fail(c, err)
	}

	user, err := h.users.UpdateProfile(c.UserContext(), userID, service.ProfilePatch{
		Name:           input.Name,
		Email:          input.Email,
		Password:       input.Password,
		ProfilePicture: input.ProfilePicture,
		AboutMe:        input.AboutMe,
		Location:       input.Location,
		SkillsOffered:  input.SkillsOffered,
		SkillsNeeded:   input.SkillsNeeded,
	})
	if err != nil {
		return h.fail(c, err)
	}

	return success(c, fiber.StatusOK, userView(user, true))
}

// UserGet is the public profile of any user.
func (h *Handler) UserGet(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return h.fail(c, err)
	}

	user, err := h.users.Profile(c.UserContext(), id)
	if err != nil {
		return h.fail(c, err)
	}

	return success(c, fiber.StatusOK, userView(user, false))
}

func (h *Handler) AdminUsers(c *fiber.Ctx) error {
	users, err := h.users.Users(c.UserContext())
	if err != nil {
		return h.fail(c, err)
	}

	return success(c, fiber.StatusOK, lo.Map(users, func(u model.User, _ int) UserView {
		return userView(&u, true)
	}))
}
