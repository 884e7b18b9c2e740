package controller

import (
	"skillswap-service/service"

	"github.com/gofiber/fiber/v2"
)

type AuthSignupInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Location string `json:"location"`
}

type AuthLoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthRenewTokenInput struct {
	RefreshToken string `json:"refresh_token"`
}

type AuthOtpSecretInput struct {
	Password string `json:"password"`
}

type AuthOtpTokenInput struct {
	Token string `json:"token"`
}

type AuthOtpDisableInput struct {
	Password string `json:"password"`
	Token    string `json:"token"`
}

func sessionData(session *service.Session) fiber.Map {
	return fiber.Map{
		"id":      session.User.ID,
		"access":  session.Tokens.Access,
		"refresh": session.Tokens.Refresh,
		"2fa":     session.OtpPending,
	}
}

func (h *Handler) AuthSignup(c *fiber.Ctx) error {
	input := new(AuthSignupInput)
	if err := c.BodyParser(input); err != nil {
		return badInput(c)
	}

	session, err := h.users.Register(c.UserContext(), service.RegisterInput{
		Name:     input.Name,
		Email:    input.Email,
		Password: input.Password,
		Location: input.Location,
	})
	if err != nil {
		return h.fail(c, err)
	}

	return success(c, fiber.StatusCreated, sessionData(session))
}

func (h *Handler) AuthSignin(c *fiber.Ctx) error {
	input := new(AuthLoginInput)
	if err := c.BodyParser(input); err != nil {
		return badInput(c)
	}

	session, err := h.users.Authenticate(c.UserContext(), input.Email, input.Password)
	if err != nil {
		return h.fail(c, err)
	}

	return success(c, fiber.StatusOK, sessionData(session))
}

func (h *Handler) AuthTokenRenew(c *fiber.Ctx) error {
	input := new(AuthRenewTokenInput)
	if err := c.BodyParser(input); err != nil {
		return badInput(c)
	}

	session, err := h.users.Renew(c.UserContext(), input.RefreshToken)
	if err != nil {
		return h.fail(c, err)
	}

	return success(c, fiber.StatusOK, sessionData(session))
}

func (h *Handler) AuthOtpSecret(c *fiber.Ctx) error {
	input := new(AuthOtpSecretInput)
	if err := c.BodyParser(input); err != nil {
		return badInput(c)
	}
	userID, err := h.caller(c)
	if err != nil {
		return h.fail(c, err)
	}

	secret, url, err := h.users.OtpSecret(c.UserContext(), userID, input.Password)
	if err != nil {
		return h.fail(c, err)
	}

	return success(c, fiber.StatusOK, fiber.Map{
		"secret": secret,
		"url":    url,
	})
}

func (h *Handler) AuthOtpVerify(c *fiber.Ctx) error {
	input := new(AuthOtpTokenInput)
	if err := c.BodyParser(input); err != nil {
		return badInput(c)
	}
	userID, err := h.caller(c)
	if err != nil {
		return h.fail(c, err)
	}

	if err := h.users.OtpVerify(c.UserContext(), userID, input.Token); err != nil {
		return h.fail(c, err)
	}

	return success(c, fiber.StatusOK, nil)
}

func (h *Handler) AuthOtpValidate(c *fiber.Ctx) error {
	input := new(AuthOtpTokenInput)
	if err := c.BodyParser(input); err != nil {
		return badInput(c)
	}
	userID, err := h.caller(c)
	if err != nil {
		return h.fail(c, err)
	}

	session, err := h.users.OtpValidate(c.UserContext(), userID, input.Token)
	if err != nil {
		return h.fail(c, err)
	}

	return success(c, fiber.StatusOK, sessionData(session))
}

func (h *Handler) AuthOtpDisable(c *fiber.Ctx) error {
	input := new(AuthOtpDisableInput)
	if err := c.BodyParser(input); err != nil {
		return badInput(c)
	}
	userID, err := h.caller(c)
	if err != nil {
		return h.fail(c, err)
	}

	if err := h.users.OtpDisable(c.UserContext(), userID, input.Password, input.Token); err != nil {
		return h.fail(c, err)
	}

	return success(c, fiber.StatusOK, nil)
}
