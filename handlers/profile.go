package handlers

import (
	"github.com/gofiber/fiber/v2"

	"nexusmatch/services"
)

func (a *API) GetProfile(c *fiber.Ctx) error {
	p := a.Store.Profile()
	if p == nil {
		return c.JSON(fiber.Map{
			"onboarded": false,
			"profile":   nil,
		})
	}
	return c.JSON(fiber.Map{
		"onboarded":      true,
		"profile":        p,
		"canClaimDaily":  a.Store.CanClaimDaily(),
		"xpProgress":     services.XPProgress(p.XP),
		"xpForNextLevel": services.XPForNextLevel(p.Level),
	})
}

func (a *API) CreateProfile(c *fiber.Ctx) error {
	var in services.ProfileInput
	if err := c.BodyParser(&in); err != nil {
		return badBody(c, err)
	}
	p, err := a.Store.CreateProfile(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(p)
}

func (a *API) UpdateProfile(c *fiber.Ctx) error {
	var upd services.ProfileUpdate
	if err := c.BodyParser(&upd); err != nil {
		return badBody(c, err)
	}
	p, err := a.Store.UpdateProfile(c.UserContext(), upd)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(p)
}

func (a *API) ClaimDailyReward(c *fiber.Ctx) error {
	ok, err := a.Store.ClaimDailyReward(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"ok": ok, "profile": a.Store.Profile()})
}

func (a *API) Reset(c *fiber.Ctx) error {
	if err := a.Store.Reset(c.UserContext()); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}
