package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"nexusmatch/models"
	"nexusmatch/services"
)

// ListMatches supports ?game= (name or key), region, skill, status and
// mine=true for the local profile's own posts.
func (a *API) ListMatches(c *fiber.Ctx) error {
	f := services.MatchFilter{
		Game:       c.Query("game"),
		Region:     c.Query("region"),
		SkillLevel: c.Query("skill"),
		Status:     models.MatchStatus(c.Query("status")),
	}
	if mine, _ := strconv.ParseBool(c.Query("mine")); mine {
		p := a.Store.Profile()
		if p == nil {
			return c.JSON([]models.MatchRequest{})
		}
		f.OwnerID = p.ID
	}
	return c.JSON(services.FilterMatches(a.Store.Matches(), f))
}

// HostMatch posts a match and charges the hosting fee.
func (a *API) HostMatch(c *fiber.Ctx) error {
	var in services.MatchInput
	if err := c.BodyParser(&in); err != nil {
		return badBody(c, err)
	}
	if in.GameName != "" {
		if name, ok := services.GameByKey(in.GameName); ok {
			in.GameName = name
		}
	}
	m, err := a.Store.HostMatch(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(m)
}

func (a *API) JoinMatch(c *fiber.Ctx) error {
	id := c.Params("id")
	ok, err := a.Store.JoinMatch(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	resp := fiber.Map{"ok": ok}
	if m, found := a.Store.Match(id); found {
		resp["match"] = m
	}
	return c.JSON(resp)
}
