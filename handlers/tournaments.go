package handlers

import (
	"github.com/gofiber/fiber/v2"

	"nexusmatch/models"
	"nexusmatch/services"
)

func (a *API) ListTournaments(c *fiber.Ctx) error {
	status := models.TournamentStatus(c.Query("status"))
	return c.JSON(services.FilterTournaments(a.Store.Tournaments(), status))
}

// RegisterForTournament pays the entry fee. ok=false with 200 means the
// balance was short or the tournament is over.
func (a *API) RegisterForTournament(c *fiber.Ctx) error {
	ok, err := a.Store.RegisterForTournament(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	resp := fiber.Map{"ok": ok}
	if p := a.Store.Profile(); p != nil {
		resp["coins"] = p.Coins
	}
	return c.JSON(resp)
}
