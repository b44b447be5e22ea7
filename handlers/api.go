// handlers/api.go
package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"nexusmatch/models"
	"nexusmatch/services"
)

// API exposes the store over HTTP.
type API struct {
	Store *services.Store
}

func SetupRoutes(app *fiber.App, store *services.Store) {
	api := &API{Store: store}

	app.Get("/health", api.Health)
	app.Get("/catalog", api.Catalog)

	// everything below needs the store loaded
	ready := app.Group("/", api.requireLoaded)

	ready.Get("/profile", api.GetProfile)
	ready.Post("/profile", api.CreateProfile)
	ready.Patch("/profile", api.UpdateProfile)
	ready.Post("/profile/daily-reward", api.ClaimDailyReward)
	ready.Post("/profile/reset", api.Reset)

	ready.Get("/matches", api.ListMatches)
	ready.Post("/matches", api.HostMatch)
	ready.Post("/matches/:id/join", api.JoinMatch)

	ready.Get("/connections", api.ListConnections)
	ready.Post("/connections", api.SendConnectionRequest)
	ready.Post("/connections/:id/accept", api.AcceptConnection)
	ready.Post("/connections/:id/reject", api.RejectConnection)

	ready.Get("/conversations", api.ListConversations)
	ready.Get("/conversations/:id", api.GetConversation)
	ready.Post("/conversations/:id/messages", api.SendMessage)
	ready.Post("/conversations/:id/read", api.MarkConversationRead)

	ready.Get("/tournaments", api.ListTournaments)
	ready.Post("/tournaments/:id/register", api.RegisterForTournament)

	ready.Get("/events", api.StreamChanges)
}

func (a *API) requireLoaded(c *fiber.Ctx) error {
	if a.Store.Loading() {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "store is still loading",
		})
	}
	return c.Next()
}

// respondError maps store errors to status codes.
func respondError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrValidation):
		status = fiber.StatusBadRequest
	case errors.Is(err, services.ErrNotOnboarded), errors.Is(err, services.ErrAlreadyOnboarded):
		status = fiber.StatusConflict
	case errors.Is(err, services.ErrInsufficientCoins):
		status = fiber.StatusPaymentRequired
	case errors.Is(err, services.ErrTournamentNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, services.ErrIO):
		status = fiber.StatusServiceUnavailable
	}
	if status >= fiber.StatusInternalServerError {
		log.Printf("[API] ❌ %s %s: %v", c.Method(), c.Path(), err)
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

func badBody(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": "invalid request body",
		"cause": err.Error(),
	})
}

func (a *API) Health(c *fiber.Ctx) error {
	dirty := a.Store.Dirty()
	if dirty == nil {
		dirty = []string{}
	}
	return c.JSON(fiber.Map{
		"status":  "ok",
		"loading": a.Store.Loading(),
		"dirty":   dirty,
	})
}

type gameEntry struct {
	Name string `json:"name"`
	Key  string `json:"key"`
}

func (a *API) Catalog(c *fiber.Ctx) error {
	games := make([]gameEntry, 0, len(models.Games))
	for _, g := range models.Games {
		games = append(games, gameEntry{Name: g, Key: services.GameKey(g)})
	}
	return c.JSON(fiber.Map{
		"games":        games,
		"regions":      models.Regions,
		"skillLevels":  models.SkillLevels,
		"matchTypes":   models.MatchTypes,
		"avatarColors": models.AvatarColors,
	})
}
