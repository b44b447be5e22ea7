package handlers

import (
	"github.com/gofiber/fiber/v2"

	"nexusmatch/models"
	"nexusmatch/services"
)

func (a *API) ListConnections(c *fiber.Ctx) error {
	f := services.ConnectionFilter{
		Status: models.ConnectionStatus(c.Query("status")),
		Query:  c.Query("q"),
	}
	return c.JSON(services.FilterConnections(a.Store.Connections(), f))
}

func (a *API) SendConnectionRequest(c *fiber.Ctx) error {
	var in services.ConnectionInput
	if err := c.BodyParser(&in); err != nil {
		return badBody(c, err)
	}
	ok, err := a.Store.SendConnectionRequest(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	status := fiber.StatusOK
	if ok {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(fiber.Map{"ok": ok})
}

func (a *API) AcceptConnection(c *fiber.Ctx) error {
	conv, ok, err := a.Store.AcceptConnection(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	resp := fiber.Map{"ok": ok}
	if ok {
		resp["conversation"] = conv
	}
	return c.JSON(resp)
}

func (a *API) RejectConnection(c *fiber.Ctx) error {
	ok, err := a.Store.RejectConnection(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"ok": ok})
}

func (a *API) ListConversations(c *fiber.Ctx) error {
	return c.JSON(a.Store.Conversations())
}

func (a *API) GetConversation(c *fiber.Ctx) error {
	conv, ok := a.Store.Conversation(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "conversation not found"})
	}
	return c.JSON(conv)
}

type messageBody struct {
	Text string `json:"text"`
}

func (a *API) SendMessage(c *fiber.Ctx) error {
	var body messageBody
	if err := c.BodyParser(&body); err != nil {
		return badBody(c, err)
	}
	id := c.Params("id")
	ok, err := a.Store.SendMessage(c.UserContext(), id, body.Text)
	if err != nil {
		return respondError(c, err)
	}
	resp := fiber.Map{"ok": ok}
	if conv, found := a.Store.Conversation(id); found {
		resp["conversation"] = conv
	}
	return c.JSON(resp)
}

func (a *API) MarkConversationRead(c *fiber.Ctx) error {
	ok, err := a.Store.MarkConversationRead(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"ok": ok})
}
