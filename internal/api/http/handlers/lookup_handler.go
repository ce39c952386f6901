package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/CaioVictor3/Bus-Manager-App/internal/lookup"
)

// LookupHandler exposes the postal-code lookup collaborator.
type LookupHandler struct {
	client *lookup.Client
}

// NewLookupHandler constructs handler.
func NewLookupHandler(client *lookup.Client) *LookupHandler {
	return &LookupHandler{client: client}
}

// Get handles GET /lookup/cep/:code. A successful response carries the
// resolved address with the house number left blank.
func (h *LookupHandler) Get(c *fiber.Ctx) error {
	address, err := h.client.Lookup(c.UserContext(), c.Params("code"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"address": address}})
}
