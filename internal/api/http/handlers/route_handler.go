package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/CaioVictor3/Bus-Manager-App/internal/api/dto"
	"github.com/CaioVictor3/Bus-Manager-App/internal/service"
	apperrors "github.com/CaioVictor3/Bus-Manager-App/pkg/util"
)

// RouteHandler exposes the route-settings singleton and the derived stop
// sequence consumed by the navigation view.
type RouteHandler struct {
	roster *service.RosterService
}

// NewRouteHandler constructs handler.
func NewRouteHandler(roster *service.RosterService) *RouteHandler {
	return &RouteHandler{roster: roster}
}

// GetSettings handles GET /route/settings.
func (h *RouteHandler) GetSettings(c *fiber.Ctx) error {
	settings := h.roster.RouteSettings()
	return c.JSON(fiber.Map{"data": fiber.Map{
		"settings":   settings,
		"configured": settings != nil,
	}})
}

// PutSettings handles PUT /route/settings: wholesale replacement, both
// addresses required.
func (h *RouteHandler) PutSettings(c *fiber.Ctx) error {
	var req dto.RouteSettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	settings := req.ToDomain()
	if err := h.roster.SetRouteSettings(c.UserContext(), settings); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"settings": settings}})
}

// Stops handles GET /route/stops: start, every present student in
// registry order, end.
func (h *RouteHandler) Stops(c *fiber.Ctx) error {
	stops := h.roster.RouteStops()
	return c.JSON(fiber.Map{"data": fiber.Map{
		"stops":      stops,
		"configured": h.roster.RouteSettings() != nil,
	}})
}
