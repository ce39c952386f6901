package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/CaioVictor3/Bus-Manager-App/internal/persistence"
)

// HealthHandler responds to liveness and readiness probes.
type HealthHandler struct {
	serviceName string
	version     string
	backendName string
	backend     persistence.Pinger
}

// NewHealthHandler returns a new handler instance.
func NewHealthHandler(serviceName, version, backendName string, backend persistence.Pinger) *HealthHandler {
	return &HealthHandler{serviceName: serviceName, version: version, backendName: backendName, backend: backend}
}

// Live reports service liveness.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "alive",
		"service": h.serviceName,
		"version": h.version,
	})
}

// Ready reports service readiness by checking the durable store backend.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	depStatus := fiber.Map{}
	ready := true

	if err := h.backend.Ping(ctx); err != nil {
		depStatus[h.backendName] = err.Error()
		ready = false
	} else {
		depStatus[h.backendName] = "ok"
	}

	if ready {
		return c.JSON(fiber.Map{
			"status":       "ready",
			"dependencies": depStatus,
		})
	}

	return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    "DEPENDENCY_UNAVAILABLE",
			"message": "one or more dependencies unavailable",
			"details": depStatus,
		},
	})
}
