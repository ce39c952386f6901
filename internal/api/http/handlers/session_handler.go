package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/CaioVictor3/Bus-Manager-App/internal/api/dto"
	"github.com/CaioVictor3/Bus-Manager-App/internal/auth"
	"github.com/CaioVictor3/Bus-Manager-App/internal/domain"
	"github.com/CaioVictor3/Bus-Manager-App/internal/service"
	apperrors "github.com/CaioVictor3/Bus-Manager-App/pkg/util"
)

// SessionHandler exposes the driver identity lifecycle.
type SessionHandler struct {
	sessions *service.SessionService
}

// NewSessionHandler constructs handler.
func NewSessionHandler(sessions *service.SessionService) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

// Register handles POST /auth/register.
func (h *SessionHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	profile := domain.Profile{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
		Vehicle: domain.Vehicle{
			Model:    req.Vehicle.Model,
			Plate:    req.Vehicle.Plate,
			Capacity: req.Vehicle.Capacity,
			Color:    req.Vehicle.Color,
		},
	}

	user, token, exp, err := h.sessions.Register(c.UserContext(), profile, req.Password)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{
			"user": userView(user),
			"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

// Login handles POST /auth/login.
func (h *SessionHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	user, token, exp, err := h.sessions.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"user": userView(user),
			"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

// Logout handles POST /auth/logout. Always succeeds.
func (h *SessionHandler) Logout(c *fiber.Ctx) error {
	h.sessions.Logout(c.UserContext())
	return c.JSON(fiber.Map{"data": fiber.Map{"logged_out": true}})
}

// Me handles GET /auth/me for the authenticated driver.
func (h *SessionHandler) Me(c *fiber.Ctx) error {
	driver, ok := auth.DriverFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("no active session")
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"user": userView(driver)}})
}

func userView(user *domain.User) fiber.Map {
	return fiber.Map{
		"id":      user.ID,
		"name":    user.Name,
		"email":   user.Email,
		"phone":   user.Phone,
		"vehicle": user.Vehicle,
	}
}
