package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/CaioVictor3/Bus-Manager-App/internal/domain"
	apperrors "github.com/CaioVictor3/Bus-Manager-App/pkg/util"
)

const principalKey = "auth_principal"

// DriverSource resolves the currently authenticated driver. Implemented
// by the session store.
type DriverSource interface {
	CurrentUser() (*domain.User, bool)
}

// AuthMiddleware validates bearer tokens and loads the driver principal.
type AuthMiddleware struct {
	tokens  *TokenManager
	drivers DriverSource
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager, drivers DriverSource) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, drivers: drivers}
}

// Handle enforces authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	claims, err := m.tokens.ParseToken(parts[1])
	if err != nil {
		return apperrors.NewUnauthorized("invalid token")
	}

	driver, ok := m.drivers.CurrentUser()
	if !ok || driver.ID != claims.DriverID {
		return apperrors.NewUnauthorized("session no longer active")
	}

	c.Locals(principalKey, driver)
	return c.Next()
}

// DriverFromContext retrieves the authenticated driver.
func DriverFromContext(c *fiber.Ctx) (*domain.User, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	driver, ok := val.(*domain.User)
	return driver, ok
}
