package handlers

import (
	"fmt"

	"github.com/catnipgames/catpacks/internal/middleware"
	"github.com/catnipgames/catpacks/internal/services"
	"github.com/gofiber/fiber/v2"
)

// getIdentity extracts the authenticated identity from context (set by auth
// middleware)
func getIdentity(c *fiber.Ctx) (*services.Identity, error) {
	identity := middleware.IdentityFromCtx(c)
	if identity == nil {
		return nil, fmt.Errorf("identity not found in context")
	}
	return identity, nil
}
