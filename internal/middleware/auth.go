package middleware

import (
	"strings"

	"github.com/catnipgames/catpacks/internal/services"
	"github.com/catnipgames/catpacks/internal/types"
	"github.com/gofiber/fiber/v2"
)

const identityKey = "identity"

// AuthUser validates the bearer credential in the Authorization header and
// stores the resolved identity in the request context.
func AuthUser(verifier services.TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			return &types.CustomError{
				Code:    fiber.StatusUnauthorized,
				Kind:    types.KindUnauthenticated,
				Message: "missing bearer credential",
			}
		}

		identity, err := verifier.VerifyToken(token)
		if err != nil {
			return &types.CustomError{
				Code:    fiber.StatusUnauthorized,
				Kind:    types.KindUnauthenticated,
				Message: "invalid credential",
			}
		}

		c.Locals(identityKey, identity)
		return c.Next()
	}
}

// IdentityFromCtx returns the identity set by AuthUser, or nil when the
// route was not authenticated.
func IdentityFromCtx(c *fiber.Ctx) *services.Identity {
	identity, _ := c.Locals(identityKey).(*services.Identity)
	return identity
}
