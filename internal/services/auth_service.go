package services

import (
	"fmt"

	"github.com/authorizerdev/authorizer-go"
	"github.com/catnipgames/catpacks/internal/config"
	"github.com/catnipgames/catpacks/internal/utils"
)

// Identity is the resolved principal behind a bearer credential.
type Identity struct {
	ID    string
	Email string
}

// TokenVerifier resolves a bearer token to an Identity. Implemented by
// AuthService in production and by stubs in tests.
type TokenVerifier interface {
	VerifyToken(token string) (*Identity, error)
}

// AuthService validates credentials against the external Authorizer
// instance. Constructed once at startup and injected; it holds no
// per-request state.
type AuthService struct {
	client *authorizer.AuthorizerClient
}

// NewAuthService pings the Authorizer service and builds the client.
func NewAuthService(cfg *config.Config) (*AuthService, error) {
	if err := utils.PingAuthorizer(cfg.AuthzURL); err != nil {
		return nil, fmt.Errorf("authorizer ping failed: %w", err)
	}

	client, err := authorizer.NewAuthorizerClient(cfg.AuthzClientID, cfg.AuthzURL, "", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create authorizer client: %w", err)
	}

	return &AuthService{client: client}, nil
}

// VerifyToken resolves the bearer token to the provider's user profile.
func (s *AuthService) VerifyToken(token string) (*Identity, error) {
	profile, err := s.client.GetProfile(map[string]string{
		"Authorization": "Bearer " + token,
	})
	if err != nil {
		return nil, fmt.Errorf("token validation failed: %w", err)
	}
	if profile == nil || profile.ID == "" {
		return nil, fmt.Errorf("token resolved to no user")
	}

	return &Identity{ID: profile.ID, Email: profile.Email}, nil
}
