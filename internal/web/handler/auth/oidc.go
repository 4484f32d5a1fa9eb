package auth

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/lmsforge/lms-backend/internal/auth"
	"github.com/lmsforge/lms-backend/internal/web/handler"
	"github.com/lmsforge/lms-backend/internal/web/session"
)

const (
	// LoginPath is the path to initiate OIDC login.
	LoginPath = Path + "/oidc/login"

	// CallbackPath is the path for OIDC callback.
	CallbackPath = Path + "/oidc/callback"

	stateTTL      = 5 * time.Minute
	providerSetup = 30 * time.Second
)

type oidcFlow struct {
	provider *auth.OIDCProvider
	states   *session.Memory
}

func (s *Service) initOIDC(app *fiber.App, env *handler.Env) {
	if env.Config == nil || !env.Config.Auth.OIDC.Enabled {
		return
	}

	oidcCfg := env.Config.Auth.OIDC

	ctx, cancel := context.WithTimeout(context.Background(), providerSetup)
	defer cancel()

	provider, err := auth.NewOIDCProvider(ctx, &auth.OIDCConfig{
		Enabled:      oidcCfg.Enabled,
		ProviderURL:  oidcCfg.ProviderURL,
		ClientID:     oidcCfg.ClientID,
		ClientSecret: oidcCfg.ClientSecret,
		RedirectURL:  oidcCfg.RedirectURL,
		Scopes:       oidcCfg.Scopes,
	}, env.DB)
	if err != nil {
		if errors.Is(err, auth.ErrOIDCDisabled) {
			log.Info().Msg("OIDC authentication is disabled by configuration")
		} else {
			log.Warn().Err(err).Msg("Failed to initialize OIDC provider - OIDC authentication will be disabled")
		}

		return
	}

	s.oidc = &oidcFlow{provider: provider, states: session.NewMemory()}

	log.Info().Msg("OIDC authentication provider initialized")

	app.Get(LoginPath, s.OIDCLogin)
	app.Get(CallbackPath, s.OIDCCallback)
}

// OIDCLogin redirects to the identity provider.
func (s *Service) OIDCLogin(c *fiber.Ctx) error {
	if s.oidc == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(handler.Response{Message: "OIDC authentication is not available"})
	}

	state, err := auth.GenerateStateToken()
	if err != nil {
		return handler.SendError(c, err)
	}

	if err = s.oidc.states.Set(state, []byte{1}, stateTTL); err != nil {
		return handler.SendError(c, err)
	}

	return c.Redirect(s.oidc.provider.GetAuthURL(state))
}

// OIDCCallback finishes the code flow and answers with a local access token.
func (s *Service) OIDCCallback(c *fiber.Ctx) error {
	if s.oidc == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(handler.Response{Message: "OIDC authentication is not available"})
	}

	code := c.Query("code")
	state := c.Query("state")

	if code == "" || state == "" {
		return c.Status(fiber.StatusBadRequest).JSON(handler.Response{Message: "Invalid callback parameters"})
	}

	known, _ := s.oidc.states.Get(state)
	if known == nil {
		log.Error().Str("state", state).Msg("Invalid or expired state token")
		return c.Status(fiber.StatusBadRequest).JSON(handler.Response{Message: "Invalid state token"})
	}

	_ = s.oidc.states.Delete(state)

	user, err := s.oidc.provider.HandleCallback(c.UserContext(), code)
	if err != nil {
		log.Error().Err(err).Msg("OIDC authentication failed")
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Authentication failed"})
	}

	res, err := s.authService.IssueFor(user)
	if err != nil {
		return handler.SendError(c, err)
	}

	log.Info().Str("username", user.Username).Msg("User logged in successfully via OIDC")

	return handler.OK(c, "Login successful", res)
}
