// Package auth provides the account, login and logout endpoints.
package auth

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/lmsforge/lms-backend/internal/auth"
	"github.com/lmsforge/lms-backend/internal/web/handler"
	authmw "github.com/lmsforge/lms-backend/internal/web/middleware/auth"
)

const (
	// Path is the base path of the auth endpoints.
	Path = handler.RootPath + "auth"

	// RouteRegister creates a local account.
	RouteRegister = Path + "/register"
	// RouteLogin exchanges credentials for an access token.
	RouteLogin = Path + "/login"
	// RouteLogout revokes the presented token.
	RouteLogout = Path + "/logout"
	// RouteMe returns the caller.
	RouteMe = Path + "/me"
)

// Service is the auth handler service.
type Service struct {
	authService *auth.Service
	oidc        *oidcFlow
}

// Handler is the exported instance.
var Handler = Service{}

// Init registers routes.
func (s *Service) Init(app *fiber.App, env *handler.Env) {
	if app == nil || env == nil {
		log.Fatal().Msg(handler.ErrNilEnvFatalLogMsg)
		return
	}

	s.authService = env.Auth

	login := []fiber.Handler{s.Login}
	if env.LoginLimiter != nil {
		login = append([]fiber.Handler{env.LoginLimiter}, login...)
	}

	app.Post(RouteRegister, s.Register)
	app.Post(RouteLogin, login...)
	app.Post(RouteLogout, env.RequireAuth, s.Logout)
	app.Get(RouteMe, env.RequireAuth, s.Me)

	s.initOIDC(app, env)
}

// Register handles POST /auth/register.
func (s *Service) Register(c *fiber.Ctx) error {
	var in registerInput
	if err := handler.ParseBody(c, &in); err != nil {
		return handler.SendError(c, err)
	}

	user, err := s.authService.Register(c.UserContext(), auth.RegisterInput{
		Username:  in.Username,
		Email:     in.Email,
		Password:  in.Password,
		FirstName: in.FirstName,
		LastName:  in.LastName,
	})
	if err != nil {
		return handler.SendError(c, err)
	}

	log.Info().Uint64("user_id", user.ID).Str("username", user.Username).Msg("user registered")

	return handler.Created(c, "User registered successfully", user)
}

// Login handles POST /auth/login.
func (s *Service) Login(c *fiber.Ctx) error {
	var in loginInput
	if err := handler.ParseBody(c, &in); err != nil {
		return handler.SendError(c, err)
	}

	res, err := s.authService.Login(c.UserContext(), in.Username, in.Password)
	if err != nil {
		log.Warn().Str("username", in.Username).Str("ip", c.IP()).Msg("login failed")
		return handler.SendError(c, err)
	}

	return handler.OK(c, "Login successful", res)
}

// Logout handles POST /auth/logout.
func (s *Service) Logout(c *fiber.Ctx) error {
	claims := authmw.Claims(c)
	if claims == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Unauthorized"})
	}

	if err := s.authService.Logout(claims); err != nil {
		return handler.SendError(c, err)
	}

	return handler.OK(c, "Logged out", nil)
}

// Me handles GET /auth/me.
func (s *Service) Me(c *fiber.Ctx) error {
	user, err := s.authService.Me(c.UserContext(), handler.UserID(c))
	if err != nil {
		return handler.SendError(c, err)
	}

	return handler.OK(c, "User retrieved", user)
}
