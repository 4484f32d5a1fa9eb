package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/lmsforge/lms-backend/internal/auth"
)

const (
	// LocalsUserID is the locals key of the caller id.
	LocalsUserID = "userId"
	// LocalsClaims is the locals key of the validated token claims.
	LocalsClaims = "tokenClaims"

	bearerPrefix = "bearer "
)

type unauthorized struct {
	Message string `json:"message"`
}

// BearerToken extracts the token of an Authorization header, "" when absent.
func BearerToken(c *fiber.Ctx) string {
	h := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if len(h) <= len(bearerPrefix) || !strings.EqualFold(h[:len(bearerPrefix)], bearerPrefix) {
		return ""
	}

	return strings.TrimSpace(h[len(bearerPrefix):])
}

// New returns a middleware admitting requests with a valid bearer token.
func New(authService *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := BearerToken(c)
		if raw == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(unauthorized{Message: "Missing bearer token"})
		}

		user, claims, err := authService.Authenticate(c.UserContext(), raw)
		if err != nil {
			log.Debug().Err(err).Str("path", c.Path()).Msg("rejected bearer token")
			return c.Status(fiber.StatusUnauthorized).JSON(unauthorized{Message: "Unauthorized"})
		}

		c.Locals(LocalsUserID, user.ID)
		c.Locals(LocalsClaims, claims)

		return c.Next()
	}
}

// Claims returns the token claims stored by the middleware.
func Claims(c *fiber.Ctx) *auth.Claims {
	claims, _ := c.Locals(LocalsClaims).(*auth.Claims)
	return claims
}
