package handler

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/lmsforge/lms-backend/internal/auth"
	"github.com/lmsforge/lms-backend/internal/config"
	"github.com/lmsforge/lms-backend/internal/filestore"
	"github.com/lmsforge/lms-backend/internal/mailer"
)

// Env carries the shared dependencies handlers build their services from.
type Env struct {
	Config *config.Config
	DB     *gorm.DB
	Auth   *auth.Service
	// RequireAuth guards every route that needs a caller.
	RequireAuth fiber.Handler
	// LoginLimiter throttles credential endpoints, nil disables it.
	LoginLimiter fiber.Handler
	Mailer       mailer.Mailer
	Files        filestore.Store
}

// Service is the interface for a web handler service.
type Service interface {
	Init(app *fiber.App, env *Env)
}
