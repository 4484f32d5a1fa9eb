// Package web assembles the fiber application: middleware, platform routes and the
// api handlers.
package web

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/lmsforge/lms-backend/internal/auth"
	"github.com/lmsforge/lms-backend/internal/config"
	"github.com/lmsforge/lms-backend/internal/filestore"
	fiberlog "github.com/lmsforge/lms-backend/internal/logger/adapter/fiber"
	"github.com/lmsforge/lms-backend/internal/mailer"
	"github.com/lmsforge/lms-backend/internal/web/handler"
	authhandler "github.com/lmsforge/lms-backend/internal/web/handler/auth"
	"github.com/lmsforge/lms-backend/internal/web/handler/course"
	"github.com/lmsforge/lms-backend/internal/web/handler/notes"
	"github.com/lmsforge/lms-backend/internal/web/handler/organization"
	"github.com/lmsforge/lms-backend/internal/web/handler/orggroup"
	"github.com/lmsforge/lms-backend/internal/web/handler/practice"
	"github.com/lmsforge/lms-backend/internal/web/handler/quiz"
	"github.com/lmsforge/lms-backend/internal/web/handler/studygroup"
	authmw "github.com/lmsforge/lms-backend/internal/web/middleware/auth"
	"github.com/lmsforge/lms-backend/internal/web/middleware/metrics"
	"github.com/lmsforge/lms-backend/internal/web/session"
)

const (
	// RouteCheckAlive answers load balancer health checks.
	RouteCheckAlive = "/checkalive"
	// RouteMetrics exposes the prometheus registry.
	RouteMetrics = "/metrics"

	corsAllowHeaders = "Origin, Content-Type, Accept, Authorization"
)

var (
	// ErrNilDependency is returned by New when a required dependency is missing.
	ErrNilDependency = errors.New("web: config, db, storage, mailer and file store are required")
	// ErrTooManyLoginAttempts is sent when the login limiter trips.
	ErrTooManyLoginAttempts = fiber.NewError(fiber.StatusTooManyRequests, "Too many login attempts, try again later")
)

// Deps are the collaborators of the web service.
type Deps struct {
	DB      *gorm.DB
	Storage fiber.Storage // backs token revocation and the login limiter
	Mailer  mailer.Mailer
	Files   filestore.Store
}

// Service represents the web service.
type Service struct {
	App          *fiber.App
	cfg          *config.Config
	fastShutDown bool
	alive        atomic.Bool
}

// Start starts the web service on the given address and blocks until it stops.
func (s *Service) Start(addr string) error {
	var doneFiber = make(chan error, 1)

	go func() {
		err := s.App.Listen(addr)
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}

		doneFiber <- err
	}()

	return <-doneFiber
}

// WaitShutdown waits for SIGINT or SIGTERM and shuts the http server down gracefully.
func (s *Service) WaitShutdown() {
	irqSig := make(chan os.Signal, 1)
	signal.Notify(irqSig, syscall.SIGINT, syscall.SIGTERM)

	sig := <-irqSig
	log.Info().Msgf("shutdown request (signal: %v)", sig)

	// Graceful shutdown for reverse proxies: set status to fail, so checkalive returns fail.
	if !s.fastShutDown {
		log.Info().Msgf(
			"graceful shutdown: return 503 while %d seconds to let LB to remove this pod from active targets",
			s.cfg.Webserver.ShutDownTime,
		)

		s.alive.Store(false)
		time.Sleep(time.Duration(s.cfg.Webserver.ShutDownTime) * time.Second)
	}

	log.Info().Msg("stopping http server ...")

	if err := s.App.Shutdown(); err != nil {
		log.Error().Err(err).Msg("http server shutdown")
	}

	log.Info().Msg("http server was stopped ... good bye...")
}

// Alive reports whether checkalive answers 200.
func (s *Service) Alive() bool {
	return s.alive.Load()
}

func (s *Service) checkAlive(c *fiber.Ctx) error {
	if !s.alive.Load() {
		return c.Status(fiber.StatusServiceUnavailable).SendString("shutting down")
	}

	return c.SendString("OK")
}

// New creates the web service with every route registered.
func New(cfg *config.Config, deps Deps) (*Service, error) {
	if cfg == nil || deps.DB == nil || deps.Storage == nil || deps.Mailer == nil || deps.Files == nil {
		return nil, ErrNilDependency
	}

	appConfig := fiber.Config{
		AppName:       cfg.Title,
		CaseSensitive: true,
		Immutable:     true,
		ErrorHandler:  handler.SendError,
	}

	if cfg.Webserver.BodyLimit > 0 {
		appConfig.BodyLimit = cfg.Webserver.BodyLimit
	}

	app := fiber.New(appConfig)

	if !cfg.Webserver.DisableRecover {
		app.Use(recover.New())
	}

	app.Use(fiberlog.New(fiberlog.Config{Config: cfg.Log, CheckAliveURI: RouteCheckAlive}))
	app.Use(metrics.New(cfg.Log.ServiceName))

	if cfg.Webserver.CORSAllowOrigins != "" {
		app.Use(cors.New(cors.Config{
			AllowOrigins: cfg.Webserver.CORSAllowOrigins,
			AllowHeaders: corsAllowHeaders,
		}))
	}

	store, err := session.Init(deps.Storage)
	if err != nil {
		return nil, err
	}

	tokens := auth.NewTokens(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.AccessTokenTTL)
	authService := auth.NewService(deps.DB, tokens, store)

	env := &handler.Env{
		Config:      cfg,
		DB:          deps.DB,
		Auth:        authService,
		RequireAuth: authmw.New(authService),
		Mailer:      deps.Mailer,
		Files:       deps.Files,
	}

	if cfg.Auth.LoginRateLimit > 0 {
		env.LoginLimiter = limiter.New(limiter.Config{
			Max:        cfg.Auth.LoginRateLimit,
			Expiration: cfg.Auth.LoginRateWindow,
			Storage:    deps.Storage,
			LimitReached: func(c *fiber.Ctx) error {
				return handler.SendError(c, ErrTooManyLoginAttempts)
			},
		})
	}

	service := &Service{
		App:          app,
		cfg:          cfg,
		fastShutDown: cfg.DevMode,
	}
	service.alive.Store(true)

	app.Get(RouteCheckAlive, service.checkAlive)
	app.Get(RouteMetrics, adaptor.HTTPHandler(promhttp.Handler()))

	handlers := []handler.Service{
		&authhandler.Handler,
		&organization.Handler,
		&orggroup.Handler,
		&course.Handler,
		&quiz.Handler,
		&studygroup.Handler,
		&notes.Handler,
		&practice.Handler,
	}

	for _, h := range handlers {
		h.Init(app, env)
	}

	return service, nil
}
