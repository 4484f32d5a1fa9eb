// Package daemon wires configuration, database, storage backends and the web service.
package daemon

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"
	sessionmysql "github.com/gofiber/storage/mysql/v2"
	sessionpostgres "github.com/gofiber/storage/postgres/v3"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/lmsforge/lms-backend/internal/config"
	"github.com/lmsforge/lms-backend/internal/db/dsn"
	"github.com/lmsforge/lms-backend/internal/filestore"
	"github.com/lmsforge/lms-backend/internal/mailer"
	"github.com/lmsforge/lms-backend/internal/web"
	"github.com/lmsforge/lms-backend/internal/web/session"
)

// sessionTable holds revoked token ids and login limiter counters.
const sessionTable = "sessions"

// ErrNilConfig is returned by New without a configuration.
var ErrNilConfig = errors.New("config is nil")

// Daemon represents the main application daemon.
type Daemon struct {
	cfg        *config.Config
	webService *web.Service
	storage    fiber.Storage
}

// Start serves http until SIGINT or SIGTERM, then shuts down gracefully.
func (d *Daemon) Start() error {
	addr := fmt.Sprintf(":%d", d.cfg.Webserver.Port)
	errCh := make(chan error, 1)

	go func() {
		log.Info().Str("addr", addr).Msg("starting http server")
		errCh <- d.webService.Start(addr)
	}()

	go d.webService.WaitShutdown()

	err := <-errCh

	if cerr := d.storage.Close(); cerr != nil {
		log.Error().Err(cerr).Msg("close session storage")
	}

	return err
}

// newStorage returns the fiber.Storage for the configured engine. sqlite keeps it in
// process.
func newStorage(cfg *config.Config) fiber.Storage {
	switch cfg.DB.GormEngine {
	case config.EnginePostgres:
		return sessionpostgres.New(sessionpostgres.Config{
			ConnectionURI: dsn.Create(cfg),
			Table:         sessionTable,
		})
	case config.EngineSQLite:
		return session.NewMemory()
	default:
		return sessionmysql.New(sessionmysql.Config{
			ConnectionURI: dsn.Create(cfg),
			Table:         sessionTable,
		})
	}
}

func newMailer(cfg *config.Config) mailer.Mailer {
	if !cfg.Mail.Enabled {
		log.Warn().Msg("mail disabled: invitation mails are only logged")
		return mailer.Log{}
	}

	return mailer.NewSendGrid(cfg.Mail.SendGridAPIKey, cfg.Title, cfg.Mail.FromName, cfg.Mail.FromEmail)
}

func newFileStore(ctx context.Context, cfg *config.Config) (filestore.Store, error) {
	if !cfg.Storage.Enabled {
		log.Warn().Msg("object storage disabled: note attachments are kept in memory")
		return filestore.NewMemory(), nil
	}

	return filestore.NewMinio(ctx, filestore.MinioConfig{
		Endpoint:  cfg.Storage.Endpoint,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		Bucket:    cfg.Storage.Bucket,
		Region:    cfg.Storage.Region,
		UseTLS:    cfg.Storage.UseTLS,
	})
}

// New opens and migrates the database, seeds it and builds the web service.
func New(ctx context.Context, cfg *config.Config) (*Daemon, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	db, err := OpenDB(cfg)
	if err != nil {
		return nil, err
	}

	if err = Migrate(db, cfg.DB.GormEngine); err != nil {
		return nil, err
	}

	if _, err = seed(cfg, db); err != nil {
		return nil, err
	}

	files, err := newFileStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	storage := newStorage(cfg)

	ws, err := web.New(cfg, web.Deps{
		DB:      db,
		Storage: storage,
		Mailer:  newMailer(cfg),
		Files:   files,
	})
	if err != nil {
		return nil, err
	}

	return &Daemon{cfg: cfg, webService: ws, storage: storage}, nil
}
