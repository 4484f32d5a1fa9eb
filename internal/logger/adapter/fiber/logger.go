// Package fiber provides the zerolog based http access log middleware.
package fiber

import (
	"io"
	"os"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/lmsforge/lms-backend/internal/logger"
)

// LocalsUserID is the fiber locals key the auth middleware stores the caller id under.
const LocalsUserID = "userId"

// Config implements fiber middleware struct.
type Config struct {
	// Next defines a function to skip this middleware when returned true.
	//
	// Optional. Default: nil
	Next func(c *fiber.Ctx) bool

	// Config of the logger.
	Config logger.Log

	// CheckAliveURI for disabling logging of check alive http calls.
	CheckAliveURI string

	// Output overrides the writers derived from Config. Used by tests.
	Output io.Writer
}

// New creates a new fiber access logging middleware using zerolog.
// Errors returned by the chain are handed to the app error handler first, so the
// logged status is the one the client receives.
func New(cfg Config) fiber.Handler {
	var writers []io.Writer

	switch {
	case cfg.Output != nil:
		writers = append(writers, cfg.Output)
	default:
		if cfg.Config.File.Enabled {
			writers = append(writers, newRollingAccessFile(&cfg.Config))
		}

		if cfg.Config.Console.Enabled && cfg.Config.EnableAccessLogToConsole {
			if cfg.Config.Console.UseConsoleWriter {
				writers = append(writers, zerolog.ConsoleWriter{
					Out:          os.Stdout,
					TimeFormat:   zerolog.TimeFieldFormat,
					PartsExclude: []string{"level"},
				})
			} else {
				writers = append(writers, os.Stdout)
			}
		}
	}

	accessLogger := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		With().
		Timestamp().
		Logger().
		Level(zerolog.NoLevel)

	return func(ctx *fiber.Ctx) error {
		if cfg.Next != nil && cfg.Next(ctx) {
			return ctx.Next()
		}

		start := time.Now()

		chainErr := ctx.Next()
		if chainErr != nil {
			if errH := ctx.App().ErrorHandler(ctx, chainErr); errH != nil {
				_ = ctx.SendStatus(fiber.StatusInternalServerError) //nolint:errcheck // ok here
			}
		}

		elapsed := time.Since(start).Seconds()
		ctx.Response().Header.Set("X-Performance", strconv.FormatFloat(elapsed, 'f', 6, 64))

		if cfg.Config.DisableCheckAlive && cfg.CheckAliveURI != "" && ctx.Path() == cfg.CheckAliveURI {
			return nil
		}

		p := ctx.Path()
		if q := ctx.Request().URI().QueryString(); len(q) > 0 {
			p = p + "?" + string(q)
		}

		event := accessLogger.Log().
			Str("IP", ctx.IP()).
			Int("status", ctx.Response().StatusCode()).
			Float64("X-Performance", elapsed).
			Str("URI", p).
			Str("method", ctx.Method()).
			Str(fiber.HeaderUserAgent, ctx.Get(fiber.HeaderUserAgent)).
			Str(fiber.HeaderXForwardedFor, ctx.Get(fiber.HeaderXForwardedFor))

		if userID, ok := ctx.Locals(LocalsUserID).(uint64); ok {
			event.Uint64("user_id", userID)
		}

		if chainErr != nil {
			event.Err(chainErr)
		}

		event.Send()

		return nil
	}
}

// newRollingAccessFile uses lumberjack to create file based access log.
func newRollingAccessFile(cfg *logger.Log) io.Writer {
	if cfg.File.Path != "" {
		if err := os.MkdirAll(cfg.File.Path, 0o750); err != nil {
			log.Error().Err(err).Str("path", cfg.File.Path).Msg("can't create log directory")

			return io.Discard
		}
	}

	return logger.RollingFile(cfg.File.Path, cfg.File.AccessLog,
		cfg.File.AccessMaxSize, cfg.File.AccessMaxAge, cfg.File.AccessMaxBackups)
}
