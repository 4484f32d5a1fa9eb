package daemon

import (
	"strings"

	"github.com/glebarez/sqlite"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	gormmysql "gorm.io/driver/mysql"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/lmsforge/lms-backend/internal/config"
	"github.com/lmsforge/lms-backend/internal/db/dsn"
	"github.com/lmsforge/lms-backend/internal/db/models"
	gormzerolog "github.com/lmsforge/lms-backend/internal/logger/adapter/gormlogger"
)

// ErrUnknownEngine is returned for a DB.GormEngine that has no driver.
var ErrUnknownEngine = errors.New("unknown gorm engine")

func dialector(cfg *config.Config) (gorm.Dialector, error) {
	switch cfg.DB.GormEngine {
	case config.EngineMySQL, "":
		return gormmysql.Open(dsn.Create(cfg)), nil
	case config.EnginePostgres:
		return gormpostgres.Open(dsn.Create(cfg)), nil
	case config.EngineSQLite:
		return sqlite.Open(dsn.Create(cfg)), nil
	default:
		return nil, errors.Wrap(ErrUnknownEngine, cfg.DB.GormEngine)
	}
}

func gormLogLevel(level string) gormlogger.LogLevel {
	switch strings.ToLower(level) {
	case "trace", "debug":
		return gormlogger.Info
	case "error":
		return gormlogger.Error
	default:
		return gormlogger.Warn
	}
}

// OpenDB connects to the configured database. Constraint violations are translated to
// gorm.ErrDuplicatedKey and gorm.ErrForeignKeyViolated.
func OpenDB(cfg *config.Config) (*gorm.DB, error) {
	d, err := dialector(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(d, &gorm.Config{
		Logger:         gormzerolog.New(&log.Logger, gormLogLevel(cfg.Log.LogLevel), cfg.DB.SlowThreshold),
		TranslateError: true,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect database")
	}

	if cfg.DB.GormEngine == config.EngineSQLite {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, errors.Wrap(err, "failed to get sqlite handle")
		}

		sqlDB.SetMaxOpenConns(1)
	}

	return db, nil
}

// Migrate creates or updates every table. The one-pending-invite-per-email index is
// partial and therefore skipped on mysql.
func Migrate(db *gorm.DB, engine string) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return errors.Wrap(err, "failed to migrate database")
	}

	if engine == config.EngineMySQL || engine == "" {
		return nil
	}

	if err := db.Exec(models.PendingInviteIndexSQL).Error; err != nil {
		return errors.Wrap(err, "failed to create pending invite index")
	}

	return nil
}
