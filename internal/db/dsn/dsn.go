// Package dsn provides Data Source Name construction utilities for database connections.
package dsn

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/lmsforge/lms-backend/internal/config"
)

// Create builds the Data Source Name for the configured gorm engine.
func Create(cfg *config.Config) string {
	switch cfg.DB.GormEngine {
	case config.EnginePostgres:
		return Postgres(&cfg.DB)
	case config.EngineSQLite:
		return cfg.DB.SQLitePath
	default:
		return MySQL(&cfg.DB)
	}
}

// MySQL builds a go-sql-driver style DSN. parseTime is always requested since the
// models carry time.Time columns.
func MySQL(db *config.DB) string {
	extras := db.Extras
	if !strings.Contains(extras, "parseTime") {
		extras = strings.TrimPrefix(extras+"&parseTime=true", "&")
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?%s",
		db.User,
		db.Password,
		db.Host,
		db.Port,
		db.Name,
		extras,
	)
}

// Postgres builds a postgres:// connection URI.
func Postgres(db *config.DB) string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(db.User, db.Password),
		Host:     fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:     "/" + db.Name,
		RawQuery: db.Extras,
	}

	return u.String()
}
