package config

import "time"

const (
	// EngineMySQL selects the gorm mysql driver.
	EngineMySQL = "mysql"
	// EnginePostgres selects the gorm postgres driver.
	EnginePostgres = "postgres"
	// EngineSQLite selects the pure go sqlite driver (development only).
	EngineSQLite = "sqlite"
)

// DB holds the database configuration settings.
type DB struct {
	Extras        string
	Host          string
	Port          int
	User          string
	Password      string
	Name          string
	GormEngine    string
	SQLitePath    string
	SlowThreshold time.Duration // queries slower than this are logged as warnings
}
