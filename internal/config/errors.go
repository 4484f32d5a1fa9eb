package config

import (
	"errors"
)

var (
	// ErrEmptyURL error if config webserver.URL is empty.
	ErrEmptyURL = errors.New("toml config webserver.url can not be empty")
	// ErrWebServerPortCanNotBeZero error if config webserver listening port is 0.
	ErrWebServerPortCanNotBeZero = errors.New("toml config webserver.port listening port can not be 0")
	// ErrJWTSecretTooShort error if config auth.jwtSecret is missing or too short to sign tokens.
	ErrJWTSecretTooShort = errors.New("toml config auth.jwtSecret must have at least 16 characters")
	// ErrUnknownGormEngine error if config db.gormEngine names an unsupported database.
	ErrUnknownGormEngine = errors.New("toml config db.gormEngine must be mysql, postgres or sqlite")
)
