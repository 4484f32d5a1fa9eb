package daemon

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/lmsforge/lms-backend/internal/config"
	"github.com/lmsforge/lms-backend/internal/db/models"
)

const (
	adminUsername = "admin"
	adminEmail    = "admin@localhost"
)

// seed creates the admin account when a seed password is configured and the user table
// is empty. It reports whether a user was created.
func seed(cfg *config.Config, db *gorm.DB) (bool, error) {
	if cfg.Auth.SeedAdminPassword == "" {
		return false, nil
	}

	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "count users")
	}

	if count > 0 {
		return false, nil
	}

	hash, err := models.HashPassword(cfg.Auth.SeedAdminPassword)
	if err != nil {
		return false, errors.Wrap(err, "hash admin password")
	}

	admin := &models.User{
		Username:   adminUsername,
		Email:      adminEmail,
		Password:   hash,
		Active:     true,
		AuthSource: models.AuthSourceLocal,
	}

	if err = db.Create(admin).Error; err != nil {
		return false, errors.Wrap(err, "create admin user")
	}

	log.Warn().Str("username", adminUsername).Msg("seeded admin user, change its password")

	return true, nil
}
