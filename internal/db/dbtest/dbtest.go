// Package dbtest opens migrated in-memory databases for tests.
package dbtest

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/lmsforge/lms-backend/internal/db/models"
)

var userSeq atomic.Uint64

// Open returns an in-memory sqlite database with every model migrated. The pool is
// limited to one connection because each sqlite memory connection is its own database.
func Open(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err, "failed to create test database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.All()...), "failed to migrate test database")
	require.NoError(t, db.Exec(models.PendingInviteIndexSQL).Error)

	return db
}

// CreateUser inserts an active local user with a unique username and email.
func CreateUser(t *testing.T, db *gorm.DB, name string) *models.User {
	t.Helper()

	n := userSeq.Add(1)
	u := &models.User{
		Active:     true,
		Username:   fmt.Sprintf("%s%d", name, n),
		Email:      fmt.Sprintf("%s%d@example.com", name, n),
		FirstName:  name,
		AuthSource: models.AuthSourceLocal,
	}
	require.NoError(t, db.Create(u).Error)

	return u
}

// CreateUserWithID inserts an active local user with a fixed primary key.
func CreateUserWithID(t *testing.T, db *gorm.DB, id uint64, name string) *models.User {
	t.Helper()

	u := &models.User{
		ID:         id,
		Active:     true,
		Username:   name,
		Email:      name + "@example.com",
		AuthSource: models.AuthSourceLocal,
	}
	require.NoError(t, db.Create(u).Error)

	return u
}
