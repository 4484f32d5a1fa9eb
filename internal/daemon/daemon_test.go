package daemon

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lmsforge/lms-backend/internal/config"
	"github.com/lmsforge/lms-backend/internal/db/models"
	"github.com/lmsforge/lms-backend/internal/filestore"
	"github.com/lmsforge/lms-backend/internal/mailer"
	"github.com/lmsforge/lms-backend/internal/web/session"
)

func sqliteConfig(t *testing.T) *config.Config {
	t.Helper()

	return &config.Config{
		Title: "lms-test",
		DB: config.DB{
			GormEngine: config.EngineSQLite,
			SQLitePath: filepath.Join(t.TempDir(), "lms.db"),
		},
		Auth: config.Auth{
			JWTSecret:      "0123456789abcdef0123456789abcdef",
			Issuer:         "lms-test",
			AccessTokenTTL: time.Hour,
		},
	}
}

func TestGormLogLevel(t *testing.T) {
	testCases := []struct {
		level string
		want  string
	}{
		{"debug", "info"},
		{"TRACE", "info"},
		{"error", "error"},
		{"info", "warn"},
		{"", "warn"},
	}

	names := map[string]int{"info": 4, "warn": 3, "error": 2}

	for _, tc := range testCases {
		t.Run(tc.level, func(t *testing.T) {
			assert.EqualValues(t, names[tc.want], gormLogLevel(tc.level))
		})
	}
}

func TestOpenDBUnknownEngine(t *testing.T) {
	cfg := sqliteConfig(t)
	cfg.DB.GormEngine = "oracle"

	_, err := OpenDB(cfg)
	assert.ErrorIs(t, err, ErrUnknownEngine)
}

func TestMigrateAndSeed(t *testing.T) {
	cfg := sqliteConfig(t)

	db, err := OpenDB(cfg)
	require.NoError(t, err)
	require.NoError(t, Migrate(db, cfg.DB.GormEngine))
	require.NoError(t, Migrate(db, cfg.DB.GormEngine), "migrate is repeatable")

	for _, m := range models.All() {
		assert.True(t, db.Migrator().HasTable(m), "%T", m)
	}

	created, err := seed(cfg, db)
	require.NoError(t, err)
	assert.False(t, created, "no seed password configured")

	cfg.Auth.SeedAdminPassword = "s3cret-admin"

	created, err = seed(cfg, db)
	require.NoError(t, err)
	assert.True(t, created)

	var admin models.User
	require.NoError(t, db.Where("username = ?", adminUsername).First(&admin).Error)
	assert.True(t, admin.Active)
	assert.True(t, admin.VerifyPassword("s3cret-admin"))

	created, err = seed(cfg, db)
	require.NoError(t, err)
	assert.False(t, created, "users exist")
}

func TestBackendsForDevelopment(t *testing.T) {
	cfg := sqliteConfig(t)

	assert.IsType(t, &session.Memory{}, newStorage(cfg))
	assert.IsType(t, mailer.Log{}, newMailer(cfg))

	files, err := newFileStore(context.Background(), cfg)
	require.NoError(t, err)
	assert.IsType(t, &filestore.Memory{}, files)
}

func TestNew(t *testing.T) {
	_, err := New(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNilConfig)

	d, err := New(context.Background(), sqliteConfig(t))
	require.NoError(t, err)
	require.NotNil(t, d.webService)
	assert.True(t, d.webService.Alive())
}
