package auth_test

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/lmsforge/lms-backend/internal/auth"
	"github.com/lmsforge/lms-backend/internal/db/dbtest"
	"github.com/lmsforge/lms-backend/internal/db/models"
	authmw "github.com/lmsforge/lms-backend/internal/web/middleware/auth"
	"github.com/lmsforge/lms-backend/internal/web/session"
)

func setup(t *testing.T) (*fiber.App, *auth.Service, *auth.Tokens, *gorm.DB) {
	t.Helper()

	db := dbtest.Open(t)
	store, err := session.Init(session.NewMemory())
	require.NoError(t, err)

	tokens := auth.NewTokens("0123456789abcdef0123456789abcdef", "lms-test", time.Hour)
	svc := auth.NewService(db, tokens, store)

	app := fiber.New()
	app.Get("/me", authmw.New(svc), func(c *fiber.Ctx) error {
		id, _ := c.Locals(authmw.LocalsUserID).(uint64)
		return c.JSON(fiber.Map{"id": id})
	})

	return app, svc, tokens, db
}

func TestMiddleware(t *testing.T) {
	app, svc, tokens, db := setup(t)
	user := dbtest.CreateUser(t, db, "alice")
	disabled := dbtest.CreateUser(t, db, "bob")
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", disabled.ID).Update("active", false).Error)

	valid, err := tokens.Issue(user.ID)
	require.NoError(t, err)
	inactive, err := tokens.Issue(disabled.ID)
	require.NoError(t, err)
	revoked, err := tokens.Issue(user.ID)
	require.NoError(t, err)

	claims, err := tokens.Parse(revoked.Token)
	require.NoError(t, err)
	require.NoError(t, svc.Logout(claims))

	testCases := []struct {
		name   string
		header string
		status int
	}{
		{name: "no header", status: 401},
		{name: "wrong scheme", header: "Basic " + valid.Token, status: 401},
		{name: "garbage token", header: "Bearer abc.def.ghi", status: 401},
		{name: "inactive user", header: "Bearer " + inactive.Token, status: 401},
		{name: "revoked", header: "Bearer " + revoked.Token, status: 401},
		{name: "valid", header: "Bearer " + valid.Token, status: 200},
		{name: "lowercase scheme", header: "bearer " + valid.Token, status: 200},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(fiber.MethodGet, "/me", nil)
			if tc.header != "" {
				req.Header.Set(fiber.HeaderAuthorization, tc.header)
			}

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tc.status, resp.StatusCode)

			var body map[string]any
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

			if tc.status == 401 {
				assert.NotEmpty(t, body["message"])
				return
			}

			assert.InDelta(t, float64(user.ID), body["id"], 0)
		})
	}
}
