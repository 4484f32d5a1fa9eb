package auth

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lmsforge/lms-backend/internal/db/models"
	"github.com/lmsforge/lms-backend/internal/web/handler/handlertest"
)

type loginData struct {
	AccessToken string      `json:"accessToken"`
	TokenType   string      `json:"tokenType"`
	User        models.User `json:"user"`
}

func TestRegisterLoginLogout(t *testing.T) {
	h := handlertest.New(t)
	s := &Service{}
	s.Init(h.App, h.Env)

	status, env := h.Do(t, fiber.MethodPost, RouteRegister, fiber.Map{
		"username": "alice", "email": "alice@example.com", "password": "correct-horse",
	}, 0)
	require.Equal(t, fiber.StatusCreated, status, env.Message)
	assert.True(t, env.Success)

	status, _ = h.Do(t, fiber.MethodPost, RouteRegister, fiber.Map{
		"username": "alice", "email": "alice2@example.com", "password": "correct-horse",
	}, 0)
	assert.Equal(t, fiber.StatusConflict, status)

	status, env = h.Do(t, fiber.MethodPost, RouteRegister, fiber.Map{"username": "al", "email": "x", "password": "short"}, 0)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Len(t, env.Errors, 3)

	status, env = h.Do(t, fiber.MethodPost, RouteLogin, fiber.Map{"username": "alice", "password": "wrong-password"}, 0)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "Invalid username or password", env.Message)

	status, env = h.Do(t, fiber.MethodPost, RouteLogin, fiber.Map{"username": "alice", "password": "correct-horse"}, 0)
	require.Equal(t, fiber.StatusOK, status)

	login := handlertest.Decode[loginData](t, env)
	assert.Equal(t, "Bearer", login.TokenType)
	require.NotEmpty(t, login.AccessToken)

	me := func() int {
		req := httptest.NewRequest(fiber.MethodGet, RouteMe, nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+login.AccessToken)
		status, _ := h.Send(t, req, 0)

		return status
	}

	assert.Equal(t, fiber.StatusOK, me())

	req := httptest.NewRequest(fiber.MethodPost, RouteLogout, nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+login.AccessToken)
	status, _ = h.Send(t, req, 0)
	require.Equal(t, fiber.StatusOK, status)

	assert.Equal(t, fiber.StatusUnauthorized, me())
}

func TestMeRequiresToken(t *testing.T) {
	h := handlertest.New(t)
	s := &Service{}
	s.Init(h.App, h.Env)

	status, env := h.Do(t, fiber.MethodGet, RouteMe, nil, 0)
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.NotEmpty(t, env.Message)
}

func TestOIDCRoutesAbsentWhenDisabled(t *testing.T) {
	h := handlertest.New(t)
	s := &Service{}
	s.Init(h.App, h.Env)

	status, _ := h.Do(t, fiber.MethodGet, LoginPath, nil, 0)
	assert.Equal(t, fiber.StatusNotFound, status)
}
