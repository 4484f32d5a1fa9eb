// Package handlertest builds a fiber app wired like production for handler tests.
package handlertest

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/lmsforge/lms-backend/internal/auth"
	"github.com/lmsforge/lms-backend/internal/config"
	"github.com/lmsforge/lms-backend/internal/db/dbtest"
	"github.com/lmsforge/lms-backend/internal/filestore"
	"github.com/lmsforge/lms-backend/internal/mailer"
	"github.com/lmsforge/lms-backend/internal/web/handler"
	authmw "github.com/lmsforge/lms-backend/internal/web/middleware/auth"
	"github.com/lmsforge/lms-backend/internal/web/session"
)

// Harness is a test app with its in-memory dependencies.
type Harness struct {
	App    *fiber.App
	Env    *handler.Env
	DB     *gorm.DB
	Tokens *auth.Tokens
	Mailer *mailer.Recorder
	Files  *filestore.Memory
}

// Envelope is a decoded response body.
type Envelope struct {
	Success bool                    `json:"success"`
	Message string                  `json:"message"`
	Data    json.RawMessage         `json:"data"`
	Errors  []handler.ErrorResponse `json:"errors"`
}

// New creates a harness. Register handlers with h.App and h.Env.
func New(t *testing.T) *Harness {
	t.Helper()

	db := dbtest.Open(t)
	store, err := session.Init(session.NewMemory())
	require.NoError(t, err)

	cfg := &config.Config{
		Title: "lms-test",
		Auth: config.Auth{
			JWTSecret:      "0123456789abcdef0123456789abcdef",
			Issuer:         "lms-test",
			AccessTokenTTL: time.Hour,
		},
		Invite:  config.Invite{Expiry: 24 * time.Hour, AcceptURL: "http://localhost/invite"},
		Storage: config.Storage{BasePath: "test", MaxUploadSize: 1024, PresignExpiry: time.Minute},
	}

	tokens := auth.NewTokens(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.AccessTokenTTL)
	authService := auth.NewService(db, tokens, store)
	rec := &mailer.Recorder{}
	files := filestore.NewMemory()

	env := &handler.Env{
		Config:      cfg,
		DB:          db,
		Auth:        authService,
		RequireAuth: authmw.New(authService),
		Mailer:      rec,
		Files:       files,
	}

	return &Harness{
		App:    fiber.New(),
		Env:    env,
		DB:     db,
		Tokens: tokens,
		Mailer: rec,
		Files:  files,
	}
}

// Token issues an access token for userID.
func (h *Harness) Token(t *testing.T, userID uint64) string {
	t.Helper()

	tok, err := h.Tokens.Issue(userID)
	require.NoError(t, err)

	return tok.Token
}

// Do sends a JSON request as userID, 0 sends it unauthenticated.
func (h *Harness) Do(t *testing.T, method, path string, body any, userID uint64) (int, Envelope) {
	t.Helper()

	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}

	return h.Send(t, req, userID)
}

// Send executes req as userID and decodes the envelope.
func (h *Harness) Send(t *testing.T, req *http.Request, userID uint64) (int, Envelope) {
	t.Helper()

	if userID != 0 {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+h.Token(t, userID))
	}

	resp, err := h.App.Test(req, -1)
	require.NoError(t, err)

	defer resp.Body.Close()

	var env Envelope

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	if len(raw) > 0 && strings.Contains(resp.Header.Get(fiber.HeaderContentType), "json") {
		require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	}

	return resp.StatusCode, env
}

// Decode unmarshals the data of env into v.
func Decode[T any](t *testing.T, env Envelope) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(env.Data, &v), string(env.Data))

	return v
}
