package metrics

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCountsByRoute(t *testing.T) {
	app := fiber.New()
	app.Use(New("lms-test"))
	app.Get("/items/:id", func(c *fiber.Ctx) error {
		if c.Params("id") == "0" {
			return fiber.ErrNotFound
		}

		return c.SendString("ok")
	})

	for _, target := range []string{"/items/1", "/items/2", "/items/0"} {
		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, target, nil), -1)
		require.NoError(t, err)
		require.NoError(t, resp.Body.Close())
	}

	assert.InDelta(t, 2, testutil.ToFloat64(requests.WithLabelValues(fiber.MethodGet, "/items/:id", "200")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(requests.WithLabelValues(fiber.MethodGet, "/items/:id", "404")), 0)
}
