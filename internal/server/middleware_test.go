package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"quorum/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupMiddleware_TracingToggle(t *testing.T) {
	run := func(t *testing.T, enabled bool) *http.Response {
		s := &Server{config: &config.Config{
			JWTSecret:      "test_secret",
			TracingEnabled: enabled,
		}}
		app := fiber.New()
		s.SetupMiddleware(app)
		app.Get("/ping", func(c *fiber.Ctx) error {
			return c.SendStatus(fiber.StatusOK)
		})

		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		return resp
	}

	t.Run("enabled emits trace header", func(t *testing.T) {
		resp := run(t, true)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.NotEmpty(t, resp.Header.Get("X-Trace-ID"))
	})

	t.Run("disabled leaves requests unspanned", func(t *testing.T) {
		resp := run(t, false)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Empty(t, resp.Header.Get("X-Trace-ID"))
	})
}
