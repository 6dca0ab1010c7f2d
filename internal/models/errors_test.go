package models

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func respondWith(t *testing.T, status int, err error) (int, map[string]any) {
	t.Helper()
	app := fiber.New()
	app.Get("/err", func(c *fiber.Ctx) error {
		return RespondWithError(c, status, err)
	})

	req := httptest.NewRequest(http.MethodGet, "/err", nil)
	resp, testErr := app.Test(req)
	require.NoError(t, testErr)
	defer func() { _ = resp.Body.Close() }()

	raw, readErr := io.ReadAll(resp.Body)
	require.NoError(t, readErr)
	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	return resp.StatusCode, body
}

func TestRespondWithError_InternalHidesCause(t *testing.T) {
	t.Parallel()
	cause := errors.New(`pq: connection to "postgres://app:secret@db:5432" failed`)

	status, body := respondWith(t, fiber.StatusInternalServerError, NewInternalError(cause))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "Internal server error", body["error"])
	assert.Equal(t, ErrCodeInternal, body["code"])
	assert.NotContains(t, body, "details")
}

func TestRespondWithError_PlainErrorAt500IsGeneric(t *testing.T) {
	t.Parallel()
	cause := errors.New("dial tcp 10.0.0.5:6379: connection refused")

	status, body := respondWith(t, fiber.StatusInternalServerError, cause)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "Internal server error", body["error"])
	assert.Equal(t, ErrCodeInternal, body["code"])
	assert.NotContains(t, body, "details")
}

func TestRespondWithError_ClientErrorsKeepDetail(t *testing.T) {
	t.Parallel()

	t.Run("app error message and code", func(t *testing.T) {
		status, body := respondWith(t, fiber.StatusNotFound, NewNotFoundError("Question", 7))
		assert.Equal(t, http.StatusNotFound, status)
		assert.Equal(t, "Question with ID 7 not found", body["error"])
		assert.Equal(t, ErrCodeNotFound, body["code"])
	})

	t.Run("wrapped cause on a non-internal code stays visible", func(t *testing.T) {
		appErr := &AppError{
			Code:    ErrCodeValidation,
			Message: "Invalid request body",
			Err:     errors.New("text: field is required"),
		}
		status, body := respondWith(t, fiber.StatusBadRequest, appErr)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "text: field is required", body["details"])
	})

	t.Run("plain error below 500 keeps its message", func(t *testing.T) {
		status, body := respondWith(t, fiber.StatusBadRequest, errors.New("bad cursor"))
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "bad cursor", body["error"])
	})
}
