//go:build unit

package cerror

import (
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMiddleware(t *testing.T) {
	newApp := func(err error) *fiber.App {
		app := fiber.New(fiber.Config{
			ErrorHandler: Middleware,
		})
		app.Get("/", func(ctx *fiber.Ctx) error {
			return err
		})
		return app
	}

	t.Run("should serialize custom error", func(t *testing.T) {
		app := newApp(ErrorUserNotFound.WithFields(zap.String("userId", "abcd")))

		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil))
		require.NoError(t, err)
		body, _ := io.ReadAll(resp.Body)

		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
		assert.JSONEq(t, `{"message":"User not found"}`, string(body))
	})

	t.Run("should serialize validation fields", func(t *testing.T) {
		app := newApp(
			NewError(fiber.StatusBadRequest, "validation failed").
				SetMessage(MessageValidationFailed).
				SetFields(map[string]string{"email": "is required", "password": "is required"}),
		)

		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil))
		require.NoError(t, err)
		body, _ := io.ReadAll(resp.Body)

		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		assert.JSONEq(t,
			`{"message":"Validation failed","errors":{"email":"is required","password":"is required"}}`,
			string(body),
		)
	})

	t.Run("should keep status of fiber errors", func(t *testing.T) {
		app := newApp(fiber.ErrMethodNotAllowed)

		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil))
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusMethodNotAllowed, resp.StatusCode)
	})

	t.Run("should hide unknown errors behind generic message", func(t *testing.T) {
		app := newApp(errors.New("dial tcp 10.0.0.1:27017: connection refused"))

		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil))
		require.NoError(t, err)
		body, _ := io.ReadAll(resp.Body)

		assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
		assert.JSONEq(t, `{"message":"Internal server error"}`, string(body))
	})
}
