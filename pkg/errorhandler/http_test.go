package errorhandler

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/crowdsale/common/errs"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPErrorHandler(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: NewHTTPErrorHandler()})
	app.Get("/public", func(c *fiber.Ctx) error {
		return errs.WithPublicMessageCode(errors.New("amount must be positive"), "invalid request", "INVALID_AMOUNT")
	})
	app.Get("/forbidden", func(c *fiber.Ctx) error {
		return errs.WithPublicStatus(errors.New("caller is not the owner"), "", "UNAUTHORIZED", http.StatusForbidden)
	})
	app.Get("/fiber", func(c *fiber.Ctx) error {
		return errors.WithStack(fiber.ErrNotFound)
	})
	app.Get("/internal", func(c *fiber.Ctx) error {
		return errors.New("database is down")
	})

	testCases := []struct {
		path    string
		status  int
		message string
		code    string
	}{
		{"/public", http.StatusBadRequest, "invalid request: amount must be positive", "INVALID_AMOUNT"},
		{"/forbidden", http.StatusForbidden, "caller is not the owner", "UNAUTHORIZED"},
		{"/fiber", http.StatusNotFound, "Not Found", ""},
		{"/internal", http.StatusInternalServerError, "Internal Server Error", ""},
	}
	for _, tc := range testCases {
		t.Run(tc.path, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(http.MethodGet, tc.path, nil))
			require.NoError(t, err)
			defer resp.Body.Close()

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)

			var result struct {
				Error string `json:"error"`
				Code  string `json:"code"`
			}
			require.NoError(t, json.Unmarshal(body, &result))
			assert.Equal(t, tc.status, resp.StatusCode)
			assert.Equal(t, tc.message, result.Error)
			assert.Equal(t, tc.code, result.Code)
		})
	}
}
