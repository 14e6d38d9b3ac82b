package utils

import (
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flashfrancais/backend/apperrors"
)

func TestFromErrorStatusMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{apperrors.NotFoundf("resource %d", 12), fiber.StatusNotFound},
		{apperrors.InvalidInputf("bad field"), fiber.StatusBadRequest},
		{apperrors.ErrTooLarge, fiber.StatusRequestEntityTooLarge},
		{apperrors.Conflictf("duplicate"), fiber.StatusBadRequest},
		{apperrors.ErrUnauthorized, fiber.StatusUnauthorized},
		{apperrors.ErrForbidden, fiber.StatusForbidden},
		{apperrors.ErrNotConfigured, fiber.StatusServiceUnavailable},
		{apperrors.ErrTimeout, fiber.StatusGatewayTimeout},
		{errors.New("boom"), fiber.StatusInternalServerError},
	}

	for _, tc := range cases {
		app := fiber.New()
		failing := tc.err
		app.Get("/", func(c *fiber.Ctx) error {
			return FromError(c, failing)
		})
		resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
		require.NoError(t, err)
		assert.Equal(t, tc.status, resp.StatusCode, "error %v", tc.err)
	}
}
