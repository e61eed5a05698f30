package middleware

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"strconv"
	"testing"

	"movie-recommendation/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAuthenticator map[string]uint

func (s stubAuthenticator) Authenticate(_ context.Context, token string) (uint, error) {
	if token == "broken-store" {
		return 0, errors.New("connection refused")
	}
	if id, ok := s[token]; ok {
		return id, nil
	}
	return 0, models.ErrInvalidToken
}

func newTestApp() *fiber.App {
	log := logrus.New()
	log.SetOutput(io.Discard)

	app := fiber.New()
	app.Get("/me", RequireAuth(stubAuthenticator{"good": 7}, log), func(c *fiber.Ctx) error {
		id, ok := UserID(c)
		if !ok {
			return c.SendStatus(fiber.StatusTeapot)
		}
		return c.SendString(strconv.FormatUint(uint64(id), 10))
	})
	return app
}

func TestRequireAuth(t *testing.T) {
	app := newTestApp()

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{"valid token", "Bearer good", fiber.StatusOK},
		{"missing header", "", fiber.StatusUnauthorized},
		{"wrong scheme", "Basic good", fiber.StatusUnauthorized},
		{"empty token", "Bearer ", fiber.StatusUnauthorized},
		{"unknown token", "Bearer nope", fiber.StatusUnauthorized},
		{"store failure", "Bearer broken-store", fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(fiber.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set(fiber.HeaderAuthorization, tt.header)
			}

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			if tt.wantStatus == fiber.StatusOK {
				body, err := io.ReadAll(resp.Body)
				require.NoError(t, err)
				assert.Equal(t, "7", string(body))
			}
		})
	}
}
