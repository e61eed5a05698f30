package middleware

import (
	"context"
	"errors"

	"movie-recommendation/internal/auth"
	"movie-recommendation/internal/models"
	"movie-recommendation/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

const userIDKey = "user_id"

// Authenticator resolves an access token to a user id.
type Authenticator interface {
	Authenticate(ctx context.Context, accessToken string) (uint, error)
}

// RequireAuth rejects requests without a valid bearer access token and
// stores the caller's user id for UserID.
func RequireAuth(authenticator Authenticator, logger *logrus.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, err := auth.BearerToken(c.Get(fiber.HeaderAuthorization))
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, err.Error())
		}

		userID, err := authenticator.Authenticate(c.UserContext(), token)
		if err != nil {
			if !errors.Is(err, models.ErrInvalidToken) {
				logger.WithError(err).WithField("path", c.Path()).Error("Failed to authenticate request")
				return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to authenticate request")
			}
			logger.WithError(err).WithField("path", c.Path()).Debug("Rejected bearer token")
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid or expired token")
		}

		c.Locals(userIDKey, userID)
		return c.Next()
	}
}

// UserID returns the authenticated caller set by RequireAuth.
func UserID(c *fiber.Ctx) (uint, bool) {
	userID, ok := c.Locals(userIDKey).(uint)
	return userID, ok && userID != 0
}
