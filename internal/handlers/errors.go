package handlers

import (
	"errors"
	"strconv"

	"movie-recommendation/internal/models"
	"movie-recommendation/internal/utils"
	"movie-recommendation/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

var (
	errInvalidID   = errors.New("invalid id")
	errInvalidBody = errors.New("invalid request body")
)

// badRequestError carries a client-input problem found while parsing.
type badRequestError struct {
	msg string
}

func (e *badRequestError) Error() string {
	return e.msg
}

func badRequest(msg string) error {
	return &badRequestError{msg: msg}
}

// respondError maps domain errors to status codes. Anything unrecognized is
// logged and reported as a 500 with the fallback message.
func respondError(c *fiber.Ctx, logger *logrus.Logger, err error, fallback string) error {
	var verr *validation.RequestValidationError
	var berr *badRequestError
	switch {
	case errors.Is(err, errInvalidID):
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid id")
	case errors.Is(err, errInvalidBody):
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	case errors.As(err, &berr):
		return utils.ErrorResponse(c, fiber.StatusBadRequest, berr.msg)
	case errors.As(err, &verr):
		return utils.ErrorWithDataResponse(c, fiber.StatusBadRequest, verr.Error(), verr.Fields)
	case errors.Is(err, models.ErrNotFound), errors.Is(err, models.ErrForbidden):
		return utils.ErrorResponse(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, models.ErrDuplicateEntry):
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, models.ErrInvalidCredentials), errors.Is(err, models.ErrInvalidToken):
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, err.Error())
	}

	logger.WithError(err).WithFields(logrus.Fields{
		"method": c.Method(),
		"path":   c.Path(),
	}).Error(fallback)
	return utils.ErrorResponse(c, fiber.StatusInternalServerError, fallback)
}

// parseBody decodes and validates a JSON request body.
func parseBody(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return errInvalidBody
	}
	return validation.ValidateStruct(out)
}

func parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(param), 10, 32)
	if err != nil || id == 0 {
		return 0, errInvalidID
	}
	return uint(id), nil
}
