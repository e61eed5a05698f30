package handlers

import (
	"movie-recommendation/internal/middleware"
	"movie-recommendation/internal/services"
	"movie-recommendation/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type ProfileHandler struct {
	service services.ProfileService
	logger  *logrus.Logger
}

func NewProfileHandler(service services.ProfileService, logger *logrus.Logger) *ProfileHandler {
	return &ProfileHandler{
		service: service,
		logger:  logger,
	}
}

// GetProfile godoc
// @Summary Get the caller's profile
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.StandardResponse "Profile with favorite genres"
// @Router /profile/ [get]
func (h *ProfileHandler) GetProfile(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Authentication required")
	}

	profile, err := h.service.GetProfile(c.UserContext(), userID)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to retrieve profile")
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Profile retrieved successfully", profile)
}

// SetFavoriteGenres godoc
// @Summary Replace the caller's favorite genres
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param favorites body FavoriteGenresRequest true "Favorite genre IDs"
// @Success 200 {object} utils.StandardResponse "Updated profile"
// @Failure 404 {object} utils.StandardResponse "Genre not found"
// @Router /profile/favorite-genres/ [put]
func (h *ProfileHandler) SetFavoriteGenres(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Authentication required")
	}

	var req FavoriteGenresRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, h.logger, err, "")
	}

	profile, err := h.service.SetFavoriteGenres(c.UserContext(), userID, req.GenreIDs)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to update favorite genres")
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Favorite genres updated successfully", profile)
}
