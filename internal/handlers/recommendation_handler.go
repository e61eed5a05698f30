package handlers

import (
	"movie-recommendation/internal/middleware"
	"movie-recommendation/internal/services"
	"movie-recommendation/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type RecommendationHandler struct {
	service services.RecommendationService
	logger  *logrus.Logger
}

func NewRecommendationHandler(service services.RecommendationService, logger *logrus.Logger) *RecommendationHandler {
	return &RecommendationHandler{
		service: service,
		logger:  logger,
	}
}

// GetRecommendations godoc
// @Summary Recommend movies
// @Description Up to 10 movies from the caller's favorite genres that are not on the caller's watchlist
// @Tags recommendations
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.StandardResponse "Recommended movies"
// @Router /recommendations/ [get]
func (h *RecommendationHandler) GetRecommendations(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Authentication required")
	}

	movies, err := h.service.Recommend(c.UserContext(), userID)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to retrieve recommendations")
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Recommendations retrieved successfully", movies)
}
