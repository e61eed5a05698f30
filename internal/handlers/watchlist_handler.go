package handlers

import (
	"strconv"

	"movie-recommendation/internal/middleware"
	"movie-recommendation/internal/services"
	"movie-recommendation/internal/utils"
	"movie-recommendation/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type WatchlistHandler struct {
	service services.WatchlistService
	logger  *logrus.Logger
}

func NewWatchlistHandler(service services.WatchlistService, logger *logrus.Logger) *WatchlistHandler {
	return &WatchlistHandler{
		service: service,
		logger:  logger,
	}
}

// GetWatchlist godoc
// @Summary List the caller's watchlist
// @Tags watchlist
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.StandardResponse "Watchlist entries with movie details"
// @Router /watchlist/ [get]
func (h *WatchlistHandler) GetWatchlist(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Authentication required")
	}

	entries, err := h.service.ListWatchlist(c.UserContext(), userID)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to retrieve watchlist")
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Watchlist retrieved successfully", entries)
}

// AddToWatchlist godoc
// @Summary Add a movie to the caller's watchlist
// @Description The movie id is read from the JSON body, or from the movie_id query parameter when there is no body
// @Tags watchlist
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param entry body WatchlistAddRequest false "Movie to add"
// @Param movie_id query int false "Movie to add"
// @Success 201 {object} utils.StandardResponse "Movie added"
// @Failure 400 {object} utils.StandardResponse "Movie is already in the watchlist"
// @Failure 404 {object} utils.StandardResponse "Movie not found"
// @Router /watchlist/ [post]
func (h *WatchlistHandler) AddToWatchlist(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Authentication required")
	}

	var req WatchlistAddRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return respondError(c, h.logger, errInvalidBody, "")
		}
	} else if raw := c.Query("movie_id"); raw != "" {
		movieID, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return respondError(c, h.logger, badRequest("movie_id must be an integer"), "")
		}
		req.MovieID = uint(movieID)
	}
	if err := validation.ValidateStruct(&req); err != nil {
		return respondError(c, h.logger, err, "")
	}

	entry, err := h.service.AddToWatchlist(c.UserContext(), userID, req.MovieID)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to add movie to watchlist")
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, "Movie added to watchlist", entry)
}

// RemoveFromWatchlist godoc
// @Summary Remove a movie from the caller's watchlist
// @Tags watchlist
// @Produce json
// @Security BearerAuth
// @Param movie_id path int true "Movie ID"
// @Success 200 {object} utils.StandardResponse "Movie removed"
// @Failure 404 {object} utils.StandardResponse "Movie or watchlist entry not found"
// @Router /watchlist/{movie_id}/ [delete]
func (h *WatchlistHandler) RemoveFromWatchlist(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Authentication required")
	}

	movieID, err := parseID(c, "movie_id")
	if err != nil {
		return respondError(c, h.logger, err, "")
	}

	if err := h.service.RemoveFromWatchlist(c.UserContext(), userID, movieID); err != nil {
		return respondError(c, h.logger, err, "Failed to remove movie from watchlist")
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Movie removed from watchlist", fiber.Map{"success": true})
}
