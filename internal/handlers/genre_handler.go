package handlers

import (
	"movie-recommendation/internal/services"
	"movie-recommendation/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type GenreHandler struct {
	service services.GenreService
	logger  *logrus.Logger
}

func NewGenreHandler(service services.GenreService, logger *logrus.Logger) *GenreHandler {
	return &GenreHandler{
		service: service,
		logger:  logger,
	}
}

// ListGenres godoc
// @Summary List genres
// @Tags genres
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.StandardResponse "Genres"
// @Router /genres/ [get]
func (h *GenreHandler) ListGenres(c *fiber.Ctx) error {
	genres, err := h.service.ListGenres(c.UserContext())
	if err != nil {
		return respondError(c, h.logger, err, "Failed to retrieve genres")
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Genres retrieved successfully", genres)
}

// CreateGenre godoc
// @Summary Create a genre
// @Tags genres
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param genre body GenreRequest true "Genre"
// @Success 201 {object} utils.StandardResponse "Genre created"
// @Failure 400 {object} utils.StandardResponse "Invalid request body"
// @Router /genres/ [post]
func (h *GenreHandler) CreateGenre(c *fiber.Ctx) error {
	var req GenreRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, h.logger, err, "")
	}

	genre, err := h.service.CreateGenre(c.UserContext(), req.Name)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to create genre")
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, "Genre created successfully", genre)
}

// UpdateGenre godoc
// @Summary Rename a genre
// @Tags genres
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Genre ID"
// @Param genre body GenreRequest true "Genre"
// @Success 200 {object} utils.StandardResponse "Genre updated"
// @Failure 404 {object} utils.StandardResponse "Genre not found"
// @Router /genres/{id}/ [put]
func (h *GenreHandler) UpdateGenre(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, h.logger, err, "")
	}

	var req GenreRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, h.logger, err, "")
	}

	genre, err := h.service.RenameGenre(c.UserContext(), id, req.Name)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to update genre")
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Genre updated successfully", genre)
}

// DeleteGenre godoc
// @Summary Delete a genre
// @Description Delete a genre together with its movies and their watchlist entries and reviews
// @Tags genres
// @Produce json
// @Security BearerAuth
// @Param id path int true "Genre ID"
// @Success 200 {object} utils.StandardResponse "Genre deleted"
// @Failure 404 {object} utils.StandardResponse "Genre not found"
// @Router /genres/{id}/ [delete]
func (h *GenreHandler) DeleteGenre(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, h.logger, err, "")
	}

	if err := h.service.DeleteGenre(c.UserContext(), id); err != nil {
		return respondError(c, h.logger, err, "Failed to delete genre")
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Genre deleted successfully", fiber.Map{"success": true})
}
