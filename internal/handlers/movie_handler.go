package handlers

import (
	"strconv"

	"movie-recommendation/internal/repository"
	"movie-recommendation/internal/services"
	"movie-recommendation/internal/utils"
	"movie-recommendation/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type MovieHandler struct {
	service services.MovieService
	logger  *logrus.Logger
}

func NewMovieHandler(service services.MovieService, logger *logrus.Logger) *MovieHandler {
	return &MovieHandler{
		service: service,
		logger:  logger,
	}
}

// GetAllMovies godoc
// @Summary List movies
// @Description Filter, sort and paginate the catalog. Every movie carries the average of its review ratings.
// @Tags movies
// @Produce json
// @Security BearerAuth
// @Param title query string false "Case-insensitive title substring"
// @Param genre_id query int false "Genre ID"
// @Param min_rating query number false "Minimum rating (inclusive)"
// @Param max_rating query number false "Maximum rating (inclusive)"
// @Param start_date query string false "Earliest release date (YYYY-MM-DD, inclusive)"
// @Param end_date query string false "Latest release date (YYYY-MM-DD, inclusive)"
// @Param sort_by query string false "Sort field (title, release_date, rating)"
// @Param order query string false "Sort order (asc, desc)" default(asc)
// @Param limit query int false "Page size, capped at 100" default(10)
// @Param offset query int false "Movies to skip" default(0)
// @Success 200 {object} utils.StandardResponse "List of movies"
// @Failure 400 {object} utils.StandardResponse "Invalid query parameter"
// @Router /movies/ [get]
func (h *MovieHandler) GetAllMovies(c *fiber.Ctx) error {
	query, err := parseMovieListQuery(c)
	if err != nil {
		return respondError(c, h.logger, err, "")
	}

	movies, total, err := h.service.ListMovies(c.UserContext(), query.toFilter())
	if err != nil {
		return respondError(c, h.logger, err, "Failed to retrieve movies")
	}

	meta := utils.CreatePaginationMeta(query.Limit, query.Offset, total)
	return utils.SuccessWithMetaResponse(c, fiber.StatusOK, "Movies retrieved successfully", movies, meta)
}

// GetMovieByID godoc
// @Summary Get movie by ID
// @Tags movies
// @Produce json
// @Security BearerAuth
// @Param id path int true "Movie ID"
// @Success 200 {object} utils.StandardResponse "Movie details"
// @Failure 404 {object} utils.StandardResponse "Movie not found"
// @Router /movies/{id}/ [get]
func (h *MovieHandler) GetMovieByID(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, h.logger, err, "")
	}

	movie, err := h.service.GetMovieByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to retrieve movie")
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Movie retrieved successfully", movie)
}

// CreateMovie godoc
// @Summary Create a movie
// @Tags movies
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param movie body MovieCreateRequest true "Movie"
// @Success 201 {object} utils.StandardResponse "Movie created successfully"
// @Failure 400 {object} utils.StandardResponse "Invalid request body"
// @Failure 404 {object} utils.StandardResponse "Genre not found"
// @Router /movies/ [post]
func (h *MovieHandler) CreateMovie(c *fiber.Ctx) error {
	var req MovieCreateRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, h.logger, err, "")
	}

	movie, err := h.service.CreateMovie(c.UserContext(), req.toMovie())
	if err != nil {
		return respondError(c, h.logger, err, "Failed to create movie")
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, "Movie created successfully", movie)
}

// UpdateMovie godoc
// @Summary Update a movie
// @Description Partial update: only the fields present in the body are changed
// @Tags movies
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Movie ID"
// @Param movie body MovieUpdateRequest true "Fields to change"
// @Success 200 {object} utils.StandardResponse "Movie updated successfully"
// @Failure 400 {object} utils.StandardResponse "Invalid request"
// @Failure 404 {object} utils.StandardResponse "Movie or genre not found"
// @Router /movies/{id}/ [put]
func (h *MovieHandler) UpdateMovie(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, h.logger, err, "")
	}

	var req MovieUpdateRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, h.logger, err, "")
	}

	movie, err := h.service.UpdateMovie(c.UserContext(), id, req.toUpdate())
	if err != nil {
		return respondError(c, h.logger, err, "Failed to update movie")
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Movie updated successfully", movie)
}

// DeleteMovie godoc
// @Summary Delete a movie
// @Description Delete a movie together with its watchlist entries and reviews
// @Tags movies
// @Produce json
// @Security BearerAuth
// @Param id path int true "Movie ID"
// @Success 200 {object} utils.StandardResponse "Movie deleted successfully"
// @Failure 404 {object} utils.StandardResponse "Movie not found"
// @Router /movies/{id}/ [delete]
func (h *MovieHandler) DeleteMovie(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, h.logger, err, "")
	}

	if err := h.service.DeleteMovie(c.UserContext(), id); err != nil {
		return respondError(c, h.logger, err, "Failed to delete movie")
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Movie deleted successfully", fiber.Map{"success": true})
}

func parseMovieListQuery(c *fiber.Ctx) (*MovieListQuery, error) {
	query := &MovieListQuery{
		Title:     c.Query("title"),
		StartDate: c.Query("start_date"),
		EndDate:   c.Query("end_date"),
		SortBy:    c.Query("sort_by"),
		Order:     c.Query("order"),
		Limit:     repository.DefaultMovieLimit,
	}

	if raw := c.Query("genre_id"); raw != "" {
		v, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return nil, badRequest("genre_id must be an integer")
		}
		id := uint(v)
		query.GenreID = &id
	}
	if raw := c.Query("min_rating"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, badRequest("min_rating must be a number")
		}
		query.MinRating = &v
	}
	if raw := c.Query("max_rating"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, badRequest("max_rating must be a number")
		}
		query.MaxRating = &v
	}
	if raw := c.Query("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return nil, badRequest("limit must be an integer")
		}
		query.Limit = v
	}
	if raw := c.Query("offset"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return nil, badRequest("offset must be an integer")
		}
		query.Offset = v
	}

	query.Limit, query.Offset = repository.NormalizePage(query.Limit, query.Offset)

	if err := validation.ValidateStruct(query); err != nil {
		return nil, err
	}
	return query, nil
}
