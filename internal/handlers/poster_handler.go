package handlers

import (
	"context"

	"movie-recommendation/internal/services"
	"movie-recommendation/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// PosterPresigner issues upload URLs for movie posters.
type PosterPresigner interface {
	PresignUpload(ctx context.Context, movieID uint, filename string) (*services.PosterUpload, error)
}

type PosterHandler struct {
	posters PosterPresigner
	movies  services.MovieService
	logger  *logrus.Logger
}

// NewPosterHandler builds the poster endpoints. posters is nil when object
// storage is not configured.
func NewPosterHandler(posters PosterPresigner, movies services.MovieService, logger *logrus.Logger) *PosterHandler {
	return &PosterHandler{
		posters: posters,
		movies:  movies,
		logger:  logger,
	}
}

// GetPresignedURL godoc
// @Summary Get presigned URL for a poster upload
// @Description Generate a short-lived PUT URL for uploading a movie poster to MinIO/S3. Store the returned public_url as the movie's poster_url.
// @Tags movies
// @Produce json
// @Security BearerAuth
// @Param id path int true "Movie ID"
// @Param filename query string true "Filename"
// @Success 200 {object} utils.StandardResponse
// @Failure 400 {object} utils.StandardResponse
// @Failure 404 {object} utils.StandardResponse
// @Failure 503 {object} utils.StandardResponse "Object storage not configured"
// @Router /movies/{id}/poster/presign/ [get]
func (h *PosterHandler) GetPresignedURL(c *fiber.Ctx) error {
	if h.posters == nil {
		return utils.ErrorResponse(c, fiber.StatusServiceUnavailable, "Poster storage is not configured")
	}

	movieID, err := parseID(c, "id")
	if err != nil {
		return respondError(c, h.logger, err, "")
	}

	filename := c.Query("filename")
	if filename == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "filename is required")
	}

	if _, err := h.movies.GetMovieByID(c.UserContext(), movieID); err != nil {
		return respondError(c, h.logger, err, "Failed to retrieve movie")
	}

	upload, err := h.posters.PresignUpload(c.UserContext(), movieID, filename)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to generate presigned URL")
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Presigned URL generated successfully", upload)
}
