package handlers

import (
	"movie-recommendation/internal/middleware"
	"movie-recommendation/internal/services"
	"movie-recommendation/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type ReviewHandler struct {
	service services.ReviewService
	logger  *logrus.Logger
}

func NewReviewHandler(service services.ReviewService, logger *logrus.Logger) *ReviewHandler {
	return &ReviewHandler{
		service: service,
		logger:  logger,
	}
}

// ListReviews godoc
// @Summary List reviews of a movie
// @Tags reviews
// @Produce json
// @Security BearerAuth
// @Param id path int true "Movie ID"
// @Success 200 {object} utils.StandardResponse "Reviews"
// @Failure 404 {object} utils.StandardResponse "Movie not found"
// @Router /movies/{id}/reviews/ [get]
func (h *ReviewHandler) ListReviews(c *fiber.Ctx) error {
	movieID, err := parseID(c, "id")
	if err != nil {
		return respondError(c, h.logger, err, "")
	}

	reviews, err := h.service.ListReviews(c.UserContext(), movieID)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to retrieve reviews")
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Reviews retrieved successfully", reviews)
}

// CreateReview godoc
// @Summary Review a movie
// @Description One review per user per movie
// @Tags reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Movie ID"
// @Param review body ReviewRequest true "Review"
// @Success 201 {object} utils.StandardResponse "Review created"
// @Failure 400 {object} utils.StandardResponse "Invalid body or movie already reviewed"
// @Failure 404 {object} utils.StandardResponse "Movie not found"
// @Router /movies/{id}/reviews/ [post]
func (h *ReviewHandler) CreateReview(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Authentication required")
	}

	movieID, err := parseID(c, "id")
	if err != nil {
		return respondError(c, h.logger, err, "")
	}

	var req ReviewRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, h.logger, err, "")
	}

	review, err := h.service.AddReview(c.UserContext(), userID, movieID, *req.Rating, req.Comment)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to create review")
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, "Review created successfully", review)
}

// UpdateReview godoc
// @Summary Update the caller's review
// @Description Overwrites rating and comment; an omitted comment is cleared
// @Tags reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Review ID"
// @Param review body ReviewRequest true "Review"
// @Success 200 {object} utils.StandardResponse "Review updated"
// @Failure 404 {object} utils.StandardResponse "Review not found"
// @Router /reviews/{id}/ [put]
func (h *ReviewHandler) UpdateReview(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Authentication required")
	}

	reviewID, err := parseID(c, "id")
	if err != nil {
		return respondError(c, h.logger, err, "")
	}

	var req ReviewRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, h.logger, err, "")
	}

	review, err := h.service.UpdateReview(c.UserContext(), reviewID, userID, *req.Rating, req.Comment)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to update review")
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Review updated successfully", review)
}

// DeleteReview godoc
// @Summary Delete the caller's review
// @Tags reviews
// @Produce json
// @Security BearerAuth
// @Param id path int true "Review ID"
// @Success 200 {object} utils.StandardResponse "Review deleted"
// @Failure 404 {object} utils.StandardResponse "Review not found"
// @Router /reviews/{id}/ [delete]
func (h *ReviewHandler) DeleteReview(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Authentication required")
	}

	reviewID, err := parseID(c, "id")
	if err != nil {
		return respondError(c, h.logger, err, "")
	}

	if err := h.service.DeleteReview(c.UserContext(), reviewID, userID); err != nil {
		return respondError(c, h.logger, err, "Failed to delete review")
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Review deleted successfully", fiber.Map{"success": true})
}
