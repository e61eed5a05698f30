package services

import (
	"context"
	"errors"
	"fmt"

	"movie-recommendation/internal/models"
	"movie-recommendation/internal/repository"
)

type ReviewService interface {
	ListReviews(ctx context.Context, movieID uint) ([]models.Review, error)
	AddReview(ctx context.Context, userID, movieID uint, rating float64, comment *string) (*models.Review, error)
	// UpdateReview overwrites rating and comment; a nil comment clears it.
	UpdateReview(ctx context.Context, reviewID, userID uint, rating float64, comment *string) (*models.Review, error)
	DeleteReview(ctx context.Context, reviewID, userID uint) error
}

type reviewService struct {
	repo      repository.ReviewRepository
	movieRepo repository.MovieRepository
}

func NewReviewService(repo repository.ReviewRepository, movieRepo repository.MovieRepository) ReviewService {
	return &reviewService{repo: repo, movieRepo: movieRepo}
}

func (s *reviewService) ListReviews(ctx context.Context, movieID uint) ([]models.Review, error) {
	if err := s.ensureMovie(ctx, movieID); err != nil {
		return nil, err
	}
	reviews, err := s.repo.FindByMovie(ctx, movieID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, nil
}

func (s *reviewService) AddReview(ctx context.Context, userID, movieID uint, rating float64, comment *string) (*models.Review, error) {
	if err := s.ensureMovie(ctx, movieID); err != nil {
		return nil, err
	}

	review := &models.Review{
		UserID:  userID,
		MovieID: movieID,
		Rating:  roundRating(rating),
		Comment: comment,
	}
	if err := s.repo.Create(ctx, review); err != nil {
		if errors.Is(err, models.ErrDuplicateEntry) {
			return nil, fmt.Errorf("movie %d is already reviewed by this user: %w", movieID, models.ErrDuplicateEntry)
		}
		return nil, fmt.Errorf("failed to create review: %w", err)
	}
	return review, nil
}

// A review owned by another user is reported as not found.
func (s *reviewService) UpdateReview(ctx context.Context, reviewID, userID uint, rating float64, comment *string) (*models.Review, error) {
	review, err := s.repo.UpdateOwned(ctx, reviewID, userID, roundRating(rating), comment)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, notFound("review", reviewID)
		}
		return nil, fmt.Errorf("failed to update review: %w", err)
	}
	return review, nil
}

func (s *reviewService) DeleteReview(ctx context.Context, reviewID, userID uint) error {
	if err := s.repo.DeleteOwned(ctx, reviewID, userID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return notFound("review", reviewID)
		}
		return fmt.Errorf("failed to delete review: %w", err)
	}
	return nil
}

func (s *reviewService) ensureMovie(ctx context.Context, movieID uint) error {
	if _, err := s.movieRepo.FindByID(ctx, movieID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return notFound("movie", movieID)
		}
		return fmt.Errorf("failed to look up movie: %w", err)
	}
	return nil
}
