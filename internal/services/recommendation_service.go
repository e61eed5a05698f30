package services

import (
	"context"
	"fmt"

	"movie-recommendation/internal/models"
	"movie-recommendation/internal/repository"
)

// RecommendationLimit caps the size of a recommendation set.
const RecommendationLimit = 10

type RecommendationService interface {
	// Recommend returns up to RecommendationLimit movies from the user's
	// favorite genres that are not on the user's watchlist. It is a set
	// filter, not a ranking: results come in movie id order.
	Recommend(ctx context.Context, userID uint) ([]models.MovieResponse, error)
}

type recommendationService struct {
	movieRepo  repository.MovieRepository
	userRepo   repository.UserRepository
	aggregator *RatingAggregator
}

func NewRecommendationService(movieRepo repository.MovieRepository, userRepo repository.UserRepository, aggregator *RatingAggregator) RecommendationService {
	return &recommendationService{
		movieRepo:  movieRepo,
		userRepo:   userRepo,
		aggregator: aggregator,
	}
}

func (s *recommendationService) Recommend(ctx context.Context, userID uint) ([]models.MovieResponse, error) {
	favorites, err := s.userRepo.FavoriteGenreIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load favorite genres: %w", err)
	}
	if len(favorites) == 0 {
		return []models.MovieResponse{}, nil
	}

	movies, err := s.movieRepo.FindRecommended(ctx, userID, RecommendationLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to find recommendations: %w", err)
	}
	return s.aggregator.Attach(ctx, movies)
}
