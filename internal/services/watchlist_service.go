package services

import (
	"context"
	"errors"
	"fmt"

	"movie-recommendation/internal/models"
	"movie-recommendation/internal/repository"
)

type WatchlistService interface {
	ListWatchlist(ctx context.Context, userID uint) ([]models.WatchlistResponse, error)
	AddToWatchlist(ctx context.Context, userID, movieID uint) (*models.WatchlistResponse, error)
	RemoveFromWatchlist(ctx context.Context, userID, movieID uint) error
}

type watchlistService struct {
	repo       repository.WatchlistRepository
	movieRepo  repository.MovieRepository
	aggregator *RatingAggregator
}

func NewWatchlistService(repo repository.WatchlistRepository, movieRepo repository.MovieRepository, aggregator *RatingAggregator) WatchlistService {
	return &watchlistService{
		repo:       repo,
		movieRepo:  movieRepo,
		aggregator: aggregator,
	}
}

func (s *watchlistService) ListWatchlist(ctx context.Context, userID uint) ([]models.WatchlistResponse, error) {
	entries, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list watchlist: %w", err)
	}
	return s.toResponses(ctx, entries)
}

// AddToWatchlist does not overwrite: a second add of the same movie fails
// with models.ErrDuplicateEntry, whether caught here or by the unique index.
func (s *watchlistService) AddToWatchlist(ctx context.Context, userID, movieID uint) (*models.WatchlistResponse, error) {
	if _, err := s.movieRepo.FindByID(ctx, movieID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, notFound("movie", movieID)
		}
		return nil, fmt.Errorf("failed to look up movie: %w", err)
	}

	entry := &models.Watchlist{UserID: userID, MovieID: movieID}
	if err := s.repo.Create(ctx, entry); err != nil {
		if errors.Is(err, models.ErrDuplicateEntry) {
			return nil, fmt.Errorf("movie %d is already in the watchlist: %w", movieID, models.ErrDuplicateEntry)
		}
		return nil, fmt.Errorf("failed to add to watchlist: %w", err)
	}

	out, err := s.toResponses(ctx, []models.Watchlist{*entry})
	if err != nil {
		return nil, err
	}
	return &out[0], nil
}

func (s *watchlistService) RemoveFromWatchlist(ctx context.Context, userID, movieID uint) error {
	if _, err := s.movieRepo.FindByID(ctx, movieID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return notFound("movie", movieID)
		}
		return fmt.Errorf("failed to look up movie: %w", err)
	}

	if err := s.repo.DeleteByUserAndMovie(ctx, userID, movieID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return fmt.Errorf("movie %d is not in the watchlist: %w", movieID, models.ErrNotFound)
		}
		return fmt.Errorf("failed to remove from watchlist: %w", err)
	}
	return nil
}

func (s *watchlistService) toResponses(ctx context.Context, entries []models.Watchlist) ([]models.WatchlistResponse, error) {
	movies := make([]models.Movie, 0, len(entries))
	for _, e := range entries {
		if e.Movie != nil {
			movies = append(movies, *e.Movie)
		}
	}

	withAverages, err := s.aggregator.Attach(ctx, movies)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]models.MovieResponse, len(withAverages))
	for _, m := range withAverages {
		byID[m.ID] = m
	}

	out := make([]models.WatchlistResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, models.WatchlistResponse{
			ID:        e.ID,
			Movie:     byID[e.MovieID],
			CreatedAt: e.CreatedAt,
		})
	}
	return out, nil
}
