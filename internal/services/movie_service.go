package services

import (
	"context"
	"errors"
	"fmt"

	"movie-recommendation/internal/models"
	"movie-recommendation/internal/repository"

	"github.com/sirupsen/logrus"
)

type MovieService interface {
	CreateMovie(ctx context.Context, movie *models.Movie) (*models.MovieResponse, error)
	UpdateMovie(ctx context.Context, id uint, update models.MovieUpdate) (*models.MovieResponse, error)
	DeleteMovie(ctx context.Context, id uint) error
	GetMovieByID(ctx context.Context, id uint) (*models.MovieResponse, error)
	ListMovies(ctx context.Context, filter models.MovieFilter) ([]models.MovieResponse, int64, error)
}

type movieService struct {
	repo       repository.MovieRepository
	genreRepo  repository.GenreRepository
	aggregator *RatingAggregator
	posters    PosterRemover
	logger     *logrus.Logger
}

// NewMovieService wires the catalog. posters may be nil when object storage
// is not configured.
func NewMovieService(repo repository.MovieRepository, genreRepo repository.GenreRepository, aggregator *RatingAggregator, posters PosterRemover, logger *logrus.Logger) MovieService {
	return &movieService{
		repo:       repo,
		genreRepo:  genreRepo,
		aggregator: aggregator,
		posters:    posters,
		logger:     logger,
	}
}

func (s *movieService) CreateMovie(ctx context.Context, movie *models.Movie) (*models.MovieResponse, error) {
	if err := s.ensureGenre(ctx, movie.GenreID); err != nil {
		return nil, err
	}

	movie.ID = 0
	movie.Rating = roundRating(movie.Rating)
	if err := s.repo.Create(ctx, movie); err != nil {
		return nil, fmt.Errorf("failed to create movie: %w", err)
	}

	// A new movie has no reviews yet.
	return &models.MovieResponse{Movie: *movie}, nil
}

func (s *movieService) UpdateMovie(ctx context.Context, id uint, update models.MovieUpdate) (*models.MovieResponse, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.movieError(id, err)
	}
	previousPoster := existing.PosterURL

	if update.GenreID != nil {
		if err := s.ensureGenre(ctx, *update.GenreID); err != nil {
			return nil, err
		}
	}
	if update.Rating != nil {
		rating := roundRating(*update.Rating)
		update.Rating = &rating
	}

	movie, err := s.repo.Update(ctx, id, update)
	if err != nil {
		return nil, s.movieError(id, err)
	}

	if update.PosterURL != nil && previousPoster != "" && previousPoster != movie.PosterURL {
		s.removePoster(ctx, id, previousPoster)
	}

	return s.aggregator.AttachOne(ctx, movie)
}

func (s *movieService) DeleteMovie(ctx context.Context, id uint) error {
	movie, err := s.repo.Delete(ctx, id)
	if err != nil {
		return s.movieError(id, err)
	}

	if movie.PosterURL != "" {
		s.removePoster(ctx, id, movie.PosterURL)
	}
	return nil
}

func (s *movieService) GetMovieByID(ctx context.Context, id uint) (*models.MovieResponse, error) {
	movie, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.movieError(id, err)
	}
	return s.aggregator.AttachOne(ctx, movie)
}

func (s *movieService) ListMovies(ctx context.Context, filter models.MovieFilter) ([]models.MovieResponse, int64, error) {
	movies, total, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list movies: %w", err)
	}

	out, err := s.aggregator.Attach(ctx, movies)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (s *movieService) ensureGenre(ctx context.Context, genreID uint) error {
	if _, err := s.genreRepo.FindByID(ctx, genreID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return notFound("genre", genreID)
		}
		return fmt.Errorf("failed to look up genre: %w", err)
	}
	return nil
}

func (s *movieService) movieError(id uint, err error) error {
	if errors.Is(err, models.ErrNotFound) {
		return notFound("movie", id)
	}
	return fmt.Errorf("movie %d: %w", id, err)
}

// removePoster is best effort: a leftover object must not fail the request.
func (s *movieService) removePoster(ctx context.Context, movieID uint, posterURL string) {
	if s.posters == nil {
		return
	}
	if err := s.posters.RemovePoster(ctx, posterURL); err != nil {
		s.logger.WithError(err).WithField("movie_id", movieID).Warn("Failed to delete poster from storage")
	}
}
