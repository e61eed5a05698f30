package services

import (
	"context"
	"errors"
	"fmt"

	"movie-recommendation/internal/models"
	"movie-recommendation/internal/repository"

	"github.com/sirupsen/logrus"
)

type GenreService interface {
	ListGenres(ctx context.Context) ([]models.Genre, error)
	CreateGenre(ctx context.Context, name string) (*models.Genre, error)
	RenameGenre(ctx context.Context, id uint, name string) (*models.Genre, error)
	// DeleteGenre cascades to the genre's movies and their watchlist entries and reviews.
	DeleteGenre(ctx context.Context, id uint) error
}

type genreService struct {
	repo   repository.GenreRepository
	logger *logrus.Logger
}

func NewGenreService(repo repository.GenreRepository, logger *logrus.Logger) GenreService {
	return &genreService{repo: repo, logger: logger}
}

func (s *genreService) ListGenres(ctx context.Context) ([]models.Genre, error) {
	return s.repo.FindAll(ctx)
}

func (s *genreService) CreateGenre(ctx context.Context, name string) (*models.Genre, error) {
	genre := &models.Genre{Name: name}
	if err := s.repo.Create(ctx, genre); err != nil {
		return nil, fmt.Errorf("failed to create genre: %w", err)
	}
	return genre, nil
}

func (s *genreService) RenameGenre(ctx context.Context, id uint, name string) (*models.Genre, error) {
	genre, err := s.repo.Rename(ctx, id, name)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, notFound("genre", id)
		}
		return nil, fmt.Errorf("failed to update genre: %w", err)
	}
	return genre, nil
}

func (s *genreService) DeleteGenre(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return notFound("genre", id)
		}
		return fmt.Errorf("failed to delete genre: %w", err)
	}

	s.logger.WithField("genre_id", id).Info("Genre deleted with its movies")
	return nil
}
