package services

import (
	"context"
	"fmt"

	"movie-recommendation/internal/models"
	"movie-recommendation/internal/repository"
)

type ProfileService interface {
	GetProfile(ctx context.Context, userID uint) (*models.UserProfile, error)
	// SetFavoriteGenres replaces the favorite set; every id must name an
	// existing genre.
	SetFavoriteGenres(ctx context.Context, userID uint, genreIDs []uint) (*models.UserProfile, error)
}

type profileService struct {
	userRepo  repository.UserRepository
	genreRepo repository.GenreRepository
}

func NewProfileService(userRepo repository.UserRepository, genreRepo repository.GenreRepository) ProfileService {
	return &profileService{userRepo: userRepo, genreRepo: genreRepo}
}

func (s *profileService) GetProfile(ctx context.Context, userID uint) (*models.UserProfile, error) {
	profile, err := s.userRepo.FindProfile(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	return profile, nil
}

func (s *profileService) SetFavoriteGenres(ctx context.Context, userID uint, genreIDs []uint) (*models.UserProfile, error) {
	unique := make([]uint, 0, len(genreIDs))
	seen := make(map[uint]struct{}, len(genreIDs))
	for _, id := range genreIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	genres, err := s.genreRepo.FindByIDs(ctx, unique)
	if err != nil {
		return nil, fmt.Errorf("failed to look up genres: %w", err)
	}
	if len(genres) != len(unique) {
		found := make(map[uint]struct{}, len(genres))
		for _, g := range genres {
			found[g.ID] = struct{}{}
		}
		for _, id := range unique {
			if _, ok := found[id]; !ok {
				return nil, notFound("genre", id)
			}
		}
	}

	profile, err := s.userRepo.ReplaceFavoriteGenres(ctx, userID, genres)
	if err != nil {
		return nil, fmt.Errorf("failed to update favorite genres: %w", err)
	}
	return profile, nil
}
