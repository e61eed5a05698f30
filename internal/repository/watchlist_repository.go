package repository

import (
	"context"
	"time"

	"movie-recommendation/internal/database"
	"movie-recommendation/internal/models"
)

type WatchlistRepository interface {
	// Create relies on the (user, movie) unique index to reject duplicates.
	Create(ctx context.Context, entry *models.Watchlist) error
	DeleteByUserAndMovie(ctx context.Context, userID, movieID uint) error
	FindByUser(ctx context.Context, userID uint) ([]models.Watchlist, error)
	CountByUser(ctx context.Context, userID uint) (int64, error)
}

type watchlistRepository struct {
	db      *database.Database
	timeout time.Duration
}

func NewWatchlistRepository(db *database.Database) WatchlistRepository {
	return &watchlistRepository{
		db:      db,
		timeout: db.GetQueryTimeout(),
	}
}

func (r *watchlistRepository) Create(ctx context.Context, entry *models.Watchlist) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	db := r.db.WithContext(ctx)
	if err := db.Omit("User", "Movie").Create(entry).Error; err != nil {
		return translateError(err)
	}
	return translateError(db.Preload("Movie.Genre").First(entry, entry.ID).Error)
}

func (r *watchlistRepository) DeleteByUserAndMovie(ctx context.Context, userID, movieID uint) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	result := r.db.WithContext(ctx).
		Where("user_id = ? AND movie_id = ?", userID, movieID).
		Delete(&models.Watchlist{})
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *watchlistRepository) FindByUser(ctx context.Context, userID uint) ([]models.Watchlist, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	entries := []models.Watchlist{}
	err := r.db.WithContext(ctx).
		Preload("Movie.Genre").
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&entries).Error
	return entries, err
}

func (r *watchlistRepository) CountByUser(ctx context.Context, userID uint) (int64, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var count int64
	err := r.db.WithContext(ctx).Model(&models.Watchlist{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
