package repository

import (
	"context"
	"time"

	"movie-recommendation/internal/database"
	"movie-recommendation/internal/models"

	"gorm.io/gorm"
)

type GenreRepository interface {
	Create(ctx context.Context, genre *models.Genre) error
	Rename(ctx context.Context, id uint, name string) (*models.Genre, error)
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*models.Genre, error)
	FindByIDs(ctx context.Context, ids []uint) ([]models.Genre, error)
	FindAll(ctx context.Context) ([]models.Genre, error)
}

type genreRepository struct {
	db      *database.Database
	timeout time.Duration
}

func NewGenreRepository(db *database.Database) GenreRepository {
	return &genreRepository{
		db:      db,
		timeout: db.GetQueryTimeout(),
	}
}

func (r *genreRepository) Create(ctx context.Context, genre *models.Genre) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	return translateError(r.db.WithContext(ctx).Create(genre).Error)
}

func (r *genreRepository) Rename(ctx context.Context, id uint, name string) (*models.Genre, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var genre models.Genre
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&genre, id).Error; err != nil {
			return err
		}
		genre.Name = name
		return tx.Model(&genre).Update("name", name).Error
	})
	if err != nil {
		return nil, translateError(err)
	}
	return &genre, nil
}

// Delete removes a genre together with its movies, their watchlist entries
// and reviews, and every favorite-genre link to it.
func (r *genreRepository) Delete(ctx context.Context, id uint) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&models.Genre{}, id).Error; err != nil {
			return err
		}

		movieIDs := tx.Model(&models.Movie{}).Select("id").Where("genre_id = ?", id)
		if err := tx.Where("movie_id IN (?)", movieIDs).Delete(&models.Review{}).Error; err != nil {
			return err
		}
		if err := tx.Where("movie_id IN (?)", movieIDs).Delete(&models.Watchlist{}).Error; err != nil {
			return err
		}
		if err := tx.Where("genre_id = ?", id).Delete(&models.Movie{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM "+models.FavoriteGenresTable+" WHERE genre_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Genre{}, id).Error
	})
	return translateError(err)
}

func (r *genreRepository) FindByID(ctx context.Context, id uint) (*models.Genre, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var genre models.Genre
	if err := r.db.WithContext(ctx).First(&genre, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &genre, nil
}

func (r *genreRepository) FindByIDs(ctx context.Context, ids []uint) ([]models.Genre, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	genres := []models.Genre{}
	if len(ids) == 0 {
		return genres, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("id ASC").Find(&genres).Error
	return genres, err
}

func (r *genreRepository) FindAll(ctx context.Context) ([]models.Genre, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	genres := []models.Genre{}
	err := r.db.WithContext(ctx).Order("id ASC").Find(&genres).Error
	return genres, err
}
