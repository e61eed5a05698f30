package repository

import (
	"context"
	"time"

	"movie-recommendation/internal/database"
	"movie-recommendation/internal/models"

	"gorm.io/gorm"
)

type ReviewRepository interface {
	// Create relies on the (user, movie) unique index to reject duplicates.
	Create(ctx context.Context, review *models.Review) error
	// UpdateOwned overwrites rating and comment of a review owned by userID.
	UpdateOwned(ctx context.Context, id, userID uint, rating float64, comment *string) (*models.Review, error)
	DeleteOwned(ctx context.Context, id, userID uint) error
	FindByMovie(ctx context.Context, movieID uint) ([]models.Review, error)
	AverageRatings(ctx context.Context, movieIDs []uint) ([]models.MovieRatingAverage, error)
}

type reviewRepository struct {
	db      *database.Database
	timeout time.Duration
}

func NewReviewRepository(db *database.Database) ReviewRepository {
	return &reviewRepository{
		db:      db,
		timeout: db.GetQueryTimeout(),
	}
}

func (r *reviewRepository) Create(ctx context.Context, review *models.Review) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	db := r.db.WithContext(ctx)
	if err := db.Omit("User", "Movie").Create(review).Error; err != nil {
		return translateError(err)
	}
	return translateError(db.Preload("User").First(review, review.ID).Error)
}

func (r *reviewRepository) UpdateOwned(ctx context.Context, id, userID uint, rating float64, comment *string) (*models.Review, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var review models.Review
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&review).Error; err != nil {
			return err
		}
		err := tx.Model(&review).Updates(map[string]interface{}{
			"rating":  rating,
			"comment": comment,
		}).Error
		if err != nil {
			return err
		}
		return tx.Preload("User").First(&review, id).Error
	})
	if err != nil {
		return nil, translateError(err)
	}
	return &review, nil
}

func (r *reviewRepository) DeleteOwned(ctx context.Context, id, userID uint) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Review{})
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *reviewRepository) FindByMovie(ctx context.Context, movieID uint) ([]models.Review, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	reviews := []models.Review{}
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("movie_id = ?", movieID).
		Order("created_at ASC, id ASC").
		Find(&reviews).Error
	return reviews, err
}

// AverageRatings returns one row per movie that has at least one review.
func (r *reviewRepository) AverageRatings(ctx context.Context, movieIDs []uint) ([]models.MovieRatingAverage, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	rows := []models.MovieRatingAverage{}
	if len(movieIDs) == 0 {
		return rows, nil
	}

	err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Select("movie_id, AVG(rating) AS average, COUNT(*) AS count").
		Where("movie_id IN ?", movieIDs).
		Group("movie_id").
		Scan(&rows).Error
	return rows, err
}
