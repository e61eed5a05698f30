package repository

import (
	"context"
	"time"

	"movie-recommendation/internal/database"
	"movie-recommendation/internal/models"

	"gorm.io/gorm"
)

type UserRepository interface {
	// CreateWithProfile stores a user and its empty profile atomically.
	CreateWithProfile(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id uint) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)

	FindProfile(ctx context.Context, userID uint) (*models.UserProfile, error)
	FavoriteGenreIDs(ctx context.Context, userID uint) ([]uint, error)
	ReplaceFavoriteGenres(ctx context.Context, userID uint, genres []models.Genre) (*models.UserProfile, error)
}

type userRepository struct {
	db      *database.Database
	timeout time.Duration
}

func NewUserRepository(db *database.Database) UserRepository {
	return &userRepository{
		db:      db,
		timeout: db.GetQueryTimeout(),
	}
}

func (r *userRepository) CreateWithProfile(ctx context.Context, user *models.User) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		return tx.Create(&models.UserProfile{UserID: user.ID}).Error
	})
	return translateError(err)
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

// FindProfile loads the user's profile, creating an empty one for users that
// predate profiles.
func (r *userRepository) FindProfile(ctx context.Context, userID uint) (*models.UserProfile, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var profile models.UserProfile
	err := r.db.WithContext(ctx).
		Preload("FavoriteGenres", func(db *gorm.DB) *gorm.DB { return db.Order("genres.id ASC") }).
		Where(models.UserProfile{UserID: userID}).
		FirstOrCreate(&profile).Error
	if err != nil {
		return nil, translateError(err)
	}
	if profile.FavoriteGenres == nil {
		profile.FavoriteGenres = []models.Genre{}
	}
	return &profile, nil
}

func (r *userRepository) FavoriteGenreIDs(ctx context.Context, userID uint) ([]uint, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var ids []uint
	err := r.db.WithContext(ctx).
		Table(models.FavoriteGenresTable+" AS fav").
		Joins("JOIN user_profiles ON user_profiles.id = fav.user_profile_id").
		Where("user_profiles.user_id = ?", userID).
		Order("fav.genre_id ASC").
		Pluck("fav.genre_id", &ids).Error
	return ids, err
}

func (r *userRepository) ReplaceFavoriteGenres(ctx context.Context, userID uint, genres []models.Genre) (*models.UserProfile, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var profile models.UserProfile
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where(models.UserProfile{UserID: userID}).FirstOrCreate(&profile).Error; err != nil {
			return err
		}
		association := tx.Model(&profile).Association("FavoriteGenres")
		if len(genres) == 0 {
			if err := association.Clear(); err != nil {
				return err
			}
		} else if err := association.Replace(genres); err != nil {
			return err
		}
		return tx.Preload("FavoriteGenres", func(db *gorm.DB) *gorm.DB { return db.Order("genres.id ASC") }).
			First(&profile, profile.ID).Error
	})
	if err != nil {
		return nil, translateError(err)
	}
	if profile.FavoriteGenres == nil {
		profile.FavoriteGenres = []models.Genre{}
	}
	return &profile, nil
}
