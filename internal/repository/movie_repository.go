package repository

import (
	"context"
	"strings"
	"time"

	"movie-recommendation/internal/database"
	"movie-recommendation/internal/models"

	"gorm.io/gorm"
)

const (
	DefaultMovieLimit = 10
	MaxMovieLimit     = 100
)

// sortableMovieColumns lists the fields a movie list may be ordered by.
var sortableMovieColumns = map[string]string{
	"title":        "title",
	"release_date": "release_date",
	"rating":       "rating",
}

type MovieRepository interface {
	Create(ctx context.Context, movie *models.Movie) error
	Update(ctx context.Context, id uint, update models.MovieUpdate) (*models.Movie, error)
	Delete(ctx context.Context, id uint) (*models.Movie, error)
	FindByID(ctx context.Context, id uint) (*models.Movie, error)
	FindAll(ctx context.Context, filter models.MovieFilter) ([]models.Movie, int64, error)
	FindRecommended(ctx context.Context, userID uint, limit int) ([]models.Movie, error)
}

type movieRepository struct {
	db      *database.Database
	timeout time.Duration
}

func NewMovieRepository(db *database.Database) MovieRepository {
	return &movieRepository{
		db:      db,
		timeout: db.GetQueryTimeout(),
	}
}

func (r *movieRepository) Create(ctx context.Context, movie *models.Movie) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	db := r.db.WithContext(ctx)
	if err := db.Omit("Genre").Create(movie).Error; err != nil {
		return translateError(err)
	}
	return translateError(db.Preload("Genre").First(movie, movie.ID).Error)
}

// Update writes only the columns present in update and returns the stored movie.
func (r *movieRepository) Update(ctx context.Context, id uint, update models.MovieUpdate) (*models.Movie, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var movie models.Movie
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&movie, id).Error; err != nil {
			return err
		}
		if cols := update.Columns(); len(cols) > 0 {
			if err := tx.Model(&movie).Updates(cols).Error; err != nil {
				return err
			}
		}
		return tx.Preload("Genre").First(&movie, id).Error
	})
	if err != nil {
		return nil, translateError(err)
	}
	return &movie, nil
}

// Delete removes a movie with its watchlist entries and reviews and returns
// the removed row.
func (r *movieRepository) Delete(ctx context.Context, id uint) (*models.Movie, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var movie models.Movie
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&movie, id).Error; err != nil {
			return err
		}
		if err := tx.Where("movie_id = ?", id).Delete(&models.Review{}).Error; err != nil {
			return err
		}
		if err := tx.Where("movie_id = ?", id).Delete(&models.Watchlist{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Movie{}, id).Error
	})
	if err != nil {
		return nil, translateError(err)
	}
	return &movie, nil
}

func (r *movieRepository) FindByID(ctx context.Context, id uint) (*models.Movie, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var movie models.Movie
	if err := r.db.WithContext(ctx).Preload("Genre").First(&movie, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &movie, nil
}

// FindAll filters, sorts and pages the catalog. The returned total counts
// every movie matching the filter, before pagination.
func (r *movieRepository) FindAll(ctx context.Context, filter models.MovieFilter) ([]models.Movie, int64, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	movies := []models.Movie{}
	var total int64

	query := applyMovieFilter(r.db.WithContext(ctx).Model(&models.Movie{}), filter)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit, offset := NormalizePage(filter.Limit, filter.Offset)
	err := applyMovieOrder(query, filter).
		Preload("Genre").
		Offset(offset).
		Limit(limit).
		Find(&movies).Error
	if err != nil {
		return nil, 0, err
	}

	return movies, total, nil
}

// FindRecommended returns movies in the user's favorite genres that are not
// on the user's watchlist, in primary-key order.
func (r *movieRepository) FindRecommended(ctx context.Context, userID uint, limit int) ([]models.Movie, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	db := r.db.WithContext(ctx)

	favorites := db.Table(models.FavoriteGenresTable+" AS fav").
		Select("fav.genre_id").
		Joins("JOIN user_profiles ON user_profiles.id = fav.user_profile_id").
		Where("user_profiles.user_id = ?", userID)

	watched := db.Model(&models.Watchlist{}).
		Select("movie_id").
		Where("user_id = ?", userID)

	movies := []models.Movie{}
	err := db.Model(&models.Movie{}).
		Where("genre_id IN (?)", favorites).
		Where("id NOT IN (?)", watched).
		Order("id ASC").
		Limit(limit).
		Preload("Genre").
		Find(&movies).Error
	if err != nil {
		return nil, err
	}
	return movies, nil
}

func applyMovieFilter(query *gorm.DB, filter models.MovieFilter) *gorm.DB {
	if filter.Title != "" {
		query = query.Where(`LOWER(title) LIKE ? ESCAPE '\'`, "%"+escapeLike(strings.ToLower(filter.Title))+"%")
	}
	if filter.GenreID != nil {
		query = query.Where("genre_id = ?", *filter.GenreID)
	}
	if filter.MinRating != nil {
		query = query.Where("rating >= ?", *filter.MinRating)
	}
	if filter.MaxRating != nil {
		query = query.Where("rating <= ?", *filter.MaxRating)
	}
	if filter.StartDate != "" {
		query = query.Where("release_date >= ?", filter.StartDate)
	}
	if filter.EndDate != "" {
		query = query.Where("release_date <= ?", filter.EndDate)
	}
	return query
}

// applyMovieOrder sorts by a recognized column and always breaks ties by id,
// which is also the order used when the sort field is not recognized.
func applyMovieOrder(query *gorm.DB, filter models.MovieFilter) *gorm.DB {
	if column, ok := sortableMovieColumns[filter.SortBy]; ok {
		direction := "ASC"
		if strings.EqualFold(string(filter.Order), string(models.SortDesc)) {
			direction = "DESC"
		}
		query = query.Order(column + " " + direction)
	}
	return query.Order("id ASC")
}

// likeEscaper makes LIKE wildcards in user input match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// NormalizePage applies the default limit, caps it at MaxMovieLimit and
// clamps a negative offset to zero.
func NormalizePage(limit, offset int) (int, int) {
	if limit < 1 {
		limit = DefaultMovieLimit
	}
	if limit > MaxMovieLimit {
		limit = MaxMovieLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
