package handlers

import "movie-recommendation/internal/models"

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=1,max=150"`
	Password string `json:"password" validate:"required,min=1,max=128"`
	Email    string `json:"email" validate:"omitempty,email,max=254"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	Refresh string `json:"refresh" validate:"required"`
}

type RefreshResponse struct {
	Access string `json:"access"`
}

type GenreRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100" example:"Drama"`
}

type MovieCreateRequest struct {
	Title       string   `json:"title" validate:"required,min=1,max=100" example:"Fight Club"`
	Description string   `json:"description" validate:"required" example:"An insomniac office worker..."`
	GenreID     uint     `json:"genre_id" validate:"required" example:"3"`
	ReleaseDate string   `json:"release_date" validate:"required,datetime=2006-01-02" example:"1999-10-15"`
	Rating      *float64 `json:"rating" validate:"required,gte=0,lte=10" example:"8.4"`
	PosterURL   string   `json:"poster_url" validate:"omitempty,url"`
}

func (r MovieCreateRequest) toMovie() *models.Movie {
	return &models.Movie{
		Title:       r.Title,
		Description: r.Description,
		GenreID:     r.GenreID,
		ReleaseDate: r.ReleaseDate,
		Rating:      *r.Rating,
		PosterURL:   r.PosterURL,
	}
}

// MovieUpdateRequest is sparse: omitted fields keep their stored value.
type MovieUpdateRequest struct {
	Title       *string  `json:"title" validate:"omitempty,min=1,max=100"`
	Description *string  `json:"description" validate:"omitempty"`
	GenreID     *uint    `json:"genre_id" validate:"omitempty,min=1"`
	ReleaseDate *string  `json:"release_date" validate:"omitempty,datetime=2006-01-02"`
	Rating      *float64 `json:"rating" validate:"omitempty,gte=0,lte=10"`
	PosterURL   *string  `json:"poster_url" validate:"omitempty,url"`
}

func (r MovieUpdateRequest) toUpdate() models.MovieUpdate {
	return models.MovieUpdate{
		Title:       r.Title,
		Description: r.Description,
		GenreID:     r.GenreID,
		ReleaseDate: r.ReleaseDate,
		Rating:      r.Rating,
		PosterURL:   r.PosterURL,
	}
}

type MovieListQuery struct {
	Title     string   `json:"title"`
	GenreID   *uint    `json:"genre_id"`
	MinRating *float64 `json:"min_rating"`
	MaxRating *float64 `json:"max_rating"`
	StartDate string   `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string   `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	SortBy    string   `json:"sort_by"`
	Order     string   `json:"order"`
	Limit     int      `json:"limit"`
	Offset    int      `json:"offset"`
}

func (q MovieListQuery) toFilter() models.MovieFilter {
	return models.MovieFilter{
		Title:     q.Title,
		GenreID:   q.GenreID,
		MinRating: q.MinRating,
		MaxRating: q.MaxRating,
		StartDate: q.StartDate,
		EndDate:   q.EndDate,
		SortBy:    q.SortBy,
		Order:     models.SortOrder(q.Order),
		Limit:     q.Limit,
		Offset:    q.Offset,
	}
}

type WatchlistAddRequest struct {
	MovieID uint `json:"movie_id" validate:"required" example:"1"`
}

type ReviewRequest struct {
	Rating  *float64 `json:"rating" validate:"required,gte=0,lte=10" example:"8.5"`
	Comment *string  `json:"comment" validate:"omitempty,max=5000" example:"Loved the ending."`
}

type FavoriteGenresRequest struct {
	GenreIDs []uint `json:"genre_ids" validate:"max=100,dive,min=1"`
}
