package models

import (
	"time"
)

type Movie struct {
	ID          uint      `gorm:"primaryKey" json:"id" example:"1"`
	Title       string    `gorm:"size:100;not null;index" json:"title" example:"Fight Club"`
	Description string    `gorm:"type:text;not null" json:"description" example:"An insomniac office worker..."`
	GenreID     uint      `gorm:"not null;index" json:"genre_id" example:"3"`
	Genre       *Genre    `gorm:"foreignKey:GenreID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"genre,omitempty"`
	ReleaseDate string    `gorm:"size:10;not null;index" json:"release_date" example:"1999-10-15"`
	Rating      float64   `gorm:"type:numeric(3,1);not null;index" json:"rating" example:"8.4"`
	PosterURL   string    `json:"poster_url,omitempty" example:"https://storage.example.com/posters/fight_club_1a2b3c4d.jpg"`
	CreatedAt   time.Time `gorm:"index;<-:create" json:"created_at"`
	UpdatedAt   time.Time `json:"-"`
}

func (Movie) TableName() string {
	return "movies"
}

// MovieResponse is a movie as returned to clients, with the review average
// computed at read time.
type MovieResponse struct {
	Movie
	AverageRating *float64 `json:"average_rating" example:"7.9"`
}

// MovieUpdate is a sparse update: nil fields keep their stored value.
type MovieUpdate struct {
	Title       *string
	Description *string
	GenreID     *uint
	ReleaseDate *string
	Rating      *float64
	PosterURL   *string
}

// Columns returns the column/value pairs of the fields present in the update.
func (u MovieUpdate) Columns() map[string]interface{} {
	cols := make(map[string]interface{})
	if u.Title != nil {
		cols["title"] = *u.Title
	}
	if u.Description != nil {
		cols["description"] = *u.Description
	}
	if u.GenreID != nil {
		cols["genre_id"] = *u.GenreID
	}
	if u.ReleaseDate != nil {
		cols["release_date"] = *u.ReleaseDate
	}
	if u.Rating != nil {
		cols["rating"] = *u.Rating
	}
	if u.PosterURL != nil {
		cols["poster_url"] = *u.PosterURL
	}
	return cols
}

// IsEmpty reports whether the update carries no fields.
func (u MovieUpdate) IsEmpty() bool {
	return len(u.Columns()) == 0
}

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// MovieFilter holds the optional list parameters. Nil or empty fields impose
// no constraint.
type MovieFilter struct {
	Title     string
	GenreID   *uint
	MinRating *float64
	MaxRating *float64
	StartDate string
	EndDate   string
	SortBy    string
	Order     SortOrder
	Limit     int
	Offset    int
}
