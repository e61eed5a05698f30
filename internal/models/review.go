package models

import "time"

type Review struct {
	ID        uint      `gorm:"primaryKey" json:"id" example:"1"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_review_user_movie" json:"user_id" example:"1"`
	User      *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	MovieID   uint      `gorm:"not null;uniqueIndex:idx_review_user_movie;index" json:"movie_id" example:"1"`
	Movie     *Movie    `gorm:"foreignKey:MovieID;constraint:OnDelete:CASCADE" json:"-"`
	Rating    float64   `gorm:"type:numeric(3,1);not null" json:"rating" example:"8.5"`
	Comment   *string   `gorm:"type:text" json:"comment" example:"Loved the ending."`
	CreatedAt time.Time `gorm:"<-:create" json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}

func (Review) TableName() string {
	return "reviews"
}

// MovieRatingAverage is one row of the per-movie review aggregate.
type MovieRatingAverage struct {
	MovieID uint
	Average float64
	Count   int64
}
