package models

import "time"

type Watchlist struct {
	ID        uint      `gorm:"primaryKey" json:"id" example:"1"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_watchlist_user_movie" json:"-"`
	User      *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	MovieID   uint      `gorm:"not null;uniqueIndex:idx_watchlist_user_movie;index" json:"-"`
	Movie     *Movie    `gorm:"foreignKey:MovieID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

func (Watchlist) TableName() string {
	return "watchlists"
}

// WatchlistResponse embeds the full movie representation of an entry.
type WatchlistResponse struct {
	ID        uint          `json:"id"`
	Movie     MovieResponse `json:"movie"`
	CreatedAt time.Time     `json:"created_at"`
}
