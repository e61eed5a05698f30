package models

import "time"

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id" example:"1"`
	Username     string    `gorm:"size:150;not null;uniqueIndex" json:"username" example:"moviebuff"`
	Email        string    `gorm:"size:254" json:"email,omitempty" example:"moviebuff@example.com"`
	PasswordHash string    `gorm:"not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"-"`
}

func (User) TableName() string {
	return "users"
}

type UserProfile struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	UserID         uint      `gorm:"not null;uniqueIndex" json:"user_id"`
	User           *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	FavoriteGenres []Genre   `gorm:"many2many:user_profile_favorite_genres;constraint:OnDelete:CASCADE" json:"favorite_genres"`
	CreatedAt      time.Time `json:"-"`
	UpdatedAt      time.Time `json:"-"`
}

func (UserProfile) TableName() string {
	return "user_profiles"
}

// FavoriteGenresTable is the join table behind UserProfile.FavoriteGenres.
const FavoriteGenresTable = "user_profile_favorite_genres"

// TokenPair mirrors the login response of the JWT issuer.
type TokenPair struct {
	Refresh string `json:"refresh"`
	Access  string `json:"access"`
}
