package models

import "time"

type Genre struct {
	ID        uint      `gorm:"primaryKey" json:"id" example:"1"`
	Name      string    `gorm:"size:100;not null;index" json:"name" example:"Drama"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (Genre) TableName() string {
	return "genres"
}
