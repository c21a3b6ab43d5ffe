package models

import "gorm.io/gorm"

// Product prices are stored as integer cents to keep arithmetic exact.
type Product struct {
	gorm.Model
	Name          string `gorm:"size:100;not null"`
	Slug          string `gorm:"uniqueIndex;size:120;not null"`
	Description   string
	Price         int64 `gorm:"not null"`
	ImageURL      string
	Featured      bool `gorm:"default:true"`
	CategoryID    *uint
	Category      *Category
	AverageRating float64
	TotalReviews  uint
	Reviews       []Review
}
