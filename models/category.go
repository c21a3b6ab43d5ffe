package models

import "gorm.io/gorm"

type Category struct {
	gorm.Model
	Name     string `gorm:"size:100;not null"`
	Slug     string `gorm:"uniqueIndex;size:120;not null"`
	ImageURL string
	Products []Product
}
