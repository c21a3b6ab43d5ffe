package models

import "gorm.io/gorm"

// Review is unique per (product, user): one review per customer per product.
type Review struct {
	gorm.Model
	ProductID uint `gorm:"uniqueIndex:idx_product_user;not null"`
	Product   Product
	UserID    uint `gorm:"uniqueIndex:idx_product_user;not null"`
	User      User
	Rating    uint `gorm:"not null"`
	Comment   string
}
