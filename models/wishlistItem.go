package models

import "gorm.io/gorm"

type WishlistItem struct {
	gorm.Model
	UserID    uint `gorm:"uniqueIndex:idx_user_product;not null"`
	User      User
	ProductID uint `gorm:"uniqueIndex:idx_user_product;not null"`
	Product   Product
}
