package models

import "gorm.io/gorm"

// Cart is identified by an opaque 11-character code. Anonymous carts have no
// owner; an authenticated user has at most one cart (unique index on UserID,
// NULLs excluded by MySQL).
type Cart struct {
	gorm.Model
	Code      string `gorm:"uniqueIndex;size:11;not null"`
	UserID    *uint  `gorm:"uniqueIndex"`
	User      *User
	CartItems []CartItem `gorm:"constraint:OnDelete:CASCADE"`
}
