package models

import "gorm.io/gorm"

// CartItem is unique per (cart, product). Repositories delete rows with
// Unscoped so the unique index stays usable after removal.
type CartItem struct {
	gorm.Model
	CartID    uint `gorm:"uniqueIndex:idx_cart_product;not null"`
	Cart      Cart
	ProductID uint `gorm:"uniqueIndex:idx_cart_product;not null"`
	Product   Product
	Quantity  uint `gorm:"not null"`
}
