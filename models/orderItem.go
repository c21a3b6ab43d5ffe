package models

import "gorm.io/gorm"

// OrderItem copies the product's price at checkout time, decoupling the
// order from later catalog price changes.
type OrderItem struct {
	gorm.Model
	OrderID   uint `gorm:"index;not null"`
	ProductID uint `gorm:"not null"`
	Product   Product
	Quantity  uint  `gorm:"not null"`
	Price     int64 `gorm:"not null"`
}
