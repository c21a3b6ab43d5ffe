package models

import "gorm.io/gorm"

const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

type User struct {
	gorm.Model
	Username    string `gorm:"uniqueIndex;size:150;not null"`
	Email       string `gorm:"uniqueIndex;size:254;not null"`
	Password    string `gorm:"not null"`
	FirstName   string
	LastName    string
	Phone       string
	Address     string
	City        string
	Country     string
	Role        string `gorm:"size:20;not null;default:customer"`
	Cart        *Cart
	Orders      []Order
	LoginTokens []LoginToken
}
