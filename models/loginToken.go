package models

import (
	"gorm.io/gorm"
	"time"
)

// LoginToken is the server-side allowlist entry for an issued access token.
// Logout deletes the row, which revokes the token before its expiry.
type LoginToken struct {
	gorm.Model
	TokenID        string `gorm:"uniqueIndex;size:36;not null"`
	ExpirationTime time.Time
	UserID         uint
}
