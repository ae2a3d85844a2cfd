package models

import "gorm.io/gorm"

// Notification is a message shown to a single user, created as a side effect
// of lobby and invitation activity. Reads filter on IsRead; there is no
// richer read/unread lifecycle.
type Notification struct {
	gorm.Model
	UserID  uint    `gorm:"not null;index"`
	Content string  `gorm:"not null"`
	Link    *string `gorm:"size:512"`
	IsRead  bool    `gorm:"not null;default:false;index"`
}
