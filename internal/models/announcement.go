package models

import "gorm.io/gorm"

// Announcement is a community-wide post written by an admin.
type Announcement struct {
	gorm.Model
	UserID  uint   `gorm:"not null;index"`
	Title   string `gorm:"size:255;not null"`
	Content string `gorm:"not null"`

	Author User `gorm:"foreignKey:UserID"`
}
