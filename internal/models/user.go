package models

import "gorm.io/gorm"

// User represents a member of the community.
type User struct {
	gorm.Model
	Username          string `gorm:"size:255;unique;not null"`
	FullName          string `gorm:"size:255"`
	Email             string `gorm:"size:255;unique;not null"`
	PasswordHash      string `gorm:"size:255;not null"`
	Role              string `gorm:"size:50;not null;default:'user';index"`
	ProfilePictureURL string `gorm:"size:512"`

	GameProfiles []GameProfile `gorm:"foreignKey:UserID"`
}
