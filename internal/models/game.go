package models

import "gorm.io/gorm"

// Game represents a game in the system.
type Game struct {
	gorm.Model
	Name        string `gorm:"size:255;not null"`
	Description string
	IconURL     string `gorm:"size:512"`
	IsActive    bool   `gorm:"not null;default:true;index"`
}
