package models

import (
	"time"

	"gorm.io/gorm"
)

// Team is a named squad users can belong to.
type Team struct {
	gorm.Model
	Name    string `gorm:"size:255;unique;not null"`
	Tag     string `gorm:"size:10"`
	LogoURL string `gorm:"size:512"`

	Members []TeamMember `gorm:"foreignKey:TeamID"`
}

// TeamMember links a user to a team. A user belongs to at most one team.
type TeamMember struct {
	TeamID   uint      `gorm:"primaryKey"`
	UserID   uint      `gorm:"primaryKey;uniqueIndex"`
	Role     string    `gorm:"size:50;not null;default:'member'"`
	JoinedAt time.Time `gorm:"not null"`

	User User `gorm:"foreignKey:UserID"`
}
