package models

import (
	"time"

	"gorm.io/gorm"
)

// Tournament is a scheduled competition for a single game.
type Tournament struct {
	gorm.Model
	GameID      uint   `gorm:"not null;index"`
	Name        string `gorm:"size:255;not null"`
	Description string
	StartDate   time.Time `gorm:"not null;index"`
	EndDate     time.Time `gorm:"not null;index"`
	Status      string    `gorm:"size:50;not null;default:'upcoming'"`

	Game Game `gorm:"foreignKey:GameID"`
}

// TournamentParticipant registers a user (individually or via a team) in a
// tournament.
type TournamentParticipant struct {
	TournamentID    uint      `gorm:"primaryKey"`
	UserID          uint      `gorm:"primaryKey"`
	TeamID          *uint     `gorm:"index"`
	ParticipantType string    `gorm:"size:50;not null;default:'individual'"`
	JoinedAt        time.Time `gorm:"not null"`

	User User  `gorm:"foreignKey:UserID"`
	Team *Team `gorm:"foreignKey:TeamID"`
}
