package models

import "gorm.io/gorm"

// MatchStatus is the lifecycle state of a bracket match.
type MatchStatus string

const (
	MatchScheduled MatchStatus = "scheduled"
	MatchCompleted MatchStatus = "completed"
)

// TournamentMatch is one slot in a tournament bracket. Either teams or
// individual users fill the two sides, depending on the tournament format.
type TournamentMatch struct {
	gorm.Model
	TournamentID uint  `gorm:"not null;index"`
	Round        int   `gorm:"not null"`
	MatchNumber  int   `gorm:"not null"`
	Team1ID      *uint `gorm:"index"`
	Team2ID      *uint `gorm:"index"`
	User1ID      *uint
	User2ID      *uint
	Score        string      `gorm:"size:50"`
	WinnerTeamID *uint
	Status       MatchStatus `gorm:"size:20;not null;default:'scheduled'"`

	Team1 *Team      `gorm:"foreignKey:Team1ID"`
	Team2 *Team      `gorm:"foreignKey:Team2ID"`
	User1 *User      `gorm:"foreignKey:User1ID"`
	User2 *User      `gorm:"foreignKey:User2ID"`
	Sets  []MatchSet `gorm:"foreignKey:MatchID"`
}

// MatchSet is a single set (map) inside a best-of series.
type MatchSet struct {
	gorm.Model
	MatchID      uint   `gorm:"not null;index"`
	SetNumber    int    `gorm:"not null"`
	Team1Score   int    `gorm:"not null"`
	Team2Score   int    `gorm:"not null"`
	WinnerTeamID *uint
	MapName      string `gorm:"size:255"`
	Duration     int    // seconds
}
