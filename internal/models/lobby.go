package models

import (
	"time"

	"gorm.io/gorm"
)

// LobbyStatus is the lifecycle state of a lobby. Only open lobbies are
// listed; anything else is invisible to regular users.
type LobbyStatus string

const (
	LobbyStatusOpen   LobbyStatus = "open"
	LobbyStatusClosed LobbyStatus = "closed"
)

// Lobby is a joinable group scoped to a game and optionally a tournament.
// The creator owns the lobby; ownership never transfers.
type Lobby struct {
	gorm.Model
	CreatorID       uint        `gorm:"not null;index"`
	GameID          uint        `gorm:"not null;index"`
	TournamentID    *uint       `gorm:"index"`
	Name            string      `gorm:"size:255"`
	MaxParticipants int         `gorm:"not null"`
	Status          LobbyStatus `gorm:"size:50;not null;default:'open';index"`

	Creator      User               `gorm:"foreignKey:CreatorID"`
	Game         Game               `gorm:"foreignKey:GameID"`
	Tournament   *Tournament        `gorm:"foreignKey:TournamentID"`
	Participants []LobbyParticipant `gorm:"foreignKey:LobbyID"`
	JoinRequests []JoinRequest      `gorm:"foreignKey:LobbyID"`
}

// LobbyParticipant is a confirmed member of a lobby.
// The composite primary key keeps a (lobby, user) pair unique.
type LobbyParticipant struct {
	LobbyID  uint      `gorm:"primaryKey"`
	UserID   uint      `gorm:"primaryKey"`
	JoinedAt time.Time `gorm:"not null"`

	User User `gorm:"foreignKey:UserID"`
}
