package models

import (
	"time"

	"gorm.io/gorm"
)

// InvitationStatus is the state of a lobby invitation.
type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "pending"
	InvitationAccepted InvitationStatus = "accepted"
	InvitationDeclined InvitationStatus = "declined"
)

// LobbyInvitation is the inverse of a join request: the inviter asks another
// user into a lobby, and the invited user answers.
type LobbyInvitation struct {
	gorm.Model
	LobbyID       uint             `gorm:"not null;index"`
	InvitedUserID uint             `gorm:"not null;index"`
	InviterUserID uint             `gorm:"not null"`
	Status        InvitationStatus `gorm:"size:20;not null;default:'pending';index"`
	InvitedAt     time.Time        `gorm:"not null"`
	RespondedAt   *time.Time

	Lobby   Lobby `gorm:"foreignKey:LobbyID"`
	Inviter User  `gorm:"foreignKey:InviterUserID"`
}
