package models

import (
	"time"

	"gorm.io/gorm"
)

// JoinRequestStatus is the state of a lobby join request.
type JoinRequestStatus string

const (
	JoinRequestPending  JoinRequestStatus = "pending"
	JoinRequestApproved JoinRequestStatus = "approved"
	JoinRequestRejected JoinRequestStatus = "rejected"
)

// JoinRequest is a user's pending ask to become a lobby participant,
// answered by the lobby owner. At most one pending row should exist per
// (lobby, user) pair; the workflow pre-checks this before inserting, the
// schema does not enforce it.
type JoinRequest struct {
	gorm.Model
	LobbyID     uint              `gorm:"not null;index"`
	UserID      uint              `gorm:"not null;index"`
	Status      JoinRequestStatus `gorm:"size:20;not null;default:'pending';index"`
	RequestedAt time.Time         `gorm:"not null"`
	RespondedAt *time.Time

	Requester User `gorm:"foreignKey:UserID"`
}
