package models

import "gorm.io/gorm"

// GameProfile is a user's in-game identity (nickname, optional rank) for a
// single game. Tournaments require one for their game before a user may join
// a tournament lobby.
type GameProfile struct {
	gorm.Model
	UserID   uint   `gorm:"not null;uniqueIndex:idx_user_game"`
	GameID   uint   `gorm:"not null;uniqueIndex:idx_user_game"`
	Nickname string `gorm:"size:255;not null"`
	Rank     string `gorm:"size:100"`

	Game Game `gorm:"foreignKey:GameID"`
}
