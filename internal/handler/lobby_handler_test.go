package handler

import (
	"testing"

	"uniarena/backend/internal/models"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestLobbySummaryCountsSeatsWithoutUserStubs(t *testing.T) {
	// Shaped like a list read: participant rows present for the seat count,
	// user info not loaded.
	lobby := models.Lobby{
		Model:           gorm.Model{ID: 3},
		CreatorID:       1,
		MaxParticipants: 4,
		Status:          models.LobbyStatusOpen,
		Participants: []models.LobbyParticipant{
			{LobbyID: 3, UserID: 42},
			{LobbyID: 3, UserID: 43},
		},
	}

	response := newLobbySummaryResponse(lobby)

	assert.Equal(t, 2, response.ParticipantCount)
	assert.Empty(t, response.Participants)
}

func TestLobbyDetailIncludesLoadedParticipants(t *testing.T) {
	lobby := models.Lobby{
		Model:           gorm.Model{ID: 3},
		MaxParticipants: 4,
		Participants: []models.LobbyParticipant{
			{LobbyID: 3, UserID: 42, User: models.User{Model: gorm.Model{ID: 42}, Username: "rival"}},
		},
	}

	response := newLobbyResponse(lobby)

	assert.Equal(t, 1, response.ParticipantCount)
	if assert.Len(t, response.Participants, 1) {
		assert.Equal(t, uint(42), response.Participants[0].ID)
		assert.Equal(t, "rival", response.Participants[0].Username)
	}
}
