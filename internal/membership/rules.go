package membership

import "uniarena/backend/internal/models"

// LobbyView is a materialized read of a lobby: the row itself plus its
// participant list and join-request list. List endpoints that only need a
// seat count may skip loading participants and provide ParticipantCount
// instead.
type LobbyView struct {
	Lobby            models.Lobby
	Participants     []models.LobbyParticipant
	Requests         []models.JoinRequest
	ParticipantCount int
}

// Count returns the number of seated participants, preferring the loaded
// list over the count projection.
func (v LobbyView) Count() int {
	if v.Participants != nil {
		return len(v.Participants)
	}
	return v.ParticipantCount
}

// IsParticipant reports whether the user is seated in the lobby.
func IsParticipant(v LobbyView, userID uint) bool {
	for _, p := range v.Participants {
		if p.UserID == userID {
			return true
		}
	}
	return false
}

// HasPendingRequest reports whether the user has an unanswered join request
// for the lobby.
func HasPendingRequest(v LobbyView, userID uint) bool {
	for _, r := range v.Requests {
		if r.UserID == userID && r.Status == models.JoinRequestPending {
			return true
		}
	}
	return false
}

// CanRequestJoin reports whether the user may submit a join request: not the
// owner, not already seated, no pending request, and a seat still open. This
// is advisory; concurrent writers can still race between read and write, and
// the store is the actual arbiter.
func CanRequestJoin(v LobbyView, userID uint) bool {
	if v.Lobby.CreatorID == userID {
		return false
	}
	if IsParticipant(v, userID) {
		return false
	}
	if HasPendingRequest(v, userID) {
		return false
	}
	return v.Count() < v.Lobby.MaxParticipants
}

// CanRespond reports whether the user may answer the lobby's join requests.
// Only the owner may.
func CanRespond(v LobbyView, userID uint) bool {
	return v.Lobby.CreatorID == userID
}
