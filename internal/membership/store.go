package membership

import "uniarena/backend/internal/models"

// Store is the persistence boundary of the membership workflow. Every call
// is a single remote operation; there are no transactions spanning calls,
// which is why multi-step mutations in the service can half-fail.
type Store interface {
	GetLobby(lobbyID uint) (models.Lobby, error)
	GetLobbyView(lobbyID uint) (LobbyView, error)
	CreateLobby(lobby *models.Lobby) error
	DeleteLobbyRow(lobbyID uint) error
	ListOpenLobbies(gameID *uint) ([]models.Lobby, error)
	ListLobbiesByTournament(tournamentID uint) ([]models.Lobby, error)

	CreateParticipant(p *models.LobbyParticipant) error
	ParticipantExists(lobbyID, userID uint) (bool, error)
	CountParticipants(lobbyID uint) (int, error)
	DeleteParticipants(lobbyID uint) error
	DeleteParticipant(lobbyID, userID uint) error

	CreateJoinRequest(r *models.JoinRequest) error
	GetJoinRequest(requestID uint) (models.JoinRequest, error)
	ListJoinRequests(lobbyID uint) ([]models.JoinRequest, error)
	PendingRequestExists(lobbyID, userID uint) (bool, error)
	UpdateJoinRequest(r *models.JoinRequest) error
	DeleteJoinRequestsByPair(lobbyID, userID uint) error

	CreateNotification(n *models.Notification) error

	GetTournament(tournamentID uint) (models.Tournament, error)
	GameProfileExists(userID, gameID uint) (bool, error)
}
