package membership

import (
	"uniarena/backend/internal/models"

	"gorm.io/gorm"
)

// GormStore implements Store against the application database.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a Store backed by the given gorm handle.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) GetLobby(lobbyID uint) (models.Lobby, error) {
	var lobby models.Lobby
	err := s.db.First(&lobby, lobbyID).Error
	return lobby, err
}

func (s *GormStore) GetLobbyView(lobbyID uint) (LobbyView, error) {
	var lobby models.Lobby
	err := s.db.
		Preload("Creator").
		Preload("Game").
		Preload("Participants.User").
		Preload("JoinRequests").
		First(&lobby, lobbyID).Error
	if err != nil {
		return LobbyView{}, err
	}

	view := LobbyView{
		Lobby:        lobby,
		Participants: lobby.Participants,
		Requests:     lobby.JoinRequests,
	}
	if view.Participants == nil {
		view.Participants = []models.LobbyParticipant{}
	}
	return view, nil
}

func (s *GormStore) CreateLobby(lobby *models.Lobby) error {
	return s.db.Create(lobby).Error
}

func (s *GormStore) DeleteLobbyRow(lobbyID uint) error {
	return s.db.Unscoped().Delete(&models.Lobby{}, lobbyID).Error
}

func (s *GormStore) ListOpenLobbies(gameID *uint) ([]models.Lobby, error) {
	var lobbies []models.Lobby
	query := s.db.
		Preload("Creator").
		Preload("Game").
		Preload("Participants").
		Where("status = ?", models.LobbyStatusOpen).
		Order("created_at DESC")

	if gameID != nil {
		query = query.Where("game_id = ?", *gameID)
	}

	err := query.Find(&lobbies).Error
	return lobbies, err
}

func (s *GormStore) ListLobbiesByTournament(tournamentID uint) ([]models.Lobby, error) {
	var lobbies []models.Lobby
	err := s.db.
		Preload("Creator").
		Preload("Game").
		Preload("Participants.User").
		Preload("JoinRequests").
		Where("status = ? AND tournament_id = ?", models.LobbyStatusOpen, tournamentID).
		Order("created_at DESC").
		Find(&lobbies).Error
	return lobbies, err
}

func (s *GormStore) CreateParticipant(p *models.LobbyParticipant) error {
	return s.db.Create(p).Error
}

func (s *GormStore) ParticipantExists(lobbyID, userID uint) (bool, error) {
	var count int64
	err := s.db.Model(&models.LobbyParticipant{}).
		Where("lobby_id = ? AND user_id = ?", lobbyID, userID).
		Count(&count).Error
	return count > 0, err
}

func (s *GormStore) CountParticipants(lobbyID uint) (int, error) {
	var count int64
	err := s.db.Model(&models.LobbyParticipant{}).
		Where("lobby_id = ?", lobbyID).
		Count(&count).Error
	return int(count), err
}

func (s *GormStore) DeleteParticipants(lobbyID uint) error {
	return s.db.Where("lobby_id = ?", lobbyID).Delete(&models.LobbyParticipant{}).Error
}

func (s *GormStore) DeleteParticipant(lobbyID, userID uint) error {
	return s.db.Where("lobby_id = ? AND user_id = ?", lobbyID, userID).
		Delete(&models.LobbyParticipant{}).Error
}

func (s *GormStore) CreateJoinRequest(r *models.JoinRequest) error {
	return s.db.Create(r).Error
}

func (s *GormStore) GetJoinRequest(requestID uint) (models.JoinRequest, error) {
	var request models.JoinRequest
	err := s.db.First(&request, requestID).Error
	return request, err
}

func (s *GormStore) ListJoinRequests(lobbyID uint) ([]models.JoinRequest, error) {
	var requests []models.JoinRequest
	err := s.db.
		Preload("Requester").
		Where("lobby_id = ?", lobbyID).
		Order("requested_at ASC").
		Find(&requests).Error
	return requests, err
}

func (s *GormStore) PendingRequestExists(lobbyID, userID uint) (bool, error) {
	var count int64
	err := s.db.Model(&models.JoinRequest{}).
		Where("lobby_id = ? AND user_id = ? AND status = ?", lobbyID, userID, models.JoinRequestPending).
		Count(&count).Error
	return count > 0, err
}

func (s *GormStore) UpdateJoinRequest(r *models.JoinRequest) error {
	return s.db.Save(r).Error
}

// DeleteJoinRequestsByPair removes every request for the pair, whatever its
// status. Cancelling after approval therefore orphans the participant row;
// see the regression test pinning that behavior.
func (s *GormStore) DeleteJoinRequestsByPair(lobbyID, userID uint) error {
	return s.db.Where("lobby_id = ? AND user_id = ?", lobbyID, userID).
		Delete(&models.JoinRequest{}).Error
}

func (s *GormStore) CreateNotification(n *models.Notification) error {
	return s.db.Create(n).Error
}

func (s *GormStore) GetTournament(tournamentID uint) (models.Tournament, error) {
	var tournament models.Tournament
	err := s.db.First(&tournament, tournamentID).Error
	return tournament, err
}

func (s *GormStore) GameProfileExists(userID, gameID uint) (bool, error) {
	var count int64
	err := s.db.Model(&models.GameProfile{}).
		Where("user_id = ? AND game_id = ?", userID, gameID).
		Count(&count).Error
	return count > 0, err
}
