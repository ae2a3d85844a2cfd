package membership

import (
	"github.com/stretchr/testify/mock"

	"uniarena/backend/internal/models"
)

// MockStore is a testify mock of Store for tests that need to script
// individual store calls (for example, injected failures).
type MockStore struct {
	mock.Mock
}

func (m *MockStore) GetLobby(lobbyID uint) (models.Lobby, error) {
	args := m.Called(lobbyID)
	return args.Get(0).(models.Lobby), args.Error(1)
}

func (m *MockStore) GetLobbyView(lobbyID uint) (LobbyView, error) {
	args := m.Called(lobbyID)
	return args.Get(0).(LobbyView), args.Error(1)
}

func (m *MockStore) CreateLobby(lobby *models.Lobby) error {
	args := m.Called(lobby)
	return args.Error(0)
}

func (m *MockStore) DeleteLobbyRow(lobbyID uint) error {
	args := m.Called(lobbyID)
	return args.Error(0)
}

func (m *MockStore) ListOpenLobbies(gameID *uint) ([]models.Lobby, error) {
	args := m.Called(gameID)
	return args.Get(0).([]models.Lobby), args.Error(1)
}

func (m *MockStore) ListLobbiesByTournament(tournamentID uint) ([]models.Lobby, error) {
	args := m.Called(tournamentID)
	return args.Get(0).([]models.Lobby), args.Error(1)
}

func (m *MockStore) CreateParticipant(p *models.LobbyParticipant) error {
	args := m.Called(p)
	return args.Error(0)
}

func (m *MockStore) ParticipantExists(lobbyID, userID uint) (bool, error) {
	args := m.Called(lobbyID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockStore) CountParticipants(lobbyID uint) (int, error) {
	args := m.Called(lobbyID)
	return args.Int(0), args.Error(1)
}

func (m *MockStore) DeleteParticipants(lobbyID uint) error {
	args := m.Called(lobbyID)
	return args.Error(0)
}

func (m *MockStore) DeleteParticipant(lobbyID, userID uint) error {
	args := m.Called(lobbyID, userID)
	return args.Error(0)
}

func (m *MockStore) CreateJoinRequest(r *models.JoinRequest) error {
	args := m.Called(r)
	return args.Error(0)
}

func (m *MockStore) GetJoinRequest(requestID uint) (models.JoinRequest, error) {
	args := m.Called(requestID)
	return args.Get(0).(models.JoinRequest), args.Error(1)
}

func (m *MockStore) ListJoinRequests(lobbyID uint) ([]models.JoinRequest, error) {
	args := m.Called(lobbyID)
	return args.Get(0).([]models.JoinRequest), args.Error(1)
}

func (m *MockStore) PendingRequestExists(lobbyID, userID uint) (bool, error) {
	args := m.Called(lobbyID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockStore) UpdateJoinRequest(r *models.JoinRequest) error {
	args := m.Called(r)
	return args.Error(0)
}

func (m *MockStore) DeleteJoinRequestsByPair(lobbyID, userID uint) error {
	args := m.Called(lobbyID, userID)
	return args.Error(0)
}

func (m *MockStore) CreateNotification(n *models.Notification) error {
	args := m.Called(n)
	return args.Error(0)
}

func (m *MockStore) GetTournament(tournamentID uint) (models.Tournament, error) {
	args := m.Called(tournamentID)
	return args.Get(0).(models.Tournament), args.Error(1)
}

func (m *MockStore) GameProfileExists(userID, gameID uint) (bool, error) {
	args := m.Called(userID, gameID)
	return args.Bool(0), args.Error(1)
}
