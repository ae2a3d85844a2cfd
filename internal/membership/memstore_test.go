package membership

import (
	"uniarena/backend/internal/models"

	"gorm.io/gorm"
)

// memStore is an in-memory Store for workflow tests that need real state
// evolving across sequential calls. Individual calls can be failed through
// the *Err fields to exercise the partial-failure paths.
type memStore struct {
	nextLobbyID   uint
	nextRequestID uint
	lobbies       map[uint]models.Lobby
	participants  []models.LobbyParticipant
	requests      []*models.JoinRequest
	notifications []models.Notification
	tournaments   map[uint]models.Tournament
	profiles      map[[2]uint]bool // (userID, gameID)

	createParticipantErr error
	deleteLobbyRowErr    error
}

func newMemStore() *memStore {
	return &memStore{
		lobbies:     make(map[uint]models.Lobby),
		tournaments: make(map[uint]models.Tournament),
		profiles:    make(map[[2]uint]bool),
	}
}

func (m *memStore) GetLobby(lobbyID uint) (models.Lobby, error) {
	lobby, ok := m.lobbies[lobbyID]
	if !ok {
		return models.Lobby{}, gorm.ErrRecordNotFound
	}
	return lobby, nil
}

func (m *memStore) GetLobbyView(lobbyID uint) (LobbyView, error) {
	lobby, err := m.GetLobby(lobbyID)
	if err != nil {
		return LobbyView{}, err
	}
	view := LobbyView{Lobby: lobby, Participants: []models.LobbyParticipant{}}
	for _, p := range m.participants {
		if p.LobbyID == lobbyID {
			view.Participants = append(view.Participants, p)
		}
	}
	for _, r := range m.requests {
		if r.LobbyID == lobbyID {
			view.Requests = append(view.Requests, *r)
		}
	}
	return view, nil
}

func (m *memStore) CreateLobby(lobby *models.Lobby) error {
	m.nextLobbyID++
	lobby.ID = m.nextLobbyID
	m.lobbies[lobby.ID] = *lobby
	return nil
}

func (m *memStore) DeleteLobbyRow(lobbyID uint) error {
	if m.deleteLobbyRowErr != nil {
		return m.deleteLobbyRowErr
	}
	delete(m.lobbies, lobbyID)
	return nil
}

func (m *memStore) ListOpenLobbies(gameID *uint) ([]models.Lobby, error) {
	var lobbies []models.Lobby
	for _, lobby := range m.lobbies {
		if lobby.Status != models.LobbyStatusOpen {
			continue
		}
		if gameID != nil && lobby.GameID != *gameID {
			continue
		}
		lobbies = append(lobbies, lobby)
	}
	return lobbies, nil
}

func (m *memStore) ListLobbiesByTournament(tournamentID uint) ([]models.Lobby, error) {
	var lobbies []models.Lobby
	for _, lobby := range m.lobbies {
		if lobby.Status == models.LobbyStatusOpen && lobby.TournamentID != nil && *lobby.TournamentID == tournamentID {
			lobbies = append(lobbies, lobby)
		}
	}
	return lobbies, nil
}

func (m *memStore) CreateParticipant(p *models.LobbyParticipant) error {
	if m.createParticipantErr != nil {
		return m.createParticipantErr
	}
	m.participants = append(m.participants, *p)
	return nil
}

func (m *memStore) ParticipantExists(lobbyID, userID uint) (bool, error) {
	for _, p := range m.participants {
		if p.LobbyID == lobbyID && p.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) CountParticipants(lobbyID uint) (int, error) {
	count := 0
	for _, p := range m.participants {
		if p.LobbyID == lobbyID {
			count++
		}
	}
	return count, nil
}

func (m *memStore) DeleteParticipants(lobbyID uint) error {
	kept := m.participants[:0]
	for _, p := range m.participants {
		if p.LobbyID != lobbyID {
			kept = append(kept, p)
		}
	}
	m.participants = kept
	return nil
}

func (m *memStore) DeleteParticipant(lobbyID, userID uint) error {
	kept := m.participants[:0]
	for _, p := range m.participants {
		if p.LobbyID != lobbyID || p.UserID != userID {
			kept = append(kept, p)
		}
	}
	m.participants = kept
	return nil
}

func (m *memStore) CreateJoinRequest(r *models.JoinRequest) error {
	m.nextRequestID++
	r.ID = m.nextRequestID
	cp := *r
	m.requests = append(m.requests, &cp)
	return nil
}

func (m *memStore) GetJoinRequest(requestID uint) (models.JoinRequest, error) {
	for _, r := range m.requests {
		if r.ID == requestID {
			return *r, nil
		}
	}
	return models.JoinRequest{}, gorm.ErrRecordNotFound
}

func (m *memStore) ListJoinRequests(lobbyID uint) ([]models.JoinRequest, error) {
	// Requests are appended in submission order, which matches the
	// requested_at ascending ordering of the real store.
	var requests []models.JoinRequest
	for _, r := range m.requests {
		if r.LobbyID == lobbyID {
			requests = append(requests, *r)
		}
	}
	return requests, nil
}

func (m *memStore) PendingRequestExists(lobbyID, userID uint) (bool, error) {
	for _, r := range m.requests {
		if r.LobbyID == lobbyID && r.UserID == userID && r.Status == models.JoinRequestPending {
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) UpdateJoinRequest(r *models.JoinRequest) error {
	for i, existing := range m.requests {
		if existing.ID == r.ID {
			cp := *r
			m.requests[i] = &cp
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *memStore) DeleteJoinRequestsByPair(lobbyID, userID uint) error {
	kept := m.requests[:0]
	for _, r := range m.requests {
		if r.LobbyID != lobbyID || r.UserID != userID {
			kept = append(kept, r)
		}
	}
	m.requests = kept
	return nil
}

func (m *memStore) CreateNotification(n *models.Notification) error {
	m.notifications = append(m.notifications, *n)
	return nil
}

func (m *memStore) GetTournament(tournamentID uint) (models.Tournament, error) {
	tournament, ok := m.tournaments[tournamentID]
	if !ok {
		return models.Tournament{}, gorm.ErrRecordNotFound
	}
	return tournament, nil
}

func (m *memStore) GameProfileExists(userID, gameID uint) (bool, error) {
	return m.profiles[[2]uint{userID, gameID}], nil
}
