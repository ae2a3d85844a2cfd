package membership

import (
	"fmt"
	"log"
	"time"

	"uniarena/backend/internal/models"
)

// Service is the lobby membership workflow: lobby lifecycle, the
// join-request ledger, and the owner-approval rules. Every method takes the
// acting user explicitly; nothing here reads ambient session state.
//
// Multi-step mutations (approve-then-seat, unseat-then-delete) are issued as
// sequential store calls without a surrounding transaction, matching the
// store's remote-call model. A half-completed mutation surfaces as a
// *PartialError so the caller knows which half to retry.
type Service struct {
	store    Store
	notifier Notifier
	now      func() time.Time
}

// NewService creates the membership workflow service. notifier may be nil to
// disable notifications entirely.
func NewService(store Store, notifier Notifier) *Service {
	return &Service{
		store:    store,
		notifier: notifier,
		now:      time.Now,
	}
}

// CreateLobbyOptions carries the optional fields of a new lobby.
type CreateLobbyOptions struct {
	Name         string
	TournamentID *uint
}

// CreateLobby inserts an open lobby owned by ownerID. Capacity below two is
// rejected before anything is written.
func (s *Service) CreateLobby(ownerID, gameID uint, maxParticipants int, opts CreateLobbyOptions) (models.Lobby, error) {
	if maxParticipants < 2 {
		return models.Lobby{}, ErrInvalidCapacity
	}

	lobby := models.Lobby{
		CreatorID:       ownerID,
		GameID:          gameID,
		TournamentID:    opts.TournamentID,
		Name:            opts.Name,
		MaxParticipants: maxParticipants,
		Status:          models.LobbyStatusOpen,
	}
	if err := s.store.CreateLobby(&lobby); err != nil {
		return models.Lobby{}, err
	}
	return lobby, nil
}

// DeleteLobby removes the lobby's participant rows and then the lobby row,
// in that order. Only the owner may delete. If the second step fails the
// participants are already gone and the surviving lobby row is reported as a
// *PartialError; the reconciler worker eventually sweeps the leftovers of
// the mirror case.
func (s *Service) DeleteLobby(actorID, lobbyID uint) error {
	lobby, err := s.store.GetLobby(lobbyID)
	if err != nil {
		return err
	}
	if lobby.CreatorID != actorID {
		return ErrNotAuthorized
	}

	if err := s.store.DeleteParticipants(lobbyID); err != nil {
		return err
	}
	if err := s.store.DeleteLobbyRow(lobbyID); err != nil {
		return &PartialError{
			Done:   "participant rows removed",
			Failed: "lobby row delete",
			Err:    err,
		}
	}
	return nil
}

// ListOpen returns open lobbies, newest first, optionally filtered by game.
func (s *Service) ListOpen(gameID *uint) ([]models.Lobby, error) {
	return s.store.ListOpenLobbies(gameID)
}

// ListByTournament returns a tournament's open lobbies with participants and
// join requests loaded.
func (s *Service) ListByTournament(tournamentID uint) ([]models.Lobby, error) {
	return s.store.ListLobbiesByTournament(tournamentID)
}

// View returns the materialized lobby view the rules operate on.
func (s *Service) View(lobbyID uint) (LobbyView, error) {
	return s.store.GetLobbyView(lobbyID)
}

// SubmitRequest records a pending join request for (lobbyID, userID) and
// notifies the lobby owner unless the owner is the requester. An existing
// pending request for the pair fails with ErrAlreadyRequested; the check is
// a read before the insert, not an atomic constraint. Lobbies tied to a
// tournament additionally require a game profile for the tournament's game.
func (s *Service) SubmitRequest(lobbyID, userID uint) (models.JoinRequest, error) {
	lobby, err := s.store.GetLobby(lobbyID)
	if err != nil {
		return models.JoinRequest{}, err
	}

	pending, err := s.store.PendingRequestExists(lobbyID, userID)
	if err != nil {
		return models.JoinRequest{}, err
	}
	if pending {
		return models.JoinRequest{}, ErrAlreadyRequested
	}

	if lobby.TournamentID != nil {
		check, err := s.CheckRequiredProfile(userID, *lobby.TournamentID)
		if err != nil {
			return models.JoinRequest{}, err
		}
		if !check.HasProfile {
			return models.JoinRequest{}, ErrProfileRequired
		}
	}

	request := models.JoinRequest{
		LobbyID:     lobbyID,
		UserID:      userID,
		Status:      models.JoinRequestPending,
		RequestedAt: s.now(),
	}
	if err := s.store.CreateJoinRequest(&request); err != nil {
		return models.JoinRequest{}, err
	}

	if s.notifier != nil && lobby.CreatorID != userID {
		link := fmt.Sprintf("lobby:%d", lobbyID)
		if err := s.notifier.Notify(lobby.CreatorID, "There is a new request to join your lobby!", &link); err != nil {
			// Fire-and-forget: a lost notification never fails the request.
			log.Printf("membership: failed to notify lobby %d owner: %v", lobbyID, err)
		}
	}

	return request, nil
}

// CancelRequest withdraws the user's join request for the lobby. The delete
// matches on the pair only, with no status filter, so cancelling after an
// approval removes the ledger row while the participant row survives. That
// matches the shipped behavior and is pinned by a regression test.
func (s *Service) CancelRequest(lobbyID, userID uint) error {
	return s.store.DeleteJoinRequestsByPair(lobbyID, userID)
}

// ListRequests returns every join request for the lobby in request order,
// with requester display info loaded. Callers filter for pending themselves.
func (s *Service) ListRequests(lobbyID uint) ([]models.JoinRequest, error) {
	return s.store.ListJoinRequests(lobbyID)
}

// Respond answers a join request. Only the lobby owner may respond. On
// approval the requester is seated unless already seated (a repeated
// approval is a no-op, never a duplicate row) or the lobby is full
// (ErrLobbyFull, nothing written). A participant insert that fails after the
// status update committed surfaces as a *PartialError.
func (s *Service) Respond(actorID, requestID uint, status models.JoinRequestStatus) (models.JoinRequest, error) {
	request, err := s.store.GetJoinRequest(requestID)
	if err != nil {
		return models.JoinRequest{}, err
	}
	lobby, err := s.store.GetLobby(request.LobbyID)
	if err != nil {
		return models.JoinRequest{}, err
	}
	if lobby.CreatorID != actorID {
		return models.JoinRequest{}, ErrNotAuthorized
	}

	seated := false
	if status == models.JoinRequestApproved {
		seated, err = s.store.ParticipantExists(request.LobbyID, request.UserID)
		if err != nil {
			return models.JoinRequest{}, err
		}
		if !seated {
			count, err := s.store.CountParticipants(request.LobbyID)
			if err != nil {
				return models.JoinRequest{}, err
			}
			if count >= lobby.MaxParticipants {
				return models.JoinRequest{}, ErrLobbyFull
			}
		}
	}

	respondedAt := s.now()
	request.Status = status
	request.RespondedAt = &respondedAt
	if err := s.store.UpdateJoinRequest(&request); err != nil {
		return models.JoinRequest{}, err
	}

	if status == models.JoinRequestApproved && !seated {
		participant := models.LobbyParticipant{
			LobbyID:  request.LobbyID,
			UserID:   request.UserID,
			JoinedAt: s.now(),
		}
		if err := s.store.CreateParticipant(&participant); err != nil {
			return request, &PartialError{
				Done:   "join request marked approved",
				Failed: "participant insert",
				Err:    err,
			}
		}
	}

	return request, nil
}

// SeatInvited seats a user who accepted a lobby invitation. The seat goes
// through the same rules as an approval: already seated is a no-op, a full
// lobby rejects with ErrLobbyFull before anything is written.
func (s *Service) SeatInvited(lobbyID, userID uint) error {
	seated, err := s.store.ParticipantExists(lobbyID, userID)
	if err != nil {
		return err
	}
	if seated {
		return nil
	}

	lobby, err := s.store.GetLobby(lobbyID)
	if err != nil {
		return err
	}
	count, err := s.store.CountParticipants(lobbyID)
	if err != nil {
		return err
	}
	if count >= lobby.MaxParticipants {
		return ErrLobbyFull
	}

	return s.store.CreateParticipant(&models.LobbyParticipant{
		LobbyID:  lobbyID,
		UserID:   userID,
		JoinedAt: s.now(),
	})
}

// RemoveParticipant unseats a single user from a lobby. The owner may remove
// anyone; a participant may remove themselves.
func (s *Service) RemoveParticipant(actorID, lobbyID, userID uint) error {
	if actorID != userID {
		lobby, err := s.store.GetLobby(lobbyID)
		if err != nil {
			return err
		}
		if lobby.CreatorID != actorID {
			return ErrNotAuthorized
		}
	}
	return s.store.DeleteParticipant(lobbyID, userID)
}

// ProfileCheck is the result of the tournament-profile gate.
type ProfileCheck struct {
	HasProfile    bool
	MissingGameID *uint
}

// CheckRequiredProfile resolves the tournament's game and reports whether
// the user holds a game profile for it. Absence blocks join requests for
// lobbies tied to the tournament.
func (s *Service) CheckRequiredProfile(userID, tournamentID uint) (ProfileCheck, error) {
	tournament, err := s.store.GetTournament(tournamentID)
	if err != nil {
		return ProfileCheck{}, err
	}

	has, err := s.store.GameProfileExists(userID, tournament.GameID)
	if err != nil {
		return ProfileCheck{}, err
	}
	if !has {
		gameID := tournament.GameID
		return ProfileCheck{HasProfile: false, MissingGameID: &gameID}, nil
	}
	return ProfileCheck{HasProfile: true}, nil
}
