package membership

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCapacity is returned when a lobby is created with fewer
	// than two seats.
	ErrInvalidCapacity = errors.New("max participants must be at least 2")

	// ErrAlreadyRequested is returned when a pending join request already
	// exists for the same (lobby, user) pair.
	ErrAlreadyRequested = errors.New("a pending join request already exists")

	// ErrNotAuthorized is returned when someone other than the lobby owner
	// tries to respond to requests or delete the lobby.
	ErrNotAuthorized = errors.New("only the lobby owner may perform this action")

	// ErrLobbyFull is returned when an approval would exceed the lobby's
	// configured capacity.
	ErrLobbyFull = errors.New("lobby is at capacity")

	// ErrProfileRequired is returned when a tournament lobby is requested
	// without a game profile for the tournament's game.
	ErrProfileRequired = errors.New("a game profile for the tournament's game is required")
)

// PartialError reports a multi-step mutation that committed its first step
// but failed a later one. The store has no transactions across these steps,
// so callers must know which half is missing before they retry.
type PartialError struct {
	Done   string
	Failed string
	Err    error
}

func (e *PartialError) Error() string {
	return fmt.Sprintf("partial failure: %s succeeded, %s failed: %v", e.Done, e.Failed, e.Err)
}

func (e *PartialError) Unwrap() error {
	return e.Err
}
