package hub

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifyReachesAllStreamsOfUser(t *testing.T) {
	h := NewHub()

	first := make(Client, 1)
	second := make(Client, 1)
	h.Subscribe(7, first)
	h.Subscribe(7, second)

	h.Notify(7, Event{Type: "notification", Payload: "hello"})

	for _, client := range []Client{first, second} {
		select {
		case raw := <-client:
			var event Event
			require.NoError(t, json.Unmarshal(raw, &event))
			assert.Equal(t, "notification", event.Type)
			assert.Equal(t, "hello", event.Payload)
		default:
			t.Fatal("expected a message on the client channel")
		}
	}
}

func TestNotifyDoesNotCrossUsers(t *testing.T) {
	h := NewHub()

	mine := make(Client, 1)
	theirs := make(Client, 1)
	h.Subscribe(1, mine)
	h.Subscribe(2, theirs)

	h.Notify(1, Event{Type: "notification", Payload: "private"})

	assert.Len(t, mine, 1)
	assert.Empty(t, theirs)
}

func TestNotifyToUserWithoutStreamsIsANoop(t *testing.T) {
	h := NewHub()

	// Should not panic or block.
	h.Notify(42, Event{Type: "notification", Payload: "nobody home"})
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	h := NewHub()

	client := make(Client, 1)
	h.Subscribe(3, client)
	h.Unsubscribe(3, client)

	_, open := <-client
	assert.False(t, open)

	// Notifying after the last stream is gone must not panic.
	h.Notify(3, Event{Type: "notification", Payload: "late"})
}

func TestSlowClientDoesNotBlockNotify(t *testing.T) {
	h := NewHub()

	// Unbuffered channel with no reader simulates a stalled stream.
	stalled := make(Client)
	h.Subscribe(9, stalled)

	// Returns instead of blocking; the event is simply dropped.
	h.Notify(9, Event{Type: "notification", Payload: "dropped"})

	assert.Empty(t, stalled)
}
