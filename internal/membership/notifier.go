package membership

import (
	"uniarena/backend/internal/hub"
	"uniarena/backend/internal/models"
)

// Notifier delivers a notification to a single user. The workflow treats
// delivery as fire-and-forget: failures are logged by the caller, never
// propagated to the requester.
type Notifier interface {
	Notify(userID uint, content string, link *string) error
}

// HubNotifier persists the notification row and pushes it to the user's open
// streams.
type HubNotifier struct {
	store Store
	hub   *hub.Hub
}

// NewHubNotifier creates a Notifier writing through the given store and hub.
// The hub may be nil, in which case only the row is written.
func NewHubNotifier(store Store, h *hub.Hub) *HubNotifier {
	return &HubNotifier{store: store, hub: h}
}

func (n *HubNotifier) Notify(userID uint, content string, link *string) error {
	notification := models.Notification{
		UserID:  userID,
		Content: content,
		Link:    link,
	}
	if err := n.store.CreateNotification(&notification); err != nil {
		return err
	}

	if n.hub != nil {
		n.hub.Notify(userID, hub.Event{Type: "notification", Payload: notification})
	}
	return nil
}
