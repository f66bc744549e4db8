package ws

import (
	"log"

	"github.com/google/uuid"

	"github.com/dkovac/relay/internal/domain"
)

// HubNotifier implements service.Notifier using the WebSocket Hub.
type HubNotifier struct {
	hub *Hub
}

func NewHubNotifier(hub *Hub) *HubNotifier {
	return &HubNotifier{hub: hub}
}

func (n *HubNotifier) NotifyNewMessage(receiverID uuid.UUID, msg *domain.Message) {
	evt, err := NewEvent(EventNewMessage, msg)
	if err != nil {
		log.Printf("ws notifier: marshal error: %v", err)
		return
	}
	n.hub.Deliver(receiverID, evt)
}
