package ws

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type Event struct {
	Type      string      `json:"type"`
	Payload   interface{} `json:"payload,omitempty"`
	Timestamp string      `json:"timestamp"`
}

// Notifier adapts the hub to the fire-and-forget notification contract
// used by the business layer.
type Notifier struct {
	hub *Hub
}

func NewNotifier(hub *Hub) *Notifier {
	return &Notifier{hub: hub}
}

func (n *Notifier) NotifyUser(userID uuid.UUID, eventType string, payload any) {
	if n == nil || n.hub == nil || userID == uuid.Nil || eventType == "" {
		return
	}

	evt := Event{
		Type:      eventType,
		Payload:   payload,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}

	n.hub.SendToUser(userID, b)
}
