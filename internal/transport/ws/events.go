package ws

import (
	"encoding/json"
)

// Server → Client event names.
const (
	EventNewMessage = "newMessage"
	EventPong       = "pong"
)

// Client → Server event names.
const (
	EventPing = "ping"
)

// Event is the envelope for everything that crosses the live channel.
type Event struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// NewEvent wraps a payload in the event envelope.
func NewEvent(name string, payload any) (*Event, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &Event{Event: name, Data: data}, nil
}

func marshalEvent(event *Event) ([]byte, error) {
	return json.Marshal(event)
}
