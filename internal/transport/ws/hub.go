package ws

import (
	"encoding/json"
	"log"

	"github.com/google/uuid"
)

// Hub tracks which users currently have a live connection open and routes
// events to them. All map access happens on the Run loop, so connection
// lifecycles never race each other.
type Hub struct {
	// clients maps userID → client. At most one connection per user; a
	// reconnect displaces the previous one.
	clients map[uuid.UUID]*Client

	register   chan *Client
	unregister chan *Client
	deliver    chan deliverReq
	lookup     chan lookupReq
}

type deliverReq struct {
	userID uuid.UUID
	data   []byte
}

type lookupReq struct {
	userID uuid.UUID
	reply  chan bool
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[uuid.UUID]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		deliver:    make(chan deliverReq, 256),
		lookup:     make(chan lookupReq),
	}
}

// Run starts the Hub's main event loop. Call this in a goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			if old, ok := h.clients[client.userID]; ok && old != client {
				// Last connection wins. Closing done stops the displaced
				// connection's write pump, which closes the socket; its own
				// teardown then lands here as a stale no-op.
				close(old.done)
			}
			h.clients[client.userID] = client
			log.Printf("ws hub: user %s connected (%d total)", client.userID, len(h.clients))

		case client := <-h.unregister:
			// Only drop the entry if it still points at this client. A stale
			// close from a displaced connection is a no-op.
			if cur, ok := h.clients[client.userID]; ok && cur == client {
				delete(h.clients, client.userID)
				close(client.send)
				close(client.done)
				log.Printf("ws hub: user %s disconnected (%d total)", client.userID, len(h.clients))
			}

		case req := <-h.deliver:
			if client, ok := h.clients[req.userID]; ok {
				select {
				case client.send <- req.data:
				default:
					// Receiver's buffer is full; delivery is best effort.
				}
			}

		case req := <-h.lookup:
			_, ok := h.clients[req.userID]
			req.reply <- ok
		}
	}
}

// Register records the client as its user's live connection.
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister removes the client's presence entry if it is still current.
// Driven by connection close, never by logout.
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// Deliver pushes an event to the user's connection if one is open. Events
// for offline users are silently dropped; they'll see the message on the
// next history fetch.
func (h *Hub) Deliver(userID uuid.UUID, event *Event) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("ws hub: marshal error: %v", err)
		return
	}
	h.deliver <- deliverReq{userID: userID, data: data}
}

// IsOnline reports whether the user currently has a live connection.
func (h *Hub) IsOnline(userID uuid.UUID) bool {
	reply := make(chan bool, 1)
	h.lookup <- lookupReq{userID: userID, reply: reply}
	return <-reply
}
