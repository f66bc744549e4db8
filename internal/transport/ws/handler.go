package ws

import (
	"log"
	"net/http"

	"nhooyr.io/websocket"

	"github.com/dkovac/relay/internal/token"
)

// ServeWS returns an HTTP handler that upgrades to WebSocket. The handshake
// is authenticated with the same signed credential as the HTTP API: the
// ?token= query param if present, otherwise the auth cookie.
func ServeWS(hub *Hub, jwtSecret string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tokenStr := r.URL.Query().Get("token")
		if tokenStr == "" {
			if cookie, err := r.Cookie("jwt"); err == nil {
				tokenStr = cookie.Value
			}
		}
		if tokenStr == "" {
			http.Error(w, "missing token", http.StatusUnauthorized)
			return
		}

		userID, err := token.Verify(tokenStr, []byte(jwtSecret))
		if err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}

		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			InsecureSkipVerify: true, // Allow any origin (dev mode)
		})
		if err != nil {
			log.Printf("ws: accept error: %v", err)
			return
		}

		client := NewClient(hub, conn, userID)
		hub.Register(client)

		go client.WritePump()
		go client.ReadPump()
	}
}
