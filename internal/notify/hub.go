/*
Package notify implements the local-notification primitive: a timer-backed
scheduler with opaque handles, delivered to the mobile client over a
websocket hub. A connected socket is what "foregrounded" means to the rest
of the system; a fresh connection is the app-resume signal.
*/
package notify

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

var Upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Allow CORS for development
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Hub holds the active connections: Map[UserID] -> Connection
type Hub struct {
	mu      sync.Mutex
	clients map[string]*websocket.Conn

	// onAttach fires whenever a user's socket (re)connects. The inactivity
	// manager hooks its resume reconciliation here.
	onAttach func(userID string)
}

func NewHub() *Hub {
	return &Hub{clients: make(map[string]*websocket.Conn)}
}

// SetOnAttach installs the resume listener. Must be called during wiring,
// before any client connects.
func (h *Hub) SetOnAttach(fn func(userID string)) {
	h.onAttach = fn
}

// Register a new client connection, replacing any previous one.
func (h *Hub) Register(userID string, conn *websocket.Conn) {
	h.mu.Lock()
	if old, ok := h.clients[userID]; ok {
		old.Close()
	}
	h.clients[userID] = conn
	h.mu.Unlock()

	log.Info().Str("user_id", userID).Msg("WebSocket Client Connected")

	if h.onAttach != nil {
		h.onAttach(userID)
	}
}

// Unregister a client (when the app closes the socket).
func (h *Hub) Unregister(userID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if current, ok := h.clients[userID]; ok && current == conn {
		delete(h.clients, userID)
		log.Info().Str("user_id", userID).Msg("WebSocket Client Disconnected")
	}
}

// Connected reports whether the user currently has a live socket.
func (h *Hub) Connected(userID string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, ok := h.clients[userID]
	return ok
}

// Push sends a JSON payload to the user's socket if one is connected.
// Returns false when the user has no live connection.
func (h *Hub) Push(userID string, payload interface{}) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	conn, ok := h.clients[userID]
	if !ok {
		return false
	}
	if err := conn.WriteJSON(payload); err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to send WS message, removing client")
		conn.Close()
		delete(h.clients, userID)
		return false
	}
	return true
}
