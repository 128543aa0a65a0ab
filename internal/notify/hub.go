package notify

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/tradezlk/vendorgo/internal/catalog"
)

// Notice is the wire format of one user-facing toast.
type Notice struct {
	Type    string        `json:"type"` // always "notice"
	Level   catalog.Level `json:"level"`
	Message string        `json:"message"`
}

// Hub fans save-outcome notices out to the websocket clients subscribed to
// each editing session. A session with no connected clients still gets its
// notices logged, so nothing is lost when the browser tab reconnects late.
type Hub struct {
	mu sync.RWMutex
	// session ID -> connected clients
	sessions map[string]map[*Client]struct{}
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{sessions: make(map[string]map[*Client]struct{})}
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	clients, ok := h.sessions[c.sessionID]
	if !ok {
		clients = make(map[*Client]struct{})
		h.sessions[c.sessionID] = clients
	}
	clients[c] = struct{}{}
	log.Printf("🔔 notify: client joined session %s", c.sessionID)
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if clients, ok := h.sessions[c.sessionID]; ok {
		if _, ok := clients[c]; ok {
			delete(clients, c)
			close(c.send)
			if len(clients) == 0 {
				delete(h.sessions, c.sessionID)
			}
		}
	}
}

// Broadcast sends a notice to every client of the session.
func (h *Hub) Broadcast(sessionID string, level catalog.Level, message string) {
	payload, err := json.Marshal(Notice{Type: "notice", Level: level, Message: message})
	if err != nil {
		log.Printf("notify: marshal notice: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.sessions[sessionID] {
		select {
		case c.send <- payload:
		default:
			// Buffer full or client dead; the read pump will reap it.
		}
	}
}

// NotifierFor returns a catalog.Notifier bound to one session.
func (h *Hub) NotifierFor(sessionID string) catalog.Notifier {
	return &sessionNotifier{hub: h, sessionID: sessionID}
}

type sessionNotifier struct {
	hub       *Hub
	sessionID string
}

func (n *sessionNotifier) Notify(level catalog.Level, message string) {
	log.Printf("🔔 [%s] %s: %s", n.sessionID, level, message)
	n.hub.Broadcast(n.sessionID, level, message)
}
