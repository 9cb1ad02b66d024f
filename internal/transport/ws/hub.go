package ws

import (
	"encoding/json"
	"log"
	"sync"
)

// MessageType defines the type of WebSocket message
type MessageType string

const (
	MsgEligibilityReady   MessageType = "eligibility_ready"
	MsgAnswersInvalidated MessageType = "answers_invalidated"
	MsgSessionMigrated    MessageType = "session_migrated"
	MsgError              MessageType = "error"
)

// Message is the WebSocket envelope format
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Hub manages WebSocket connections per simulator session
type Hub struct {
	// session token -> open connections (a session may have several tabs)
	conns map[string]map[*Connection]bool

	mu sync.RWMutex

	register   chan *Connection
	unregister chan *Connection
	broadcast  chan *BroadcastMessage
}

// Connection represents a WebSocket connection bound to one session
type Connection struct {
	SessionToken string
	Send         chan []byte
	Hub          *Hub
}

// BroadcastMessage is a message addressed to one session's connections
type BroadcastMessage struct {
	SessionToken string
	Message      *Message
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	h := &Hub{
		conns:      make(map[string]map[*Connection]bool),
		register:   make(chan *Connection),
		unregister: make(chan *Connection),
		broadcast:  make(chan *BroadcastMessage, 256),
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			if h.conns[conn.SessionToken] == nil {
				h.conns[conn.SessionToken] = make(map[*Connection]bool)
			}
			h.conns[conn.SessionToken][conn] = true
			h.mu.Unlock()
			log.Printf("ws: session %s connected", conn.SessionToken)

		case conn := <-h.unregister:
			h.mu.Lock()
			if conns, ok := h.conns[conn.SessionToken]; ok {
				if conns[conn] {
					delete(conns, conn)
					close(conn.Send)
					if len(conns) == 0 {
						delete(h.conns, conn.SessionToken)
					}
					log.Printf("ws: session %s disconnected", conn.SessionToken)
				}
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.RLock()
			data, _ := json.Marshal(msg.Message)
			for conn := range h.conns[msg.SessionToken] {
				select {
				case conn.Send <- data:
				default:
					// Drop message if buffer full
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Register adds a connection
func (h *Hub) Register(conn *Connection) {
	h.register <- conn
}

// Unregister removes a connection
func (h *Hub) Unregister(conn *Connection) {
	h.unregister <- conn
}

// NotifySession sends an event to all connections of a session
// (implements service.Broadcaster)
func (h *Hub) NotifySession(token string, event string, payload interface{}) {
	data, _ := json.Marshal(payload)
	h.broadcast <- &BroadcastMessage{
		SessionToken: token,
		Message: &Message{
			Type:    MessageType(event),
			Payload: data,
		},
	}
}
