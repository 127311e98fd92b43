package websocket

import (
	"encoding/json"
	"log"
	"sync"
	"time"
)

// Message is the envelope pushed to connected clients
type Message struct {
	Type       string      `json:"type"` // "chat", "purchase_update", "quote_update", "payment_update"
	ChatRoomID uint        `json:"chat_room_id,omitempty"`
	SenderID   uint        `json:"sender_id,omitempty"`
	Content    string      `json:"content,omitempty"`
	Timestamp  time.Time   `json:"timestamp"`
	Data       interface{} `json:"data,omitempty"`
}

// Hub manages all WebSocket connections
type Hub struct {
	// Registered clients keyed by user id
	clients map[uint]*Client

	// Room membership: room id -> set of user ids
	roomMembers map[uint]map[uint]bool

	// Register requests from clients
	Register chan *Client

	// Unregister requests from clients
	Unregister chan *Client

	mu sync.RWMutex
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	return &Hub{
		clients:     make(map[uint]*Client),
		roomMembers: make(map[uint]map[uint]bool),
		Register:    make(chan *Client),
		Unregister:  make(chan *Client),
	}
}

// Run processes register/unregister events. Must run in its own goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.mu.Lock()
			if existing, ok := h.clients[client.UserID]; ok {
				close(existing.Send)
			}
			h.clients[client.UserID] = client
			h.mu.Unlock()
			log.Printf("🔌 User %d connected to WebSocket", client.UserID)

		case client := <-h.Unregister:
			h.mu.Lock()
			if current, ok := h.clients[client.UserID]; ok && current == client {
				delete(h.clients, client.UserID)
				close(client.Send)
			}
			h.mu.Unlock()
			log.Printf("🔌 User %d disconnected from WebSocket", client.UserID)
		}
	}
}

// JoinRoom records a user's membership in a chat room
func (h *Hub) JoinRoom(roomID, userID uint) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.roomMembers[roomID] == nil {
		h.roomMembers[roomID] = make(map[uint]bool)
	}
	h.roomMembers[roomID][userID] = true
}

// SendToUser delivers a message to one connected user; silently dropped if
// the user is offline or their buffer is full
func (h *Hub) SendToUser(userID uint, message *Message) {
	payload, err := json.Marshal(message)
	if err != nil {
		log.Printf("❌ Failed to marshal WebSocket message: %v", err)
		return
	}

	// The send must stay under the read lock: Run only closes a Send channel
	// while holding the write lock, so a held read lock keeps the channel open
	h.mu.RLock()
	defer h.mu.RUnlock()
	client, ok := h.clients[userID]
	if !ok {
		return
	}

	select {
	case client.Send <- payload:
	default:
		log.Printf("⚠️ Send buffer full for user %d, dropping message", userID)
	}
}

// BroadcastToRoom delivers a message to every member of a chat room
func (h *Hub) BroadcastToRoom(roomID uint, message *Message) {
	h.mu.RLock()
	members := make([]uint, 0, len(h.roomMembers[roomID]))
	for userID := range h.roomMembers[roomID] {
		members = append(members, userID)
	}
	h.mu.RUnlock()

	for _, userID := range members {
		h.SendToUser(userID, message)
	}
}
